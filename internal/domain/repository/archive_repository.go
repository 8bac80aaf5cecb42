package repository

import "context"

// ArchiveRepository copies exported report files to durable storage.
type ArchiveRepository interface {
	// Archive uploads the local file and returns where it was stored.
	Archive(ctx context.Context, localPath string) (string, error)
}
