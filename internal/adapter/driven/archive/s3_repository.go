package archive

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/diillson/finsight-dashboard-go/internal/domain/repository"
	"github.com/diillson/finsight-dashboard-go/internal/log"
	"github.com/diillson/finsight-dashboard-go/internal/shared/types"
)

// ObjectPutter is the subset of the S3 client used for archival.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3RepositoryImpl implements repository.ArchiveRepository on top of S3.
type S3RepositoryImpl struct {
	cfg    types.ArchiveConfig
	logger *log.Logger

	mu     sync.Mutex
	client ObjectPutter
}

// NewS3Repository creates an archive repository. The S3 client is built lazily
// from the default AWS credential chain on first use.
func NewS3Repository(cfg types.ArchiveConfig, logger *log.Logger) repository.ArchiveRepository {
	return &S3RepositoryImpl{cfg: cfg, logger: logger.WithComponent(log.ComponentArchive)}
}

// NewS3RepositoryWithClient uses the given client instead of building one.
func NewS3RepositoryWithClient(cfg types.ArchiveConfig, client ObjectPutter, logger *log.Logger) repository.ArchiveRepository {
	return &S3RepositoryImpl{cfg: cfg, client: client, logger: logger.WithComponent(log.ComponentArchive)}
}

func (r *S3RepositoryImpl) getClient(ctx context.Context) (ObjectPutter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.client != nil {
		return r.client, nil
	}

	var opts []func(*config.LoadOptions) error
	if r.cfg.Region != "" {
		opts = append(opts, config.WithRegion(r.cfg.Region))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	r.client = s3.NewFromConfig(awsCfg)
	return r.client, nil
}

// Archive uploads localPath under the configured prefix and returns its s3:// URI.
func (r *S3RepositoryImpl) Archive(ctx context.Context, localPath string) (string, error) {
	if !r.cfg.Enabled() {
		return "", fmt.Errorf("archive bucket is not configured")
	}

	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("error opening %s for archival: %w", localPath, err)
	}
	defer file.Close()

	client, err := r.getClient(ctx)
	if err != nil {
		return "", err
	}

	key := objectKey(r.cfg.Prefix, localPath)
	input := &s3.PutObjectInput{
		Bucket: aws.String(r.cfg.Bucket),
		Key:    aws.String(key),
		Body:   file,
	}
	if contentType := mime.TypeByExtension(filepath.Ext(localPath)); contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := client.PutObject(ctx, input); err != nil {
		r.logger.WarnContext(ctx, "archive upload failed", log.FieldFile, localPath, log.FieldError, err)
		return "", fmt.Errorf("failed to upload %s to s3://%s/%s: %w", localPath, r.cfg.Bucket, key, err)
	}

	uri := fmt.Sprintf("s3://%s/%s", r.cfg.Bucket, key)
	r.logger.InfoContext(ctx, "report archived", log.FieldFile, localPath, "uri", uri)
	return uri, nil
}

func objectKey(prefix, localPath string) string {
	prefix = strings.Trim(prefix, "/")
	name := filepath.Base(localPath)
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}
