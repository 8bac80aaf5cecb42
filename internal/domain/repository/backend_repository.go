package repository

import (
	"context"

	"github.com/diillson/finsight-dashboard-go/internal/domain/entity"
)

// BackendRepository defines the calls made to the finance insights backend.
// Every call maps its transport result onto an entity.Outcome instead of an error.
type BackendRepository interface {
	// Ingestion
	IngestStatement(ctx context.Context, req entity.UploadRequest) entity.Outcome[entity.UploadAck]
	IngestReceipt(ctx context.Context, req entity.ReceiptUploadRequest) entity.Outcome[entity.ReceiptDetails]

	// Period-scoped reads
	GetCategoryBreakdown(ctx context.Context, period entity.Period) entity.Outcome[entity.CategorySummary]
	GetWeeklySeries(ctx context.Context, period entity.Period) entity.Outcome[entity.WeeklySeries]

	// Analysis & advisory
	RunAnalysis(ctx context.Context, target entity.AnalysisTarget) entity.Outcome[entity.AnalysisResult]
	Chat(ctx context.Context, query entity.ChatQuery) entity.Outcome[entity.ChatReply]
}
