package workflow

import (
	"context"
	"sync"

	"github.com/diillson/finsight-dashboard-go/internal/domain/entity"
)

// fakeBackend records every call and answers through optional hooks.
// Unset hooks answer with an OK zero payload.
type fakeBackend struct {
	mu         sync.Mutex
	statements []entity.UploadRequest
	receipts   []entity.ReceiptUploadRequest
	categories []entity.Period
	weekly     []entity.Period
	targets    []entity.AnalysisTarget
	queries    []entity.ChatQuery

	statementFn  func(entity.UploadRequest) entity.Outcome[entity.UploadAck]
	receiptFn    func(entity.ReceiptUploadRequest) entity.Outcome[entity.ReceiptDetails]
	categoriesFn func(entity.Period) entity.Outcome[entity.CategorySummary]
	weeklyFn     func(entity.Period) entity.Outcome[entity.WeeklySeries]
	analysisFn   func(entity.AnalysisTarget) entity.Outcome[entity.AnalysisResult]
	chatFn       func(entity.ChatQuery) entity.Outcome[entity.ChatReply]
}

func (f *fakeBackend) IngestStatement(_ context.Context, req entity.UploadRequest) entity.Outcome[entity.UploadAck] {
	f.mu.Lock()
	f.statements = append(f.statements, req)
	fn := f.statementFn
	f.mu.Unlock()
	if fn != nil {
		return fn(req)
	}
	return entity.Ok(entity.UploadAck{Filename: req.SubmittedName()})
}

func (f *fakeBackend) IngestReceipt(_ context.Context, req entity.ReceiptUploadRequest) entity.Outcome[entity.ReceiptDetails] {
	f.mu.Lock()
	f.receipts = append(f.receipts, req)
	fn := f.receiptFn
	f.mu.Unlock()
	if fn != nil {
		return fn(req)
	}
	return entity.Ok(entity.ReceiptDetails{})
}

func (f *fakeBackend) GetCategoryBreakdown(_ context.Context, period entity.Period) entity.Outcome[entity.CategorySummary] {
	f.mu.Lock()
	f.categories = append(f.categories, period)
	fn := f.categoriesFn
	f.mu.Unlock()
	if fn != nil {
		return fn(period)
	}
	return entity.Ok(entity.CategorySummary{})
}

func (f *fakeBackend) GetWeeklySeries(_ context.Context, period entity.Period) entity.Outcome[entity.WeeklySeries] {
	f.mu.Lock()
	f.weekly = append(f.weekly, period)
	fn := f.weeklyFn
	f.mu.Unlock()
	if fn != nil {
		return fn(period)
	}
	return entity.Ok(entity.WeeklySeries{})
}

func (f *fakeBackend) RunAnalysis(_ context.Context, target entity.AnalysisTarget) entity.Outcome[entity.AnalysisResult] {
	f.mu.Lock()
	f.targets = append(f.targets, target)
	fn := f.analysisFn
	f.mu.Unlock()
	if fn != nil {
		return fn(target)
	}
	return entity.Ok(entity.AnalysisResult{})
}

func (f *fakeBackend) Chat(_ context.Context, query entity.ChatQuery) entity.Outcome[entity.ChatReply] {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	fn := f.chatFn
	f.mu.Unlock()
	if fn != nil {
		return fn(query)
	}
	return entity.Ok(entity.ChatReply{Response: "ok"})
}

func (f *fakeBackend) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.statements) + len(f.receipts) + len(f.categories) +
		len(f.weekly) + len(f.targets) + len(f.queries)
}
