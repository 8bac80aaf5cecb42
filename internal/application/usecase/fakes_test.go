package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/diillson/finsight-dashboard-go/internal/domain/entity"
	"github.com/diillson/finsight-dashboard-go/internal/shared/types"
	"github.com/shopspring/decimal"
)

type stubBackend struct {
	mu        sync.Mutex
	calls     []string
	ok        bool
	reply     string
	notFound  bool
	lastQuery entity.ChatQuery
	lastFile  entity.File
}

func (b *stubBackend) record(name string) {
	b.mu.Lock()
	b.calls = append(b.calls, name)
	b.mu.Unlock()
}

func (b *stubBackend) IngestStatement(_ context.Context, req entity.UploadRequest) entity.Outcome[entity.UploadAck] {
	b.record("statement")
	b.mu.Lock()
	b.lastFile = req.Renamed()
	b.mu.Unlock()
	if !b.ok {
		return entity.Failed[entity.UploadAck](fmt.Errorf("500"))
	}
	return entity.Ok(entity.UploadAck{Filename: req.SubmittedName()})
}

func (b *stubBackend) IngestReceipt(_ context.Context, req entity.ReceiptUploadRequest) entity.Outcome[entity.ReceiptDetails] {
	b.record("receipt")
	if !b.ok {
		return entity.Failed[entity.ReceiptDetails](fmt.Errorf("500"))
	}
	return entity.Ok(entity.ReceiptDetails{Brand: "ACME", TotalCost: "12.00"})
}

func (b *stubBackend) GetCategoryBreakdown(ctx context.Context, _ entity.Period) entity.Outcome[entity.CategorySummary] {
	b.record("categories")
	if err := ctx.Err(); err != nil {
		return entity.Failed[entity.CategorySummary](err)
	}
	if b.notFound {
		return entity.NotFound[entity.CategorySummary](fmt.Errorf("404"))
	}
	return entity.Ok(entity.CategorySummary{{Category: "Food", Amount: decimal.NewFromInt(500)}})
}

func (b *stubBackend) GetWeeklySeries(ctx context.Context, _ entity.Period) entity.Outcome[entity.WeeklySeries] {
	b.record("weekly")
	if err := ctx.Err(); err != nil {
		return entity.Failed[entity.WeeklySeries](err)
	}
	if b.notFound {
		return entity.NotFound[entity.WeeklySeries](fmt.Errorf("404"))
	}
	return entity.Ok(entity.WeeklySeries{MonthName: "March", Entries: []entity.WeeklyEntry{
		{Week: "Week 1", Amount: decimal.NewFromInt(100), Type: entity.EntrySavings},
	}})
}

func (b *stubBackend) RunAnalysis(ctx context.Context, _ entity.AnalysisTarget) entity.Outcome[entity.AnalysisResult] {
	b.record("analysis")
	if !b.ok || ctx.Err() != nil {
		return entity.Failed[entity.AnalysisResult](fmt.Errorf("timeout"))
	}
	return entity.Ok(entity.AnalysisResult{MaxSpentCategory: "Food"})
}

func (b *stubBackend) Chat(_ context.Context, q entity.ChatQuery) entity.Outcome[entity.ChatReply] {
	b.record("chat")
	b.mu.Lock()
	b.lastQuery = q
	b.mu.Unlock()
	if !b.ok {
		return entity.Failed[entity.ChatReply](fmt.Errorf("bad json"))
	}
	return entity.Ok(entity.ChatReply{Response: b.reply})
}

type stubExport struct {
	reports     []entity.DashboardReport
	types       []string
	transcripts [][]entity.ChatMessage
}

func (e *stubExport) save(report entity.DashboardReport, kind string) (string, error) {
	e.reports = append(e.reports, report)
	e.types = append(e.types, kind)
	return "/tmp/report." + kind, nil
}

func (e *stubExport) ExportReportToCSV(r entity.DashboardReport, _, _ string) (string, error) {
	return e.save(r, "csv")
}

func (e *stubExport) ExportReportToJSON(r entity.DashboardReport, _, _ string) (string, error) {
	return e.save(r, "json")
}

func (e *stubExport) ExportReportToPDF(r entity.DashboardReport, _, _ string) (string, error) {
	return e.save(r, "pdf")
}

func (e *stubExport) ExportReportToXLSX(r entity.DashboardReport, _, _ string) (string, error) {
	return e.save(r, "xlsx")
}

func (e *stubExport) ExportTranscriptToJSON(t []entity.ChatMessage, _ entity.Period, _, _ string) (string, error) {
	e.transcripts = append(e.transcripts, t)
	return "/tmp/chat.json", nil
}

type stubArchive struct {
	paths []string
}

func (a *stubArchive) Archive(_ context.Context, path string) (string, error) {
	a.paths = append(a.paths, path)
	return "s3://bucket/" + path, nil
}

// recordingConsole keeps everything the use case showed.
type recordingConsole struct {
	mu       sync.Mutex
	lines    []string
	displays []string
	chat     []entity.ChatMessage
}

func (c *recordingConsole) add(prefix, format string, a ...interface{}) {
	c.mu.Lock()
	c.lines = append(c.lines, prefix+fmt.Sprintf(format, a...))
	c.mu.Unlock()
}

func (c *recordingConsole) display(name string) {
	c.mu.Lock()
	c.displays = append(c.displays, name)
	c.mu.Unlock()
}

func (c *recordingConsole) Print(a ...interface{})                 {}
func (c *recordingConsole) Printf(format string, a ...interface{}) {}
func (c *recordingConsole) Println(a ...interface{})               {}
func (c *recordingConsole) LogInfo(format string, a ...interface{}) {
	c.add("info: ", format, a...)
}
func (c *recordingConsole) LogWarning(format string, a ...interface{}) {
	c.add("warn: ", format, a...)
}
func (c *recordingConsole) LogError(format string, a ...interface{}) {
	c.add("error: ", format, a...)
}
func (c *recordingConsole) LogSuccess(format string, a ...interface{}) {
	c.add("ok: ", format, a...)
}
func (c *recordingConsole) Status(string) types.StatusHandle { return noopHandle{} }
func (c *recordingConsole) ProgressWithTotal(int, string) types.ProgressHandle {
	return noopHandle{}
}
func (c *recordingConsole) CreateTable() types.TableInterface { return nil }
func (c *recordingConsole) DisplayCategoryBreakdown(entity.Period, entity.PieChart) {
	c.display("categories")
}
func (c *recordingConsole) DisplayWeeklySeries(entity.Period, entity.StackedSeries) {
	c.display("weekly")
}
func (c *recordingConsole) DisplayAnalysis(entity.AnalysisTarget, entity.AnalysisResult) {
	c.display("analysis")
}
func (c *recordingConsole) DisplayReceipt(entity.ReceiptDetails) { c.display("receipt") }
func (c *recordingConsole) DisplayChatMessage(msg entity.ChatMessage) {
	c.mu.Lock()
	c.chat = append(c.chat, msg)
	c.mu.Unlock()
}

type noopHandle struct{}

func (noopHandle) Update(string) {}
func (noopHandle) Increment()    {}
func (noopHandle) Stop()         {}
