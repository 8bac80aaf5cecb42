package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/diillson/finsight-dashboard-go/internal/domain/entity"
	"github.com/diillson/finsight-dashboard-go/internal/domain/repository"
	"github.com/diillson/finsight-dashboard-go/internal/log"
	"github.com/diillson/finsight-dashboard-go/internal/shared/types"
	"github.com/google/uuid"
)

const headerRequestID = "X-Request-ID"

// maxErrorBody caps how much of a failed response is kept for the logs.
const maxErrorBody = 512

var (
	errNotFound      = errors.New("backend has no data for the request")
	errEmptyResponse = errors.New("backend reply has no response text")
)

// StatusError is a non-2xx answer from the backend.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Body)
}

// HTTPRepositoryImpl implements repository.BackendRepository over the backend's HTTP API.
type HTTPRepositoryImpl struct {
	baseURL   *url.URL
	endpoints types.Endpoints
	client    *http.Client
	logger    *log.Logger
}

// Option customises the repository.
type Option func(*HTTPRepositoryImpl)

// WithHTTPClient replaces the default client.
func WithHTTPClient(client *http.Client) Option {
	return func(r *HTTPRepositoryImpl) { r.client = client }
}

// NewHTTPRepository creates a backend repository for the configured base URL and endpoints.
func NewHTTPRepository(cfg *types.Config, logger *log.Logger, opts ...Option) (repository.BackendRepository, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BackendURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid backend URL %q: %w", cfg.BackendURL, err)
	}

	r := &HTTPRepositoryImpl{
		baseURL:   base,
		endpoints: cfg.Endpoints,
		client:    &http.Client{Timeout: cfg.Timeout()},
		logger:    logger.WithComponent(log.ComponentBackend),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// IngestStatement posts the renamed statement together with its month and year.
func (r *HTTPRepositoryImpl) IngestStatement(ctx context.Context, req entity.UploadRequest) entity.Outcome[entity.UploadAck] {
	fields := map[string]string{
		"month": req.Period.Month,
		"year":  req.Period.YearString(),
	}
	body, contentType, err := multipartBody(req.Renamed(), fields)
	if err != nil {
		return entity.Failed[entity.UploadAck](err)
	}

	var ack entity.UploadAck
	err = r.do(ctx, log.OpUpload, http.MethodPost, r.endpoints.Statement, nil, contentType, body, &ack)
	return outcomeOf(ack, err)
}

// IngestReceipt posts a receipt image with its transaction type.
// An acknowledgement the details cannot be decoded from still counts as success.
func (r *HTTPRepositoryImpl) IngestReceipt(ctx context.Context, req entity.ReceiptUploadRequest) entity.Outcome[entity.ReceiptDetails] {
	fields := map[string]string{"transactionType": string(req.TransactionType)}
	body, contentType, err := multipartBody(req.File, fields)
	if err != nil {
		return entity.Failed[entity.ReceiptDetails](err)
	}

	var raw json.RawMessage
	if err := r.do(ctx, log.OpReceipt, http.MethodPost, r.endpoints.Receipt, nil, contentType, body, &raw); err != nil {
		return entity.Failed[entity.ReceiptDetails](err)
	}

	var dto receiptDTO
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &dto); err != nil {
			r.logger.Debug("receipt acknowledgement carries no details", log.FieldError, err)
		}
	}
	return entity.Ok(dto.toEntity())
}

// GetCategoryBreakdown reads the per-category spending of a period.
func (r *HTTPRepositoryImpl) GetCategoryBreakdown(ctx context.Context, period entity.Period) entity.Outcome[entity.CategorySummary] {
	var rows []categoryDTO
	err := r.do(ctx, log.OpCategorize, http.MethodGet, r.endpoints.Categories, periodQuery(period), "", nil, &rows)
	if err != nil {
		return outcomeOf(entity.CategorySummary(nil), err)
	}

	summary := make(entity.CategorySummary, 0, len(rows))
	for _, row := range rows {
		summary = append(summary, entity.CategoryAmount{Category: row.Category, Amount: row.Amount})
	}
	return entity.Ok(summary)
}

// GetWeeklySeries reads weekly savings and expense amounts of a period.
func (r *HTTPRepositoryImpl) GetWeeklySeries(ctx context.Context, period entity.Period) entity.Outcome[entity.WeeklySeries] {
	var dto weeklyDTO
	err := r.do(ctx, log.OpSavings, http.MethodGet, r.endpoints.Weekly, periodQuery(period), "", nil, &dto)
	if err != nil {
		return outcomeOf(entity.WeeklySeries{}, err)
	}
	return entity.Ok(dto.toEntity())
}

// RunAnalysis asks the backend to compare actuals with the target split.
func (r *HTTPRepositoryImpl) RunAnalysis(ctx context.Context, target entity.AnalysisTarget) entity.Outcome[entity.AnalysisResult] {
	query := url.Values{}
	query.Set("spending_pct", strconv.Itoa(target.SpendingPct))
	query.Set("saving_pct", strconv.Itoa(target.SavingPct))

	var result entity.AnalysisResult
	err := r.do(ctx, log.OpAnalyze, http.MethodGet, r.endpoints.Analysis, query, "", nil, &result)
	if err != nil {
		// The analysis has no "no data" state of its own.
		return entity.Failed[entity.AnalysisResult](err)
	}
	return entity.Ok(result)
}

// Chat sends a natural-language question scoped to a period.
func (r *HTTPRepositoryImpl) Chat(ctx context.Context, query entity.ChatQuery) entity.Outcome[entity.ChatReply] {
	payload, err := json.Marshal(chatRequestDTO{
		Query: query.Query,
		Month: query.Period.Month,
		Year:  query.Period.YearString(),
	})
	if err != nil {
		return entity.Failed[entity.ChatReply](fmt.Errorf("failed to encode chat query: %w", err))
	}

	var reply chatReplyDTO
	if err := r.do(ctx, log.OpChat, http.MethodPost, r.endpoints.Chat, nil, "application/json", payload, &reply); err != nil {
		return entity.Failed[entity.ChatReply](err)
	}
	if reply.Response == nil {
		return entity.Failed[entity.ChatReply](errEmptyResponse)
	}
	return entity.Ok(entity.ChatReply{Response: *reply.Response})
}

// do sends one request and decodes a 2xx JSON body into out.
// A 404 yields errNotFound; any other non-2xx a *StatusError.
func (r *HTTPRepositoryImpl) do(ctx context.Context, op, method, path string, query url.Values, contentType string, body []byte, out any) error {
	endpoint := r.resolve(path, query)
	requestID := uuid.NewString()
	logger := r.logger.With(
		log.FieldOperation, op,
		log.FieldRequestID, requestID,
		log.FieldMethod, method,
		log.FieldPath, path,
	)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", op, err)
	}
	req.Header.Set(headerRequestID, requestID)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := r.client.Do(req)
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		logger.WarnContext(ctx, "backend request failed", log.FieldDuration, elapsed, log.FieldError, err)
		return fmt.Errorf("%s request failed: %w", op, err)
	}
	defer resp.Body.Close()

	logger.DebugContext(ctx, "backend responded", log.FieldStatusCode, resp.StatusCode, log.FieldDuration, elapsed)

	if resp.StatusCode == http.StatusNotFound {
		return errNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", op, err)
	}
	if raw, ok := out.(*json.RawMessage); ok {
		*raw = data
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", op, err)
	}
	return nil
}

func (r *HTTPRepositoryImpl) resolve(path string, query url.Values) string {
	u := *r.baseURL
	u.Path = strings.TrimRight(r.baseURL.Path, "/") + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func periodQuery(period entity.Period) url.Values {
	query := url.Values{}
	query.Set("month", period.Month)
	query.Set("year", period.YearString())
	return query
}

func outcomeOf[T any](payload T, err error) entity.Outcome[T] {
	switch {
	case err == nil:
		return entity.Ok(payload)
	case errors.Is(err, errNotFound):
		return entity.NotFound[T](err)
	default:
		return entity.Failed[T](err)
	}
}

// multipartBody encodes the file part first, keeping its MIME type, followed by the form fields.
func multipartBody(file entity.File, fields map[string]string) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(file.Name)))
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := part.Write(file.Content); err != nil {
		return nil, "", fmt.Errorf("failed to write file part: %w", err)
	}

	for _, name := range sortedKeys(fields) {
		if err := w.WriteField(name, fields[name]); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart body: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
