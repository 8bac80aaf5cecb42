package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/diillson/finsight-dashboard-go/internal/domain/entity"
	"github.com/diillson/finsight-dashboard-go/internal/log"
	"github.com/diillson/finsight-dashboard-go/internal/shared/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T, handler http.HandlerFunc) *HTTPRepositoryImpl {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := types.DefaultConfig()
	cfg.BackendURL = srv.URL
	repo, err := NewHTTPRepository(cfg, log.Discard())
	require.NoError(t, err)
	return repo.(*HTTPRepositoryImpl)
}

var march2024 = entity.Period{Month: "march", Year: 2024}

func TestIngestStatementSendsRenamedFileAndPeriod(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/upload/", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get(headerRequestID))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "january", r.FormValue("month"))
		assert.Equal(t, "2024", r.FormValue("year"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		content, _ := io.ReadAll(file)
		assert.Equal(t, "january-2024-statement.pdf", header.Filename)
		assert.Equal(t, "application/pdf", header.Header.Get("Content-Type"))
		assert.Equal(t, "%PDF-1.4", string(content))

		_, _ = w.Write([]byte(`{"filename":"january-2024-statement.pdf","output_csv":"out.csv","message":"File processed successfully."}`))
	})

	outcome := repo.IngestStatement(context.Background(), entity.UploadRequest{
		File:   entity.File{Name: "statement.pdf", ContentType: "application/pdf", Content: []byte("%PDF-1.4")},
		Period: entity.Period{Month: "january", Year: 2024},
	})

	require.True(t, outcome.IsOK(), "%v", outcome.Err)
	assert.Equal(t, "out.csv", outcome.Payload.OutputCSV)
}

func TestIngestStatementServerErrorIsFailure(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	outcome := repo.IngestStatement(context.Background(), entity.UploadRequest{
		File:   entity.File{Name: "s.pdf", Content: []byte("x")},
		Period: march2024,
	})

	assert.Equal(t, entity.OutcomeError, outcome.Kind)
	var statusErr *StatusError
	require.ErrorAs(t, outcome.Err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
}

func TestIngestReceipt(t *testing.T) {
	t.Run("decodes details with numeric cost", func(t *testing.T) {
		repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseMultipartForm(1<<20))
			assert.Equal(t, "paid", r.FormValue("transactionType"))
			_, header, err := r.FormFile("file")
			require.NoError(t, err)
			assert.Equal(t, "receipt.jpg", header.Filename)
			assert.Equal(t, "image/jpeg", header.Header.Get("Content-Type"))
			_, _ = w.Write([]byte(`{"date":"2024-03-02","brand":"ACME","total_cost":42.5,"category":null}`))
		})

		outcome := repo.IngestReceipt(context.Background(), entity.ReceiptUploadRequest{
			File:            entity.File{Name: "receipt.jpg", ContentType: "image/jpeg", Content: []byte{0xff, 0xd8}},
			TransactionType: entity.TransactionPaid,
		})

		require.True(t, outcome.IsOK())
		assert.Equal(t, entity.ReceiptDetails{Date: "2024-03-02", Brand: "ACME", TotalCost: "42.5"}, outcome.Payload)
	})

	t.Run("bare acknowledgement is success", func(t *testing.T) {
		repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`"ok"`))
		})

		outcome := repo.IngestReceipt(context.Background(), entity.ReceiptUploadRequest{
			File:            entity.File{Name: "r.png", Content: []byte{1}},
			TransactionType: entity.TransactionReceived,
		})

		require.True(t, outcome.IsOK())
		assert.Equal(t, entity.ReceiptDetails{}, outcome.Payload)
	})
}

func TestGetCategoryBreakdown(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/get_graph_data/", r.URL.Path)
			assert.Equal(t, "march", r.URL.Query().Get("month"))
			assert.Equal(t, "2024", r.URL.Query().Get("year"))
			_, _ = w.Write([]byte(`[{"Category":"Food","Amount":500},{"Category":"Rent","Amount":"1200.50"}]`))
		})

		outcome := repo.GetCategoryBreakdown(context.Background(), march2024)

		require.True(t, outcome.IsOK())
		require.Len(t, outcome.Payload, 2)
		assert.Equal(t, "Food", outcome.Payload[0].Category)
		assert.True(t, outcome.Payload[1].Amount.Equal(decimal.RequireFromString("1200.50")))
	})

	t.Run("404 is not found", func(t *testing.T) {
		repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"No data found for the selected month and year."}`))
		})

		outcome := repo.GetCategoryBreakdown(context.Background(), march2024)

		assert.Equal(t, entity.OutcomeNotFound, outcome.Kind)
	})

	t.Run("malformed body is error", func(t *testing.T) {
		repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		})

		outcome := repo.GetCategoryBreakdown(context.Background(), march2024)

		assert.Equal(t, entity.OutcomeError, outcome.Kind)
	})
}

func TestGetWeeklySeries(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/get_bar_graph_data/", r.URL.Path)
		_, _ = w.Write([]byte(`{"month_name":"March","weekly_spending":[
			{"Week":"Week 1","Amount":300,"Type":"Savings"},
			{"Week":"Week 1","Amount":700,"Type":"Expense"}]}`))
	})

	outcome := repo.GetWeeklySeries(context.Background(), march2024)

	require.True(t, outcome.IsOK())
	assert.Equal(t, "March", outcome.Payload.MonthName)
	require.Len(t, outcome.Payload.Entries, 2)
	assert.Equal(t, entity.EntrySavings, outcome.Payload.Entries[0].Type)
	assert.Equal(t, entity.ColorRed, outcome.Payload.Stacked().Bars[1].Color)
}

func TestRunAnalysis(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/analyze", r.URL.Path)
		assert.Equal(t, "70", r.URL.Query().Get("spending_pct"))
		assert.Equal(t, "30", r.URL.Query().Get("saving_pct"))
		_, _ = w.Write([]byte(`{"total_spent":7000,"total_saved":3000,"expected_spent":7000,"expected_saved":3000,
			"deviation_spent":0,"deviation_saved":0,"max_spent_category":"Groceries",
			"ai_recommendations":"Keep going.","suggestions":["Cook at home"]}`))
	})

	outcome := repo.RunAnalysis(context.Background(), entity.DefaultAnalysisTarget)

	require.True(t, outcome.IsOK())
	assert.Equal(t, "Groceries", outcome.Payload.MaxSpentCategory)
	assert.True(t, outcome.Payload.TotalSpent.Equal(decimal.NewFromInt(7000)))
	assert.Equal(t, []string{"Cook at home"}, outcome.Payload.Suggestions)
}

func TestRunAnalysisNotFoundIsFailure(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	outcome := repo.RunAnalysis(context.Background(), entity.DefaultAnalysisTarget)

	assert.Equal(t, entity.OutcomeError, outcome.Kind)
}

func TestChat(t *testing.T) {
	query := entity.ChatQuery{Query: "How much did I spend?", Period: march2024}

	t.Run("ok", func(t *testing.T) {
		repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/query", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, map[string]string{"query": "How much did I spend?", "month": "march", "year": "2024"}, body)
			_, _ = w.Write([]byte(`{"response":"About 1200."}`))
		})

		outcome := repo.Chat(context.Background(), query)

		require.True(t, outcome.IsOK())
		assert.Equal(t, "About 1200.", outcome.Payload.Response)
	})

	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"missing response", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`{}`)) }},
		{"not json", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`oops`)) }},
		{"server error", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusBadGateway) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newRepo(t, tt.handler)
			assert.Equal(t, entity.OutcomeError, repo.Chat(context.Background(), query).Kind)
		})
	}
}

func TestTransportFailureIsError(t *testing.T) {
	cfg := types.DefaultConfig()
	cfg.BackendURL = "http://127.0.0.1:1"
	repo, err := NewHTTPRepository(cfg, log.Discard(), WithHTTPClient(&http.Client{Timeout: time.Second}))
	require.NoError(t, err)

	outcome := repo.GetCategoryBreakdown(context.Background(), march2024)

	assert.Equal(t, entity.OutcomeError, outcome.Kind)
	assert.Error(t, outcome.Err)
}

func TestResolveKeepsBasePath(t *testing.T) {
	cfg := types.DefaultConfig()
	cfg.BackendURL = "https://api.example.com/v1/"
	repo, err := NewHTTPRepository(cfg, log.Discard())
	require.NoError(t, err)

	got := repo.(*HTTPRepositoryImpl).resolve("/get_graph_data/", periodQuery(march2024))

	assert.Equal(t, "https://api.example.com/v1/get_graph_data/?month=march&year=2024", got)
}
