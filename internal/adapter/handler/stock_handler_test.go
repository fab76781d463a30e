package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hitulnayakpara1412/TradingApp/internal/adapter/repository"
	"github.com/hitulnayakpara1412/TradingApp/internal/application/usecase"
	"github.com/hitulnayakpara1412/TradingApp/internal/domain/model"
)

func newStockHandler(t *testing.T) (*StockHandler, *repository.MemoryRepository) {
	t.Helper()
	repo := repository.NewMemoryRepository()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewStockHandler(usecase.NewStockUseCase(repo), log), repo
}

func TestRegisterCreatesStock(t *testing.T) {
	h, repo := newStockHandler(t)

	body := `{"symbol":"ABC","companyName":"ABC Inc","iconUrl":"https://example.com/abc.png","currentPrice":100.456,"lastDayTradedPrice":99.5}`
	req := httptest.NewRequest(http.MethodPost, "/stocks/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Message string             `json:"message"`
		Data    model.StockSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ABC", resp.Data.Symbol)
	assert.Equal(t, 100.46, resp.Data.CurrentPrice, "seed price is rounded to two decimals")

	_, err := repo.Get(context.Background(), "ABC")
	assert.NoError(t, err)
}

func TestRegisterRejectsDuplicate(t *testing.T) {
	h, repo := newStockHandler(t)
	require.NoError(t, repo.Register(context.Background(), model.Stock{Symbol: "ABC", CompanyName: "ABC Inc", CurrentPrice: 100}))

	body := `{"symbol":"ABC","companyName":"ABC Inc","currentPrice":100,"lastDayTradedPrice":100}`
	req := httptest.NewRequest(http.MethodPost, "/stocks/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterRejectsBadInput(t *testing.T) {
	h, _ := newStockHandler(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"symbol":`},
		{"missing symbol", `{"companyName":"ABC Inc","currentPrice":100,"lastDayTradedPrice":100}`},
		{"zero price", `{"symbol":"ABC","companyName":"ABC Inc","currentPrice":0,"lastDayTradedPrice":100}`},
		{"negative price", `{"symbol":"ABC","companyName":"ABC Inc","currentPrice":100,"lastDayTradedPrice":-1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/stocks/register", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.Register(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestListReturnsSummaries(t *testing.T) {
	h, repo := newStockHandler(t)
	ctx := context.Background()
	require.NoError(t, repo.Register(ctx, model.Stock{Symbol: "ABC", CompanyName: "ABC Inc", CurrentPrice: 100}))
	require.NoError(t, repo.Register(ctx, model.Stock{Symbol: "XYZ", CompanyName: "XYZ Corp", CurrentPrice: 250}))

	req := httptest.NewRequest(http.MethodGet, "/stocks", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []model.StockSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
}

func TestGetBySymbol(t *testing.T) {
	h, repo := newStockHandler(t)
	require.NoError(t, repo.Register(context.Background(), model.Stock{Symbol: "ABC", CompanyName: "ABC Inc", CurrentPrice: 100}))

	req := httptest.NewRequest(http.MethodGet, "/stocks/stock?stock=ABC", nil)
	rec := httptest.NewRecorder()

	h.GetBySymbol(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data model.StockSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ABC Inc", resp.Data.CompanyName)
}

func TestGetBySymbolNotFound(t *testing.T) {
	h, _ := newStockHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/stocks/stock?stock=NOPE", nil)
	rec := httptest.NewRecorder()
	h.GetBySymbol(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/stocks/stock", nil)
	rec = httptest.NewRecorder()
	h.GetBySymbol(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
