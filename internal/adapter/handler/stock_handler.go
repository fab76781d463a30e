package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitulnayakpara1412/TradingApp/internal/application/usecase"
	"github.com/hitulnayakpara1412/TradingApp/internal/domain/model"
)

type StockHandler struct {
	useCase *usecase.StockUseCase
	logger  *slog.Logger
}

func NewStockHandler(useCase *usecase.StockUseCase, logger *slog.Logger) *StockHandler {
	return &StockHandler{
		useCase: useCase,
		logger:  logger,
	}
}

type registerRequest struct {
	Symbol             string  `json:"symbol"`
	CompanyName        string  `json:"companyName"`
	IconURL            string  `json:"iconUrl"`
	CurrentPrice       float64 `json:"currentPrice"`
	LastDayTradedPrice float64 `json:"lastDayTradedPrice"`
}

func (h *StockHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	stock, err := h.useCase.Register(r.Context(), req.Symbol, req.CompanyName, req.IconURL, req.CurrentPrice, req.LastDayTradedPrice)
	if err != nil {
		if errors.Is(err, model.ErrSymbolExists) {
			http.Error(w, "stock already exists", http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to register stock", "symbol", req.Symbol, "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.logger.Info("stock registered", "symbol", stock.Symbol)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Stock registered successfully",
		"data":    stock.Summary(),
	})
}

func (h *StockHandler) List(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.useCase.ListSummaries(r.Context())
	if err != nil {
		h.logger.Error("failed to list stocks", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Stocks retrieved successfully",
		"data":    summaries,
	})
}

func (h *StockHandler) GetBySymbol(w http.ResponseWriter, r *http.Request) {
	symbol := r.URL.Query().Get("stock")
	if symbol == "" {
		http.Error(w, "stock symbol is required", http.StatusBadRequest)
		return
	}

	summary, err := h.useCase.GetSummary(r.Context(), symbol)
	if err != nil {
		if errors.Is(err, model.ErrSymbolNotFound) {
			http.Error(w, "stock not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to get stock", "symbol", symbol, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Stock retrieved successfully",
		"data":    summary,
	})
}
