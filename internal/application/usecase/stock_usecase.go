package usecase

import (
	"context"
	"fmt"

	"github.com/hitulnayakpara1412/TradingApp/internal/domain/model"
	"github.com/hitulnayakpara1412/TradingApp/internal/domain/port"
)

// StockUseCase covers the registry surface: registering instruments and
// reading their records back for the HTTP and WebSocket handlers.
type StockUseCase struct {
	repo port.SymbolRepository
}

func NewStockUseCase(repo port.SymbolRepository) *StockUseCase {
	return &StockUseCase{repo: repo}
}

// Register creates a symbol record with seed prices and empty series.
func (uc *StockUseCase) Register(ctx context.Context, symbol, companyName, iconURL string, currentPrice, lastDayTradedPrice float64) (*model.Stock, error) {
	if symbol == "" || companyName == "" {
		return nil, fmt.Errorf("symbol and company name are required")
	}
	if currentPrice <= 0 || lastDayTradedPrice <= 0 {
		return nil, fmt.Errorf("seed prices must be positive")
	}

	stock := model.Stock{
		Symbol:             symbol,
		CompanyName:        companyName,
		IconURL:            iconURL,
		CurrentPrice:       model.Round2(currentPrice),
		LastDayTradedPrice: model.Round2(lastDayTradedPrice),
	}
	if err := uc.repo.Register(ctx, stock); err != nil {
		return nil, err
	}
	return &stock, nil
}

// GetSummary returns one record without its series.
func (uc *StockUseCase) GetSummary(ctx context.Context, symbol string) (*model.StockSummary, error) {
	stock, err := uc.repo.Get(ctx, symbol)
	if err != nil {
		return nil, err
	}
	summary := stock.Summary()
	return &summary, nil
}

// ListSummaries returns every record without series.
func (uc *StockUseCase) ListSummaries(ctx context.Context) ([]model.StockSummary, error) {
	stocks, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]model.StockSummary, 0, len(stocks))
	for i := range stocks {
		summaries = append(summaries, stocks[i].Summary())
	}
	return summaries, nil
}

// Snapshot returns the full record, series included, for feed pushes.
func (uc *StockUseCase) Snapshot(ctx context.Context, symbol string) (*model.Stock, error) {
	return uc.repo.Get(ctx, symbol)
}
