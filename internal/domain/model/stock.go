package model

import "time"

// Candle summarizes price movement over one fixed time bucket.
//
// OriginalOpenTime freezes the bucket's logical start: OpenTime of the last
// (open) candle is never touched on amendment either, but chart clients key
// buckets off the original time, so it is persisted separately and must not
// drift while the candle is amended in place.
type Candle struct {
	OpenTime         time.Time `json:"openTime"`
	OriginalOpenTime time.Time `json:"_internal_originalOpenTime"`
	Open             float64   `json:"open"`
	High             float64   `json:"high"`
	Low              float64   `json:"low"`
	Close            float64   `json:"close"`
}

// Stock is the per-symbol record owned by the series aggregator. All access
// goes through the symbol repository; the record is the unit of optimistic
// mutual exclusion, so no component mutates its fields directly.
type Stock struct {
	Symbol             string   `json:"symbol"`
	CompanyName        string   `json:"companyName"`
	IconURL            string   `json:"iconUrl"`
	CurrentPrice       float64  `json:"currentPrice"`
	LastDayTradedPrice float64  `json:"lastDayTradedPrice"`
	OneMinuteSeries    []Candle `json:"oneMinuteSeries"`
	TenMinuteSeries    []Candle `json:"tenMinuteSeries"`
	Version            int64    `json:"version"`
}

// Clone returns a deep copy, so a mutation can be prepared off the shared
// record and committed with a version check.
func (s *Stock) Clone() *Stock {
	c := *s
	c.OneMinuteSeries = append([]Candle(nil), s.OneMinuteSeries...)
	c.TenMinuteSeries = append([]Candle(nil), s.TenMinuteSeries...)
	return &c
}

// StockSummary is the record without its series, for list/read endpoints.
type StockSummary struct {
	Symbol             string  `json:"symbol"`
	CompanyName        string  `json:"companyName"`
	IconURL            string  `json:"iconUrl"`
	CurrentPrice       float64 `json:"currentPrice"`
	LastDayTradedPrice float64 `json:"lastDayTradedPrice"`
}

func (s *Stock) Summary() StockSummary {
	return StockSummary{
		Symbol:             s.Symbol,
		CompanyName:        s.CompanyName,
		IconURL:            s.IconURL,
		CurrentPrice:       s.CurrentPrice,
		LastDayTradedPrice: s.LastDayTradedPrice,
	}
}

// FeedEvent is one applied tick, published for downstream consumers.
type FeedEvent struct {
	Symbol    string    `json:"symbol"`
	Price     float64   `json:"price"`
	Candle    Candle    `json:"candle"`
	Timestamp time.Time `json:"timestamp"`
}
