package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hitulnayakpara1412/TradingApp/internal/adapter/repository"
	"github.com/hitulnayakpara1412/TradingApp/internal/application/usecase"
	"github.com/hitulnayakpara1412/TradingApp/internal/domain/model"
)

func newFeedServer(t *testing.T, interval time.Duration) (*httptest.Server, *repository.MemoryRepository) {
	t.Helper()
	repo := repository.NewMemoryRepository()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewFeedHandler(usecase.NewStockUseCase(repo), log, interval)

	srv := httptest.NewServer(http.HandlerFunc(h.Serve))
	t.Cleanup(srv.Close)
	return srv, repo
}

func dialFeed(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readStock(t *testing.T, conn *websocket.Conn) model.Stock {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var stock model.Stock
	require.NoError(t, conn.ReadJSON(&stock))
	return stock
}

func TestFeedSubscribePushesSnapshot(t *testing.T) {
	srv, repo := newFeedServer(t, time.Minute)
	require.NoError(t, repo.Register(context.Background(), model.Stock{
		Symbol:       "ABC",
		CompanyName:  "ABC Inc",
		CurrentPrice: 100,
		OneMinuteSeries: []model.Candle{
			{Open: 100, High: 101, Low: 99, Close: 100.5},
		},
	}))

	conn := dialFeed(t, srv)
	require.NoError(t, conn.WriteJSON(subscribeRequest{Action: "subscribe", Symbol: "ABC"}))

	stock := readStock(t, conn)
	assert.Equal(t, "ABC", stock.Symbol)
	require.Len(t, stock.OneMinuteSeries, 1)
	assert.Equal(t, 100.5, stock.OneMinuteSeries[0].Close)
}

func TestFeedPushesPeriodically(t *testing.T) {
	srv, repo := newFeedServer(t, 50*time.Millisecond)
	require.NoError(t, repo.Register(context.Background(), model.Stock{Symbol: "ABC", CompanyName: "ABC Inc", CurrentPrice: 100}))

	conn := dialFeed(t, srv)
	require.NoError(t, conn.WriteJSON(subscribeRequest{Action: "subscribe", Symbol: "ABC"}))

	for i := 0; i < 3; i++ {
		stock := readStock(t, conn)
		assert.Equal(t, "ABC", stock.Symbol)
	}
}

func TestFeedMultiSymbolSubscribe(t *testing.T) {
	srv, repo := newFeedServer(t, time.Minute)
	ctx := context.Background()
	require.NoError(t, repo.Register(ctx, model.Stock{Symbol: "ABC", CompanyName: "ABC Inc", CurrentPrice: 100}))
	require.NoError(t, repo.Register(ctx, model.Stock{Symbol: "XYZ", CompanyName: "XYZ Corp", CurrentPrice: 250}))

	conn := dialFeed(t, srv)
	require.NoError(t, conn.WriteJSON(subscribeRequest{Action: "subscribe", Symbols: []string{"ABC", "XYZ"}}))

	got := map[string]bool{}
	for i := 0; i < 2; i++ {
		got[readStock(t, conn).Symbol] = true
	}
	assert.True(t, got["ABC"] && got["XYZ"], "expected one snapshot per subscribed symbol, got %v", got)
}

func TestFeedDuplicateSubscribeDoesNotStack(t *testing.T) {
	srv, repo := newFeedServer(t, time.Minute)
	require.NoError(t, repo.Register(context.Background(), model.Stock{Symbol: "ABC", CompanyName: "ABC Inc", CurrentPrice: 100}))

	conn := dialFeed(t, srv)
	require.NoError(t, conn.WriteJSON(subscribeRequest{Action: "subscribe", Symbol: "ABC"}))
	require.NoError(t, conn.WriteJSON(subscribeRequest{Action: "subscribe", Symbol: "ABC"}))

	readStock(t, conn)

	// With a one-minute interval the only expected push was the initial
	// snapshot; a second immediate message means the subscribe stacked.
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(300*time.Millisecond)))
	var extra model.Stock
	assert.Error(t, conn.ReadJSON(&extra))
}

func TestFeedUnknownSymbolKeepsConnectionAlive(t *testing.T) {
	srv, repo := newFeedServer(t, time.Minute)
	require.NoError(t, repo.Register(context.Background(), model.Stock{Symbol: "ABC", CompanyName: "ABC Inc", CurrentPrice: 100}))

	conn := dialFeed(t, srv)
	require.NoError(t, conn.WriteJSON(subscribeRequest{Action: "subscribe", Symbol: "NOPE"}))
	require.NoError(t, conn.WriteJSON(subscribeRequest{Action: "subscribe", Symbol: "ABC"}))

	// The unknown symbol is skipped, not fatal; the next subscription on
	// the same connection still gets its snapshot.
	stock := readStock(t, conn)
	assert.Equal(t, "ABC", stock.Symbol)
}

func TestFeedIgnoresMalformedMessages(t *testing.T) {
	srv, repo := newFeedServer(t, time.Minute)
	require.NoError(t, repo.Register(context.Background(), model.Stock{Symbol: "ABC", CompanyName: "ABC Inc", CurrentPrice: 100}))

	conn := dialFeed(t, srv)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	require.NoError(t, conn.WriteJSON(subscribeRequest{Action: "subscribe", Symbol: "ABC"}))

	stock := readStock(t, conn)
	assert.Equal(t, "ABC", stock.Symbol)
}
