package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/hitulnayakpara1412/TradingApp/internal/application/usecase"
	"github.com/hitulnayakpara1412/TradingApp/internal/domain/model"
)

const (
	pingInterval = 45 * time.Second
	readDeadline = 90 * time.Second
)

// FeedHandler is the subscription fan-out layer. Each WebSocket client
// subscribes to one or more symbols; every subscription gets an immediate
// snapshot push and then one push per interval until the connection
// closes. Pushes are point-to-point: two clients on the same symbol read
// the record independently.
type FeedHandler struct {
	useCase  *usecase.StockUseCase
	logger   *slog.Logger
	interval time.Duration
	upgrader websocket.Upgrader
}

func NewFeedHandler(useCase *usecase.StockUseCase, logger *slog.Logger, interval time.Duration) *FeedHandler {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &FeedHandler{
		useCase:  useCase,
		logger:   logger,
		interval: interval,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

type subscribeRequest struct {
	Action  string   `json:"action"`
	Symbol  string   `json:"symbol,omitempty"`
	Symbols []string `json:"symbols,omitempty"`
}

type feedClient struct {
	id   string
	conn *websocket.Conn
	out  chan any
	done chan struct{}

	mu      sync.Mutex
	symbols map[string]struct{}
}

// addSymbol reports whether the symbol is new for this client, so a
// repeated subscribe does not stack a second push loop.
func (c *feedClient) addSymbol(symbol string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.symbols[symbol]; ok {
		return false
	}
	c.symbols[symbol] = struct{}{}
	return true
}

func (h *FeedHandler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	cl := &feedClient{
		id:      uuid.NewString(),
		conn:    conn,
		out:     make(chan any, 64),
		done:    make(chan struct{}),
		symbols: make(map[string]struct{}),
	}
	h.logger.Info("feed client connected", "client", cl.id)

	go h.writeLoop(cl)
	h.readLoop(r.Context(), cl)

	close(cl.done)
	h.logger.Info("feed client disconnected", "client", cl.id)
}

// writeLoop is the single writer for the connection; everything addressed
// to the client funnels through cl.out.
func (h *FeedHandler) writeLoop(cl *feedClient) {
	ping := time.NewTicker(pingInterval)
	defer ping.Stop()
	for {
		select {
		case v := <-cl.out:
			if err := cl.conn.WriteJSON(v); err != nil {
				return
			}
		case <-ping.C:
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-cl.done:
			return
		}
	}
}

func (h *FeedHandler) readLoop(ctx context.Context, cl *feedClient) {
	_ = cl.conn.SetReadDeadline(time.Now().Add(readDeadline))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(readDeadline))
	})

	for {
		_, data, err := cl.conn.ReadMessage()
		if err != nil {
			return
		}

		var req subscribeRequest
		if err := json.Unmarshal(data, &req); err != nil {
			h.logger.Warn("ignoring malformed message", "client", cl.id)
			continue
		}
		if req.Action != "subscribe" {
			continue
		}

		symbols := req.Symbols
		if req.Symbol != "" {
			symbols = append(symbols, req.Symbol)
		}
		for _, symbol := range symbols {
			if symbol == "" || !cl.addSymbol(symbol) {
				continue
			}
			h.logger.Info("client subscribed", "client", cl.id, "symbol", symbol)
			go h.pushLoop(ctx, cl, symbol)
		}
	}
}

// pushLoop sends the current snapshot immediately, then once per interval
// for the lifetime of the connection.
func (h *FeedHandler) pushLoop(ctx context.Context, cl *feedClient, symbol string) {
	h.push(ctx, cl, symbol)

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	for {
		select {
		case <-cl.done:
			return
		case <-ticker.C:
			h.push(ctx, cl, symbol)
		}
	}
}

// push reads the record and addresses it to this client only. A missing
// symbol or a slow client skips the push; the subscription stays live.
func (h *FeedHandler) push(ctx context.Context, cl *feedClient, symbol string) {
	stock, err := h.useCase.Snapshot(ctx, symbol)
	if err != nil {
		if errors.Is(err, model.ErrSymbolNotFound) {
			h.logger.Warn("skipping push for unknown symbol", "client", cl.id, "symbol", symbol)
		} else {
			h.logger.Error("failed to read stock for push", "client", cl.id, "symbol", symbol, "error", err)
		}
		return
	}

	select {
	case cl.out <- stock:
	default:
		h.logger.Warn("dropping push for slow client", "client", cl.id, "symbol", symbol)
	}
}
