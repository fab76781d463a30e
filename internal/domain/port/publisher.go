package port

import (
	"context"

	"github.com/hitulnayakpara1412/TradingApp/internal/domain/model"
)

// FeedPublisher emits applied ticks to external consumers. Publishing is
// best-effort; a failed publish never fails the tick cycle.
type FeedPublisher interface {
	PublishTick(ctx context.Context, event model.FeedEvent) error
	Close() error
}
