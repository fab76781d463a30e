package publisher

import (
	"context"

	"github.com/hitulnayakpara1412/TradingApp/internal/domain/model"
	"github.com/hitulnayakpara1412/TradingApp/internal/domain/port"
)

// NoopPublisher is used when Kafka is not configured.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher { return &NoopPublisher{} }

var _ port.FeedPublisher = (*NoopPublisher)(nil)

func (*NoopPublisher) PublishTick(context.Context, model.FeedEvent) error { return nil }

func (*NoopPublisher) Close() error { return nil }
