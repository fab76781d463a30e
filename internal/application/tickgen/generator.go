// Package tickgen synthesizes price observations as a pattern-weighted
// random walk with trend bias. The generator is pure with respect to
// stored state: it takes the last known price and returns one candle, and
// the caller stamps the time fields.
package tickgen

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/hitulnayakpara1412/TradingApp/internal/domain/model"
)

// Config holds the numeric ranges of the walk. Change bounds and trend
// bias are fractions; wick values are absolute price excursions drawn
// uniformly from [0, value).
type Config struct {
	MinChange float64
	MaxChange float64
	TrendBias float64
	TinyWick  float64
	SmallWick float64
	LongWick  float64
}

// DefaultConfig matches the observed feed: +/-20% moves, 0.5% trend bias,
// wick excursions of up to 1, 2 and 4.
func DefaultConfig() Config {
	return Config{
		MinChange: -0.2,
		MaxChange: 0.2,
		TrendBias: 0.005,
		TinyWick:  1,
		SmallWick: 2,
		LongWick:  4,
	}
}

type Generator struct {
	cfg Config

	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a generator. rng may be nil, in which case a time-seeded
// source is used; tests inject a fixed seed.
func New(cfg Config, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{cfg: cfg, rng: rng}
}

// Next synthesizes one observation from lastPrice. The returned candle has
// open = lastPrice and low <= open, close <= high by construction; time
// fields are zero. Non-finite or negative input is rejected.
func (g *Generator) Next(lastPrice float64) (model.Candle, error) {
	if math.IsNaN(lastPrice) || math.IsInf(lastPrice, 0) || lastPrice < 0 {
		return model.Candle{}, model.ErrInvalidPrice
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	change := g.rng.Float64()*(g.cfg.MaxChange-g.cfg.MinChange) + g.cfg.MinChange
	change += g.trendModifier()
	close := model.Round2(lastPrice * (1 + change))

	upper := math.Max(lastPrice, close)
	lower := math.Min(lastPrice, close)

	var high, low float64
	switch p := g.rng.Float64(); {
	case p < 0.15: // marubozu: no wicks at all
		high, low = upper, lower
	case p < 0.3: // hammer
		high = upper
		low = lower - g.rng.Float64()*g.cfg.SmallWick
	case p < 0.45: // inverted hammer
		high = upper + g.rng.Float64()*g.cfg.SmallWick
		low = lower
	case p < 0.6: // shooting star
		high = upper + g.rng.Float64()*g.cfg.SmallWick
		low = lower - g.rng.Float64()*g.cfg.TinyWick
	default:
		if g.rng.Float64() < 0.5 { // long bullish
			high = upper + g.rng.Float64()*g.cfg.LongWick
			low = lower - g.rng.Float64()*g.cfg.SmallWick
		} else { // long bearish
			high = upper + g.rng.Float64()*g.cfg.SmallWick
			low = lower - g.rng.Float64()*g.cfg.LongWick
		}
	}

	return model.Candle{
		Open:  model.Round2(lastPrice),
		High:  model.Round2(high),
		Low:   model.Round2(low),
		Close: close,
	}, nil
}

// trendModifier picks one of three equally likely trend classes.
func (g *Generator) trendModifier() float64 {
	switch t := g.rng.Float64(); {
	case t < 0.33:
		return 0
	case t < 0.66:
		return g.cfg.TrendBias
	default:
		return -g.cfg.TrendBias
	}
}
