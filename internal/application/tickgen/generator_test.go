package tickgen

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hitulnayakpara1412/TradingApp/internal/domain/model"
)

func newTestGenerator(seed int64) *Generator {
	return New(DefaultConfig(), rand.New(rand.NewSource(seed)))
}

func isTwoDecimals(v float64) bool {
	scaled := v * 100
	return math.Abs(scaled-math.Round(scaled)) < 1e-6
}

func TestNextRejectsInvalidInput(t *testing.T) {
	g := newTestGenerator(1)

	for _, price := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), -10} {
		_, err := g.Next(price)
		assert.ErrorIs(t, err, model.ErrInvalidPrice)
	}
}

func TestNextCandleInvariants(t *testing.T) {
	g := newTestGenerator(42)

	price := 100.0
	for i := 0; i < 5000; i++ {
		c, err := g.Next(price)
		require.NoError(t, err)

		assert.LessOrEqual(t, c.Low, c.Open, "low above open")
		assert.LessOrEqual(t, c.Low, c.Close, "low above close")
		assert.GreaterOrEqual(t, c.High, c.Open, "high below open")
		assert.GreaterOrEqual(t, c.High, c.Close, "high below close")
		assert.Equal(t, model.Round2(price), c.Open)

		assert.True(t, isTwoDecimals(c.Open))
		assert.True(t, isTwoDecimals(c.High))
		assert.True(t, isTwoDecimals(c.Low))
		assert.True(t, isTwoDecimals(c.Close))

		price = c.Close
		if price <= 0 {
			price = 100.0
		}
	}
}

func TestNextRoundsClose(t *testing.T) {
	g := newTestGenerator(7)

	c, err := g.Next(100.004)
	require.NoError(t, err)

	assert.True(t, isTwoDecimals(c.Close), "close %v not rounded to two decimals", c.Close)
	assert.Equal(t, 100.0, c.Open)
}

func TestNextBoundsChange(t *testing.T) {
	cfg := DefaultConfig()
	g := New(cfg, rand.New(rand.NewSource(3)))

	// Change is bounded by the configured range plus the trend bias.
	maxUp := cfg.MaxChange + cfg.TrendBias
	maxDown := cfg.MinChange - cfg.TrendBias
	for i := 0; i < 2000; i++ {
		c, err := g.Next(200)
		require.NoError(t, err)
		change := (c.Close - 200) / 200
		assert.LessOrEqual(t, change, maxUp+0.0001)
		assert.GreaterOrEqual(t, change, maxDown-0.0001)
	}
}
