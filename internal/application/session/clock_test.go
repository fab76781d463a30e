package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestClock(holidays ...string) *Clock {
	return NewClock(Window{OpenHour: 9, OpenMinute: 30, CloseHour: 15, CloseMinute: 30}, holidays, time.UTC)
}

func at(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02 15:04", value)
	if err != nil {
		t.Fatalf("bad test time %q: %v", value, err)
	}
	return ts
}

func TestIsTradingSession(t *testing.T) {
	clock := newTestClock("2026-05-01")

	testCases := []struct {
		name string
		now  string
		want bool
	}{
		{"weekday mid session", "2026-04-15 12:00", true},
		{"open boundary minute included", "2026-04-15 09:30", true},
		{"close boundary minute included", "2026-04-15 15:30", true},
		{"minute before open", "2026-04-15 09:29", false},
		{"minute after close", "2026-04-15 15:31", false},
		{"saturday", "2026-04-18 12:00", false},
		{"sunday", "2026-04-19 12:00", false},
		{"holiday", "2026-05-01 12:00", false},
		{"early morning", "2026-04-15 03:00", false},
		{"late evening", "2026-04-15 22:00", false},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, clock.IsTradingSession(at(t, tt.now)))
		})
	}
}

func TestIsTradingDay(t *testing.T) {
	clock := newTestClock("2026-05-01")

	// Time of day is irrelevant; only weekday and holiday matter.
	assert.True(t, clock.IsTradingDay(at(t, "2026-04-15 03:00")))
	assert.True(t, clock.IsTradingDay(at(t, "2026-04-15 23:59")))
	assert.False(t, clock.IsTradingDay(at(t, "2026-04-18 12:00")))
	assert.False(t, clock.IsTradingDay(at(t, "2026-05-01 12:00")))
}

func TestClockHonorsLocation(t *testing.T) {
	// 14:00 UTC is 09:30 in -04:30; the session is decided in the clock's
	// own location.
	loc := time.FixedZone("test", -(4*3600 + 30*60))
	clock := NewClock(Window{OpenHour: 9, OpenMinute: 30, CloseHour: 15, CloseMinute: 30}, nil, loc)

	assert.True(t, clock.IsTradingSession(at(t, "2026-04-15 14:00")))
	assert.False(t, clock.IsTradingSession(at(t, "2026-04-15 13:59")))
}
