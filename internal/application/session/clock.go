// Package session decides whether wall-clock time falls inside the modeled
// trading day. The clock is a pure function of time plus configured window
// and holiday calendar; it keeps no state.
package session

import "time"

// Window is the daily trading window, inclusive of both boundary minutes.
type Window struct {
	OpenHour    int
	OpenMinute  int
	CloseHour   int
	CloseMinute int
}

type Clock struct {
	window   Window
	holidays map[string]struct{}
	loc      *time.Location
}

// NewClock builds a clock for the given window and holiday dates
// (formatted YYYY-MM-DD, interpreted in loc).
func NewClock(window Window, holidays []string, loc *time.Location) *Clock {
	hs := make(map[string]struct{}, len(holidays))
	for _, h := range holidays {
		hs[h] = struct{}{}
	}
	if loc == nil {
		loc = time.Local
	}
	return &Clock{window: window, holidays: hs, loc: loc}
}

// IsTradingSession reports whether now is a weekday inside the trading
// window and not a holiday.
func (c *Clock) IsTradingSession(now time.Time) bool {
	return c.IsTradingDay(now) && c.inWindow(now.In(c.loc))
}

// IsTradingDay reports whether now is a weekday and not a holiday,
// ignoring time of day. The daily reset is gated on this so repeated
// firings within one calendar day stay harmless.
func (c *Clock) IsTradingDay(now time.Time) bool {
	t := now.In(c.loc)
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	_, holiday := c.holidays[t.Format("2006-01-02")]
	return !holiday
}

func (c *Clock) inWindow(t time.Time) bool {
	h, m := t.Hour(), t.Minute()
	switch {
	case h == c.window.OpenHour && h == c.window.CloseHour:
		return m >= c.window.OpenMinute && m <= c.window.CloseMinute
	case h == c.window.OpenHour:
		return m >= c.window.OpenMinute
	case h == c.window.CloseHour:
		return m <= c.window.CloseMinute
	default:
		return h > c.window.OpenHour && h < c.window.CloseHour
	}
}
