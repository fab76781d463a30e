package model

import "math"

// Round2 rounds a monetary value to two decimal places. Every price is
// rounded before storage or comparison.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
