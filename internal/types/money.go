package types

import "math"

// Round2 rounds a dollar amount to cents, half away from zero. Every
// aggregation step rounds before feeding the next one so that totals match
// what a printed estimate shows line by line.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
