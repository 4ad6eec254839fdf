package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Round2 normalizes a monetary amount to two decimal places. Every amount
// that enters or leaves the system passes through this.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// SumRound2 sums amounts and rounds the result to two decimal places.
func SumRound2(amounts []decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, a := range amounts {
		sum = sum.Add(a)
	}

	return Round2(sum)
}

// DateOf truncates a timestamp to a calendar date in UTC. Invoice dates and
// due dates are stored at date resolution; only payment timestamps keep time.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
