package usecase

import (
	"time"

	"github.com/shopspring/decimal"
)

// dutchPrice computes the current acceptable price of a descending auction.
// The price decays linearly from starting to ending over the auction duration
// and never drops below ending. At zero elapsed time it returns starting.
func dutchPrice(starting, ending decimal.Decimal, elapsed, duration time.Duration) decimal.Decimal {
	if duration <= 0 {
		return ending
	}
	if elapsed <= 0 {
		return starting
	}

	elapsedSeconds := decimal.NewFromInt(int64(elapsed / time.Second))
	durationSeconds := decimal.NewFromInt(int64(duration / time.Second))

	price := starting.Sub(starting.Sub(ending).Mul(elapsedSeconds).Div(durationSeconds))
	if price.LessThan(ending) {
		return ending
	}
	return price
}

// englishMinBid computes the minimum acceptable bid of an ascending auction:
// the starting price, or one unit above the highest standing bid.
func englishMinBid(starting decimal.Decimal, highest *decimal.Decimal) decimal.Decimal {
	if highest == nil {
		return starting
	}
	min := highest.Add(decimal.NewFromInt(1))
	if min.LessThan(starting) {
		return starting
	}
	return min
}
