package engine

import (
	"github.com/shopspring/decimal"

	"fundarb/internal/market"
)

// ExecutionPrice picks the quote a marketable order on the given side clears
// against: the bid when selling into it, the ask when lifting it. Used for
// sizing; the book is re-read again at order-build time.
func ExecutionPrice(book market.TopOfBook, side market.Side) decimal.Decimal {
	if side == market.Short {
		return book.Bid
	}
	return book.Ask
}
