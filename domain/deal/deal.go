package deal

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/listing"
)

// Request is a buyer's demand matched against one seller's listing set.
type Request struct {
	Symbol   domain.Symbol
	Price    domain.Price
	Quantity int64
}

// Result is one partial deal produced by Match. Index addresses the listing
// in the input slice, Remain is the still unmatched quantity of the request
// after this deal. Results are transient and consumed within the request.
type Result struct {
	Index    int
	Quantity int64
	Price    domain.Price
	Remain   int64
}

type candidate struct {
	index  int
	amount decimal.Decimal
}

// Match walks the seller's listings cheapest first and greedily consumes
// remaining quantities until the requested quantity is exhausted. Listings
// outside their visibility window or priced in another symbol are skipped.
// Fixed-price listings above the offered price are skipped; auction listings
// qualify for evaluation regardless of amount, their completion rules are the
// caller's responsibility. An empty result means no deal.
func Match(req Request, listings []*listing.Listing, now time.Time) ([]Result, error) {
	reqAmount, err := req.Price.Decimal()
	if err != nil {
		return nil, err
	}

	candidates := []candidate{}
	for i, l := range listings {
		if l.Quantity <= 0 || l.Symbol != req.Symbol {
			continue
		}
		if l.Price.Symbol != req.Price.Symbol {
			continue
		}
		if now.Before(l.StartTime) || now.Before(l.PublicTime) {
			continue
		}
		amount, err := l.Price.Decimal()
		if err != nil {
			return nil, err
		}
		if l.ListType == listing.ListTypeFixedPrice && amount.GreaterThan(reqAmount) {
			continue
		}
		candidates = append(candidates, candidate{index: i, amount: amount})
	}

	// cheapest listing served first, ties keep original order
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].amount.LessThan(candidates[j].amount)
	})

	results := []Result{}
	remain := req.Quantity
	for _, c := range candidates {
		if remain <= 0 {
			break
		}
		l := listings[c.index]
		quantity := l.Quantity
		if quantity > remain {
			quantity = remain
		}
		remain -= quantity
		results = append(results, Result{
			Index:    c.index,
			Quantity: quantity,
			Price:    l.Price,
			Remain:   remain,
		})
	}

	return results, nil
}
