package deal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/listing"
)

const (
	art = domain.Symbol("ART")
	elf = domain.Symbol("ELF")
)

func fixedPrice(amount string, quantity int64, start time.Time) *listing.Listing {
	return &listing.Listing{
		Symbol:   art,
		Owner:    "0xseller",
		ListType: listing.ListTypeFixedPrice,
		Price:    domain.Price{Symbol: elf, Amount: amount},
		Quantity: quantity,
		Window: listing.Window{
			StartTime:     start,
			PublicTime:    start,
			DurationHours: 24,
		},
	}
}

func TestMatchCheapestFirst(t *testing.T) {
	req := require.New(t)
	now := time.Date(2022, 7, 1, 12, 0, 0, 0, time.UTC)
	open := now.Add(-time.Hour)

	listings := []*listing.Listing{
		fixedPrice("30", 1, open),
		fixedPrice("10", 1, open),
		fixedPrice("20", 1, open),
	}

	results, err := Match(Request{
		Symbol:   art,
		Price:    domain.Price{Symbol: elf, Amount: "30"},
		Quantity: 3,
	}, listings, now)
	req.NoError(err)
	req.Len(results, 3)

	// served in price order 10, 20, 30 regardless of input order
	req.Equal(1, results[0].Index)
	req.Equal("10", results[0].Price.Amount)
	req.Equal(int64(2), results[0].Remain)
	req.Equal(2, results[1].Index)
	req.Equal("20", results[1].Price.Amount)
	req.Equal(int64(1), results[1].Remain)
	req.Equal(0, results[2].Index)
	req.Equal("30", results[2].Price.Amount)
	req.Equal(int64(0), results[2].Remain)
}

func TestMatchPartialFulfillment(t *testing.T) {
	req := require.New(t)
	now := time.Date(2022, 7, 1, 12, 0, 0, 0, time.UTC)
	open := now.Add(-time.Hour)

	listings := []*listing.Listing{
		fixedPrice("10", 2, open),
	}

	results, err := Match(Request{
		Symbol:   art,
		Price:    domain.Price{Symbol: elf, Amount: "10"},
		Quantity: 5,
	}, listings, now)
	req.NoError(err)
	req.Len(results, 1)
	req.Equal(int64(2), results[0].Quantity)
	req.Equal(int64(3), results[0].Remain)
}

func TestMatchSkipsTooExpensiveFixedPrice(t *testing.T) {
	req := require.New(t)
	now := time.Date(2022, 7, 1, 12, 0, 0, 0, time.UTC)
	open := now.Add(-time.Hour)

	listings := []*listing.Listing{
		fixedPrice("15", 1, open),
		fixedPrice("5", 1, open),
	}

	results, err := Match(Request{
		Symbol:   art,
		Price:    domain.Price{Symbol: elf, Amount: "10"},
		Quantity: 2,
	}, listings, now)
	req.NoError(err)
	req.Len(results, 1)
	req.Equal(1, results[0].Index)
}

func TestMatchSkipsClosedWindows(t *testing.T) {
	req := require.New(t)
	now := time.Date(2022, 7, 1, 12, 0, 0, 0, time.UTC)

	notStarted := fixedPrice("10", 1, now.Add(time.Hour))
	notPublic := fixedPrice("10", 1, now.Add(-time.Hour))
	notPublic.PublicTime = now.Add(time.Hour)
	open := fixedPrice("10", 1, now.Add(-time.Hour))

	results, err := Match(Request{
		Symbol:   art,
		Price:    domain.Price{Symbol: elf, Amount: "10"},
		Quantity: 3,
	}, []*listing.Listing{notStarted, notPublic, open}, now)
	req.NoError(err)
	req.Len(results, 1)
	req.Equal(2, results[0].Index)
}

func TestMatchSkipsOtherPaymentSymbols(t *testing.T) {
	req := require.New(t)
	now := time.Date(2022, 7, 1, 12, 0, 0, 0, time.UTC)
	open := now.Add(-time.Hour)

	other := fixedPrice("10", 1, open)
	other.Price.Symbol = "USDT"

	results, err := Match(Request{
		Symbol:   art,
		Price:    domain.Price{Symbol: elf, Amount: "10"},
		Quantity: 1,
	}, []*listing.Listing{other}, now)
	req.NoError(err)
	req.Empty(results)
}

func TestMatchAuctionPassesRegardlessOfAmount(t *testing.T) {
	req := require.New(t)
	now := time.Date(2022, 7, 1, 12, 0, 0, 0, time.UTC)
	open := now.Add(-time.Hour)

	auction := fixedPrice("100", 1, open)
	auction.ListType = listing.ListTypeDutchAuction

	results, err := Match(Request{
		Symbol:   art,
		Price:    domain.Price{Symbol: elf, Amount: "10"},
		Quantity: 1,
	}, []*listing.Listing{auction}, now)
	req.NoError(err)
	req.Len(results, 1)
}

func TestMatchInvalidRequestPrice(t *testing.T) {
	req := require.New(t)
	now := time.Date(2022, 7, 1, 12, 0, 0, 0, time.UTC)

	_, err := Match(Request{
		Symbol:   art,
		Price:    domain.Price{Symbol: elf, Amount: "not-a-number"},
		Quantity: 1,
	}, nil, now)
	req.ErrorIs(err, domain.ErrInvalidNumberFormat)
}
