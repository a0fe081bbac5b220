//go:build !integration

package profile

import (
	"testing"

	"devenirShop/domain"

	"github.com/stretchr/testify/assert"
)

func orderWithItems(items ...domain.OrderItem) domain.Orders {
	return domain.Orders{Items: items}
}

func TestExtractStyleProfile_TopThreeByFrequency(t *testing.T) {
	orders := []domain.Orders{
		orderWithItems(
			domain.OrderItem{Style: "minimalist", Quantity: 3},
			domain.OrderItem{Style: "casual", Quantity: 2},
		),
		orderWithItems(
			domain.OrderItem{Style: "formal", Quantity: 1},
			domain.OrderItem{Style: "streetwear", Quantity: 1},
			domain.OrderItem{Style: "minimalist", Quantity: 1},
		),
	}

	got := extractStyleProfile(orders)
	assert.Equal(t, []string{"minimalist", "casual", "formal"}, got)
}

func TestExtractStyleProfile_CountsLineItemsOnce(t *testing.T) {
	orders := []domain.Orders{
		orderWithItems(domain.OrderItem{Style: "casual", Quantity: 5}),
		orderWithItems(domain.OrderItem{Style: "minimalist", Quantity: 1}),
		orderWithItems(domain.OrderItem{Style: "minimalist", Quantity: 1}),
	}

	got := extractStyleProfile(orders)
	assert.Equal(t, []string{"minimalist", "casual"}, got)
}

func TestExtractStyleProfile_FallsBackToCategory(t *testing.T) {
	orders := []domain.Orders{
		orderWithItems(domain.OrderItem{Category: "outerwear", Quantity: 2}),
	}

	got := extractStyleProfile(orders)
	assert.Equal(t, []string{"outerwear"}, got)
}

func TestExtractSizeHistory_MostRecentWins(t *testing.T) {
	// Orders arrive newest first; the size seen first per category wins.
	orders := []domain.Orders{
		orderWithItems(domain.OrderItem{Category: "tops", Size: "L"}),
		orderWithItems(domain.OrderItem{Category: "tops", Size: "M"}),
		orderWithItems(domain.OrderItem{Category: "shoes", Size: "42"}),
	}

	got := extractSizeHistory(orders)
	assert.Equal(t, map[string]string{"tops": "L", "shoes": "42"}, got)
}

func TestCalculateBudgetRange_PercentilesOverOrderTotals(t *testing.T) {
	// Sorted totals: 100..800. p25 index floor(8*0.25)=2 -> 300,
	// p75 index floor(8*0.75)=6 -> 700. Range: 240..840. Each total is
	// split across two line items, which must not affect the band.
	var orders []domain.Orders
	for _, total := range []float64{500, 100, 800, 300, 200, 700, 400, 600} {
		orders = append(orders, domain.Orders{
			TotalPrice: total,
			Items: []domain.OrderItem{
				{PriceEach: total / 2, Quantity: 1},
				{PriceEach: total / 2, Quantity: 1},
			},
		})
	}

	got := calculateBudgetRange(orders)
	assert.InDelta(t, 240, got.Min, 1e-9)
	assert.InDelta(t, 840, got.Max, 1e-9)
	assert.False(t, got.Unrestricted())
}

func TestCalculateBudgetRange_SingleOrderStillYieldsBand(t *testing.T) {
	orders := []domain.Orders{{TotalPrice: 300}}

	got := calculateBudgetRange(orders)
	assert.InDelta(t, 240, got.Min, 1e-9)
	assert.InDelta(t, 360, got.Max, 1e-9)
	assert.False(t, got.Unrestricted())
}

func TestCalculateBudgetRange_NoPricedOrdersIsUnrestricted(t *testing.T) {
	got := calculateBudgetRange([]domain.Orders{{TotalPrice: 0}})
	assert.Equal(t, domain.DefaultBudgetRange(), got)
	assert.True(t, got.Unrestricted())

	empty := calculateBudgetRange(nil)
	assert.True(t, empty.Unrestricted())
}

func TestExtractFavorites(t *testing.T) {
	orders := []domain.Orders{
		orderWithItems(
			domain.OrderItem{Color: "navy", Brand: "Devenir", Quantity: 3},
			domain.OrderItem{Color: "black", Brand: "Devenir", Quantity: 1},
			domain.OrderItem{Color: "navy", Brand: "Uniqlo", Quantity: 1},
		),
	}

	colors := extractFavoriteColors(orders)
	assert.Equal(t, []string{"navy", "black"}, colors)

	brands := extractFavoriteBrands(orders)
	assert.Equal(t, []string{"Devenir", "Uniqlo"}, brands)
}
