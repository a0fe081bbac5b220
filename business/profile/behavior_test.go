//go:build !integration

package profile

import (
	"testing"
	"time"

	"devenirShop/domain"

	"github.com/stretchr/testify/assert"
)

func eventAt(session, eventType string, at time.Time) domain.InteractionEvent {
	return domain.InteractionEvent{SessionID: session, EventType: eventType, CreatedAt: at}
}

func TestAvgSessionLength(t *testing.T) {
	base := time.Date(2026, time.August, 1, 10, 0, 0, 0, time.UTC)
	events := []domain.InteractionEvent{
		// Session a spans 10 minutes.
		eventAt("a", domain.EventProductView, base),
		eventAt("a", domain.EventChatMessage, base.Add(10*time.Minute)),
		// Session b spans 4 minutes.
		eventAt("b", domain.EventProductView, base),
		eventAt("b", domain.EventProductView, base.Add(4*time.Minute)),
	}

	assert.InDelta(t, 7.0, avgSessionLength(events), 1e-9)
}

func TestAvgSessionLength_NoEvents(t *testing.T) {
	assert.Zero(t, avgSessionLength(nil))
}

func TestAvgProductsViewed_AveragesShownCounters(t *testing.T) {
	base := time.Now()
	events := []domain.InteractionEvent{
		// Session a shown 4 + 2 across two responses.
		{SessionID: "a", EventType: domain.EventChatMessage, ProductsShown: 4, CreatedAt: base},
		{SessionID: "a", EventType: domain.EventChatMessage, ProductsShown: 2, CreatedAt: base},
		{SessionID: "b", EventType: domain.EventChatMessage, ProductsShown: 2, CreatedAt: base},
		// Session c never got products shown: excluded from the average.
		{SessionID: "c", EventType: domain.EventChatMessage, CreatedAt: base},
	}

	assert.InDelta(t, 4.0, avgProductsViewed(events), 1e-9)
}

func TestAvgProductsViewed_SingleSessionCounter(t *testing.T) {
	events := []domain.InteractionEvent{
		{SessionID: "a", EventType: domain.EventChatMessage, ProductsShown: 6, CreatedAt: time.Now()},
	}

	assert.InDelta(t, 6.0, avgProductsViewed(events), 1e-9)
}

func TestConversionRate(t *testing.T) {
	tests := []struct {
		name   string
		orders int
		events int
		want   float64
	}{
		{"no events", 5, 0, 0},
		{"typical", 2, 100, 0.2},
		{"clamped to one", 50, 100, 1},
		{"zero orders", 0, 40, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, conversionRate(tt.orders, tt.events), 1e-9)
		})
	}
}
