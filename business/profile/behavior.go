package profile

import (
	"math"

	"devenirShop/domain"
)

// chatsPerOrderBaseline scales interaction volume when estimating the
// conversion rate: roughly one order per ten tracked events is treated
// as full conversion.
const chatsPerOrderBaseline = 10

type sessionStats struct {
	first, last   int64 // unix seconds
	productsShown int
}

func groupSessions(events []domain.InteractionEvent) map[string]*sessionStats {
	sessions := make(map[string]*sessionStats)
	for _, e := range events {
		if e.SessionID == "" {
			continue
		}
		ts := e.CreatedAt.Unix()
		s, ok := sessions[e.SessionID]
		if !ok {
			s = &sessionStats{first: ts, last: ts}
			sessions[e.SessionID] = s
		}
		if ts < s.first {
			s.first = ts
		}
		if ts > s.last {
			s.last = ts
		}
		s.productsShown += e.ProductsShown
	}
	return sessions
}

// avgSessionLength averages per-session duration in minutes, measured
// from the first to the last event of each session.
func avgSessionLength(events []domain.InteractionEvent) float64 {
	sessions := groupSessions(events)
	if len(sessions) == 0 {
		return 0
	}
	var total float64
	for _, s := range sessions {
		total += float64(s.last-s.first) / 60.0
	}
	return round2(total / float64(len(sessions)))
}

// avgProductsViewed averages the per-session products-shown counters,
// over sessions whose counter is above zero.
func avgProductsViewed(events []domain.InteractionEvent) float64 {
	sessions := groupSessions(events)
	var total, counted int
	for _, s := range sessions {
		if s.productsShown > 0 {
			total += s.productsShown
			counted++
		}
	}
	if counted == 0 {
		return 0
	}
	return round2(float64(total) / float64(counted))
}

// conversionRate estimates orders relative to interaction volume,
// clamped to [0, 1].
func conversionRate(orderCount, eventCount int) float64 {
	if eventCount == 0 {
		return 0
	}
	rate := float64(orderCount) / (float64(eventCount) / chatsPerOrderBaseline)
	return round2(math.Min(1, rate))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
