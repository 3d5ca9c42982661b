package search

import (
	"time"

	"routewise/pkg/amadeus"
)

// segmentTimeLayouts covers the timestamp shapes the upstream emits: local
// datetimes without offset, and full RFC 3339.
var segmentTimeLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// PassesLayoverConstraints reports whether every itinerary of the offer
// satisfies the layover constraints. A nil constraint is not evaluated.
// Unparseable segment timestamps fail the itinerary rather than crash.
func PassesLayoverConstraints(offer amadeus.Offer, minLayoverMinutes, exactLayoverCount *int) bool {
	for _, itinerary := range offer.Itineraries {
		if exactLayoverCount != nil {
			if len(itinerary.Segments)-1 != *exactLayoverCount {
				return false
			}
		}

		if minLayoverMinutes != nil && len(itinerary.Segments) > 1 {
			for i := 0; i < len(itinerary.Segments)-1; i++ {
				gap, ok := layoverMinutes(itinerary.Segments[i], itinerary.Segments[i+1])
				if !ok || gap < *minLayoverMinutes {
					return false
				}
			}
		}
	}
	return true
}

// FilterOffers discards degenerate offers, then keeps the rest passing the
// layover constraints. A degenerate offer must never occupy a result slot:
// dropping it only at normalization time would let it crowd out valid offers
// near the result limit.
func FilterOffers(offers []amadeus.Offer, minLayoverMinutes, exactLayoverCount *int) []amadeus.Offer {
	filtered := make([]amadeus.Offer, 0, len(offers))
	for _, offer := range offers {
		if degenerate(offer) {
			continue
		}
		if minLayoverMinutes == nil && exactLayoverCount == nil {
			filtered = append(filtered, offer)
			continue
		}
		if PassesLayoverConstraints(offer, minLayoverMinutes, exactLayoverCount) {
			filtered = append(filtered, offer)
		}
	}
	return filtered
}

// degenerate reports an offer that carries no usable outbound itinerary.
func degenerate(offer amadeus.Offer) bool {
	return len(offer.Itineraries) == 0 || len(offer.Itineraries[0].Segments) == 0
}

func layoverMinutes(prev, next amadeus.Segment) (int, bool) {
	arrival, ok := parseSegmentTime(prev.Arrival.At)
	if !ok {
		return 0, false
	}
	departure, ok := parseSegmentTime(next.Departure.At)
	if !ok {
		return 0, false
	}
	return int(departure.Sub(arrival).Minutes()), true
}

func parseSegmentTime(value string) (time.Time, bool) {
	for _, layout := range segmentTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
