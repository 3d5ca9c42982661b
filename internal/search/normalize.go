package search

import "routewise/pkg/amadeus"

// NormalizeOffers flattens raw offers into SimpleOffers. Offers with zero
// itineraries, or whose first itinerary has no segments, are skipped.
func NormalizeOffers(offers []amadeus.Offer) []SimpleOffer {
	normalized := make([]SimpleOffer, 0, len(offers))
	for _, offer := range offers {
		if simple, ok := normalizeOffer(offer); ok {
			normalized = append(normalized, simple)
		}
	}
	return normalized
}

func normalizeOffer(offer amadeus.Offer) (SimpleOffer, bool) {
	if degenerate(offer) {
		return SimpleOffer{}, false
	}

	outbound := offer.Itineraries[0]
	firstSegment := outbound.Segments[0]
	lastSegment := outbound.Segments[len(outbound.Segments)-1]

	simple := SimpleOffer{
		Origin: firstSegment.Departure.IataCode,
		// Destination is the outbound itinerary's final stop, not the trip's
		// deepest point.
		Destination:   lastSegment.Arrival.IataCode,
		Price:         offer.Price.GrandTotal,
		DepartureDate: dateOnly(firstSegment.Departure.At),
		Layovers:      []Layover{},
	}

	// Round trips report the return date from the last itinerary's final
	// arrival; one-way offers leave it empty.
	if len(offer.Itineraries) > 1 {
		inbound := offer.Itineraries[len(offer.Itineraries)-1]
		if len(inbound.Segments) > 0 {
			simple.ReturnDate = dateOnly(inbound.Segments[len(inbound.Segments)-1].Arrival.At)
		}
	}

	// Outbound and inbound itineraries both contribute to one flat layover
	// list, in itinerary order then segment order.
	for _, itinerary := range offer.Itineraries {
		for i := 0; i < len(itinerary.Segments)-1; i++ {
			current := itinerary.Segments[i]
			next := itinerary.Segments[i+1]

			mins, _ := layoverMinutes(current, next)
			simple.Layovers = append(simple.Layovers, Layover{
				Airport:                     current.Arrival.IataCode,
				DurationMinutes:             mins,
				ArrivalTimeOfPreviousFlight: current.Arrival.At,
				DepartureTimeOfNextFlight:   next.Departure.At,
			})
		}
	}

	return simple, true
}

func dateOnly(value string) string {
	if t, ok := parseSegmentTime(value); ok {
		return t.Format(dateLayout)
	}
	return value
}
