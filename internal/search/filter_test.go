package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"routewise/pkg/amadeus"
)

func segment(depCode, depAt, arrCode, arrAt string) amadeus.Segment {
	return amadeus.Segment{
		Departure: amadeus.Endpoint{IataCode: depCode, At: depAt},
		Arrival:   amadeus.Endpoint{IataCode: arrCode, At: arrAt},
	}
}

// bosJfkMad has a single 90-minute layover at JFK.
func bosJfkMad() amadeus.Offer {
	return amadeus.Offer{
		Itineraries: []amadeus.Itinerary{{
			Segments: []amadeus.Segment{
				segment("BOS", "2025-12-01T10:00:00", "JFK", "2025-12-01T11:30:00"),
				segment("JFK", "2025-12-01T13:00:00", "MAD", "2025-12-01T20:00:00"),
			},
		}},
	}
}

func TestPassesLayoverConstraints_MinDuration(t *testing.T) {
	offer := bosJfkMad()

	assert.True(t, PassesLayoverConstraints(offer, intPtr(60), nil))
	assert.True(t, PassesLayoverConstraints(offer, intPtr(90), nil))
	assert.False(t, PassesLayoverConstraints(offer, intPtr(120), nil))
}

func TestPassesLayoverConstraints_ExactCount(t *testing.T) {
	offer := bosJfkMad()

	assert.True(t, PassesLayoverConstraints(offer, nil, intPtr(1)))
	assert.False(t, PassesLayoverConstraints(offer, nil, intPtr(0)))
	assert.False(t, PassesLayoverConstraints(offer, nil, intPtr(2)))
}

func TestPassesLayoverConstraints_DirectFlight(t *testing.T) {
	direct := amadeus.Offer{
		Itineraries: []amadeus.Itinerary{{
			Segments: []amadeus.Segment{
				segment("BOS", "2025-12-01T10:00:00", "MAD", "2025-12-01T20:00:00"),
			},
		}},
	}

	// The duration check is not evaluated for single-segment itineraries.
	assert.True(t, PassesLayoverConstraints(direct, intPtr(600), nil))
	assert.True(t, PassesLayoverConstraints(direct, nil, intPtr(0)))
	assert.False(t, PassesLayoverConstraints(direct, nil, intPtr(1)))
}

func TestPassesLayoverConstraints_EveryItineraryMustPass(t *testing.T) {
	offer := bosJfkMad()
	// Inbound itinerary with a 30-minute gap in LIS.
	offer.Itineraries = append(offer.Itineraries, amadeus.Itinerary{
		Segments: []amadeus.Segment{
			segment("MAD", "2025-12-10T08:00:00", "LIS", "2025-12-10T09:00:00"),
			segment("LIS", "2025-12-10T09:30:00", "BOS", "2025-12-10T15:00:00"),
		},
	})

	assert.True(t, PassesLayoverConstraints(offer, intPtr(30), nil))
	assert.False(t, PassesLayoverConstraints(offer, intPtr(60), nil))
}

func TestPassesLayoverConstraints_AnyFailingGapFailsItinerary(t *testing.T) {
	offer := amadeus.Offer{
		Itineraries: []amadeus.Itinerary{{
			Segments: []amadeus.Segment{
				segment("BOS", "2025-12-01T06:00:00", "JFK", "2025-12-01T07:00:00"),
				segment("JFK", "2025-12-01T10:00:00", "LHR", "2025-12-01T21:00:00"),
				segment("LHR", "2025-12-01T21:45:00", "MAD", "2025-12-02T00:30:00"),
			},
		}},
	}

	// First gap is 180 minutes, second is 45.
	assert.True(t, PassesLayoverConstraints(offer, intPtr(45), nil))
	assert.False(t, PassesLayoverConstraints(offer, intPtr(60), nil))
}

func TestPassesLayoverConstraints_MalformedTimestampFails(t *testing.T) {
	offer := amadeus.Offer{
		Itineraries: []amadeus.Itinerary{{
			Segments: []amadeus.Segment{
				segment("BOS", "2025-12-01T10:00:00", "JFK", "not-a-timestamp"),
				segment("JFK", "2025-12-01T13:00:00", "MAD", "2025-12-01T20:00:00"),
			},
		}},
	}

	assert.False(t, PassesLayoverConstraints(offer, intPtr(1), nil))
}

func TestFilterOffers_NoConstraintsAcceptsPage(t *testing.T) {
	offers := []amadeus.Offer{bosJfkMad(), bosJfkMad()}

	assert.Equal(t, offers, FilterOffers(offers, nil, nil))
}

func TestFilterOffers_DiscardsDegenerateOffers(t *testing.T) {
	noItineraries := amadeus.Offer{}
	emptyOutbound := amadeus.Offer{Itineraries: []amadeus.Itinerary{{}}}
	offers := []amadeus.Offer{noItineraries, emptyOutbound, bosJfkMad()}

	assert.Equal(t, []amadeus.Offer{bosJfkMad()}, FilterOffers(offers, nil, nil))
	assert.Equal(t, []amadeus.Offer{bosJfkMad()}, FilterOffers(offers, intPtr(60), nil))
}

func TestFilterOffers_Monotonic(t *testing.T) {
	offers := []amadeus.Offer{bosJfkMad(), bosJfkMad()}

	loose := FilterOffers(offers, intPtr(60), nil)
	tight := FilterOffers(offers, intPtr(120), nil)

	assert.LessOrEqual(t, len(tight), len(loose))
}
