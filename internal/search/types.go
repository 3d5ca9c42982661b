package search

import "time"

// Defaults applied when a request leaves the corresponding field unset.
const (
	// DefaultDurationDays is the trip length used by the fallback date pair.
	DefaultDurationDays = 7

	// DefaultPerCellCap bounds how many offers a single upstream call may return.
	DefaultPerCellCap = 50

	// DefaultResultLimit bounds the overall number of offers returned.
	DefaultResultLimit = 10

	// DefaultAdults is the traveler count when none is given.
	DefaultAdults = 1
)

// SearchRequest is the immutable input of one aggregation run. Origin is
// required; every other field is optional and default-driven. Exactly one
// date shape wins, by the priority order documented on GenerateDatePairs.
type SearchRequest struct {
	Origin      string `form:"origin" json:"origin"`
	Destination string `form:"destination" json:"destination"`

	Year               *int          `form:"year" json:"year,omitempty"`
	Month              *int          `form:"month" json:"month,omitempty"`
	DepartureDayOfWeek *time.Weekday `form:"departureDayOfWeek" json:"departureDayOfWeek,omitempty"`
	ReturnDayOfWeek    *time.Weekday `form:"returnDayOfWeek" json:"returnDayOfWeek,omitempty"`

	DepartureDate string `form:"departureDate" json:"departureDate,omitempty"`
	ReturnDate    string `form:"returnDate" json:"returnDate,omitempty"`

	DurationDays *int `form:"durationDays" json:"durationDays,omitempty"`

	MinLayoverDuration *int `form:"minLayoverDuration" json:"minLayoverDuration,omitempty"`
	Layovers           *int `form:"layovers" json:"layovers,omitempty"`

	MaxPrice    *int `form:"maxPrice" json:"maxPrice,omitempty"`
	Adults      int  `form:"adults" json:"adults"`
	Max         int  `form:"max" json:"max"`
	ResultLimit int  `form:"resultLimit" json:"resultLimit"`
}

// ApplyDefaults fills the default-driven fields in place.
func (r *SearchRequest) ApplyDefaults() {
	if r.Adults < 1 {
		r.Adults = DefaultAdults
	}
	if r.Max < 1 {
		r.Max = DefaultPerCellCap
	}
	if r.ResultLimit < 1 {
		r.ResultLimit = DefaultResultLimit
	}
}

// DatePair is one (departure, return-or-absent) candidate of the search grid.
type DatePair struct {
	Departure string // YYYY-MM-DD
	Return    string // YYYY-MM-DD, empty for one-way
}

// Layover is the gap between one segment's arrival and the next segment's
// departure within an itinerary.
type Layover struct {
	Airport                     string `json:"airport"`
	DurationMinutes             int    `json:"duration_minutes"`
	ArrivalTimeOfPreviousFlight string `json:"arrival_time_of_previous_flight"`
	DepartureTimeOfNextFlight   string `json:"departure_time_of_next_flight"`
}

// SimpleOffer is the normalized, UI-friendly view of one raw offer.
// Destination reflects the outbound itinerary's final stop.
type SimpleOffer struct {
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	Price         string    `json:"price"`
	DepartureDate string    `json:"departure_date"`
	ReturnDate    string    `json:"return_date,omitempty"`
	Layovers      []Layover `json:"layovers"`
}

// Metadata describes how a search was served.
type Metadata struct {
	SearchID     string `json:"search_id"`
	TotalResults int    `json:"total_results"`
	CacheHit     bool   `json:"cache_hit"`
	SearchTimeMs int64  `json:"search_time_ms"`
}

// SearchResponse is the outbound result shape.
type SearchResponse struct {
	Metadata Metadata      `json:"metadata"`
	Flights  []SimpleOffer `json:"flights"`
}
