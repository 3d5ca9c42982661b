package amadeus

// Wire types for the Amadeus shopping APIs. Only the fields the service
// reads are round-tripped; unknown fields are ignored by encoding/json.

type OffersResponse struct {
	Meta Meta    `json:"meta"`
	Data []Offer `json:"data"`
}

type Meta struct {
	Count int       `json:"count"`
	Links MetaLinks `json:"links"`
}

type MetaLinks struct {
	Self string `json:"self"`
}

type Offer struct {
	Type                   string      `json:"type"`
	ID                     string      `json:"id"`
	Source                 string      `json:"source"`
	OneWay                 bool        `json:"oneWay"`
	LastTicketingDate      string      `json:"lastTicketingDate"`
	NumberOfBookableSeats  int         `json:"numberOfBookableSeats"`
	Itineraries            []Itinerary `json:"itineraries"`
	Price                  Price       `json:"price"`
	ValidatingAirlineCodes []string    `json:"validatingAirlineCodes"`
}

type Itinerary struct {
	Duration string    `json:"duration"`
	Segments []Segment `json:"segments"`
}

type Segment struct {
	Departure     Endpoint `json:"departure"`
	Arrival       Endpoint `json:"arrival"`
	CarrierCode   string   `json:"carrierCode"`
	Number        string   `json:"number"`
	Aircraft      Aircraft `json:"aircraft"`
	Duration      string   `json:"duration"`
	ID            string   `json:"id"`
	NumberOfStops int      `json:"numberOfStops"`
}

type Endpoint struct {
	IataCode string  `json:"iataCode"`
	Terminal *string `json:"terminal,omitempty"`
	At       string  `json:"at"` // ISO 8601 local datetime, e.g. 2025-12-01T10:00:00
}

type Aircraft struct {
	Code string `json:"code"`
}

type Price struct {
	Currency   string `json:"currency"`
	Total      string `json:"total"`
	Base       string `json:"base"`
	GrandTotal string `json:"grandTotal"`
}

type DestinationsResponse struct {
	Data []Destination `json:"data"`
}

type Destination struct {
	Type          string `json:"type"`
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departureDate"`
	ReturnDate    string `json:"returnDate"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	State       string `json:"state"`
}

// MultiCityRequest is the POST body for the flight-offers search endpoint.
type MultiCityRequest struct {
	OriginDestinations []OriginDestination `json:"originDestinations"`
	Travelers          []Traveler          `json:"travelers"`
	Sources            []string            `json:"sources"`
	SearchCriteria     SearchCriteria      `json:"searchCriteria"`
}

type OriginDestination struct {
	ID                      string        `json:"id"`
	OriginLocationCode      string        `json:"originLocationCode"`
	DestinationLocationCode string        `json:"destinationLocationCode"`
	DepartureDateTimeRange  DateTimeRange `json:"departureDateTimeRange"`
}

type DateTimeRange struct {
	Date string `json:"date"`
}

type Traveler struct {
	ID           string   `json:"id"`
	TravelerType string   `json:"travelerType"`
	FareOptions  []string `json:"fareOptions"`
}

type SearchCriteria struct {
	MaxFlightOffers int `json:"maxFlightOffers"`
}
