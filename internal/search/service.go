package search

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"routewise/pkg/amadeus"
	"routewise/pkg/cache"
	"routewise/pkg/idgen"
	"routewise/pkg/logger"
)

// TokenProvider yields a valid upstream access token.
type TokenProvider interface {
	AccessToken(ctx context.Context) (string, error)
}

// FlightClient is the upstream collaborator the aggregator fans out to.
type FlightClient interface {
	Destinations(ctx context.Context, origin, token string) ([]string, error)
	Offers(ctx context.Context, q amadeus.OffersQuery, token string) []amadeus.Offer
	MultiCitySearch(ctx context.Context, req amadeus.MultiCityRequest, token string) (*amadeus.OffersResponse, error)
}

// Service drives the date x destination search grid against the upstream,
// caching every layer of the work: token, destination lists, per-cell offer
// pages and whole aggregate searches.
type Service struct {
	tokens         TokenProvider
	client         FlightClient
	store          *cache.Store
	ids            idgen.Generator
	destinationTTL time.Duration
	offerTTL       time.Duration
	logger         logger.Client
	now            func() time.Time
}

func NewService(tokens TokenProvider, client FlightClient, store *cache.Store,
	ids idgen.Generator, destinationTTL, offerTTL time.Duration, logger logger.Client) *Service {
	return &Service{
		tokens:         tokens,
		client:         client,
		store:          store,
		ids:            ids,
		destinationTTL: destinationTTL,
		offerTTL:       offerTTL,
		logger:         logger,
		now:            time.Now,
	}
}

// Search runs one aggregation: expand date pairs, resolve destinations, walk
// the grid until resultLimit offers pass the layover filter, normalize and
// return them. The normalized list is cached per canonicalized request.
func (s *Service) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	req.ApplyDefaults()
	startTime := s.now()

	aggregateKey := cache.Key("UnifiedSearch",
		req.Origin, req.Destination,
		req.Year, req.Month, req.DepartureDayOfWeek, req.ReturnDayOfWeek,
		req.DurationDays, req.DepartureDate, req.ReturnDate,
		req.MinLayoverDuration, req.Layovers, req.MaxPrice,
		req.Adults, req.Max, req.ResultLimit,
	)

	computed := false
	offers, err := cache.GetOrComputeTyped(ctx, s.store, aggregateKey, s.offerTTL,
		func(ctx context.Context) ([]SimpleOffer, error) {
			computed = true
			return s.runSearch(ctx, req)
		})
	if err != nil {
		return nil, err
	}

	if len(offers) == 0 {
		return nil, NewNoOffersError()
	}

	return &SearchResponse{
		Metadata: Metadata{
			SearchID:     strconv.FormatInt(s.ids.GenerateID(), 10),
			TotalResults: len(offers),
			CacheHit:     !computed,
			SearchTimeMs: s.now().Sub(startTime).Milliseconds(),
		},
		Flights: offers,
	}, nil
}

func (s *Service) runSearch(ctx context.Context, req SearchRequest) ([]SimpleOffer, error) {
	datePairs, err := GenerateDatePairs(req, s.now())
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.AccessToken(ctx)
	if err != nil {
		if errors.Is(err, amadeus.ErrAuthenticationFailed) {
			return nil, NewAuthenticationError(err.Error())
		}
		return nil, err
	}

	destinations, err := s.resolveDestinations(ctx, req.Origin, req.Destination, token)
	if err != nil {
		return nil, err
	}
	if len(destinations) == 0 {
		return nil, NewNoDestinationsError(req.Origin)
	}

	collected, err := s.collectOffers(ctx, req, datePairs, destinations, token)
	if err != nil {
		return nil, err
	}

	s.logger.Info("search collected offers",
		logger.Field{Key: "origin", Value: req.Origin},
		logger.Field{Key: "date_pairs", Value: len(datePairs)},
		logger.Field{Key: "destinations", Value: len(destinations)},
		logger.Field{Key: "offers", Value: len(collected)},
	)

	return NormalizeOffers(collected), nil
}

// resolveDestinations returns the singleton set when the request names a
// destination, otherwise the cached discovery list for the origin.
func (s *Service) resolveDestinations(ctx context.Context, origin, destination, token string) ([]string, error) {
	if destination != "" {
		return []string{destination}, nil
	}

	return cache.GetOrComputeTyped(ctx, s.store, cache.Key("FlightDestinations", origin), s.destinationTTL,
		func(ctx context.Context) ([]string, error) {
			return s.client.Destinations(ctx, origin, token)
		})
}

// collectOffers walks the grid in date-pair order then destination order.
// Both loops stop as soon as the accumulator reaches the result limit, so
// later cells are never queried; a failed cell contributes zero offers.
// Cancellation is checked between cells, never mid-fetch.
func (s *Service) collectOffers(ctx context.Context, req SearchRequest, datePairs []DatePair, destinations []string, token string) ([]amadeus.Offer, error) {
	collected := make([]amadeus.Offer, 0, req.ResultLimit)

	for _, pair := range datePairs {
		if len(collected) >= req.ResultLimit {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for _, dest := range destinations {
			if len(collected) >= req.ResultLimit {
				break
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			page, err := s.cellOffers(ctx, amadeus.OffersQuery{
				Origin:        req.Origin,
				Destination:   dest,
				DepartureDate: pair.Departure,
				ReturnDate:    pair.Return,
				Adults:        req.Adults,
				Max:           req.Max,
				MaxPrice:      req.MaxPrice,
			}, token)
			if err != nil {
				return nil, err
			}

			filtered := FilterOffers(page, req.MinLayoverDuration, req.Layovers)

			needed := req.ResultLimit - len(collected)
			if len(filtered) > needed {
				filtered = filtered[:needed]
			}
			collected = append(collected, filtered...)
		}
	}

	return collected, nil
}

// cellOffers serves one grid cell through the per-cell page cache. A page
// fetched under a canceled context is never cached.
func (s *Service) cellOffers(ctx context.Context, q amadeus.OffersQuery, token string) ([]amadeus.Offer, error) {
	key := cache.Key("FlightOffers",
		q.Origin, q.Destination, q.DepartureDate, q.ReturnDate,
		q.Adults, q.Max, q.MaxPrice,
	)

	return cache.GetOrComputeTyped(ctx, s.store, key, s.offerTTL,
		func(ctx context.Context) ([]amadeus.Offer, error) {
			offers := s.client.Offers(ctx, q, token)
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return offers, nil
		})
}

// Destinations exposes the cached destination discovery list for an origin.
// An empty list is a valid response here; only the aggregated search treats
// it as a terminal condition.
func (s *Service) Destinations(ctx context.Context, origin string) ([]string, error) {
	token, err := s.tokens.AccessToken(ctx)
	if err != nil {
		if errors.Is(err, amadeus.ErrAuthenticationFailed) {
			return nil, NewAuthenticationError(err.Error())
		}
		return nil, err
	}
	return s.resolveDestinations(ctx, origin, "", token)
}

// MultiCity runs a multi-leg offer search, cached by the canonicalized
// request body.
func (s *Service) MultiCity(ctx context.Context, req amadeus.MultiCityRequest) (*amadeus.OffersResponse, error) {
	canonical, err := json.Marshal(req)
	if err != nil {
		return nil, NewInvalidRequestError("invalid multi-city request: " + err.Error())
	}

	return cache.GetOrComputeTyped(ctx, s.store, cache.Key("MultiCitySearch", string(canonical)), s.offerTTL,
		func(ctx context.Context) (*amadeus.OffersResponse, error) {
			token, err := s.tokens.AccessToken(ctx)
			if err != nil {
				if errors.Is(err, amadeus.ErrAuthenticationFailed) {
					return nil, NewAuthenticationError(err.Error())
				}
				return nil, err
			}
			return s.client.MultiCitySearch(ctx, req, token)
		})
}
