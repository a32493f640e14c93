package flights

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"
	"strings"
	"time"

	"github.com/Domenick1991/flightlog/internal/cache"
	"github.com/Domenick1991/flightlog/internal/domain"
	"github.com/Domenick1991/flightlog/internal/geo"
	"github.com/Domenick1991/flightlog/internal/importer"
	"github.com/Domenick1991/flightlog/internal/kafka"
	"github.com/Domenick1991/flightlog/internal/live"
	"github.com/Domenick1991/flightlog/internal/repository"
	"github.com/Domenick1991/flightlog/internal/service/enrich"
	"github.com/Domenick1991/flightlog/internal/service/selection"
	"github.com/Domenick1991/flightlog/internal/service/stats"
	"github.com/google/uuid"
)

type FlightUseCase interface {
	List(ctx context.Context, userID string, sel domain.Selector) ([]domain.EnrichedFlight, error)
	Get(ctx context.Context, userID, id string) (*domain.EnrichedFlight, error)
	Years(ctx context.Context, userID string) ([]int, error)
	Stats(ctx context.Context, userID string, sel domain.Selector) (domain.FlightStats, error)
	DeparturesByCountry(ctx context.Context, userID string, sel domain.Selector) ([]domain.CountryDepartures, error)
	TimeGrouping(ctx context.Context, userID string, grouping domain.Grouping, sel domain.Selector) ([]domain.PeriodCount, error)
	Paths(ctx context.Context, userID string, sel domain.Selector) ([][]geo.Coordinate, error)
	Journey(ctx context.Context, userID string, sel domain.Selector) (domain.JourneyProgress, error)
	Record(ctx context.Context, userID string, input RecordInput) (*domain.EnrichedFlight, error)
	Import(ctx context.Context, userID string, r io.Reader) (int, error)
}

type Cache interface {
	GetFlights(ctx context.Context, userID string) ([]domain.EnrichedFlight, error)
	SetFlights(ctx context.Context, userID string, flights []domain.EnrichedFlight) error
	GetStats(ctx context.Context, userID, field string, dest any) (bool, error)
	SetStats(ctx context.Context, userID, field string, value any) error
	Invalidate(ctx context.Context, userID string) error
}

type EventProducer interface {
	PublishFlightEvent(ctx context.Context, ev kafka.FlightEvent) error
}

type Broadcaster interface {
	Broadcast(userID string, msg live.Message)
}

// RecordInput is a manually entered flight.
type RecordInput struct {
	DepartureDate        domain.Date `json:"departure_date"`
	DepartureTime        string      `json:"departure_time"`
	DepartureAirportIATA string      `json:"departure_airport_iata"`
	ArrivalAirportIATA   string      `json:"arrival_airport_iata"`
	AirlineIATA          string      `json:"airline_iata"`
	FlightNumber         string      `json:"flight_number"`
}

type FlightService struct {
	repo        repository.FlightRepository
	enricher    *enrich.Enricher
	importer    *importer.Importer
	cache       Cache
	producer    EventProducer
	broadcaster Broadcaster
	clock       func() time.Time
	location    *time.Location
	pathPoints  int
}

type FlightServiceOption func(*FlightService)

func WithCache(c Cache) FlightServiceOption {
	return func(s *FlightService) {
		s.cache = c
	}
}

func WithProducer(p EventProducer) FlightServiceOption {
	return func(s *FlightService) {
		s.producer = p
	}
}

func WithBroadcaster(b Broadcaster) FlightServiceOption {
	return func(s *FlightService) {
		s.broadcaster = b
	}
}

// WithClock replaces time.Now, which decides what "today" is.
func WithClock(clock func() time.Time) FlightServiceOption {
	return func(s *FlightService) {
		s.clock = clock
	}
}

func WithLocation(loc *time.Location) FlightServiceOption {
	return func(s *FlightService) {
		s.location = loc
	}
}

func WithPathPoints(n int) FlightServiceOption {
	return func(s *FlightService) {
		s.pathPoints = n
	}
}

func NewFlightService(repo repository.FlightRepository, enricher *enrich.Enricher, imp *importer.Importer, opts ...FlightServiceOption) *FlightService {
	service := &FlightService{
		repo:       repo,
		enricher:   enricher,
		importer:   imp,
		clock:      time.Now,
		location:   time.UTC,
		pathPoints: geo.DefaultPathPoints,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *FlightService) today() domain.Date {
	return domain.DateOf(s.clock().In(s.location))
}

// enriched returns the user's whole log, enriched, from the cache when possible.
func (s *FlightService) enriched(ctx context.Context, userID string) ([]domain.EnrichedFlight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx, userID); err == nil && cached != nil {
			return cached, nil
		} else if err != nil {
			log.Printf("flights cache read failed for user %s: %v", userID, err)
		}
	}

	raws, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list flights: %w", err)
	}
	flights := s.enricher.EnrichAll(raws)

	if s.cache != nil {
		if err := s.cache.SetFlights(ctx, userID, flights); err != nil {
			log.Printf("flights cache write failed for user %s: %v", userID, err)
		}
	}
	return flights, nil
}

func checkSelector(sel domain.Selector) error {
	if !sel.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidSelector, sel)
	}
	return nil
}

func (s *FlightService) selected(ctx context.Context, userID string, sel domain.Selector) ([]domain.EnrichedFlight, error) {
	if err := checkSelector(sel); err != nil {
		return nil, err
	}
	flights, err := s.enriched(ctx, userID)
	if err != nil {
		return nil, err
	}
	return selection.FilterFlights(flights, sel, s.today()), nil
}

// List returns the enriched log filtered by sel. An empty selector returns
// every flight, past and future.
func (s *FlightService) List(ctx context.Context, userID string, sel domain.Selector) ([]domain.EnrichedFlight, error) {
	if sel == "" {
		return s.enriched(ctx, userID)
	}
	return s.selected(ctx, userID, sel)
}

func (s *FlightService) Get(ctx context.Context, userID, id string) (*domain.EnrichedFlight, error) {
	raw, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	f := s.enricher.Enrich(*raw)
	return &f, nil
}

func (s *FlightService) Years(ctx context.Context, userID string) ([]int, error) {
	flights, err := s.enriched(ctx, userID)
	if err != nil {
		return nil, err
	}
	return selection.Years(flights), nil
}

func (s *FlightService) Stats(ctx context.Context, userID string, sel domain.Selector) (domain.FlightStats, error) {
	if err := checkSelector(sel); err != nil {
		return domain.FlightStats{}, err
	}
	return cachedStats(ctx, s, userID, cache.StatsField("stats", string(sel), s.today()), func() (domain.FlightStats, error) {
		flights, err := s.selected(ctx, userID, sel)
		if err != nil {
			return domain.FlightStats{}, err
		}
		return stats.Compute(flights), nil
	})
}

func (s *FlightService) DeparturesByCountry(ctx context.Context, userID string, sel domain.Selector) ([]domain.CountryDepartures, error) {
	if err := checkSelector(sel); err != nil {
		return nil, err
	}
	return cachedStats(ctx, s, userID, cache.StatsField("departures", string(sel), s.today()), func() ([]domain.CountryDepartures, error) {
		flights, err := s.selected(ctx, userID, sel)
		if err != nil {
			return nil, err
		}
		return stats.DeparturesByCountry(flights), nil
	})
}

func (s *FlightService) TimeGrouping(ctx context.Context, userID string, grouping domain.Grouping, sel domain.Selector) ([]domain.PeriodCount, error) {
	if _, err := domain.ParseGrouping(string(grouping)); err != nil {
		return nil, err
	}
	if err := checkSelector(sel); err != nil {
		return nil, err
	}
	field := cache.StatsField("grouping:"+string(grouping), string(sel), s.today())
	return cachedStats(ctx, s, userID, field, func() ([]domain.PeriodCount, error) {
		flights, err := s.selected(ctx, userID, sel)
		if err != nil {
			return nil, err
		}
		return stats.FlightsByTimeGrouping(flights, grouping), nil
	})
}

func (s *FlightService) Paths(ctx context.Context, userID string, sel domain.Selector) ([][]geo.Coordinate, error) {
	flights, err := s.selected(ctx, userID, sel)
	if err != nil {
		return nil, err
	}
	return stats.FlightPaths(flights, s.pathPoints), nil
}

func (s *FlightService) Journey(ctx context.Context, userID string, sel domain.Selector) (domain.JourneyProgress, error) {
	st, err := s.Stats(ctx, userID, sel)
	if err != nil {
		return domain.JourneyProgress{}, err
	}
	return stats.Journey(st.TotalDistance), nil
}

func (s *FlightService) Record(ctx context.Context, userID string, input RecordInput) (*domain.EnrichedFlight, error) {
	raw := domain.RawFlight{
		ID:                   uuid.NewString(),
		UserID:               userID,
		DepartureDate:        input.DepartureDate,
		DepartureTime:        strings.TrimSpace(input.DepartureTime),
		DepartureAirportIATA: strings.ToUpper(strings.TrimSpace(input.DepartureAirportIATA)),
		ArrivalAirportIATA:   strings.ToUpper(strings.TrimSpace(input.ArrivalAirportIATA)),
		AirlineIATA:          strings.ToUpper(strings.TrimSpace(input.AirlineIATA)),
		FlightNumber:         strings.TrimSpace(input.FlightNumber),
		CreatedAt:            s.clock().UTC(),
	}
	if err := importer.ValidateFlight(raw); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, &raw); err != nil {
		return nil, fmt.Errorf("failed to create flight: %w", err)
	}

	flight := s.enricher.Enrich(raw)
	s.afterWrite(ctx, kafka.FlightEvent{
		Type:       kafka.EventFlightRecorded,
		UserID:     userID,
		FlightID:   raw.ID,
		Count:      1,
		DistanceKm: s.flownDistance([]domain.EnrichedFlight{flight}),
	})
	return &flight, nil
}

// Import stores every flight of a CSV file, or none if any row is invalid.
func (s *FlightService) Import(ctx context.Context, userID string, r io.Reader) (int, error) {
	raws, err := s.importer.Parse(r)
	if err != nil {
		return 0, err
	}

	now := s.clock().UTC()
	for i := range raws {
		raws[i].ID = uuid.NewString()
		raws[i].UserID = userID
		raws[i].CreatedAt = now
	}

	n, err := s.repo.CreateBatch(ctx, raws)
	if err != nil {
		return 0, fmt.Errorf("failed to import flights: %w", err)
	}

	s.afterWrite(ctx, kafka.FlightEvent{
		Type:       kafka.EventFlightsImported,
		UserID:     userID,
		Count:      n,
		DistanceKm: s.flownDistance(s.enricher.EnrichAll(raws)),
	})
	return n, nil
}

// Refresh drops the user's cached flights and aggregates, then rebuilds the
// flights and the "all" stats and returns the journey over them.
func (s *FlightService) Refresh(ctx context.Context, userID string) (domain.JourneyProgress, error) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, userID); err != nil {
			return domain.JourneyProgress{}, fmt.Errorf("failed to invalidate cache: %w", err)
		}
	}
	return s.Journey(ctx, userID, domain.SelectorAll)
}

// afterWrite runs once the store accepted a change. Failures here are logged,
// the write itself already succeeded.
func (s *FlightService) afterWrite(ctx context.Context, ev kafka.FlightEvent) {
	ev.OccurredAt = s.clock().UTC()

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, ev.UserID); err != nil {
			log.Printf("cache invalidation failed for user %s: %v", ev.UserID, err)
		}
	}

	if s.producer != nil {
		s.fillTotals(ctx, &ev)
		if err := s.producer.PublishFlightEvent(ctx, ev); err != nil {
			log.Printf("failed to publish %s event for user %s: %v", ev.Type, ev.UserID, err)
		}
	}

	if s.broadcaster != nil {
		st, err := s.Stats(ctx, ev.UserID, domain.SelectorAll)
		if err != nil {
			log.Printf("failed to refresh stats for user %s: %v", ev.UserID, err)
			return
		}
		s.broadcaster.Broadcast(ev.UserID, live.Message{Type: "stats", Data: st})
	}
}

// flownDistance sums the distance of the flights dated today or earlier.
func (s *FlightService) flownDistance(flights []domain.EnrichedFlight) float64 {
	var total float64
	for _, f := range selection.FilterFlights(flights, domain.SelectorAll, s.today()) {
		total += f.Distance()
	}
	return total
}

// fillTotals reads the stored log and sets the event's flown totals. The
// store already holds the write, so the before total is derived from it.
func (s *FlightService) fillTotals(ctx context.Context, ev *kafka.FlightEvent) {
	raws, err := s.repo.List(ctx, ev.UserID)
	if err != nil {
		log.Printf("failed to read totals for user %s: %v", ev.UserID, err)
		return
	}
	ev.TotalKmAfter = s.flownDistance(s.enricher.EnrichAll(raws))
	ev.TotalKmBefore = math.Max(ev.TotalKmAfter-ev.DistanceKm, 0)
}

func cachedStats[T any](ctx context.Context, s *FlightService, userID, field string, build func() (T, error)) (T, error) {
	var value T
	if s.cache != nil {
		ok, err := s.cache.GetStats(ctx, userID, field, &value)
		if err == nil && ok {
			return value, nil
		}
		if err != nil {
			log.Printf("stats cache read failed for user %s: %v", userID, err)
		}
	}

	value, err := build()
	if err != nil {
		return value, err
	}

	if s.cache != nil {
		if err := s.cache.SetStats(ctx, userID, field, value); err != nil {
			log.Printf("stats cache write failed for user %s: %v", userID, err)
		}
	}
	return value, nil
}

var _ FlightUseCase = (*FlightService)(nil)
