package api

import (
	"context"
	"io"

	"github.com/Domenick1991/flightlog/internal/domain"
	"github.com/Domenick1991/flightlog/internal/geo"
	"github.com/Domenick1991/flightlog/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

// MockFlightUseCase is a mock implementation of flights.FlightUseCase
type MockFlightUseCase struct {
	mock.Mock
}

func (m *MockFlightUseCase) List(ctx context.Context, userID string, sel domain.Selector) ([]domain.EnrichedFlight, error) {
	args := m.Called(ctx, userID, sel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EnrichedFlight), args.Error(1)
}

func (m *MockFlightUseCase) Get(ctx context.Context, userID, id string) (*domain.EnrichedFlight, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EnrichedFlight), args.Error(1)
}

func (m *MockFlightUseCase) Years(ctx context.Context, userID string) ([]int, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockFlightUseCase) Stats(ctx context.Context, userID string, sel domain.Selector) (domain.FlightStats, error) {
	args := m.Called(ctx, userID, sel)
	return args.Get(0).(domain.FlightStats), args.Error(1)
}

func (m *MockFlightUseCase) DeparturesByCountry(ctx context.Context, userID string, sel domain.Selector) ([]domain.CountryDepartures, error) {
	args := m.Called(ctx, userID, sel)
	return args.Get(0).([]domain.CountryDepartures), args.Error(1)
}

func (m *MockFlightUseCase) TimeGrouping(ctx context.Context, userID string, grouping domain.Grouping, sel domain.Selector) ([]domain.PeriodCount, error) {
	args := m.Called(ctx, userID, grouping, sel)
	return args.Get(0).([]domain.PeriodCount), args.Error(1)
}

func (m *MockFlightUseCase) Paths(ctx context.Context, userID string, sel domain.Selector) ([][]geo.Coordinate, error) {
	args := m.Called(ctx, userID, sel)
	return args.Get(0).([][]geo.Coordinate), args.Error(1)
}

func (m *MockFlightUseCase) Journey(ctx context.Context, userID string, sel domain.Selector) (domain.JourneyProgress, error) {
	args := m.Called(ctx, userID, sel)
	return args.Get(0).(domain.JourneyProgress), args.Error(1)
}

func (m *MockFlightUseCase) Record(ctx context.Context, userID string, input flights.RecordInput) (*domain.EnrichedFlight, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EnrichedFlight), args.Error(1)
}

func (m *MockFlightUseCase) Import(ctx context.Context, userID string, r io.Reader) (int, error) {
	args := m.Called(ctx, userID, r)
	return args.Int(0), args.Error(1)
}

func newRouter(service flights.FlightUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api", UserMiddleware())
	NewFlightHandler(service).Register(api.Group("/flights"))
	stats := NewStatsHandler(service)
	stats.Register(api.Group("/stats"))
	stats.RegisterMap(api.Group("/map"))
	return router
}
