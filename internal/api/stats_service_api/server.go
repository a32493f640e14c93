package stats_service_api

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Domenick1991/flightlog/internal/domain"
	"github.com/Domenick1991/flightlog/internal/geo"
	"google.golang.org/genproto/googleapis/api/httpbody"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// StatsUseCase is the part of the flight service exposed over gRPC.
type StatsUseCase interface {
	Stats(ctx context.Context, userID string, sel domain.Selector) (domain.FlightStats, error)
	DeparturesByCountry(ctx context.Context, userID string, sel domain.Selector) ([]domain.CountryDepartures, error)
	TimeGrouping(ctx context.Context, userID string, grouping domain.Grouping, sel domain.Selector) ([]domain.PeriodCount, error)
	Paths(ctx context.Context, userID string, sel domain.Selector) ([][]geo.Coordinate, error)
}

// Server implements StatsServiceServer on top of the flight service.
type Server struct {
	stats StatsUseCase
}

func NewServer(stats StatsUseCase) *Server {
	return &Server{stats: stats}
}

func (s *Server) GetStats(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	user, sel, err := parseRequest(req)
	if err != nil {
		return nil, err
	}
	st, err := s.stats.Stats(ctx, user, sel)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(st)
}

func (s *Server) GetDeparturesByCountry(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	user, sel, err := parseRequest(req)
	if err != nil {
		return nil, err
	}
	list, err := s.stats.DeparturesByCountry(ctx, user, sel)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(map[string]any{"departures": list})
}

func (s *Server) GetTimeGrouping(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	user, sel, err := parseRequest(req)
	if err != nil {
		return nil, err
	}
	mode := stringField(req, "mode")
	if mode == "" {
		mode = string(domain.GroupingMonth)
	}
	grouping, err := domain.ParseGrouping(mode)
	if err != nil {
		return nil, toStatus(err)
	}
	list, err := s.stats.TimeGrouping(ctx, user, grouping, sel)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(map[string]any{"mode": grouping, "periods": list})
}

func (s *Server) GetMapPaths(ctx context.Context, req *structpb.Struct) (*httpbody.HttpBody, error) {
	user, sel, err := parseRequest(req)
	if err != nil {
		return nil, err
	}
	paths, err := s.stats.Paths(ctx, user, sel)
	if err != nil {
		return nil, toStatus(err)
	}
	data, err := geo.PathsGeoJSON(paths)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode paths: %v", err)
	}
	return &httpbody.HttpBody{ContentType: "application/geo+json", Data: data}, nil
}

func stringField(req *structpb.Struct, name string) string {
	return req.GetFields()[name].GetStringValue()
}

func parseRequest(req *structpb.Struct) (string, domain.Selector, error) {
	user := stringField(req, "user_id")
	if user == "" {
		return "", "", status.Error(codes.Unauthenticated, "user_id is required")
	}
	raw := stringField(req, "selector")
	if raw == "" {
		return user, domain.SelectorAll, nil
	}
	sel, err := domain.ParseSelector(raw)
	if err != nil {
		return "", "", toStatus(err)
	}
	return user, sel, nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidSelector), errors.Is(err, domain.ErrInvalidGrouping):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

// toStruct goes through JSON so the response keeps the REST field names.
func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return out, nil
}

var _ StatsServiceServer = (*Server)(nil)
