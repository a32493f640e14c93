package bootstrap

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/Domenick1991/flightlog/api"
	"github.com/Domenick1991/flightlog/config"
	statsapi "github.com/Domenick1991/flightlog/internal/api/stats_service_api"
	"github.com/Domenick1991/flightlog/internal/live"
	"github.com/Domenick1991/flightlog/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	httpSwagger "github.com/swaggo/http-swagger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

type Servers struct {
	grpcServer  *grpc.Server
	httpServer  *http.Server
	gatewayConn *grpc.ClientConn
}

// Run starts the gRPC and HTTP (REST, grpc-gateway, swagger) servers and blocks
// until ctx is canceled or a server fails.
func Run(ctx context.Context, cfg *config.Config, flightSvc flights.FlightUseCase, ref api.ReferenceLookup, hub *live.Hub) error {
	s, err := newServers(cfg, flightSvc, ref, hub)
	if err != nil {
		return err
	}
	defer s.gatewayConn.Close()

	errCh := make(chan error, 2)

	lis, err := net.Listen("tcp", cfg.GRPC.Address)
	if err != nil {
		return fmt.Errorf("listen gRPC %s: %w", cfg.GRPC.Address, err)
	}
	go func() { errCh <- s.grpcServer.Serve(lis) }()

	go func() { errCh <- s.httpServer.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.grpcServer.GracefulStop()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newServers(cfg *config.Config, flightSvc flights.FlightUseCase, ref api.ReferenceLookup, hub *live.Hub) (*Servers, error) {
	grpcSrv := grpc.NewServer()
	statsapi.RegisterStatsServiceServer(grpcSrv, statsapi.NewServer(flightSvc))

	conn, err := grpc.NewClient(cfg.GRPC.Address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial gRPC %s: %w", cfg.GRPC.Address, err)
	}
	gwmux := runtime.NewServeMux()
	if err := statsapi.RegisterGateway(gwmux, statsapi.NewClient(conn)); err != nil {
		conn.Close()
		return nil, fmt.Errorf("register stats gateway: %w", err)
	}

	handler := http.NewServeMux()
	handler.Handle("/api/", NewRouter(flightSvc, ref, hub))
	handler.Handle("/v1/", gwmux)

	if cfg.HTTP.SwaggerDir != "" {
		docPath := filepath.Join(cfg.HTTP.SwaggerDir, "flightlog.swagger.json")
		handler.HandleFunc("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
			http.ServeFile(w, r, docPath)
		})
		handler.Handle("/swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	}

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &Servers{
		grpcServer:  grpcSrv,
		httpServer:  httpSrv,
		gatewayConn: conn,
	}, nil
}

// NewRouter builds the gin REST API mounted under /api. Reference lookups are
// shared by every user and sit outside the user middleware.
func NewRouter(flightSvc flights.FlightUseCase, ref api.ReferenceLookup, hub *live.Hub) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	if ref != nil {
		api.NewReferenceHandler(ref).Register(router.Group("/api/reference"))
	}

	group := router.Group("/api", api.UserMiddleware())
	api.NewFlightHandler(flightSvc).Register(group.Group("/flights"))

	statsHandler := api.NewStatsHandler(flightSvc)
	statsHandler.Register(group.Group("/stats"))
	statsHandler.RegisterMap(group.Group("/map"))

	if hub != nil {
		api.NewLiveHandler(hub).Register(group)
	}
	return router
}
