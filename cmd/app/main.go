package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/flightlog/config"
	"github.com/Domenick1991/flightlog/internal/bootstrap"
	"github.com/Domenick1991/flightlog/internal/cache"
	"github.com/Domenick1991/flightlog/internal/importer"
	"github.com/Domenick1991/flightlog/internal/kafka"
	"github.com/Domenick1991/flightlog/internal/live"
	"github.com/Domenick1991/flightlog/internal/reference"
	"github.com/Domenick1991/flightlog/internal/repository"
	"github.com/Domenick1991/flightlog/internal/service/enrich"
	"github.com/Domenick1991/flightlog/internal/service/flights"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	loc, err := cfg.Stats.Location()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := reference.Load(cfg.Reference.AirportsPath, cfg.Reference.AirlinesPath)
	if err != nil {
		log.Fatalf("load reference data: %v", err)
	}
	airports, airlines := store.Len()
	log.Printf("reference data: %d airports, %d airlines", airports, airlines)

	flightRepo, closeRepo, err := repository.Open(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("open flight store: %v", err)
	}
	defer closeRepo()

	hub := live.NewHub()
	opts := []flights.FlightServiceOption{
		flights.WithLocation(loc),
		flights.WithPathPoints(cfg.Stats.PathPoints),
		flights.WithBroadcaster(hub),
	}

	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis, cfg.Stats.CacheTTL())
		defer redisCache.Close()
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := redisCache.Ping(pingCtx); err != nil {
			log.Printf("redis unavailable, running without cache: %v", err)
		} else {
			opts = append(opts, flights.WithCache(redisCache))
		}
		cancel()
	}

	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.FlightsTopic)
		defer producer.Close()
		if err := producer.CheckConnection(ctx); err != nil {
			log.Printf("kafka check failed, events may be lost: %v", err)
		}
		opts = append(opts, flights.WithProducer(producer))
	}

	flightService := flights.NewFlightService(
		flightRepo,
		enrich.New(store, enrich.WithAvgSpeed(cfg.Stats.AvgSpeedKmh)),
		importer.New(store),
		opts...,
	)

	if err := bootstrap.Run(ctx, cfg, flightService, store, hub); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
