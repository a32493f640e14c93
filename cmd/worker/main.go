package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/flightlog/config"
	"github.com/Domenick1991/flightlog/internal/cache"
	"github.com/Domenick1991/flightlog/internal/importer"
	"github.com/Domenick1991/flightlog/internal/kafka"
	"github.com/Domenick1991/flightlog/internal/notify"
	"github.com/Domenick1991/flightlog/internal/reference"
	"github.com/Domenick1991/flightlog/internal/repository"
	"github.com/Domenick1991/flightlog/internal/service/enrich"
	"github.com/Domenick1991/flightlog/internal/service/flights"
	kafkaGo "github.com/segmentio/kafka-go"
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
	if len(cfg.Kafka.Brokers) == 0 {
		log.Fatalf("kafka.brokers is required for the worker")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := reference.Load(cfg.Reference.AirportsPath, cfg.Reference.AirlinesPath)
	if err != nil {
		log.Fatalf("load reference data: %v", err)
	}

	flightRepo, closeRepo, err := repository.Open(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("open flight store: %v", err)
	}
	defer closeRepo()

	redisCache := cache.NewRedisCache(cfg.Redis, cfg.Stats.CacheTTL())
	defer redisCache.Close()

	flightService := flights.NewFlightService(
		flightRepo,
		enrich.New(store, enrich.WithAvgSpeed(cfg.Stats.AvgSpeedKmh)),
		importer.New(store),
		flights.WithCache(redisCache),
		flights.WithLocation(loc),
	)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.FlightsTopic)
	defer consumer.Close()

	sender := notify.NewSender()

	log.Printf("worker consuming %s", cfg.Kafka.FlightsTopic)
	err = consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
		event, err := kafka.DecodeFlightEvent(msg)
		if err != nil {
			log.Printf("decode event error: %v", err)
			return nil
		}

		if _, err := flightService.Refresh(ctx, event.UserID); err != nil {
			log.Printf("refresh stats for user %s: %v", event.UserID, err)
		}
		return sender.Send(ctx, event)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("consumer stopped: %v", err)
	}
	log.Printf("worker stopped")
}
