package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vietanh2810/raffle-api/internal/api"
	"github.com/vietanh2810/raffle-api/internal/config"
	"github.com/vietanh2810/raffle-api/internal/db"
	"github.com/vietanh2810/raffle-api/internal/events"
	"github.com/vietanh2810/raffle-api/internal/logger"
	"github.com/vietanh2810/raffle-api/internal/metrics"
	"github.com/vietanh2810/raffle-api/internal/repository"
	"github.com/vietanh2810/raffle-api/internal/repository/dao"
	"github.com/vietanh2810/raffle-api/internal/service"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	if err = dao.InitTables(postgresDB); err != nil {
		return fmt.Errorf("failed to migrate tables -> %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.New(registry)

	publisher := events.NewPublisher(conf.Kafka.Brokers, conf.Kafka.Topic)
	defer func() {
		if err := publisher.Close(); err != nil {
			zap.L().Warn("failed to close event publisher", zap.Error(err))
		}
	}()

	repo := repository.NewRaffleRepository(dao.NewRaffleNumberDAO(postgresDB))
	raffleService := service.NewRaffleService(repo, conf.Raffle, publisher, recorder)

	if conf.Raffle.SeedOnStart {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		inserted, err := raffleService.Seed(ctx)
		cancel()
		if err != nil {
			return fmt.Errorf("failed to seed raffle numbers -> %w", err)
		}
		zap.L().Info("raffle numbers seeded",
			zap.String("event_id", conf.Raffle.EventID),
			zap.Int64("inserted", inserted))
	}

	adminService, err := service.NewAdminAuthService(conf.API, conf.Raffle)
	if err != nil {
		return fmt.Errorf("failed to initialize admin auth -> %w", err)
	}

	rdb, err := openRedis(conf.Redis)
	if err != nil {
		return fmt.Errorf("failed to initialize redis -> %w", err)
	}
	if rdb != nil {
		defer rdb.Close()
	}

	s, err := api.NewServer(conf, api.Deps{
		Raffle:   raffleService,
		Admin:    adminService,
		Redis:    rdb,
		Registry: registry,
		Metrics:  recorder,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize server -> %w", err)
	}

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}

// openRedis returns nil when no address is configured; the claim limiter then
// falls back to process memory.
func openRedis(conf *config.RedisConfig) (*redis.Client, error) {
	if conf.Addr == "" {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     conf.Addr,
		Password: conf.Password,
		DB:       conf.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("openRedis -> rdb.Ping -> %w", err)
	}

	return rdb, nil
}
