package main

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/radieske/nba-odds-poc/internal/betledger"
	"github.com/radieske/nba-odds-poc/internal/oddsfeed"
	"github.com/radieske/nba-odds-poc/internal/oddsview"
	"github.com/radieske/nba-odds-poc/internal/shared/cache"
	"github.com/radieske/nba-odds-poc/internal/shared/config"
	"github.com/radieske/nba-odds-poc/internal/shared/db"
	"github.com/radieske/nba-odds-poc/internal/shared/kafka"
	"github.com/radieske/nba-odds-poc/internal/shared/logger"
	"github.com/radieske/nba-odds-poc/internal/shared/metrics"
	"github.com/radieske/nba-odds-poc/internal/walletledger"
	httpapi "github.com/radieske/nba-odds-poc/internal/webapp/http"
	"github.com/radieske/nba-odds-poc/internal/webapp/producer"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	log.Info("starting service", zap.String("service", cfg.ServiceName), zap.String("env", cfg.Env))

	// client da API externa de odds históricas
	feed := oddsfeed.New(cfg.OddsAPIBaseURL)

	// game-days carregados uma vez por sessão: o dataset é estático.
	// falha aqui não derruba o app (lista vazia = "sem dados"), sem retry
	days, err := feed.ListGameDays(context.Background())
	if err != nil {
		log.Warn("game days load failed, serving empty list", zap.Error(err))
	}
	log.Info("game days loaded", zap.Int("count", len(days)))

	// snapshot da carteira, conforme backend configurado
	var store walletledger.Store
	healthFn := func(ctx context.Context) error { return nil }

	switch cfg.SnapshotBackend {
	case "redis":
		rdb, err := cache.ConnectRedis(cfg.RedisAddr)
		if err != nil {
			log.Fatal("redis connect", zap.Error(err))
		}
		defer rdb.Close()
		store = walletledger.NewRedisStore(rdb, cfg.SnapshotKey)
		healthFn = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		log.Info("wallet snapshot on redis", zap.String("key", cfg.SnapshotKey))
	case "postgres":
		pg, err := db.ConnectPostgres(cfg.PostgresDSN)
		if err != nil {
			log.Fatal("postgres connect", zap.Error(err))
		}
		defer pg.Close()
		store = walletledger.NewPostgresStore(pg, cfg.SnapshotKey)
		healthFn = func(ctx context.Context) error { return pg.PingContext(ctx) }
		log.Info("wallet snapshot on postgres", zap.String("key", cfg.SnapshotKey))
	case "none", "":
		// carteira só em memória
	default:
		log.Fatal("unknown snapshot backend", zap.String("backend", cfg.SnapshotBackend))
	}

	// ledgers construídos aqui e passados por referência às views;
	// o main é o único dono do ciclo de vida
	bets := betledger.New()
	wallet := walletledger.New(store, log)

	// Kafka opcional pro evento bet_placed
	var publ httpapi.BetEventPublisher
	if cfg.KafkaBrokers != "" {
		writer := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetPlaced)
		defer writer.Close()
		publ = producer.NewKafkaPublisher(writer)
		log.Info("kafka writer ready", zap.String("topic", cfg.TopicBetPlaced))
	}

	view := oddsview.New(feed, log)
	api := httpapi.NewServer(log, days, view, bets, wallet, publ, cfg.LoginRedirectURL)

	// métricas e health em porta separada
	metricsSrv := metrics.StartMetricsServer(cfg.MetricsPort, healthFn)
	defer metricsSrv.Close()
	log.Info("metrics/health listening", zap.String("addr", metricsSrv.Addr))

	apiSrv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: api.Router(),
	}

	log.Info("webapp listening", zap.String("addr", apiSrv.Addr))
	if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("api srv", zap.Error(err))
	}
}
