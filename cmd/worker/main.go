package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joripage/matchengine/config"
	postgres_wrapper "github.com/joripage/matchengine/pkg/infra/postgres"
	"github.com/joripage/matchengine/pkg/logging"
	"github.com/joripage/matchengine/pkg/report/repo"
	"github.com/joripage/matchengine/pkg/report/worker"
	_ "github.com/lib/pq"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

func main() {
	var configFile string
	flag.StringVar(&configFile, "config-file", "", "Specify config file path")
	flag.Parse()

	cfg, err := config.Load(configFile)
	if err != nil {
		panic(err)
	}

	logger := logging.Init(cfg.LogLevel)
	defer logger.Sync() // nolint

	configBytes, err := json.MarshalIndent(cfg, "", "   ")
	if err != nil {
		zap.S().Warnf("could not convert config to JSON: %v", err)
	} else {
		zap.S().Debugf("load config %s", string(configBytes))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	natsURL := nats.DefaultURL
	stream, subject, durable := "TRADES", "TRADES.executed", "trade_worker"
	if cfg.Nats != nil {
		if cfg.Nats.URL != "" {
			natsURL = cfg.Nats.URL
		}
		if cfg.Nats.Stream != "" {
			stream = cfg.Nats.Stream
		}
		if cfg.Nats.Subject != "" {
			subject = cfg.Nats.Subject
		}
		if cfg.Nats.Durable != "" {
			durable = cfg.Nats.Durable
		}
	}

	nc, err := nats.Connect(natsURL)
	if err != nil {
		zap.S().Fatalw("connect nats", "err", err)
	}
	defer nc.Close()

	js, err := nc.JetStream()
	if err != nil {
		zap.S().Fatalw("jetstream context", "err", err)
	}

	// Ensure stream
	_, _ = js.AddStream(&nats.StreamConfig{
		Name:     stream,
		Subjects: []string{stream + ".*"},
	})

	// init db
	db, err := postgres_wrapper.InitPostgres(cfg.TradeDB)
	if err != nil {
		zap.S().Errorf("init db fail with err: %v", err)
		panic(err)
	}

	// init repo
	sqlRepo := repo.NewRepo(db)

	w := worker.NewWorker(sqlRepo)
	go func() {
		if err := w.StartConsumer(ctx, js, subject, durable); err != nil && ctx.Err() == nil {
			zap.S().Errorw("consumer stopped", "err", err)
		}
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	cancel()
	zap.S().Info("worker stopped")
}
