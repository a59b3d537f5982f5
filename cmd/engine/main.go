package main

import (
	"context"
	"flag"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joripage/matchengine/config"
	"github.com/joripage/matchengine/pkg/feed"
	fixgateway "github.com/joripage/matchengine/pkg/gateway/fix"
	redis_wrapper "github.com/joripage/matchengine/pkg/infra/redis"
	"github.com/joripage/matchengine/pkg/logging"
	"github.com/joripage/matchengine/pkg/matching"
	"github.com/joripage/matchengine/pkg/report"
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

	go func() {
		http.ListenAndServe("localhost:6060", nil) // nolint
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	engine := matching.NewEngine(cfg.Symbol, matching.NewSequencer())
	engine.RegisterTradeCallback(report.NewTradeLogger(logger).OnTrades)

	if cfg.Nats != nil {
		publisher, err := report.NewPublisher(cfg.Nats)
		if err != nil {
			zap.S().Fatalw("connect nats", "err", err)
		}
		defer publisher.Close()
		engine.RegisterTradeCallback(publisher.OnTrades)
	}

	if cfg.Kafka != nil {
		tradeFeed := feed.NewTradeFeed(*cfg.Kafka)
		defer tradeFeed.Close() // nolint
		engine.RegisterTradeCallback(tradeFeed.OnTrades)
	}

	if cfg.Redis != nil {
		rdb, err := redis_wrapper.InitRedis(cfg.Redis)
		if err != nil {
			zap.S().Fatalw("connect redis", "err", err)
		}
		depth := report.NewDepthCache(rdb, engine)
		go depth.Run(ctx, time.Second)
	}

	gateway := fixgateway.NewFixGateway(cfg.Fix, engine)
	if err := gateway.Start(ctx); err != nil {
		zap.S().Fatalw("start fix gateway", "err", err)
	}

	zap.S().Infow("matching engine started", "symbol", cfg.Symbol)

	<-sigs
	zap.S().Info("shutting down...")

	gateway.Stop()
	cancel()

	zap.S().Info("exited cleanly")
}
