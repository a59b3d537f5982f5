package report

import (
	"encoding/json"
	"time"

	"github.com/joripage/matchengine/pkg/matching"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

type NatsConfig struct {
	URL     string `yaml:"url"`
	Stream  string `yaml:"stream"`
	Subject string `yaml:"subject"`
	Durable string `yaml:"durable"`
}

func (c *NatsConfig) withDefaults() {
	if c.URL == "" {
		c.URL = nats.DefaultURL
	}
	if c.Stream == "" {
		c.Stream = "TRADES"
	}
	if c.Subject == "" {
		c.Subject = "TRADES.executed"
	}
	if c.Durable == "" {
		c.Durable = "trade_worker"
	}
}

// Publisher ships trade events to a JetStream subject for the journal worker.
// Publishing is async; a failed publish is logged and dropped, the book is
// the source of truth and is never replayed from this stream.
type Publisher struct {
	nc      *nats.Conn
	js      nats.JetStreamContext
	subject string
}

func NewPublisher(cfg *NatsConfig) (*Publisher, error) {
	cfg.withDefaults()

	nc, err := nats.Connect(cfg.URL)
	if err != nil {
		return nil, err
	}

	js, err := nc.JetStream(nats.PublishAsyncMaxPending(65536))
	if err != nil {
		nc.Close()
		return nil, err
	}

	// idempotent; the worker does the same on its side
	_, _ = js.AddStream(&nats.StreamConfig{
		Name:     cfg.Stream,
		Subjects: []string{cfg.Stream + ".*"},
	})

	return &Publisher{nc: nc, js: js, subject: cfg.Subject}, nil
}

func (p *Publisher) OnTrades(trades []matching.Trade) {
	now := time.Now()
	for _, t := range trades {
		data, err := json.Marshal(NewTradeEvent(t, now))
		if err != nil {
			zap.S().Errorw("marshal trade event", "err", err)
			continue
		}
		if _, err := p.js.PublishAsync(p.subject, data); err != nil {
			zap.S().Errorw("publish trade event", "err", err)
		}
	}
}

func (p *Publisher) Close() {
	select {
	case <-p.js.PublishAsyncComplete():
	case <-time.After(5 * time.Second):
		zap.S().Warn("timed out draining trade publishes")
	}
	p.nc.Close()
}
