// Package feed publishes executed trades to Kafka for external consumers
// (analytics, surveillance, anything outside this process). Best-effort and
// async: the matching core never waits on the feed.
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"hash/fnv"
	"time"

	"github.com/joripage/matchengine/pkg/matching"
	"github.com/joripage/matchengine/pkg/report"
	kafka "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
	GroupID string   `yaml:"group_id"`
}

func (c *KafkaConfig) withDefaults() {
	if c.Topic == "" {
		c.Topic = "trades"
	}
}

// TradeFeed writes trade events keyed by symbol so one symbol always lands on
// one partition, preserving trade order per instrument.
type TradeFeed struct {
	w     *kafka.Writer
	topic string
}

func NewTradeFeed(cfg KafkaConfig) *TradeFeed {
	cfg.withDefaults()
	return &TradeFeed{
		w: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Balancer:               &kafka.Hash{},
			BatchSize:              100,
			BatchTimeout:           50 * time.Millisecond,
			AllowAutoTopicCreation: true,
			RequiredAcks:           kafka.RequireNone,
			Async:                  true,
		},
		topic: cfg.Topic,
	}
}

// OnTrades is registered as an engine trade callback.
func (f *TradeFeed) OnTrades(trades []matching.Trade) {
	now := time.Now()
	msgs := make([]kafka.Message, 0, len(trades))
	for _, t := range trades {
		value, err := json.Marshal(report.NewTradeEvent(t, now))
		if err != nil {
			zap.S().Errorw("marshal trade for feed", "err", err)
			continue
		}
		msgs = append(msgs, kafka.Message{
			Topic: f.topic,
			Key:   hashKey(t.Symbol),
			Value: value,
			Time:  now,
		})
	}
	if len(msgs) == 0 {
		return
	}
	if err := f.w.WriteMessages(context.Background(), msgs...); err != nil {
		zap.S().Errorw("write trade feed", "err", err)
	}
}

func (f *TradeFeed) Close() error {
	return f.w.Close()
}

// Consumer reads the trade feed back, for downstream tooling built on this
// module.
type Consumer struct {
	r *kafka.Reader
}

func NewConsumer(cfg KafkaConfig) *Consumer {
	cfg.withDefaults()
	return &Consumer{
		r: kafka.NewReader(kafka.ReaderConfig{
			Brokers:     cfg.Brokers,
			GroupID:     cfg.GroupID,
			Topic:       cfg.Topic,
			StartOffset: kafka.FirstOffset,
			MaxWait:     500 * time.Millisecond,
			MinBytes:    1,
			MaxBytes:    10 << 20,
		}),
	}
}

// Run delivers decoded trade events to handler until the context is canceled.
func (c *Consumer) Run(ctx context.Context, handler func(context.Context, *report.TradeEvent) error) error {
	for {
		m, err := c.r.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return ctx.Err()
			}
			zap.S().Warnw("fetch trade feed", "err", err)
			time.Sleep(200 * time.Millisecond)
			continue
		}

		var ev report.TradeEvent
		if err := json.Unmarshal(m.Value, &ev); err != nil {
			zap.S().Errorw("unmarshal trade feed message", "err", err)
			_ = c.r.CommitMessages(ctx, m)
			continue
		}
		if err := handler(ctx, &ev); err != nil {
			zap.S().Errorw("handle trade feed message", "err", err)
			continue
		}
		_ = c.r.CommitMessages(ctx, m)
	}
}

func (c *Consumer) Close() error {
	return c.r.Close()
}

func hashKey(s string) []byte {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	sum := h.Sum64()
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(sum >> (56 - 8*i))
	}
	return b
}
