// Package worker drains the trade event stream into the SQL journal. It is a
// pure downstream consumer; the engine never reads the journal back.
package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/joripage/matchengine/pkg/report"
	"github.com/joripage/matchengine/pkg/report/repo"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

type Worker struct {
	trade repo.ITrade
}

func NewWorker(r repo.IRepo) *Worker {
	return &Worker{
		trade: r.Trade(),
	}
}

// StartConsumer pulls trade events from a durable JetStream consumer and
// writes them to the journal until the context is canceled. Events that fail
// to decode are acked and dropped; events that fail to persist are redelivered.
func (w *Worker) StartConsumer(ctx context.Context, js nats.JetStreamContext, subject, durable string) error {
	cons, err := js.PullSubscribe(subject, durable)
	if err != nil {
		return err
	}

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		msgs, err := cons.Fetch(10, nats.Context(ctx))
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return ctx.Err()
			}
			if !errors.Is(err, nats.ErrTimeout) {
				zap.S().Warnw("fetch trade events", "err", err)
			}
			continue
		}

		for _, msg := range msgs {
			var ev report.TradeEvent
			if err := json.Unmarshal(msg.Data, &ev); err != nil {
				zap.S().Errorw("unmarshal trade event", "err", err)
				_ = msg.Ack()
				continue
			}
			if _, err := w.trade.Create(ctx, &ev); err != nil {
				zap.S().Errorw("persist trade event", "trade_id", ev.TradeID, "err", err)
				continue
			}
			_ = msg.Ack()
		}
	}
}
