package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/joripage/matchengine/pkg/matching"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DepthCache keeps the latest book snapshot in Redis under depth:<symbol> so
// display tooling can read it without touching the engine. It is a cache of
// the current state, not a feed; stale values simply expire.
type DepthCache struct {
	rdb    *redis.Client
	engine *matching.Engine
	ttl    time.Duration
}

type depthSnapshot struct {
	Symbol string               `json:"symbol"`
	Bids   []matching.BookEntry `json:"bids"`
	Asks   []matching.BookEntry `json:"asks"`
	At     time.Time            `json:"at"`
}

func NewDepthCache(rdb *redis.Client, engine *matching.Engine) *DepthCache {
	return &DepthCache{rdb: rdb, engine: engine, ttl: 30 * time.Second}
}

// Write stores the current snapshot of both sides.
func (d *DepthCache) Write(ctx context.Context) error {
	snap := depthSnapshot{
		Symbol: d.engine.Symbol(),
		Bids:   d.engine.Snapshot(matching.BUY),
		Asks:   d.engine.Snapshot(matching.SELL),
		At:     time.Now(),
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("depth:%s", snap.Symbol)
	return d.rdb.Set(ctx, key, data, d.ttl).Err()
}

// Run refreshes the cache on an interval until the context is canceled.
func (d *DepthCache) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := d.Write(ctx); err != nil {
				zap.S().Warnw("write depth snapshot", "err", err)
			}
		case <-ctx.Done():
			return
		}
	}
}
