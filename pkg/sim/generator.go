// Package sim produces a synthetic order flow for exercising the matching
// engine: random side, a price jittered around a base, and a random quantity.
// The engine is agnostic to where submissions come from; this is the demo
// workload.
package sim

import (
	"math/rand"

	"github.com/joripage/matchengine/pkg/matching"
)

type Config struct {
	BasePrice  float64 `yaml:"base_price"`
	PriceSwing float64 `yaml:"price_swing"` // max deviation either way
	MinQty     int64   `yaml:"min_qty"`
	MaxQty     int64   `yaml:"max_qty"`
	Seed       int64   `yaml:"seed"` // same seed, same order flow
}

type Generator struct {
	cfg Config
	rng *rand.Rand
}

func NewGenerator(cfg Config) *Generator {
	if cfg.BasePrice == 0 {
		cfg.BasePrice = 75.0
	}
	if cfg.PriceSwing == 0 {
		cfg.PriceSwing = 5.0
	}
	if cfg.MinQty == 0 {
		cfg.MinQty = 1
	}
	if cfg.MaxQty == 0 {
		cfg.MaxQty = 100
	}
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Next produces one random limit submission. Prices are rounded to two
// decimals to keep price levels clustered.
func (g *Generator) Next() matching.Submission {
	side := matching.BUY
	if g.rng.Intn(2) == 0 {
		side = matching.SELL
	}

	price := g.cfg.BasePrice + (g.rng.Float64()*2-1)*g.cfg.PriceSwing
	price = float64(int(price*100)) / 100

	qty := g.cfg.MinQty + g.rng.Int63n(g.cfg.MaxQty-g.cfg.MinQty+1)

	return matching.Submission{
		Side:  side,
		Price: price,
		Qty:   qty,
	}
}
