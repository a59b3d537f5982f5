// Simulator drives the engine with a random order flow at a configurable
// pace, logging each placed order and each trade, then prints both sides of
// the book when the run ends.
package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/joripage/matchengine/pkg/logging"
	"github.com/joripage/matchengine/pkg/matching"
	"github.com/joripage/matchengine/pkg/report"
	"github.com/joripage/matchengine/pkg/sim"
	"go.uber.org/zap"
)

func main() {
	var (
		numOrders int
		pace      time.Duration
		basePrice float64
		seed      int64
	)
	flag.IntVar(&numOrders, "orders", 50, "number of orders to submit")
	flag.DurationVar(&pace, "pace", time.Second, "delay between submissions")
	flag.Float64Var(&basePrice, "base-price", 75.0, "center of the random price band")
	flag.Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	logger := logging.Init("info")
	defer logger.Sync() // nolint

	engine := matching.NewEngine("ABC", matching.NewSequencer())
	engine.RegisterTradeCallback(report.NewTradeLogger(logger).OnTrades)

	gen := sim.NewGenerator(sim.Config{
		BasePrice:  basePrice,
		PriceSwing: 5.0,
		MinQty:     1,
		MaxQty:     100,
		Seed:       seed,
	})

	for i := 0; i < numOrders; i++ {
		sub := gen.Next()
		res, err := engine.Submit(sub)
		if err != nil {
			zap.S().Errorw("submit", "err", err)
			continue
		}
		zap.S().Infow("order placed",
			"order_id", res.OrderID,
			"side", sub.Side,
			"price", sub.Price,
			"qty", sub.Qty,
			"filled", res.Filled,
			"remaining", res.Remaining,
		)

		if pace > 0 {
			time.Sleep(pace)
		}
	}

	displayBook(engine)
}

func displayBook(engine *matching.Engine) {
	fmt.Println("\nRemaining Buy Orders:")
	printSide(engine.Snapshot(matching.BUY))

	fmt.Println("\nRemaining Sell Orders:")
	printSide(engine.Snapshot(matching.SELL))
}

func printSide(entries []matching.BookEntry) {
	if len(entries) == 0 {
		fmt.Println("  (empty)")
		return
	}
	for _, e := range entries {
		fmt.Printf("  OrderID: %d, Price: %.2f, Quantity: %d\n", e.OrderID, e.Price, e.Qty)
	}
}
