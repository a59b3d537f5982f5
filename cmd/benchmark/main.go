package main

import (
	"fmt"
	"time"

	"github.com/joripage/matchengine/pkg/matching"
	"github.com/joripage/matchengine/pkg/sim"
)

const numOrders = 1_000_000

func main() {
	engine := matching.NewEngine("ABC", matching.NewSequencer())

	totalMatched := 0
	totalQty := int64(0)
	engine.RegisterTradeCallback(func(trades []matching.Trade) {
		for _, t := range trades {
			totalMatched++
			totalQty += t.Qty
		}
	})

	gen := sim.NewGenerator(sim.Config{
		BasePrice:  150.0,
		PriceSwing: 50.0,
		MinQty:     1,
		MaxQty:     100,
		Seed:       time.Now().UnixNano(),
	})

	start := time.Now()
	for i := 0; i < numOrders; i++ {
		if _, err := engine.Submit(gen.Next()); err != nil {
			panic(err)
		}
	}
	elapsed := time.Since(start)

	fmt.Println("--------")
	fmt.Printf("Total Orders     : %d\n", numOrders)
	fmt.Printf("Total Matches    : %d\n", totalMatched)
	fmt.Printf("Total Matched Qty: %d\n", totalQty)
	fmt.Printf("Time Taken       : %s\n", elapsed)
	fmt.Printf("Orders/sec       : %.0f\n", float64(numOrders)/elapsed.Seconds())
}
