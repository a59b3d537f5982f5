package matching

import (
	"errors"
	"math/rand"
	"testing"
)

func newTestEngine() *Engine {
	return NewEngine("ABC", NewSequencer())
}

func TestRestInEmptyBook(t *testing.T) {
	e := newTestEngine()

	res, err := e.Submit(Submission{Side: SELL, Price: 100.0, Qty: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Trades) != 0 || res.Filled != 0 || res.Remaining != 10 {
		t.Fatalf("expected no fill against empty book, got %+v", res)
	}

	asks := e.Snapshot(SELL)
	if len(asks) != 1 || asks[0].Price != 100.0 || asks[0].Qty != 10 {
		t.Errorf("expected ask book [10@100.00], got %+v", asks)
	}
}

func TestCrossReducesResting(t *testing.T) {
	e := newTestEngine()
	e.Submit(Submission{Side: SELL, Price: 100.0, Qty: 10})

	res, err := e.Submit(Submission{Side: BUY, Price: 101.0, Qty: 6})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Trades) != 1 {
		t.Fatalf("expected 1 trade, got %d", len(res.Trades))
	}
	if res.Trades[0].Qty != 6 || res.Trades[0].Price != 100.0 {
		t.Errorf("expected 6 @ resting price 100.00, got %+v", res.Trades[0])
	}
	if res.Filled != 6 || res.Remaining != 0 {
		t.Errorf("expected full fill, got %+v", res)
	}

	asks := e.Snapshot(SELL)
	if len(asks) != 1 || asks[0].Qty != 4 {
		t.Errorf("expected resting ask reduced to 4@100.00, got %+v", asks)
	}
	if bids := e.Snapshot(BUY); len(bids) != 0 {
		t.Errorf("fully filled buy must not rest, got %+v", bids)
	}
}

func TestNoCrossRests(t *testing.T) {
	e := newTestEngine()
	e.Submit(Submission{Side: SELL, Price: 100.0, Qty: 4})

	res, _ := e.Submit(Submission{Side: BUY, Price: 99.0, Qty: 4})
	if len(res.Trades) != 0 {
		t.Fatalf("99 < 100 must not cross, got %+v", res.Trades)
	}

	bids := e.Snapshot(BUY)
	if len(bids) != 1 || bids[0].Price != 99.0 || bids[0].Qty != 4 {
		t.Errorf("expected bid book [4@99.00], got %+v", bids)
	}
}

func TestAggressorFullyFilledNotRested(t *testing.T) {
	e := newTestEngine()
	e.Submit(Submission{Side: BUY, Price: 99.0, Qty: 4})

	res, _ := e.Submit(Submission{Side: SELL, Price: 99.0, Qty: 2})
	if len(res.Trades) != 1 || res.Trades[0].Qty != 2 || res.Trades[0].Price != 99.0 {
		t.Fatalf("expected 2 @ 99.00, got %+v", res.Trades)
	}

	if asks := e.Snapshot(SELL); len(asks) != 0 {
		t.Errorf("fully filled sell must not rest, got %+v", asks)
	}
	bids := e.Snapshot(BUY)
	if len(bids) != 1 || bids[0].Qty != 2 {
		t.Errorf("expected bid reduced to 2@99.00, got %+v", bids)
	}
}

func TestSamePriceFIFO(t *testing.T) {
	e := newTestEngine()
	first, _ := e.Submit(Submission{Side: BUY, Price: 50.0, Qty: 5})
	second, _ := e.Submit(Submission{Side: BUY, Price: 50.0, Qty: 3})

	res, _ := e.Submit(Submission{Side: SELL, Price: 50.0, Qty: 4})
	if len(res.Trades) != 1 {
		t.Fatalf("expected 1 trade, got %+v", res.Trades)
	}
	if res.Trades[0].BuyOrderID != first.OrderID {
		t.Errorf("earlier bid must match first: expected %d, got %d",
			first.OrderID, res.Trades[0].BuyOrderID)
	}

	bids := e.Snapshot(BUY)
	if len(bids) != 2 {
		t.Fatalf("expected 2 resting bids, got %+v", bids)
	}
	if bids[0].OrderID != first.OrderID || bids[0].Qty != 1 {
		t.Errorf("first bid must remain at 1, got %+v", bids[0])
	}
	if bids[1].OrderID != second.OrderID || bids[1].Qty != 3 {
		t.Errorf("second bid must be untouched at 3, got %+v", bids[1])
	}
}

func TestRejectInvalidSubmission(t *testing.T) {
	e := newTestEngine()
	e.Submit(Submission{Side: SELL, Price: 100.0, Qty: 10})
	before := e.Snapshot(SELL)

	cases := []struct {
		sub  Submission
		want error
	}{
		{Submission{Side: BUY, Price: 0, Qty: 5}, ErrInvalidPrice},
		{Submission{Side: BUY, Price: -10.0, Qty: 5}, ErrInvalidPrice},
		{Submission{Side: BUY, Price: 100.0, Qty: 0}, ErrInvalidQuantity},
		{Submission{Side: SELL, Price: 100.0, Qty: -1}, ErrInvalidQuantity},
	}
	for _, c := range cases {
		res, err := e.Submit(c.sub)
		if !errors.Is(err, c.want) {
			t.Errorf("submit %+v: expected %v, got %v", c.sub, c.want, err)
		}
		if res != nil {
			t.Errorf("rejected submission must not return a result, got %+v", res)
		}
	}

	after := e.Snapshot(SELL)
	if len(after) != len(before) || after[0] != before[0] {
		t.Errorf("rejection must not touch the book: before %+v after %+v", before, after)
	}
}

func TestMultiLevelWalk(t *testing.T) {
	e := newTestEngine()
	for i, price := range []float64{101.0, 102.0, 103.0} {
		res, _ := e.Submit(Submission{Side: SELL, Price: price, Qty: 5})
		if res.Remaining != 5 {
			t.Fatalf("sell %d should rest fully", i)
		}
	}

	res, _ := e.Submit(Submission{Side: BUY, Price: 105.0, Qty: 15})
	if len(res.Trades) != 3 {
		t.Fatalf("expected 3 trades, got %d", len(res.Trades))
	}
	if res.Trades[0].Price != 101.0 || res.Trades[1].Price != 102.0 || res.Trades[2].Price != 103.0 {
		t.Errorf("expected best price first, got %+v", res.Trades)
	}
}

func TestMarketOrderNeverRests(t *testing.T) {
	e := newTestEngine()

	res, err := e.Submit(Submission{Side: BUY, Type: MARKET, Qty: 10})
	if err != nil {
		t.Fatalf("market order against empty book must not error: %v", err)
	}
	if len(res.Trades) != 0 || res.Remaining != 10 {
		t.Fatalf("expected no fill, got %+v", res)
	}
	if bids := e.Snapshot(BUY); len(bids) != 0 {
		t.Errorf("market remainder must be discarded, got %+v", bids)
	}

	e.Submit(Submission{Side: SELL, Price: 100.0, Qty: 5})
	res, _ = e.Submit(Submission{Side: BUY, Type: MARKET, Qty: 8})
	if res.Filled != 5 || res.Remaining != 3 {
		t.Errorf("expected partial fill 5, got %+v", res)
	}
	if bids := e.Snapshot(BUY); len(bids) != 0 {
		t.Errorf("market remainder must be discarded, got %+v", bids)
	}
}

func TestIOCDiscardsRemainder(t *testing.T) {
	e := newTestEngine()
	e.Submit(Submission{Side: SELL, Price: 100.0, Qty: 5})

	res, _ := e.Submit(Submission{Side: BUY, Price: 101.0, Qty: 10, TimeInForce: IOC})
	if res.Filled != 5 || res.Remaining != 5 {
		t.Fatalf("expected IOC partial fill of 5, got %+v", res)
	}
	if bids := e.Snapshot(BUY); len(bids) != 0 {
		t.Errorf("IOC remainder must not rest, got %+v", bids)
	}
}

func TestFOKLeavesBookUntouchedOnKill(t *testing.T) {
	e := newTestEngine()
	e.Submit(Submission{Side: SELL, Price: 100.0, Qty: 5})
	before := e.Snapshot(SELL)

	res, _ := e.Submit(Submission{Side: BUY, Price: 101.0, Qty: 10, TimeInForce: FOK})
	if len(res.Trades) != 0 || res.Filled != 0 {
		t.Fatalf("FOK must kill on insufficient quantity, got %+v", res)
	}

	after := e.Snapshot(SELL)
	if len(after) != 1 || after[0] != before[0] {
		t.Errorf("killed FOK must not touch the book: before %+v after %+v", before, after)
	}
}

func TestFOKFillsWhenPossible(t *testing.T) {
	e := newTestEngine()
	e.Submit(Submission{Side: SELL, Price: 100.0, Qty: 5})
	e.Submit(Submission{Side: SELL, Price: 101.0, Qty: 5})

	res, _ := e.Submit(Submission{Side: BUY, Price: 101.0, Qty: 10, TimeInForce: FOK})
	if res.Filled != 10 || res.Remaining != 0 {
		t.Fatalf("expected FOK full fill, got %+v", res)
	}
	if len(res.Trades) != 2 {
		t.Errorf("expected 2 trades, got %+v", res.Trades)
	}
}

func TestTradeCallbackOrdering(t *testing.T) {
	e := newTestEngine()
	var seen []Trade
	e.RegisterTradeCallback(func(trades []Trade) {
		seen = append(seen, trades...)
	})

	e.Submit(Submission{Side: SELL, Price: 100.0, Qty: 5})
	e.Submit(Submission{Side: SELL, Price: 100.0, Qty: 5})
	e.Submit(Submission{Side: BUY, Price: 100.0, Qty: 8})

	if len(seen) != 2 {
		t.Fatalf("expected 2 trades via callback, got %d", len(seen))
	}
	if seen[0].Qty != 5 || seen[1].Qty != 3 {
		t.Errorf("expected fills 5 then 3, got %+v", seen)
	}
	if seen[0].SellOrderID >= seen[1].SellOrderID {
		t.Errorf("earlier resting sell must fill first, got %+v", seen)
	}
}

// Random workload; after every submit the book must be non-crossing, no
// resting order may have zero quantity, and every order's fills must never
// exceed its original quantity.
func TestEngineInvariantsUnderRandomFlow(t *testing.T) {
	e := newTestEngine()
	rng := rand.New(rand.NewSource(42))

	original := map[int64]int64{}
	filled := map[int64]int64{}
	e.RegisterTradeCallback(func(trades []Trade) {
		for _, tr := range trades {
			filled[tr.BuyOrderID] += tr.Qty
			filled[tr.SellOrderID] += tr.Qty
		}
	})

	for i := 0; i < 5000; i++ {
		side := BUY
		if rng.Intn(2) == 0 {
			side = SELL
		}
		price := float64(int((75.0+rng.Float64()*10-5)*100)) / 100
		qty := int64(1 + rng.Intn(100))

		res, err := e.Submit(Submission{Side: side, Price: price, Qty: qty})
		if err != nil {
			t.Fatalf("unexpected reject: %v", err)
		}
		original[res.OrderID] = qty

		bid, hasBid := e.BestBid()
		ask, hasAsk := e.BestAsk()
		if hasBid && hasAsk && bid >= ask {
			t.Fatalf("crossed book after submit %d: bid %.2f >= ask %.2f", i, bid, ask)
		}

		for _, side := range []Side{BUY, SELL} {
			for _, entry := range e.Snapshot(side) {
				if entry.Qty <= 0 {
					t.Fatalf("phantom order %d with qty %d", entry.OrderID, entry.Qty)
				}
			}
		}
	}

	for id, f := range filled {
		if f > original[id] {
			t.Errorf("order %d filled %d > original %d", id, f, original[id])
		}
	}
}

func TestHighVolumeFullyCrossed(t *testing.T) {
	e := newTestEngine()
	trades := 0
	e.RegisterTradeCallback(func(ts []Trade) { trades += len(ts) })

	num := 10_000
	for i := 0; i < num; i++ {
		side := BUY
		if i%2 == 0 {
			side = SELL
		}
		e.Submit(Submission{Side: side, Price: 100.0, Qty: 10})
	}

	if trades != num/2 {
		t.Errorf("expected %d trades, got %d", num/2, trades)
	}
	if len(e.Snapshot(BUY)) != 0 || len(e.Snapshot(SELL)) != 0 {
		t.Errorf("book should be empty after fully crossed flow")
	}
}

func BenchmarkEngineSubmit(b *testing.B) {
	e := newTestEngine()

	for i := 0; i < 10_000; i++ {
		e.Submit(Submission{
			Side:  SELL,
			Price: 100.0 + float64(i%5),
			Qty:   10,
		})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Submit(Submission{Side: BUY, Price: 101.0, Qty: 10})
	}
}

func BenchmarkEngineRandomFlow(b *testing.B) {
	e := newTestEngine()
	rng := rand.New(rand.NewSource(1))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		side := BUY
		if rng.Intn(2) == 0 {
			side = SELL
		}
		e.Submit(Submission{
			Side:  side,
			Price: 100.0 + rng.Float64()*10,
			Qty:   int64(1 + rng.Intn(100)),
		})
	}
}
