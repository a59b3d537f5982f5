package matching

// OrderBook pairs the bid and ask side books for a single instrument. It is
// pure storage plus the policy of which side is opposite; all matching lives
// in the engine.
type OrderBook struct {
	bids *sideBook
	asks *sideBook
}

func NewOrderBook() *OrderBook {
	return &OrderBook{
		bids: newSideBook(BUY),
		asks: newSideBook(SELL),
	}
}

func (ob *OrderBook) own(side Side) *sideBook {
	if side == BUY {
		return ob.bids
	}
	return ob.asks
}

func (ob *OrderBook) opposite(side Side) *sideBook {
	if side == BUY {
		return ob.asks
	}
	return ob.bids
}

// BestBid reports the highest resting bid price, if any.
func (ob *OrderBook) BestBid() (float64, bool) {
	return ob.bids.prices.Peek()
}

// BestAsk reports the lowest resting ask price, if any.
func (ob *OrderBook) BestAsk() (float64, bool) {
	return ob.asks.prices.Peek()
}

// Snapshot returns one side's resting orders in priority order.
func (ob *OrderBook) Snapshot(side Side) []BookEntry {
	return ob.own(side).Snapshot()
}
