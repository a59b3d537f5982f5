package matching

import "sync"

// Trade is one match between an aggressing and a resting order. Price is
// always the resting order's quoted price.
type Trade struct {
	Symbol      string  `json:"symbol"`
	BuyOrderID  int64   `json:"buy_order_id"`
	SellOrderID int64   `json:"sell_order_id"`
	Qty         int64   `json:"qty"`
	Price       float64 `json:"price"`
}

// Result summarizes one Submit call. Trades are in the order they happened,
// best-priority resting order first.
type Result struct {
	OrderID   int64
	Filled    int64
	Remaining int64
	Trades    []Trade
}

// Engine matches orders for a single instrument under continuous price-time
// priority. Submit calls are serialized by the engine's own mutex: priority is
// a global property of each side, so no finer-grained locking is possible.
// Nothing in the engine blocks or performs I/O.
type Engine struct {
	symbol    string
	book      *OrderBook
	seq       Sequencer
	callbacks []func([]Trade)

	mu sync.Mutex
}

func NewEngine(symbol string, seq Sequencer) *Engine {
	return &Engine{
		symbol: symbol,
		book:   NewOrderBook(),
		seq:    seq,
	}
}

func (e *Engine) Symbol() string { return e.symbol }

// RegisterTradeCallback adds an observer invoked with each Submit call's
// trades, after the book mutation for that call has completed. Callbacks run
// under the engine lock, so they observe calls in submission order and must
// not re-enter the engine.
func (e *Engine) RegisterTradeCallback(fn func([]Trade)) {
	e.callbacks = append(e.callbacks, fn)
}

// Submit validates the submission, matches it against the opposite side until
// prices no longer cross, then rests any remainder. The call is the entire
// unit of work: a rejected submission touches neither book, and once
// validation passes the loop always runs to completion, leaving the book
// non-crossing.
func (e *Engine) Submit(sub Submission) (*Result, error) {
	if sub.Qty <= 0 {
		return nil, ErrInvalidQuantity
	}
	if sub.Type != MARKET && sub.Price <= 0 {
		return nil, ErrInvalidPrice
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	id, seq := e.seq.Next()
	order := &Order{
		ID:          id,
		Symbol:      e.symbol,
		Side:        sub.Side,
		Price:       sub.Price,
		Qty:         sub.Qty,
		Sequence:    seq,
		Type:        sub.Type,
		TimeInForce: sub.TimeInForce,
	}
	if order.Type == "" {
		order.Type = LIMIT
	}
	if order.TimeInForce == "" {
		order.TimeInForce = GTC
	}

	opposite := e.book.opposite(order.Side)

	if order.TimeInForce == FOK && e.fillable(order, opposite) < order.Qty {
		// all-or-nothing and not enough crossing quantity: no mutation at all
		return &Result{OrderID: order.ID, Remaining: order.Qty}, nil
	}

	trades := e.match(order, opposite)

	if order.Qty > 0 && order.Type == LIMIT && order.TimeInForce == GTC {
		e.book.own(order.Side).Insert(order)
	}

	if len(trades) > 0 {
		for _, cb := range e.callbacks {
			cb(trades)
		}
	}

	return &Result{
		OrderID:   order.ID,
		Filled:    sub.Qty - order.Qty,
		Remaining: order.Qty,
		Trades:    trades,
	}, nil
}

// Snapshot returns one side's resting orders in current priority order.
func (e *Engine) Snapshot(side Side) []BookEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.book.Snapshot(side)
}

// BestBid reports the highest resting bid, if any.
func (e *Engine) BestBid() (float64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.book.BestBid()
}

// BestAsk reports the lowest resting ask, if any.
func (e *Engine) BestAsk() (float64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.book.BestAsk()
}

func (e *Engine) match(order *Order, opposite *sideBook) []Trade {
	var trades []Trade

	for !opposite.Empty() && order.Qty > 0 {
		top := opposite.PeekBest()
		if !crosses(order, top.Price) {
			// top is the best opposing price; nothing behind it can cross
			break
		}

		matchQty := min(order.Qty, top.Qty)
		order.Qty -= matchQty
		top.Qty -= matchQty

		trade := Trade{
			Symbol: order.Symbol,
			Qty:    matchQty,
			Price:  top.Price, // the resting side keeps its quoted price
		}
		if order.Side == BUY {
			trade.BuyOrderID, trade.SellOrderID = order.ID, top.ID
		} else {
			trade.BuyOrderID, trade.SellOrderID = top.ID, order.ID
		}
		trades = append(trades, trade)

		if top.Qty == 0 {
			opposite.PopBest()
		}
	}

	return trades
}

// fillable sums the crossing quantity available to order, stopping early once
// the order could be fully filled. The FOK pre-pass uses it so a kill leaves
// the book untouched.
func (e *Engine) fillable(order *Order, opposite *sideBook) int64 {
	var total int64
	for _, price := range opposite.prices.prices {
		if !crosses(order, price) {
			continue
		}
		q := opposite.levels[price]
		for i := 0; i < q.Len(); i++ {
			total += q.At(i).Qty
			if total >= order.Qty {
				return total
			}
		}
	}
	return total
}

func crosses(order *Order, restingPrice float64) bool {
	if order.Type == MARKET {
		return true
	}
	if order.Side == BUY {
		return order.Price >= restingPrice
	}
	return order.Price <= restingPrice
}
