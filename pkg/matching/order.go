package matching

type Side string

const (
	BUY  Side = "BUY"
	SELL Side = "SELL"
)

type OrderType string

const (
	LIMIT  OrderType = "LIMIT"
	MARKET OrderType = "MARKET"
)

type TimeInForce string

const (
	GTC TimeInForce = "GTC"
	IOC TimeInForce = "IOC"
	FOK TimeInForce = "FOK"
)

// Order is a resting or in-flight order. ID and Sequence are assigned by the
// engine's Sequencer at submission and never change; Price is immutable after
// creation. Only the engine decrements Qty, and an order whose Qty reaches
// zero is discarded, never re-inserted.
type Order struct {
	ID          int64
	Symbol      string
	Side        Side
	Price       float64
	Qty         int64
	Sequence    uint64
	Type        OrderType
	TimeInForce TimeInForce
}

// Submission is what callers hand to Engine.Submit; the engine turns it into
// an Order after validation.
type Submission struct {
	Side        Side
	Type        OrderType
	TimeInForce TimeInForce // empty means GTC
	Price       float64
	Qty         int64
}

// BookEntry is one resting order as seen in a snapshot.
type BookEntry struct {
	OrderID  int64   `json:"order_id"`
	Price    float64 `json:"price"`
	Qty      int64   `json:"qty"`
	Sequence uint64  `json:"sequence"`
}
