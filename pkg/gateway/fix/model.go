package fixgateway

import (
	"time"

	"github.com/quickfixgo/enum"
	"github.com/quickfixgo/quickfix"
	"github.com/shopspring/decimal"
)

// NewOrderSingle is the decoded inbound order request, detached from the
// quickfix message so the dispatcher can hold it after the message is gone.
type NewOrderSingle struct {
	SessionID quickfix.SessionID

	ClOrdID      string
	Account      string
	Symbol       string
	Side         enum.Side
	OrdType      enum.OrdType
	TimeInForce  enum.TimeInForce
	Price        decimal.Decimal
	OrderQty     decimal.Decimal
	TransactTime time.Time
}

// fixOrder tracks a live order owned by a FIX session so fills against it can
// be reported back, including fills that happen long after it rested.
type fixOrder struct {
	sessionID quickfix.SessionID

	orderID  int64
	clOrdID  string
	account  string
	symbol   string
	side     enum.Side
	ordType  enum.OrdType
	tif      enum.TimeInForce
	price    decimal.Decimal
	orderQty int64

	cumQty   int64
	notional float64 // for AvgPx
}

func (o *fixOrder) leavesQty() int64 {
	return o.orderQty - o.cumQty
}

func (o *fixOrder) avgPx() float64 {
	if o.cumQty == 0 {
		return 0
	}
	return o.notional / float64(o.cumQty)
}
