// Package report contains the downstream consumers of engine trades: a
// structured log sink, a NATS JetStream publisher feeding the journal worker,
// and a Redis depth cache for display tooling. Nothing here feeds back into
// the matching core.
package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/joripage/matchengine/pkg/matching"
)

// TradeEvent is the journal row for one match.
type TradeEvent struct {
	TradeID     string    `json:"trade_id" gorm:"primaryKey;column:trade_id"`
	Symbol      string    `json:"symbol" gorm:"column:symbol"`
	BuyOrderID  int64     `json:"buy_order_id" gorm:"column:buy_order_id"`
	SellOrderID int64     `json:"sell_order_id" gorm:"column:sell_order_id"`
	Qty         int64     `json:"qty" gorm:"column:qty"`
	Price       float64   `json:"price" gorm:"column:price"`
	ExecutedAt  time.Time `json:"executed_at" gorm:"column:executed_at"`
}

func (TradeEvent) TableName() string {
	return "trades"
}

func NewTradeEvent(t matching.Trade, ts time.Time) *TradeEvent {
	return &TradeEvent{
		TradeID:     uuid.New().String(),
		Symbol:      t.Symbol,
		BuyOrderID:  t.BuyOrderID,
		SellOrderID: t.SellOrderID,
		Qty:         t.Qty,
		Price:       t.Price,
		ExecutedAt:  ts,
	}
}
