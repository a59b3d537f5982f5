package report

import (
	"github.com/joripage/matchengine/pkg/matching"
	"go.uber.org/zap"
)

// TradeLogger logs every trade. Registered as an engine callback in both the
// service and the simulator.
type TradeLogger struct {
	log *zap.SugaredLogger
}

func NewTradeLogger(log *zap.Logger) *TradeLogger {
	return &TradeLogger{log: log.Sugar()}
}

func (l *TradeLogger) OnTrades(trades []matching.Trade) {
	for _, t := range trades {
		l.log.Infow("trade",
			"symbol", t.Symbol,
			"buy_order_id", t.BuyOrderID,
			"sell_order_id", t.SellOrderID,
			"qty", t.Qty,
			"price", t.Price,
		)
	}
}
