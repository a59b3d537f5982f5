// Package fixgateway is the FIX 4.4 order entry surface of the matching
// engine. It accepts NewOrderSingle, feeds the engine through a serialized
// dispatcher, and answers with ExecutionReports for acks, fills, and rejects.
package fixgateway

import (
	"context"
	"errors"
	"sync"

	"github.com/joripage/matchengine/pkg/matching"
	"github.com/quickfixgo/enum"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Config struct {
	ConfigFilepath string `yaml:"config_filepath"`
}

var (
	sideMapping = map[enum.Side]matching.Side{
		enum.Side_BUY:  matching.BUY,
		enum.Side_SELL: matching.SELL,
	}

	ordTypeMapping = map[enum.OrdType]matching.OrderType{
		enum.OrdType_LIMIT:  matching.LIMIT,
		enum.OrdType_MARKET: matching.MARKET,
	}

	tifMapping = map[enum.TimeInForce]matching.TimeInForce{
		enum.TimeInForce_GOOD_TILL_CANCEL:    matching.GTC,
		enum.TimeInForce_DAY:                 matching.GTC,
		enum.TimeInForce_IMMEDIATE_OR_CANCEL: matching.IOC,
		enum.TimeInForce_FILL_OR_KILL:        matching.FOK,
	}
)

// FixGateway bridges FIX sessions and one engine. Orders that rest are
// tracked by engine order ID so fills against them, whenever they happen, are
// reported to the owning session.
type FixGateway struct {
	cfg    *Config
	engine *matching.Engine
	app    *Application

	owners sync.Map // orderID int64 -> *fixOrder
}

func NewFixGateway(cfg *Config, engine *matching.Engine) *FixGateway {
	gw := &FixGateway{
		cfg:    cfg,
		engine: engine,
	}
	engine.RegisterTradeCallback(gw.onTrades)
	return gw
}

func (g *FixGateway) Start(ctx context.Context) error {
	app, err := startApp(g.cfg.ConfigFilepath, g)
	if err != nil {
		zap.S().Errorw("start fix acceptor", "err", err)
		return err
	}
	g.app = app
	return nil
}

func (g *FixGateway) Stop() {
	if g.app != nil {
		stopApp(g.app)
	}
}

func (g *FixGateway) handleNewOrder(nos *NewOrderSingle) {
	if nos.Symbol != g.engine.Symbol() {
		g.reject(nos, "unknown symbol "+nos.Symbol)
		return
	}

	side, ok := sideMapping[nos.Side]
	if !ok {
		g.reject(nos, "unsupported side")
		return
	}
	ordType, ok := ordTypeMapping[nos.OrdType]
	if !ok {
		g.reject(nos, "unsupported order type")
		return
	}
	tif := tifMapping[nos.TimeInForce]

	res, err := g.engine.Submit(matching.Submission{
		Side:        side,
		Type:        ordType,
		TimeInForce: tif,
		Price:       nos.Price.InexactFloat64(),
		Qty:         nos.OrderQty.IntPart(),
	})
	if err != nil {
		if !errors.Is(err, matching.ErrInvalidPrice) && !errors.Is(err, matching.ErrInvalidQuantity) {
			zap.S().Errorw("submit order", "cl_ord_id", nos.ClOrdID, "err", err)
		}
		g.reject(nos, err.Error())
		return
	}

	order := &fixOrder{
		sessionID: nos.SessionID,
		orderID:   res.OrderID,
		clOrdID:   nos.ClOrdID,
		account:   nos.Account,
		symbol:    nos.Symbol,
		side:      nos.Side,
		ordType:   nos.OrdType,
		tif:       nos.TimeInForce,
		price:     nos.Price,
		orderQty:  nos.OrderQty.IntPart(),
	}

	// ack first, then the fills from this submit, in match order
	sendExecReport(order, enum.ExecType_NEW, enum.OrdStatus_NEW, 0, decimal.Zero)
	for _, trade := range res.Trades {
		g.applyFill(order, trade)
	}

	// only a resting remainder can be hit later
	if res.Remaining > 0 && order.tifRests() {
		g.owners.Store(order.orderID, order)
	}
}

func (o *fixOrder) tifRests() bool {
	if o.ordType == enum.OrdType_MARKET {
		return false
	}
	switch o.tif {
	case enum.TimeInForce_IMMEDIATE_OR_CANCEL, enum.TimeInForce_FILL_OR_KILL:
		return false
	}
	return true
}

// onTrades reports fills on resting orders owned by FIX sessions. The
// aggressing order of the current submit is not yet in owners, so its fills
// are reported by handleNewOrder alone and never doubled.
func (g *FixGateway) onTrades(trades []matching.Trade) {
	for _, trade := range trades {
		for _, id := range []int64{trade.BuyOrderID, trade.SellOrderID} {
			if v, ok := g.owners.Load(id); ok {
				g.applyFill(v.(*fixOrder), trade)
			}
		}
	}
}

func (g *FixGateway) applyFill(order *fixOrder, trade matching.Trade) {
	order.cumQty += trade.Qty
	order.notional += float64(trade.Qty) * trade.Price

	status := enum.OrdStatus_PARTIALLY_FILLED
	if order.leavesQty() == 0 {
		status = enum.OrdStatus_FILLED
		g.owners.Delete(order.orderID)
	}

	sendExecReport(order, enum.ExecType_TRADE, status, trade.Qty, decimal.NewFromFloat(trade.Price))
}

func (g *FixGateway) reject(nos *NewOrderSingle, reason string) {
	zap.S().Infow("order rejected", "cl_ord_id", nos.ClOrdID, "reason", reason)
	sendReject(nos, reason)
}
