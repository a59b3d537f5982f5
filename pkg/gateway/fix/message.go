package fixgateway

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/quickfixgo/enum"
	"github.com/quickfixgo/field"
	"github.com/quickfixgo/fix44/executionreport"
	"github.com/quickfixgo/quickfix"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func sendExecReport(order *fixOrder, execType enum.ExecType, status enum.OrdStatus, lastQty int64, lastPx decimal.Decimal) {
	msg := executionreport.New(
		field.NewOrderID(strconv.FormatInt(order.orderID, 10)),
		field.NewExecID(uuid.New().String()),
		field.NewExecType(execType),
		field.NewOrdStatus(status),
		field.NewSide(order.side),
		field.NewLeavesQty(decimal.NewFromInt(order.leavesQty()), 0),
		field.NewCumQty(decimal.NewFromInt(order.cumQty), 0),
		field.NewAvgPx(decimal.NewFromFloat(order.avgPx()), 2),
	)

	msg.SetClOrdID(order.clOrdID)
	msg.SetAccount(order.account)
	msg.SetSymbol(order.symbol)
	msg.SetOrdType(order.ordType)
	msg.SetOrderQty(decimal.NewFromInt(order.orderQty), 0)
	msg.SetPrice(order.price, 2)
	if order.tif != "" {
		msg.SetTimeInForce(order.tif)
	}
	if lastQty > 0 {
		msg.SetLastQty(decimal.NewFromInt(lastQty), 0)
		msg.SetLastPx(lastPx, 2)
	}

	if err := quickfix.SendToTarget(msg, order.sessionID); err != nil {
		zap.S().Warnw("send execution report", "cl_ord_id", order.clOrdID, "err", err)
	}
}

func sendReject(nos *NewOrderSingle, reason string) {
	msg := executionreport.New(
		field.NewOrderID("NONE"),
		field.NewExecID(uuid.New().String()),
		field.NewExecType(enum.ExecType_REJECTED),
		field.NewOrdStatus(enum.OrdStatus_REJECTED),
		field.NewSide(nos.Side),
		field.NewLeavesQty(decimal.Zero, 0),
		field.NewCumQty(decimal.Zero, 0),
		field.NewAvgPx(decimal.Zero, 2),
	)

	msg.SetClOrdID(nos.ClOrdID)
	msg.SetAccount(nos.Account)
	msg.SetSymbol(nos.Symbol)
	msg.SetOrderQty(nos.OrderQty, 0)
	msg.SetPrice(nos.Price, 2)
	msg.SetText(reason)

	if err := quickfix.SendToTarget(msg, nos.SessionID); err != nil {
		zap.S().Warnw("send reject", "cl_ord_id", nos.ClOrdID, "err", err)
	}
}
