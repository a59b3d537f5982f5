package fixgateway

import (
	"testing"

	"github.com/joripage/matchengine/pkg/matching"
	"github.com/quickfixgo/enum"
	"github.com/shopspring/decimal"
)

func newTestGateway() (*FixGateway, *matching.Engine) {
	engine := matching.NewEngine("ABC", matching.NewSequencer())
	gw := NewFixGateway(&Config{}, engine)
	return gw, engine
}

func nosFor(clOrdID string, side enum.Side, price float64, qty int64) *NewOrderSingle {
	return &NewOrderSingle{
		ClOrdID:     clOrdID,
		Account:     "ACC1",
		Symbol:      "ABC",
		Side:        side,
		OrdType:     enum.OrdType_LIMIT,
		TimeInForce: enum.TimeInForce_GOOD_TILL_CANCEL,
		Price:       decimal.NewFromFloat(price),
		OrderQty:    decimal.NewFromInt(qty),
	}
}

func TestUnknownSymbolDoesNotTouchEngine(t *testing.T) {
	gw, engine := newTestGateway()

	nos := nosFor("C1", enum.Side_BUY, 100.0, 10)
	nos.Symbol = "XYZ"
	gw.handleNewOrder(nos)

	if len(engine.Snapshot(matching.BUY)) != 0 {
		t.Errorf("rejected symbol must not reach the book")
	}
}

func TestRestingOrderIsTracked(t *testing.T) {
	gw, engine := newTestGateway()

	gw.handleNewOrder(nosFor("C1", enum.Side_BUY, 100.0, 10))

	bids := engine.Snapshot(matching.BUY)
	if len(bids) != 1 || bids[0].Qty != 10 {
		t.Fatalf("expected resting bid, got %+v", bids)
	}
	if _, ok := gw.owners.Load(bids[0].OrderID); !ok {
		t.Errorf("resting order must be tracked for later fills")
	}
}

func TestFilledAggressorIsNotTracked(t *testing.T) {
	gw, engine := newTestGateway()

	gw.handleNewOrder(nosFor("C1", enum.Side_SELL, 100.0, 10))
	gw.handleNewOrder(nosFor("C2", enum.Side_BUY, 100.0, 10))

	if len(engine.Snapshot(matching.BUY)) != 0 || len(engine.Snapshot(matching.SELL)) != 0 {
		t.Fatalf("orders should have fully crossed")
	}
	count := 0
	gw.owners.Range(func(_, _ any) bool { count++; return true })
	if count != 0 {
		t.Errorf("fully filled orders must not remain tracked, got %d", count)
	}
}

func TestRestingOrderFillUpdatesState(t *testing.T) {
	gw, engine := newTestGateway()

	gw.handleNewOrder(nosFor("C1", enum.Side_SELL, 100.0, 10))
	asks := engine.Snapshot(matching.SELL)
	if len(asks) != 1 {
		t.Fatalf("expected resting ask")
	}
	restingID := asks[0].OrderID

	gw.handleNewOrder(nosFor("C2", enum.Side_BUY, 101.0, 4))

	v, ok := gw.owners.Load(restingID)
	if !ok {
		t.Fatalf("partially filled resting order must stay tracked")
	}
	order := v.(*fixOrder)
	if order.cumQty != 4 || order.leavesQty() != 6 {
		t.Errorf("expected cum 4 leaves 6, got cum %d leaves %d", order.cumQty, order.leavesQty())
	}
	if order.avgPx() != 100.0 {
		t.Errorf("fill at resting price: expected avg 100.0, got %f", order.avgPx())
	}
}

func TestIOCNotTracked(t *testing.T) {
	gw, _ := newTestGateway()

	nos := nosFor("C1", enum.Side_BUY, 100.0, 10)
	nos.TimeInForce = enum.TimeInForce_IMMEDIATE_OR_CANCEL
	gw.handleNewOrder(nos)

	count := 0
	gw.owners.Range(func(_, _ any) bool { count++; return true })
	if count != 0 {
		t.Errorf("IOC remainder never rests, must not be tracked")
	}
}

func TestEnumMappings(t *testing.T) {
	if sideMapping[enum.Side_BUY] != matching.BUY || sideMapping[enum.Side_SELL] != matching.SELL {
		t.Errorf("side mapping broken")
	}
	if ordTypeMapping[enum.OrdType_LIMIT] != matching.LIMIT || ordTypeMapping[enum.OrdType_MARKET] != matching.MARKET {
		t.Errorf("ord type mapping broken")
	}
	if tifMapping[enum.TimeInForce_FILL_OR_KILL] != matching.FOK {
		t.Errorf("tif mapping broken")
	}
	if tifMapping[enum.TimeInForce_DAY] != matching.GTC {
		t.Errorf("DAY maps to GTC in this engine")
	}
}
