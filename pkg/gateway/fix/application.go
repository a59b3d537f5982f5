package fixgateway

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/quickfixgo/fix44/newordersingle"
	"github.com/quickfixgo/quickfix"
	"github.com/quickfixgo/quickfix/log/file"
	"github.com/quickfixgo/tag"
	"go.uber.org/zap"
)

const queueSize = 1_000_000

// Application implements the quickfix.Application interface. Inbound
// application messages are funneled through one dispatcher goroutine, which
// is also what serializes order entry ahead of the engine lock.
type Application struct {
	*quickfix.MessageRouter

	dispatcher chan *inboundMsg
	quit       chan bool

	gateway *FixGateway
}

type inboundMsg struct {
	msg       *quickfix.Message
	sessionID quickfix.SessionID
}

func newApplication(gateway *FixGateway) *Application {
	app := &Application{
		MessageRouter: quickfix.NewMessageRouter(),
		dispatcher:    make(chan *inboundMsg, queueSize),
		quit:          make(chan bool, 1),
		gateway:       gateway,
	}

	app.AddRoute(newordersingle.Route(app.onNewOrderSingle))
	go app.runDispatcher()

	return app
}

func startApp(configFilepath string, gateway *FixGateway) (*Application, error) {
	cfg, err := os.Open(configFilepath)
	if err != nil {
		return nil, fmt.Errorf("error opening %v, %v", configFilepath, err)
	}
	defer cfg.Close() // nolint

	stringData, readErr := io.ReadAll(cfg)
	if readErr != nil {
		return nil, fmt.Errorf("error reading cfg: %s,", readErr)
	}

	appSettings, err := quickfix.ParseSettings(bytes.NewReader(stringData))
	if err != nil {
		return nil, fmt.Errorf("error reading cfg: %s,", err)
	}

	app := newApplication(gateway)

	logFactory, _ := file.NewLogFactory(appSettings)
	acceptor, err := quickfix.NewAcceptor(app, quickfix.NewMemoryStoreFactory(), appSettings, logFactory)
	if err != nil {
		return nil, fmt.Errorf("unable to create acceptor: %s", err)
	}

	if err = acceptor.Start(); err != nil {
		return nil, fmt.Errorf("unable to start FIX acceptor: %s", err)
	}

	go func() {
		<-app.quit
		acceptor.Stop()
		close(app.dispatcher)
	}()

	return app, nil
}

func stopApp(a *Application) {
	select {
	case a.quit <- true:
	default:
	}
}

// OnCreate implemented as part of Application interface
func (a *Application) OnCreate(sessionID quickfix.SessionID) {}

// OnLogon implemented as part of Application interface
func (a *Application) OnLogon(sessionID quickfix.SessionID) {
	zap.S().Infow("fix logon", "session", sessionID.String())
}

// OnLogout implemented as part of Application interface
func (a *Application) OnLogout(sessionID quickfix.SessionID) {
	zap.S().Infow("fix logout", "session", sessionID.String())
}

// ToAdmin implemented as part of Application interface
func (a *Application) ToAdmin(msg *quickfix.Message, sessionID quickfix.SessionID) {}

// ToApp implemented as part of Application interface
func (a *Application) ToApp(msg *quickfix.Message, sessionID quickfix.SessionID) error {
	return nil
}

// FromAdmin implemented as part of Application interface
func (a *Application) FromAdmin(msg *quickfix.Message, sessionID quickfix.SessionID) quickfix.MessageRejectError {
	return nil
}

// FromApp implemented as part of Application interface; hands the message to
// the dispatcher queue.
func (a *Application) FromApp(msg *quickfix.Message, sessionID quickfix.SessionID) quickfix.MessageRejectError {
	a.dispatcher <- &inboundMsg{msg, sessionID}
	return nil
}

func (a *Application) runDispatcher() {
	for m := range a.dispatcher {
		if err := a.Route(m.msg, m.sessionID); err != nil {
			zap.S().Warnw("route message", "cl_ord_id", clOrdID(m.msg), "err", err)
		}
	}
}

func clOrdID(msg *quickfix.Message) string {
	id, err := msg.Body.GetString(tag.ClOrdID)
	if err != nil {
		return ""
	}
	return id
}

func (a *Application) onNewOrderSingle(msg newordersingle.NewOrderSingle, sessionID quickfix.SessionID) quickfix.MessageRejectError {
	clOrdID, _ := msg.GetClOrdID()
	account, _ := msg.GetAccount()
	symbol, _ := msg.GetSymbol()
	side, _ := msg.GetSide()
	ordType, _ := msg.GetOrdType()
	timeInForce, _ := msg.GetTimeInForce()
	price, _ := msg.GetPrice()
	orderQty, _ := msg.GetOrderQty()
	transactTime, _ := msg.GetTransactTime()

	a.gateway.handleNewOrder(&NewOrderSingle{
		SessionID:    sessionID,
		ClOrdID:      clOrdID,
		Account:      account,
		Symbol:       symbol,
		Side:         side,
		OrdType:      ordType,
		TimeInForce:  timeInForce,
		Price:        price,
		OrderQty:     orderQty,
		TransactTime: transactTime,
	})
	return nil
}
