package listener

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"syscall"

	"github.com/iammegalith/telnet"
	"github.com/sirupsen/logrus"
)

type TelnetListener struct {
	host   string
	port   uint16
	cm     *ConnectionManager
	logger logrus.FieldLogger
}

func NewTelnetListener(host string, port uint16, cm *ConnectionManager, logger logrus.FieldLogger) *TelnetListener {
	return &TelnetListener{
		host:   host,
		port:   port,
		cm:     cm,
		logger: logger.WithField("listener", "telnet"),
	}
}

func (l *TelnetListener) addr() string {
	return fmt.Sprintf("%s:%d", l.host, l.port)
}

func (l *TelnetListener) Start(ctx context.Context) error {
	// Connections get their own context so shutdown can cancel them
	// after the server stops accepting.
	connCtx, cancelConns := context.WithCancel(context.WithoutCancel(ctx))

	handler := &telnetHandler{
		cFunc:       l.cm.AcceptConnection,
		logger:      l.logger,
		connCtx:     connCtx,
		cancelConns: cancelConns,
	}

	svr := telnet.NewServer(l.addr(), handler)

	// done signals that Start is returning (either success or failure)
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			svr.Stop()
			handler.Stop()
		case <-done:
		}
	}()

	l.logger.WithField("addr", l.addr()).Info("listening for telnet")

	err := svr.ListenAndServe()
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return fmt.Errorf("port %d is already in use (another server running?)", l.port)
		}
		return fmt.Errorf("serving telnet on port %d: %w", l.port, err)
	}

	return nil
}

type telnetHandler struct {
	wg          sync.WaitGroup
	cFunc       func(context.Context, io.ReadWriter)
	logger      logrus.FieldLogger
	connCtx     context.Context
	cancelConns context.CancelFunc
}

func (h *telnetHandler) HandleTelnet(conn *telnet.Connection) {
	h.wg.Add(1)
	defer h.wg.Done()
	defer func() {
		if err := conn.Close(); err != nil {
			h.logger.WithError(err).Error("closing telnet connection")
		}
	}()

	h.cFunc(h.connCtx, conn)
}

func (h *telnetHandler) Stop() {
	h.cancelConns()
	h.wg.Wait()
}
