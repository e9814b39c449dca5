package listener

import (
	"context"
	"errors"
	"io"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// SessionRunner plays one connection until it ends.
type SessionRunner interface {
	RunSession(ctx context.Context, conn io.ReadWriter) error
}

// ConnectionManager hands accepted connections from every listener to the
// session runner, turning connections away once maxConns are open.
type ConnectionManager struct {
	sessions SessionRunner
	logger   logrus.FieldLogger
	maxConns int
	active   atomic.Int64
}

func NewConnectionManager(sessions SessionRunner, logger logrus.FieldLogger, maxConns int) *ConnectionManager {
	return &ConnectionManager{
		sessions: sessions,
		logger:   logger,
		maxConns: maxConns,
	}
}

func (m *ConnectionManager) AcceptConnection(ctx context.Context, conn io.ReadWriter) {
	logger := m.logger.WithField("session", uuid.New().String())

	n := m.active.Add(1)
	defer m.active.Add(-1)

	if m.maxConns > 0 && n > int64(m.maxConns) {
		logger.WithField("active", n-1).Warn("rejecting connection, server full")
		if _, err := io.WriteString(conn, "Too many adventurers are connected. Try again later.\n"); err != nil {
			logger.WithError(err).Debug("writing rejection")
		}
		return
	}

	logger.Info("connection opened")
	err := m.sessions.RunSession(ctx, conn)
	switch {
	case err == nil:
		logger.Info("connection closed")
	case errors.Is(err, context.Canceled):
		logger.Info("connection closed by shutdown")
	default:
		logger.WithError(err).Warn("session ended with error")
	}
}

// Active returns the number of open connections.
func (m *ConnectionManager) Active() int {
	return int(m.active.Load())
}
