package command

import (
	"context"
	"fmt"

	"github.com/pixil98/go-quest/internal/commands"
	"github.com/pixil98/go-quest/internal/driver"
	"github.com/pixil98/go-quest/internal/listener"
	"github.com/pixil98/go-quest/internal/messaging"
	"github.com/pixil98/go-quest/internal/session"
	"github.com/pixil98/go-service"
)

func BuildWorkers(config any) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	logger, err := cfg.buildLogger()
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	dict, err := cfg.Storage.BuildDictionary()
	if err != nil {
		return nil, fmt.Errorf("building dictionary: %w", err)
	}

	cmdStore, err := cfg.Storage.Commands.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating command store: %w", err)
	}

	natsServer, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}

	cmdHandler := commands.NewHandler(cmdStore)
	if err := cmdHandler.RegisterBuiltins(dict, messaging.NewNatsPublisher(natsServer)); err != nil {
		return nil, fmt.Errorf("registering command handlers: %w", err)
	}
	if err := cmdHandler.CompileAll(); err != nil {
		return nil, fmt.Errorf("compiling commands: %w", err)
	}

	sessions := session.NewManager(cmdHandler, dict.Characters, natsServer)
	cm := listener.NewConnectionManager(sessions, logger, cfg.MaxConnections)

	// Listeners wait for the bus so every session can subscribe.
	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		w, err := l.BuildListener(cm, logger)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[l.name()] = &afterReady{ready: natsServer.Ready(), worker: w}
	}

	var opts []driver.DriverOpt
	tick, err := cfg.tickInterval()
	if err != nil {
		return nil, err
	}
	if tick > 0 {
		opts = append(opts, driver.WithTickLength(tick))
	}

	return service.WorkerList{
		"nats":      natsServer,
		"sessions":  sessions,
		"driver":    driver.NewDriver([]driver.Manager{sessions}, opts...),
		"listeners": &listeners,
	}, nil
}

// afterReady holds a worker back until ready is closed.
type afterReady struct {
	ready  <-chan struct{}
	worker service.Worker
}

func (a *afterReady) Start(ctx context.Context) error {
	select {
	case <-a.ready:
	case <-ctx.Done():
		return nil
	}
	return a.worker.Start(ctx)
}
