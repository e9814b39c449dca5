package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"

	"github.com/pixil98/go-quest/internal/commands"
	"github.com/pixil98/go-quest/internal/game"
	"github.com/pixil98/go-quest/internal/messaging"
	"github.com/pixil98/go-quest/internal/storage"
)

// ErrPlayerExists is returned when a character already has an active session.
var ErrPlayerExists = errors.New("player already exists")

// Subscriber delivers messages published on a subject.
type Subscriber interface {
	Subscribe(subject string, handler func(data []byte)) (func(), error)
}

// Manager owns every connected player. A character can only be played by
// one session at a time.
type Manager struct {
	mu      sync.Mutex
	players map[string]*Player

	handler *commands.Handler
	chars   storage.Storer[*game.Character]
	subs    Subscriber

	login *loginFlow
}

func NewManager(handler *commands.Handler, chars storage.Storer[*game.Character], subs Subscriber) *Manager {
	return &Manager{
		players: map[string]*Player{},
		handler: handler,
		chars:   chars,
		subs:    subs,
		login:   newLoginFlow(chars),
	}
}

// Start blocks until ctx is canceled, then saves every connected player.
func (m *Manager) Start(ctx context.Context) error {
	<-ctx.Done()
	m.saveAll(context.WithoutCancel(ctx))
	return nil
}

// Tick autosaves every connected player.
func (m *Manager) Tick(ctx context.Context) error {
	m.saveAll(ctx)
	return nil
}

func (m *Manager) saveAll(ctx context.Context) {
	for _, p := range m.snapshot() {
		if err := m.save(p); err != nil {
			slog.WarnContext(ctx, "autosave failed", "charId", p.Id(), "error", err)
		}
	}
}

func (m *Manager) save(p *Player) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return m.chars.Save(p.Id(), p.state.Character)
}

// RunSession logs a connection in and plays until it ends. The character is
// saved when the session ends, however it ends.
func (m *Manager) RunSession(ctx context.Context, conn io.ReadWriter) error {
	term := NewTerminal(conn)

	char, err := m.login.Run(term)
	if err != nil {
		if isClosed(err) {
			return nil
		}
		return fmt.Errorf("logging in: %w", err)
	}

	p := newPlayer(term, char, m.handler)
	if err := m.register(p); err != nil {
		_ = term.WriteLine(fmt.Sprintf("%s is already playing.", char.Name))
		return err
	}
	defer m.unregister(p.Id())

	unsub, err := m.subs.Subscribe(messaging.PlayerSubject(p.Id()), p.deliver)
	if err != nil {
		return fmt.Errorf("subscribing player %s: %w", p.Id(), err)
	}
	defer unsub()

	slog.InfoContext(ctx, "player connected", "charId", p.Id())

	playErr := p.Play(ctx)

	if err := m.save(p); err != nil {
		slog.ErrorContext(ctx, "saving character at session end", "charId", p.Id(), "error", err)
	}

	slog.InfoContext(ctx, "player disconnected", "charId", p.Id())

	if errors.Is(playErr, context.Canceled) {
		return nil
	}
	return playErr
}

func (m *Manager) register(p *Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.players[p.Id()]; ok {
		return fmt.Errorf("%w: %s", ErrPlayerExists, p.Id())
	}
	m.players[p.Id()] = p
	return nil
}

func (m *Manager) unregister(charId string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.players, charId)
}

// Online reports whether charId has an active session.
func (m *Manager) Online(charId string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.players[charId]
	return ok
}

func (m *Manager) snapshot() []*Player {
	m.mu.Lock()
	defer m.mu.Unlock()

	players := make([]*Player, 0, len(m.players))
	for _, p := range m.players {
		players = append(players, p)
	}
	return players
}

// isClosed reports whether err just means the connection went away.
func isClosed(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) || errors.Is(err, io.ErrClosedPipe)
}
