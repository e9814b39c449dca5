package session

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/pixil98/go-quest/internal/commands"
	"github.com/pixil98/go-quest/internal/game"
	"github.com/pixil98/go-quest/internal/messaging"
	"github.com/pixil98/go-quest/internal/storage"
)

// memStore implements storage.Storer[T] in memory for testing
type memStore[T storage.ValidatingSpec] struct {
	mu      sync.Mutex
	records map[string]T
	saves   int
}

func newMemStore[T storage.ValidatingSpec](records map[string]T) *memStore[T] {
	if records == nil {
		records = map[string]T{}
	}
	return &memStore[T]{records: records}
}

func (m *memStore[T]) Get(id string) T {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records[id]
}

func (m *memStore[T]) GetAll() map[string]T {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]T, len(m.records))
	for k, v := range m.records {
		out[k] = v
	}
	return out
}

func (m *memStore[T]) Save(id string, v T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := v.Validate(); err != nil {
		return err
	}
	m.records[id] = v
	m.saves++
	return nil
}

func (m *memStore[T]) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, id)
	return nil
}

func (m *memStore[T]) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// localBus delivers published messages synchronously to subscribers.
type localBus struct {
	mu   sync.Mutex
	subs map[string]func([]byte)
}

func (b *localBus) Subscribe(subject string, handler func([]byte)) (func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs == nil {
		b.subs = map[string]func([]byte){}
	}
	b.subs[subject] = handler
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, subject)
	}, nil
}

func (b *localBus) PublishToPlayer(charId string, data []byte) error {
	b.mu.Lock()
	handler := b.subs[messaging.PlayerSubject(charId)]
	b.mu.Unlock()
	if handler != nil {
		handler(data)
	}
	return nil
}

// fakeConn reads scripted input and records everything written.
type fakeConn struct {
	in  io.Reader
	out bytes.Buffer
}

func newFakeConn(lines ...string) *fakeConn {
	return &fakeConn{in: strings.NewReader(strings.Join(lines, "\n") + "\n")}
}

func (c *fakeConn) Read(p []byte) (int, error)  { return c.in.Read(p) }
func (c *fakeConn) Write(p []byte) (int, error) { return c.out.Write(p) }

func testCommands() map[string]*commands.Command {
	return map[string]*commands.Command{
		"score": {Handler: "score", Category: "character", Aliases: []string{"stats"}},
		"flee":  {Handler: "flee", Category: "combat"},
		"save":  {Handler: "save", Category: "system"},
		"quit":  {Handler: "quit", Category: "system"},
	}
}

type testServer struct {
	manager *Manager
	chars   *memStore[*game.Character]
	bus     *localBus
}

func newTestServer(t *testing.T, chars map[string]*game.Character) *testServer {
	t.Helper()

	store := newMemStore(chars)
	dict := &game.Dictionary{
		Characters: store,
		Items:      newMemStore[*game.Item](nil),
		Quests:     newMemStore[*game.Quest](nil),
		Enemies: newMemStore(map[string]*game.EnemyTemplate{
			"goblin": {Name: "goblin", Health: 50, Strength: 8, Magic: 2, MinLevel: 1, Reward: game.Reward{XP: 25, Gold: 10}},
		}),
	}
	bus := &localBus{}

	h := commands.NewHandler(newMemStore(testCommands()))
	if err := h.RegisterBuiltins(dict, bus); err != nil {
		t.Fatalf("RegisterBuiltins: %v", err)
	}
	if err := h.CompileAll(); err != nil {
		t.Fatalf("CompileAll: %v", err)
	}

	return &testServer{
		manager: NewManager(h, store, bus),
		chars:   store,
		bus:     bus,
	}
}

func mustCharacter(t *testing.T, name string, class game.Class) *game.Character {
	t.Helper()
	c, err := game.NewCharacter(name, class)
	if err != nil {
		t.Fatalf("NewCharacter: %v", err)
	}
	return c
}

func assertContains(t *testing.T, out string, pieces ...string) {
	t.Helper()
	for _, p := range pieces {
		if !strings.Contains(out, p) {
			t.Errorf("output missing %q:\n%s", p, out)
		}
	}
}
