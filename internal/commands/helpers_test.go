package commands

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/pixil98/go-quest/internal/combat"
	"github.com/pixil98/go-quest/internal/game"
	"github.com/pixil98/go-quest/internal/storage"
)

// mockStore implements storage.Storer[T] in memory for testing
type mockStore[T storage.ValidatingSpec] struct {
	records map[string]T
	saves   int
}

func newMockStore[T storage.ValidatingSpec](records map[string]T) *mockStore[T] {
	if records == nil {
		records = map[string]T{}
	}
	return &mockStore[T]{records: records}
}

func (m *mockStore[T]) Get(id string) T {
	return m.records[id]
}

func (m *mockStore[T]) GetAll() map[string]T {
	out := make(map[string]T, len(m.records))
	for k, v := range m.records {
		out[k] = v
	}
	return out
}

func (m *mockStore[T]) Save(id string, v T) error {
	m.records[id] = v
	m.saves++
	return nil
}

func (m *mockStore[T]) Delete(id string) error {
	delete(m.records, id)
	return nil
}

// recordingPublisher keeps everything sent to each player.
type recordingPublisher struct {
	mu       sync.Mutex
	messages map[string][]string
}

func (p *recordingPublisher) PublishToPlayer(charId string, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.messages == nil {
		p.messages = map[string][]string{}
	}
	p.messages[charId] = append(p.messages[charId], string(data))
	return nil
}

// last returns the most recent message sent to charId.
func (p *recordingPublisher) last(charId string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	msgs := p.messages[charId]
	if len(msgs) == 0 {
		return ""
	}
	return msgs[len(msgs)-1]
}

func testItems() map[string]*game.Item {
	return map[string]*game.Item{
		"iron-sword":    {Name: "Iron Sword", TypeStr: "weapon", EffectStr: "strength:5", Cost: 100},
		"steel-sword":   {Name: "Steel Sword", TypeStr: "weapon", EffectStr: "strength:8", Cost: 150},
		"leather-armor": {Name: "Leather Armor", TypeStr: "armor", EffectStr: "max_health:10", Cost: 60},
		"health-potion": {Name: "Health Potion", TypeStr: "consumable", EffectStr: "health:20", Cost: 25},
	}
}

func testQuests() map[string]*game.Quest {
	return map[string]*game.Quest{
		"rats":   {Title: "Cellar Rats", Description: "Clear the cellar.", RequiredLevel: 1, Prerequisite: "none", Reward: game.Reward{XP: 50, Gold: 20}},
		"wolves": {Title: "Wolf Pack", Description: "Thin the pack.", RequiredLevel: 1, Prerequisite: "rats", Reward: game.Reward{XP: 100, Gold: 40}},
		"crypt":  {Title: "The Crypt", Description: "Enter the crypt.", RequiredLevel: 3, Prerequisite: "wolves", Reward: game.Reward{XP: 300, Gold: 100}},
	}
}

func testEnemies() map[string]*game.EnemyTemplate {
	return map[string]*game.EnemyTemplate{
		"goblin": {Name: "goblin", Health: 50, Strength: 8, Magic: 2, MinLevel: 1, Reward: game.Reward{XP: 25, Gold: 10}},
		"orc":    {Name: "orc", Health: 90, Strength: 14, Magic: 0, MinLevel: 3, Reward: game.Reward{XP: 60, Gold: 30}},
	}
}

func testCommands() map[string]*Command {
	item := []InputSpec{{Name: "item", Type: InputTypeString, Required: true, Rest: true, Missing: "Which item?"}}
	quest := []InputSpec{{Name: "quest", Type: InputTypeString, Required: true, Rest: true, Missing: "Which quest?"}}

	return map[string]*Command{
		"score":     {Handler: "score", Category: "character", Description: "Show your character sheet.", Aliases: []string{"stats"}},
		"inventory": {Handler: "inventory", Category: "items", Description: "List what you carry.", Aliases: []string{"i"}},
		"use":       {Handler: "use", Category: "items", Inputs: item},
		"equip":     {Handler: "equip", Category: "items", Inputs: item},
		"unequip":   {Handler: "unequip", Category: "items", Inputs: []InputSpec{{Name: "slot", Type: InputTypeString, Required: true}}},
		"shop":      {Handler: "shop", Category: "shop"},
		"buy":       {Handler: "buy", Category: "shop", Inputs: item},
		"sell":      {Handler: "sell", Category: "shop", Inputs: item},
		"quests":    {Handler: "quests", Category: "quests"},
		"available": {Handler: "available", Category: "quests"},
		"accept":    {Handler: "accept", Category: "quests", Inputs: quest},
		"complete":  {Handler: "complete", Category: "quests", Inputs: quest},
		"abandon":   {Handler: "abandon", Category: "quests", Inputs: quest},
		"chain":     {Handler: "chain", Category: "quests", Inputs: quest},
		"explore":   {Handler: "explore", Category: "combat", Inputs: []InputSpec{{Name: "enemy", Type: InputTypeString}}},
		"attack":    {Handler: "attack", Category: "combat", Priority: 10},
		"ability":   {Handler: "ability", Category: "combat"},
		"flee":      {Handler: "flee", Category: "combat"},
		"fight":     {Handler: "fight", Category: "combat"},
		"revive":    {Handler: "revive", Category: "character"},
		"save":      {Handler: "save", Category: "system"},
		"quit":      {Handler: "quit", Category: "system"},
		"help":      {Handler: "help", Category: "system", Description: "List commands.", Inputs: []InputSpec{{Name: "command", Type: InputTypeString}}},
		"whoami": {Handler: "message", Category: "character", Config: map[string]any{
			"message": "{{ .Name }} the {{ .Class }} has {{ .Gold }} gold.",
		}},
	}
}

// fixedRand always returns the same value.
type fixedRand int

func (r fixedRand) IntN(int) int { return int(r) }

type testGame struct {
	handler *Handler
	pub     *recordingPublisher
	chars   *mockStore[*game.Character]
	state   *State
}

func newTestGame(t *testing.T, class game.Class) *testGame {
	t.Helper()
	return newTestGameWithCommands(t, class, testCommands())
}

func newTestGameWithCommands(t *testing.T, class game.Class, cmds map[string]*Command) *testGame {
	t.Helper()

	chars := newMockStore[*game.Character](nil)
	dict := &game.Dictionary{
		Characters: chars,
		Items:      newMockStore(testItems()),
		Quests:     newMockStore(testQuests()),
		Enemies:    newMockStore(testEnemies()),
	}
	pub := &recordingPublisher{}

	h := NewHandler(newMockStore(cmds))
	if err := h.RegisterBuiltins(dict, pub, combat.WithRand(fixedRand(1))); err != nil {
		t.Fatalf("RegisterBuiltins: %v", err)
	}
	if err := h.CompileAll(); err != nil {
		t.Fatalf("CompileAll: %v", err)
	}

	c, err := game.NewCharacter("Hero", class)
	if err != nil {
		t.Fatalf("NewCharacter: %v", err)
	}

	return &testGame{
		handler: h,
		pub:     pub,
		chars:   chars,
		state:   &State{CharId: c.Id(), Character: c},
	}
}

// exec runs a command line and returns the error plus the last output.
func (g *testGame) exec(line string) (string, error) {
	fields := strings.Fields(line)
	err := g.handler.Exec(context.Background(), g.state, fields[0], fields[1:]...)
	return g.pub.last(g.state.CharId), err
}

// mustExec runs a command line that is expected to succeed.
func (g *testGame) mustExec(t *testing.T, line string) string {
	t.Helper()
	out, err := g.exec(line)
	if err != nil {
		t.Fatalf("%s: %v", line, err)
	}
	return out
}
