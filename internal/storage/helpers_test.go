package storage_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pixil98/go-quest/internal/game"
	"github.com/pixil98/go-quest/internal/storage"
)

func newHero(t *testing.T, name string) *game.Character {
	t.Helper()
	c, err := game.NewCharacter(name, game.ClassWarrior)
	if err != nil {
		t.Fatalf("NewCharacter: %v", err)
	}
	return c
}

func ironSword() *game.Item {
	return &game.Item{Name: "Iron Sword", TypeStr: "weapon", EffectStr: "strength:5", Cost: 100}
}

// writeItem drops an item asset into dir the way the shipped assets are laid out.
func writeItem(t *testing.T, dir, file string, asset storage.Asset[*game.Item]) {
	t.Helper()
	data, err := json.Marshal(asset)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, file), data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}
