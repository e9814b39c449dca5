package game

import (
	"fmt"

	"github.com/pixil98/go-quest/internal/storage"
)

// Dictionary holds all game definition stores plus the character saves.
// Item, quest and enemy stores are read-only once resolved and can be
// shared by any number of sessions.
type Dictionary struct {
	Characters storage.Storer[*Character]
	Items      storage.Storer[*Item]
	Quests     storage.Storer[*Quest]
	Enemies    storage.Storer[*EnemyTemplate]
}

// Resolve checks cross references between catalogs. A quest graph with a
// dangling prerequisite or a cycle is a configuration error.
func (d *Dictionary) Resolve() error {
	if err := ValidateQuestCatalog(d.Quests); err != nil {
		return fmt.Errorf("quests: %w", err)
	}

	if len(d.Enemies.GetAll()) == 0 {
		return fmt.Errorf("enemies: at least one enemy is required")
	}
	if _, err := EnemyForLevel(1, d.Enemies); err != nil {
		return fmt.Errorf("enemies: %w", err)
	}

	return nil
}
