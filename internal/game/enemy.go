package game

import (
	"fmt"
	"sort"

	"github.com/pixil98/go-errors"
)

// EnemyTemplate defines a kind of enemy loaded from asset files.
// Enemy IDs are the enemy type (e.g., "goblin").
type EnemyTemplate struct {
	// Name is used in battle messages (e.g., "the goblin")
	Name string `json:"name"`

	Health   int `json:"health"`
	Strength int `json:"strength"`
	Magic    int `json:"magic"`

	// MinLevel is the lowest character level this enemy is picked for
	MinLevel int `json:"min_level"`

	Reward Reward `json:"reward"`
}

// Validate satisfies storage.ValidatingSpec
func (t *EnemyTemplate) Validate() error {
	el := errors.NewErrorList()
	if t.Name == "" {
		el.Add(fmt.Errorf("enemy name is required"))
	}
	if t.Health < 1 {
		el.Add(fmt.Errorf("enemy health must be positive"))
	}
	if t.Strength < 0 || t.Magic < 0 {
		el.Add(fmt.Errorf("enemy stats must not be negative"))
	}
	if t.Reward.XP < 0 || t.Reward.Gold < 0 {
		el.Add(fmt.Errorf("enemy reward must not be negative"))
	}
	return el.Err()
}

// EnemyCatalog looks up enemy templates by type.
type EnemyCatalog interface {
	Get(id string) *EnemyTemplate
	GetAll() map[string]*EnemyTemplate
}

// EnemyMap is an in-memory EnemyCatalog.
type EnemyMap map[string]*EnemyTemplate

func (m EnemyMap) Get(id string) *EnemyTemplate {
	return m[id]
}

func (m EnemyMap) GetAll() map[string]*EnemyTemplate {
	return m
}

// Enemy is a single spawned opponent. It lives only as long as one
// encounter and is never saved.
type Enemy struct {
	Type   string
	Name   string
	Stats  Stats
	Reward Reward
}

// NewEnemy spawns a fresh, full health enemy from a template.
func NewEnemy(enemyType string, t *EnemyTemplate) *Enemy {
	return &Enemy{
		Type:   enemyType,
		Name:   t.Name,
		Stats:  NewStats(t.Health, t.Strength, t.Magic),
		Reward: t.Reward,
	}
}

func (e *Enemy) Health() int    { return e.Stats[StatHealth] }
func (e *Enemy) MaxHealth() int { return e.Stats[StatMaxHealth] }
func (e *Enemy) Strength() int  { return e.Stats[StatStrength] }

// IsDead reports whether the enemy has no health left.
func (e *Enemy) IsDead() bool {
	return e.Health() <= 0
}

// CreateEnemy spawns an enemy of the given type.
func CreateEnemy(enemyType string, enemies EnemyCatalog) (*Enemy, error) {
	t := enemies.Get(enemyType)
	if t == nil {
		return nil, fmt.Errorf("%w: unknown enemy type %q", ErrInvalidTarget, enemyType)
	}
	return NewEnemy(enemyType, t), nil
}

// EnemyForLevel spawns the toughest enemy whose MinLevel the character
// has reached.
func EnemyForLevel(level int, enemies EnemyCatalog) (*Enemy, error) {
	all := enemies.GetAll()
	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	best := ""
	for _, id := range ids {
		t := all[id]
		if t.MinLevel > level {
			continue
		}
		if best == "" || t.MinLevel > all[best].MinLevel {
			best = id
		}
	}
	if best == "" {
		return nil, fmt.Errorf("%w: no enemy for level %d", ErrInvalidTarget, level)
	}
	return NewEnemy(best, all[best]), nil
}
