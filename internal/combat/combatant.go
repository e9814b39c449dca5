package combat

import (
	"github.com/pixil98/go-quest/internal/game"
)

// Combatant is anything that can trade blows in a battle.
type Combatant interface {
	CombatName() string
	IsAlive() bool
	Strength() int
	// ApplyDamage subtracts dmg from health, stopping at zero, and
	// returns the damage actually taken.
	ApplyDamage(dmg int) int
}

// PlayerCombatant adapts a Character for the combat system.
type PlayerCombatant struct {
	Character *game.Character
}

func (c *PlayerCombatant) CombatName() string { return c.Character.Name }
func (c *PlayerCombatant) IsAlive() bool      { return !c.Character.IsDead() }
func (c *PlayerCombatant) Strength() int      { return c.Character.Strength() }

func (c *PlayerCombatant) ApplyDamage(dmg int) int {
	return applyDamage(c.Character.Stats, dmg)
}

// EnemyCombatant adapts an Enemy for the combat system.
type EnemyCombatant struct {
	Enemy *game.Enemy
}

func (c *EnemyCombatant) CombatName() string { return c.Enemy.Name }
func (c *EnemyCombatant) IsAlive() bool      { return !c.Enemy.IsDead() }
func (c *EnemyCombatant) Strength() int      { return c.Enemy.Strength() }

func (c *EnemyCombatant) ApplyDamage(dmg int) int {
	return applyDamage(c.Enemy.Stats, dmg)
}

func applyDamage(stats game.Stats, dmg int) int {
	if dmg < 0 {
		dmg = 0
	}
	hp := stats[game.StatHealth]
	taken := min(dmg, max(hp, 0))
	stats[game.StatHealth] = hp - dmg
	if stats[game.StatHealth] < 0 {
		stats[game.StatHealth] = 0
	}
	return taken
}
