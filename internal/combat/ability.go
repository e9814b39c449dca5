package combat

import (
	"fmt"

	"github.com/pixil98/go-quest/internal/game"
)

// Ability is a class's special move.
type Ability interface {
	Name() string
	// Use applies the ability to the battle's character and enemy.
	Use(b *Battle) Event
}

var classAbilities = map[game.Class]Ability{
	game.ClassWarrior: &PowerStrike{Multiplier: 2},
	game.ClassMage:    &Fireball{Multiplier: 2},
	game.ClassRogue:   &CriticalStrike{CritMultiplier: 3},
	game.ClassCleric:  &Heal{Amount: 30},
}

// AbilityFor returns the special ability of a class.
func AbilityFor(class game.Class) (Ability, error) {
	a, ok := classAbilities[class]
	if !ok {
		return nil, fmt.Errorf("%w: no special ability for class %s", game.ErrInvalidTarget, class)
	}
	return a, nil
}

// PowerStrike hits for a multiple of strength.
type PowerStrike struct {
	Multiplier int
}

func (a *PowerStrike) Name() string { return "Power Strike" }

func (a *PowerStrike) Use(b *Battle) Event {
	dmg := b.character.Strength() * a.Multiplier
	return b.strike(a.Name(), dmg)
}

// Fireball hits for a multiple of magic.
type Fireball struct {
	Multiplier int
}

func (a *Fireball) Name() string { return "Fireball" }

func (a *Fireball) Use(b *Battle) Event {
	dmg := b.character.Magic() * a.Multiplier
	return b.strike(a.Name(), dmg)
}

// CriticalStrike has an even chance of hitting for CritMultiplier times
// strength or for plain strength.
type CriticalStrike struct {
	CritMultiplier int
}

func (a *CriticalStrike) Name() string { return "Critical Strike" }

func (a *CriticalStrike) Use(b *Battle) Event {
	dmg := b.character.Strength()
	crit := b.rng.IntN(2) == 1
	if crit {
		dmg *= a.CritMultiplier
	}
	ev := b.strike(a.Name(), dmg)
	ev.Critical = crit
	return ev
}

// Heal restores a flat amount of the character's health.
type Heal struct {
	Amount int
}

func (a *Heal) Name() string { return "Heal" }

func (a *Heal) Use(b *Battle) Event {
	before := b.character.Health()
	game.Effect{Stat: game.StatHealth, Value: a.Amount}.Apply(b.character.Stats)
	return Event{
		Round:  b.round,
		Kind:   EventHeal,
		Actor:  b.character.Name,
		Target: b.character.Name,
		Action: a.Name(),
		Amount: b.character.Health() - before,
	}
}
