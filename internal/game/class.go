package game

import (
	"fmt"
	"strings"
)

// Class is a character's fixed profession.
type Class int

const (
	ClassUnknown Class = iota
	ClassWarrior
	ClassMage
	ClassRogue
	ClassCleric
)

// Classes lists every playable class in menu order.
var Classes = []Class{ClassWarrior, ClassMage, ClassRogue, ClassCleric}

type classDef struct {
	name      string
	maxHealth int
	strength  int
	magic     int
}

var classDefs = map[Class]classDef{
	ClassWarrior: {name: "Warrior", maxHealth: 120, strength: 15, magic: 5},
	ClassMage:    {name: "Mage", maxHealth: 80, strength: 8, magic: 20},
	ClassRogue:   {name: "Rogue", maxHealth: 90, strength: 12, magic: 10},
	ClassCleric:  {name: "Cleric", maxHealth: 100, strength: 10, magic: 15},
}

// ParseClass looks up a class by name, case-insensitively.
func ParseClass(s string) (Class, error) {
	for c, def := range classDefs {
		if strings.EqualFold(def.name, strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return ClassUnknown, fmt.Errorf("%w: %q", ErrInvalidClass, s)
}

func (c Class) String() string {
	if def, ok := classDefs[c]; ok {
		return def.name
	}
	return "Unknown"
}

// Valid reports whether c is a playable class.
func (c Class) Valid() bool {
	_, ok := classDefs[c]
	return ok
}

// BaseStats returns the level 1 stat block for the class.
func (c Class) BaseStats() Stats {
	def := classDefs[c]
	return NewStats(def.maxHealth, def.strength, def.magic)
}

func (c Class) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidClass, int(c))
	}
	return []byte(c.String()), nil
}

func (c *Class) UnmarshalText(text []byte) error {
	parsed, err := ParseClass(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
