package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Stat names a numeric attribute of a character or enemy.
type Stat string

const (
	StatNone      Stat = "none"
	StatHealth    Stat = "health"
	StatMaxHealth Stat = "max_health"
	StatStrength  Stat = "strength"
	StatMagic     Stat = "magic"
)

// Stats is a named stat block. Only keys present in the map are
// considered recognized stats for effect application.
type Stats map[Stat]int

// NewStats returns a stat block with every known stat set.
func NewStats(maxHealth, strength, magic int) Stats {
	return Stats{
		StatHealth:    maxHealth,
		StatMaxHealth: maxHealth,
		StatStrength:  strength,
		StatMagic:     magic,
	}
}

// Clone returns an independent copy of the stat block.
func (s Stats) Clone() Stats {
	c := make(Stats, len(s))
	for k, v := range s {
		c[k] = v
	}
	return c
}

// Effect is a single signed delta to one named stat.
type Effect struct {
	Stat  Stat
	Value int
}

// NoEffect is the neutral effect returned for malformed effect strings.
var NoEffect = Effect{Stat: StatNone}

// ParseEffect parses "stat:value" (e.g. "strength:5", "health:+20") or
// "value stat" (e.g. "+5 strength"). Anything it can't read yields
// NoEffect rather than an error.
func ParseEffect(s string) Effect {
	s = strings.TrimSpace(s)

	if name, value, ok := strings.Cut(s, ":"); ok {
		v, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return NoEffect
		}
		return Effect{Stat: normalizeStat(name), Value: v}
	}

	fields := strings.Fields(s)
	if len(fields) == 2 {
		v, err := strconv.Atoi(fields[0])
		if err != nil {
			return NoEffect
		}
		return Effect{Stat: normalizeStat(fields[1]), Value: v}
	}

	return NoEffect
}

func normalizeStat(name string) Stat {
	return Stat(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_"))
}

// IsNone reports whether the effect changes nothing.
func (e Effect) IsNone() bool {
	return e.Stat == StatNone || e.Stat == "" || e.Value == 0
}

// Negate returns the effect that undoes e.
func (e Effect) Negate() Effect {
	return Effect{Stat: e.Stat, Value: -e.Value}
}

func (e Effect) String() string {
	if e.IsNone() {
		return "none"
	}
	return fmt.Sprintf("%s:%+d", e.Stat, e.Value)
}

// Apply adds the effect to the stat block. Unknown stats are ignored.
// Health never ends above max health after a heal or a max health drop,
// and never below zero after damage.
func (e Effect) Apply(stats Stats) {
	if e.Stat == StatNone {
		return
	}
	cur, ok := stats[e.Stat]
	if !ok {
		return
	}
	stats[e.Stat] = cur + e.Value

	switch {
	case e.Stat == StatHealth && e.Value > 0:
		if stats[StatHealth] > stats[StatMaxHealth] {
			stats[StatHealth] = stats[StatMaxHealth]
		}
	case e.Stat == StatHealth && e.Value < 0:
		stats[StatHealth] = max(stats[StatHealth], 0)
	case e.Stat == StatMaxHealth && e.Value < 0:
		if hp, ok := stats[StatHealth]; ok && hp > stats[StatMaxHealth] {
			stats[StatHealth] = stats[StatMaxHealth]
		}
	}
}
