package combat

import "math/rand/v2"

// Rand is the source of randomness for escapes and chance abilities.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// CalculateDamage is the basic attack formula:
// attacker strength minus a quarter of the defender's, never below 1.
func CalculateDamage(attacker, defender Combatant) int {
	return AttackDamage(attacker.Strength(), defender.Strength())
}

// AttackDamage computes max(1, attack - floor(defense/4)).
func AttackDamage(attack, defense int) int {
	return max(1, attack-floorDiv(defense, 4))
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

var damageMessages = []struct {
	maxDamage int
	verb3rd   string // "{attacker} {verb} {target}!"
}{
	{0, "misses"},
	{2, "barely scratches"},
	{4, "tickles"},
	{6, "barely hurts"},
	{10, "hits"},
	{14, "hits hard"},
	{19, "pummels"},
	{24, "thrashes"},
	{30, "mauls"},
	{40, "decimates"},
	{50, "devastates"},
	{65, "obliterates"},
	{80, "annihilates"},
}

// DamageVerb returns the 3rd person verb for a damage amount.
func DamageVerb(damage int) string {
	for _, msg := range damageMessages {
		if damage <= msg.maxDamage {
			return msg.verb3rd
		}
	}
	return "does UNSPEAKABLE things to"
}
