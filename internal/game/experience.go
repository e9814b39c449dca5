package game

import "fmt"

// Per-level stat increases.
const (
	LevelUpMaxHealth = 10
	LevelUpStrength  = 2
	LevelUpMagic     = 2
)

// ExpForLevel returns the experience needed to advance from level to
// level+1. Experience resets on each level up, so this is not cumulative.
func ExpForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return level * 100
}

// ExpToNextLevel returns the remaining XP needed to reach the next level.
func ExpToNextLevel(level, experience int) int {
	remaining := ExpForLevel(level) - experience
	if remaining < 0 {
		return 0
	}
	return remaining
}

// GainExperience adds experience and levels the character up as many
// times as it crosses a threshold. Each level up raises max health,
// strength and magic and fully restores health. Returns the number of
// levels gained.
func (c *Character) GainExperience(amount int) (int, error) {
	if c.IsDead() {
		return 0, fmt.Errorf("%w: %s cannot gain experience", ErrCharacterDead, c.Name)
	}
	if amount < 0 {
		return 0, fmt.Errorf("%w: experience %d", ErrInvalidAmount, amount)
	}

	c.Experience += amount

	gained := 0
	for c.Experience >= ExpForLevel(c.Level) {
		c.Experience -= ExpForLevel(c.Level)
		c.levelUp()
		gained++
	}
	return gained, nil
}

func (c *Character) levelUp() {
	c.Level++
	c.Stats[StatMaxHealth] += LevelUpMaxHealth
	c.Stats[StatStrength] += LevelUpStrength
	c.Stats[StatMagic] += LevelUpMagic
	c.Stats[StatHealth] = c.Stats[StatMaxHealth]
}

// ApplyReward credits a quest or battle reward. Dead characters can't
// receive rewards, and nothing is credited when that check fails.
func (c *Character) ApplyReward(r Reward) (int, error) {
	if c.IsDead() {
		return 0, fmt.Errorf("%w: %s cannot receive rewards", ErrCharacterDead, c.Name)
	}
	if r.XP < 0 || r.Gold < 0 {
		return 0, fmt.Errorf("%w: reward %+v", ErrInvalidAmount, r)
	}

	c.Gold += r.Gold
	return c.GainExperience(r.XP)
}

// Revive brings a dead character back at half max health, rounded down.
// Returns false if the character was not dead.
func (c *Character) Revive() bool {
	if !c.IsDead() {
		return false
	}
	c.Stats[StatHealth] = c.MaxHealth() / 2
	return true
}
