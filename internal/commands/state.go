package commands

import (
	"github.com/pixil98/go-quest/internal/combat"
	"github.com/pixil98/go-quest/internal/game"
)

// State is the per-session state commands act on. The session owns it and
// serializes every command against it.
type State struct {
	CharId    string
	Character *game.Character

	// Battle is the encounter in progress, nil when not fighting.
	Battle *combat.Battle

	// Quit is set by the quit command to end the session.
	Quit bool
}

// InCombat reports whether a battle is in progress.
func (s *State) InCombat() bool {
	return s.Battle != nil && s.Battle.Active()
}
