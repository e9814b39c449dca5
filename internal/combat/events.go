package combat

import "fmt"

// EventKind identifies what happened in a battle event.
type EventKind int

const (
	EventAttack EventKind = iota
	EventAbility
	EventHeal
	EventEscape
	EventEscapeFailed
	EventDefeat
)

// Event is one entry in a battle log. Rendering is left to the caller.
type Event struct {
	Round    int
	Kind     EventKind
	Actor    string
	Target   string
	Action   string
	Amount   int
	Critical bool
}

func (e Event) String() string {
	switch e.Kind {
	case EventAttack:
		return fmt.Sprintf("%s %s %s! (%d)", e.Actor, DamageVerb(e.Amount), e.Target, e.Amount)
	case EventAbility:
		if e.Critical {
			return fmt.Sprintf("%s lands a critical %s on %s for %d damage!", e.Actor, e.Action, e.Target, e.Amount)
		}
		return fmt.Sprintf("%s uses %s on %s for %d damage!", e.Actor, e.Action, e.Target, e.Amount)
	case EventHeal:
		return fmt.Sprintf("%s uses %s and recovers %d health.", e.Actor, e.Action, e.Amount)
	case EventEscape:
		return fmt.Sprintf("%s escapes from %s!", e.Actor, e.Target)
	case EventEscapeFailed:
		return fmt.Sprintf("%s fails to escape from %s.", e.Actor, e.Target)
	case EventDefeat:
		return fmt.Sprintf("%s is defeated!", e.Target)
	default:
		return ""
	}
}
