package combat

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pixil98/go-quest/internal/game"
)

// State is where a battle stands.
type State int

const (
	StateActive State = iota
	StatePlayerWon
	StateEnemyWon
	StateEscaped
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StatePlayerWon:
		return "player"
	case StateEnemyWon:
		return "enemy"
	case StateEscaped:
		return "escaped"
	default:
		return "unknown"
	}
}

// abilityCooldown is how many rounds must pass after an ability before
// the next one: one full round in between.
const abilityCooldown = 2

// Result is the outcome of a finished battle.
type Result struct {
	Winner State
	Reward game.Reward
	Rounds int
}

// Battle is a single encounter between one character and one enemy.
// It is not safe for concurrent use; callers serialize actions per
// character.
type Battle struct {
	id        string
	character *game.Character
	enemy     *game.Enemy
	player    *PlayerCombatant
	foe       *EnemyCombatant

	state       State
	round       int
	lastAbility int
	rng         Rand
	events      []Event
}

// BattleOpt configures a Battle.
type BattleOpt func(*Battle)

// WithRand sets the randomness source used for escapes and abilities.
func WithRand(r Rand) BattleOpt {
	return func(b *Battle) {
		b.rng = r
	}
}

// Start begins a battle. The character must be alive.
func Start(char *game.Character, enemy *game.Enemy, opts ...BattleOpt) (*Battle, error) {
	if char == nil || enemy == nil {
		return nil, fmt.Errorf("%w: battle needs a character and an enemy", game.ErrInvalidTarget)
	}
	if char.IsDead() {
		return nil, fmt.Errorf("%w: %s cannot fight", game.ErrCharacterDead, char.Name)
	}

	b := &Battle{
		id:        uuid.New().String(),
		character: char,
		enemy:     enemy,
		player:    &PlayerCombatant{Character: char},
		foe:       &EnemyCombatant{Enemy: enemy},
		state:     StateActive,
		round:     1,
		rng:       globalRand{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// CanFight reports whether a character is able to start a battle.
func CanFight(char *game.Character) bool {
	return char != nil && !char.IsDead()
}

func (b *Battle) ID() string                 { return b.id }
func (b *Battle) State() State               { return b.state }
func (b *Battle) Round() int                 { return b.round }
func (b *Battle) Character() *game.Character { return b.character }
func (b *Battle) Enemy() *game.Enemy         { return b.enemy }
func (b *Battle) Active() bool               { return b.state == StateActive }

// Events returns the battle log so far.
func (b *Battle) Events() []Event {
	out := make([]Event, len(b.events))
	copy(out, b.events)
	return out
}

// Result reports the winner and reward. The reward is only non-zero when
// the player won.
func (b *Battle) Result() Result {
	r := Result{Winner: b.state, Rounds: b.round}
	if b.state == StatePlayerWon {
		r.Reward = b.enemy.Reward
	}
	return r
}

func (b *Battle) ensureActive() error {
	if b.state != StateActive {
		return fmt.Errorf("%w: battle ended (%s)", game.ErrCombatNotActive, b.state)
	}
	return nil
}

// Attack plays one round: the character attacks, then, if the enemy is
// still standing, the enemy attacks back.
func (b *Battle) Attack() error {
	if err := b.ensureActive(); err != nil {
		return err
	}
	b.turn(b.player, b.foe)
	b.finishRound()
	return nil
}

// UseAbility spends the character's turn on its class ability. After an
// ability one full round must pass before the next.
func (b *Battle) UseAbility() (Event, error) {
	if err := b.ensureActive(); err != nil {
		return Event{}, err
	}
	if !b.AbilityReady() {
		return Event{}, fmt.Errorf("%w: ready in round %d", game.ErrAbilityOnCooldown, b.lastAbility+abilityCooldown)
	}
	ability, err := AbilityFor(b.character.Class)
	if err != nil {
		return Event{}, err
	}

	ev := ability.Use(b)
	b.record(ev)
	b.lastAbility = b.round
	b.checkEnd()
	b.finishRound()
	return ev, nil
}

// AbilityReady reports whether UseAbility is off cooldown.
func (b *Battle) AbilityReady() bool {
	return b.lastAbility == 0 || b.round-b.lastAbility >= abilityCooldown
}

// Escape tries to flee. Success is a coin flip and ends the battle with
// no winner. A failed attempt changes nothing else.
func (b *Battle) Escape() (bool, error) {
	if err := b.ensureActive(); err != nil {
		return false, err
	}
	if b.rng.IntN(2) == 1 {
		b.state = StateEscaped
		b.record(Event{Round: b.round, Kind: EventEscape, Actor: b.character.Name, Target: b.enemy.Name})
		return true, nil
	}
	b.record(Event{Round: b.round, Kind: EventEscapeFailed, Actor: b.character.Name, Target: b.enemy.Name})
	return false, nil
}

// Fight attacks until the battle ends and returns the result.
func (b *Battle) Fight() (Result, error) {
	if err := b.ensureActive(); err != nil {
		return Result{}, err
	}
	for b.state == StateActive {
		if err := b.Attack(); err != nil {
			return Result{}, err
		}
	}
	return b.Result(), nil
}

// turn applies one basic attack and checks for the end of the battle.
func (b *Battle) turn(attacker, defender Combatant) {
	dmg := CalculateDamage(attacker, defender)
	defender.ApplyDamage(dmg)
	b.record(Event{
		Round:  b.round,
		Kind:   EventAttack,
		Actor:  attacker.CombatName(),
		Target: defender.CombatName(),
		Amount: dmg,
	})
	b.checkEnd()
}

// finishRound gives the enemy its turn if the battle is still on and
// advances the round counter.
func (b *Battle) finishRound() {
	if b.state == StateActive {
		b.turn(b.foe, b.player)
	}
	if b.state == StateActive {
		b.round++
	}
}

func (b *Battle) checkEnd() {
	if b.state != StateActive {
		return
	}
	switch {
	case !b.foe.IsAlive() && b.player.IsAlive():
		b.state = StatePlayerWon
		b.record(Event{Round: b.round, Kind: EventDefeat, Actor: b.character.Name, Target: b.enemy.Name})
	case !b.player.IsAlive():
		b.state = StateEnemyWon
		b.record(Event{Round: b.round, Kind: EventDefeat, Actor: b.enemy.Name, Target: b.character.Name})
	}
}

// strike deals ability damage to the enemy.
func (b *Battle) strike(action string, dmg int) Event {
	b.foe.ApplyDamage(dmg)
	return Event{
		Round:  b.round,
		Kind:   EventAbility,
		Actor:  b.character.Name,
		Target: b.enemy.Name,
		Action: action,
		Amount: dmg,
	}
}

func (b *Battle) record(ev Event) {
	b.events = append(b.events, ev)
}
