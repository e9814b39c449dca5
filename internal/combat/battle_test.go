package combat

import (
	"errors"
	"testing"

	"github.com/pixil98/go-quest/internal/game"
	"github.com/pixil98/go-testutil"
)

// fixedRand always returns the same value.
type fixedRand int

func (r fixedRand) IntN(int) int { return int(r) }

func newCharacter(t *testing.T, class game.Class) *game.Character {
	t.Helper()
	c, err := game.NewCharacter("Hero", class)
	if err != nil {
		t.Fatalf("NewCharacter: %v", err)
	}
	return c
}

func newGoblin() *game.Enemy {
	return game.NewEnemy("goblin", &game.EnemyTemplate{
		Name:     "goblin",
		Health:   50,
		Strength: 8,
		Magic:    2,
		MinLevel: 1,
		Reward:   game.Reward{XP: 25, Gold: 10},
	})
}

func startBattle(t *testing.T, c *game.Character, e *game.Enemy, opts ...BattleOpt) *Battle {
	t.Helper()
	b, err := Start(c, e, opts...)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	return b
}

func TestAttackDamage(t *testing.T) {
	tests := map[string]struct {
		attack  int
		defense int
		exp     int
	}{
		"warrior vs goblin": {attack: 15, defense: 8, exp: 13},
		"goblin vs warrior": {attack: 8, defense: 15, exp: 5},
		"no defense":        {attack: 10, defense: 0, exp: 10},
		"floors at one":     {attack: 1, defense: 40, exp: 1},
		"zero attack":       {attack: 0, defense: 0, exp: 1},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "damage", AttackDamage(tt.attack, tt.defense), tt.exp)
		})
	}
}

func TestStart_DeadCharacter(t *testing.T) {
	c := newCharacter(t, game.ClassWarrior)
	c.Stats[game.StatHealth] = 0

	_, err := Start(c, newGoblin())
	if !errors.Is(err, game.ErrCharacterDead) {
		t.Errorf("expected ErrCharacterDead, got %v", err)
	}
	testutil.AssertEqual(t, "can fight", CanFight(c), false)
}

func TestBattle_Fight(t *testing.T) {
	c := newCharacter(t, game.ClassWarrior)
	b := startBattle(t, c, newGoblin())

	res, err := b.Fight()
	if err != nil {
		t.Fatalf("Fight: %v", err)
	}

	testutil.AssertEqual(t, "winner", res.Winner, StatePlayerWon)
	testutil.AssertEqual(t, "rounds", res.Rounds, 4)
	testutil.AssertEqual(t, "reward", res.Reward, game.Reward{XP: 25, Gold: 10})
	testutil.AssertEqual(t, "player health", c.Health(), 105)
	testutil.AssertEqual(t, "enemy health", b.Enemy().Health(), 0)

	// Fight reports the reward without applying it.
	testutil.AssertEqual(t, "gold", c.Gold, 0)

	err = b.Attack()
	if !errors.Is(err, game.ErrCombatNotActive) {
		t.Errorf("expected ErrCombatNotActive, got %v", err)
	}
}

func TestBattle_EnemyWins(t *testing.T) {
	c := newCharacter(t, game.ClassMage)
	c.Stats[game.StatHealth] = 4
	b := startBattle(t, c, newGoblin())

	if err := b.Attack(); err != nil {
		t.Fatalf("Attack: %v", err)
	}

	res := b.Result()
	testutil.AssertEqual(t, "winner", res.Winner, StateEnemyWon)
	testutil.AssertEqual(t, "reward", res.Reward, game.Reward{})
	testutil.AssertEqual(t, "health", c.Health(), 0)
	testutil.AssertEqual(t, "dead", c.IsDead(), true)
}

func TestBattle_AbilityCooldown(t *testing.T) {
	c := newCharacter(t, game.ClassWarrior)
	b := startBattle(t, c, newGoblin())

	ev, err := b.UseAbility()
	if err != nil {
		t.Fatalf("UseAbility: %v", err)
	}
	testutil.AssertEqual(t, "power strike", ev.Amount, 30)
	testutil.AssertEqual(t, "enemy health", b.Enemy().Health(), 20)
	testutil.AssertEqual(t, "round", b.Round(), 2)

	_, err = b.UseAbility()
	if !errors.Is(err, game.ErrAbilityOnCooldown) {
		t.Errorf("expected ErrAbilityOnCooldown, got %v", err)
	}
	testutil.AssertEqual(t, "enemy health after refusal", b.Enemy().Health(), 20)

	if err := b.Attack(); err != nil {
		t.Fatalf("Attack: %v", err)
	}
	testutil.AssertEqual(t, "ready", b.AbilityReady(), true)

	if _, err := b.UseAbility(); err != nil {
		t.Fatalf("UseAbility: %v", err)
	}
	testutil.AssertEqual(t, "state", b.State(), StatePlayerWon)
}

func TestBattle_ClassAbilities(t *testing.T) {
	tests := map[string]struct {
		class     game.Class
		rng       fixedRand
		health    int
		expAmount int
		expKind   EventKind
		expCrit   bool
	}{
		"warrior power strike": {
			class:     game.ClassWarrior,
			health:    120,
			expAmount: 30,
			expKind:   EventAbility,
		},
		"mage fireball": {
			class:     game.ClassMage,
			health:    80,
			expAmount: 40,
			expKind:   EventAbility,
		},
		"rogue critical": {
			class:     game.ClassRogue,
			rng:       1,
			health:    90,
			expAmount: 36,
			expKind:   EventAbility,
			expCrit:   true,
		},
		"rogue normal": {
			class:     game.ClassRogue,
			rng:       0,
			health:    90,
			expAmount: 12,
			expKind:   EventAbility,
		},
		"cleric heal": {
			class:     game.ClassCleric,
			health:    50,
			expAmount: 30,
			expKind:   EventHeal,
		},
		"cleric heal near max": {
			class:     game.ClassCleric,
			health:    95,
			expAmount: 5,
			expKind:   EventHeal,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := newCharacter(t, tt.class)
			c.Stats[game.StatHealth] = tt.health
			b := startBattle(t, c, newGoblin(), WithRand(tt.rng))

			ev, err := b.UseAbility()
			if err != nil {
				t.Fatalf("UseAbility: %v", err)
			}
			testutil.AssertEqual(t, "kind", ev.Kind, tt.expKind)
			testutil.AssertEqual(t, "amount", ev.Amount, tt.expAmount)
			testutil.AssertEqual(t, "critical", ev.Critical, tt.expCrit)
		})
	}
}

func TestBattle_ClericHealThenCounter(t *testing.T) {
	c := newCharacter(t, game.ClassCleric)
	c.Stats[game.StatHealth] = 50
	b := startBattle(t, c, newGoblin())

	if _, err := b.UseAbility(); err != nil {
		t.Fatalf("UseAbility: %v", err)
	}
	// Healed to 80, then the goblin hits for 8 - 10/4.
	testutil.AssertEqual(t, "health", c.Health(), 74)
	testutil.AssertEqual(t, "enemy health", b.Enemy().Health(), 50)
}

func TestBattle_Escape(t *testing.T) {
	tests := map[string]struct {
		rng      fixedRand
		expOK    bool
		expState State
	}{
		"succeeds": {rng: 1, expOK: true, expState: StateEscaped},
		"fails":    {rng: 0, expOK: false, expState: StateActive},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := newCharacter(t, game.ClassRogue)
			b := startBattle(t, c, newGoblin(), WithRand(tt.rng))

			ok, err := b.Escape()
			if err != nil {
				t.Fatalf("Escape: %v", err)
			}
			testutil.AssertEqual(t, "escaped", ok, tt.expOK)
			testutil.AssertEqual(t, "state", b.State(), tt.expState)
			testutil.AssertEqual(t, "round", b.Round(), 1)
			testutil.AssertEqual(t, "health", c.Health(), 90)
			testutil.AssertEqual(t, "reward", b.Result().Reward, game.Reward{})
		})
	}
}

func TestBattle_Events(t *testing.T) {
	c := newCharacter(t, game.ClassWarrior)
	b := startBattle(t, c, newGoblin())

	if err := b.Attack(); err != nil {
		t.Fatalf("Attack: %v", err)
	}

	events := b.Events()
	testutil.AssertEqual(t, "event count", len(events), 2)
	testutil.AssertEqual(t, "first actor", events[0].Actor, "Hero")
	testutil.AssertEqual(t, "first amount", events[0].Amount, 13)
	testutil.AssertEqual(t, "second actor", events[1].Actor, "goblin")
	testutil.AssertEqual(t, "message", events[0].String(), "Hero hits hard goblin! (13)")
}

func TestAbilityFor_UnknownClass(t *testing.T) {
	_, err := AbilityFor(game.ClassUnknown)
	if !errors.Is(err, game.ErrInvalidTarget) {
		t.Errorf("expected ErrInvalidTarget, got %v", err)
	}
}
