package commands

import (
	"errors"
	"strings"
	"testing"

	"github.com/pixil98/go-quest/internal/game"
	"github.com/pixil98/go-testutil"
)

// assertUserError checks err is a UserError with the given message.
func assertUserError(t *testing.T, err error, exp string) {
	t.Helper()
	var userErr *UserError
	if !errors.As(err, &userErr) {
		t.Fatalf("expected UserError %q, got %T: %v", exp, err, err)
	}
	testutil.AssertEqual(t, "message", userErr.Message, exp)
}

func assertContains(t *testing.T, out string, pieces ...string) {
	t.Helper()
	for _, p := range pieces {
		if !strings.Contains(out, p) {
			t.Errorf("output missing %q:\n%s", p, out)
		}
	}
}

func TestScore(t *testing.T) {
	g := newTestGame(t, game.ClassWarrior)

	out := g.mustExec(t, "stats")
	assertContains(t, out,
		"Hero",
		"Level 1 Warrior",
		"Health:     120/120",
		"Experience: 0/100",
		"Weapon:     none",
	)
	for _, line := range strings.Split(out, "\n") {
		testutil.AssertEqual(t, "line width", len(line), scoreBoxWidth)
	}
}

func TestInventory(t *testing.T) {
	g := newTestGame(t, game.ClassWarrior)
	c := g.state.Character
	c.Inventory = []string{"health-potion", "iron-sword", "health-potion"}

	out := g.mustExec(t, "i")
	assertContains(t, out,
		"You are carrying 3/20 items:",
		"Health Potion (x2) [consumable, health:+20]",
		"Iron Sword [weapon, strength:+5]",
		"Weapon: none",
	)

	c.Inventory = []string{}
	out = g.mustExec(t, "inventory")
	assertContains(t, out, "Nothing")
}

func TestShop_BuyAndSell(t *testing.T) {
	g := newTestGame(t, game.ClassWarrior)
	c := g.state.Character
	c.Gold = 200

	out := g.mustExec(t, "shop")
	assertContains(t, out, "you have 200 gold", "Health Potion", "Steel Sword")
	if strings.Index(out, "Health Potion") > strings.Index(out, "Steel Sword") {
		t.Errorf("expected cheapest first:\n%s", out)
	}

	out = g.mustExec(t, "buy health potion")
	testutil.AssertEqual(t, "buy output", out, "You buy the Health Potion for 25 gold. You have 175 gold left.")

	out = g.mustExec(t, "sell health-potion")
	testutil.AssertEqual(t, "sell output", out, "You sell the Health Potion for 12 gold.")
	testutil.AssertEqual(t, "gold", c.Gold, 187)
	testutil.AssertEqual(t, "inventory", c.Inventory, []string{})

	_, err := g.exec("buy dragon scale")
	assertUserError(t, err, `The shop doesn't sell "dragon scale".`)

	_, err = g.exec("sell iron sword")
	assertUserError(t, err, `You aren't carrying "iron sword".`)
}

func TestEquipment(t *testing.T) {
	g := newTestGame(t, game.ClassWarrior)
	c := g.state.Character
	c.Inventory = []string{"iron-sword", "steel-sword", "health-potion"}

	out := g.mustExec(t, "equip iron")
	testutil.AssertEqual(t, "equip output", out, "You equip the Iron Sword as your weapon.")
	testutil.AssertEqual(t, "strength", c.Strength(), 20)

	out = g.mustExec(t, "equip steel sword")
	assertContains(t, out, "You equip the Steel Sword", "You put the Iron Sword back in your pack.")
	testutil.AssertEqual(t, "strength after swap", c.Strength(), 23)

	out = g.mustExec(t, "unequip weapon")
	testutil.AssertEqual(t, "unequip output", out, "You remove the Steel Sword.")
	testutil.AssertEqual(t, "strength after unequip", c.Strength(), 15)

	_, err := g.exec("unequip weapon")
	assertUserError(t, err, "You have no weapon equipped.")

	_, err = g.exec("unequip hat")
	assertUserError(t, err, "Unequip what? Choose weapon or armor.")

	_, err = g.exec("equip health potion")
	assertUserError(t, err, "You can't equip the Health Potion.")
}

func TestEquipment_CarriedAndEquipped(t *testing.T) {
	g := newTestGame(t, game.ClassWarrior)
	c := g.state.Character
	c.Gold = 500
	c.Inventory = []string{"steel-sword", "steel-sword", "iron-sword"}

	_, err := g.exec("equip steel")
	assertUserError(t, err, "An item can't be both carried and equipped: you carry more than one Steel Sword.")
	testutil.AssertEqual(t, "weapon", c.EquippedWeapon, "")

	g.mustExec(t, "equip iron sword")
	_, err = g.exec("buy iron sword")
	assertUserError(t, err, "An item can't be both carried and equipped: you are using your Iron Sword.")
	testutil.AssertEqual(t, "gold", c.Gold, 500)
	if err := c.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestUse(t *testing.T) {
	g := newTestGame(t, game.ClassWarrior)
	c := g.state.Character
	c.Stats[game.StatHealth] = 50
	c.Inventory = []string{"health-potion", "iron-sword"}

	out := g.mustExec(t, "use health")
	testutil.AssertEqual(t, "use output", out, "You use the Health Potion. (health:+20)\nHealth: 70/120")
	testutil.AssertEqual(t, "inventory", c.Inventory, []string{"iron-sword"})

	_, err := g.exec("use iron sword")
	assertUserError(t, err, "Invalid item type: Iron Sword is a weapon, not a consumable.")
}

func TestQuests(t *testing.T) {
	g := newTestGame(t, game.ClassWarrior)
	c := g.state.Character

	out := g.mustExec(t, "available")
	assertContains(t, out, "Cellar Rats")
	if strings.Contains(out, "Wolf Pack") {
		t.Errorf("wolves should not be available yet:\n%s", out)
	}

	_, err := g.exec("accept wolves")
	assertUserError(t, err, `Quest requirements not met: complete "rats" first.`)

	out = g.mustExec(t, "accept rats")
	assertContains(t, out, "You accept the quest: Cellar Rats.")

	out = g.mustExec(t, "complete cellar rats")
	assertContains(t, out, "Quest complete: Cellar Rats!", "You receive 50 experience and 20 gold.")
	testutil.AssertEqual(t, "gold", c.Gold, 20)
	testutil.AssertEqual(t, "experience", c.Experience, 50)

	g.mustExec(t, "accept wolf pack")
	out = g.mustExec(t, "complete wolves")
	assertContains(t, out, "You are now level 2!")
	testutil.AssertEqual(t, "level", c.Level, 2)
	testutil.AssertEqual(t, "experience", c.Experience, 50)

	out = g.mustExec(t, "quests")
	assertContains(t, out, "Active quests:\n  None", "Cellar Rats", "Wolf Pack", "Progress: 67% (150 xp and 60 gold earned)")

	out = g.mustExec(t, "chain crypt")
	testutil.AssertEqual(t, "chain", out, "Quest chain:\n  1. Cellar Rats [completed]\n  2. Wolf Pack [completed]\n  3. The Crypt [unseen]")

	_, err = g.exec("accept crypt")
	assertUserError(t, err, "Level too low: The Crypt requires level 3.")

	_, err = g.exec("abandon rats")
	assertUserError(t, err, `Quest is not active: "rats".`)

	_, err = g.exec("accept dragons")
	assertUserError(t, err, `There is no quest called "dragons".`)
}

func TestQuests_Abandon(t *testing.T) {
	g := newTestGame(t, game.ClassWarrior)

	g.mustExec(t, "accept rats")
	out := g.mustExec(t, "abandon rats")
	testutil.AssertEqual(t, "abandon output", out, "You abandon the quest: Cellar Rats.")
	testutil.AssertEqual(t, "active", g.state.Character.ActiveQuests, []string{})
}

func TestCombat_Fight(t *testing.T) {
	g := newTestGame(t, game.ClassWarrior)

	_, err := g.exec("attack")
	assertUserError(t, err, "You aren't fighting anything. Try 'explore'.")

	out := g.mustExec(t, "explore")
	testutil.AssertEqual(t, "explore output", out, "A goblin appears! (50 health)")

	_, err = g.exec("explore")
	assertUserError(t, err, "You are already fighting the goblin!")

	out = g.mustExec(t, "fight")
	assertContains(t, out, "goblin is defeated!", "You defeated the goblin in 4 rounds.", "You receive 25 experience and 10 gold.")
	testutil.AssertEqual(t, "gold", g.state.Character.Gold, 10)
	testutil.AssertEqual(t, "in combat", g.state.InCombat(), false)
	if g.state.Battle != nil {
		t.Error("expected battle to be cleared")
	}
}

func TestCombat_Ability(t *testing.T) {
	g := newTestGame(t, game.ClassWarrior)
	g.mustExec(t, "explore goblin")

	out := g.mustExec(t, "ability")
	assertContains(t, out, "Hero uses Power Strike on goblin for 30 damage!", "Your ability is recharging.")

	_, err := g.exec("ability")
	assertUserError(t, err, "Ability is on cooldown: ready in round 3.")
}

func TestCombat_DeathAndRevive(t *testing.T) {
	g := newTestGame(t, game.ClassMage)
	c := g.state.Character
	c.Stats[game.StatHealth] = 4

	g.mustExec(t, "explore")
	out := g.mustExec(t, "attack")
	assertContains(t, out, "Hero is defeated!", "You have died. Type 'revive' to return to life.")
	testutil.AssertEqual(t, "dead", c.IsDead(), true)
	testutil.AssertEqual(t, "gold", c.Gold, 0)

	_, err := g.exec("explore")
	assertUserError(t, err, "You are dead. Type 'revive' to return to life.")

	_, err = g.exec("complete rats")
	assertUserError(t, err, "You are dead. Revive before turning in quests.")

	out = g.mustExec(t, "revive")
	testutil.AssertEqual(t, "revive output", out, "You return to life with 40/80 health.")

	_, err = g.exec("revive")
	assertUserError(t, err, "You are not dead.")
}

func TestCombat_Flee(t *testing.T) {
	g := newTestGame(t, game.ClassRogue)
	g.mustExec(t, "explore")

	out := g.mustExec(t, "flee")
	testutil.AssertEqual(t, "flee output", out, "Hero escapes from goblin!")
	testutil.AssertEqual(t, "in combat", g.state.InCombat(), false)
	testutil.AssertEqual(t, "health", g.state.Character.Health(), 90)
}

func TestCombat_UnknownEnemy(t *testing.T) {
	g := newTestGame(t, game.ClassWarrior)

	_, err := g.exec("explore dragon")
	assertUserError(t, err, `Invalid target: unknown enemy type "dragon".`)
}

func TestSaveAndQuit(t *testing.T) {
	g := newTestGame(t, game.ClassCleric)
	g.state.Character.Gold = 42

	out := g.mustExec(t, "save")
	testutil.AssertEqual(t, "save output", out, "Character saved.")
	testutil.AssertEqual(t, "saved gold", g.chars.Get("hero").Gold, 42)

	g.mustExec(t, "explore")
	g.mustExec(t, "quit")
	testutil.AssertEqual(t, "quit", g.state.Quit, true)
	testutil.AssertEqual(t, "in combat", g.state.InCombat(), false)
	testutil.AssertEqual(t, "saves", g.chars.saves, 2)
}

func TestHelp(t *testing.T) {
	g := newTestGame(t, game.ClassWarrior)

	out := g.mustExec(t, "help")
	assertContains(t, out,
		"Available commands:",
		"Combat: ability, attack, explore, fight, flee",
		"System: help, quit, save",
	)

	out = g.mustExec(t, "help score")
	testutil.AssertEqual(t, "help score", out, "score: Show your character sheet.\nUsage: score\nAliases: stats")

	_, err := g.exec("help dance")
	assertUserError(t, err, `Command "dance" is unknown.`)
}

func TestMessage(t *testing.T) {
	g := newTestGame(t, game.ClassRogue)
	g.state.Character.Gold = 7

	out := g.mustExec(t, "whoami")
	testutil.AssertEqual(t, "whoami", out, "Hero the Rogue has 7 gold.")
}

func TestMessageHandlerFactory_ValidateConfig(t *testing.T) {
	tests := map[string]struct {
		config map[string]any
		expErr string
	}{
		"valid": {
			config: map[string]any{"message": "hi {{ .Name }}"},
		},
		"missing message": {
			config: map[string]any{},
			expErr: "message is required",
		},
		"bad template": {
			config: map[string]any{"message": "{{ .Name"},
			expErr: "message:",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := NewMessageHandlerFactory(nil, nil).ValidateConfig(tt.config)
			if tt.expErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			testutil.AssertErrorContains(t, err, tt.expErr)
		})
	}
}
