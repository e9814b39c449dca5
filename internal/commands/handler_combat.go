package commands

import (
	"context"
	"fmt"

	"github.com/pixil98/go-quest/internal/combat"
	"github.com/pixil98/go-quest/internal/game"
)

// ExploreHandlerFactory creates handlers that go looking for trouble and
// start a battle.
// Inputs:
//   - enemy (optional): enemy type to fight instead of one picked for the player's level
type ExploreHandlerFactory struct {
	enemies game.EnemyCatalog
	pub     Publisher
	opts    []combat.BattleOpt
}

func NewExploreHandlerFactory(enemies game.EnemyCatalog, pub Publisher, opts ...combat.BattleOpt) *ExploreHandlerFactory {
	return &ExploreHandlerFactory{enemies: enemies, pub: pub, opts: opts}
}

func (f *ExploreHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *ExploreHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		state := cmdCtx.Session
		if state.InCombat() {
			return NewUserError(fmt.Sprintf("You are already fighting the %s!", state.Battle.Enemy().Name))
		}
		if cmdCtx.Actor.IsDead() {
			return NewUserError("You are dead. Type 'revive' to return to life.")
		}

		var (
			enemy *game.Enemy
			err   error
		)
		if kind := cmdCtx.Input("enemy"); kind != "" {
			enemy, err = game.CreateEnemy(kind, f.enemies)
		} else {
			enemy, err = game.EnemyForLevel(cmdCtx.Actor.Level, f.enemies)
		}
		if err != nil {
			return err
		}

		b, err := combat.Start(cmdCtx.Actor, enemy, f.opts...)
		if err != nil {
			return err
		}
		state.Battle = b

		return publishLines(f.pub, cmdCtx,
			fmt.Sprintf("A %s appears! (%d health)", enemy.Name, enemy.Health()))
	}, nil
}

// battleAction is one player move in a battle.
type battleAction func(b *combat.Battle) error

// BattleHandlerFactory creates handlers that take one action in the
// current battle and report what happened. When the battle ends the
// reward is credited and the battle cleared.
type BattleHandlerFactory struct {
	pub    Publisher
	action battleAction
}

func NewAttackHandlerFactory(pub Publisher) *BattleHandlerFactory {
	return &BattleHandlerFactory{pub: pub, action: func(b *combat.Battle) error {
		return b.Attack()
	}}
}

func NewAbilityHandlerFactory(pub Publisher) *BattleHandlerFactory {
	return &BattleHandlerFactory{pub: pub, action: func(b *combat.Battle) error {
		_, err := b.UseAbility()
		return err
	}}
}

func NewFleeHandlerFactory(pub Publisher) *BattleHandlerFactory {
	return &BattleHandlerFactory{pub: pub, action: func(b *combat.Battle) error {
		_, err := b.Escape()
		return err
	}}
}

// NewFightHandlerFactory resolves the whole battle with plain attacks.
func NewFightHandlerFactory(pub Publisher) *BattleHandlerFactory {
	return &BattleHandlerFactory{pub: pub, action: func(b *combat.Battle) error {
		_, err := b.Fight()
		return err
	}}
}

func (f *BattleHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *BattleHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		state := cmdCtx.Session
		if !state.InCombat() {
			return NewUserError("You aren't fighting anything. Try 'explore'.")
		}
		b := state.Battle

		seen := len(b.Events())
		if err := f.action(b); err != nil {
			return err
		}

		var lines []string
		for _, ev := range b.Events()[seen:] {
			lines = append(lines, ev.String())
		}

		if b.Active() {
			lines = append(lines, fmt.Sprintf("You: %d/%d  %s: %d/%d",
				cmdCtx.Actor.Health(), cmdCtx.Actor.MaxHealth(),
				b.Enemy().Name, b.Enemy().Health(), b.Enemy().MaxHealth()))
			if !b.AbilityReady() {
				lines = append(lines, "Your ability is recharging.")
			}
		} else {
			end, err := finishBattle(state)
			if err != nil {
				return err
			}
			lines = append(lines, end...)
		}

		return publishLines(f.pub, cmdCtx, lines...)
	}, nil
}

// finishBattle settles an ended battle: the winner's reward is credited
// and the battle is cleared from the session.
func finishBattle(state *State) ([]string, error) {
	b := state.Battle
	state.Battle = nil

	res := b.Result()
	switch res.Winner {
	case combat.StatePlayerWon:
		levels, err := state.Character.ApplyReward(res.Reward)
		if err != nil {
			return nil, err
		}
		lines := []string{fmt.Sprintf("You defeated the %s in %d rounds.", b.Enemy().Name, res.Rounds)}
		return append(lines, rewardLines(state.Character, res.Reward, levels)...), nil
	case combat.StateEnemyWon:
		return []string{"You have died. Type 'revive' to return to life."}, nil
	default:
		return nil, nil
	}
}

// ReviveHandlerFactory creates handlers that bring a dead character back.
type ReviveHandlerFactory struct {
	pub Publisher
}

func NewReviveHandlerFactory(pub Publisher) *ReviveHandlerFactory {
	return &ReviveHandlerFactory{pub: pub}
}

func (f *ReviveHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *ReviveHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		c := cmdCtx.Actor
		if !c.Revive() {
			return NewUserError("You are not dead.")
		}
		return publishLines(f.pub, cmdCtx,
			fmt.Sprintf("You return to life with %d/%d health.", c.Health(), c.MaxHealth()))
	}, nil
}
