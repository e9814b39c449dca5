package commands

import (
	"context"
	"fmt"

	"github.com/pixil98/go-quest/internal/game"
	"github.com/pixil98/go-quest/internal/storage"
)

// QuitHandlerFactory creates handlers that save and quit.
type QuitHandlerFactory struct {
	chars storage.Storer[*game.Character]
	pub   Publisher
}

func NewQuitHandlerFactory(chars storage.Storer[*game.Character], pub Publisher) *QuitHandlerFactory {
	return &QuitHandlerFactory{chars: chars, pub: pub}
}

func (f *QuitHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *QuitHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		if err := saveCharacter(f.chars, cmdCtx.Session); err != nil {
			return fmt.Errorf("saving character on quit: %w", err)
		}

		if cmdCtx.Session.InCombat() {
			_ = publish(f.pub, cmdCtx, fmt.Sprintf("You slip away from the %s.", cmdCtx.Session.Battle.Enemy().Name))
			cmdCtx.Session.Battle = nil
		}
		cmdCtx.Session.Quit = true
		return nil
	}, nil
}
