package commands

import (
	"context"
	"fmt"

	"github.com/pixil98/go-quest/internal/game"
	"github.com/pixil98/go-quest/internal/storage"
)

// SaveHandlerFactory creates handlers that persist the player's character.
type SaveHandlerFactory struct {
	chars storage.Storer[*game.Character]
	pub   Publisher
}

func NewSaveHandlerFactory(chars storage.Storer[*game.Character], pub Publisher) *SaveHandlerFactory {
	return &SaveHandlerFactory{chars: chars, pub: pub}
}

func (f *SaveHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *SaveHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		if err := saveCharacter(f.chars, cmdCtx.Session); err != nil {
			return fmt.Errorf("saving character: %w", err)
		}

		return publish(f.pub, cmdCtx, "Character saved.")
	}, nil
}

// saveCharacter persists the session's character. Shared by save and quit
// handlers. A battle in progress is not saved.
func saveCharacter(chars storage.Storer[*game.Character], session *State) error {
	return chars.Save(session.CharId, session.Character)
}
