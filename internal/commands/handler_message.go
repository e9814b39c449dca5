package commands

import (
	"context"
	"fmt"
	"text/template"

	"github.com/pixil98/go-quest/internal/game"
)

// MessageHandlerFactory creates handlers that send the player a fixed
// message rendered against their character.
// Config:
//   - message (required): template with the character view as data, e.g.
//     "{{ .Name }} the {{ .Class }} has {{ .Gold }} gold."
type MessageHandlerFactory struct {
	items game.ItemCatalog
	pub   Publisher
}

// NewMessageHandlerFactory creates a new MessageHandlerFactory with a publisher.
func NewMessageHandlerFactory(items game.ItemCatalog, pub Publisher) *MessageHandlerFactory {
	return &MessageHandlerFactory{items: items, pub: pub}
}

func (f *MessageHandlerFactory) ValidateConfig(config map[string]any) error {
	msg, _ := config["message"].(string)
	if msg == "" {
		return fmt.Errorf("message is required")
	}
	if _, err := template.New("").Funcs(templateFuncs).Parse(msg); err != nil {
		return fmt.Errorf("message: %w", err)
	}
	return nil
}

func (f *MessageHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		// Inputs were substituted in Pass 1; the character is Pass 2.
		output, err := ExpandTemplate(cmdCtx.Config["message"], CharacterViewFrom(cmdCtx.Actor, f.items))
		if err != nil {
			return err
		}
		return publishLines(f.pub, cmdCtx, output)
	}, nil
}
