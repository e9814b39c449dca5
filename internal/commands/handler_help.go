package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/pixil98/go-quest/internal/display"
	"github.com/pixil98/go-quest/internal/storage"
)

// HelpHandlerFactory creates handlers that display command help.
// Inputs:
//   - command (optional): show usage for a single command
type HelpHandlerFactory struct {
	commands storage.Storer[*Command]
	pub      Publisher
}

// NewHelpHandlerFactory creates a new HelpHandlerFactory.
func NewHelpHandlerFactory(commands storage.Storer[*Command], pub Publisher) *HelpHandlerFactory {
	return &HelpHandlerFactory{commands: commands, pub: pub}
}

func (f *HelpHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *HelpHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		if command := cmdCtx.Input("command"); command != "" {
			return f.showCommand(cmdCtx, command)
		}
		return f.listCommands(cmdCtx)
	}, nil
}

// listCommands displays all commands grouped by category.
func (f *HelpHandlerFactory) listCommands(cmdCtx *CommandContext) error {
	all := f.commands.GetAll()

	groups := make(map[string][]string)
	for id, cmd := range all {
		category := cmd.Category
		if category == "" {
			category = "other"
		}
		groups[category] = append(groups[category], id)
	}

	categories := make([]string, 0, len(groups))
	for cat := range groups {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	lines := []string{"Available commands:"}
	for _, cat := range categories {
		cmds := groups[cat]
		sort.Strings(cmds)
		lines = append(lines, fmt.Sprintf("  %s: %s", display.Title(cat), strings.Join(cmds, ", ")))
	}

	return publishLines(f.pub, cmdCtx, lines...)
}

// showCommand displays detailed help for a specific command.
func (f *HelpHandlerFactory) showCommand(cmdCtx *CommandContext, name string) error {
	name = strings.ToLower(name)
	cmd := f.commands.Get(name)
	if cmd == nil {
		return NewUserError(fmt.Sprintf("Command %q is unknown.", name))
	}

	lines := []string{fmt.Sprintf("%s: %s", name, cmd.Description)}

	parts := []string{name}
	for _, input := range cmd.Inputs {
		if input.Required {
			parts = append(parts, fmt.Sprintf("<%s>", input.Name))
		} else {
			parts = append(parts, fmt.Sprintf("[%s]", input.Name))
		}
	}
	lines = append(lines, fmt.Sprintf("Usage: %s", strings.Join(parts, " ")))

	if len(cmd.Aliases) > 0 {
		lines = append(lines, fmt.Sprintf("Aliases: %s", strings.Join(cmd.Aliases, ", ")))
	}

	return publishLines(f.pub, cmdCtx, lines...)
}
