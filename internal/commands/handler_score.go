package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/pixil98/go-quest/internal/game"
)

const scoreBoxWidth = 40

type statLine struct {
	Value  string
	Center bool
}

type statSection struct {
	Header string
	Lines  []statLine
}

// ScoreHandlerFactory creates handlers that display the character sheet.
type ScoreHandlerFactory struct {
	dict *game.Dictionary
	pub  Publisher
}

func NewScoreHandlerFactory(dict *game.Dictionary, pub Publisher) *ScoreHandlerFactory {
	return &ScoreHandlerFactory{dict: dict, pub: pub}
}

func (f *ScoreHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *ScoreHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		output := renderBox(f.sections(cmdCtx.Actor), scoreBoxWidth)
		return publish(f.pub, cmdCtx, output)
	}, nil
}

func (f *ScoreHandlerFactory) sections(c *game.Character) []statSection {
	v := CharacterViewFrom(c, f.dict.Items)

	header := statSection{Lines: []statLine{
		{Value: v.Name, Center: true},
		{Value: fmt.Sprintf("Level %d %s", v.Level, v.Class), Center: true},
	}}
	if v.Dead {
		header.Lines = append(header.Lines, statLine{Value: "** DEAD **", Center: true})
	}

	return []statSection{
		header,
		{Lines: []statLine{
			{Value: fmt.Sprintf("Health:     %d/%d", v.Health, v.MaxHealth)},
			{Value: fmt.Sprintf("Strength:   %d", v.Strength)},
			{Value: fmt.Sprintf("Magic:      %d", v.Magic)},
		}},
		{Lines: []statLine{
			{Value: fmt.Sprintf("Experience: %d/%d", v.Experience, v.NextLevel)},
			{Value: fmt.Sprintf("Gold:       %d", v.Gold)},
			{Value: fmt.Sprintf("Quests:     %d done (%.0f%%)", len(c.CompletedQuests), c.CompletionPercentage(f.dict.Quests))},
		}},
		{Header: "Equipment", Lines: []statLine{
			{Value: fmt.Sprintf("Weapon:     %s", orNone(v.Weapon))},
			{Value: fmt.Sprintf("Armor:      %s", orNone(v.Armor))},
		}},
	}
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

// --- Box rendering ---

func renderBox(sections []statSection, width int) string {
	var lines []string
	lines = append(lines, boxBorder(width))
	for i, section := range sections {
		if i > 0 {
			lines = append(lines, boxBorder(width))
		}
		if section.Header != "" {
			lines = append(lines, boxLine(section.Header, width))
		}
		for _, line := range section.Lines {
			if line.Center {
				lines = append(lines, boxLineCenter(line.Value, width))
			} else {
				lines = append(lines, boxLine(line.Value, width))
			}
		}
	}
	lines = append(lines, boxBorder(width))
	return strings.Join(lines, "\n")
}

func boxBorder(width int) string {
	return "+" + strings.Repeat("-", width-2) + "+"
}

func boxLine(text string, width int) string {
	inner := width - 4
	if len(text) > inner {
		text = text[:inner]
	}
	return fmt.Sprintf("| %-*s |", inner, text)
}

func boxLineCenter(text string, width int) string {
	inner := width - 4
	if len(text) > inner {
		text = text[:inner]
	}
	pad := (inner - len(text)) / 2
	return fmt.Sprintf("| %*s%-*s |", pad+len(text), text, inner-pad-len(text), "")
}
