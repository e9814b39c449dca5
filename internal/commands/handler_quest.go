package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/pixil98/go-quest/internal/game"
)

const defaultJournalTemplate = `Active quests:
{{- range .Active }}
  {{ .Title }} - {{ .Description }} (reward: {{ .XP }} xp, {{ .Gold }} gold)
{{- else }}
  None
{{- end }}
Completed quests:
{{- range .Completed }}
  {{ .Title }}
{{- else }}
  None
{{- end }}
Progress: {{ printf "%.0f" .Percent }}% ({{ .TotalXP }} xp and {{ .TotalGold }} gold earned)`

const defaultAvailableTemplate = `Quests you can accept:
{{- range .Quests }}
  {{ printf "%-14s" .Id }} {{ .Title }} (level {{ .RequiredLevel }}, {{ .XP }} xp, {{ .Gold }} gold)
{{- else }}
  None right now.
{{- end }}`

// JournalView is the data the quest journal template renders.
type JournalView struct {
	Active    []QuestView
	Completed []QuestView
	Percent   float64
	TotalXP   int
	TotalGold int
}

// QuestListView is the data the available quests template renders.
type QuestListView struct {
	Quests []QuestView
}

// QuestsHandlerFactory creates handlers that show the quest journal.
type QuestsHandlerFactory struct {
	quests game.QuestCatalog
	pub    Publisher
}

func NewQuestsHandlerFactory(quests game.QuestCatalog, pub Publisher) *QuestsHandlerFactory {
	return &QuestsHandlerFactory{quests: quests, pub: pub}
}

func (f *QuestsHandlerFactory) ValidateConfig(config map[string]any) error {
	return validateTemplateConfig(config)
}

func (f *QuestsHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		c := cmdCtx.Actor
		total := c.TotalRewardsEarned(f.quests)
		view := &JournalView{
			Active:    questViews(c, c.ActiveQuestList(f.quests)),
			Completed: questViews(c, c.CompletedQuestList(f.quests)),
			Percent:   c.CompletionPercentage(f.quests),
			TotalXP:   total.XP,
			TotalGold: total.Gold,
		}

		output, err := renderView(cmdCtx, defaultJournalTemplate, view)
		if err != nil {
			return err
		}
		return publish(f.pub, cmdCtx, strings.TrimRight(output, "\n"))
	}, nil
}

// AvailableQuestsHandlerFactory creates handlers that list the quests the
// player could accept right now.
type AvailableQuestsHandlerFactory struct {
	quests game.QuestCatalog
	pub    Publisher
}

func NewAvailableQuestsHandlerFactory(quests game.QuestCatalog, pub Publisher) *AvailableQuestsHandlerFactory {
	return &AvailableQuestsHandlerFactory{quests: quests, pub: pub}
}

func (f *AvailableQuestsHandlerFactory) ValidateConfig(config map[string]any) error {
	return validateTemplateConfig(config)
}

func (f *AvailableQuestsHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		c := cmdCtx.Actor
		view := &QuestListView{Quests: questViews(c, c.AvailableQuests(f.quests))}

		output, err := renderView(cmdCtx, defaultAvailableTemplate, view)
		if err != nil {
			return err
		}
		return publish(f.pub, cmdCtx, strings.TrimRight(output, "\n"))
	}, nil
}

// AcceptQuestHandlerFactory creates handlers that start a quest.
// Inputs:
//   - quest (required): quest id or title
type AcceptQuestHandlerFactory struct {
	quests game.QuestCatalog
	pub    Publisher
}

func NewAcceptQuestHandlerFactory(quests game.QuestCatalog, pub Publisher) *AcceptQuestHandlerFactory {
	return &AcceptQuestHandlerFactory{quests: quests, pub: pub}
}

func (f *AcceptQuestHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *AcceptQuestHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		id, q, err := resolveQuest(cmdCtx.Input("quest"), f.quests)
		if err != nil {
			return err
		}
		if err := cmdCtx.Actor.AcceptQuest(id, f.quests); err != nil {
			return err
		}
		return publishLines(f.pub, cmdCtx,
			fmt.Sprintf("You accept the quest: %s.", q.Title),
			q.Description)
	}, nil
}

// CompleteQuestHandlerFactory creates handlers that turn in an active
// quest and pay out its reward.
// Inputs:
//   - quest (required): quest id or title
type CompleteQuestHandlerFactory struct {
	quests game.QuestCatalog
	pub    Publisher
}

func NewCompleteQuestHandlerFactory(quests game.QuestCatalog, pub Publisher) *CompleteQuestHandlerFactory {
	return &CompleteQuestHandlerFactory{quests: quests, pub: pub}
}

func (f *CompleteQuestHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *CompleteQuestHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		c := cmdCtx.Actor
		if c.IsDead() {
			return NewUserError("You are dead. Revive before turning in quests.")
		}

		id, q, err := resolveQuest(cmdCtx.Input("quest"), f.quests)
		if err != nil {
			return err
		}

		reward, err := c.CompleteQuest(id, f.quests)
		if err != nil {
			return err
		}
		levels, err := c.ApplyReward(reward)
		if err != nil {
			return err
		}

		lines := []string{fmt.Sprintf("Quest complete: %s!", q.Title)}
		lines = append(lines, rewardLines(c, reward, levels)...)
		return publishLines(f.pub, cmdCtx, lines...)
	}, nil
}

// AbandonQuestHandlerFactory creates handlers that drop an active quest.
// Inputs:
//   - quest (required): quest id or title
type AbandonQuestHandlerFactory struct {
	quests game.QuestCatalog
	pub    Publisher
}

func NewAbandonQuestHandlerFactory(quests game.QuestCatalog, pub Publisher) *AbandonQuestHandlerFactory {
	return &AbandonQuestHandlerFactory{quests: quests, pub: pub}
}

func (f *AbandonQuestHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *AbandonQuestHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		id, q, err := resolveQuest(cmdCtx.Input("quest"), f.quests)
		if err != nil {
			return err
		}
		if err := cmdCtx.Actor.AbandonQuest(id); err != nil {
			return err
		}
		return publishLines(f.pub, cmdCtx, fmt.Sprintf("You abandon the quest: %s.", q.Title))
	}, nil
}

// QuestChainHandlerFactory creates handlers that show the prerequisite
// chain leading to a quest.
// Inputs:
//   - quest (required): quest id or title
type QuestChainHandlerFactory struct {
	quests game.QuestCatalog
	pub    Publisher
}

func NewQuestChainHandlerFactory(quests game.QuestCatalog, pub Publisher) *QuestChainHandlerFactory {
	return &QuestChainHandlerFactory{quests: quests, pub: pub}
}

func (f *QuestChainHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *QuestChainHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		id, _, err := resolveQuest(cmdCtx.Input("quest"), f.quests)
		if err != nil {
			return err
		}

		chain, err := game.PrerequisiteChain(id, f.quests)
		if err != nil {
			return err
		}

		lines := []string{"Quest chain:"}
		for i, qid := range chain {
			v := QuestViewFrom(cmdCtx.Actor, qid, f.quests.Get(qid))
			lines = append(lines, fmt.Sprintf("  %d. %s [%s]", i+1, v.Title, v.State))
		}
		return publish(f.pub, cmdCtx, strings.Join(lines, "\n"))
	}, nil
}

// rewardLines describes a credited reward and any levels it bought.
func rewardLines(c *game.Character, r game.Reward, levels int) []string {
	lines := []string{fmt.Sprintf("You receive %d experience and %d gold.", r.XP, r.Gold)}
	if levels > 0 {
		lines = append(lines, fmt.Sprintf("You are now level %d! Health %d/%d, strength %d, magic %d.",
			c.Level, c.Health(), c.MaxHealth(), c.Strength(), c.Magic()))
	}
	return lines
}
