package game

import (
	"fmt"
	"slices"
	"sort"
)

// QuestState is where a quest stands for one character.
type QuestState int

const (
	QuestUnseen QuestState = iota
	QuestActive
	QuestCompleted
)

func (s QuestState) String() string {
	switch s {
	case QuestActive:
		return "active"
	case QuestCompleted:
		return "completed"
	default:
		return "unseen"
	}
}

// QuestState returns the character's state for a quest id.
func (c *Character) QuestState(id string) QuestState {
	switch {
	case slices.Contains(c.CompletedQuests, id):
		return QuestCompleted
	case slices.Contains(c.ActiveQuests, id):
		return QuestActive
	default:
		return QuestUnseen
	}
}

// checkAccept runs every accept rule without mutating anything.
func (c *Character) checkAccept(id string, quests QuestCatalog) error {
	q := quests.Get(id)
	if q == nil {
		return fmt.Errorf("%w: %q", ErrQuestNotFound, id)
	}
	if c.Level < q.RequiredLevel {
		return fmt.Errorf("%w: %s requires level %d", ErrInsufficientLevel, q.Title, q.RequiredLevel)
	}
	if q.HasPrerequisite() && !slices.Contains(c.CompletedQuests, q.Prerequisite) {
		return fmt.Errorf("%w: complete %q first", ErrRequirementsNotMet, q.Prerequisite)
	}
	switch c.QuestState(id) {
	case QuestCompleted:
		return fmt.Errorf("%w: %s", ErrAlreadyCompleted, q.Title)
	case QuestActive:
		return fmt.Errorf("%w: %s is already active", ErrRequirementsNotMet, q.Title)
	}
	return nil
}

// AcceptQuest moves a quest from unseen to active.
func (c *Character) AcceptQuest(id string, quests QuestCatalog) error {
	if err := c.checkAccept(id, quests); err != nil {
		return err
	}
	c.ActiveQuests = append(c.ActiveQuests, id)
	return nil
}

// CanAcceptQuest reports whether AcceptQuest would succeed.
func (c *Character) CanAcceptQuest(id string, quests QuestCatalog) bool {
	return c.checkAccept(id, quests) == nil
}

// CompleteQuest moves an active quest to completed and returns its
// reward. The reward is not applied here.
func (c *Character) CompleteQuest(id string, quests QuestCatalog) (Reward, error) {
	q := quests.Get(id)
	if q == nil {
		return Reward{}, fmt.Errorf("%w: %q", ErrQuestNotFound, id)
	}
	i := slices.Index(c.ActiveQuests, id)
	if i < 0 {
		return Reward{}, fmt.Errorf("%w: %s", ErrQuestNotActive, q.Title)
	}

	c.ActiveQuests = slices.Delete(c.ActiveQuests, i, i+1)
	c.CompletedQuests = append(c.CompletedQuests, id)
	return q.Reward, nil
}

// AbandonQuest drops an active quest back to unseen.
func (c *Character) AbandonQuest(id string) error {
	i := slices.Index(c.ActiveQuests, id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrQuestNotActive, id)
	}
	c.ActiveQuests = slices.Delete(c.ActiveQuests, i, i+1)
	return nil
}

// QuestEntry pairs a quest definition with its id.
type QuestEntry struct {
	Id string
	*Quest
}

func (c *Character) questEntries(ids []string, quests QuestCatalog) []QuestEntry {
	out := make([]QuestEntry, 0, len(ids))
	for _, id := range ids {
		if q := quests.Get(id); q != nil {
			out = append(out, QuestEntry{Id: id, Quest: q})
		}
	}
	return out
}

// ActiveQuestList returns the catalog entries of every active quest.
func (c *Character) ActiveQuestList(quests QuestCatalog) []QuestEntry {
	return c.questEntries(c.ActiveQuests, quests)
}

// CompletedQuestList returns the catalog entries of every completed quest.
func (c *Character) CompletedQuestList(quests QuestCatalog) []QuestEntry {
	return c.questEntries(c.CompletedQuests, quests)
}

// AvailableQuests returns every quest the character could accept now, by id.
func (c *Character) AvailableQuests(quests QuestCatalog) []QuestEntry {
	var out []QuestEntry
	for _, id := range sortedQuestIds(quests) {
		if c.CanAcceptQuest(id, quests) {
			out = append(out, QuestEntry{Id: id, Quest: quests.Get(id)})
		}
	}
	return out
}

// CompletionPercentage is the share of the catalog the character has completed.
func (c *Character) CompletionPercentage(quests QuestCatalog) float64 {
	total := len(quests.GetAll())
	if total == 0 {
		return 0
	}
	return float64(len(c.CompletedQuests)) / float64(total) * 100
}

// TotalRewardsEarned sums the rewards of every completed quest.
func (c *Character) TotalRewardsEarned(quests QuestCatalog) Reward {
	var total Reward
	for _, e := range c.CompletedQuestList(quests) {
		total = total.Add(e.Reward)
	}
	return total
}

// QuestsByLevel returns quests whose required level is within [minLevel, maxLevel].
func QuestsByLevel(quests QuestCatalog, minLevel, maxLevel int) []QuestEntry {
	var out []QuestEntry
	for _, id := range sortedQuestIds(quests) {
		q := quests.Get(id)
		if q.RequiredLevel >= minLevel && q.RequiredLevel <= maxLevel {
			out = append(out, QuestEntry{Id: id, Quest: q})
		}
	}
	return out
}

// PrerequisiteChain walks prerequisite links from id back to the start of
// its chain and returns the ids root first, ending with id.
func PrerequisiteChain(id string, quests QuestCatalog) ([]string, error) {
	if quests.Get(id) == nil {
		return nil, fmt.Errorf("%w: %q", ErrQuestNotFound, id)
	}

	var chain []string
	seen := map[string]bool{}
	for cur := id; ; {
		q := quests.Get(cur)
		if q == nil {
			return nil, fmt.Errorf("%w: prerequisite %q", ErrQuestNotFound, cur)
		}
		if seen[cur] {
			return nil, fmt.Errorf("%w: prerequisite cycle at %q", ErrInvalidReference, cur)
		}
		seen[cur] = true
		chain = append(chain, cur)
		if !q.HasPrerequisite() {
			break
		}
		cur = q.Prerequisite
	}

	slices.Reverse(chain)
	return chain, nil
}

// ValidateQuestCatalog checks that every prerequisite resolves and that no
// chain loops back on itself.
func ValidateQuestCatalog(quests QuestCatalog) error {
	for _, id := range sortedQuestIds(quests) {
		q := quests.Get(id)
		if q.HasPrerequisite() && quests.Get(q.Prerequisite) == nil {
			return fmt.Errorf("%w: quest %q has unknown prerequisite %q", ErrInvalidReference, id, q.Prerequisite)
		}
		if _, err := PrerequisiteChain(id, quests); err != nil {
			return fmt.Errorf("quest %q: %w", id, err)
		}
	}
	return nil
}

func sortedQuestIds(quests QuestCatalog) []string {
	all := quests.GetAll()
	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
