package game

import (
	"fmt"
	"strings"

	"github.com/pixil98/go-errors"
)

// NoPrerequisite marks a quest that starts a chain.
const NoPrerequisite = "none"

// Reward is what a quest or a won battle pays out. The caller applies it
// with Character.ApplyReward.
type Reward struct {
	XP   int `json:"xp"`
	Gold int `json:"gold"`
}

// Add returns the sum of two rewards.
func (r Reward) Add(o Reward) Reward {
	return Reward{XP: r.XP + o.XP, Gold: r.Gold + o.Gold}
}

// Quest defines a catalog quest loaded from asset files.
type Quest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Reward      Reward `json:"reward"`

	RequiredLevel int `json:"required_level"`

	// Prerequisite is the id of the quest that must be completed first,
	// or "none".
	Prerequisite string `json:"prerequisite,omitempty"`
}

// HasPrerequisite reports whether another quest must be completed first.
func (q *Quest) HasPrerequisite() bool {
	p := strings.TrimSpace(q.Prerequisite)
	return p != "" && !strings.EqualFold(p, NoPrerequisite)
}

// Validate satisfies storage.ValidatingSpec
func (q *Quest) Validate() error {
	el := errors.NewErrorList()
	if q.Title == "" {
		el.Add(fmt.Errorf("quest title is required"))
	}
	if q.RequiredLevel < 1 {
		el.Add(fmt.Errorf("quest required_level must be at least 1"))
	}
	if q.Reward.XP < 0 || q.Reward.Gold < 0 {
		el.Add(fmt.Errorf("quest reward must not be negative"))
	}
	return el.Err()
}

// QuestCatalog looks up quest definitions by id. storage.FileStore
// satisfies it.
type QuestCatalog interface {
	Get(id string) *Quest
	GetAll() map[string]*Quest
}

// QuestMap is an in-memory QuestCatalog.
type QuestMap map[string]*Quest

func (m QuestMap) Get(id string) *Quest {
	return m[id]
}

func (m QuestMap) GetAll() map[string]*Quest {
	return m
}
