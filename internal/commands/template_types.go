package commands

import (
	"cmp"
	"slices"

	"github.com/pixil98/go-quest/internal/game"
)

// Stable template-facing types
// These types decouple templates from internal game structs.

// InputContext is used for Pass 1 expansion (config templates that reference inputs).
type InputContext struct {
	Actor  *CharacterView
	Inputs map[string]any // Parsed input values keyed by input name
}

// CharacterView is the template-facing view of a character.
type CharacterView struct {
	Name       string
	Class      string
	Level      int
	Experience int
	NextLevel  int
	Gold       int
	Health     int
	MaxHealth  int
	Strength   int
	Magic      int
	Weapon     string
	Armor      string
	Dead       bool
}

// CharacterViewFrom builds a CharacterView, naming equipped items from the catalog.
func CharacterViewFrom(c *game.Character, items game.ItemCatalog) *CharacterView {
	if c == nil {
		return nil
	}
	return &CharacterView{
		Name:       c.Name,
		Class:      c.Class.String(),
		Level:      c.Level,
		Experience: c.Experience,
		NextLevel:  game.ExpForLevel(c.Level),
		Gold:       c.Gold,
		Health:     c.Health(),
		MaxHealth:  c.MaxHealth(),
		Strength:   c.Strength(),
		Magic:      c.Magic(),
		Weapon:     itemName(c.Equipped(game.SlotWeapon), items),
		Armor:      itemName(c.Equipped(game.SlotArmor), items),
		Dead:       c.IsDead(),
	}
}

// ItemView is the template-facing view of a catalog item.
type ItemView struct {
	Id          string
	Name        string
	Type        string
	Effect      string
	Description string
	Cost        int
	SellPrice   int
	Count       int
}

// ItemViewFrom creates an ItemView for a catalog entry.
func ItemViewFrom(id string, item *game.Item, count int) ItemView {
	v := ItemView{Id: id, Name: id, Count: count}
	if item == nil {
		return v
	}
	v.Name = item.Name
	v.Type = item.Type().String()
	if eff := item.Effect(); !eff.IsNone() {
		v.Effect = eff.String()
	}
	v.Description = item.Description
	v.Cost = item.Cost
	v.SellPrice = item.SellPrice()
	return v
}

// inventoryViews groups carried item ids into one view per distinct item,
// in the order each was first picked up.
func inventoryViews(c *game.Character, items game.ItemCatalog) []ItemView {
	var order []string
	counts := map[string]int{}
	for _, id := range c.Inventory {
		if counts[id] == 0 {
			order = append(order, id)
		}
		counts[id]++
	}

	views := make([]ItemView, 0, len(order))
	for _, id := range order {
		views = append(views, ItemViewFrom(id, items.Get(id), counts[id]))
	}
	return views
}

// catalogViews lists every catalog item, cheapest first.
func catalogViews(items game.ItemCatalog) []ItemView {
	all := items.GetAll()
	views := make([]ItemView, 0, len(all))
	for id, item := range all {
		views = append(views, ItemViewFrom(id, item, 0))
	}
	slices.SortFunc(views, func(a, b ItemView) int {
		if c := cmp.Compare(a.Cost, b.Cost); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return views
}

// QuestView is the template-facing view of a quest.
type QuestView struct {
	Id            string
	Title         string
	Description   string
	RequiredLevel int
	Prerequisite  string
	XP            int
	Gold          int
	State         string
}

// QuestViewFrom creates a QuestView with the character's progress on it.
func QuestViewFrom(c *game.Character, id string, q *game.Quest) QuestView {
	v := QuestView{Id: id, Title: id, State: c.QuestState(id).String()}
	if q == nil {
		return v
	}
	v.Title = q.Title
	v.Description = q.Description
	v.RequiredLevel = q.RequiredLevel
	if q.HasPrerequisite() {
		v.Prerequisite = q.Prerequisite
	}
	v.XP = q.Reward.XP
	v.Gold = q.Reward.Gold
	return v
}

func questViews(c *game.Character, entries []game.QuestEntry) []QuestView {
	views := make([]QuestView, 0, len(entries))
	for _, e := range entries {
		views = append(views, QuestViewFrom(c, e.Id, e.Quest))
	}
	return views
}

func itemName(id string, items game.ItemCatalog) string {
	if id == "" {
		return ""
	}
	if items == nil {
		return id
	}
	if item := items.Get(id); item != nil {
		return item.Name
	}
	return id
}
