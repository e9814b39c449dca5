package game

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/pixil98/go-errors"
)

// Character represents a player character and everything it owns.
// Catalog data (items, quests) is never stored here, only ids.
type Character struct {
	// Name is the character's display name and identity key
	Name  string `json:"name"`
	Class Class  `json:"class"`

	Level      int `json:"level"`
	Experience int `json:"experience"`
	Gold       int `json:"gold"`

	// Stats holds health, max_health, strength and magic
	Stats Stats `json:"stats"`

	// Inventory is the ordered list of carried item ids. Duplicates are
	// allowed, but never of an equipped item.
	Inventory      []string `json:"inventory"`
	EquippedWeapon string   `json:"equipped_weapon,omitempty"`
	EquippedArmor  string   `json:"equipped_armor,omitempty"`

	ActiveQuests    []string `json:"active_quests"`
	CompletedQuests []string `json:"completed_quests"`
}

// NewCharacter creates a level 1 character with the class's base stats.
func NewCharacter(name string, class Class) (*Character, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidName)
	}
	if !class.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidClass, int(class))
	}

	return &Character{
		Name:            name,
		Class:           class,
		Level:           1,
		Stats:           class.BaseStats(),
		Inventory:       []string{},
		ActiveQuests:    []string{},
		CompletedQuests: []string{},
	}, nil
}

func (c *Character) UnmarshalJSON(b []byte) error {
	type Alias Character
	if err := json.Unmarshal(b, (*Alias)(c)); err != nil {
		return err
	}
	if c.Stats == nil {
		c.Stats = Stats{}
	}
	if c.Inventory == nil {
		c.Inventory = []string{}
	}
	if c.ActiveQuests == nil {
		c.ActiveQuests = []string{}
	}
	if c.CompletedQuests == nil {
		c.CompletedQuests = []string{}
	}
	return nil
}

func (c *Character) Health() int    { return c.Stats[StatHealth] }
func (c *Character) MaxHealth() int { return c.Stats[StatMaxHealth] }
func (c *Character) Strength() int  { return c.Stats[StatStrength] }
func (c *Character) Magic() int     { return c.Stats[StatMagic] }

// IsDead reports whether the character has no health left.
func (c *Character) IsDead() bool {
	return c.Health() <= 0
}

// Id is the storage key for the character: its lowercased name with
// spaces replaced by hyphens.
func (c *Character) Id() string {
	return CharacterId(c.Name)
}

// CharacterId converts a character name into its storage key.
func CharacterId(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}

// MatchName returns true if name matches this character's name (case-insensitive).
func (c *Character) MatchName(name string) bool {
	return strings.EqualFold(c.Name, name)
}

// AddGold adds amount (which may be negative) to the character's gold.
func (c *Character) AddGold(amount int) (int, error) {
	if c.Gold+amount < 0 {
		return c.Gold, fmt.Errorf("%w: have %d, need %d", ErrInsufficientGold, c.Gold, -amount)
	}
	c.Gold += amount
	return c.Gold, nil
}

// Heal restores up to amount health and returns how much was restored.
func (c *Character) Heal(amount int) (int, error) {
	if amount < 0 {
		return 0, fmt.Errorf("%w: heal amount %d", ErrInvalidAmount, amount)
	}
	healed := min(amount, c.MaxHealth()-c.Health())
	if healed < 0 {
		healed = 0
	}
	c.Stats[StatHealth] += healed
	return healed, nil
}

// Validate satisfies storage.ValidatingSpec
func (c *Character) Validate() error {
	el := errors.NewErrorList()

	if strings.TrimSpace(c.Name) == "" {
		el.Add(fmt.Errorf("character name is required"))
	}
	if !c.Class.Valid() {
		el.Add(fmt.Errorf("character class is invalid"))
	}
	if c.Level < 1 {
		el.Add(fmt.Errorf("level must be at least 1"))
	}
	if c.Experience < 0 {
		el.Add(fmt.Errorf("experience must not be negative"))
	}
	if c.Gold < 0 {
		el.Add(fmt.Errorf("gold must not be negative"))
	}

	for _, s := range []Stat{StatHealth, StatMaxHealth, StatStrength, StatMagic} {
		if _, ok := c.Stats[s]; !ok {
			el.Add(fmt.Errorf("stat %q is required", s))
		}
	}
	if c.Health() < 0 || c.Health() > c.MaxHealth() {
		el.Add(fmt.Errorf("health %d must be between 0 and max health %d", c.Health(), c.MaxHealth()))
	}

	if len(c.Inventory) > MaxInventorySize {
		el.Add(fmt.Errorf("inventory holds %d items, limit is %d", len(c.Inventory), MaxInventorySize))
	}
	for _, id := range []string{c.EquippedWeapon, c.EquippedArmor} {
		if id != "" && slices.Contains(c.Inventory, id) {
			el.Add(fmt.Errorf("item %q is both carried and equipped", id))
		}
	}

	seen := map[string]bool{}
	for _, id := range c.ActiveQuests {
		if seen[id] {
			el.Add(fmt.Errorf("quest %q is listed as active twice", id))
		}
		seen[id] = true
	}
	for _, id := range c.CompletedQuests {
		if slices.Contains(c.ActiveQuests, id) {
			el.Add(fmt.Errorf("quest %q is both active and completed", id))
		}
	}

	return el.Err()
}
