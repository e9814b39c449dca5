package game

import (
	"fmt"
	"strings"

	"github.com/pixil98/go-errors"
)

// ItemType defines the category of an item.
type ItemType int

const (
	ItemTypeUnknown ItemType = iota
	ItemTypeWeapon
	ItemTypeArmor
	ItemTypeConsumable
)

func (t ItemType) String() string {
	switch t {
	case ItemTypeWeapon:
		return "weapon"
	case ItemTypeArmor:
		return "armor"
	case ItemTypeConsumable:
		return "consumable"
	default:
		return "unknown"
	}
}

// Item defines a catalog item loaded from asset files. Items are shared
// by every character and never modified after load.
type Item struct {
	// Name is the display name (e.g., "Iron Sword")
	Name string `json:"name"`

	// TypeStr is the item type from JSON
	TypeStr string `json:"type"`

	// EffectStr is the stat delta the item grants (e.g., "strength:5")
	EffectStr string `json:"effect"`

	Cost        int    `json:"cost"`
	Description string `json:"description"`
}

// Type returns the parsed ItemType from TypeStr.
func (i *Item) Type() ItemType {
	switch strings.ToLower(i.TypeStr) {
	case "weapon":
		return ItemTypeWeapon
	case "armor":
		return ItemTypeArmor
	case "consumable":
		return ItemTypeConsumable
	default:
		return ItemTypeUnknown
	}
}

// Effect returns the parsed stat effect.
func (i *Item) Effect() Effect {
	return ParseEffect(i.EffectStr)
}

// SellPrice is what a shop pays for the item: half its cost, rounded down.
func (i *Item) SellPrice() int {
	return i.Cost / 2
}

// Validate satisfies storage.ValidatingSpec
func (i *Item) Validate() error {
	el := errors.NewErrorList()

	if i.Name == "" {
		el.Add(fmt.Errorf("item name is required"))
	}
	if i.TypeStr == "" {
		el.Add(fmt.Errorf("item type is required"))
	} else if i.Type() == ItemTypeUnknown {
		el.Add(fmt.Errorf("item type %q is invalid", i.TypeStr))
	}
	if i.Cost < 0 {
		el.Add(fmt.Errorf("item cost must not be negative"))
	}

	eff := i.Effect()
	switch {
	case eff.Stat == StatNone:
		el.Add(fmt.Errorf("item effect %q is malformed", i.EffectStr))
	case !knownStat(eff.Stat):
		el.Add(fmt.Errorf("item effect stat %q is unknown", eff.Stat))
	case eff.Stat == StatHealth && i.Type() != ItemTypeConsumable:
		// Health is clamped on the way up, so it can't be reversed on unequip.
		el.Add(fmt.Errorf("only consumables may affect health"))
	case eff.Stat == StatMaxHealth && eff.Value < 0:
		// Lowering max health can pull health down, which unequip can't undo.
		el.Add(fmt.Errorf("item effect may not lower max health"))
	}

	return el.Err()
}

func knownStat(s Stat) bool {
	switch s {
	case StatHealth, StatMaxHealth, StatStrength, StatMagic:
		return true
	default:
		return false
	}
}

// ItemCatalog looks up item definitions by id. storage.FileStore
// satisfies it.
type ItemCatalog interface {
	Get(id string) *Item
	GetAll() map[string]*Item
}

// ItemMap is an in-memory ItemCatalog.
type ItemMap map[string]*Item

func (m ItemMap) Get(id string) *Item {
	return m[id]
}

func (m ItemMap) GetAll() map[string]*Item {
	return m
}
