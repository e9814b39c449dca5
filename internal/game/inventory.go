package game

import (
	"fmt"
	"slices"
	"strings"
)

// MaxInventorySize is the most items a character can carry, equipped items excluded.
const MaxInventorySize = 20

// Slot is an equipment position.
type Slot int

const (
	SlotUnknown Slot = iota
	SlotWeapon
	SlotArmor
)

// ParseSlot converts "weapon" or "armor" into a Slot.
func ParseSlot(s string) (Slot, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "weapon":
		return SlotWeapon, nil
	case "armor", "armour":
		return SlotArmor, nil
	default:
		return SlotUnknown, fmt.Errorf("%w: unknown slot %q", ErrInvalidTarget, s)
	}
}

func (s Slot) String() string {
	switch s {
	case SlotWeapon:
		return "weapon"
	case SlotArmor:
		return "armor"
	default:
		return "unknown"
	}
}

// ItemType returns the item type the slot accepts.
func (s Slot) ItemType() ItemType {
	switch s {
	case SlotWeapon:
		return ItemTypeWeapon
	case SlotArmor:
		return ItemTypeArmor
	default:
		return ItemTypeUnknown
	}
}

// SlotFor returns the slot an item type is worn in.
func SlotFor(t ItemType) (Slot, bool) {
	switch t {
	case ItemTypeWeapon:
		return SlotWeapon, true
	case ItemTypeArmor:
		return SlotArmor, true
	default:
		return SlotUnknown, false
	}
}

func (c *Character) slotRef(s Slot) (*string, error) {
	switch s {
	case SlotWeapon:
		return &c.EquippedWeapon, nil
	case SlotArmor:
		return &c.EquippedArmor, nil
	default:
		return nil, fmt.Errorf("%w: unknown slot", ErrInvalidTarget)
	}
}

// Equipped returns the item id in the slot, or "" if it is empty.
func (c *Character) Equipped(s Slot) string {
	ref, err := c.slotRef(s)
	if err != nil {
		return ""
	}
	return *ref
}

// AddItem puts an item id in the inventory. An id that is equipped
// can't also be carried.
func (c *Character) AddItem(id string) error {
	if c.isEquipped(id) {
		return fmt.Errorf("%w: %q is equipped", ErrItemEquipped, id)
	}
	if len(c.Inventory) >= MaxInventorySize {
		return fmt.Errorf("%w: cannot carry %q", ErrInventoryFull, id)
	}
	c.Inventory = append(c.Inventory, id)
	return nil
}

// RemoveItem removes one copy of an item id from the inventory.
func (c *Character) RemoveItem(id string) error {
	i := slices.Index(c.Inventory, id)
	if i < 0 {
		return fmt.Errorf("%w: not carrying %q", ErrItemNotFound, id)
	}
	c.Inventory = slices.Delete(c.Inventory, i, i+1)
	return nil
}

// HasItem reports whether at least one copy of id is carried.
func (c *Character) HasItem(id string) bool {
	return slices.Contains(c.Inventory, id)
}

// CountItem returns how many copies of id are carried.
func (c *Character) CountItem(id string) int {
	n := 0
	for _, v := range c.Inventory {
		if v == id {
			n++
		}
	}
	return n
}

func (c *Character) isEquipped(id string) bool {
	return id != "" && (c.EquippedWeapon == id || c.EquippedArmor == id)
}

// SpaceRemaining returns how many more items fit in the inventory.
func (c *Character) SpaceRemaining() int {
	return MaxInventorySize - len(c.Inventory)
}

// ClearInventory empties the inventory and returns what was in it.
// Equipped items are untouched.
func (c *Character) ClearInventory() []string {
	removed := c.Inventory
	c.Inventory = []string{}
	return removed
}

// UseItem consumes a consumable, applying its effect once.
func (c *Character) UseItem(id string, items ItemCatalog) (Effect, error) {
	if !c.HasItem(id) {
		return NoEffect, fmt.Errorf("%w: not carrying %q", ErrItemNotFound, id)
	}
	def := items.Get(id)
	if def == nil {
		return NoEffect, fmt.Errorf("%w: %q is not in the catalog", ErrItemNotFound, id)
	}
	if def.Type() != ItemTypeConsumable {
		return NoEffect, fmt.Errorf("%w: %s is a %s, not a consumable", ErrInvalidItemType, def.Name, def.Type())
	}

	eff := def.Effect()
	eff.Apply(c.Stats)
	// Presence was checked above.
	_ = c.RemoveItem(id)

	return eff, nil
}

// Equip moves an item from the inventory into its slot and applies its
// effect. Whatever was in the slot is unequipped back into the inventory
// first. The returned id is the item that was replaced, or "" if the slot
// was empty. Equipping fails while a second copy of the item is carried.
func (c *Character) Equip(id string, slot Slot, items ItemCatalog) (string, error) {
	ref, err := c.slotRef(slot)
	if err != nil {
		return "", err
	}
	if !c.HasItem(id) {
		return "", fmt.Errorf("%w: not carrying %q", ErrItemNotFound, id)
	}
	def := items.Get(id)
	if def == nil {
		return "", fmt.Errorf("%w: %q is not in the catalog", ErrItemNotFound, id)
	}
	if def.Type() != slot.ItemType() {
		return "", fmt.Errorf("%w: %s is a %s, not a %s", ErrInvalidItemType, def.Name, def.Type(), slot.ItemType())
	}

	if c.CountItem(id) > 1 || c.isEquipped(id) {
		return "", fmt.Errorf("%w: you carry more than one %s", ErrItemEquipped, def.Name)
	}

	old := *ref

	var oldDef *Item
	if old != "" {
		oldDef = items.Get(old)
		if oldDef == nil {
			return "", fmt.Errorf("%w: equipped %q is not in the catalog", ErrItemNotFound, old)
		}
		// The incoming item frees one inventory place, so the outgoing
		// one only fails to fit if the inventory is already over capacity.
		if len(c.Inventory) > MaxInventorySize {
			return "", fmt.Errorf("%w: no room for %q", ErrInventoryFull, old)
		}
	}

	_ = c.RemoveItem(id)
	if oldDef != nil {
		oldDef.Effect().Negate().Apply(c.Stats)
		c.Inventory = append(c.Inventory, old)
	}
	def.Effect().Apply(c.Stats)
	*ref = id

	return old, nil
}

// Unequip reverses the slot's effect and returns its item to the
// inventory. An empty slot returns "" and no error.
func (c *Character) Unequip(slot Slot, items ItemCatalog) (string, error) {
	ref, err := c.slotRef(slot)
	if err != nil {
		return "", err
	}
	id := *ref
	if id == "" {
		return "", nil
	}
	if len(c.Inventory) >= MaxInventorySize {
		return "", fmt.Errorf("%w: no room to unequip %q", ErrInventoryFull, id)
	}
	def := items.Get(id)
	if def == nil {
		return "", fmt.Errorf("%w: equipped %q is not in the catalog", ErrItemNotFound, id)
	}

	def.Effect().Negate().Apply(c.Stats)
	c.Inventory = append(c.Inventory, id)
	*ref = ""

	return id, nil
}

// Purchase buys an item from the catalog.
func (c *Character) Purchase(id string, items ItemCatalog) error {
	def := items.Get(id)
	if def == nil {
		return fmt.Errorf("%w: %q is not for sale", ErrItemNotFound, id)
	}
	if c.Gold < def.Cost {
		return fmt.Errorf("%w: %s costs %d, have %d", ErrInsufficientGold, def.Name, def.Cost, c.Gold)
	}
	if c.isEquipped(id) {
		return fmt.Errorf("%w: you are using your %s", ErrItemEquipped, def.Name)
	}
	if len(c.Inventory) >= MaxInventorySize {
		return fmt.Errorf("%w: no room for %s", ErrInventoryFull, def.Name)
	}

	c.Gold -= def.Cost
	c.Inventory = append(c.Inventory, id)
	return nil
}

// Sell sells one carried copy of an item for its sell price and returns
// the gold received. Equipped items must be unequipped first.
func (c *Character) Sell(id string, items ItemCatalog) (int, error) {
	if !c.HasItem(id) {
		return 0, fmt.Errorf("%w: not carrying %q", ErrItemNotFound, id)
	}
	def := items.Get(id)
	if def == nil {
		return 0, fmt.Errorf("%w: %q is not in the catalog", ErrItemNotFound, id)
	}

	price := def.SellPrice()
	_ = c.RemoveItem(id)
	c.Gold += price
	return price, nil
}
