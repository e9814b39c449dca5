package commands

import (
	"context"
	"fmt"

	"github.com/pixil98/go-quest/internal/game"
)

// UseHandlerFactory creates handlers that consume an item.
// Inputs:
//   - item (required): id or name of a carried consumable
type UseHandlerFactory struct {
	items game.ItemCatalog
	pub   Publisher
}

func NewUseHandlerFactory(items game.ItemCatalog, pub Publisher) *UseHandlerFactory {
	return &UseHandlerFactory{items: items, pub: pub}
}

func (f *UseHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *UseHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		c := cmdCtx.Actor
		if c.IsDead() {
			return NewUserError("You are dead.")
		}

		id, item, err := resolveCarried(c, cmdCtx.Input("item"), f.items)
		if err != nil {
			return err
		}

		eff, err := c.UseItem(id, f.items)
		if err != nil {
			return err
		}

		msg := fmt.Sprintf("You use the %s.", itemName(id, f.items))
		if !eff.IsNone() {
			msg = fmt.Sprintf("You use the %s. (%s)", item.Name, eff)
		}
		return publishLines(f.pub, cmdCtx, msg, fmt.Sprintf("Health: %d/%d", c.Health(), c.MaxHealth()))
	}, nil
}

// EquipHandlerFactory creates handlers that wear or wield a carried item.
// Inputs:
//   - item (required): id or name of a carried weapon or armor
type EquipHandlerFactory struct {
	items game.ItemCatalog
	pub   Publisher
}

func NewEquipHandlerFactory(items game.ItemCatalog, pub Publisher) *EquipHandlerFactory {
	return &EquipHandlerFactory{items: items, pub: pub}
}

func (f *EquipHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *EquipHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		c := cmdCtx.Actor

		id, item, err := resolveCarried(c, cmdCtx.Input("item"), f.items)
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("%w: %q", game.ErrItemNotFound, id)
		}

		slot, ok := game.SlotFor(item.Type())
		if !ok {
			return NewUserError(fmt.Sprintf("You can't equip the %s.", item.Name))
		}

		old, err := c.Equip(id, slot, f.items)
		if err != nil {
			return err
		}

		lines := []string{fmt.Sprintf("You equip the %s as your %s.", item.Name, slot)}
		if old != "" {
			lines = append(lines, fmt.Sprintf("You put the %s back in your pack.", itemName(old, f.items)))
		}
		return publishLines(f.pub, cmdCtx, lines...)
	}, nil
}

// UnequipHandlerFactory creates handlers that empty an equipment slot.
// Inputs:
//   - slot (required): weapon or armor
type UnequipHandlerFactory struct {
	items game.ItemCatalog
	pub   Publisher
}

func NewUnequipHandlerFactory(items game.ItemCatalog, pub Publisher) *UnequipHandlerFactory {
	return &UnequipHandlerFactory{items: items, pub: pub}
}

func (f *UnequipHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *UnequipHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		slot, err := game.ParseSlot(cmdCtx.Input("slot"))
		if err != nil {
			return NewUserError("Unequip what? Choose weapon or armor.")
		}

		id, err := cmdCtx.Actor.Unequip(slot, f.items)
		if err != nil {
			return err
		}
		if id == "" {
			return NewUserError(fmt.Sprintf("You have no %s equipped.", slot))
		}
		return publishLines(f.pub, cmdCtx, fmt.Sprintf("You remove the %s.", itemName(id, f.items)))
	}, nil
}
