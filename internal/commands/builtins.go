package commands

import (
	"fmt"

	"github.com/pixil98/go-quest/internal/combat"
	"github.com/pixil98/go-quest/internal/game"
)

// RegisterBuiltins registers every handler factory the game ships with.
// Battle options are passed to the explore handler.
func (h *Handler) RegisterBuiltins(dict *game.Dictionary, pub Publisher, opts ...combat.BattleOpt) error {
	h.items = dict.Items
	factories := map[string]HandlerFactory{
		"score":     NewScoreHandlerFactory(dict, pub),
		"inventory": NewInventoryHandlerFactory(dict.Items, pub),
		"use":       NewUseHandlerFactory(dict.Items, pub),
		"equip":     NewEquipHandlerFactory(dict.Items, pub),
		"unequip":   NewUnequipHandlerFactory(dict.Items, pub),
		"shop":      NewShopHandlerFactory(dict.Items, pub),
		"buy":       NewBuyHandlerFactory(dict.Items, pub),
		"sell":      NewSellHandlerFactory(dict.Items, pub),
		"quests":    NewQuestsHandlerFactory(dict.Quests, pub),
		"available": NewAvailableQuestsHandlerFactory(dict.Quests, pub),
		"accept":    NewAcceptQuestHandlerFactory(dict.Quests, pub),
		"complete":  NewCompleteQuestHandlerFactory(dict.Quests, pub),
		"abandon":   NewAbandonQuestHandlerFactory(dict.Quests, pub),
		"chain":     NewQuestChainHandlerFactory(dict.Quests, pub),
		"explore":   NewExploreHandlerFactory(dict.Enemies, pub, opts...),
		"attack":    NewAttackHandlerFactory(pub),
		"ability":   NewAbilityHandlerFactory(pub),
		"flee":      NewFleeHandlerFactory(pub),
		"fight":     NewFightHandlerFactory(pub),
		"revive":    NewReviveHandlerFactory(pub),
		"save":      NewSaveHandlerFactory(dict.Characters, pub),
		"quit":      NewQuitHandlerFactory(dict.Characters, pub),
		"help":      NewHelpHandlerFactory(h.store, pub),
		"message":   NewMessageHandlerFactory(dict.Items, pub),
	}

	for name, f := range factories {
		if err := h.RegisterFactory(name, f); err != nil {
			return fmt.Errorf("registering %s: %w", name, err)
		}
	}
	return nil
}
