package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pixil98/go-quest/internal/game"
)

// named is anything that can be matched by id or display name.
type named interface {
	*game.Item | *game.Quest
}

func displayName[T named](v T) string {
	switch x := any(v).(type) {
	case *game.Item:
		if x != nil {
			return x.Name
		}
	case *game.Quest:
		if x != nil {
			return x.Title
		}
	}
	return ""
}

// resolveName finds the candidate a player meant. Exact id wins, then a
// case-insensitive display name, then a unique id or name prefix.
func resolveName[T named](input string, candidates map[string]T) (string, bool) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return "", false
	}

	ids := make([]string, 0, len(candidates))
	for id := range candidates {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	if _, ok := candidates[input]; ok {
		return input, true
	}
	for _, id := range ids {
		if strings.EqualFold(displayName(candidates[id]), input) {
			return id, true
		}
	}

	var prefixed []string
	for _, id := range ids {
		if strings.HasPrefix(strings.ToLower(id), input) || strings.HasPrefix(strings.ToLower(displayName(candidates[id])), input) {
			prefixed = append(prefixed, id)
		}
	}
	if len(prefixed) == 1 {
		return prefixed[0], true
	}
	return "", false
}

// resolveCarried finds an item in the character's inventory.
func resolveCarried(c *game.Character, input string, items game.ItemCatalog) (string, *game.Item, error) {
	carried := make(map[string]*game.Item, len(c.Inventory))
	for _, id := range c.Inventory {
		carried[id] = items.Get(id)
	}
	id, ok := resolveName(input, carried)
	if !ok {
		return "", nil, NewUserError(fmt.Sprintf("You aren't carrying %q.", input))
	}
	return id, carried[id], nil
}

// resolveCatalogItem finds an item in the shop catalog.
func resolveCatalogItem(input string, items game.ItemCatalog) (string, *game.Item, error) {
	all := items.GetAll()
	id, ok := resolveName(input, all)
	if !ok {
		return "", nil, NewUserError(fmt.Sprintf("The shop doesn't sell %q.", input))
	}
	return id, all[id], nil
}

// resolveQuest finds a quest in the catalog by id or title.
func resolveQuest(input string, quests game.QuestCatalog) (string, *game.Quest, error) {
	all := quests.GetAll()
	id, ok := resolveName(input, all)
	if !ok {
		return "", nil, NewUserError(fmt.Sprintf("There is no quest called %q.", input))
	}
	return id, all[id], nil
}
