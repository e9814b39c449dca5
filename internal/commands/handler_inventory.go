package commands

import (
	"context"
	"strings"

	"github.com/pixil98/go-quest/internal/game"
)

const defaultInventoryTemplate = `You are carrying {{ .Carried }}/{{ .Capacity }} items:
{{- range .Items }}
  {{ .Name }}{{ if gt .Count 1 }} (x{{ .Count }}){{ end }} [{{ .Type }}{{ with .Effect }}, {{ . }}{{ end }}]
{{- else }}
  Nothing
{{- end }}
Weapon: {{ .Weapon | default "none" }}
Armor:  {{ .Armor | default "none" }}`

// InventoryView is the data the inventory template renders.
type InventoryView struct {
	Items    []ItemView
	Carried  int
	Capacity int
	Weapon   string
	Armor    string
}

// InventoryHandlerFactory creates handlers that list the player's inventory.
type InventoryHandlerFactory struct {
	items game.ItemCatalog
	pub   Publisher
}

// NewInventoryHandlerFactory creates a new InventoryHandlerFactory.
func NewInventoryHandlerFactory(items game.ItemCatalog, pub Publisher) *InventoryHandlerFactory {
	return &InventoryHandlerFactory{items: items, pub: pub}
}

func (f *InventoryHandlerFactory) ValidateConfig(config map[string]any) error {
	return validateTemplateConfig(config)
}

func (f *InventoryHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		c := cmdCtx.Actor
		view := &InventoryView{
			Items:    inventoryViews(c, f.items),
			Carried:  len(c.Inventory),
			Capacity: game.MaxInventorySize,
			Weapon:   itemName(c.Equipped(game.SlotWeapon), f.items),
			Armor:    itemName(c.Equipped(game.SlotArmor), f.items),
		}

		output, err := renderView(cmdCtx, defaultInventoryTemplate, view)
		if err != nil {
			return err
		}
		return publish(f.pub, cmdCtx, strings.TrimRight(output, "\n"))
	}, nil
}
