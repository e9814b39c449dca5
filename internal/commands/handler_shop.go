package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/pixil98/go-quest/internal/game"
)

const defaultShopTemplate = `The shop has for sale (you have {{ .Gold }} gold):
{{- range .Items }}
  {{ printf "%-20s" .Name }} {{ printf "%5d" .Cost }} gold  [{{ .Type }}{{ with .Effect }}, {{ . }}{{ end }}]
{{- else }}
  Nothing
{{- end }}`

// ShopView is the data the shop template renders.
type ShopView struct {
	Gold  int
	Items []ItemView
}

// ShopHandlerFactory creates handlers that list the shop's wares.
type ShopHandlerFactory struct {
	items game.ItemCatalog
	pub   Publisher
}

func NewShopHandlerFactory(items game.ItemCatalog, pub Publisher) *ShopHandlerFactory {
	return &ShopHandlerFactory{items: items, pub: pub}
}

func (f *ShopHandlerFactory) ValidateConfig(config map[string]any) error {
	return validateTemplateConfig(config)
}

func (f *ShopHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		view := &ShopView{Gold: cmdCtx.Actor.Gold, Items: catalogViews(f.items)}
		output, err := renderView(cmdCtx, defaultShopTemplate, view)
		if err != nil {
			return err
		}
		return publish(f.pub, cmdCtx, strings.TrimRight(output, "\n"))
	}, nil
}

// BuyHandlerFactory creates handlers that purchase an item.
// Inputs:
//   - item (required): id or name of a catalog item
type BuyHandlerFactory struct {
	items game.ItemCatalog
	pub   Publisher
}

func NewBuyHandlerFactory(items game.ItemCatalog, pub Publisher) *BuyHandlerFactory {
	return &BuyHandlerFactory{items: items, pub: pub}
}

func (f *BuyHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *BuyHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		id, item, err := resolveCatalogItem(cmdCtx.Input("item"), f.items)
		if err != nil {
			return err
		}

		if err := cmdCtx.Actor.Purchase(id, f.items); err != nil {
			return err
		}
		return publishLines(f.pub, cmdCtx,
			fmt.Sprintf("You buy the %s for %d gold. You have %d gold left.", item.Name, item.Cost, cmdCtx.Actor.Gold))
	}, nil
}

// SellHandlerFactory creates handlers that sell a carried item for half
// its cost.
// Inputs:
//   - item (required): id or name of a carried item
type SellHandlerFactory struct {
	items game.ItemCatalog
	pub   Publisher
}

func NewSellHandlerFactory(items game.ItemCatalog, pub Publisher) *SellHandlerFactory {
	return &SellHandlerFactory{items: items, pub: pub}
}

func (f *SellHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *SellHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		id, _, err := resolveCarried(cmdCtx.Actor, cmdCtx.Input("item"), f.items)
		if err != nil {
			return err
		}

		gold, err := cmdCtx.Actor.Sell(id, f.items)
		if err != nil {
			return err
		}
		return publishLines(f.pub, cmdCtx,
			fmt.Sprintf("You sell the %s for %d gold.", itemName(id, f.items), gold))
	}, nil
}
