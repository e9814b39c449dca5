package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-quest/internal/commands"
	"github.com/pixil98/go-quest/internal/game"
	"github.com/pixil98/go-quest/internal/storage"
)

type StorageConfig struct {
	Characters CharacterStoreConfig             `json:"characters" envPrefix:"CHARACTERS_"`
	Commands   AssetConfig[*commands.Command]   `json:"commands" envPrefix:"COMMANDS_"`
	Items      AssetConfig[*game.Item]          `json:"items" envPrefix:"ITEMS_"`
	Quests     AssetConfig[*game.Quest]         `json:"quests" envPrefix:"QUESTS_"`
	Enemies    AssetConfig[*game.EnemyTemplate] `json:"enemies" envPrefix:"ENEMIES_"`
}

func (c *StorageConfig) BuildDictionary() (*game.Dictionary, error) {
	chars, err := c.Characters.BuildStore()
	if err != nil {
		return nil, fmt.Errorf("creating character store: %w", err)
	}
	items, err := c.Items.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating item store: %w", err)
	}
	quests, err := c.Quests.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating quest store: %w", err)
	}
	enemies, err := c.Enemies.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating enemy store: %w", err)
	}

	dict := &game.Dictionary{
		Characters: chars,
		Items:      items,
		Quests:     quests,
		Enemies:    enemies,
	}

	if err := dict.Resolve(); err != nil {
		return nil, fmt.Errorf("resolving references: %w", err)
	}

	return dict, nil
}

func (c *StorageConfig) validate() error {
	el := errors.NewErrorList()
	el.Add(c.Characters.Validate())
	el.Add(c.Commands.Validate("commands"))
	el.Add(c.Items.Validate("items"))
	el.Add(c.Quests.Validate("quests"))
	el.Add(c.Enemies.Validate("enemies"))
	return el.Err()
}

type AssetConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path" env:"PATH"`
}

func (c *AssetConfig[T]) Validate(name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	_, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, c.Path, err)
	}

	return nil
}

func (c *AssetConfig[T]) BuildFileStore() (*storage.FileStore[T], error) {
	return storage.NewFileStore[T](c.Path)
}

type CharacterBackend string

const (
	CharacterBackendFile   CharacterBackend = "file"
	CharacterBackendSQLite CharacterBackend = "sqlite"
)

// CharacterStoreConfig picks where character saves live: a directory of
// JSON files or a SQLite database file.
type CharacterStoreConfig struct {
	Backend CharacterBackend `json:"backend" env:"BACKEND"`
	Path    string           `json:"path" env:"PATH"`
}

func (c *CharacterStoreConfig) backend() CharacterBackend {
	if c.Backend == "" {
		return CharacterBackendFile
	}
	return c.Backend
}

func (c *CharacterStoreConfig) Validate() error {
	switch c.backend() {
	case CharacterBackendFile:
		asset := AssetConfig[*game.Character]{Path: c.Path}
		return asset.Validate("characters")
	case CharacterBackendSQLite:
		if c.Path == "" {
			return fmt.Errorf("characters: path is required")
		}
		return nil
	default:
		return fmt.Errorf("characters: unknown backend %q", c.Backend)
	}
}

func (c *CharacterStoreConfig) BuildStore() (storage.Storer[*game.Character], error) {
	switch c.backend() {
	case CharacterBackendFile:
		return storage.NewFileStore[*game.Character](c.Path)
	case CharacterBackendSQLite:
		db, err := storage.OpenSQLite(c.Path)
		if err != nil {
			return nil, err
		}
		return storage.NewSQLiteStore[*game.Character](db, "character")
	default:
		return nil, fmt.Errorf("unknown backend %q", c.Backend)
	}
}
