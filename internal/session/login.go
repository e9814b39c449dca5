package session

import (
	"fmt"
	"unicode"

	"github.com/pixil98/go-quest/internal/display"
	"github.com/pixil98/go-quest/internal/game"
	"github.com/pixil98/go-quest/internal/storage"
)

const maxNameLength = 20

type classChoice game.Class

func (c classChoice) Selector() string {
	return game.Class(c).String()
}

type loginFlow struct {
	chars   storage.Storer[*game.Character]
	classes *selector[classChoice]
}

func newLoginFlow(chars storage.Storer[*game.Character]) *loginFlow {
	choices := make([]classChoice, 0, len(game.Classes))
	for _, c := range game.Classes {
		choices = append(choices, classChoice(c))
	}
	return &loginFlow{chars: chars, classes: newSelector(choices)}
}

// Run asks for a name and loads that character, creating it when no save
// exists.
func (f *loginFlow) Run(t *Terminal) (*game.Character, error) {
	if err := t.WriteLine("Welcome to GoQuest!"); err != nil {
		return nil, err
	}

	for {
		name, err := t.Prompt("By what name do you wish to be known? ", WithValidator(validName))
		if err != nil {
			return nil, err
		}

		char := f.chars.Get(game.CharacterId(name))
		if char != nil {
			if err := t.WriteLine(fmt.Sprintf("Welcome back, %s.", char.Name)); err != nil {
				return nil, err
			}
			return char, nil
		}

		char, err = f.newCharacter(t, display.Title(name))
		if err != nil {
			return nil, err
		}
		if char == nil {
			continue
		}

		return char, nil
	}
}

func validName(str string) (bool, string) {
	if len(str) == 0 || len(str) > maxNameLength {
		return false, "Invalid name, please try another.\n"
	}
	for _, r := range str {
		if !unicode.IsLetter(r) {
			return false, "Invalid name, please try another.\n"
		}
	}
	return true, ""
}

// newCharacter confirms the name, asks for a class and saves the new
// character. A nil character means the player wants to pick another name.
func (f *loginFlow) newCharacter(t *Terminal, name string) (*game.Character, error) {
	ok, err := t.PromptYN(fmt.Sprintf("Did I get that right, %s (Y/N)? ", name))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	class, err := f.classes.Prompt(t, "Choose your class:")
	if err != nil {
		return nil, err
	}

	char, err := game.NewCharacter(name, game.Class(class))
	if err != nil {
		return nil, err
	}

	if err := f.chars.Save(char.Id(), char); err != nil {
		return nil, fmt.Errorf("saving new character: %w", err)
	}

	if err := t.WriteLine(fmt.Sprintf("Welcome, %s the %s.", char.Name, char.Class)); err != nil {
		return nil, err
	}
	return char, nil
}
