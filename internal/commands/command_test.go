package commands

import (
	"testing"

	"github.com/pixil98/go-quest/internal/storage"
	"github.com/pixil98/go-testutil"
)

func TestCommand_Validate(t *testing.T) {
	itemInput := InputSpec{Name: "item", Type: InputTypeString, Required: true, Rest: true, Missing: "Which item?"}

	tests := map[string]struct {
		cmd    Command
		expErr string
	}{
		"no handler": {
			cmd:    Command{Description: "Equip a weapon or armor."},
			expErr: "command handler not set",
		},
		"score takes no inputs": {
			cmd: Command{Handler: "score", Aliases: []string{"stats"}},
		},
		"equip with aliases": {
			cmd: Command{Handler: "equip", Aliases: []string{"wear", "wield"}, Inputs: []InputSpec{itemInput}},
		},
		"explore with optional enemy": {
			cmd: Command{Handler: "explore", Inputs: []InputSpec{{Name: "enemy", Type: InputTypeString}}},
		},
		"unnamed quest input": {
			cmd:    Command{Handler: "accept", Inputs: []InputSpec{{Type: InputTypeString, Rest: true}}},
			expErr: "input 0: name is required",
		},
		"untyped quest input": {
			cmd:    Command{Handler: "accept", Inputs: []InputSpec{{Name: "quest"}}},
			expErr: `input "quest": type is required`,
		},
		"bad input type": {
			cmd:    Command{Handler: "buy", Inputs: []InputSpec{{Name: "item", Type: "item"}}},
			expErr: `input "item": unknown type "item"`,
		},
		"rest before another input": {
			cmd: Command{Handler: "sell", Inputs: []InputSpec{
				itemInput,
				{Name: "count", Type: InputTypeNumber},
			}},
			expErr: `input "item": only the last input can have rest=true`,
		},
		"blank alias": {
			cmd:    Command{Handler: "flee", Aliases: []string{"run", " "}},
			expErr: "aliases may not be blank",
		},
		"repeated alias": {
			cmd:    Command{Handler: "equip", Aliases: []string{"wear", "wear"}, Inputs: []InputSpec{itemInput}},
			expErr: `alias "wear" is listed twice`,
		},
		"negative priority": {
			cmd:    Command{Handler: "attack", Priority: -1},
			expErr: "priority must not be negative",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.cmd.Validate()
			if tt.expErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			testutil.AssertErrorContains(t, err, tt.expErr)
		})
	}
}

func TestShippedCommands(t *testing.T) {
	store, err := storage.NewFileStore[*Command]("../../assets/commands")
	if err != nil {
		t.Fatalf("loading command assets: %v", err)
	}

	all := store.GetAll()
	testutil.AssertEqual(t, "count", len(all), 24)

	for _, id := range []string{"equip", "accept", "explore", "buy", "sell", "flee", "quit"} {
		if all[id] == nil {
			t.Errorf("command %q not shipped", id)
		}
	}
	testutil.AssertEqual(t, "equip aliases", all["equip"].Aliases, []string{"wear", "wield"})
	testutil.AssertEqual(t, "accept input", all["accept"].Inputs[0].Name, "quest")
	testutil.AssertEqual(t, "explore enemy optional", all["explore"].Inputs[0].Required, false)
}
