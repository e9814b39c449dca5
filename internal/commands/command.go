package commands

import (
	"fmt"
	"strings"

	"github.com/pixil98/go-errors"
)

// InputType represents the type of a command input parameter.
type InputType string

const (
	InputTypeString InputType = "string" // Text input (single word if rest=false, multi-word if rest=true)
	InputTypeNumber InputType = "number" // Integer
)

// InputSpec defines an input parameter that a command accepts from user input.
type InputSpec struct {
	Name     string    `json:"name"`
	Type     InputType `json:"type"`
	Required bool      `json:"required"`
	Rest     bool      `json:"rest"` // If true, captures all remaining input
	// Missing is shown instead of the generic argument count error when a
	// required input is not given.
	Missing string `json:"missing,omitempty"`
}

// Command defines a command loaded from JSON.
type Command struct {
	Handler     string         `json:"handler"`
	Category    string         `json:"category"`
	Description string         `json:"description"`
	Aliases     []string       `json:"aliases,omitempty"`
	Priority    int            `json:"priority,omitempty"` // Breaks ties between prefix matches
	Config      map[string]any `json:"config"`             // Config passed to handler, may contain templates
	Inputs      []InputSpec    `json:"inputs"`             // User input parameters
}

func (c *Command) Validate() error {
	if c.Handler == "" {
		return fmt.Errorf("command handler not set")
	}

	el := errors.NewErrorList()
	for i, input := range c.Inputs {
		if input.Name == "" {
			el.Add(fmt.Errorf("input %d: name is required", i))
			continue
		}
		switch input.Type {
		case "":
			el.Add(fmt.Errorf("input %q: type is required", input.Name))
		case InputTypeString, InputTypeNumber:
		default:
			el.Add(fmt.Errorf("input %q: unknown type %q", input.Name, input.Type))
		}
		if input.Rest && i != len(c.Inputs)-1 {
			el.Add(fmt.Errorf("input %q: only the last input can have rest=true", input.Name))
		}
	}

	seen := map[string]bool{}
	for _, alias := range c.Aliases {
		switch {
		case strings.TrimSpace(alias) == "":
			el.Add(fmt.Errorf("aliases may not be blank"))
		case seen[alias]:
			el.Add(fmt.Errorf("alias %q is listed twice", alias))
		}
		seen[alias] = true
	}
	if c.Priority < 0 {
		el.Add(fmt.Errorf("priority must not be negative"))
	}

	return el.Err()
}
