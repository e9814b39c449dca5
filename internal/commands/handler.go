package commands

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pixil98/go-quest/internal/game"
	"github.com/pixil98/go-quest/internal/storage"
)

// ParsedInput represents a validated and parsed command input.
type ParsedInput struct {
	Spec  *InputSpec
	Raw   string // Original player input
	Value any    // Parsed value: int for number, string for string
}

// CommandContext is what a compiled command runs against.
type CommandContext struct {
	Session *State
	Actor   *game.Character
	// Inputs holds parsed input values keyed by input name.
	Inputs map[string]any
	// Config holds the command's string config with inputs already expanded.
	Config map[string]string
}

// Input returns a string input, or "" if it was not given.
func (c *CommandContext) Input(name string) string {
	switch v := c.Inputs[name].(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	default:
		return ""
	}
}

// CommandFunc is the signature for compiled command functions.
type CommandFunc func(ctx context.Context, cmdCtx *CommandContext) error

// HandlerFactory creates CommandFuncs from command configurations.
type HandlerFactory interface {
	// ValidateConfig validates that the config contains required fields.
	ValidateConfig(config map[string]any) error
	// Create creates a CommandFunc. It is called once per command.
	Create() (CommandFunc, error)
}

// Publisher delivers output to a connected player.
type Publisher interface {
	PublishToPlayer(charId string, data []byte) error
}

// compiledCommand holds a command that's been validated and compiled.
type compiledCommand struct {
	name    string
	cmd     *Command
	cmdFunc CommandFunc
}

type Handler struct {
	store     storage.Storer[*Command]
	factories map[string]HandlerFactory
	compiled  map[string]*compiledCommand
	// items names equipment in the actor view config templates see.
	items game.ItemCatalog
}

func NewHandler(c storage.Storer[*Command]) *Handler {
	return &Handler{
		store:     c,
		factories: make(map[string]HandlerFactory),
		compiled:  make(map[string]*compiledCommand),
	}
}

// RegisterFactory registers a handler factory by name.
// The name must match the "handler" field in command JSON definitions.
func (h *Handler) RegisterFactory(name string, factory HandlerFactory) error {
	if name == "" {
		return fmt.Errorf("handler name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("handler factory cannot be nil")
	}
	if _, exists := h.factories[name]; exists {
		return fmt.Errorf("handler factory %q already registered", name)
	}
	h.factories[name] = factory
	return nil
}

// CompileAll compiles all commands from the store.
// Call this after all handler factories have been registered.
func (h *Handler) CompileAll() error {
	for id, cmd := range h.store.GetAll() {
		err := h.compile(id, cmd)
		if err != nil {
			return fmt.Errorf("compiling command %q: %w", id, err)
		}
	}
	return nil
}

func (h *Handler) compile(id string, cmd *Command) error {
	factory, ok := h.factories[cmd.Handler]
	if !ok {
		return fmt.Errorf("unknown handler %q", cmd.Handler)
	}

	if err := factory.ValidateConfig(cmd.Config); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}

	cmdFunc, err := factory.Create()
	if err != nil {
		return fmt.Errorf("creating handler: %w", err)
	}

	cc := &compiledCommand{
		name:    id,
		cmd:     cmd,
		cmdFunc: cmdFunc,
	}
	id = strings.ToLower(id)
	if other, exists := h.compiled[id]; exists {
		return fmt.Errorf("command %q conflicts with %q", id, other.name)
	}
	for _, alias := range cmd.Aliases {
		alias = strings.ToLower(alias)
		if other, exists := h.compiled[alias]; exists {
			return fmt.Errorf("alias %q conflicts with %q", alias, other.name)
		}
	}

	h.compiled[id] = cc
	for _, alias := range cmd.Aliases {
		h.compiled[strings.ToLower(alias)] = cc
	}
	return nil
}

// Exec executes a command with the given arguments.
func (h *Handler) Exec(ctx context.Context, state *State, cmdName string, rawArgs ...string) error {
	compiled, err := h.resolve(cmdName)
	if err != nil {
		return err
	}

	parsed, err := h.parseInputs(compiled.cmd.Inputs, rawArgs)
	if err != nil {
		return err
	}

	inputs := make(map[string]any, len(parsed))
	for _, in := range parsed {
		inputs[in.Spec.Name] = in.Value
	}

	config, err := h.expandConfig(compiled.cmd.Config, state.Character, inputs)
	if err != nil {
		return fmt.Errorf("expanding config for %q: %w", compiled.name, err)
	}

	cmdCtx := &CommandContext{
		Session: state,
		Actor:   state.Character,
		Inputs:  inputs,
		Config:  config,
	}
	return userFacing(compiled.cmdFunc(ctx, cmdCtx))
}

// resolve finds a command by exact name or alias, then by unique prefix.
// Among several prefix matches the highest priority wins.
func (h *Handler) resolve(input string) (*compiledCommand, error) {
	input = strings.ToLower(input)
	if cc, ok := h.compiled[input]; ok {
		return cc, nil
	}

	var matches []string
	for key := range h.compiled {
		if strings.HasPrefix(key, input) {
			matches = append(matches, key)
		}
	}
	if len(matches) == 0 {
		return nil, NewUserError(fmt.Sprintf("Command %q is unknown.", input))
	}

	sort.Slice(matches, func(i, j int) bool {
		pi, pj := h.compiled[matches[i]].cmd.Priority, h.compiled[matches[j]].cmd.Priority
		if pi != pj {
			return pi > pj
		}
		return matches[i] < matches[j]
	})

	best := h.compiled[matches[0]]
	if len(matches) > 1 {
		var tied []string
		for _, m := range matches {
			cc := h.compiled[m]
			if cc.cmd.Priority == best.cmd.Priority && cc != best {
				tied = append(tied, m)
			}
		}
		if len(tied) > 0 {
			names := append([]string{matches[0]}, tied...)
			sort.Strings(names)
			return nil, NewUserError(fmt.Sprintf("Did you mean: %s?", strings.Join(names, ", ")))
		}
	}
	return best, nil
}

// parseInputs validates raw string arguments against input specs.
func (h *Handler) parseInputs(specs []InputSpec, rawArgs []string) ([]ParsedInput, error) {
	hasRest := len(specs) > 0 && specs[len(specs)-1].Rest
	if !hasRest && len(rawArgs) > len(specs) {
		return nil, NewUserError(fmt.Sprintf("Expected at most %d argument(s), got %d.", len(specs), len(rawArgs)))
	}

	inputs := make([]ParsedInput, 0, len(specs))
	argIndex := 0

	for i := range specs {
		spec := &specs[i]

		if argIndex >= len(rawArgs) {
			if spec.Required {
				if spec.Missing != "" {
					return nil, NewUserError(spec.Missing)
				}
				return nil, NewUserError(fmt.Sprintf("Expected at least %d argument(s), got %d.", requiredCount(specs), len(rawArgs)))
			}
			continue
		}

		var raw string
		if spec.Rest {
			raw = strings.Join(rawArgs[argIndex:], " ")
			argIndex = len(rawArgs)
		} else {
			raw = rawArgs[argIndex]
			argIndex++
		}

		value, err := h.parseValue(spec.Type, raw)
		if err != nil {
			return nil, err
		}

		inputs = append(inputs, ParsedInput{
			Spec:  spec,
			Raw:   raw,
			Value: value,
		})
	}

	return inputs, nil
}

func requiredCount(specs []InputSpec) int {
	n := 0
	for _, spec := range specs {
		if spec.Required {
			n++
		}
	}
	return n
}

// parseValue parses a raw string into the appropriate type.
func (h *Handler) parseValue(inputType InputType, raw string) (any, error) {
	switch inputType {
	case InputTypeString:
		return raw, nil

	case InputTypeNumber:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, NewUserError(fmt.Sprintf("%q is not a valid number.", raw))
		}
		return n, nil

	default:
		return nil, fmt.Errorf("unknown parameter type %q", inputType)
	}
}

// TemplateKey is the config key holding an output template override. It
// is rendered against the command's view, not its inputs, so it is passed
// through unexpanded.
const TemplateKey = "template"

// expandConfig renders every string config value against the actor and
// the parsed inputs. Non-string values are dropped.
func (h *Handler) expandConfig(config map[string]any, actor *game.Character, inputs map[string]any) (map[string]string, error) {
	out := make(map[string]string, len(config))
	ctx := &InputContext{Actor: CharacterViewFrom(actor, h.items), Inputs: inputs}
	for k, v := range config {
		s, ok := v.(string)
		if !ok {
			continue
		}
		if k == TemplateKey {
			out[k] = s
			continue
		}
		expanded, err := expandInputTemplate(s, ctx)
		if err != nil {
			return nil, fmt.Errorf("config %q: %w", k, err)
		}
		out[k] = expanded
	}
	return out, nil
}
