package game

import "errors"

// Kind groups errors by what the caller can do about them.
type Kind int

const (
	KindUnknown Kind = iota
	// KindNotFound means a character, quest, item or target does not exist.
	KindNotFound
	// KindInvalidState means the operation is not legal right now.
	KindInvalidState
	// KindResourceExhausted means a limit such as inventory space or gold was hit.
	KindResourceExhausted
	// KindValidation means the input or reference data is malformed.
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalidState:
		return "invalid state"
	case KindResourceExhausted:
		return "resource exhausted"
	case KindValidation:
		return "validation error"
	default:
		return "unknown"
	}
}

// Error is a typed failure returned by game operations.
type Error struct {
	Kind Kind
	Code string
	msg  string
}

func (e *Error) Error() string {
	return e.msg
}

func newError(kind Kind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, msg: msg}
}

var (
	ErrItemNotFound       = newError(KindNotFound, "item_not_found", "item not found")
	ErrQuestNotFound      = newError(KindNotFound, "quest_not_found", "quest not found")
	ErrInvalidTarget      = newError(KindNotFound, "invalid_target", "invalid target")
	ErrCharacterDead      = newError(KindInvalidState, "character_dead", "character is dead")
	ErrQuestNotActive     = newError(KindInvalidState, "quest_not_active", "quest is not active")
	ErrAlreadyCompleted   = newError(KindInvalidState, "quest_already_completed", "quest already completed")
	ErrRequirementsNotMet = newError(KindInvalidState, "quest_requirements_not_met", "quest requirements not met")
	ErrInsufficientLevel  = newError(KindInvalidState, "insufficient_level", "level too low")
	ErrAbilityOnCooldown  = newError(KindInvalidState, "ability_on_cooldown", "ability is on cooldown")
	ErrCombatNotActive    = newError(KindInvalidState, "combat_not_active", "combat is not active")
	ErrItemEquipped       = newError(KindInvalidState, "item_equipped", "an item can't be both carried and equipped")
	ErrInventoryFull      = newError(KindResourceExhausted, "inventory_full", "inventory is full")
	ErrInsufficientGold   = newError(KindResourceExhausted, "insufficient_gold", "not enough gold")
	ErrInvalidClass       = newError(KindValidation, "invalid_class", "invalid character class")
	ErrInvalidItemType    = newError(KindValidation, "invalid_item_type", "invalid item type")
	ErrInvalidAmount      = newError(KindValidation, "invalid_amount", "invalid amount")
	ErrInvalidName        = newError(KindValidation, "invalid_name", "invalid name")
	ErrInvalidReference   = newError(KindValidation, "invalid_reference", "invalid catalog reference")
)

// KindOf reports the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return KindUnknown
}
