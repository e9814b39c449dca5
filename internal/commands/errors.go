package commands

import (
	"errors"

	"github.com/pixil98/go-quest/internal/display"
	"github.com/pixil98/go-quest/internal/game"
)

// UserError represents an error that should be displayed to the user.
// These are not system failures - just invalid input or usage.
type UserError struct {
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

// NewUserError creates a user-facing error.
func NewUserError(msg string) *UserError {
	return &UserError{Message: msg}
}

// userFacing turns typed game errors into UserErrors so the session shows
// them to the player instead of logging them. Anything else passes through.
func userFacing(err error) error {
	if err == nil {
		return nil
	}

	var ue *UserError
	if errors.As(err, &ue) {
		return err
	}

	if game.KindOf(err) != game.KindUnknown {
		return NewUserError(display.Sentence(err.Error()))
	}
	return err
}
