package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrTooManyTries is returned by Prompt when WithMaxTries is exhausted.
var ErrTooManyTries = errors.New("too many tries")

// Terminal is a line oriented view of a connection. Every read goes through
// one buffer so input typed ahead of a prompt is never lost.
type Terminal struct {
	w  io.Writer
	br *bufio.Reader
}

func NewTerminal(rw io.ReadWriter) *Terminal {
	return &Terminal{w: rw, br: bufio.NewReader(rw)}
}

func (t *Terminal) Write(p []byte) (int, error) {
	return t.w.Write(p)
}

// WriteLine writes msg followed by a blank line.
func (t *Terminal) WriteLine(msg string) error {
	_, err := io.WriteString(t.w, msg+"\n\n")
	return err
}

// ReadLine returns the next line without its line ending. A final line
// without a newline is returned before io.EOF.
func (t *Terminal) ReadLine() (string, error) {
	line, err := t.br.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

type promptValidator func(string) (bool, string)

type promptConfig struct {
	tries     int
	validator promptValidator
}

type PromptOption func(*promptConfig)

// WithValidator rejects input the validator returns false for, writing its
// message and prompting again.
func WithValidator(v promptValidator) PromptOption {
	return func(cfg *promptConfig) {
		cfg.validator = v
	}
}

func WithMaxTries(i int) PromptOption {
	return func(cfg *promptConfig) {
		cfg.tries = i
	}
}

// Prompt writes prompt and reads a trimmed line of input.
func (t *Terminal) Prompt(prompt string, opts ...PromptOption) (string, error) {
	config := &promptConfig{}
	for _, opt := range opts {
		opt(config)
	}

	tries := 0
	for {
		if _, err := io.WriteString(t.w, prompt); err != nil {
			return "", err
		}

		input, err := t.ReadLine()
		if err != nil {
			return "", err
		}
		input = strings.TrimSpace(input)

		if config.validator != nil {
			ok, msg := config.validator(input)
			if !ok {
				if _, err := io.WriteString(t.w, msg); err != nil {
					return "", err
				}

				tries++
				if config.tries > 0 && config.tries == tries {
					_, _ = io.WriteString(t.w, "Too many tries.\n")
					return "", fmt.Errorf("%w: %s", ErrTooManyTries, strings.TrimSpace(prompt))
				}
				continue
			}
		}

		return input, nil
	}
}

// PromptYN asks a yes or no question.
func (t *Terminal) PromptYN(prompt string) (bool, error) {
	str, err := t.Prompt(prompt, WithValidator(
		func(str string) (bool, string) {
			switch strings.ToLower(str) {
			case "y", "yes", "n", "no":
				return true, ""
			default:
				return false, "Enter 'yes' or 'no'.\n"
			}
		},
	))
	if err != nil {
		return false, err
	}

	switch strings.ToLower(str) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
