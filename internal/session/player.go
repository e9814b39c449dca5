package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/pixil98/go-quest/internal/commands"
	"github.com/pixil98/go-quest/internal/game"
)

const msgBuffer = 64

// Player is one connected session. Commands and autosaves both take mu so
// the character is never saved halfway through a command.
type Player struct {
	term    *Terminal
	handler *commands.Handler

	mu    sync.Mutex
	state *commands.State

	msgs chan []byte
}

func newPlayer(term *Terminal, char *game.Character, handler *commands.Handler) *Player {
	return &Player{
		term:    term,
		handler: handler,
		state:   &commands.State{CharId: char.Id(), Character: char},
		msgs:    make(chan []byte, msgBuffer),
	}
}

// Id returns the player's character id
func (p *Player) Id() string {
	return p.state.CharId
}

// deliver queues a published message for display. It never blocks the
// publisher; a session that has stopped reading drops the message.
func (p *Player) deliver(data []byte) {
	select {
	case p.msgs <- data:
	default:
		slog.Warn("dropping message for slow session", "charId", p.Id())
	}
}

// Play runs the command loop until the player quits, the connection closes
// or ctx is canceled. Command output arrives through msgs and is followed
// by a fresh prompt.
func (p *Player) Play(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)

	// Read input lines into a channel
	inputChan := make(chan string)
	inputErrChan := make(chan error, 1)
	go func() {
		defer close(inputChan)
		for {
			line, err := p.term.ReadLine()
			if err != nil {
				inputErrChan <- err
				return
			}
			select {
			case inputChan <- line:
			case <-done:
				return
			}
		}
	}()

	// Show the character sheet on login
	if err := p.exec(ctx, "score"); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			p.flush()
			return ctx.Err()

		case msg := <-p.msgs:
			if err := p.term.WriteLine(string(msg)); err != nil {
				return err
			}
			if err := p.prompt(); err != nil {
				return err
			}

		case line, ok := <-inputChan:
			if !ok {
				p.flush()
				if err := <-inputErrChan; err != nil && !isClosed(err) {
					return err
				}
				return nil
			}

			parts := strings.Fields(line)
			if len(parts) == 0 {
				if err := p.prompt(); err != nil {
					return err
				}
				continue
			}

			if err := p.exec(ctx, parts[0], parts[1:]...); err != nil {
				return err
			}

			if p.quitting() {
				p.flush()
				return p.term.WriteLine("Goodbye!")
			}
		}
	}
}

// exec runs one command. User errors are shown to the player; anything
// else ends the session.
func (p *Player) exec(ctx context.Context, cmdName string, args ...string) error {
	p.mu.Lock()
	err := p.handler.Exec(ctx, p.state, cmdName, args...)
	p.mu.Unlock()

	if err == nil {
		return nil
	}

	var userErr *commands.UserError
	if !errors.As(err, &userErr) {
		return fmt.Errorf("command %q failed: %w", cmdName, err)
	}
	if err := p.term.WriteLine(userErr.Message); err != nil {
		return err
	}
	return p.prompt()
}

// flush writes any output still queued for the player.
func (p *Player) flush() {
	for {
		select {
		case msg := <-p.msgs:
			if err := p.term.WriteLine(string(msg)); err != nil {
				return
			}
		default:
			return
		}
	}
}

func (p *Player) quitting() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Quit
}

func (p *Player) prompt() error {
	p.mu.Lock()
	prompt := promptFor(p.state)
	p.mu.Unlock()

	_, err := p.term.Write([]byte(prompt))
	return err
}

func promptFor(state *commands.State) string {
	c := state.Character
	if state.InCombat() {
		e := state.Battle.Enemy()
		return fmt.Sprintf("[%d/%dHP | %s %d/%dHP] > ", c.Health(), c.MaxHealth(), e.Name, e.Health(), e.MaxHealth())
	}
	return fmt.Sprintf("[%d/%dHP] > ", c.Health(), c.MaxHealth())
}
