package commands

import (
	"strings"

	"github.com/pixil98/go-quest/internal/display"
)

// publish sends output to the acting player.
func publish(pub Publisher, cmdCtx *CommandContext, output string) error {
	if pub == nil {
		return nil
	}
	return pub.PublishToPlayer(cmdCtx.Session.CharId, []byte(output))
}

// publishLines word-wraps each line and sends them as one message.
func publishLines(pub Publisher, cmdCtx *CommandContext, lines ...string) error {
	wrapped := make([]string, 0, len(lines))
	for _, l := range lines {
		wrapped = append(wrapped, display.Wrap(l))
	}
	return publish(pub, cmdCtx, strings.Join(wrapped, "\n"))
}
