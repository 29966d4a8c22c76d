package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/lox/blackjack/internal/blackjack"
)

// PrompterConfig configures a readline prompter. Zero values use the
// process's terminal.
type PrompterConfig struct {
	Stdin       io.ReadCloser
	Stdout      io.Writer
	HistoryFile string
	NoColor     bool
}

// Prompter reads answers from the terminal with line editing
type Prompter struct {
	rl     *readline.Instance
	styles Styles
}

// NewPrompter creates a terminal prompter
func NewPrompter(cfg PrompterConfig) (*Prompter, error) {
	rl, err := readline.NewEx(&readline.Config{
		Stdin:           cfg.Stdin,
		Stdout:          cfg.Stdout,
		HistoryFile:     cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up terminal: %w", err)
	}

	return &Prompter{
		rl:     rl,
		styles: NewStyles(rl.Stdout(), cfg.NoColor),
	}, nil
}

// Prompt shows message and returns the raw line typed. End of input or an
// interrupt ends the session with blackjack.ErrAborted.
func (p *Prompter) Prompt(ctx context.Context, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	p.rl.SetPrompt(p.styles.Prompt.Render(strings.TrimRight(message, " ")) + " ")
	line, err := p.rl.Readline()
	switch {
	case errors.Is(err, readline.ErrInterrupt), errors.Is(err, io.EOF):
		return "", blackjack.ErrAborted
	case err != nil:
		return "", fmt.Errorf("read answer: %w", err)
	}
	return line, nil
}

// Close restores the terminal
func (p *Prompter) Close() error {
	return p.rl.Close()
}
