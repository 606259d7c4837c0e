package ui

import (
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"

	"github.com/lumina-ai/lumina-console/internal/logging"
)

// ErrClipboardUnavailable is returned when no clipboard is configured
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// Clipboard receives text the operator copies out of the console
type Clipboard interface {
	Copy(text string) error
}

// TerminalClipboard copies with the OSC52 escape sequence. The terminal on the
// other end of out sets its own clipboard, so this also works over SSH.
type TerminalClipboard struct {
	mu     sync.Mutex
	out    io.Writer
	screen bool
	tmux   bool
}

// NewTerminalClipboard writes sequences to out. environ is the viewer's environment,
// used to wrap the sequence for tmux or screen.
func NewTerminalClipboard(out io.Writer, environ []string) *TerminalClipboard {
	c := &TerminalClipboard{out: out}
	for _, kv := range environ {
		key, value, _ := strings.Cut(kv, "=")
		switch {
		case key == "TMUX" && value != "":
			c.tmux = true
		case key == "TERM" && strings.HasPrefix(value, "screen"):
			c.screen = true
		}
	}
	return c
}

// Copy writes text as one OSC52 sequence
func (c *TerminalClipboard) Copy(text string) error {
	seq := osc52.New(text)
	switch {
	case c.tmux:
		seq = seq.Tmux()
	case c.screen:
		seq = seq.Screen()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := seq.WriteTo(c.out)
	return err
}

// SystemClipboard copies to the clipboard of the machine running the console and
// falls back to Fallback when that machine has no clipboard utility
type SystemClipboard struct {
	Fallback Clipboard
}

// Copy implements Clipboard
func (c SystemClipboard) Copy(text string) error {
	if !clipboard.Unsupported {
		err := clipboard.WriteAll(text)
		if err == nil {
			return nil
		}
		logging.Logger.Debug("System clipboard write failed", "error", err)
	}
	if c.Fallback == nil {
		return ErrClipboardUnavailable
	}
	return c.Fallback.Copy(text)
}
