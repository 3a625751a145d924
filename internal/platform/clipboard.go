package platform

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aymanbagabas/go-osc52/v2"
)

// Clipboard copies text with the OSC 52 terminal escape, which also works
// over SSH
type Clipboard struct {
	w    io.Writer
	tmux bool
	// screen wraps the sequence for GNU screen
	screen bool
}

// NewClipboard writes escapes to w, wrapped for tmux or screen when the
// environment says we run inside one
func NewClipboard(w io.Writer) *Clipboard {
	if w == nil {
		w = os.Stderr
	}
	return &Clipboard{
		w:      w,
		tmux:   os.Getenv("TMUX") != "",
		screen: strings.HasPrefix(os.Getenv("TERM"), "screen"),
	}
}

// Copy puts text on the clipboard
func (c *Clipboard) Copy(text string) error {
	seq := osc52.New(text)
	switch {
	case c.tmux:
		seq = seq.Tmux()
	case c.screen:
		seq = seq.Screen()
	}
	if _, err := seq.WriteTo(c.w); err != nil {
		return fmt.Errorf("write clipboard sequence: %w", err)
	}
	return nil
}
