package report

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// Clipboard copies the modified value to the system clipboard.
type Clipboard struct {
	// write is swapped in tests; nil means the system clipboard.
	write func(string) error
}

// NewClipboard returns a notifier writing to the system clipboard.
func NewClipboard() *Clipboard {
	return &Clipboard{}
}

// Notify implements Notifier.
func (c *Clipboard) Notify(n Notification) error {
	write := c.write
	if write == nil {
		if clipboard.Unsupported {
			return fmt.Errorf("clipboard: unsupported on this system")
		}
		write = clipboard.WriteAll
	}
	if err := write(n.Modified.String()); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	return nil
}
