// Package export hands a finished summary to the outside world: a printable
// PDF, a mailto link and a WhatsApp deep link.
package export

import (
	"errors"
	"fmt"
)

// Channel names an export path.
type Channel string

// Export channels.
const (
	ChannelPDF      Channel = "pdf"
	ChannelMailto   Channel = "mailto"
	ChannelWhatsApp Channel = "whatsapp"
)

// ErrNotConfigured is the cause of an export whose channel has no recipient
// or printer configured.
var ErrNotConfigured = errors.New("channel not configured")

// Error represents a failed export. The summary it was built from is still
// valid, so the caller may retry.
type Error struct {
	Channel Channel
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export %s failed: %s: %v", e.Channel, e.Message, e.Cause)
	}
	return fmt.Sprintf("export %s failed: %s", e.Channel, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
