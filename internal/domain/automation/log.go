// Package automation provides the shared command shell: every inbound
// command runs through the Gateway, which concludes each invocation by
// appending one AutomationLog row (success or failure) and returning a
// channel-formatted response alongside the structured payload.
package automation

import (
	"context"
	"time"

	"freightops/internal/core/id"
)

// LogEntry is one row per gateway invocation. Write-once, append-only, the
// system's sole audit trail.
type LogEntry struct {
	ID        id.ID   `db:"id" json:"id"`
	Source    string  `db:"source" json:"source"`
	Action    string  `db:"action" json:"action"`
	LotNumber *string `db:"lot_number" json:"lot_number,omitempty"`

	RequestBody  []byte `db:"request_body" json:"request_body,omitempty"`
	ResponseBody []byte `db:"response_body" json:"response_body,omitempty"`

	Success      bool    `db:"success" json:"success"`
	ErrorMessage *string `db:"error_message" json:"error_message,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// LogRepository appends automation log rows. The postgres implementation
// compresses oversized payloads transparently.
type LogRepository interface {
	Append(ctx context.Context, entry *LogEntry) error
}
