package automation

import (
	"context"
	"encoding/json"
	"time"

	"freightops/internal/core/apperror"
	"freightops/internal/core/id"
	"freightops/pkg/logger"
)

// Invocation describes one inbound command for audit purposes.
type Invocation struct {
	Source  string
	Action  string
	Request []byte
}

// bodyHints are the audit-relevant fields peeked from any command body.
type bodyHints struct {
	Source    string `json:"source"`
	LotNumber string `json:"lot_number"`
}

// PeekHints extracts the source channel and LOT number from a raw command
// body without binding the full DTO. Malformed bodies yield empty hints; the
// command's own binding reports the real error.
func PeekHints(raw []byte) (source, lotNumber string) {
	var h bodyHints
	_ = json.Unmarshal(raw, &h)
	return h.Source, h.LotNumber
}

// Gateway is the shared command shell. It runs the command function and
// always concludes by appending an AutomationLog row - the full response on
// success, the error message on failure - before the result is returned.
type Gateway struct {
	logs LogRepository
	now  func() time.Time
}

// NewGateway creates the command gateway.
func NewGateway(logs LogRepository) *Gateway {
	return &Gateway{
		logs: logs,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Run executes fn and writes the audit row for this invocation. The returned
// payload is fn's response; on failure the error is returned unchanged after
// being logged with success=false.
func (g *Gateway) Run(ctx context.Context, inv Invocation, fn func(ctx context.Context) (any, error)) (any, error) {
	payload, err := fn(ctx)

	entry := &LogEntry{
		ID:          id.New(),
		Source:      inv.Source,
		Action:      inv.Action,
		RequestBody: inv.Request,
		CreatedAt:   g.now(),
	}
	if _, lot := PeekHints(inv.Request); lot != "" {
		entry.LotNumber = &lot
	}

	if err != nil {
		msg := err.Error()
		if appErr, ok := apperror.AsAppError(err); ok {
			msg = appErr.Message
		}
		entry.Success = false
		entry.ErrorMessage = &msg
	} else {
		entry.Success = true
		if body, marshalErr := json.Marshal(payload); marshalErr == nil {
			entry.ResponseBody = body
		}
	}

	if logErr := g.logs.Append(ctx, entry); logErr != nil {
		// The audit row is the sole trail; its loss is loud but does not
		// retract an already-committed business write.
		logger.Error(ctx, "automation log write failed",
			"action", inv.Action,
			"error", logErr,
		)
	}

	return payload, err
}
