package notify

import (
	"context"
	"fmt"
	"time"

	"freightops/internal/core/id"
	"freightops/internal/core/security"
	"freightops/pkg/logger"
)

// RecipientResult is the per-recipient outcome returned to the caller.
type RecipientResult struct {
	UserID  string         `json:"user_id"`
	Channel string         `json:"channel"`
	Status  DeliveryStatus `json:"status"`
	Error   string         `json:"error,omitempty"`
}

// Result aggregates one dispatch.
type Result struct {
	Sent    int               `json:"sent_count"`
	Failed  int               `json:"failed_count"`
	Results []RecipientResult `json:"results"`
}

// Dispatcher resolves subscribed recipients and delivers to each in turn.
// Delivery is strictly sequential in resolution order; each attempt is
// logged before the next recipient is tried, and one failure never blocks
// the rest. No retries.
type Dispatcher struct {
	recipients RecipientRepository
	logs       LogRepository
	adapters   map[string]Adapter
	now        func() time.Time
}

// NewDispatcher creates the dispatcher over the given channel adapters.
func NewDispatcher(recipients RecipientRepository, logs LogRepository, adapters []Adapter) *Dispatcher {
	byName := make(map[string]Adapter, len(adapters))
	for _, a := range adapters {
		byName[a.Name()] = a
	}
	return &Dispatcher{
		recipients: recipients,
		logs:       logs,
		adapters:   byName,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Dispatch fans the event out to every entitled, filtered, awake recipient.
func (d *Dispatcher) Dispatch(ctx context.Context, e Event) (*Result, error) {
	candidates, err := d.resolve(ctx, e)
	if err != nil {
		return nil, err
	}

	text := e.Title
	if e.Message != "" {
		text = e.Title + "\n" + e.Message
	}

	result := &Result{Results: []RecipientResult{}}
	localNow := d.now().Format("15:04")

	for _, r := range candidates {
		if e.Channel != "" && r.Channel != e.Channel {
			continue
		}

		if r.FilterExpr != nil {
			matched, ferr := EvalFilter(*r.FilterExpr, e)
			if ferr != nil {
				logger.Warn(ctx, "notification filter error",
					"recipient", r.UserID, "error", ferr)
			}
			if !matched {
				continue
			}
		}

		if r.QuietStart != nil && r.QuietEnd != nil && InQuietWindow(localNow, *r.QuietStart, *r.QuietEnd) {
			continue
		}

		rr := d.deliver(ctx, r, e, text)
		if rr.Status == DeliverySent {
			result.Sent++
		} else {
			result.Failed++
		}
		result.Results = append(result.Results, rr)
	}

	return result, nil
}

// resolve picks the candidate recipients: a specific user's identities, or
// every active recipient whose role is entitled to the event type.
func (d *Dispatcher) resolve(ctx context.Context, e Event) ([]*Recipient, error) {
	if e.TargetUserID != "" {
		return d.recipients.ActiveByUser(ctx, e.TargetUserID)
	}

	all, err := d.recipients.AllActive(ctx)
	if err != nil {
		return nil, err
	}

	perm := PermissionForEvent(e.Type)
	entitled := make([]*Recipient, 0, len(all))
	for _, r := range all {
		if security.HasPermission(r.Role, perm) {
			entitled = append(entitled, r)
		}
	}
	return entitled, nil
}

// deliver sends to one recipient and logs the attempt regardless of outcome.
func (d *Dispatcher) deliver(ctx context.Context, r *Recipient, e Event, text string) RecipientResult {
	rr := RecipientResult{UserID: r.UserID, Channel: r.Channel}

	entry := &Log{
		ID:          id.New(),
		RecipientID: r.ID,
		EventType:   e.Type,
		Channel:     r.Channel,
		CreatedAt:   d.now(),
	}

	adapter, ok := d.adapters[r.Channel]
	var sendErr error
	if !ok {
		sendErr = fmt.Errorf("no adapter for channel %q", r.Channel)
	} else {
		sendErr = adapter.Send(ctx, r.Address, text)
	}

	if sendErr != nil {
		msg := sendErr.Error()
		entry.Status = DeliveryFailed
		entry.Error = &msg
		rr.Status = DeliveryFailed
		rr.Error = msg
		logger.Warn(ctx, "notification delivery failed",
			"recipient", r.UserID, "channel", r.Channel, "error", sendErr)
	} else {
		entry.Status = DeliverySent
		rr.Status = DeliverySent
	}

	if err := d.logs.Append(ctx, entry); err != nil {
		logger.Error(ctx, "notification log write failed",
			"recipient", r.UserID, "error", err)
	}

	return rr
}

// PermissionForEvent maps an event type to the permission a role needs to
// receive it.
func PermissionForEvent(eventType string) string {
	switch eventType {
	case "shipment.costs_added", "shipment.revenue_added", "payment.recorded":
		return security.PermReceiveFinance
	case "shipment.created", "shipment.status_changed":
		return security.PermReceiveOperations
	default:
		return security.PermReceiveAlerts
	}
}

// InQuietWindow reports whether now (local "HH:MM") falls inside the quiet
// window [start, end). Windows where start > end cross midnight and wrap:
// 22:00-06:00 suppresses delivery at 23:00 and at 05:30, not between 06:00
// and 22:00.
func InQuietWindow(now, start, end string) bool {
	if start == "" || end == "" || start == end {
		return false
	}
	if start < end {
		return now >= start && now < end
	}
	// window crosses midnight
	return now >= start || now < end
}
