// Package notify fans an event out to subscribed recipients across external
// messaging channels, one at a time, logging every delivery attempt.
package notify

import (
	"context"
	"time"

	"freightops/internal/core/id"
)

// Channel names understood by the dispatcher.
const (
	ChannelWhatsApp = "whatsapp"
	ChannelTelegram = "telegram"
)

// Event is a notification request. TargetUserID narrows delivery to one
// user's channel identities; Channel restricts delivery to one channel.
type Event struct {
	Type         string `json:"type"`
	Title        string `json:"title"`
	Message      string `json:"message"`
	LotNumber    string `json:"lot_number,omitempty"`
	TargetUserID string `json:"target_user_id,omitempty"`
	Channel      string `json:"channel,omitempty"`
}

// Recipient is one channel identity of a user. QuietStart/QuietEnd are local
// wall-clock "HH:MM" strings; FilterExpr is an optional CEL expression over
// the event attributes.
type Recipient struct {
	ID         id.ID   `db:"id" json:"id"`
	UserID     string  `db:"user_id" json:"user_id"`
	Role       string  `db:"role" json:"role"`
	Channel    string  `db:"channel" json:"channel"`
	Address    string  `db:"address" json:"address"`
	QuietStart *string `db:"quiet_start" json:"quiet_start,omitempty"`
	QuietEnd   *string `db:"quiet_end" json:"quiet_end,omitempty"`
	FilterExpr *string `db:"filter_expr" json:"filter_expr,omitempty"`
	Active     bool    `db:"active" json:"active"`
}

// DeliveryStatus of one notification attempt.
type DeliveryStatus string

const (
	DeliverySent   DeliveryStatus = "sent"
	DeliveryFailed DeliveryStatus = "failed"
)

// Log is one row per recipient per dispatched event.
type Log struct {
	ID          id.ID          `db:"id" json:"id"`
	RecipientID id.ID          `db:"recipient_id" json:"recipient_id"`
	EventType   string         `db:"event_type" json:"event_type"`
	Channel     string         `db:"channel" json:"channel"`
	Status      DeliveryStatus `db:"status" json:"status"`
	Error       *string        `db:"error" json:"error,omitempty"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
}

// RecipientRepository resolves subscribed recipients.
type RecipientRepository interface {
	// ActiveByUser returns a user's active channel identities.
	ActiveByUser(ctx context.Context, userID string) ([]*Recipient, error)

	// AllActive returns every active recipient; role entitlement filtering
	// happens in the dispatcher.
	AllActive(ctx context.Context) ([]*Recipient, error)
}

// LogRepository appends notification delivery logs.
type LogRepository interface {
	Append(ctx context.Context, l *Log) error
}

// Adapter delivers a rendered message over one external messaging API.
type Adapter interface {
	Name() string
	Send(ctx context.Context, address, text string) error
}
