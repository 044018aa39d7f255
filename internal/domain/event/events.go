// Package event defines the domain events the core publishes. The core is a
// publisher only: subscribers (UI invalidation, downstream sync) live outside
// this module and drain the transactional outbox.
package event

import (
	"context"

	"freightops/internal/core/id"
)

// Event types published by the automation core.
const (
	TypeShipmentCreated = "shipment.created"
	TypeStatusChanged   = "shipment.status_changed"
	TypeCostsAdded      = "shipment.costs_added"
	TypeRevenueAdded    = "shipment.revenue_added"
	TypePaymentRecorded = "payment.recorded"
)

// Event is a typed domain event with a JSON-serializable payload.
type Event struct {
	AggregateType string
	AggregateID   id.ID
	Type          string
	Payload       any
}

// Publisher writes events for later delivery. The postgres implementation is
// a transactional outbox: Publish must run inside the transaction that makes
// the state change it describes.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}
