package ledger

import (
	"context"
	"time"

	"freightops/internal/core/id"
)

// CostsRepository persists the one-to-one shipment costs row.
type CostsRepository interface {
	// GetByShipment retrieves the costs row. NOT_FOUND when none exists yet.
	GetByShipment(ctx context.Context, shipmentID id.ID) (*ShipmentCosts, error)

	// Upsert writes the costs row keyed by shipment_id: first write inserts,
	// later writes replace the same row. Never a second row per shipment.
	Upsert(ctx context.Context, c *ShipmentCosts) error
}

// EntryRepository appends and reads supplier ledger postings.
type EntryRepository interface {
	// Append inserts an immutable ledger entry.
	Append(ctx context.Context, e *SupplierLedgerEntry) error

	// RecentBySupplier returns the latest entries, newest first.
	RecentBySupplier(ctx context.Context, supplierID id.ID, limit int) ([]*SupplierLedgerEntry, error)
}

// PaymentRepository persists payment schedule entries.
type PaymentRepository interface {
	Create(ctx context.Context, p *PaymentScheduleEntry) error

	// ScheduledBetween returns scheduled payments with a due date in
	// [from, to), ordered by due date.
	ScheduledBetween(ctx context.Context, from, to time.Time) ([]*PaymentScheduleEntry, error)
}
