package shipment

import (
	"context"

	"freightops/internal/core/id"
)

// Filter narrows shipment listings. Zero-value fields are ignored.
type Filter struct {
	Status     *Status
	SupplierID *id.ID
	Limit      int
}

// Repository defines shipment persistence.
type Repository interface {
	// GetByLot retrieves a shipment by its LOT number. NOT_FOUND when absent.
	GetByLot(ctx context.Context, lotNumber string) (*Shipment, error)

	// Create inserts a new shipment. A lot_number collision surfaces as a
	// DUPLICATE_ENTRY apperror, not a generic persistence failure.
	Create(ctx context.Context, s *Shipment) error

	// Update writes the full shipment row.
	Update(ctx context.Context, s *Shipment) error

	// List returns shipments most-recent-first, capped at filter.Limit.
	List(ctx context.Context, f Filter) ([]*Shipment, error)
}
