// Package shipment owns the shipment record and its lifecycle transitions.
package shipment

import (
	"fmt"
	"time"

	"freightops/internal/core/id"
)

// Status is the coarse shipment state. Transitions are not validated against
// an ordering: any status may be written at any time.
type Status string

const (
	StatusPending            Status = "pending"
	StatusInTransit          Status = "in-transit"
	StatusDocumentsSubmitted Status = "documents-submitted"
	StatusCompleted          Status = "completed"
)

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInTransit, StatusDocumentsSubmitted, StatusCompleted:
		return true
	}
	return false
}

// Shipment is identified by its LOT number (business key). Milestone flags are
// independent of Status and each carries its own date. Notes are an
// append-only log of channel-tagged entries; never overwritten.
type Shipment struct {
	ID         id.ID  `db:"id" json:"id"`
	LotNumber  string `db:"lot_number" json:"lot_number"`
	Status     Status `db:"status" json:"status"`
	SupplierID *id.ID `db:"supplier_id" json:"supplier_id,omitempty"`
	ClientID   *id.ID `db:"client_id" json:"client_id,omitempty"`

	DocumentSubmitted     bool       `db:"document_submitted" json:"document_submitted"`
	DocumentSubmittedDate *time.Time `db:"document_submitted_date" json:"document_submitted_date,omitempty"`
	TelexReleased         bool       `db:"telex_released" json:"telex_released"`
	TelexReleasedDate     *time.Time `db:"telex_released_date" json:"telex_released_date,omitempty"`
	DeliveryDate          *time.Time `db:"delivery_date" json:"delivery_date,omitempty"`

	Notes     string    `db:"notes" json:"notes"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// New creates a shipment in pending status for the given LOT.
func New(lotNumber string, supplierID, clientID *id.ID) *Shipment {
	now := time.Now().UTC()
	return &Shipment{
		ID:         id.New(),
		LotNumber:  lotNumber,
		Status:     StatusPending,
		SupplierID: supplierID,
		ClientID:   clientID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// AppendNote appends a channel-tagged note to the shipment's note log.
func (s *Shipment) AppendNote(source, note string) {
	if note == "" {
		return
	}
	entry := fmt.Sprintf("[%s] %s", source, note)
	if s.Notes == "" {
		s.Notes = entry
		return
	}
	s.Notes = s.Notes + "\n" + entry
}
