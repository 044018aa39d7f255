package shipment

import (
	"context"
	"time"

	appctx "freightops/internal/core/context"
	"freightops/internal/core/tx"
	"freightops/internal/domain/event"
	"freightops/internal/domain/party"
	"freightops/pkg/logger"
)

// CreateInput is the first contact with a LOT. Supplier and client are
// resolved by fragment and created when missing.
type CreateInput struct {
	LotNumber    string
	SupplierName string
	ClientName   string
	Currency     string // supplier currency, defaulted when empty
	Note         string
}

// UpdateInput carries the optional mutations of an update_status command.
// Nil fields are left untouched. Milestone dates default to today when the
// flag is set without an explicit date.
type UpdateInput struct {
	LotNumber string

	Status *Status

	DocumentSubmitted     *bool
	DocumentSubmittedDate *time.Time
	TelexReleased         *bool
	TelexReleasedDate     *time.Time
	DeliveryDate          *time.Time

	Note string
}

// CreateResult carries the new shipment together with the resolved parties,
// so callers can render them without a second lookup.
type CreateResult struct {
	Shipment *Shipment
	Supplier *party.Supplier
	Client   *party.Client
}

// Service applies lifecycle commands to shipment records.
type Service struct {
	shipments Repository
	resolver  *party.Resolver
	txManager tx.Manager
	events    event.Publisher
	now       func() time.Time
}

// NewService creates the lifecycle handler.
func NewService(shipments Repository, resolver *party.Resolver, txManager tx.Manager, events event.Publisher) *Service {
	return &Service{
		shipments: shipments,
		resolver:  resolver,
		txManager: txManager,
		events:    events,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Create registers a new shipment for a LOT. Supplier and client records are
// created on first reference. A duplicate LOT number returns DUPLICATE_ENTRY.
func (s *Service) Create(ctx context.Context, in CreateInput) (*CreateResult, error) {
	var result CreateResult

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		supplier, err := s.resolver.ResolveOrCreateSupplier(ctx, in.SupplierName, in.Currency)
		if err != nil {
			return err
		}
		client, err := s.resolver.ResolveOrCreateClient(ctx, in.ClientName)
		if err != nil {
			return err
		}

		sh := New(in.LotNumber, &supplier.ID, &client.ID)
		sh.AppendNote(appctx.GetSource(ctx), in.Note)

		if err := s.shipments.Create(ctx, sh); err != nil {
			return err
		}

		if err := s.events.Publish(ctx, event.Event{
			AggregateType: "shipment",
			AggregateID:   sh.ID,
			Type:          event.TypeShipmentCreated,
			Payload: map[string]any{
				"lot_number": sh.LotNumber,
				"supplier":   supplier.Name,
				"client":     client.Name,
			},
		}); err != nil {
			return err
		}

		result = CreateResult{Shipment: sh, Supplier: supplier, Client: client}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "shipment created", "lot", result.Shipment.LotNumber)
	return &result, nil
}

// Update applies status and milestone changes to an existing shipment.
// Status is assigned unconditionally; no transition ordering is enforced.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*Shipment, error) {
	sh, err := s.shipments.GetByLot(ctx, in.LotNumber)
	if err != nil {
		return nil, err
	}

	prevStatus := sh.Status

	if in.Status != nil {
		sh.Status = *in.Status
	}

	if in.DocumentSubmitted != nil {
		sh.DocumentSubmitted = *in.DocumentSubmitted
		if *in.DocumentSubmitted {
			sh.DocumentSubmittedDate = s.milestoneDate(in.DocumentSubmittedDate)
		}
	}
	if in.TelexReleased != nil {
		sh.TelexReleased = *in.TelexReleased
		if *in.TelexReleased {
			sh.TelexReleasedDate = s.milestoneDate(in.TelexReleasedDate)
		}
	}
	if in.DeliveryDate != nil {
		sh.DeliveryDate = in.DeliveryDate
	}

	sh.AppendNote(appctx.GetSource(ctx), in.Note)
	sh.UpdatedAt = s.now()

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.shipments.Update(ctx, sh); err != nil {
			return err
		}
		if in.Status != nil && *in.Status != prevStatus {
			return s.events.Publish(ctx, event.Event{
				AggregateType: "shipment",
				AggregateID:   sh.ID,
				Type:          event.TypeStatusChanged,
				Payload: map[string]any{
					"lot_number": sh.LotNumber,
					"from":       prevStatus,
					"to":         sh.Status,
				},
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return sh, nil
}

func (s *Service) milestoneDate(explicit *time.Time) *time.Time {
	if explicit != nil {
		return explicit
	}
	today := s.now().Truncate(24 * time.Hour)
	return &today
}
