package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"freightops/internal/core/apperror"
	"freightops/internal/domain/shipment"
)

var shipmentColumns = []string{
	"id", "lot_number", "status", "supplier_id", "client_id",
	"document_submitted", "document_submitted_date",
	"telex_released", "telex_released_date", "delivery_date",
	"notes", "created_at", "updated_at",
}

// ShipmentRepo is the PostgreSQL implementation of shipment.Repository.
type ShipmentRepo struct {
	tm *TxManager
}

func NewShipmentRepo(tm *TxManager) *ShipmentRepo {
	return &ShipmentRepo{tm: tm}
}

var _ shipment.Repository = (*ShipmentRepo)(nil)

func (r *ShipmentRepo) GetByLot(ctx context.Context, lotNumber string) (*shipment.Shipment, error) {
	sql, args, err := builder().
		Select(shipmentColumns...).
		From("shipments").
		Where("lot_number = ?", lotNumber).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build shipment get: %w", err)
	}

	var s shipment.Shipment
	err = pgxscan.Get(ctx, r.tm.GetQuerier(ctx), &s, sql, args...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NewNotFound("shipment", lotNumber)
	}
	if err != nil {
		return nil, apperror.NewDatabase(err)
	}
	return &s, nil
}

func (r *ShipmentRepo) Create(ctx context.Context, s *shipment.Shipment) error {
	sql, args, err := builder().
		Insert("shipments").
		Columns(shipmentColumns...).
		Values(
			s.ID, s.LotNumber, s.Status, s.SupplierID, s.ClientID,
			s.DocumentSubmitted, s.DocumentSubmittedDate,
			s.TelexReleased, s.TelexReleasedDate, s.DeliveryDate,
			s.Notes, s.CreatedAt, s.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build shipment insert: %w", err)
	}

	if _, err := r.tm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		if isUniqueViolation(err) {
			return apperror.NewDuplicate("shipment", "lot_number", s.LotNumber)
		}
		return apperror.NewDatabase(err)
	}
	return nil
}

func (r *ShipmentRepo) Update(ctx context.Context, s *shipment.Shipment) error {
	sql, args, err := builder().
		Update("shipments").
		SetMap(map[string]any{
			"status":                  s.Status,
			"supplier_id":             s.SupplierID,
			"client_id":               s.ClientID,
			"document_submitted":      s.DocumentSubmitted,
			"document_submitted_date": s.DocumentSubmittedDate,
			"telex_released":          s.TelexReleased,
			"telex_released_date":     s.TelexReleasedDate,
			"delivery_date":           s.DeliveryDate,
			"notes":                   s.Notes,
			"updated_at":              s.UpdatedAt,
		}).
		Where("id = ?", s.ID).
		ToSql()
	if err != nil {
		return fmt.Errorf("build shipment update: %w", err)
	}

	tag, err := r.tm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewDatabase(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("shipment", s.LotNumber)
	}
	return nil
}

func (r *ShipmentRepo) List(ctx context.Context, f shipment.Filter) ([]*shipment.Shipment, error) {
	q := builder().
		Select(shipmentColumns...).
		From("shipments").
		OrderBy("created_at DESC")

	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.SupplierID != nil {
		q = q.Where("supplier_id = ?", *f.SupplierID)
	}
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build shipment list: %w", err)
	}

	var out []*shipment.Shipment
	if err := pgxscan.Select(ctx, r.tm.GetQuerier(ctx), &out, sql, args...); err != nil {
		return nil, apperror.NewDatabase(err)
	}
	return out, nil
}
