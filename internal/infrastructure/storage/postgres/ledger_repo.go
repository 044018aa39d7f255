package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"freightops/internal/core/apperror"
	"freightops/internal/core/id"
	"freightops/internal/domain/ledger"
)

var costsColumns = []string{
	"id", "shipment_id",
	"supplier_cost", "freight_cost", "clearing_cost", "transport_cost", "bank_charges",
	"fx_spot_rate", "fx_applied_rate",
	"total_foreign", "total_zar", "fx_spread",
	"client_invoice_zar", "gross_profit_zar", "fx_commission_zar",
	"fx_spread_profit_zar", "net_profit_zar", "profit_margin",
	"created_at", "updated_at",
}

// CostsRepo is the PostgreSQL implementation of ledger.CostsRepository.
type CostsRepo struct {
	tm *TxManager
}

func NewCostsRepo(tm *TxManager) *CostsRepo {
	return &CostsRepo{tm: tm}
}

var _ ledger.CostsRepository = (*CostsRepo)(nil)

func (r *CostsRepo) GetByShipment(ctx context.Context, shipmentID id.ID) (*ledger.ShipmentCosts, error) {
	sql, args, err := builder().
		Select(costsColumns...).
		From("shipment_costs").
		Where("shipment_id = ?", shipmentID).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build costs get: %w", err)
	}

	var c ledger.ShipmentCosts
	err = pgxscan.Get(ctx, r.tm.GetQuerier(ctx), &c, sql, args...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NewNotFound("shipment costs", shipmentID.String())
	}
	if err != nil {
		return nil, apperror.NewDatabase(err)
	}
	return &c, nil
}

// Upsert keys on shipment_id so repeated cost captures replace the single
// row instead of accumulating history.
func (r *CostsRepo) Upsert(ctx context.Context, c *ledger.ShipmentCosts) error {
	sql, args, err := builder().
		Insert("shipment_costs").
		Columns(costsColumns...).
		Values(
			c.ID, c.ShipmentID,
			c.SupplierCost, c.FreightCost, c.ClearingCost, c.TransportCost, c.BankCharges,
			c.FxSpotRate, c.FxAppliedRate,
			c.TotalForeign, c.TotalZar, c.FxSpread,
			c.ClientInvoiceZar, c.GrossProfitZar, c.FxCommissionZar,
			c.FxSpreadProfitZar, c.NetProfitZar, c.ProfitMargin,
			c.CreatedAt, c.UpdatedAt,
		).
		Suffix(`ON CONFLICT (shipment_id) DO UPDATE SET
			supplier_cost = EXCLUDED.supplier_cost,
			freight_cost = EXCLUDED.freight_cost,
			clearing_cost = EXCLUDED.clearing_cost,
			transport_cost = EXCLUDED.transport_cost,
			bank_charges = EXCLUDED.bank_charges,
			fx_spot_rate = EXCLUDED.fx_spot_rate,
			fx_applied_rate = EXCLUDED.fx_applied_rate,
			total_foreign = EXCLUDED.total_foreign,
			total_zar = EXCLUDED.total_zar,
			fx_spread = EXCLUDED.fx_spread,
			client_invoice_zar = EXCLUDED.client_invoice_zar,
			gross_profit_zar = EXCLUDED.gross_profit_zar,
			fx_commission_zar = EXCLUDED.fx_commission_zar,
			fx_spread_profit_zar = EXCLUDED.fx_spread_profit_zar,
			net_profit_zar = EXCLUDED.net_profit_zar,
			profit_margin = EXCLUDED.profit_margin,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build costs upsert: %w", err)
	}

	if _, err := r.tm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return apperror.NewDatabase(err)
	}
	return nil
}

var entryColumns = []string{
	"id", "supplier_id", "shipment_id", "ledger_type", "amount",
	"invoice_number", "description", "created_at",
}

// EntryRepo is the PostgreSQL implementation of ledger.EntryRepository.
type EntryRepo struct {
	tm *TxManager
}

func NewEntryRepo(tm *TxManager) *EntryRepo {
	return &EntryRepo{tm: tm}
}

var _ ledger.EntryRepository = (*EntryRepo)(nil)

func (r *EntryRepo) Append(ctx context.Context, e *ledger.SupplierLedgerEntry) error {
	sql, args, err := builder().
		Insert("supplier_ledger_entries").
		Columns(entryColumns...).
		Values(
			e.ID, e.SupplierID, e.ShipmentID, e.LedgerType, e.Amount,
			e.InvoiceNumber, e.Description, e.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build ledger entry insert: %w", err)
	}

	if _, err := r.tm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return apperror.NewDatabase(err)
	}
	return nil
}

func (r *EntryRepo) RecentBySupplier(ctx context.Context, supplierID id.ID, limit int) ([]*ledger.SupplierLedgerEntry, error) {
	sql, args, err := builder().
		Select(entryColumns...).
		From("supplier_ledger_entries").
		Where("supplier_id = ?", supplierID).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ledger entry list: %w", err)
	}

	var out []*ledger.SupplierLedgerEntry
	if err := pgxscan.Select(ctx, r.tm.GetQuerier(ctx), &out, sql, args...); err != nil {
		return nil, apperror.NewDatabase(err)
	}
	return out, nil
}

var paymentColumns = []string{
	"id", "payment_number", "supplier_id", "shipment_id", "bank_account_id", "status",
	"amount_foreign", "currency", "fx_rate", "amount_zar", "commission_earned",
	"due_date", "paid_date", "created_at",
}

// PaymentRepo is the PostgreSQL implementation of ledger.PaymentRepository.
type PaymentRepo struct {
	tm *TxManager
}

func NewPaymentRepo(tm *TxManager) *PaymentRepo {
	return &PaymentRepo{tm: tm}
}

var _ ledger.PaymentRepository = (*PaymentRepo)(nil)

func (r *PaymentRepo) Create(ctx context.Context, p *ledger.PaymentScheduleEntry) error {
	sql, args, err := builder().
		Insert("payment_schedule").
		Columns(paymentColumns...).
		Values(
			p.ID, p.PaymentNumber, p.SupplierID, p.ShipmentID, p.BankAccountID, p.Status,
			p.AmountForeign, p.Currency, p.FxRate, p.AmountZar, p.CommissionEarned,
			p.DueDate, p.PaidDate, p.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build payment insert: %w", err)
	}

	if _, err := r.tm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		if isUniqueViolation(err) {
			return apperror.NewDuplicate("payment", "payment_number", p.PaymentNumber)
		}
		return apperror.NewDatabase(err)
	}
	return nil
}

func (r *PaymentRepo) ScheduledBetween(ctx context.Context, from, to time.Time) ([]*ledger.PaymentScheduleEntry, error) {
	sql, args, err := builder().
		Select(paymentColumns...).
		From("payment_schedule").
		Where("status = ?", ledger.PaymentScheduled).
		Where("due_date >= ? AND due_date < ?", from, to).
		OrderBy("due_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build payment schedule query: %w", err)
	}

	var out []*ledger.PaymentScheduleEntry
	if err := pgxscan.Select(ctx, r.tm.GetQuerier(ctx), &out, sql, args...); err != nil {
		return nil, apperror.NewDatabase(err)
	}
	return out, nil
}
