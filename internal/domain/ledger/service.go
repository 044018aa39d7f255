package ledger

import (
	"context"
	"time"

	"freightops/internal/core/apperror"
	"freightops/internal/core/id"
	"freightops/internal/core/tx"
	"freightops/internal/core/types"
	"freightops/internal/domain/event"
	"freightops/internal/domain/shipment"
	"freightops/pkg/logger"
)

// AddCostsInput is a cost capture command for one LOT. Omitted components
// default to zero; an omitted applied rate defaults to the spot rate.
type AddCostsInput struct {
	LotNumber string

	SupplierCost  types.Money
	FreightCost   types.Money
	ClearingCost  types.Money
	TransportCost types.Money
	BankCharges   types.Money

	FxSpotRate    types.Money
	FxAppliedRate types.Money

	InvoiceNumber string
}

// Service implements cost capture and revenue posting on top of the engine.
type Service struct {
	shipments      shipment.Repository
	costs          CostsRepository
	entries        EntryRepository
	txManager      tx.Manager
	events         event.Publisher
	commissionRate types.Money
	now            func() time.Time
}

// NewService creates the ledger service. A zero commissionRate selects the
// default 1.4%.
func NewService(
	shipments shipment.Repository,
	costs CostsRepository,
	entries EntryRepository,
	txManager tx.Manager,
	events event.Publisher,
	commissionRate types.Money,
) *Service {
	return &Service{
		shipments:      shipments,
		costs:          costs,
		entries:        entries,
		txManager:      txManager,
		events:         events,
		commissionRate: commissionRate,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// AddCosts captures or replaces the cost side of a shipment. The write is an
// upsert: calling it twice for the same LOT leaves exactly one costs row with
// the second call's values. A positive supplier cost on a supplier-linked
// shipment additionally posts a ledger debit; both writes share one
// transaction.
func (s *Service) AddCosts(ctx context.Context, in AddCostsInput) (*ShipmentCosts, error) {
	sh, err := s.shipments.GetByLot(ctx, in.LotNumber)
	if err != nil {
		return nil, err
	}

	applied := in.FxAppliedRate
	if applied.IsZero() {
		applied = in.FxSpotRate
	}

	totals := ComputeTotals(CostInputs{
		SupplierCost:  in.SupplierCost,
		FreightCost:   in.FreightCost,
		ClearingCost:  in.ClearingCost,
		TransportCost: in.TransportCost,
		FxSpotRate:    in.FxSpotRate,
		FxAppliedRate: applied,
	})

	now := s.now()
	row := &ShipmentCosts{
		ID:            id.New(),
		ShipmentID:    sh.ID,
		SupplierCost:  in.SupplierCost,
		FreightCost:   in.FreightCost,
		ClearingCost:  in.ClearingCost,
		TransportCost: in.TransportCost,
		BankCharges:   in.BankCharges,
		FxSpotRate:    in.FxSpotRate,
		FxAppliedRate: applied,
		TotalForeign:  totals.TotalForeign,
		TotalZar:      totals.TotalZar,
		FxSpread:      totals.FxSpread,
		// Revenue-side fields stay zero until add_revenue runs.
		ClientInvoiceZar: types.Zero(),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	// Re-capturing costs after revenue was posted recomputes profit from the
	// new cost basis instead of silently zeroing it.
	if existing, err := s.costs.GetByShipment(ctx, sh.ID); err == nil {
		row.ClientInvoiceZar = existing.ClientInvoiceZar
		row.CreatedAt = existing.CreatedAt
		if existing.ClientInvoiceZar.IsPositive() {
			s.applyProfit(row)
		}
	} else if !apperror.IsNotFound(err) {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.costs.Upsert(ctx, row); err != nil {
			return err
		}

		if in.SupplierCost.IsPositive() && sh.SupplierID != nil {
			entry := &SupplierLedgerEntry{
				ID:          id.New(),
				SupplierID:  *sh.SupplierID,
				ShipmentID:  &sh.ID,
				LedgerType:  LedgerDebit,
				Amount:      in.SupplierCost,
				Description: "Supplier cost for " + sh.LotNumber,
				CreatedAt:   now,
			}
			if in.InvoiceNumber != "" {
				entry.InvoiceNumber = &in.InvoiceNumber
			}
			if err := s.entries.Append(ctx, entry); err != nil {
				return err
			}
		}

		return s.events.Publish(ctx, event.Event{
			AggregateType: "shipment",
			AggregateID:   sh.ID,
			Type:          event.TypeCostsAdded,
			Payload: map[string]any{
				"lot_number":    sh.LotNumber,
				"total_foreign": totals.TotalForeign,
				"total_zar":     totals.TotalZar,
			},
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "costs captured", "lot", sh.LotNumber, "total_zar", totals.TotalZar)
	return row, nil
}

// AddRevenue posts the client invoice for a LOT and recomputes every
// profit-derived field on the existing costs row. Fails with a
// COMPUTATION_ERROR when no costs were captured first.
func (s *Service) AddRevenue(ctx context.Context, lotNumber string, clientInvoiceZar types.Money) (*ShipmentCosts, error) {
	sh, err := s.shipments.GetByLot(ctx, lotNumber)
	if err != nil {
		return nil, err
	}

	row, err := s.costs.GetByShipment(ctx, sh.ID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewComputation("no costs captured for this shipment - add costs first").
				WithDetail("lot_number", lotNumber)
		}
		return nil, err
	}

	row.ClientInvoiceZar = clientInvoiceZar
	s.applyProfit(row)
	row.UpdatedAt = s.now()

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.costs.Upsert(ctx, row); err != nil {
			return err
		}
		return s.events.Publish(ctx, event.Event{
			AggregateType: "shipment",
			AggregateID:   sh.ID,
			Type:          event.TypeRevenueAdded,
			Payload: map[string]any{
				"lot_number":     sh.LotNumber,
				"invoice_zar":    clientInvoiceZar,
				"net_profit_zar": row.NetProfitZar,
			},
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "revenue posted", "lot", sh.LotNumber, "net_profit_zar", row.NetProfitZar)
	return row, nil
}

// applyProfit recomputes the derived profit fields in place.
func (s *Service) applyProfit(row *ShipmentCosts) {
	breakdown := ComputeProfit(ProfitInputs{
		Totals: CostTotals{
			TotalForeign: row.TotalForeign,
			TotalZar:     row.TotalZar,
			FxSpread:     row.FxSpread,
		},
		ClientInvoiceZar: row.ClientInvoiceZar,
		BankCharges:      row.BankCharges,
		CommissionRate:   s.commissionRate,
	})
	row.GrossProfitZar = breakdown.GrossProfitZar
	row.FxCommissionZar = breakdown.FxCommissionZar
	row.FxSpreadProfitZar = breakdown.FxSpreadProfitZar
	row.NetProfitZar = breakdown.NetProfitZar
	row.ProfitMargin = breakdown.ProfitMargin
}

// Breakdown extracts the profit breakdown from a costs row.
func Breakdown(row *ShipmentCosts) ProfitBreakdown {
	return ProfitBreakdown{
		GrossProfitZar:    row.GrossProfitZar,
		FxCommissionZar:   row.FxCommissionZar,
		FxSpreadProfitZar: row.FxSpreadProfitZar,
		NetProfitZar:      row.NetProfitZar,
		ProfitMargin:      row.ProfitMargin,
	}
}
