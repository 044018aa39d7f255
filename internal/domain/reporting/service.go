package reporting

import (
	"context"
	"time"

	"freightops/internal/core/apperror"
	"freightops/internal/core/types"
	"freightops/internal/domain/ledger"
	"freightops/internal/domain/party"
	"freightops/internal/domain/shipment"
)

// Service implements the read-only reporting queries.
type Service struct {
	shipments shipment.Repository
	costs     ledger.CostsRepository
	entries   ledger.EntryRepository
	payments  ledger.PaymentRepository
	resolver  *party.Resolver
	now       func() time.Time
}

// NewService creates the reporting handler.
func NewService(
	shipments shipment.Repository,
	costs ledger.CostsRepository,
	entries ledger.EntryRepository,
	payments ledger.PaymentRepository,
	resolver *party.Resolver,
) *Service {
	return &Service{
		shipments: shipments,
		costs:     costs,
		entries:   entries,
		payments:  payments,
		resolver:  resolver,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ShipmentDetail returns one shipment with its costs/profit row when present.
func (s *Service) ShipmentDetail(ctx context.Context, lotNumber string) (*ShipmentDetail, error) {
	sh, err := s.shipments.GetByLot(ctx, lotNumber)
	if err != nil {
		return nil, err
	}

	detail := &ShipmentDetail{Shipment: sh}

	costs, err := s.costs.GetByShipment(ctx, sh.ID)
	if err == nil {
		detail.Costs = costs
	} else if !apperror.IsNotFound(err) {
		return nil, err
	}

	return detail, nil
}

// ListShipments returns shipments most-recent-first, filtered by status
// and/or supplier, capped at the limit.
func (s *Service) ListShipments(ctx context.Context, f ListFilter) ([]*shipment.Shipment, error) {
	filter := shipment.Filter{Limit: f.Limit}
	if filter.Limit <= 0 {
		filter.Limit = DefaultListLimit
	}

	if f.Status != "" {
		status := shipment.Status(f.Status)
		if !status.Valid() {
			return nil, apperror.NewValidation("unknown status").WithDetail("status", f.Status)
		}
		filter.Status = &status
	}

	if f.SupplierName != "" {
		supplier, err := s.resolver.ResolveSupplier(ctx, f.SupplierName)
		if err != nil {
			return nil, err
		}
		filter.SupplierID = &supplier.ID
	}

	return s.shipments.List(ctx, filter)
}

// SupplierBalance returns a supplier's running balance with its most recent
// ledger entries. The sign is interpreted for the channel message.
func (s *Service) SupplierBalance(ctx context.Context, supplierName string) (*SupplierBalance, error) {
	supplier, err := s.resolver.ResolveSupplier(ctx, supplierName)
	if err != nil {
		return nil, err
	}

	recent, err := s.entries.RecentBySupplier(ctx, supplier.ID, RecentEntryCount)
	if err != nil {
		return nil, err
	}

	interpretation := "settled"
	switch {
	case supplier.CurrentBalance.IsPositive():
		interpretation = "owed to supplier"
	case supplier.CurrentBalance.IsNegative():
		interpretation = "supplier owes us"
	}

	return &SupplierBalance{
		Supplier:       supplier,
		Balance:        supplier.CurrentBalance,
		Interpretation: interpretation,
		Recent:         recent,
	}, nil
}

// CashflowProjection buckets upcoming scheduled payments into week-long
// windows starting today.
func (s *Service) CashflowProjection(ctx context.Context, weeks int) ([]CashflowWeek, error) {
	if weeks <= 0 {
		weeks = 4
	}

	today := s.now().Truncate(24 * time.Hour)
	horizon := today.AddDate(0, 0, 7*weeks)

	upcoming, err := s.payments.ScheduledBetween(ctx, today, horizon)
	if err != nil {
		return nil, err
	}

	return BucketByWeek(today, weeks, upcoming), nil
}

// BucketByWeek distributes payments into week-long windows starting at start.
// Payments without a due date or outside the horizon are dropped.
func BucketByWeek(start time.Time, weeks int, payments []*ledger.PaymentScheduleEntry) []CashflowWeek {
	buckets := make([]CashflowWeek, weeks)
	for i := range buckets {
		buckets[i] = CashflowWeek{
			WeekStart: start.AddDate(0, 0, 7*i),
			WeekEnd:   start.AddDate(0, 0, 7*(i+1)),
			TotalZar:  types.Zero(),
		}
	}

	for _, p := range payments {
		if p.DueDate == nil {
			continue
		}
		days := int(p.DueDate.Sub(start).Hours() / 24)
		if days < 0 || days >= 7*weeks {
			continue
		}
		idx := days / 7
		buckets[idx].Payments = append(buckets[idx].Payments, p)
		buckets[idx].TotalZar = buckets[idx].TotalZar.Add(p.AmountZar)
	}

	return buckets
}
