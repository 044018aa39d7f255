package ledger

import (
	"context"
	"testing"
	"time"

	"freightops/internal/core/apperror"
	"freightops/internal/core/id"
	"freightops/internal/core/types"
	"freightops/internal/domain/event"
	"freightops/internal/domain/shipment"
)

type stubShipments struct {
	byLot map[string]*shipment.Shipment
}

func (s *stubShipments) GetByLot(_ context.Context, lot string) (*shipment.Shipment, error) {
	if sh, ok := s.byLot[lot]; ok {
		return sh, nil
	}
	return nil, apperror.NewNotFound("shipment", lot)
}

func (s *stubShipments) Create(context.Context, *shipment.Shipment) error { return nil }
func (s *stubShipments) Update(context.Context, *shipment.Shipment) error { return nil }
func (s *stubShipments) List(context.Context, shipment.Filter) ([]*shipment.Shipment, error) {
	return nil, nil
}

type memCosts struct {
	rows map[id.ID]*ShipmentCosts
}

func newMemCosts() *memCosts { return &memCosts{rows: map[id.ID]*ShipmentCosts{}} }

func (m *memCosts) GetByShipment(_ context.Context, shipmentID id.ID) (*ShipmentCosts, error) {
	if row, ok := m.rows[shipmentID]; ok {
		cp := *row
		return &cp, nil
	}
	return nil, apperror.NewNotFound("shipment costs", shipmentID.String())
}

func (m *memCosts) Upsert(_ context.Context, c *ShipmentCosts) error {
	cp := *c
	m.rows[c.ShipmentID] = &cp
	return nil
}

type memEntries struct {
	appended []*SupplierLedgerEntry
}

func (m *memEntries) Append(_ context.Context, e *SupplierLedgerEntry) error {
	m.appended = append(m.appended, e)
	return nil
}

func (m *memEntries) RecentBySupplier(context.Context, id.ID, int) ([]*SupplierLedgerEntry, error) {
	return nil, nil
}

type nopTx struct{}

func (nopTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memEvents struct {
	published []event.Event
}

func (m *memEvents) Publish(_ context.Context, e event.Event) error {
	m.published = append(m.published, e)
	return nil
}

func newTestService(t *testing.T) (*Service, *stubShipments, *memCosts, *memEntries, *memEvents) {
	t.Helper()

	supplierID := id.New()
	shipments := &stubShipments{byLot: map[string]*shipment.Shipment{
		"LOT-2024-001": {
			ID:         id.New(),
			LotNumber:  "LOT-2024-001",
			Status:     shipment.StatusPending,
			SupplierID: &supplierID,
		},
	}}
	costs := newMemCosts()
	entries := &memEntries{}
	events := &memEvents{}

	svc := NewService(shipments, costs, entries, nopTx{}, events, types.Zero())
	svc.now = func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) }
	return svc, shipments, costs, entries, events
}

func referenceCosts() AddCostsInput {
	return AddCostsInput{
		LotNumber:     "LOT-2024-001",
		SupplierCost:  types.MustMoney("105000"),
		FreightCost:   types.MustMoney("1200"),
		FxSpotRate:    types.MustMoney("18.50"),
		FxAppliedRate: types.MustMoney("18.46"),
		InvoiceNumber: "INV-889",
	}
}

func TestAddCostsUpsertKeepsOneRow(t *testing.T) {
	svc, shipments, costs, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddCosts(ctx, referenceCosts()); err != nil {
		t.Fatalf("first AddCosts: %v", err)
	}

	second := referenceCosts()
	second.FreightCost = types.MustMoney("2400")
	if _, err := svc.AddCosts(ctx, second); err != nil {
		t.Fatalf("second AddCosts: %v", err)
	}

	if len(costs.rows) != 1 {
		t.Fatalf("costs rows = %d, want 1", len(costs.rows))
	}
	row := costs.rows[shipments.byLot["LOT-2024-001"].ID]
	if !row.FreightCost.Equal(types.MustMoney("2400")) {
		t.Errorf("FreightCost = %s, want second call's 2400", row.FreightCost)
	}
	if !row.TotalForeign.Equal(types.MustMoney("107400")) {
		t.Errorf("TotalForeign = %s, want 107400", row.TotalForeign)
	}
}

func TestAddCostsPostsSupplierDebit(t *testing.T) {
	svc, shipments, _, entries, _ := newTestService(t)

	if _, err := svc.AddCosts(context.Background(), referenceCosts()); err != nil {
		t.Fatalf("AddCosts: %v", err)
	}

	if len(entries.appended) != 1 {
		t.Fatalf("ledger entries = %d, want 1", len(entries.appended))
	}
	entry := entries.appended[0]
	if entry.LedgerType != LedgerDebit {
		t.Errorf("LedgerType = %s, want debit", entry.LedgerType)
	}
	if !entry.Amount.Equal(types.MustMoney("105000")) {
		t.Errorf("Amount = %s, want 105000", entry.Amount)
	}
	if entry.SupplierID != *shipments.byLot["LOT-2024-001"].SupplierID {
		t.Error("entry posted against wrong supplier")
	}
	if entry.InvoiceNumber == nil || *entry.InvoiceNumber != "INV-889" {
		t.Errorf("InvoiceNumber = %v, want INV-889", entry.InvoiceNumber)
	}
	if entry.Description != "Supplier cost for LOT-2024-001" {
		t.Errorf("Description = %q", entry.Description)
	}
}

func TestAddCostsNoSupplierNoDebit(t *testing.T) {
	svc, shipments, _, entries, _ := newTestService(t)
	shipments.byLot["LOT-2024-001"].SupplierID = nil

	if _, err := svc.AddCosts(context.Background(), referenceCosts()); err != nil {
		t.Fatalf("AddCosts: %v", err)
	}
	if len(entries.appended) != 0 {
		t.Fatalf("ledger entries = %d, want 0 without a supplier link", len(entries.appended))
	}
}

func TestAddRevenueBeforeCosts(t *testing.T) {
	svc, _, _, _, _ := newTestService(t)

	_, err := svc.AddRevenue(context.Background(), "LOT-2024-001", types.MustMoney("2050000"))
	appErr, ok := apperror.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != apperror.CodeComputation {
		t.Errorf("Code = %s, want %s", appErr.Code, apperror.CodeComputation)
	}
}

func TestAddRevenueComputesProfit(t *testing.T) {
	svc, _, _, _, events := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddCosts(ctx, referenceCosts()); err != nil {
		t.Fatalf("AddCosts: %v", err)
	}
	row, err := svc.AddRevenue(ctx, "LOT-2024-001", types.MustMoney("2050000"))
	if err != nil {
		t.Fatalf("AddRevenue: %v", err)
	}

	if !row.GrossProfitZar.Equal(types.MustMoney("89548.00")) {
		t.Errorf("GrossProfitZar = %s, want 89548.00", row.GrossProfitZar)
	}
	if !row.NetProfitZar.Equal(types.MustMoney("121242.33")) {
		t.Errorf("NetProfitZar = %s, want 121242.33", row.NetProfitZar)
	}
	if !row.ProfitMargin.Equal(types.MustMoney("5.9143")) {
		t.Errorf("ProfitMargin = %s, want 5.9143", row.ProfitMargin)
	}

	var seen bool
	for _, e := range events.published {
		if e.Type == event.TypeRevenueAdded {
			seen = true
		}
	}
	if !seen {
		t.Error("revenue_added event not published")
	}
}

func TestAddCostsAfterRevenueRecomputesProfit(t *testing.T) {
	svc, shipments, costs, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddCosts(ctx, referenceCosts()); err != nil {
		t.Fatalf("AddCosts: %v", err)
	}
	if _, err := svc.AddRevenue(ctx, "LOT-2024-001", types.MustMoney("2050000")); err != nil {
		t.Fatalf("AddRevenue: %v", err)
	}

	second := referenceCosts()
	second.SupplierCost = types.MustMoney("100000")
	row, err := svc.AddCosts(ctx, second)
	if err != nil {
		t.Fatalf("second AddCosts: %v", err)
	}

	if !row.ClientInvoiceZar.Equal(types.MustMoney("2050000")) {
		t.Errorf("ClientInvoiceZar = %s, want preserved 2050000", row.ClientInvoiceZar)
	}
	if row.NetProfitZar.IsZero() {
		t.Error("NetProfitZar should be recomputed from the new cost basis, not zeroed")
	}

	stored := costs.rows[shipments.byLot["LOT-2024-001"].ID]
	if !stored.NetProfitZar.Equal(row.NetProfitZar) {
		t.Error("stored row does not match returned row")
	}
}
