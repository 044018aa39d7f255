package reporting

import (
	"context"
	"strings"
	"testing"
	"time"

	"freightops/internal/core/apperror"
	"freightops/internal/core/id"
	"freightops/internal/core/types"
	"freightops/internal/domain/ledger"
	"freightops/internal/domain/party"
	"freightops/internal/domain/shipment"
)

type memShipments struct {
	byLot      map[string]*shipment.Shipment
	lastFilter shipment.Filter
}

func (m *memShipments) GetByLot(_ context.Context, lot string) (*shipment.Shipment, error) {
	if sh, ok := m.byLot[lot]; ok {
		return sh, nil
	}
	return nil, apperror.NewNotFound("shipment", lot)
}
func (m *memShipments) Create(context.Context, *shipment.Shipment) error { return nil }
func (m *memShipments) Update(context.Context, *shipment.Shipment) error { return nil }
func (m *memShipments) List(_ context.Context, f shipment.Filter) ([]*shipment.Shipment, error) {
	m.lastFilter = f
	var out []*shipment.Shipment
	for _, sh := range m.byLot {
		if f.Status != nil && sh.Status != *f.Status {
			continue
		}
		out = append(out, sh)
	}
	return out, nil
}

type memCosts struct{ byShipment map[id.ID]*ledger.ShipmentCosts }

func (m *memCosts) Upsert(context.Context, *ledger.ShipmentCosts) error { return nil }
func (m *memCosts) GetByShipment(_ context.Context, shipmentID id.ID) (*ledger.ShipmentCosts, error) {
	if c, ok := m.byShipment[shipmentID]; ok {
		return c, nil
	}
	return nil, apperror.NewNotFound("shipment costs", shipmentID.String())
}

type memEntries struct{ recent []*ledger.SupplierLedgerEntry }

func (m *memEntries) Append(context.Context, *ledger.SupplierLedgerEntry) error { return nil }
func (m *memEntries) RecentBySupplier(_ context.Context, _ id.ID, limit int) ([]*ledger.SupplierLedgerEntry, error) {
	if len(m.recent) > limit {
		return m.recent[:limit], nil
	}
	return m.recent, nil
}

type memPayments struct{ scheduled []*ledger.PaymentScheduleEntry }

func (m *memPayments) Create(context.Context, *ledger.PaymentScheduleEntry) error { return nil }
func (m *memPayments) ScheduledBetween(_ context.Context, from, to time.Time) ([]*ledger.PaymentScheduleEntry, error) {
	var out []*ledger.PaymentScheduleEntry
	for _, p := range m.scheduled {
		if p.DueDate == nil {
			continue
		}
		if !p.DueDate.Before(from) && p.DueDate.Before(to) {
			out = append(out, p)
		}
	}
	return out, nil
}

type memSuppliers struct{ rows []*party.Supplier }

func (m *memSuppliers) FindByNameFragment(_ context.Context, fragment string) (*party.Supplier, error) {
	for _, s := range m.rows {
		if strings.Contains(strings.ToLower(s.Name), strings.ToLower(fragment)) {
			return s, nil
		}
	}
	return nil, apperror.NewNotFound("supplier", fragment)
}
func (m *memSuppliers) GetByID(_ context.Context, sid id.ID) (*party.Supplier, error) {
	for _, s := range m.rows {
		if s.ID == sid {
			return s, nil
		}
	}
	return nil, apperror.NewNotFound("supplier", sid.String())
}
func (m *memSuppliers) Create(_ context.Context, s *party.Supplier) error {
	m.rows = append(m.rows, s)
	return nil
}
func (m *memSuppliers) GetBalance(context.Context, id.ID) (types.Money, error) {
	return types.Zero(), nil
}

type memClients struct{}

func (memClients) FindByNameFragment(_ context.Context, fragment string) (*party.Client, error) {
	return nil, apperror.NewNotFound("client", fragment)
}
func (memClients) Create(context.Context, *party.Client) error { return nil }

type memBanks struct{}

func (memBanks) FindByNameFragment(_ context.Context, fragment string) (*party.BankAccount, error) {
	return nil, apperror.NewNotFound("bank account", fragment)
}

func scheduledPayment(dueDate time.Time, amountZar string) *ledger.PaymentScheduleEntry {
	return &ledger.PaymentScheduleEntry{
		ID:        id.New(),
		Status:    ledger.PaymentScheduled,
		AmountZar: types.MustMoney(amountZar),
		DueDate:   &dueDate,
	}
}

func newTestService(shipments *memShipments, costs *memCosts, entries *memEntries, payments *memPayments, suppliers *memSuppliers) *Service {
	resolver := party.NewResolver(suppliers, memClients{}, memBanks{})
	svc := NewService(shipments, costs, entries, payments, resolver)
	svc.now = func() time.Time { return time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC) }
	return svc
}

func TestShipmentDetail(t *testing.T) {
	sh := shipment.New("LOT-2024-001", nil, nil)
	costs := &ledger.ShipmentCosts{ShipmentID: sh.ID, TotalZar: types.MustMoney("1960452.00")}

	svc := newTestService(
		&memShipments{byLot: map[string]*shipment.Shipment{sh.LotNumber: sh}},
		&memCosts{byShipment: map[id.ID]*ledger.ShipmentCosts{sh.ID: costs}},
		&memEntries{}, &memPayments{}, &memSuppliers{},
	)

	detail, err := svc.ShipmentDetail(context.Background(), "LOT-2024-001")
	if err != nil {
		t.Fatalf("ShipmentDetail: %v", err)
	}
	if detail.Shipment != sh || detail.Costs != costs {
		t.Errorf("detail = %+v", detail)
	}
}

func TestShipmentDetailWithoutCosts(t *testing.T) {
	sh := shipment.New("LOT-2024-002", nil, nil)
	svc := newTestService(
		&memShipments{byLot: map[string]*shipment.Shipment{sh.LotNumber: sh}},
		&memCosts{byShipment: map[id.ID]*ledger.ShipmentCosts{}},
		&memEntries{}, &memPayments{}, &memSuppliers{},
	)

	detail, err := svc.ShipmentDetail(context.Background(), "LOT-2024-002")
	if err != nil {
		t.Fatalf("ShipmentDetail: %v", err)
	}
	if detail.Costs != nil {
		t.Error("costs present for shipment without a cost row")
	}
}

func TestListShipmentsDefaultsAndValidation(t *testing.T) {
	shipments := &memShipments{byLot: map[string]*shipment.Shipment{}}
	svc := newTestService(shipments, &memCosts{}, &memEntries{}, &memPayments{}, &memSuppliers{})
	ctx := context.Background()

	if _, err := svc.ListShipments(ctx, ListFilter{}); err != nil {
		t.Fatalf("ListShipments: %v", err)
	}
	if shipments.lastFilter.Limit != DefaultListLimit {
		t.Errorf("Limit = %d, want default %d", shipments.lastFilter.Limit, DefaultListLimit)
	}

	_, err := svc.ListShipments(ctx, ListFilter{Status: "teleported"})
	if appErr, ok := apperror.AsAppError(err); !ok || appErr.Code != apperror.CodeValidation {
		t.Errorf("bad status: got %v, want VALIDATION_ERROR", err)
	}
}

func TestListShipmentsResolvesSupplier(t *testing.T) {
	supplier := party.NewSupplier("WINTEX - ADNAN", "USD")
	shipments := &memShipments{byLot: map[string]*shipment.Shipment{}}
	svc := newTestService(shipments, &memCosts{}, &memEntries{}, &memPayments{},
		&memSuppliers{rows: []*party.Supplier{supplier}})

	if _, err := svc.ListShipments(context.Background(), ListFilter{SupplierName: "wintex"}); err != nil {
		t.Fatalf("ListShipments: %v", err)
	}
	if shipments.lastFilter.SupplierID == nil || *shipments.lastFilter.SupplierID != supplier.ID {
		t.Errorf("SupplierID = %v, want %s", shipments.lastFilter.SupplierID, supplier.ID)
	}
}

func TestSupplierBalanceInterpretation(t *testing.T) {
	tests := []struct {
		balance string
		want    string
	}{
		{"105000", "owed to supplier"},
		{"-1000", "supplier owes us"},
		{"0", "settled"},
	}
	for _, tc := range tests {
		supplier := party.NewSupplier("WINTEX - ADNAN", "USD")
		supplier.CurrentBalance = types.MustMoney(tc.balance)
		svc := newTestService(&memShipments{}, &memCosts{}, &memEntries{}, &memPayments{},
			&memSuppliers{rows: []*party.Supplier{supplier}})

		rep, err := svc.SupplierBalance(context.Background(), "WINTEX")
		if err != nil {
			t.Fatalf("SupplierBalance: %v", err)
		}
		if rep.Interpretation != tc.want {
			t.Errorf("balance %s: interpretation = %q, want %q", tc.balance, rep.Interpretation, tc.want)
		}
	}
}

func TestBucketByWeek(t *testing.T) {
	start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	inWeek1 := scheduledPayment(start.AddDate(0, 0, 2), "50000")
	alsoWeek1 := scheduledPayment(start.AddDate(0, 0, 6), "25000")
	inWeek2 := scheduledPayment(start.AddDate(0, 0, 7), "100000")
	beyondHorizon := scheduledPayment(start.AddDate(0, 0, 30), "999")
	noDueDate := &ledger.PaymentScheduleEntry{ID: id.New(), AmountZar: types.MustMoney("1")}

	weeks := BucketByWeek(start, 4, []*ledger.PaymentScheduleEntry{
		inWeek1, alsoWeek1, inWeek2, beyondHorizon, noDueDate,
	})

	if len(weeks) != 4 {
		t.Fatalf("weeks = %d, want 4", len(weeks))
	}
	if len(weeks[0].Payments) != 2 || !weeks[0].TotalZar.Equal(types.MustMoney("75000")) {
		t.Errorf("week 1 = %d payments, total %s", len(weeks[0].Payments), weeks[0].TotalZar)
	}
	if len(weeks[1].Payments) != 1 || !weeks[1].TotalZar.Equal(types.MustMoney("100000")) {
		t.Errorf("week 2 = %d payments, total %s", len(weeks[1].Payments), weeks[1].TotalZar)
	}
	if len(weeks[2].Payments) != 0 || len(weeks[3].Payments) != 0 {
		t.Error("payments leaked into empty weeks")
	}
	if !weeks[0].WeekStart.Equal(start) || !weeks[0].WeekEnd.Equal(start.AddDate(0, 0, 7)) {
		t.Errorf("week 1 bounds = %s to %s", weeks[0].WeekStart, weeks[0].WeekEnd)
	}
}

func TestCashflowProjectionHorizon(t *testing.T) {
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	payments := &memPayments{scheduled: []*ledger.PaymentScheduleEntry{
		scheduledPayment(today.AddDate(0, 0, 1), "1000"),
		scheduledPayment(today.AddDate(0, 0, 27), "2000"),
		scheduledPayment(today.AddDate(0, 0, 40), "4000"),
	}}
	svc := newTestService(&memShipments{}, &memCosts{}, &memEntries{}, payments, &memSuppliers{})

	weeks, err := svc.CashflowProjection(context.Background(), 0) // defaults to 4
	if err != nil {
		t.Fatalf("CashflowProjection: %v", err)
	}
	if len(weeks) != 4 {
		t.Fatalf("weeks = %d, want 4", len(weeks))
	}

	total := types.Zero()
	for _, w := range weeks {
		total = total.Add(w.TotalZar)
	}
	if !total.Equal(types.MustMoney("3000")) {
		t.Errorf("projected total = %s, want 3000 (day 40 outside horizon)", total)
	}
}
