package shipment

import (
	"context"
	"strings"
	"testing"
	"time"

	"freightops/internal/core/apperror"
	appctx "freightops/internal/core/context"
	"freightops/internal/core/id"
	"freightops/internal/core/types"
	"freightops/internal/domain/event"
	"freightops/internal/domain/party"
)

type memRepo struct {
	byLot map[string]*Shipment
}

func newMemRepo() *memRepo { return &memRepo{byLot: map[string]*Shipment{}} }

func (m *memRepo) GetByLot(_ context.Context, lot string) (*Shipment, error) {
	if sh, ok := m.byLot[lot]; ok {
		cp := *sh
		return &cp, nil
	}
	return nil, apperror.NewNotFound("shipment", lot)
}

func (m *memRepo) Create(_ context.Context, s *Shipment) error {
	if _, ok := m.byLot[s.LotNumber]; ok {
		return apperror.NewDuplicate("shipment", "lot_number", s.LotNumber)
	}
	cp := *s
	m.byLot[s.LotNumber] = &cp
	return nil
}

func (m *memRepo) Update(_ context.Context, s *Shipment) error {
	if _, ok := m.byLot[s.LotNumber]; !ok {
		return apperror.NewNotFound("shipment", s.LotNumber)
	}
	cp := *s
	m.byLot[s.LotNumber] = &cp
	return nil
}

func (m *memRepo) List(context.Context, Filter) ([]*Shipment, error) { return nil, nil }

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
	return nil, apperror.NewNotFound("supplier", sid.String())
}
func (m *memSuppliers) Create(_ context.Context, s *party.Supplier) error {
	m.rows = append(m.rows, s)
	return nil
}
func (m *memSuppliers) GetBalance(context.Context, id.ID) (types.Money, error) {
	return types.Zero(), nil
}

type memClients struct{ rows []*party.Client }

func (m *memClients) FindByNameFragment(_ context.Context, fragment string) (*party.Client, error) {
	for _, c := range m.rows {
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(fragment)) {
			return c, nil
		}
	}
	return nil, apperror.NewNotFound("client", fragment)
}
func (m *memClients) Create(_ context.Context, c *party.Client) error {
	m.rows = append(m.rows, c)
	return nil
}

type memBanks struct{}

func (memBanks) FindByNameFragment(_ context.Context, fragment string) (*party.BankAccount, error) {
	return nil, apperror.NewNotFound("bank account", fragment)
}

type nopTx struct{}

func (nopTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memEvents struct{ published []event.Event }

func (m *memEvents) Publish(_ context.Context, e event.Event) error {
	m.published = append(m.published, e)
	return nil
}

func newTestService() (*Service, *memRepo, *memEvents) {
	repo := newMemRepo()
	events := &memEvents{}
	resolver := party.NewResolver(&memSuppliers{}, &memClients{}, memBanks{})
	svc := NewService(repo, resolver, nopTx{}, events)
	svc.now = func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) }
	return svc, repo, events
}

func TestCreateRegistersPartiesAndShipment(t *testing.T) {
	svc, repo, events := newTestService()
	ctx := appctx.WithSource(context.Background(), "whatsapp")

	res, err := svc.Create(ctx, CreateInput{
		LotNumber:    "LOT-2024-001",
		SupplierName: "WINTEX - ADNAN",
		ClientName:   "ACME TRADING",
		Note:         "priority cargo",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if res.Shipment.Status != StatusPending {
		t.Errorf("Status = %s, want pending", res.Shipment.Status)
	}
	if res.Supplier == nil || res.Supplier.Name != "WINTEX - ADNAN" {
		t.Error("supplier not created on first reference")
	}
	if res.Client == nil || res.Client.Name != "ACME TRADING" {
		t.Error("client not created on first reference")
	}

	stored := repo.byLot["LOT-2024-001"]
	if stored == nil {
		t.Fatal("shipment not persisted")
	}
	if stored.Notes != "[whatsapp] priority cargo" {
		t.Errorf("Notes = %q, want channel-tagged entry", stored.Notes)
	}

	if len(events.published) != 1 || events.published[0].Type != event.TypeShipmentCreated {
		t.Errorf("events = %+v, want one shipment.created", events.published)
	}
}

func TestCreateDuplicateLot(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	in := CreateInput{LotNumber: "LOT-2024-001", SupplierName: "WINTEX", ClientName: "ACME"}
	if _, err := svc.Create(ctx, in); err != nil {
		t.Fatalf("first Create: %v", err)
	}

	_, err := svc.Create(ctx, in)
	if !apperror.IsDuplicate(err) {
		t.Fatalf("expected DUPLICATE_ENTRY, got %v", err)
	}
}

func TestUpdateStatusAndMilestones(t *testing.T) {
	svc, repo, events := newTestService()
	ctx := appctx.WithSource(context.Background(), "telegram")

	if _, err := svc.Create(ctx, CreateInput{
		LotNumber: "LOT-2024-002", SupplierName: "WINTEX", ClientName: "ACME",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	status := StatusInTransit
	submitted := true
	sh, err := svc.Update(ctx, UpdateInput{
		LotNumber:         "LOT-2024-002",
		Status:            &status,
		DocumentSubmitted: &submitted,
		Note:              "docs couriered",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if sh.Status != StatusInTransit {
		t.Errorf("Status = %s, want in-transit", sh.Status)
	}
	if !sh.DocumentSubmitted || sh.DocumentSubmittedDate == nil {
		t.Fatal("milestone flag set without a date")
	}
	// Date defaults to today when not given explicitly.
	if sh.DocumentSubmittedDate.Format("2006-01-02") != "2026-03-10" {
		t.Errorf("DocumentSubmittedDate = %s, want today", sh.DocumentSubmittedDate)
	}
	if !strings.Contains(repo.byLot["LOT-2024-002"].Notes, "[telegram] docs couriered") {
		t.Errorf("Notes = %q, note not appended", repo.byLot["LOT-2024-002"].Notes)
	}

	var changed bool
	for _, e := range events.published {
		if e.Type == event.TypeStatusChanged {
			changed = true
		}
	}
	if !changed {
		t.Error("status_changed event not published")
	}
}

func TestUpdateSameStatusNoEvent(t *testing.T) {
	svc, _, events := newTestService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateInput{
		LotNumber: "LOT-2024-003", SupplierName: "WINTEX", ClientName: "ACME",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	before := len(events.published)

	status := StatusPending
	if _, err := svc.Update(ctx, UpdateInput{LotNumber: "LOT-2024-003", Status: &status}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	for _, e := range events.published[before:] {
		if e.Type == event.TypeStatusChanged {
			t.Error("status_changed published for an unchanged status")
		}
	}
}

func TestUpdateUnknownLot(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Update(context.Background(), UpdateInput{LotNumber: "LOT-MISSING"})
	if !apperror.IsNotFound(err) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestAppendNotePreservesHistory(t *testing.T) {
	sh := New("LOT-1", nil, nil)
	sh.AppendNote("api", "first")
	sh.AppendNote("whatsapp", "second")

	want := "[api] first\n[whatsapp] second"
	if sh.Notes != want {
		t.Errorf("Notes = %q, want %q", sh.Notes, want)
	}

	// Empty notes are dropped silently.
	sh.AppendNote("api", "")
	if sh.Notes != want {
		t.Errorf("Notes changed by empty append: %q", sh.Notes)
	}
}
