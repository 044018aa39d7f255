package automation

import (
	"strings"
	"testing"

	"freightops/internal/core/types"
	"freightops/internal/domain/ledger"
	"freightops/internal/domain/party"
	"freightops/internal/domain/shipment"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"18.5", "18.50"},
		{"1234", "1,234.00"},
		{"1960452", "1,960,452.00"},
		{"-106000", "-106,000.00"},
		{"999.999", "1,000.00"},
	}
	for _, tc := range tests {
		if got := formatAmount(types.MustMoney(tc.in)); got != tc.want {
			t.Errorf("formatAmount(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFailureMessage(t *testing.T) {
	if got := FailureMessage("Shipment not found"); got != "❌ Shipment not found" {
		t.Errorf("FailureMessage = %q", got)
	}
}

func TestShipmentCreatedMessage(t *testing.T) {
	sh := shipment.New("LOT-2024-001", nil, nil)
	supplier := party.NewSupplier("WINTEX - ADNAN", "USD")
	client := &party.Client{Name: "CapeTrade Imports"}

	msg := ShipmentCreatedMessage(sh, supplier, client)
	for _, want := range []string{
		"✅ Shipment LOT-2024-001 created",
		"Supplier: WINTEX - ADNAN",
		"Client: CapeTrade Imports",
		"Status: pending",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestRevenueAddedMessage(t *testing.T) {
	costs := &ledger.ShipmentCosts{
		ClientInvoiceZar:  types.MustMoney("2050000"),
		GrossProfitZar:    types.MustMoney("89548.00"),
		FxCommissionZar:   types.MustMoney("27446.33"),
		FxSpreadProfitZar: types.MustMoney("4248.00"),
		NetProfitZar:      types.MustMoney("121242.33"),
		ProfitMargin:      types.MustMoney("5.9143"),
	}

	msg := RevenueAddedMessage("LOT-2024-001", costs)
	for _, want := range []string{
		"📈 Profit for LOT-2024-001",
		"Invoice: R 2,050,000.00",
		"Gross profit: R 89,548.00",
		"FX commission: R 27,446.33",
		"FX spread profit: R 4,248.00",
		"Net profit: R 121,242.33 (5.9143%)",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestPaymentRecordedMessage(t *testing.T) {
	supplier := party.NewSupplier("WINTEX - ADNAN", "USD")
	p := &ledger.PaymentScheduleEntry{
		PaymentNumber:    "PAY-2026-00001",
		AmountForeign:    types.MustMoney("106000"),
		Currency:         "USD",
		FxRate:           types.MustMoney("18.46"),
		AmountZar:        types.MustMoney("1956760.00"),
		CommissionEarned: types.MustMoney("27394.64"),
	}

	msg := PaymentRecordedMessage(p, supplier, types.MustMoney("-106000"))
	for _, want := range []string{
		"✅ Payment PAY-2026-00001 recorded",
		"Amount: 106,000.00 USD @ 18.46 = R 1,956,760.00",
		"Commission earned: R 27,394.64",
		"Supplier balance: -106,000.00 USD",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestShipmentListMessage(t *testing.T) {
	if got := ShipmentListMessage(nil); got != "🔍 No shipments found" {
		t.Errorf("empty list = %q", got)
	}

	a := shipment.New("LOT-2024-002", nil, nil)
	a.Status = shipment.StatusInTransit
	b := shipment.New("LOT-2024-001", nil, nil)

	msg := ShipmentListMessage([]*shipment.Shipment{a, b})
	if !strings.HasPrefix(msg, "🔍 2 shipment(s)") {
		t.Errorf("header wrong:\n%s", msg)
	}
	if !strings.Contains(msg, "LOT-2024-002 — in-transit") || !strings.Contains(msg, "LOT-2024-001 — pending") {
		t.Errorf("rows missing:\n%s", msg)
	}
	if strings.HasSuffix(msg, "\n") {
		t.Error("trailing newline not trimmed")
	}
}
