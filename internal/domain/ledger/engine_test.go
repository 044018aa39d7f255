package ledger

import (
	"testing"

	"freightops/internal/core/types"
)

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name         string
		in           CostInputs
		totalForeign string
		totalZar     string
		fxSpread     string
	}{
		{
			name: "reference scenario",
			in: CostInputs{
				SupplierCost:  types.MustMoney("105000"),
				FreightCost:   types.MustMoney("1200"),
				FxSpotRate:    types.MustMoney("18.50"),
				FxAppliedRate: types.MustMoney("18.46"),
			},
			totalForeign: "106200",
			totalZar:     "1960452.00",
			fxSpread:     "0.04",
		},
		{
			name: "applied rate defaults to spot",
			in: CostInputs{
				SupplierCost: types.MustMoney("1000"),
				FxSpotRate:   types.MustMoney("18.00"),
			},
			totalForeign: "1000",
			totalZar:     "18000.00",
			fxSpread:     "0",
		},
		{
			name: "all four components sum exactly",
			in: CostInputs{
				SupplierCost:  types.MustMoney("0.01"),
				FreightCost:   types.MustMoney("0.02"),
				ClearingCost:  types.MustMoney("0.03"),
				TransportCost: types.MustMoney("0.04"),
				FxSpotRate:    types.MustMoney("10"),
			},
			totalForeign: "0.10",
			totalZar:     "1.00",
			fxSpread:     "0",
		},
		{
			name:         "zero inputs",
			in:           CostInputs{},
			totalForeign: "0",
			totalZar:     "0.00",
			fxSpread:     "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(tt.in)
			if !got.TotalForeign.Equal(types.MustMoney(tt.totalForeign)) {
				t.Errorf("TotalForeign = %s, want %s", got.TotalForeign, tt.totalForeign)
			}
			if !got.TotalZar.Equal(types.MustMoney(tt.totalZar)) {
				t.Errorf("TotalZar = %s, want %s", got.TotalZar, tt.totalZar)
			}
			if !got.FxSpread.Equal(types.MustMoney(tt.fxSpread)) {
				t.Errorf("FxSpread = %s, want %s", got.FxSpread, tt.fxSpread)
			}
		})
	}
}

func TestComputeProfit(t *testing.T) {
	totals := ComputeTotals(CostInputs{
		SupplierCost:  types.MustMoney("105000"),
		FreightCost:   types.MustMoney("1200"),
		FxSpotRate:    types.MustMoney("18.50"),
		FxAppliedRate: types.MustMoney("18.46"),
	})

	got := ComputeProfit(ProfitInputs{
		Totals:           totals,
		ClientInvoiceZar: types.MustMoney("2050000"),
	})

	assertEq := func(name string, got types.Money, want string) {
		t.Helper()
		if !got.Equal(types.MustMoney(want)) {
			t.Errorf("%s = %s, want %s", name, got, want)
		}
	}

	assertEq("GrossProfitZar", got.GrossProfitZar, "89548.00")
	assertEq("FxCommissionZar", got.FxCommissionZar, "27446.33")
	assertEq("FxSpreadProfitZar", got.FxSpreadProfitZar, "4248.00")
	assertEq("NetProfitZar", got.NetProfitZar, "121242.33")
	assertEq("ProfitMargin", got.ProfitMargin, "5.9143")
}

func TestComputeProfitZeroInvoice(t *testing.T) {
	totals := ComputeTotals(CostInputs{
		SupplierCost: types.MustMoney("1000"),
		FxSpotRate:   types.MustMoney("18"),
	})

	for _, invoice := range []string{"0", "-500"} {
		got := ComputeProfit(ProfitInputs{
			Totals:           totals,
			ClientInvoiceZar: types.MustMoney(invoice),
		})
		if !got.ProfitMargin.IsZero() {
			t.Errorf("ProfitMargin with invoice %s = %s, want 0", invoice, got.ProfitMargin)
		}
	}
}

func TestComputeProfitNetIsSumOfComponents(t *testing.T) {
	totals := ComputeTotals(CostInputs{
		SupplierCost:  types.MustMoney("50000"),
		FreightCost:   types.MustMoney("750.55"),
		FxSpotRate:    types.MustMoney("19.12"),
		FxAppliedRate: types.MustMoney("19.05"),
	})

	in := ProfitInputs{
		Totals:           totals,
		ClientInvoiceZar: types.MustMoney("1100000"),
		BankCharges:      types.MustMoney("450.10"),
	}
	got := ComputeProfit(in)

	want := got.GrossProfitZar.
		Add(got.FxCommissionZar).
		Add(got.FxSpreadProfitZar).
		Sub(in.BankCharges)
	if !got.NetProfitZar.Equal(types.Round2(want)) {
		t.Errorf("NetProfitZar = %s, want %s", got.NetProfitZar, want)
	}
}

func TestPaymentAmounts(t *testing.T) {
	amountZar, commission := PaymentAmounts(
		types.MustMoney("106000"),
		types.MustMoney("18.46"),
		types.Zero(),
	)

	if !amountZar.Equal(types.MustMoney("1956760.00")) {
		t.Errorf("amountZar = %s, want 1956760.00", amountZar)
	}
	if !commission.Equal(types.MustMoney("27394.64")) {
		t.Errorf("commission = %s, want 27394.64", commission)
	}
}
