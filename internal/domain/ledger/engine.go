// Package ledger owns the shipment financial arithmetic and the supplier
// ledger posting rules: cost capture, FX-adjusted profit computation and
// ledger debits/credits.
package ledger

import (
	"github.com/shopspring/decimal"

	"freightops/internal/core/types"
)

// DefaultFXCommissionRate is the fixed 1.4% commission applied to the ZAR
// cost total, counted as profit.
var DefaultFXCommissionRate = decimal.RequireFromString("0.014")

// CostInputs are the raw figures of a cost capture. All amounts are
// non-negative; the four components are in the supplier's foreign currency.
type CostInputs struct {
	SupplierCost  types.Money
	FreightCost   types.Money
	ClearingCost  types.Money
	TransportCost types.Money

	// FxSpotRate is the market rate; FxAppliedRate the rate charged to the
	// client. When the applied rate is omitted it equals the spot rate
	// (zero spread).
	FxSpotRate    types.Money
	FxAppliedRate types.Money
}

// CostTotals are the derived cost figures. Pure functions of CostInputs.
type CostTotals struct {
	TotalForeign types.Money
	TotalZar     types.Money
	FxSpread     types.Money
}

// ComputeTotals derives the cost totals:
//
//	totalForeign = supplier + freight + clearing + transport  (exact, no rounding)
//	fxSpread     = spot - applied
//	totalZar     = totalForeign * applied                     (rounded to cents)
func ComputeTotals(in CostInputs) CostTotals {
	applied := in.FxAppliedRate
	if applied.IsZero() {
		applied = in.FxSpotRate
	}

	totalForeign := in.SupplierCost.Add(in.FreightCost).Add(in.ClearingCost).Add(in.TransportCost)
	return CostTotals{
		TotalForeign: totalForeign,
		TotalZar:     types.Round2(totalForeign.Mul(applied)),
		FxSpread:     in.FxSpotRate.Sub(applied),
	}
}

// ProfitInputs are the figures needed once revenue is known.
type ProfitInputs struct {
	Totals           CostTotals
	ClientInvoiceZar types.Money
	BankCharges      types.Money
	CommissionRate   types.Money // zero means DefaultFXCommissionRate
}

// ProfitBreakdown is the full derived profit picture for one shipment.
type ProfitBreakdown struct {
	GrossProfitZar    types.Money `json:"gross_profit_zar"`
	FxCommissionZar   types.Money `json:"fx_commission_zar"`
	FxSpreadProfitZar types.Money `json:"fx_spread_profit_zar"`
	NetProfitZar      types.Money `json:"net_profit_zar"`
	ProfitMargin      types.Money `json:"profit_margin"`
}

// ComputeProfit derives the profit breakdown:
//
//	grossProfit  = clientInvoiceZar - totalZar
//	fxCommission = totalZar * commissionRate
//	spreadProfit = totalForeign * fxSpread
//	netProfit    = grossProfit + fxCommission + spreadProfit - bankCharges
//	profitMargin = clientInvoiceZar > 0 ? netProfit / clientInvoiceZar * 100 : 0
//
// Monetary results are rounded to cents, the margin to 4 places.
func ComputeProfit(in ProfitInputs) ProfitBreakdown {
	rate := in.CommissionRate
	if rate.IsZero() {
		rate = DefaultFXCommissionRate
	}

	gross := types.Round2(in.ClientInvoiceZar.Sub(in.Totals.TotalZar))
	commission := types.Round2(in.Totals.TotalZar.Mul(rate))
	spread := types.Round2(in.Totals.TotalForeign.Mul(in.Totals.FxSpread))
	net := types.Round2(gross.Add(commission).Add(spread).Sub(in.BankCharges))

	margin := types.Zero()
	if in.ClientInvoiceZar.IsPositive() {
		margin = types.Round4(net.Div(in.ClientInvoiceZar).Mul(decimal.NewFromInt(100)))
	}

	return ProfitBreakdown{
		GrossProfitZar:    gross,
		FxCommissionZar:   commission,
		FxSpreadProfitZar: spread,
		NetProfitZar:      net,
		ProfitMargin:      margin,
	}
}

// PaymentAmounts converts a foreign payment to ZAR and computes the
// commission earned on it.
func PaymentAmounts(amountForeign, fxRate, commissionRate types.Money) (amountZar, commission types.Money) {
	if commissionRate.IsZero() {
		commissionRate = DefaultFXCommissionRate
	}
	amountZar = types.Round2(amountForeign.Mul(fxRate))
	commission = types.Round2(amountZar.Mul(commissionRate))
	return amountZar, commission
}
