package automation

import (
	"fmt"
	"strings"

	"freightops/internal/core/types"
	"freightops/internal/domain/ledger"
	"freightops/internal/domain/party"
	"freightops/internal/domain/reporting"
	"freightops/internal/domain/shipment"
)

// Channel messages are pre-rendered human-readable strings returned alongside
// the structured payload, intended for verbatim relay into a chat channel.
// They are a first-class part of the wire contract.

// FailureMessage renders the channel string for any failed command.
func FailureMessage(msg string) string {
	return "❌ " + msg
}

// ShipmentCreatedMessage announces a newly registered LOT.
func ShipmentCreatedMessage(sh *shipment.Shipment, supplier *party.Supplier, client *party.Client) string {
	var b strings.Builder
	fmt.Fprintf(&b, "✅ Shipment %s created\n", sh.LotNumber)
	fmt.Fprintf(&b, "Supplier: %s\n", supplier.Name)
	fmt.Fprintf(&b, "Client: %s\n", client.Name)
	fmt.Fprintf(&b, "Status: %s", sh.Status)
	return b.String()
}

// CostsAddedMessage summarises a cost capture.
func CostsAddedMessage(lotNumber string, c *ledger.ShipmentCosts) string {
	var b strings.Builder
	fmt.Fprintf(&b, "💰 Costs captured for %s\n", lotNumber)
	fmt.Fprintf(&b, "Total foreign: %s\n", formatAmount(c.TotalForeign))
	fmt.Fprintf(&b, "FX applied: %s (spread %s)\n", c.FxAppliedRate.String(), c.FxSpread.String())
	fmt.Fprintf(&b, "Total ZAR: R %s", formatAmount(c.TotalZar))
	return b.String()
}

// RevenueAddedMessage renders the full profit breakdown.
func RevenueAddedMessage(lotNumber string, c *ledger.ShipmentCosts) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📈 Profit for %s\n", lotNumber)
	fmt.Fprintf(&b, "Invoice: R %s\n", formatAmount(c.ClientInvoiceZar))
	fmt.Fprintf(&b, "Gross profit: R %s\n", formatAmount(c.GrossProfitZar))
	fmt.Fprintf(&b, "FX commission: R %s\n", formatAmount(c.FxCommissionZar))
	fmt.Fprintf(&b, "FX spread profit: R %s\n", formatAmount(c.FxSpreadProfitZar))
	fmt.Fprintf(&b, "Net profit: R %s (%s%%)", formatAmount(c.NetProfitZar), c.ProfitMargin.String())
	return b.String()
}

// StatusUpdatedMessage summarises the shipment after a lifecycle update.
func StatusUpdatedMessage(sh *shipment.Shipment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🚢 %s updated\n", sh.LotNumber)
	fmt.Fprintf(&b, "Status: %s", sh.Status)
	if sh.DocumentSubmitted && sh.DocumentSubmittedDate != nil {
		fmt.Fprintf(&b, "\nDocuments submitted: %s", sh.DocumentSubmittedDate.Format("2006-01-02"))
	}
	if sh.TelexReleased && sh.TelexReleasedDate != nil {
		fmt.Fprintf(&b, "\nTelex released: %s", sh.TelexReleasedDate.Format("2006-01-02"))
	}
	if sh.DeliveryDate != nil {
		fmt.Fprintf(&b, "\nDelivered: %s", sh.DeliveryDate.Format("2006-01-02"))
	}
	return b.String()
}

// PaymentRecordedMessage confirms a supplier payment and the new balance.
func PaymentRecordedMessage(p *ledger.PaymentScheduleEntry, supplier *party.Supplier, balance types.Money) string {
	var b strings.Builder
	fmt.Fprintf(&b, "✅ Payment %s recorded\n", p.PaymentNumber)
	fmt.Fprintf(&b, "Supplier: %s\n", supplier.Name)
	fmt.Fprintf(&b, "Amount: %s %s @ %s = R %s\n", formatAmount(p.AmountForeign), p.Currency, p.FxRate.String(), formatAmount(p.AmountZar))
	fmt.Fprintf(&b, "Commission earned: R %s\n", formatAmount(p.CommissionEarned))
	fmt.Fprintf(&b, "Supplier balance: %s %s", formatAmount(balance), supplier.Currency)
	return b.String()
}

// ShipmentListMessage renders a shipment listing, newest first.
func ShipmentListMessage(shipments []*shipment.Shipment) string {
	if len(shipments) == 0 {
		return "🔍 No shipments found"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "🔍 %d shipment(s)\n", len(shipments))
	for _, sh := range shipments {
		fmt.Fprintf(&b, "• %s — %s\n", sh.LotNumber, sh.Status)
	}
	return strings.TrimRight(b.String(), "\n")
}

// ShipmentDetailMessage renders one shipment with financials when present.
func ShipmentDetailMessage(detail *reporting.ShipmentDetail) string {
	msg := StatusUpdatedMessage(detail.Shipment)
	msg = strings.Replace(msg, "updated", "status", 1)
	if detail.Costs != nil {
		msg += fmt.Sprintf("\nTotal ZAR: R %s", formatAmount(detail.Costs.TotalZar))
		if detail.Costs.ClientInvoiceZar.IsPositive() {
			msg += fmt.Sprintf("\nNet profit: R %s", formatAmount(detail.Costs.NetProfitZar))
		}
	}
	return msg
}

// SupplierBalanceMessage renders a supplier balance with recent postings.
func SupplierBalanceMessage(rep *reporting.SupplierBalance) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🏦 %s\n", rep.Supplier.Name)
	fmt.Fprintf(&b, "Balance: %s %s (%s)\n", formatAmount(rep.Balance), rep.Supplier.Currency, rep.Interpretation)
	for _, e := range rep.Recent {
		sign := "+"
		if e.LedgerType == ledger.LedgerCredit {
			sign = "-"
		}
		fmt.Fprintf(&b, "• %s %s%s %s\n", e.CreatedAt.Format("2006-01-02"), sign, formatAmount(e.Amount), e.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}

// CashflowMessage renders the weekly projection buckets.
func CashflowMessage(weeks []reporting.CashflowWeek) string {
	var b strings.Builder
	b.WriteString("📊 Cash-flow projection\n")
	for _, w := range weeks {
		fmt.Fprintf(&b, "• %s – %s: R %s (%d payment(s))\n",
			w.WeekStart.Format("Jan 02"), w.WeekEnd.AddDate(0, 0, -1).Format("Jan 02"),
			formatAmount(w.TotalZar), len(w.Payments))
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatAmount renders a decimal with thousand separators and two decimals.
func formatAmount(m types.Money) string {
	s := m.StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")
	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	out := strings.Join(groups, ",") + "." + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
