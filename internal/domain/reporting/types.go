// Package reporting provides the read-only automation queries: shipment
// detail, filtered lists, supplier balances and the cash-flow projection.
// No mutation side effects.
package reporting

import (
	"time"

	"freightops/internal/core/types"
	"freightops/internal/domain/ledger"
	"freightops/internal/domain/party"
	"freightops/internal/domain/shipment"
)

// DefaultListLimit caps shipment listings when the caller gives none.
const DefaultListLimit = 20

// RecentEntryCount is how many ledger entries a balance query returns.
const RecentEntryCount = 5

// ShipmentDetail is a single shipment with its financials when present.
type ShipmentDetail struct {
	Shipment *shipment.Shipment    `json:"shipment"`
	Costs    *ledger.ShipmentCosts `json:"costs,omitempty"`
}

// ListFilter narrows a shipment list query. Empty fields are ignored.
type ListFilter struct {
	Status       string
	SupplierName string
	Limit        int
}

// SupplierBalance is the balance report for one supplier. A positive balance
// is money owed to the supplier; negative means the supplier owes us.
type SupplierBalance struct {
	Supplier       *party.Supplier               `json:"supplier"`
	Balance        types.Money                   `json:"current_balance"`
	Interpretation string                        `json:"interpretation"`
	Recent         []*ledger.SupplierLedgerEntry `json:"recent_transactions"`
}

// CashflowWeek is one week-long bucket of upcoming scheduled payments.
type CashflowWeek struct {
	WeekStart time.Time                      `json:"week_start"`
	WeekEnd   time.Time                      `json:"week_end"`
	TotalZar  types.Money                    `json:"total_zar"`
	Payments  []*ledger.PaymentScheduleEntry `json:"payments"`
}
