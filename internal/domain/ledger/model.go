package ledger

import (
	"time"

	"freightops/internal/core/id"
	"freightops/internal/core/types"
)

// ShipmentCosts is the single financial row of a shipment. The first cost
// capture creates it; every later capture upserts the same row. Derived
// fields are pure functions of the inputs and are only written by the engine.
type ShipmentCosts struct {
	ID         id.ID `db:"id" json:"id"`
	ShipmentID id.ID `db:"shipment_id" json:"shipment_id"`

	SupplierCost  types.Money `db:"supplier_cost" json:"supplier_cost"`
	FreightCost   types.Money `db:"freight_cost" json:"freight_cost"`
	ClearingCost  types.Money `db:"clearing_cost" json:"clearing_cost"`
	TransportCost types.Money `db:"transport_cost" json:"transport_cost"`
	BankCharges   types.Money `db:"bank_charges" json:"bank_charges"`

	FxSpotRate    types.Money `db:"fx_spot_rate" json:"fx_spot_rate"`
	FxAppliedRate types.Money `db:"fx_applied_rate" json:"fx_applied_rate"`

	TotalForeign types.Money `db:"total_foreign" json:"total_foreign"`
	TotalZar     types.Money `db:"total_zar" json:"total_zar"`
	FxSpread     types.Money `db:"fx_spread" json:"fx_spread"`

	ClientInvoiceZar  types.Money `db:"client_invoice_zar" json:"client_invoice_zar"`
	GrossProfitZar    types.Money `db:"gross_profit_zar" json:"gross_profit_zar"`
	FxCommissionZar   types.Money `db:"fx_commission_zar" json:"fx_commission_zar"`
	FxSpreadProfitZar types.Money `db:"fx_spread_profit_zar" json:"fx_spread_profit_zar"`
	NetProfitZar      types.Money `db:"net_profit_zar" json:"net_profit_zar"`
	ProfitMargin      types.Money `db:"profit_margin" json:"profit_margin"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// LedgerType distinguishes the two posting directions.
type LedgerType string

const (
	// LedgerDebit represents money owed to the supplier (cost incurred).
	LedgerDebit LedgerType = "debit"
	// LedgerCredit represents money paid to the supplier.
	LedgerCredit LedgerType = "credit"
)

// SupplierLedgerEntry is an immutable append-only posting in the supplier's
// foreign currency. The supplier's running balance is maintained by a
// database trigger over these rows.
type SupplierLedgerEntry struct {
	ID            id.ID       `db:"id" json:"id"`
	SupplierID    id.ID       `db:"supplier_id" json:"supplier_id"`
	ShipmentID    *id.ID      `db:"shipment_id" json:"shipment_id,omitempty"`
	LedgerType    LedgerType  `db:"ledger_type" json:"ledger_type"`
	Amount        types.Money `db:"amount" json:"amount"`
	InvoiceNumber *string     `db:"invoice_number" json:"invoice_number,omitempty"`
	Description   string      `db:"description" json:"description"`
	CreatedAt     time.Time   `db:"created_at" json:"created_at"`
}

// PaymentStatus is the schedule state of a payment entry.
type PaymentStatus string

const (
	PaymentScheduled PaymentStatus = "scheduled"
	PaymentCompleted PaymentStatus = "completed"
)

// PaymentScheduleEntry is a completed or scheduled supplier payment. Entries
// recorded by the payment handler are inserted already completed with
// paid_date set.
type PaymentScheduleEntry struct {
	ID            id.ID         `db:"id" json:"id"`
	PaymentNumber string        `db:"payment_number" json:"payment_number"`
	SupplierID    id.ID         `db:"supplier_id" json:"supplier_id"`
	ShipmentID    *id.ID        `db:"shipment_id" json:"shipment_id,omitempty"`
	BankAccountID *id.ID        `db:"bank_account_id" json:"bank_account_id,omitempty"`
	Status        PaymentStatus `db:"status" json:"status"`

	AmountForeign    types.Money `db:"amount_foreign" json:"amount_foreign"`
	Currency         string      `db:"currency" json:"currency"`
	FxRate           types.Money `db:"fx_rate" json:"fx_rate"`
	AmountZar        types.Money `db:"amount_zar" json:"amount_zar"`
	CommissionEarned types.Money `db:"commission_earned" json:"commission_earned"`

	DueDate   *time.Time `db:"due_date" json:"due_date,omitempty"`
	PaidDate  *time.Time `db:"paid_date" json:"paid_date,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}
