// Package party provides the reference entities the automation commands
// refer to by free-text name: suppliers, clients and bank accounts.
package party

import (
	"time"

	"freightops/internal/core/id"
	"freightops/internal/core/types"
)

// DefaultSupplierCurrency is assigned to suppliers created on first mention.
const DefaultSupplierCurrency = "USD"

// Supplier is a freight supplier paid in its own foreign currency.
// CurrentBalance is the sum of ledger debits minus credits, maintained by a
// database trigger; the core only appends ledger entries and reads it back.
type Supplier struct {
	ID             id.ID       `db:"id" json:"id"`
	Name           string      `db:"name" json:"name"`
	Currency       string      `db:"currency" json:"currency"`
	ContactPerson  *string     `db:"contact_person" json:"contact_person,omitempty"`
	CurrentBalance types.Money `db:"current_balance" json:"current_balance"`
	CreatedAt      time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time   `db:"updated_at" json:"updated_at"`
}

// Client is the invoiced party, billed in ZAR.
type Client struct {
	ID        id.ID     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// BankAccount identifies the account a payment was made from.
type BankAccount struct {
	ID            id.ID     `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	AccountNumber *string   `db:"account_number" json:"account_number,omitempty"`
	Currency      string    `db:"currency" json:"currency"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// NewSupplier creates a supplier with defaults applied.
func NewSupplier(name, currency string) *Supplier {
	if currency == "" {
		currency = DefaultSupplierCurrency
	}
	now := time.Now().UTC()
	return &Supplier{
		ID:             id.New(),
		Name:           name,
		Currency:       currency,
		CurrentBalance: types.Zero(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// NewClient creates a client record.
func NewClient(name string) *Client {
	now := time.Now().UTC()
	return &Client{
		ID:        id.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
