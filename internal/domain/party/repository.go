package party

import (
	"context"

	"freightops/internal/core/id"
	"freightops/internal/core/types"
)

// SupplierRepository defines supplier persistence.
type SupplierRepository interface {
	// FindByNameFragment retrieves the supplier whose name contains fragment,
	// case-insensitively. Multiple matches resolve to the most recently
	// created one. Returns apperror NOT_FOUND when nothing matches.
	FindByNameFragment(ctx context.Context, fragment string) (*Supplier, error)

	GetByID(ctx context.Context, supplierID id.ID) (*Supplier, error)

	Create(ctx context.Context, s *Supplier) error

	// GetBalance reads the trigger-maintained running balance.
	GetBalance(ctx context.Context, supplierID id.ID) (types.Money, error)
}

// ClientRepository defines client persistence.
type ClientRepository interface {
	FindByNameFragment(ctx context.Context, fragment string) (*Client, error)
	Create(ctx context.Context, c *Client) error
}

// BankAccountRepository defines bank account lookup. Bank accounts are never
// created by the core.
type BankAccountRepository interface {
	FindByNameFragment(ctx context.Context, fragment string) (*BankAccount, error)
}
