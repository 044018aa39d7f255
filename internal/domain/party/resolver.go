package party

import (
	"context"
	"strings"

	"freightops/internal/core/apperror"
	"freightops/pkg/logger"
)

// Resolver resolves free-text names from parsed commands to canonical records.
// Lookup is a case-insensitive substring match against the stored name.
// Creation commands may create missing suppliers/clients on first reference;
// query and update commands never create implicitly.
type Resolver struct {
	suppliers SupplierRepository
	clients   ClientRepository
	banks     BankAccountRepository
}

// NewResolver creates an entity resolver.
func NewResolver(suppliers SupplierRepository, clients ClientRepository, banks BankAccountRepository) *Resolver {
	return &Resolver{suppliers: suppliers, clients: clients, banks: banks}
}

// ResolveSupplier finds a supplier by name fragment. NOT_FOUND when absent.
func (r *Resolver) ResolveSupplier(ctx context.Context, fragment string) (*Supplier, error) {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return nil, apperror.NewMissingField("supplier_name")
	}
	return r.suppliers.FindByNameFragment(ctx, fragment)
}

// ResolveOrCreateSupplier finds a supplier by name fragment, inserting a new
// record with the given exact name and a default currency when nothing matches.
func (r *Resolver) ResolveOrCreateSupplier(ctx context.Context, name, currency string) (*Supplier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.NewMissingField("supplier_name")
	}

	existing, err := r.suppliers.FindByNameFragment(ctx, name)
	if err == nil {
		return existing, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, err
	}

	s := NewSupplier(name, currency)
	if err := r.suppliers.Create(ctx, s); err != nil {
		return nil, err
	}
	logger.Info(ctx, "supplier created on first reference", "supplier", s.Name, "currency", s.Currency)
	return s, nil
}

// ResolveClient finds a client by name fragment. NOT_FOUND when absent.
func (r *Resolver) ResolveClient(ctx context.Context, fragment string) (*Client, error) {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return nil, apperror.NewMissingField("client_name")
	}
	return r.clients.FindByNameFragment(ctx, fragment)
}

// ResolveOrCreateClient finds a client, inserting one when nothing matches.
func (r *Resolver) ResolveOrCreateClient(ctx context.Context, name string) (*Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.NewMissingField("client_name")
	}

	existing, err := r.clients.FindByNameFragment(ctx, name)
	if err == nil {
		return existing, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, err
	}

	c := NewClient(name)
	if err := r.clients.Create(ctx, c); err != nil {
		return nil, err
	}
	logger.Info(ctx, "client created on first reference", "client", c.Name)
	return c, nil
}

// ResolveBankAccount finds a bank account by name fragment. Returns (nil, nil)
// when the fragment is empty or nothing matches: payments may reference no
// account at all.
func (r *Resolver) ResolveBankAccount(ctx context.Context, fragment string) (*BankAccount, error) {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return nil, nil
	}
	acc, err := r.banks.FindByNameFragment(ctx, fragment)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return acc, nil
}
