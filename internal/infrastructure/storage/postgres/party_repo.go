package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"freightops/internal/core/apperror"
	"freightops/internal/core/id"
	"freightops/internal/core/types"
	"freightops/internal/domain/party"
)

var supplierColumns = []string{
	"id", "name", "currency", "contact_person", "current_balance", "created_at", "updated_at",
}

// SupplierRepo is the PostgreSQL implementation of party.SupplierRepository.
type SupplierRepo struct {
	tm *TxManager
}

func NewSupplierRepo(tm *TxManager) *SupplierRepo {
	return &SupplierRepo{tm: tm}
}

var _ party.SupplierRepository = (*SupplierRepo)(nil)

// FindByNameFragment matches case-insensitively anywhere in the name. Ties
// resolve to the most recently created supplier.
func (r *SupplierRepo) FindByNameFragment(ctx context.Context, fragment string) (*party.Supplier, error) {
	q := builder().
		Select(supplierColumns...).
		From("suppliers").
		Where("name ILIKE ?", "%"+fragment+"%").
		OrderBy("created_at DESC").
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build supplier lookup: %w", err)
	}

	var s party.Supplier
	err = pgxscan.Get(ctx, r.tm.GetQuerier(ctx), &s, sql, args...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NewNotFound("supplier", fragment)
	}
	if err != nil {
		return nil, apperror.NewDatabase(err)
	}
	return &s, nil
}

func (r *SupplierRepo) GetByID(ctx context.Context, supplierID id.ID) (*party.Supplier, error) {
	sql, args, err := builder().
		Select(supplierColumns...).
		From("suppliers").
		Where("id = ?", supplierID).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build supplier get: %w", err)
	}

	var s party.Supplier
	err = pgxscan.Get(ctx, r.tm.GetQuerier(ctx), &s, sql, args...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NewNotFound("supplier", supplierID.String())
	}
	if err != nil {
		return nil, apperror.NewDatabase(err)
	}
	return &s, nil
}

func (r *SupplierRepo) Create(ctx context.Context, s *party.Supplier) error {
	sql, args, err := builder().
		Insert("suppliers").
		Columns("id", "name", "currency", "contact_person", "created_at", "updated_at").
		Values(s.ID, s.Name, s.Currency, s.ContactPerson, s.CreatedAt, s.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build supplier insert: %w", err)
	}

	if _, err := r.tm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		if isUniqueViolation(err) {
			return apperror.NewDuplicate("supplier", "name", s.Name)
		}
		return apperror.NewDatabase(err)
	}
	return nil
}

// GetBalance reads the trigger-maintained running balance directly, so it
// reflects ledger entries written earlier in the same transaction.
func (r *SupplierRepo) GetBalance(ctx context.Context, supplierID id.ID) (types.Money, error) {
	sql, args, err := builder().
		Select("current_balance").
		From("suppliers").
		Where("id = ?", supplierID).
		ToSql()
	if err != nil {
		return types.Zero(), fmt.Errorf("build balance query: %w", err)
	}

	var balance types.Money
	err = pgxscan.Get(ctx, r.tm.GetQuerier(ctx), &balance, sql, args...)
	if errors.Is(err, pgx.ErrNoRows) {
		return types.Zero(), apperror.NewNotFound("supplier", supplierID.String())
	}
	if err != nil {
		return types.Zero(), apperror.NewDatabase(err)
	}
	return balance, nil
}

// ClientRepo is the PostgreSQL implementation of party.ClientRepository.
type ClientRepo struct {
	tm *TxManager
}

func NewClientRepo(tm *TxManager) *ClientRepo {
	return &ClientRepo{tm: tm}
}

var _ party.ClientRepository = (*ClientRepo)(nil)

func (r *ClientRepo) FindByNameFragment(ctx context.Context, fragment string) (*party.Client, error) {
	sql, args, err := builder().
		Select("id", "name", "created_at", "updated_at").
		From("clients").
		Where("name ILIKE ?", "%"+fragment+"%").
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build client lookup: %w", err)
	}

	var c party.Client
	err = pgxscan.Get(ctx, r.tm.GetQuerier(ctx), &c, sql, args...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NewNotFound("client", fragment)
	}
	if err != nil {
		return nil, apperror.NewDatabase(err)
	}
	return &c, nil
}

func (r *ClientRepo) Create(ctx context.Context, c *party.Client) error {
	sql, args, err := builder().
		Insert("clients").
		Columns("id", "name", "created_at", "updated_at").
		Values(c.ID, c.Name, c.CreatedAt, c.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build client insert: %w", err)
	}

	if _, err := r.tm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		if isUniqueViolation(err) {
			return apperror.NewDuplicate("client", "name", c.Name)
		}
		return apperror.NewDatabase(err)
	}
	return nil
}

// BankAccountRepo is the PostgreSQL implementation of party.BankAccountRepository.
type BankAccountRepo struct {
	tm *TxManager
}

func NewBankAccountRepo(tm *TxManager) *BankAccountRepo {
	return &BankAccountRepo{tm: tm}
}

var _ party.BankAccountRepository = (*BankAccountRepo)(nil)

func (r *BankAccountRepo) FindByNameFragment(ctx context.Context, fragment string) (*party.BankAccount, error) {
	sql, args, err := builder().
		Select("id", "name", "account_number", "currency", "created_at").
		From("bank_accounts").
		Where("name ILIKE ?", "%"+fragment+"%").
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build bank account lookup: %w", err)
	}

	var b party.BankAccount
	err = pgxscan.Get(ctx, r.tm.GetQuerier(ctx), &b, sql, args...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NewNotFound("bank account", fragment)
	}
	if err != nil {
		return nil, apperror.NewDatabase(err)
	}
	return &b, nil
}
