// Package payment records supplier payments: a completed schedule entry, a
// ledger credit and the commission earned on the conversion.
package payment

import (
	"context"
	"fmt"
	"time"

	"freightops/internal/core/apperror"
	"freightops/internal/core/id"
	"freightops/internal/core/tx"
	"freightops/internal/core/types"
	"freightops/internal/domain/event"
	"freightops/internal/domain/ledger"
	"freightops/internal/domain/party"
	"freightops/internal/domain/shipment"
	"freightops/pkg/logger"
	"freightops/pkg/numerator"
)

// Input is a record_payment command. Supplier is required; shipment, bank
// account and payment date are optional.
type Input struct {
	SupplierName  string
	AmountForeign types.Money
	Currency      string
	FxRate        types.Money
	BankAccount   string
	LotNumber     string
	Date          *time.Time
}

// Result is the outcome returned to the gateway: the stored entry plus the
// supplier's post-payment balance read back from the ledger.
type Result struct {
	Payment         *ledger.PaymentScheduleEntry
	Supplier        *party.Supplier
	SupplierBalance types.Money
}

// Service implements the payment handler.
type Service struct {
	resolver       *party.Resolver
	suppliers      party.SupplierRepository
	shipments      shipment.Repository
	payments       ledger.PaymentRepository
	entries        ledger.EntryRepository
	numbers        *numerator.Service
	txManager      tx.Manager
	events         event.Publisher
	commissionRate types.Money
	now            func() time.Time
}

// NewService creates the payment handler.
func NewService(
	resolver *party.Resolver,
	suppliers party.SupplierRepository,
	shipments shipment.Repository,
	payments ledger.PaymentRepository,
	entries ledger.EntryRepository,
	numbers *numerator.Service,
	txManager tx.Manager,
	events event.Publisher,
	commissionRate types.Money,
) *Service {
	return &Service{
		resolver:       resolver,
		suppliers:      suppliers,
		shipments:      shipments,
		payments:       payments,
		entries:        entries,
		numbers:        numbers,
		txManager:      txManager,
		events:         events,
		commissionRate: commissionRate,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// Record stores a completed payment and posts the matching ledger credit in
// one transaction, then reads back the supplier's updated balance.
func (s *Service) Record(ctx context.Context, in Input) (*Result, error) {
	if !in.AmountForeign.IsPositive() {
		return nil, apperror.NewValidation("amount_foreign must be positive")
	}
	if !in.FxRate.IsPositive() {
		return nil, apperror.NewValidation("fx_rate must be positive")
	}

	supplier, err := s.resolver.ResolveSupplier(ctx, in.SupplierName)
	if err != nil {
		return nil, err
	}

	var shipmentID *id.ID
	if in.LotNumber != "" {
		sh, err := s.shipments.GetByLot(ctx, in.LotNumber)
		if err != nil {
			return nil, err
		}
		shipmentID = &sh.ID
	}

	bank, err := s.resolver.ResolveBankAccount(ctx, in.BankAccount)
	if err != nil {
		return nil, err
	}

	amountZar, commission := ledger.PaymentAmounts(in.AmountForeign, in.FxRate, s.commissionRate)

	now := s.now()
	paidDate := now
	if in.Date != nil {
		paidDate = *in.Date
	}

	currency := in.Currency
	if currency == "" {
		currency = supplier.Currency
	}

	number, err := s.numbers.GetNextNumber(ctx, numerator.DefaultConfig("PAY"), now)
	if err != nil {
		return nil, apperror.NewDatabase(err)
	}

	entry := &ledger.PaymentScheduleEntry{
		ID:               id.New(),
		PaymentNumber:    number,
		SupplierID:       supplier.ID,
		ShipmentID:       shipmentID,
		Status:           ledger.PaymentCompleted,
		AmountForeign:    in.AmountForeign,
		Currency:         currency,
		FxRate:           in.FxRate,
		AmountZar:        amountZar,
		CommissionEarned: commission,
		PaidDate:         &paidDate,
		CreatedAt:        now,
	}
	if bank != nil {
		entry.BankAccountID = &bank.ID
	}

	reference := "Payment " + number
	if bank != nil {
		reference = fmt.Sprintf("Payment %s via %s", number, bank.Name)
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.payments.Create(ctx, entry); err != nil {
			return err
		}

		credit := &ledger.SupplierLedgerEntry{
			ID:          id.New(),
			SupplierID:  supplier.ID,
			ShipmentID:  shipmentID,
			LedgerType:  ledger.LedgerCredit,
			Amount:      in.AmountForeign,
			Description: reference,
			CreatedAt:   now,
		}
		if err := s.entries.Append(ctx, credit); err != nil {
			return err
		}

		return s.events.Publish(ctx, event.Event{
			AggregateType: "payment",
			AggregateID:   entry.ID,
			Type:          event.TypePaymentRecorded,
			Payload: map[string]any{
				"payment_number": number,
				"supplier":       supplier.Name,
				"amount_foreign": in.AmountForeign,
				"amount_zar":     amountZar,
			},
		})
	})
	if err != nil {
		return nil, err
	}

	// Balance is trigger-maintained; read it back after the commit.
	balance, err := s.suppliers.GetBalance(ctx, supplier.ID)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "payment recorded",
		"payment_number", number,
		"supplier", supplier.Name,
		"amount_zar", amountZar,
	)

	return &Result{Payment: entry, Supplier: supplier, SupplierBalance: balance}, nil
}
