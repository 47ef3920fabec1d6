package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"rental-booking-backend/internal/domain"
	"rental-booking-backend/internal/logger"
	"rental-booking-backend/internal/repository"
)

type ledgerService struct {
	ledgerRepo repository.LedgerRepository
}

func NewLedgerService(ledgerRepo repository.LedgerRepository) LedgerService {
	return &ledgerService{ledgerRepo: ledgerRepo}
}

// PostDepositLiability records the caution deposit received at confirmation
// as a liability towards the customer.
func (s *ledgerService) PostDepositLiability(ctx context.Context, b *domain.Booking) error {
	if !b.CautionDepositAmount.IsPositive() {
		return nil
	}
	entry := &domain.JournalEntry{
		EntryNumber:   newEntryNumber(),
		PostingDate:   time.Now(),
		DebitAccount:  domain.AccountCash,
		CreditAccount: domain.AccountCautionDepositsReceived,
		Amount:        b.CautionDepositAmount.Round(2),
		Remark:        fmt.Sprintf("Caution deposit received for booking %s", b.BookingNumber),
		PartyType:     domain.PartyTypeCustomer,
		PartyID:       &b.CustomerID,
		BookingID:     &b.ID,
	}
	if err := s.ledgerRepo.CreateEntry(ctx, entry); err != nil {
		return domain.Wrap(domain.KindAccounting, err,
			"failed to post caution deposit for booking %s", b.BookingNumber)
	}
	logger.Info("caution deposit posted",
		"booking", b.BookingNumber, "entry", entry.EntryNumber, "amount", entry.Amount.StringFixed(2))
	return nil
}

// PostDepositRefund reverses part of the held deposit back to the customer.
func (s *ledgerService) PostDepositRefund(ctx context.Context, b *domain.Booking, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return nil
	}
	entry := &domain.JournalEntry{
		EntryNumber:   newEntryNumber(),
		PostingDate:   time.Now(),
		DebitAccount:  domain.AccountCautionDepositsReceived,
		CreditAccount: domain.AccountCash,
		Amount:        amount.Round(2),
		Remark:        fmt.Sprintf("Caution deposit refund for booking %s", b.BookingNumber),
		PartyType:     domain.PartyTypeCustomer,
		PartyID:       &b.CustomerID,
		BookingID:     &b.ID,
	}
	if err := s.ledgerRepo.CreateEntry(ctx, entry); err != nil {
		return domain.Wrap(domain.KindAccounting, err,
			"failed to post deposit refund for booking %s", b.BookingNumber)
	}
	logger.Info("caution deposit refund posted",
		"booking", b.BookingNumber, "entry", entry.EntryNumber, "amount", entry.Amount.StringFixed(2))
	return nil
}

// PostOwnerCommissions records one expense/payable entry per supplier.
// Posting continues past individual failures and reports them together.
func (s *ledgerService) PostOwnerCommissions(ctx context.Context, b *domain.Booking, commissions map[int32]decimal.Decimal) error {
	var failed []int32
	var firstErr error
	for supplierID, amount := range commissions {
		if !amount.IsPositive() {
			continue
		}
		supplierID := supplierID
		entry := &domain.JournalEntry{
			EntryNumber:   newEntryNumber(),
			PostingDate:   time.Now(),
			DebitAccount:  domain.AccountOwnerCommissionExpense,
			CreditAccount: domain.AccountOwnerCommissionPayable,
			Amount:        amount.Round(2),
			Remark:        fmt.Sprintf("Owner commission for booking %s", b.BookingNumber),
			PartyType:     domain.PartyTypeSupplier,
			PartyID:       &supplierID,
			BookingID:     &b.ID,
		}
		if err := s.ledgerRepo.CreateEntry(ctx, entry); err != nil {
			failed = append(failed, supplierID)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		logger.Info("owner commission posted",
			"booking", b.BookingNumber, "supplier_id", supplierID, "amount", entry.Amount.StringFixed(2))
	}
	if len(failed) > 0 {
		return domain.Wrap(domain.KindAccounting, firstErr,
			"failed to post owner commission for %d supplier(s) on booking %s", len(failed), b.BookingNumber)
	}
	return nil
}

// CancelBookingEntries voids every journal entry tied to a booking.
func (s *ledgerService) CancelBookingEntries(ctx context.Context, bookingID int32) error {
	cancelled, err := s.ledgerRepo.CancelByBooking(ctx, bookingID)
	if err != nil {
		return domain.Wrap(domain.KindAccounting, err,
			"failed to cancel journal entries for booking %d", bookingID)
	}
	if cancelled > 0 {
		logger.Info("journal entries cancelled", "booking_id", bookingID, "count", cancelled)
	}
	return nil
}

func newEntryNumber() string {
	return "JE-" + uuid.NewString()[:13]
}
