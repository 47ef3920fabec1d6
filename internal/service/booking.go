package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"rental-booking-backend/internal/config"
	"rental-booking-backend/internal/domain"
	"rental-booking-backend/internal/logger"
	"rental-booking-backend/internal/repository"
	"rental-booking-backend/internal/utils"
)

var fiveTimes = decimal.NewFromInt(5)

type bookingService struct {
	tx           repository.Transactor
	bookingRepo  repository.BookingRepository
	itemRepo     repository.ItemRepository
	customerRepo repository.CustomerRepository
	ledgerSvc    LedgerService
	emailSvc     EmailService
	policy       config.BookingConfig
}

func NewBookingService(
	tx repository.Transactor,
	bookingRepo repository.BookingRepository,
	itemRepo repository.ItemRepository,
	customerRepo repository.CustomerRepository,
	ledgerSvc LedgerService,
	emailSvc EmailService,
	policy config.BookingConfig,
) BookingService {
	return &bookingService{
		tx:           tx,
		bookingRepo:  bookingRepo,
		itemRepo:     itemRepo,
		customerRepo: customerRepo,
		ledgerSvc:    ledgerSvc,
		emailSvc:     emailSvc,
		policy:       policy,
	}
}

func (s *bookingService) Get(ctx context.Context, bookingID int32) (*domain.Booking, error) {
	return s.bookingRepo.GetByID(ctx, bookingID)
}

// CreateDraft validates a new rental booking and stores it unconfirmed.
// Availability is checked here so the salesman learns about clashes early,
// and re-checked under row locks at Confirm.
func (s *bookingService) CreateDraft(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	if !b.IsRentalBooking {
		return nil, domain.E(domain.KindValidation, "not a rental booking")
	}
	if _, err := s.customerRepo.GetByID(ctx, b.CustomerID); err != nil {
		return nil, err
	}
	if err := s.validateDates(b); err != nil {
		return nil, err
	}
	if err := s.validateAmounts(b); err != nil {
		return nil, err
	}
	if len(b.Items) == 0 {
		return nil, domain.E(domain.KindValidation, "booking has no line items")
	}

	b.RentalStartDate, b.RentalEndDate = utils.RentalWindow(b.FunctionDate, b.RentalDurationDays)

	var nonRental []string
	for _, line := range b.Items {
		if line.Qty <= 0 {
			return nil, domain.E(domain.KindValidation, "line item %s has non-positive quantity", line.ItemCode)
		}
		item, err := s.itemRepo.GetByCode(ctx, line.ItemCode)
		if err != nil {
			return nil, err
		}
		if !item.IsRentalItem {
			nonRental = append(nonRental, item.Code)
			continue
		}
		conflicts, err := s.bookingRepo.ListConflicts(ctx, item.Code, b.RentalStartDate, b.RentalEndDate, b.ID)
		if err != nil {
			return nil, err
		}
		if len(conflicts) > 0 {
			return nil, conflictError(item.Code, conflicts)
		}
	}
	if len(nonRental) > 0 {
		return nil, domain.E(domain.KindValidation,
			"the following items are not enabled for rental: %s", strings.Join(nonRental, ", "))
	}

	if err := s.checkEligibility(ctx, b.CustomerID, b.ID); err != nil {
		return nil, err
	}

	b.Status = domain.BookingStatusDraft
	if b.BookingNumber == "" {
		b.BookingNumber = newBookingNumber()
	}
	if err := s.bookingRepo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Confirm submits a Draft booking. Item locks, the availability re-check,
// and every status write share one transaction; a losing concurrent
// confirmation surfaces as a conflict and can be retried. Ledger postings
// and notifications run after commit and never roll the confirmation back.
func (s *bookingService) Confirm(ctx context.Context, bookingID int32) (*domain.Booking, []string, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}
	if !b.IsRentalBooking {
		return nil, nil, domain.E(domain.KindState, "booking %s is not a rental booking", b.BookingNumber)
	}
	if b.Status != domain.BookingStatusDraft {
		return nil, nil, domain.E(domain.KindState,
			"booking %s cannot be confirmed from status %s", b.BookingNumber, b.Status)
	}
	if err := s.validateDates(b); err != nil {
		return nil, nil, err
	}
	if err := s.validateAmounts(b); err != nil {
		return nil, nil, err
	}
	if err := s.checkEligibility(ctx, b.CustomerID, b.ID); err != nil {
		return nil, nil, err
	}

	b.RentalStartDate, b.RentalEndDate = utils.RentalWindow(b.FunctionDate, b.RentalDurationDays)

	var commissions map[int32]decimal.Decimal
	err = s.tx.InTransaction(ctx, func(r *repository.Registry) error {
		lines := make([]CommissionLine, 0, len(b.Items))
		for _, line := range b.Items {
			item, err := r.Items.GetByCodeForUpdate(ctx, line.ItemCode)
			if err != nil {
				return err
			}
			if !item.IsRentalItem {
				return domain.E(domain.KindValidation, "item %s is not enabled for rental", item.Code)
			}
			if item.ApprovalStatus != domain.ApprovalApproved {
				return domain.E(domain.KindState,
					"item %s is not approved for rental (status: %s)", item.Code, item.ApprovalStatus)
			}
			if item.RentalStatus == domain.ItemStatusMaintenance {
				return domain.E(domain.KindState, "item %s is under maintenance", item.Code)
			}
			conflicts, err := r.Bookings.ListConflicts(ctx, item.Code, b.RentalStartDate, b.RentalEndDate, b.ID)
			if err != nil {
				return err
			}
			if len(conflicts) > 0 {
				return conflictError(item.Code, conflicts)
			}
			lines = append(lines, CommissionLine{Item: item, Qty: line.Qty, Amount: line.Amount})
		}

		commissions = ComputeCommissions(lines)
		b.TotalOwnerCommission = TotalCommission(commissions)
		if b.CautionDepositAmount.IsZero() {
			b.CautionDepositAmount = ComputeDefaultDeposit(lines, s.policy.FallbackDeposit())
		}

		if b.IsExchange && b.OriginalBookingID != nil {
			original, err := r.Bookings.GetByID(ctx, *b.OriginalBookingID)
			if err != nil {
				return err
			}
			if original.Status.IsTerminal() {
				return domain.E(domain.KindInvalidExchange,
					"cannot exchange booking %s with status %s", original.BookingNumber, original.Status)
			}
			if err := r.Bookings.UpdateStatus(ctx, original.ID, domain.BookingStatusExchanged); err != nil {
				return err
			}
		}

		b.Status = domain.BookingStatusConfirmed
		if err := r.Bookings.Update(ctx, b); err != nil {
			return err
		}
		for _, line := range lines {
			if err := r.Items.UpdateRentalStatus(ctx, line.Item.Code, domain.ItemStatusBooked); err != nil {
				return err
			}
			if err := r.Items.IncrementRentalCount(ctx, line.Item.Code); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	warnings := s.postConfirmSideEffects(ctx, b, commissions)
	return b, warnings, nil
}

// postConfirmSideEffects posts the deposit liability and per-supplier
// commission entries, refreshes customer stats, and notifies the customer.
// All best-effort: failures are logged and reported as warnings.
func (s *bookingService) postConfirmSideEffects(ctx context.Context, b *domain.Booking, commissions map[int32]decimal.Decimal) []string {
	var warnings []string

	if b.CautionDepositAmount.IsPositive() {
		if err := s.ledgerSvc.PostDepositLiability(ctx, b); err != nil {
			logger.SideEffect("post_deposit_liability", err, "booking", b.BookingNumber)
			warnings = append(warnings, fmt.Sprintf("caution deposit entry could not be created: %v", err))
		}
	}
	if len(commissions) > 0 {
		if err := s.ledgerSvc.PostOwnerCommissions(ctx, b, commissions); err != nil {
			logger.SideEffect("post_owner_commissions", err, "booking", b.BookingNumber)
			warnings = append(warnings, fmt.Sprintf("owner commission entries could not be created: %v", err))
		}
	}
	s.refreshCustomerStats(ctx, b)

	if customer, err := s.customerRepo.GetByID(ctx, b.CustomerID); err == nil && customer.Email != "" {
		if err := s.emailSvc.SendBookingConfirmation(ctx, customer.Email, customer.Name, b); err != nil {
			logger.SideEffect("send_booking_confirmation", err, "booking", b.BookingNumber)
		}
	}
	return warnings
}

// UpdateStatus dispatches an explicit status change to the matching
// transition. Unknown or unreachable targets are state errors.
func (s *bookingService) UpdateStatus(ctx context.Context, bookingID int32, newStatus domain.BookingStatus, notes string) (*domain.Booking, []string, error) {
	switch newStatus {
	case domain.BookingStatusOutForRental:
		return s.markOutForRental(ctx, bookingID, notes)
	case domain.BookingStatusPartiallyReturned:
		return s.markPartiallyReturned(ctx, bookingID, notes)
	case domain.BookingStatusReturned:
		return s.markReturned(ctx, bookingID, notes)
	case domain.BookingStatusCompleted:
		return s.complete(ctx, bookingID)
	case domain.BookingStatusCancelled:
		return s.cancel(ctx, bookingID, notes)
	default:
		return nil, nil, domain.E(domain.KindState, "status %s cannot be set directly", newStatus)
	}
}

func (s *bookingService) markOutForRental(ctx context.Context, bookingID int32, notes string) (*domain.Booking, []string, error) {
	b, err := s.loadRentalBooking(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}
	if b.Status != domain.BookingStatusConfirmed {
		return nil, nil, domain.E(domain.KindState,
			"booking %s cannot go out for rental from status %s", b.BookingNumber, b.Status)
	}

	if b.ActualDeliveryTime == nil {
		now := time.Now()
		b.ActualDeliveryTime = &now
	}
	if notes != "" {
		b.DeliveryNotes = notes
	}
	b.Status = domain.BookingStatusOutForRental

	err = s.tx.InTransaction(ctx, func(r *repository.Registry) error {
		if err := r.Bookings.Update(ctx, b); err != nil {
			return err
		}
		return s.setItemStatuses(ctx, r, b, domain.ItemStatusOutForRental)
	})
	if err != nil {
		return nil, nil, err
	}
	return b, nil, nil
}

func (s *bookingService) markPartiallyReturned(ctx context.Context, bookingID int32, notes string) (*domain.Booking, []string, error) {
	b, err := s.loadRentalBooking(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}
	if b.Status != domain.BookingStatusOutForRental {
		return nil, nil, domain.E(domain.KindState,
			"booking %s cannot be partially returned from status %s", b.BookingNumber, b.Status)
	}
	if notes != "" {
		b.ReturnNotes = appendNote(b.ReturnNotes, notes)
	}
	b.Status = domain.BookingStatusPartiallyReturned
	if err := s.bookingRepo.Update(ctx, b); err != nil {
		return nil, nil, err
	}
	return b, nil, nil
}

// markReturned records the return and triggers the caution deposit refund
// for the remaining balance. Items go to cleaning first; they become
// Available again only on Complete.
func (s *bookingService) markReturned(ctx context.Context, bookingID int32, notes string) (*domain.Booking, []string, error) {
	b, err := s.loadRentalBooking(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}
	if b.Status != domain.BookingStatusOutForRental {
		return nil, nil, domain.E(domain.KindState,
			"booking %s cannot be returned from status %s", b.BookingNumber, b.Status)
	}

	if b.ActualReturnTime == nil {
		now := time.Now()
		b.ActualReturnTime = &now
	}
	if notes != "" {
		b.ReturnNotes = appendNote(b.ReturnNotes, notes)
	}
	b.Status = domain.BookingStatusReturned
	refund := b.RemainingDeposit()
	if refund.IsPositive() {
		b.CautionDepositRefunded = b.CautionDepositAmount
	}

	err = s.tx.InTransaction(ctx, func(r *repository.Registry) error {
		if err := r.Bookings.Update(ctx, b); err != nil {
			return err
		}
		return s.setItemStatuses(ctx, r, b, domain.ItemStatusUnderCleaning)
	})
	if err != nil {
		return nil, nil, err
	}

	// The refund entry posts only once the return is committed, so the
	// ledger never records a refund for a booking still out for rental.
	var warnings []string
	if refund.IsPositive() {
		if err := s.ledgerSvc.PostDepositRefund(ctx, b, refund); err != nil {
			logger.SideEffect("post_deposit_refund", err, "booking", b.BookingNumber)
			warnings = append(warnings, fmt.Sprintf("caution deposit refund entry could not be created: %v", err))
		} else if customer, cerr := s.customerRepo.GetByID(ctx, b.CustomerID); cerr == nil && customer.Email != "" {
			if err := s.emailSvc.SendDepositRefundNotice(ctx, customer.Email, customer.Name, b, refund); err != nil {
				logger.SideEffect("send_deposit_refund_notice", err, "booking", b.BookingNumber)
			}
		}
	}
	return b, warnings, nil
}

func (s *bookingService) complete(ctx context.Context, bookingID int32) (*domain.Booking, []string, error) {
	b, err := s.loadRentalBooking(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}
	if b.Status != domain.BookingStatusReturned && b.Status != domain.BookingStatusPartiallyReturned {
		return nil, nil, domain.E(domain.KindState,
			"booking %s cannot be completed from status %s", b.BookingNumber, b.Status)
	}

	if b.ActualReturnTime == nil {
		now := time.Now()
		b.ActualReturnTime = &now
	}
	b.Status = domain.BookingStatusCompleted

	err = s.tx.InTransaction(ctx, func(r *repository.Registry) error {
		if err := r.Bookings.Update(ctx, b); err != nil {
			return err
		}
		return s.setItemStatuses(ctx, r, b, domain.ItemStatusAvailable)
	})
	if err != nil {
		return nil, nil, err
	}
	return b, nil, nil
}

// cancel reverses the booking's item holds. Journal reversal happens by
// cancelling the booking's entries; the accounts themselves are managed
// externally. Cancelling an exchange booking reinstates the original.
func (s *bookingService) cancel(ctx context.Context, bookingID int32, notes string) (*domain.Booking, []string, error) {
	b, err := s.loadRentalBooking(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}
	switch b.Status {
	case domain.BookingStatusConfirmed, domain.BookingStatusOutForRental, domain.BookingStatusPartiallyReturned:
	default:
		return nil, nil, domain.E(domain.KindState,
			"booking %s cannot be cancelled from status %s", b.BookingNumber, b.Status)
	}

	if notes != "" {
		b.ReturnNotes = appendNote(b.ReturnNotes, notes)
	}
	b.Status = domain.BookingStatusCancelled

	err = s.tx.InTransaction(ctx, func(r *repository.Registry) error {
		if err := r.Bookings.Update(ctx, b); err != nil {
			return err
		}
		if err := s.setItemStatuses(ctx, r, b, domain.ItemStatusAvailable); err != nil {
			return err
		}
		if b.IsExchange && b.OriginalBookingID != nil {
			return r.Bookings.UpdateStatus(ctx, *b.OriginalBookingID, domain.BookingStatusConfirmed)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	var warnings []string
	if err := s.ledgerSvc.CancelBookingEntries(ctx, b.ID); err != nil {
		logger.SideEffect("cancel_booking_entries", err, "booking", b.BookingNumber)
		warnings = append(warnings, fmt.Sprintf("journal entries could not be cancelled: %v", err))
	}
	s.refreshCustomerStats(ctx, b)
	return b, warnings, nil
}

// RefundDeposit releases part of the held caution deposit. The refunded
// total can never exceed the deposit amount.
func (s *bookingService) RefundDeposit(ctx context.Context, bookingID int32, amount decimal.Decimal, notes string) (*domain.Booking, []string, error) {
	b, err := s.loadRentalBooking(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}

	remaining := b.RemainingDeposit()
	if !amount.IsPositive() {
		return nil, nil, domain.E(domain.KindInvalidRefund, "refund amount must be positive")
	}
	if amount.GreaterThan(remaining) {
		return nil, nil, domain.E(domain.KindInvalidRefund,
			"refund amount %s exceeds remaining deposit of %s", amount.StringFixed(2), remaining.StringFixed(2))
	}

	b.CautionDepositRefunded = b.CautionDepositRefunded.Add(amount)
	if notes != "" {
		b.ReturnNotes = appendNote(b.ReturnNotes, "Refund: "+notes)
	}
	if err := s.bookingRepo.Update(ctx, b); err != nil {
		return nil, nil, err
	}

	var warnings []string
	if err := s.ledgerSvc.PostDepositRefund(ctx, b, amount); err != nil {
		logger.SideEffect("post_deposit_refund", err, "booking", b.BookingNumber)
		warnings = append(warnings, fmt.Sprintf("refund journal entry could not be created: %v", err))
	}
	return b, warnings, nil
}

func (s *bookingService) loadRentalBooking(ctx context.Context, bookingID int32) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.IsRentalBooking {
		return nil, domain.E(domain.KindState, "booking %s is not a rental booking", b.BookingNumber)
	}
	return b, nil
}

// setItemStatuses moves every rental item on the booking to status.
func (s *bookingService) setItemStatuses(ctx context.Context, r *repository.Registry, b *domain.Booking, status domain.ItemRentalStatus) error {
	for _, line := range b.Items {
		item, err := r.Items.GetByCode(ctx, line.ItemCode)
		if err != nil {
			return err
		}
		if !item.IsRentalItem {
			continue
		}
		if err := r.Items.UpdateRentalStatus(ctx, item.Code, status); err != nil {
			return err
		}
	}
	return nil
}

func (s *bookingService) validateDates(b *domain.Booking) error {
	if b.FunctionDate.IsZero() {
		return domain.E(domain.KindValidation, "function date is mandatory for rental bookings")
	}
	if b.RentalDurationDays < 1 {
		return domain.E(domain.KindValidation, "rental duration must be at least 1 day")
	}
	today := utils.Truncate(time.Now())
	functionDate := utils.Truncate(b.FunctionDate)
	if functionDate.Before(today) {
		return domain.E(domain.KindValidation, "function date cannot be in the past")
	}
	if functionDate.After(today.AddDate(0, 0, s.policy.MaxAdvanceDays)) {
		return domain.E(domain.KindValidation,
			"function date cannot be more than %d days in advance", s.policy.MaxAdvanceDays)
	}
	return nil
}

func (s *bookingService) validateAmounts(b *domain.Booking) error {
	if b.GrandTotal.IsPositive() {
		if b.AdvanceAmount.GreaterThan(b.GrandTotal) {
			return domain.E(domain.KindValidation, "advance amount cannot exceed total booking amount")
		}
		if b.CautionDepositAmount.GreaterThan(b.GrandTotal.Mul(fiveTimes)) {
			return domain.E(domain.KindValidation, "caution deposit is unusually high, please verify the amount")
		}
	}
	if b.CautionDepositRefunded.GreaterThan(b.CautionDepositAmount) {
		return domain.E(domain.KindValidation, "refunded deposit cannot exceed the deposit amount")
	}
	return nil
}

func (s *bookingService) checkEligibility(ctx context.Context, customerID, excludeBookingID int32) error {
	result, err := evaluateEligibility(ctx, s.bookingRepo, s.policy, customerID, excludeBookingID)
	if err != nil {
		return err
	}
	if !result.Eligible {
		return domain.E(domain.KindIneligibleCustomer,
			"customer %d is not eligible for a new booking: %s", customerID, strings.Join(result.Issues, "; "))
	}
	return nil
}

func (s *bookingService) refreshCustomerStats(ctx context.Context, b *domain.Booking) {
	count, total, last, err := s.bookingRepo.AggregateCustomerStats(ctx, b.CustomerID)
	if err == nil {
		err = s.customerRepo.UpdateStats(ctx, b.CustomerID, count, total, last)
	}
	if err != nil {
		logger.SideEffect("refresh_customer_stats", err, "customer_id", b.CustomerID)
	}
}

// conflictError reports every clash for an item, naming the first one.
func conflictError(itemCode string, conflicts []domain.BookingConflict) error {
	c := conflicts[0]
	err := domain.E(domain.KindConflict,
		"item %s is already booked from %s to %s for customer %d (booking %s)",
		itemCode,
		c.RentalStartDate.Format(utils.DateFormat),
		c.RentalEndDate.Format(utils.DateFormat),
		c.CustomerID, c.BookingNumber)
	if len(conflicts) > 1 {
		err.Message += fmt.Sprintf(" and %d more", len(conflicts)-1)
	}
	return err
}

func appendNote(existing, note string) string {
	if existing == "" {
		return note
	}
	return existing + "\n" + note
}

func newBookingNumber() string {
	return "RB-" + strings.ToUpper(uuid.NewString()[:8])
}
