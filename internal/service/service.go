package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"rental-booking-backend/internal/domain"
)

// AvailabilityService answers whether an item is free for a date range.
type AvailabilityService interface {
	// CheckAvailability returns whether the item is free for the
	// inclusive range [start, end], together with every conflicting
	// booking. excludeBookingID (when non-zero) is left out of the
	// conflict scan so a booking never conflicts with itself.
	CheckAvailability(ctx context.Context, itemCode string, start, end time.Time, excludeBookingID int32) (bool, []domain.BookingConflict, error)
	// GetItemCalendar lists upcoming holds on an item.
	GetItemCalendar(ctx context.Context, itemCode string, monthsAhead int) ([]domain.BookingConflict, error)
}

// BookingService drives a booking through its lifecycle.
type BookingService interface {
	CreateDraft(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	// Confirm submits a Draft booking: availability is re-checked under
	// row locks, items move to Booked, deposit and commissions are
	// computed and persisted. Accounting side effects run after commit;
	// their failures come back as warnings, never as errors.
	Confirm(ctx context.Context, bookingID int32) (*domain.Booking, []string, error)
	UpdateStatus(ctx context.Context, bookingID int32, newStatus domain.BookingStatus, notes string) (*domain.Booking, []string, error)
	RefundDeposit(ctx context.Context, bookingID int32, amount decimal.Decimal, notes string) (*domain.Booking, []string, error)
	Get(ctx context.Context, bookingID int32) (*domain.Booking, error)
}

// ExchangeService links a replacement booking to the booking it supersedes.
type ExchangeService interface {
	LinkExchange(ctx context.Context, newBookingID, originalBookingID int32) (*domain.Booking, error)
}

// EligibilityService gates new bookings on a customer's standing.
type EligibilityService interface {
	CheckEligibility(ctx context.Context, customerID int32) (*domain.Eligibility, error)
}

// ItemService manages rental item registration and approval.
type ItemService interface {
	Register(ctx context.Context, item *domain.RentalItem) (*domain.RentalItem, error)
	Approve(ctx context.Context, code string) (*domain.RentalItem, error)
	Reject(ctx context.Context, code, reason string) (*domain.RentalItem, error)
	UpdateCondition(ctx context.Context, code string, rating int32, notes string) (*domain.RentalItem, error)
	ListPendingApproval(ctx context.Context) ([]domain.RentalItem, error)
}

// CustomerService manages customer registration and statistics.
type CustomerService interface {
	Register(ctx context.Context, name, mobile, email string) (*domain.Customer, error)
	Get(ctx context.Context, id int32) (*domain.Customer, error)
	RefreshStats(ctx context.Context, customerID int32) error
}

// LedgerService posts journal entries for booking money movements. Every
// method returns an accounting-kind error on failure; callers treat these
// as warnings.
type LedgerService interface {
	PostDepositLiability(ctx context.Context, booking *domain.Booking) error
	PostDepositRefund(ctx context.Context, booking *domain.Booking, amount decimal.Decimal) error
	PostOwnerCommissions(ctx context.Context, booking *domain.Booking, commissions map[int32]decimal.Decimal) error
	CancelBookingEntries(ctx context.Context, bookingID int32) error
}

// EmailService sends customer-facing booking notifications.
type EmailService interface {
	SendBookingConfirmation(ctx context.Context, email, name string, booking *domain.Booking) error
	SendReturnReminder(ctx context.Context, email, name string, booking *domain.Booking) error
	SendDepositRefundNotice(ctx context.Context, email, name string, booking *domain.Booking, amount decimal.Decimal) error
}
