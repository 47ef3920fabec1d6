package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusDraft             BookingStatus = "Draft"
	BookingStatusConfirmed         BookingStatus = "Confirmed"
	BookingStatusOutForRental      BookingStatus = "Out for Rental"
	BookingStatusPartiallyReturned BookingStatus = "Partially Returned"
	BookingStatusReturned          BookingStatus = "Returned"
	BookingStatusCompleted         BookingStatus = "Completed"
	BookingStatusCancelled         BookingStatus = "Cancelled"
	BookingStatusExchanged         BookingStatus = "Exchanged"
)

// IsTerminal reports whether the status admits no further transitions.
func (s BookingStatus) IsTerminal() bool {
	switch s {
	case BookingStatusCompleted, BookingStatusCancelled, BookingStatusExchanged:
		return true
	}
	return false
}

// TerminalBookingStatuses are excluded from availability conflict checks
// and from customer outstanding-booking counts.
var TerminalBookingStatuses = []BookingStatus{
	BookingStatusCancelled,
	BookingStatusCompleted,
	BookingStatusExchanged,
}

// Booking is a customer's reservation of one or more rental items for a
// date range, represented as an invoice-like document.
type Booking struct {
	ID                     int32           `json:"id"`
	BookingNumber          string          `json:"booking_number"`
	CustomerID             int32           `json:"customer_id"`
	IsRentalBooking        bool            `json:"is_rental_booking"`
	FunctionDate           time.Time       `json:"function_date"`
	RentalDurationDays     int32           `json:"rental_duration_days"`
	RentalStartDate        time.Time       `json:"rental_start_date"`
	RentalEndDate          time.Time       `json:"rental_end_date"`
	Status                 BookingStatus   `json:"status"`
	GrandTotal             decimal.Decimal `json:"grand_total"`
	OutstandingAmount      decimal.Decimal `json:"outstanding_amount"`
	AdvanceAmount          decimal.Decimal `json:"advance_amount"`
	CautionDepositAmount   decimal.Decimal `json:"caution_deposit_amount"`
	CautionDepositRefunded decimal.Decimal `json:"caution_deposit_refunded"`
	TotalOwnerCommission   decimal.Decimal `json:"total_owner_commission"`
	IsExchange             bool            `json:"is_exchange"`
	OriginalBookingID      *int32          `json:"original_booking_id,omitempty"`
	ActualDeliveryTime     *time.Time      `json:"actual_delivery_time,omitempty"`
	ActualReturnTime       *time.Time      `json:"actual_return_time,omitempty"`
	DeliveryNotes          string          `json:"delivery_notes"`
	ReturnNotes            string          `json:"return_notes"`
	Items                  []BookingItem   `json:"items"`
	CreatedOn              time.Time       `json:"created_on"`
	UpdatedOn              time.Time       `json:"updated_on"`
}

// RemainingDeposit is the refundable balance of the caution deposit.
func (b *Booking) RemainingDeposit() decimal.Decimal {
	return b.CautionDepositAmount.Sub(b.CautionDepositRefunded)
}

// BookingItem is one line of a booking. Lines are owned by their booking
// and carry a snapshot of the agreed line amount.
type BookingItem struct {
	ID       int32           `json:"id"`
	BookingID int32          `json:"booking_id"`
	ItemCode string          `json:"item_code"`
	Qty      int32           `json:"qty"`
	Amount   decimal.Decimal `json:"amount"`
}

// BookingConflict describes one overlapping booking found by the
// availability checker.
type BookingConflict struct {
	BookingID       int32         `json:"booking_id"`
	BookingNumber   string        `json:"booking_number"`
	CustomerID      int32         `json:"customer_id"`
	RentalStartDate time.Time     `json:"rental_start_date"`
	RentalEndDate   time.Time     `json:"rental_end_date"`
	Status          BookingStatus `json:"status"`
}
