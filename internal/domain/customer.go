package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer of the rental business. Mobile numbers are stored normalized to
// the +91XXXXXXXXXX form and are unique per customer.
type Customer struct {
	ID                int32           `json:"id"`
	Name              string          `json:"name"`
	MobileNumber      string          `json:"mobile_number"`
	Email             string          `json:"email"`
	UniqueCustomerID  string          `json:"unique_customer_id"`
	TotalBookings     int32           `json:"total_bookings"`
	TotalRentalAmount decimal.Decimal `json:"total_rental_amount"`
	LastBookingDate   *time.Time      `json:"last_booking_date,omitempty"`
	CreatedOn         time.Time       `json:"created_on"`
	UpdatedOn         time.Time       `json:"updated_on"`
}

// Eligibility is the result of the customer eligibility gate.
type Eligibility struct {
	Eligible         bool            `json:"eligible"`
	OutstandingCount int32           `json:"outstanding_count"`
	PendingAmount    decimal.Decimal `json:"pending_amount"`
	Issues           []string        `json:"issues"`
}
