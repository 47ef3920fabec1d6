package domain

import "time"

// Supplier owns third-party rental items. Commission liabilities are
// aggregated and posted per supplier per booking.
type Supplier struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedOn time.Time `json:"created_on"`
}
