package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ItemRentalStatus string

const (
	ItemStatusNotAvailable  ItemRentalStatus = "Not Available"
	ItemStatusAvailable     ItemRentalStatus = "Available"
	ItemStatusBooked        ItemRentalStatus = "Booked"
	ItemStatusOutForRental  ItemRentalStatus = "Out for Rental"
	ItemStatusUnderCleaning ItemRentalStatus = "Under Cleaning"
	ItemStatusMaintenance   ItemRentalStatus = "Maintenance"
)

type ItemApprovalStatus string

const (
	ApprovalPending  ItemApprovalStatus = "Pending Approval"
	ApprovalApproved ItemApprovalStatus = "Approved"
	ApprovalRejected ItemApprovalStatus = "Rejected"
)

type ItemCategory string

const (
	CategoryDress     ItemCategory = "Dress"
	CategoryOrnament  ItemCategory = "Ornament"
	CategoryAccessory ItemCategory = "Accessory"
	CategoryOther     ItemCategory = "Other"
)

// RentalItem is a physical asset available for rent. Items are keyed by a
// human-assigned code rather than a serial id.
type RentalItem struct {
	Code                    string             `json:"code"`
	Name                    string             `json:"name"`
	IsRentalItem            bool               `json:"is_rental_item"`
	RatePerDay              decimal.Decimal    `json:"rate_per_day"`
	Category                ItemCategory       `json:"category"`
	RentalStatus            ItemRentalStatus   `json:"rental_status"`
	ApprovalStatus          ItemApprovalStatus `json:"approval_status"`
	IsThirdParty            bool               `json:"is_third_party"`
	OwnerCommissionPercent  decimal.Decimal    `json:"owner_commission_percent"`
	SupplierID              *int32             `json:"supplier_id,omitempty"`
	SuggestedCautionDeposit decimal.Decimal    `json:"suggested_caution_deposit"`
	ConditionRating         int32              `json:"condition_rating"`
	TotalRentalCount        int32              `json:"total_rental_count"`
	CreatedOn               time.Time          `json:"created_on"`
	UpdatedOn               time.Time          `json:"updated_on"`
}
