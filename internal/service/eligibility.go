package service

import (
	"context"

	"rental-booking-backend/internal/config"
	"rental-booking-backend/internal/domain"
	"rental-booking-backend/internal/repository"
)

type eligibilityService struct {
	bookingRepo  repository.BookingRepository
	customerRepo repository.CustomerRepository
	policy       config.BookingConfig
}

func NewEligibilityService(
	bookingRepo repository.BookingRepository,
	customerRepo repository.CustomerRepository,
	policy config.BookingConfig,
) EligibilityService {
	return &eligibilityService{
		bookingRepo:  bookingRepo,
		customerRepo: customerRepo,
		policy:       policy,
	}
}

func (s *eligibilityService) CheckEligibility(ctx context.Context, customerID int32) (*domain.Eligibility, error) {
	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		return nil, err
	}
	return evaluateEligibility(ctx, s.bookingRepo, s.policy, customerID, 0)
}

// evaluateEligibility applies the customer gate. excludeBookingID keeps the
// booking being confirmed out of its own outstanding count.
func evaluateEligibility(
	ctx context.Context,
	bookingRepo repository.BookingRepository,
	policy config.BookingConfig,
	customerID int32,
	excludeBookingID int32,
) (*domain.Eligibility, error) {
	count, err := bookingRepo.CountOutstandingByCustomer(ctx, customerID, excludeBookingID)
	if err != nil {
		return nil, err
	}
	pending, err := bookingRepo.PendingAmountByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	result := &domain.Eligibility{
		Eligible:         true,
		OutstandingCount: count,
		PendingAmount:    pending,
	}
	if int(count) > policy.MaxOutstandingBookings {
		result.Eligible = false
		result.Issues = append(result.Issues, "Maximum concurrent bookings limit reached")
	}
	if pending.GreaterThan(policy.PendingCeiling()) {
		result.Eligible = false
		result.Issues = append(result.Issues, "Pending amount exceeds limit")
	}
	return result, nil
}
