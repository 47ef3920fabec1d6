package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"rental-booking-backend/internal/domain"
)

func TestEligibilityService_CheckEligibility(t *testing.T) {
	ctx := context.Background()
	customerID := int32(7)

	newSvc := func() (*MockBookingRepo, *MockCustomerRepo, EligibilityService) {
		bookingRepo := new(MockBookingRepo)
		customerRepo := new(MockCustomerRepo)
		svc := NewEligibilityService(bookingRepo, customerRepo, testPolicy())
		customerRepo.On("GetByID", ctx, customerID).Return(&domain.Customer{ID: customerID, Name: "Priya"}, nil)
		return bookingRepo, customerRepo, svc
	}

	t.Run("Clean customer eligible", func(t *testing.T) {
		bookingRepo, _, svc := newSvc()
		bookingRepo.On("CountOutstandingByCustomer", ctx, customerID, int32(0)).Return(int32(1), nil)
		bookingRepo.On("PendingAmountByCustomer", ctx, customerID).Return(decimal.NewFromInt(2000), nil)

		result, err := svc.CheckEligibility(ctx, customerID)
		assert.NoError(t, err)
		assert.True(t, result.Eligible)
		assert.Empty(t, result.Issues)
		assert.Equal(t, int32(1), result.OutstandingCount)
	})

	t.Run("Two outstanding still within limit", func(t *testing.T) {
		bookingRepo, _, svc := newSvc()
		bookingRepo.On("CountOutstandingByCustomer", ctx, customerID, int32(0)).Return(int32(2), nil)
		bookingRepo.On("PendingAmountByCustomer", ctx, customerID).Return(decimal.Zero, nil)

		result, err := svc.CheckEligibility(ctx, customerID)
		assert.NoError(t, err)
		assert.True(t, result.Eligible)
	})

	t.Run("Three outstanding over limit", func(t *testing.T) {
		bookingRepo, _, svc := newSvc()
		bookingRepo.On("CountOutstandingByCustomer", ctx, customerID, int32(0)).Return(int32(3), nil)
		bookingRepo.On("PendingAmountByCustomer", ctx, customerID).Return(decimal.Zero, nil)

		result, err := svc.CheckEligibility(ctx, customerID)
		assert.NoError(t, err)
		assert.False(t, result.Eligible)
		assert.Contains(t, result.Issues, "Maximum concurrent bookings limit reached")
	})

	t.Run("Pending amount over ceiling", func(t *testing.T) {
		bookingRepo, _, svc := newSvc()
		bookingRepo.On("CountOutstandingByCustomer", ctx, customerID, int32(0)).Return(int32(0), nil)
		bookingRepo.On("PendingAmountByCustomer", ctx, customerID).Return(decimal.RequireFromString("5000.01"), nil)

		result, err := svc.CheckEligibility(ctx, customerID)
		assert.NoError(t, err)
		assert.False(t, result.Eligible)
		assert.Contains(t, result.Issues, "Pending amount exceeds limit")
	})

	t.Run("Pending amount at ceiling passes", func(t *testing.T) {
		bookingRepo, _, svc := newSvc()
		bookingRepo.On("CountOutstandingByCustomer", ctx, customerID, int32(0)).Return(int32(0), nil)
		bookingRepo.On("PendingAmountByCustomer", ctx, customerID).Return(decimal.NewFromInt(5000), nil)

		result, err := svc.CheckEligibility(ctx, customerID)
		assert.NoError(t, err)
		assert.True(t, result.Eligible)
	})

	t.Run("Both limits breached report both issues", func(t *testing.T) {
		bookingRepo, _, svc := newSvc()
		bookingRepo.On("CountOutstandingByCustomer", ctx, customerID, int32(0)).Return(int32(4), nil)
		bookingRepo.On("PendingAmountByCustomer", ctx, customerID).Return(decimal.NewFromInt(9000), nil)

		result, err := svc.CheckEligibility(ctx, customerID)
		assert.NoError(t, err)
		assert.False(t, result.Eligible)
		assert.Len(t, result.Issues, 2)
	})

	t.Run("Unknown customer", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		customerRepo := new(MockCustomerRepo)
		svc := NewEligibilityService(bookingRepo, customerRepo, testPolicy())
		customerRepo.On("GetByID", ctx, int32(99)).
			Return(nil, domain.E(domain.KindNotFound, "customer 99 not found"))

		_, err := svc.CheckEligibility(ctx, 99)
		assert.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.KindNotFound))
	})
}
