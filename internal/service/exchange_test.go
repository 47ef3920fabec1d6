package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"rental-booking-backend/internal/domain"
)

func TestExchangeService_LinkExchange(t *testing.T) {
	ctx := context.Background()

	newExchangePair := func() (*domain.Booking, *domain.Booking) {
		original := draftBooking(futureDate(30), 3)
		original.ID = 40
		original.BookingNumber = "RB-0040"
		original.Status = domain.BookingStatusConfirmed

		replacement := draftBooking(futureDate(25), 3)
		replacement.ID = 41
		replacement.BookingNumber = "RB-0041"
		return replacement, original
	}

	t.Run("Success", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		svc := NewExchangeService(bookingRepo)
		replacement, original := newExchangePair()

		bookingRepo.On("GetByID", ctx, int32(41)).Return(replacement, nil)
		bookingRepo.On("GetByID", ctx, int32(40)).Return(original, nil)
		bookingRepo.On("Update", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)

		linked, err := svc.LinkExchange(ctx, 41, 40)
		assert.NoError(t, err)
		assert.True(t, linked.IsExchange)
		assert.Equal(t, int32(40), *linked.OriginalBookingID)
		// Linking alone does not retire the original.
		assert.Equal(t, domain.BookingStatusConfirmed, original.Status)
	})

	t.Run("Advance carried over when replacement has none", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		svc := NewExchangeService(bookingRepo)
		replacement, original := newExchangePair()
		original.AdvanceAmount = decimal.NewFromInt(2500)

		bookingRepo.On("GetByID", ctx, int32(41)).Return(replacement, nil)
		bookingRepo.On("GetByID", ctx, int32(40)).Return(original, nil)
		bookingRepo.On("Update", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)

		linked, err := svc.LinkExchange(ctx, 41, 40)
		assert.NoError(t, err)
		assert.True(t, linked.AdvanceAmount.Equal(decimal.NewFromInt(2500)))
	})

	t.Run("Explicit advance kept", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		svc := NewExchangeService(bookingRepo)
		replacement, original := newExchangePair()
		original.AdvanceAmount = decimal.NewFromInt(2500)
		replacement.AdvanceAmount = decimal.NewFromInt(1000)

		bookingRepo.On("GetByID", ctx, int32(41)).Return(replacement, nil)
		bookingRepo.On("GetByID", ctx, int32(40)).Return(original, nil)
		bookingRepo.On("Update", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)

		linked, err := svc.LinkExchange(ctx, 41, 40)
		assert.NoError(t, err)
		assert.True(t, linked.AdvanceAmount.Equal(decimal.NewFromInt(1000)))
	})

	t.Run("Different customer rejected", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		svc := NewExchangeService(bookingRepo)
		replacement, original := newExchangePair()
		replacement.CustomerID = 99

		bookingRepo.On("GetByID", ctx, int32(41)).Return(replacement, nil)
		bookingRepo.On("GetByID", ctx, int32(40)).Return(original, nil)

		_, err := svc.LinkExchange(ctx, 41, 40)
		assert.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.KindInvalidExchange))
	})

	t.Run("Terminal original rejected", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		svc := NewExchangeService(bookingRepo)
		replacement, original := newExchangePair()
		original.Status = domain.BookingStatusCancelled

		bookingRepo.On("GetByID", ctx, int32(41)).Return(replacement, nil)
		bookingRepo.On("GetByID", ctx, int32(40)).Return(original, nil)

		_, err := svc.LinkExchange(ctx, 41, 40)
		assert.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.KindInvalidExchange))
	})

	t.Run("Out for rental original rejected", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		svc := NewExchangeService(bookingRepo)
		replacement, original := newExchangePair()
		original.Status = domain.BookingStatusOutForRental

		bookingRepo.On("GetByID", ctx, int32(41)).Return(replacement, nil)
		bookingRepo.On("GetByID", ctx, int32(40)).Return(original, nil)

		_, err := svc.LinkExchange(ctx, 41, 40)
		assert.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.KindInvalidExchange))
	})

	t.Run("Later function date rejected", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		svc := NewExchangeService(bookingRepo)
		replacement, original := newExchangePair()
		replacement.FunctionDate = futureDate(35)

		bookingRepo.On("GetByID", ctx, int32(41)).Return(replacement, nil)
		bookingRepo.On("GetByID", ctx, int32(40)).Return(original, nil)

		_, err := svc.LinkExchange(ctx, 41, 40)
		assert.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.KindInvalidExchange))
	})

	t.Run("Submitted replacement rejected", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		svc := NewExchangeService(bookingRepo)
		replacement, original := newExchangePair()
		replacement.Status = domain.BookingStatusConfirmed

		bookingRepo.On("GetByID", ctx, int32(41)).Return(replacement, nil)
		bookingRepo.On("GetByID", ctx, int32(40)).Return(original, nil)

		_, err := svc.LinkExchange(ctx, 41, 40)
		assert.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.KindInvalidExchange))
	})

	t.Run("Self exchange rejected", func(t *testing.T) {
		svc := NewExchangeService(new(MockBookingRepo))
		_, err := svc.LinkExchange(ctx, 41, 41)
		assert.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.KindInvalidExchange))
	})
}
