package service

import (
	"context"

	"rental-booking-backend/internal/domain"
	"rental-booking-backend/internal/repository"
	"rental-booking-backend/internal/utils"
)

type exchangeService struct {
	bookingRepo repository.BookingRepository
}

func NewExchangeService(bookingRepo repository.BookingRepository) ExchangeService {
	return &exchangeService{bookingRepo: bookingRepo}
}

// LinkExchange marks a draft booking as the replacement for an earlier one.
// The original keeps its status until the replacement is confirmed; only
// then does it flip to Exchanged.
func (s *exchangeService) LinkExchange(ctx context.Context, newBookingID, originalBookingID int32) (*domain.Booking, error) {
	if newBookingID == originalBookingID {
		return nil, domain.E(domain.KindInvalidExchange, "a booking cannot exchange itself")
	}

	b, err := s.bookingRepo.GetByID(ctx, newBookingID)
	if err != nil {
		return nil, err
	}
	original, err := s.bookingRepo.GetByID(ctx, originalBookingID)
	if err != nil {
		return nil, err
	}

	if b.Status != domain.BookingStatusDraft {
		return nil, domain.E(domain.KindInvalidExchange,
			"booking %s has already been submitted and cannot become an exchange", b.BookingNumber)
	}
	if b.CustomerID != original.CustomerID {
		return nil, domain.E(domain.KindInvalidExchange,
			"exchange booking must belong to the same customer as booking %s", original.BookingNumber)
	}
	if original.Status.IsTerminal() {
		return nil, domain.E(domain.KindInvalidExchange,
			"cannot exchange booking %s with status %s", original.BookingNumber, original.Status)
	}
	if original.Status == domain.BookingStatusOutForRental {
		return nil, domain.E(domain.KindInvalidExchange,
			"booking %s is out for rental; items must come back before an exchange", original.BookingNumber)
	}
	if utils.Truncate(b.FunctionDate).After(utils.Truncate(original.FunctionDate)) {
		return nil, domain.E(domain.KindInvalidExchange,
			"exchange function date cannot be later than the original booking's function date")
	}

	b.IsExchange = true
	b.OriginalBookingID = &original.ID
	// The advance already paid carries over unless the replacement
	// specifies its own.
	if b.AdvanceAmount.IsZero() {
		b.AdvanceAmount = original.AdvanceAmount
	}
	if err := s.bookingRepo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}
