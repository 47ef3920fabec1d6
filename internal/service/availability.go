package service

import (
	"context"
	"time"

	"rental-booking-backend/internal/domain"
	"rental-booking-backend/internal/repository"
	"rental-booking-backend/internal/utils"
)

type availabilityService struct {
	itemRepo    repository.ItemRepository
	bookingRepo repository.BookingRepository
}

func NewAvailabilityService(itemRepo repository.ItemRepository, bookingRepo repository.BookingRepository) AvailabilityService {
	return &availabilityService{itemRepo: itemRepo, bookingRepo: bookingRepo}
}

func (s *availabilityService) CheckAvailability(ctx context.Context, itemCode string, start, end time.Time, excludeBookingID int32) (bool, []domain.BookingConflict, error) {
	if start.After(end) {
		return false, nil, domain.E(domain.KindValidation, "start date %s is after end date %s",
			start.Format(utils.DateFormat), end.Format(utils.DateFormat))
	}

	item, err := s.itemRepo.GetByCode(ctx, itemCode)
	if err != nil {
		return false, nil, err
	}
	if !item.IsRentalItem {
		// Non-rental items never hold booking-period conflicts.
		return true, nil, nil
	}

	conflicts, err := s.bookingRepo.ListConflicts(ctx, itemCode, utils.Truncate(start), utils.Truncate(end), excludeBookingID)
	if err != nil {
		return false, nil, err
	}
	return len(conflicts) == 0, conflicts, nil
}

func (s *availabilityService) GetItemCalendar(ctx context.Context, itemCode string, monthsAhead int) ([]domain.BookingConflict, error) {
	if monthsAhead <= 0 {
		monthsAhead = 6
	}
	if _, err := s.itemRepo.GetByCode(ctx, itemCode); err != nil {
		return nil, err
	}
	from := utils.Truncate(time.Now())
	until := from.AddDate(0, monthsAhead, 0)
	entries, err := s.bookingRepo.ListForItemCalendar(ctx, itemCode, until)
	if err != nil {
		return nil, err
	}
	// The query bounds only the start date; drop holds that ended before
	// today so the calendar shows current and upcoming windows.
	calendar := make([]domain.BookingConflict, 0, len(entries))
	for _, e := range entries {
		if utils.RangesOverlap(e.RentalStartDate, e.RentalEndDate, from, until) {
			calendar = append(calendar, e)
		}
	}
	return calendar, nil
}
