package service

import (
	"context"
	"fmt"
	"strings"

	"rental-booking-backend/internal/domain"
	"rental-booking-backend/internal/repository"
	"rental-booking-backend/internal/utils"
)

type customerService struct {
	customerRepo repository.CustomerRepository
	bookingRepo  repository.BookingRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository, bookingRepo repository.BookingRepository) CustomerService {
	return &customerService{customerRepo: customerRepo, bookingRepo: bookingRepo}
}

// Register creates a customer with a normalized mobile number and a
// human-readable unique id derived from name and number. Mobile numbers
// are unique; registering an existing number returns the existing record.
func (s *customerService) Register(ctx context.Context, name, mobile, email string) (*domain.Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.E(domain.KindValidation, "customer name is mandatory")
	}
	normalized, err := utils.NormalizeMobileNumber(mobile)
	if err != nil {
		return nil, domain.E(domain.KindValidation, "%v", err)
	}

	if existing, err := s.customerRepo.GetByMobile(ctx, normalized); err == nil {
		return existing, nil
	} else if !domain.IsKind(err, domain.KindNotFound) {
		return nil, err
	}

	uniqueID, err := s.assignUniqueID(ctx, name, normalized)
	if err != nil {
		return nil, err
	}

	customer := &domain.Customer{
		Name:             name,
		MobileNumber:     normalized,
		Email:            strings.TrimSpace(email),
		UniqueCustomerID: uniqueID,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *customerService) Get(ctx context.Context, id int32) (*domain.Customer, error) {
	return s.customerRepo.GetByID(ctx, id)
}

// RefreshStats recomputes a customer's booking aggregates from source.
func (s *customerService) RefreshStats(ctx context.Context, customerID int32) error {
	count, total, last, err := s.bookingRepo.AggregateCustomerStats(ctx, customerID)
	if err != nil {
		return err
	}
	return s.customerRepo.UpdateStats(ctx, customerID, count, total, last)
}

// assignUniqueID resolves collisions on the name+mobile base id by
// appending an incrementing numeric suffix.
func (s *customerService) assignUniqueID(ctx context.Context, name, mobile string) (string, error) {
	base := utils.CustomerIDBase(name, mobile)
	candidate := base
	for suffix := 1; ; suffix++ {
		exists, err := s.customerRepo.UniqueIDExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%d", base, suffix)
	}
}
