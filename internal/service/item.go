package service

import (
	"context"
	"strings"

	"rental-booking-backend/internal/domain"
	"rental-booking-backend/internal/logger"
	"rental-booking-backend/internal/repository"
)

// maintenanceThreshold is the condition rating below which an item is
// pulled from circulation.
const maintenanceThreshold = 3

type itemService struct {
	itemRepo     repository.ItemRepository
	supplierRepo repository.SupplierRepository
}

func NewItemService(itemRepo repository.ItemRepository, supplierRepo repository.SupplierRepository) ItemService {
	return &itemService{itemRepo: itemRepo, supplierRepo: supplierRepo}
}

// Register stores a new rental item awaiting approval. Third-party items
// without a supplier get an owner supplier created so commissions have a
// payee.
func (s *itemService) Register(ctx context.Context, item *domain.RentalItem) (*domain.RentalItem, error) {
	item.Code = strings.TrimSpace(item.Code)
	if item.Code == "" {
		return nil, domain.E(domain.KindValidation, "item code is mandatory")
	}
	if strings.TrimSpace(item.Name) == "" {
		return nil, domain.E(domain.KindValidation, "item name is mandatory")
	}
	if item.IsRentalItem && !item.RatePerDay.IsPositive() {
		return nil, domain.E(domain.KindValidation, "rental rate per day must be positive")
	}
	if item.SuggestedCautionDeposit.IsNegative() {
		return nil, domain.E(domain.KindValidation, "suggested caution deposit cannot be negative")
	}
	if item.OwnerCommissionPercent.IsNegative() || item.OwnerCommissionPercent.GreaterThan(oneHundred) {
		return nil, domain.E(domain.KindValidation, "owner commission percent must be between 0 and 100")
	}
	if item.IsThirdParty {
		if item.SupplierID == nil {
			if err := s.ensureOwnerSupplier(ctx, item); err != nil {
				return nil, err
			}
		} else if _, err := s.supplierRepo.GetByID(ctx, *item.SupplierID); err != nil {
			return nil, err
		}
	}
	switch item.Category {
	case domain.CategoryDress, domain.CategoryOrnament, domain.CategoryAccessory, domain.CategoryOther:
	case "":
		item.Category = domain.CategoryOther
	default:
		return nil, domain.E(domain.KindValidation, "unknown item category %q", item.Category)
	}

	// Items stay out of circulation until approved.
	item.ApprovalStatus = domain.ApprovalPending
	item.RentalStatus = domain.ItemStatusNotAvailable
	if item.ConditionRating == 0 {
		item.ConditionRating = 5
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// ensureOwnerSupplier resolves or creates the supplier record for a third
// party item registered without one.
func (s *itemService) ensureOwnerSupplier(ctx context.Context, item *domain.RentalItem) error {
	name := "Owner-" + item.Code
	supplier, err := s.supplierRepo.GetByName(ctx, name)
	if err != nil {
		if !domain.IsKind(err, domain.KindNotFound) {
			return err
		}
		supplier = &domain.Supplier{Name: name}
		if err := s.supplierRepo.Create(ctx, supplier); err != nil {
			return err
		}
		logger.Info("created supplier for third party item", "item_code", item.Code, "supplier", name)
	}
	item.SupplierID = &supplier.ID
	return nil
}

func (s *itemService) Approve(ctx context.Context, code string) (*domain.RentalItem, error) {
	item, err := s.itemRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if item.ApprovalStatus != domain.ApprovalPending {
		return nil, domain.E(domain.KindState,
			"item %s cannot be approved from status %s", item.Code, item.ApprovalStatus)
	}
	item.ApprovalStatus = domain.ApprovalApproved
	item.RentalStatus = domain.ItemStatusAvailable
	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	logger.Info("rental item approved", "item_code", item.Code)
	return item, nil
}

func (s *itemService) Reject(ctx context.Context, code, reason string) (*domain.RentalItem, error) {
	item, err := s.itemRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if item.ApprovalStatus != domain.ApprovalPending {
		return nil, domain.E(domain.KindState,
			"item %s cannot be rejected from status %s", item.Code, item.ApprovalStatus)
	}
	item.ApprovalStatus = domain.ApprovalRejected
	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	logger.Info("rental item rejected", "item_code", item.Code, "reason", reason)
	return item, nil
}

// UpdateCondition records the post-return inspection. A rating below the
// maintenance threshold parks the item until it is serviced.
func (s *itemService) UpdateCondition(ctx context.Context, code string, rating int32, notes string) (*domain.RentalItem, error) {
	if rating < 1 || rating > 5 {
		return nil, domain.E(domain.KindValidation, "condition rating must be between 1 and 5")
	}
	item, err := s.itemRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	item.ConditionRating = rating
	if rating < maintenanceThreshold {
		item.RentalStatus = domain.ItemStatusMaintenance
		logger.Warn("rental item sent to maintenance",
			"item_code", item.Code, "condition_rating", rating, "notes", notes)
	}
	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *itemService) ListPendingApproval(ctx context.Context) ([]domain.RentalItem, error) {
	return s.itemRepo.ListPendingApproval(ctx)
}
