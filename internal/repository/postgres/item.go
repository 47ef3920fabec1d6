package postgres

import (
	"context"
	"time"

	"rental-booking-backend/internal/domain"
	"rental-booking-backend/internal/repository"
)

type itemRepository struct {
	db dbtx
}

func NewItemRepository(db dbtx) repository.ItemRepository {
	return &itemRepository{db: db}
}

const itemColumns = `code, name, is_rental_item, rate_per_day, category, rental_status, approval_status,
	is_third_party, owner_commission_percent, supplier_id, suggested_caution_deposit,
	condition_rating, total_rental_count, created_on, updated_on`

func (r *itemRepository) Create(ctx context.Context, it *domain.RentalItem) error {
	query := `INSERT INTO rental_items (` + itemColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	now := time.Now()
	it.CreatedOn = now
	it.UpdatedOn = now
	_, err := r.db.ExecContext(ctx, query,
		it.Code, it.Name, it.IsRentalItem, it.RatePerDay, it.Category, it.RentalStatus, it.ApprovalStatus,
		it.IsThirdParty, it.OwnerCommissionPercent, it.SupplierID, it.SuggestedCautionDeposit,
		it.ConditionRating, it.TotalRentalCount, it.CreatedOn, it.UpdatedOn)
	return translateWriteErr(err)
}

func (r *itemRepository) GetByCode(ctx context.Context, code string) (*domain.RentalItem, error) {
	return r.get(ctx, code, false)
}

func (r *itemRepository) GetByCodeForUpdate(ctx context.Context, code string) (*domain.RentalItem, error) {
	return r.get(ctx, code, true)
}

func (r *itemRepository) get(ctx context.Context, code string, forUpdate bool) (*domain.RentalItem, error) {
	query := `SELECT ` + itemColumns + ` FROM rental_items WHERE code = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	it := &domain.RentalItem{}
	err := r.db.QueryRowContext(ctx, query, code).Scan(
		&it.Code, &it.Name, &it.IsRentalItem, &it.RatePerDay, &it.Category, &it.RentalStatus, &it.ApprovalStatus,
		&it.IsThirdParty, &it.OwnerCommissionPercent, &it.SupplierID, &it.SuggestedCautionDeposit,
		&it.ConditionRating, &it.TotalRentalCount, &it.CreatedOn, &it.UpdatedOn)
	if err != nil {
		return nil, notFound(err, "item %s not found", code)
	}
	return it, nil
}

func (r *itemRepository) Update(ctx context.Context, it *domain.RentalItem) error {
	query := `UPDATE rental_items SET name=$1, is_rental_item=$2, rate_per_day=$3, category=$4,
	          rental_status=$5, approval_status=$6, is_third_party=$7, owner_commission_percent=$8,
	          supplier_id=$9, suggested_caution_deposit=$10, condition_rating=$11, updated_on=$12
	          WHERE code=$13`
	it.UpdatedOn = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		it.Name, it.IsRentalItem, it.RatePerDay, it.Category,
		it.RentalStatus, it.ApprovalStatus, it.IsThirdParty, it.OwnerCommissionPercent,
		it.SupplierID, it.SuggestedCautionDeposit, it.ConditionRating, it.UpdatedOn, it.Code)
	return translateWriteErr(err)
}

func (r *itemRepository) UpdateRentalStatus(ctx context.Context, code string, status domain.ItemRentalStatus) error {
	query := `UPDATE rental_items SET rental_status=$1, updated_on=$2 WHERE code=$3`
	_, err := r.db.ExecContext(ctx, query, status, time.Now(), code)
	return err
}

func (r *itemRepository) IncrementRentalCount(ctx context.Context, code string) error {
	query := `UPDATE rental_items SET total_rental_count = total_rental_count + 1, updated_on=$1 WHERE code=$2`
	_, err := r.db.ExecContext(ctx, query, time.Now(), code)
	return err
}

func (r *itemRepository) ListPendingApproval(ctx context.Context) ([]domain.RentalItem, error) {
	query := `SELECT ` + itemColumns + ` FROM rental_items
	          WHERE is_rental_item = true AND approval_status = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, domain.ApprovalPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.RentalItem
	for rows.Next() {
		var it domain.RentalItem
		if err := rows.Scan(
			&it.Code, &it.Name, &it.IsRentalItem, &it.RatePerDay, &it.Category, &it.RentalStatus, &it.ApprovalStatus,
			&it.IsThirdParty, &it.OwnerCommissionPercent, &it.SupplierID, &it.SuggestedCautionDeposit,
			&it.ConditionRating, &it.TotalRentalCount, &it.CreatedOn, &it.UpdatedOn); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
