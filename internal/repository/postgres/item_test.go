package postgres

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-booking-backend/internal/domain"
)

var itemRows = []string{
	"code", "name", "is_rental_item", "rate_per_day", "category", "rental_status", "approval_status",
	"is_third_party", "owner_commission_percent", "supplier_id", "suggested_caution_deposit",
	"condition_rating", "total_rental_count", "created_on", "updated_on",
}

func newMockItemRepo(t *testing.T) (*itemRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &itemRepository{db: db}, mock
}

func TestItemRepository_GetByCode(t *testing.T) {
	repo, mock := newMockItemRepo(t)
	ctx := context.Background()
	now := time.Now()

	t.Run("Found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM rental_items WHERE code").
			WithArgs("DRS-001").
			WillReturnRows(sqlmock.NewRows(itemRows).AddRow(
				"DRS-001", "Bridal Lehenga", true, "2000", "Dress", "Available", "Approved",
				true, "25", int32(5), "8000",
				int32(5), int32(12), now, now))

		item, err := repo.GetByCode(ctx, "DRS-001")
		assert.NoError(t, err)
		assert.Equal(t, "DRS-001", item.Code)
		assert.Equal(t, domain.ApprovalApproved, item.ApprovalStatus)
		require.NotNil(t, item.SupplierID)
		assert.Equal(t, int32(5), *item.SupplierID)
	})

	t.Run("Missing item is not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM rental_items WHERE code").
			WithArgs("NOPE").
			WillReturnRows(sqlmock.NewRows(itemRows))

		_, err := repo.GetByCode(ctx, "NOPE")
		assert.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.KindNotFound))
	})
}

func TestItemRepository_GetByCodeForUpdate(t *testing.T) {
	repo, mock := newMockItemRepo(t)
	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM rental_items WHERE code = \\$1 FOR UPDATE").
		WithArgs("DRS-001").
		WillReturnRows(sqlmock.NewRows(itemRows).AddRow(
			"DRS-001", "Bridal Lehenga", true, "2000", "Dress", "Available", "Approved",
			false, "0", nil, "8000",
			int32(5), int32(12), now, now))

	item, err := repo.GetByCodeForUpdate(ctx, "DRS-001")
	assert.NoError(t, err)
	assert.Nil(t, item.SupplierID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepository_UpdateRentalStatus(t *testing.T) {
	repo, mock := newMockItemRepo(t)
	ctx := context.Background()

	mock.ExpectExec("UPDATE rental_items SET rental_status").
		WithArgs(domain.ItemStatusBooked, sqlmock.AnyArg(), "DRS-001").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateRentalStatus(ctx, "DRS-001", domain.ItemStatusBooked)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepository_IncrementRentalCount(t *testing.T) {
	repo, mock := newMockItemRepo(t)
	ctx := context.Background()

	mock.ExpectExec("UPDATE rental_items SET total_rental_count = total_rental_count \\+ 1").
		WithArgs(sqlmock.AnyArg(), "DRS-001").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.IncrementRentalCount(ctx, "DRS-001")
	assert.NoError(t, err)
}
