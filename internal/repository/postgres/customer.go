package postgres

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"rental-booking-backend/internal/domain"
	"rental-booking-backend/internal/repository"
)

type customerRepository struct {
	db dbtx
}

func NewCustomerRepository(db dbtx) repository.CustomerRepository {
	return &customerRepository{db: db}
}

const customerColumns = `id, name, mobile_number, email, unique_customer_id, total_bookings,
	total_rental_amount, last_booking_date, created_on, updated_on`

func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	query := `INSERT INTO customers (name, mobile_number, email, unique_customer_id, total_bookings,
	          total_rental_amount, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	now := time.Now()
	c.CreatedOn = now
	c.UpdatedOn = now
	err := r.db.QueryRowContext(ctx, query,
		c.Name, c.MobileNumber, c.Email, c.UniqueCustomerID, c.TotalBookings,
		c.TotalRentalAmount, c.CreatedOn, c.UpdatedOn).Scan(&c.ID)
	return translateWriteErr(err)
}

func (r *customerRepository) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	c := &domain.Customer{}
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.MobileNumber, &c.Email, &c.UniqueCustomerID, &c.TotalBookings,
		&c.TotalRentalAmount, &c.LastBookingDate, &c.CreatedOn, &c.UpdatedOn)
	if err != nil {
		return nil, notFound(err, "customer %d not found", id)
	}
	return c, nil
}

func (r *customerRepository) GetByMobile(ctx context.Context, mobile string) (*domain.Customer, error) {
	c := &domain.Customer{}
	query := `SELECT ` + customerColumns + ` FROM customers WHERE mobile_number = $1`
	err := r.db.QueryRowContext(ctx, query, mobile).Scan(
		&c.ID, &c.Name, &c.MobileNumber, &c.Email, &c.UniqueCustomerID, &c.TotalBookings,
		&c.TotalRentalAmount, &c.LastBookingDate, &c.CreatedOn, &c.UpdatedOn)
	if err != nil {
		return nil, notFound(err, "customer with mobile %s not found", mobile)
	}
	return c, nil
}

func (r *customerRepository) UniqueIDExists(ctx context.Context, uniqueID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM customers WHERE unique_customer_id = $1)`, uniqueID).Scan(&exists)
	return exists, err
}

func (r *customerRepository) UpdateStats(ctx context.Context, id int32, totalBookings int32, totalAmount decimal.Decimal, lastBooking *time.Time) error {
	query := `UPDATE customers SET total_bookings=$1, total_rental_amount=$2, last_booking_date=$3, updated_on=$4 WHERE id=$5`
	_, err := r.db.ExecContext(ctx, query, totalBookings, totalAmount, lastBooking, time.Now(), id)
	return err
}

func (r *customerRepository) ListIDs(ctx context.Context) ([]int32, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM customers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int32
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
