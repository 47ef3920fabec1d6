package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"rental-booking-backend/internal/domain"
	"rental-booking-backend/internal/repository"
)

type bookingRepository struct {
	db dbtx
}

func NewBookingRepository(db dbtx) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, booking_number, customer_id, is_rental_booking, function_date,
	rental_duration_days, rental_start_date, rental_end_date, status,
	grand_total, outstanding_amount, advance_amount,
	caution_deposit_amount, caution_deposit_refunded, total_owner_commission,
	is_exchange, original_booking_id, actual_delivery_time, actual_return_time,
	delivery_notes, return_notes, created_on, updated_on`

func scanBooking(row interface{ Scan(...interface{}) error }, b *domain.Booking) error {
	return row.Scan(
		&b.ID, &b.BookingNumber, &b.CustomerID, &b.IsRentalBooking, &b.FunctionDate,
		&b.RentalDurationDays, &b.RentalStartDate, &b.RentalEndDate, &b.Status,
		&b.GrandTotal, &b.OutstandingAmount, &b.AdvanceAmount,
		&b.CautionDepositAmount, &b.CautionDepositRefunded, &b.TotalOwnerCommission,
		&b.IsExchange, &b.OriginalBookingID, &b.ActualDeliveryTime, &b.ActualReturnTime,
		&b.DeliveryNotes, &b.ReturnNotes, &b.CreatedOn, &b.UpdatedOn)
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `INSERT INTO bookings (booking_number, customer_id, is_rental_booking, function_date,
	          rental_duration_days, rental_start_date, rental_end_date, status,
	          grand_total, outstanding_amount, advance_amount,
	          caution_deposit_amount, caution_deposit_refunded, total_owner_commission,
	          is_exchange, original_booking_id, delivery_notes, return_notes, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	          RETURNING id`
	now := time.Now()
	b.CreatedOn = now
	b.UpdatedOn = now
	err := r.db.QueryRowContext(ctx, query,
		b.BookingNumber, b.CustomerID, b.IsRentalBooking, b.FunctionDate,
		b.RentalDurationDays, b.RentalStartDate, b.RentalEndDate, b.Status,
		b.GrandTotal, b.OutstandingAmount, b.AdvanceAmount,
		b.CautionDepositAmount, b.CautionDepositRefunded, b.TotalOwnerCommission,
		b.IsExchange, b.OriginalBookingID, b.DeliveryNotes, b.ReturnNotes, b.CreatedOn, b.UpdatedOn,
	).Scan(&b.ID)
	if err != nil {
		return translateWriteErr(err)
	}

	for i := range b.Items {
		item := &b.Items[i]
		item.BookingID = b.ID
		err := r.db.QueryRowContext(ctx,
			`INSERT INTO booking_items (booking_id, item_code, qty, amount) VALUES ($1, $2, $3, $4) RETURNING id`,
			item.BookingID, item.ItemCode, item.Qty, item.Amount).Scan(&item.ID)
		if err != nil {
			return translateWriteErr(err)
		}
	}
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	b := &domain.Booking{}
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	if err := scanBooking(r.db.QueryRowContext(ctx, query, id), b); err != nil {
		return nil, notFound(err, "booking %d not found", id)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, booking_id, item_code, qty, amount FROM booking_items WHERE booking_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var it domain.BookingItem
		if err := rows.Scan(&it.ID, &it.BookingID, &it.ItemCode, &it.Qty, &it.Amount); err != nil {
			return nil, err
		}
		b.Items = append(b.Items, it)
	}
	return b, rows.Err()
}

func (r *bookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	query := `UPDATE bookings SET status=$1, rental_start_date=$2, rental_end_date=$3,
	          caution_deposit_amount=$4, caution_deposit_refunded=$5, total_owner_commission=$6,
	          advance_amount=$7, original_booking_id=$8, actual_delivery_time=$9, actual_return_time=$10,
	          delivery_notes=$11, return_notes=$12, updated_on=$13
	          WHERE id=$14`
	b.UpdatedOn = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		b.Status, b.RentalStartDate, b.RentalEndDate,
		b.CautionDepositAmount, b.CautionDepositRefunded, b.TotalOwnerCommission,
		b.AdvanceAmount, b.OriginalBookingID, b.ActualDeliveryTime, b.ActualReturnTime,
		b.DeliveryNotes, b.ReturnNotes, b.UpdatedOn, b.ID)
	return translateWriteErr(err)
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id int32, status domain.BookingStatus) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status=$1, updated_on=$2 WHERE id=$3`, status, time.Now(), id)
	return err
}

// ListConflicts finds confirmed-or-later bookings holding the item over any
// day of [start, end]. Two inclusive ranges overlap iff each starts on or
// before the other ends.
func (r *bookingRepository) ListConflicts(ctx context.Context, itemCode string, start, end time.Time, excludeID int32) ([]domain.BookingConflict, error) {
	query := `SELECT b.id, b.booking_number, b.customer_id, b.rental_start_date, b.rental_end_date, b.status
	          FROM bookings b
	          JOIN booking_items bi ON bi.booking_id = b.id
	          WHERE bi.item_code = $1
	          AND b.is_rental_booking = true
	          AND b.status NOT IN ('Cancelled', 'Completed', 'Exchanged', 'Draft')
	          AND b.id != $2
	          AND b.rental_start_date <= $3
	          AND b.rental_end_date >= $4
	          ORDER BY b.rental_start_date`
	rows, err := r.db.QueryContext(ctx, query, itemCode, excludeID, end, start)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanConflicts(rows)
}

func (r *bookingRepository) ListForItemCalendar(ctx context.Context, itemCode string, until time.Time) ([]domain.BookingConflict, error) {
	query := `SELECT b.id, b.booking_number, b.customer_id, b.rental_start_date, b.rental_end_date, b.status
	          FROM bookings b
	          JOIN booking_items bi ON bi.booking_id = b.id
	          WHERE bi.item_code = $1
	          AND b.is_rental_booking = true
	          AND b.status NOT IN ('Cancelled', 'Completed', 'Exchanged', 'Draft')
	          AND b.rental_start_date <= $2
	          ORDER BY b.rental_start_date`
	rows, err := r.db.QueryContext(ctx, query, itemCode, until)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanConflicts(rows)
}

func scanConflicts(rows *sql.Rows) ([]domain.BookingConflict, error) {
	var conflicts []domain.BookingConflict
	for rows.Next() {
		var c domain.BookingConflict
		if err := rows.Scan(&c.BookingID, &c.BookingNumber, &c.CustomerID, &c.RentalStartDate, &c.RentalEndDate, &c.Status); err != nil {
			return nil, err
		}
		conflicts = append(conflicts, c)
	}
	return conflicts, rows.Err()
}

func (r *bookingRepository) CountOutstandingByCustomer(ctx context.Context, customerID, excludeID int32) (int32, error) {
	query := `SELECT count(*) FROM bookings
	          WHERE customer_id = $1 AND is_rental_booking = true
	          AND status IN ('Confirmed', 'Out for Rental', 'Partially Returned')
	          AND id != $2`
	var count int32
	err := r.db.QueryRowContext(ctx, query, customerID, excludeID).Scan(&count)
	return count, err
}

func (r *bookingRepository) PendingAmountByCustomer(ctx context.Context, customerID int32) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(outstanding_amount), 0) FROM bookings
	          WHERE customer_id = $1 AND is_rental_booking = true
	          AND status NOT IN ('Draft', 'Cancelled') AND outstanding_amount > 0`
	var pending decimal.Decimal
	err := r.db.QueryRowContext(ctx, query, customerID).Scan(&pending)
	return pending, err
}

func (r *bookingRepository) ListOverdueReturns(ctx context.Context, asOf time.Time) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
	          WHERE status = 'Out for Rental' AND rental_end_date < $1
	          ORDER BY rental_end_date`
	rows, err := r.db.QueryContext(ctx, query, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) AggregateCustomerStats(ctx context.Context, customerID int32) (int32, decimal.Decimal, *time.Time, error) {
	query := `SELECT count(*), COALESCE(SUM(grand_total), 0), MAX(created_on) FROM bookings
	          WHERE customer_id = $1 AND is_rental_booking = true AND status != 'Draft'`
	var count int32
	var total decimal.Decimal
	var last sql.NullTime
	if err := r.db.QueryRowContext(ctx, query, customerID).Scan(&count, &total, &last); err != nil {
		return 0, decimal.Zero, nil, err
	}
	var lastAt *time.Time
	if last.Valid {
		lastAt = &last.Time
	}
	return count, total, lastAt, nil
}
