package postgres

import (
	"context"
	"time"

	"rental-booking-backend/internal/domain"
	"rental-booking-backend/internal/repository"
)

type ledgerRepository struct {
	db dbtx
}

func NewLedgerRepository(db dbtx) repository.LedgerRepository {
	return &ledgerRepository{db: db}
}

const journalColumns = `id, entry_number, posting_date, debit_account, credit_account, amount,
	remark, party_type, party_id, booking_id, cancelled, created_on`

func (r *ledgerRepository) CreateEntry(ctx context.Context, e *domain.JournalEntry) error {
	query := `INSERT INTO journal_entries (entry_number, posting_date, debit_account, credit_account,
	          amount, remark, party_type, party_id, booking_id, cancelled, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	e.CreatedOn = time.Now()
	err := r.db.QueryRowContext(ctx, query,
		e.EntryNumber, e.PostingDate, e.DebitAccount, e.CreditAccount,
		e.Amount, e.Remark, e.PartyType, e.PartyID, e.BookingID, e.Cancelled, e.CreatedOn).Scan(&e.ID)
	return translateWriteErr(err)
}

func (r *ledgerRepository) ListByBooking(ctx context.Context, bookingID int32) ([]domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journal_entries WHERE booking_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		var e domain.JournalEntry
		if err := rows.Scan(&e.ID, &e.EntryNumber, &e.PostingDate, &e.DebitAccount, &e.CreditAccount,
			&e.Amount, &e.Remark, &e.PartyType, &e.PartyID, &e.BookingID, &e.Cancelled, &e.CreatedOn); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *ledgerRepository) CancelByBooking(ctx context.Context, bookingID int32) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE journal_entries SET cancelled = true WHERE booking_id = $1 AND cancelled = false`, bookingID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
