package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"rental-booking-backend/internal/domain"
	"rental-booking-backend/internal/repository"
)

// dbtx is the subset of database/sql shared by *sql.DB and *sql.Tx, so the
// same repository code can run against the pool or inside a transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type Store struct {
	db *sql.DB
	repository.Registry
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:       db,
		Registry: newRegistry(db),
	}
}

func newRegistry(q dbtx) repository.Registry {
	return repository.Registry{
		Items:     NewItemRepository(q),
		Bookings:  NewBookingRepository(q),
		Customers: NewCustomerRepository(q),
		Suppliers: NewSupplierRepository(q),
		Ledger:    NewLedgerRepository(q),
	}
}

// InTransaction runs fn with a Registry bound to a single transaction.
// Serialization failures and unique-key violations at commit surface as
// conflict errors so callers can retry.
func (s *Store) InTransaction(ctx context.Context, fn func(r *repository.Registry) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	reg := newRegistry(tx)
	if err := fn(&reg); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		if isRetryableConflict(err) {
			return domain.Wrap(domain.KindConflict, err, "booking conflicts with a concurrent update, please retry")
		}
		return err
	}
	return nil
}

// isRetryableConflict reports whether err is a serialization failure,
// deadlock, or unique violation from PostgreSQL.
func isRetryableConflict(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "40001", "40P01", "23505":
			return true
		}
	}
	return false
}

// notFound translates sql.ErrNoRows into a typed not-found error.
func notFound(err error, format string, args ...any) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.E(domain.KindNotFound, format, args...)
	}
	return err
}

// translateWriteErr maps constraint violations on writes to typed errors.
func translateWriteErr(err error) error {
	if err == nil {
		return nil
	}
	if isRetryableConflict(err) {
		return domain.Wrap(domain.KindConflict, err, "duplicate or conflicting record")
	}
	return err
}
