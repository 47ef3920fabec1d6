package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"rental-booking-backend/internal/domain"
)

type ItemRepository interface {
	Create(ctx context.Context, item *domain.RentalItem) error
	GetByCode(ctx context.Context, code string) (*domain.RentalItem, error)
	// GetByCodeForUpdate locks the item row for the duration of the
	// surrounding transaction. Outside a transaction it behaves like
	// GetByCode.
	GetByCodeForUpdate(ctx context.Context, code string) (*domain.RentalItem, error)
	Update(ctx context.Context, item *domain.RentalItem) error
	UpdateRentalStatus(ctx context.Context, code string, status domain.ItemRentalStatus) error
	IncrementRentalCount(ctx context.Context, code string) error
	ListPendingApproval(ctx context.Context) ([]domain.RentalItem, error)
}

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int32) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	UpdateStatus(ctx context.Context, id int32, status domain.BookingStatus) error
	// ListConflicts returns non-terminal bookings referencing the item
	// whose inclusive rental window overlaps [start, end], excluding
	// excludeID when non-zero.
	ListConflicts(ctx context.Context, itemCode string, start, end time.Time, excludeID int32) ([]domain.BookingConflict, error)
	// ListForItemCalendar returns upcoming non-terminal bookings for an
	// item, ordered by rental start date.
	ListForItemCalendar(ctx context.Context, itemCode string, until time.Time) ([]domain.BookingConflict, error)
	CountOutstandingByCustomer(ctx context.Context, customerID, excludeID int32) (int32, error)
	PendingAmountByCustomer(ctx context.Context, customerID int32) (decimal.Decimal, error)
	// ListOverdueReturns returns bookings still out for rental whose
	// rental window closed before asOf.
	ListOverdueReturns(ctx context.Context, asOf time.Time) ([]domain.Booking, error)
	// AggregateCustomerStats computes booking count, total rental amount,
	// and last booking date across a customer's non-draft rental bookings.
	AggregateCustomerStats(ctx context.Context, customerID int32) (int32, decimal.Decimal, *time.Time, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id int32) (*domain.Customer, error)
	GetByMobile(ctx context.Context, mobile string) (*domain.Customer, error)
	UniqueIDExists(ctx context.Context, uniqueID string) (bool, error)
	UpdateStats(ctx context.Context, id int32, totalBookings int32, totalAmount decimal.Decimal, lastBooking *time.Time) error
	ListIDs(ctx context.Context) ([]int32, error)
}

type SupplierRepository interface {
	Create(ctx context.Context, supplier *domain.Supplier) error
	GetByID(ctx context.Context, id int32) (*domain.Supplier, error)
	GetByName(ctx context.Context, name string) (*domain.Supplier, error)
}

type LedgerRepository interface {
	CreateEntry(ctx context.Context, entry *domain.JournalEntry) error
	ListByBooking(ctx context.Context, bookingID int32) ([]domain.JournalEntry, error)
	// CancelByBooking marks all of a booking's journal entries cancelled
	// and returns how many were affected.
	CancelByBooking(ctx context.Context, bookingID int32) (int64, error)
}

// Registry bundles all repositories bound to one database handle, either
// the root pool or a single transaction.
type Registry struct {
	Items     ItemRepository
	Bookings  BookingRepository
	Customers CustomerRepository
	Suppliers SupplierRepository
	Ledger    LedgerRepository
}

// Transactor runs a function with a Registry bound to one database
// transaction. The transaction commits when fn returns nil and rolls back
// otherwise; availability checks and the status writes that depend on them
// must share one transaction to stay race-free.
type Transactor interface {
	InTransaction(ctx context.Context, fn func(r *Registry) error) error
}
