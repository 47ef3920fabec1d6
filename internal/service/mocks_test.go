package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"rental-booking-backend/internal/domain"
	"rental-booking-backend/internal/repository"
)

// MockItemRepo
type MockItemRepo struct {
	mock.Mock
}

func (m *MockItemRepo) Create(ctx context.Context, item *domain.RentalItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockItemRepo) GetByCode(ctx context.Context, code string) (*domain.RentalItem, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalItem), args.Error(1)
}
func (m *MockItemRepo) GetByCodeForUpdate(ctx context.Context, code string) (*domain.RentalItem, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalItem), args.Error(1)
}
func (m *MockItemRepo) Update(ctx context.Context, item *domain.RentalItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockItemRepo) UpdateRentalStatus(ctx context.Context, code string, status domain.ItemRentalStatus) error {
	args := m.Called(ctx, code, status)
	return args.Error(0)
}
func (m *MockItemRepo) IncrementRentalCount(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}
func (m *MockItemRepo) ListPendingApproval(ctx context.Context) ([]domain.RentalItem, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.RentalItem), args.Error(1)
}

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) Update(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}
func (m *MockBookingRepo) UpdateStatus(ctx context.Context, id int32, status domain.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockBookingRepo) ListConflicts(ctx context.Context, itemCode string, start, end time.Time, excludeID int32) ([]domain.BookingConflict, error) {
	args := m.Called(ctx, itemCode, start, end, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookingConflict), args.Error(1)
}
func (m *MockBookingRepo) ListForItemCalendar(ctx context.Context, itemCode string, until time.Time) ([]domain.BookingConflict, error) {
	args := m.Called(ctx, itemCode, until)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookingConflict), args.Error(1)
}
func (m *MockBookingRepo) CountOutstandingByCustomer(ctx context.Context, customerID, excludeID int32) (int32, error) {
	args := m.Called(ctx, customerID, excludeID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockBookingRepo) PendingAmountByCustomer(ctx context.Context, customerID int32) (decimal.Decimal, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockBookingRepo) ListOverdueReturns(ctx context.Context, asOf time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) AggregateCustomerStats(ctx context.Context, customerID int32) (int32, decimal.Decimal, *time.Time, error) {
	args := m.Called(ctx, customerID)
	var last *time.Time
	if args.Get(2) != nil {
		last = args.Get(2).(*time.Time)
	}
	return args.Get(0).(int32), args.Get(1).(decimal.Decimal), last, args.Error(3)
}

// MockCustomerRepo
type MockCustomerRepo struct {
	mock.Mock
}

func (m *MockCustomerRepo) Create(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}
func (m *MockCustomerRepo) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerRepo) GetByMobile(ctx context.Context, mobile string) (*domain.Customer, error) {
	args := m.Called(ctx, mobile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerRepo) UniqueIDExists(ctx context.Context, uniqueID string) (bool, error) {
	args := m.Called(ctx, uniqueID)
	return args.Bool(0), args.Error(1)
}
func (m *MockCustomerRepo) UpdateStats(ctx context.Context, id int32, totalBookings int32, totalAmount decimal.Decimal, lastBooking *time.Time) error {
	args := m.Called(ctx, id, totalBookings, totalAmount, lastBooking)
	return args.Error(0)
}
func (m *MockCustomerRepo) ListIDs(ctx context.Context) ([]int32, error) {
	args := m.Called(ctx)
	return args.Get(0).([]int32), args.Error(1)
}

// MockSupplierRepo
type MockSupplierRepo struct {
	mock.Mock
}

func (m *MockSupplierRepo) Create(ctx context.Context, supplier *domain.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}
func (m *MockSupplierRepo) GetByID(ctx context.Context, id int32) (*domain.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}
func (m *MockSupplierRepo) GetByName(ctx context.Context, name string) (*domain.Supplier, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}

// MockLedgerRepo
type MockLedgerRepo struct {
	mock.Mock
}

func (m *MockLedgerRepo) CreateEntry(ctx context.Context, entry *domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockLedgerRepo) ListByBooking(ctx context.Context, bookingID int32) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}
func (m *MockLedgerRepo) CancelByBooking(ctx context.Context, bookingID int32) (int64, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).(int64), args.Error(1)
}

// MockLedgerService
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) PostDepositLiability(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}
func (m *MockLedgerService) PostDepositRefund(ctx context.Context, booking *domain.Booking, amount decimal.Decimal) error {
	args := m.Called(ctx, booking, amount)
	return args.Error(0)
}
func (m *MockLedgerService) PostOwnerCommissions(ctx context.Context, booking *domain.Booking, commissions map[int32]decimal.Decimal) error {
	args := m.Called(ctx, booking, commissions)
	return args.Error(0)
}
func (m *MockLedgerService) CancelBookingEntries(ctx context.Context, bookingID int32) error {
	args := m.Called(ctx, bookingID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendBookingConfirmation(ctx context.Context, email, name string, booking *domain.Booking) error {
	args := m.Called(ctx, email, name, booking)
	return args.Error(0)
}
func (m *MockEmailService) SendReturnReminder(ctx context.Context, email, name string, booking *domain.Booking) error {
	args := m.Called(ctx, email, name, booking)
	return args.Error(0)
}
func (m *MockEmailService) SendDepositRefundNotice(ctx context.Context, email, name string, booking *domain.Booking, amount decimal.Decimal) error {
	args := m.Called(ctx, email, name, booking, amount)
	return args.Error(0)
}

// mockTransactor runs the transaction body against a registry built from
// the test's mocks, so in-transaction expectations are set on the same
// mocks as everything else.
type mockTransactor struct {
	registry *repository.Registry
	err      error
}

func (m *mockTransactor) InTransaction(ctx context.Context, fn func(r *repository.Registry) error) error {
	if m.err != nil {
		return m.err
	}
	return fn(m.registry)
}

func newMockRegistry(items *MockItemRepo, bookings *MockBookingRepo, customers *MockCustomerRepo, suppliers *MockSupplierRepo, ledger *MockLedgerRepo) *repository.Registry {
	return &repository.Registry{
		Items:     items,
		Bookings:  bookings,
		Customers: customers,
		Suppliers: suppliers,
		Ledger:    ledger,
	}
}
