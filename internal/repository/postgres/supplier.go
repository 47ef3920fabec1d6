package postgres

import (
	"context"
	"time"

	"rental-booking-backend/internal/domain"
	"rental-booking-backend/internal/repository"
)

type supplierRepository struct {
	db dbtx
}

func NewSupplierRepository(db dbtx) repository.SupplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) Create(ctx context.Context, s *domain.Supplier) error {
	query := `INSERT INTO suppliers (name, email, created_on) VALUES ($1, $2, $3) RETURNING id`
	s.CreatedOn = time.Now()
	err := r.db.QueryRowContext(ctx, query, s.Name, s.Email, s.CreatedOn).Scan(&s.ID)
	return translateWriteErr(err)
}

func (r *supplierRepository) GetByID(ctx context.Context, id int32) (*domain.Supplier, error) {
	s := &domain.Supplier{}
	query := `SELECT id, name, email, created_on FROM suppliers WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.Name, &s.Email, &s.CreatedOn)
	if err != nil {
		return nil, notFound(err, "supplier %d not found", id)
	}
	return s, nil
}

func (r *supplierRepository) GetByName(ctx context.Context, name string) (*domain.Supplier, error) {
	s := &domain.Supplier{}
	query := `SELECT id, name, email, created_on FROM suppliers WHERE name = $1`
	err := r.db.QueryRowContext(ctx, query, name).Scan(&s.ID, &s.Name, &s.Email, &s.CreatedOn)
	if err != nil {
		return nil, notFound(err, "supplier %s not found", name)
	}
	return s, nil
}
