package repository

import (
	"context"

	"github.com/jhoicas/techstore-pos/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	// Create devuelve domain.ErrDuplicate si el documento ya está registrado.
	Create(ctx context.Context, customer *entity.Customer) error
	GetActiveByID(ctx context.Context, id string) (*entity.Customer, error)
	GetByDocumentID(ctx context.Context, documentID string) (*entity.Customer, error)
	// ListActive filtra por nombre o documento cuando search no está vacío.
	ListActive(ctx context.Context, search string) ([]*entity.Customer, error)
	CountActive(ctx context.Context) (int, error)
}
