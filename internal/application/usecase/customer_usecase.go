package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/techstore-pos/internal/application/dto"
	"github.com/jhoicas/techstore-pos/internal/domain"
	"github.com/jhoicas/techstore-pos/internal/domain/entity"
	"github.com/jhoicas/techstore-pos/internal/domain/repository"
	"github.com/jhoicas/techstore-pos/pkg/docid"
)

// CustomerUseCase casos de uso para clientes.
type CustomerUseCase struct {
	repo     repository.CustomerRepository
	saleRepo repository.SaleRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, saleRepo repository.SaleRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, saleRepo: saleRepo}
}

// Create registra un nuevo cliente. ErrDuplicate si el documento ya existe.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.DocumentID = docid.Normalize(in.DocumentID)
	if in.Name == "" || in.DocumentID == "" {
		return nil, domain.ErrInvalidInput
	}
	docType := strings.ToUpper(strings.TrimSpace(in.DocumentType))
	switch docType {
	case "":
		docType = entity.DocumentTypeDNI
	case entity.DocumentTypeDNI, entity.DocumentTypeRUC:
	default:
		return nil, domain.ErrInvalidInput
	}
	if err := validateDocument(docType, in.DocumentID); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	existing, err := uc.repo.GetByDocumentID(ctx, in.DocumentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	customer := &entity.Customer{
		ID:           uuid.New().String(),
		Name:         in.Name,
		DocumentID:   in.DocumentID,
		DocumentType: docType,
		Phone:        strings.TrimSpace(in.Phone),
		Email:        strings.TrimSpace(in.Email),
		Address:      strings.TrimSpace(in.Address),
		Active:       true,
		CreatedAt:    time.Now(),
	}
	// El índice único cubre la carrera entre la verificación y el insert (repo devuelve ErrDuplicate).
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	resp := dto.FromCustomer(customer)
	return &resp, nil
}

// ListActive lista clientes activos; search filtra por nombre o documento.
func (uc *CustomerUseCase) ListActive(ctx context.Context, search string) ([]dto.CustomerResponse, error) {
	list, err := uc.repo.ListActive(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.FromCustomer(c))
	}
	return out, nil
}

// GetByID devuelve el cliente con el total y número de compras calculados desde el libro de ventas.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerDetailResponse, error) {
	customer, err := uc.repo.GetActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	total, count, err := uc.saleRepo.CustomerTotals(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.CustomerDetailResponse{
		CustomerResponse: dto.FromCustomer(customer),
		TotalPurchases:   total,
		PurchaseCount:    count,
	}, nil
}

func validateDocument(docType, number string) error {
	if docType == entity.DocumentTypeRUC {
		return docid.ValidateRUC(number)
	}
	return docid.ValidateDNI(number)
}
