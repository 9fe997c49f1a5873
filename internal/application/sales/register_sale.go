// Package sales contiene el caso de uso de registro de ventas: validación de stock,
// descuento de inventario y cálculo de totales dentro de una única transacción.
package sales

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jhoicas/techstore-pos/internal/application/dto"
	"github.com/jhoicas/techstore-pos/internal/domain"
	"github.com/jhoicas/techstore-pos/internal/domain/entity"
	"github.com/jhoicas/techstore-pos/internal/domain/repository"
	domainsales "github.com/jhoicas/techstore-pos/internal/domain/sales"
	"github.com/shopspring/decimal"
)

// MaxNotesLength largo máximo (en caracteres) de las notas de una venta.
const MaxNotesLength = 500

// MaxSaleTotal mayor total que admite una venta (columnas NUMERIC(14,2)).
var MaxSaleTotal = decimal.RequireFromString("999999999999.99")

// RegisterSaleUseCase registra una venta multi-producto de forma atómica.
type RegisterSaleUseCase struct {
	txRunner     TxRunner
	userRepo     repository.UserRepository
	customerRepo repository.CustomerRepository
	saleRepo     repository.SaleRepository
	recorder     Recorder
	now          func() time.Time
}

// NewRegisterSaleUseCase construye el caso de uso. recorder puede ser nil.
func NewRegisterSaleUseCase(
	txRunner TxRunner,
	userRepo repository.UserRepository,
	customerRepo repository.CustomerRepository,
	saleRepo repository.SaleRepository,
	recorder Recorder,
) *RegisterSaleUseCase {
	return &RegisterSaleUseCase{
		txRunner:     txRunner,
		userRepo:     userRepo,
		customerRepo: customerRepo,
		saleRepo:     saleRepo,
		recorder:     recorder,
		now:          time.Now,
	}
}

// RegisterSale valida el pedido, descuenta stock, guarda cabecera y líneas y devuelve la venta persistida.
//
// Errores:
//   - domain.ErrEmptyOrder si no hay líneas.
//   - *domain.FieldError (domain.ErrInvalidInput) si una línea no tiene producto o cantidad > 0,
//     si las notas son demasiado largas o si el total supera MaxSaleTotal.
//   - domain.ErrUnauthorized si el operador no existe o está inactivo.
//   - domain.ErrNotFound (o *domain.ProductNotFoundError) si falta el cliente o un producto.
//   - *domain.InsufficientStockError si una línea pide más de lo disponible.
//   - domain.ErrTransactionFailure si falla la base de datos.
func (uc *RegisterSaleUseCase) RegisterSale(ctx context.Context, operatorID string, in dto.RegisterSaleRequest) (*dto.SaleResponse, error) {
	start := time.Now()
	resp, err := uc.registerSale(ctx, operatorID, in)
	if uc.recorder != nil {
		result := "OK"
		if err != nil {
			result = Classify(err).Code
		}
		uc.recorder.ObserveRegistration(result, time.Since(start))
	}
	return resp, err
}

func (uc *RegisterSaleUseCase) registerSale(ctx context.Context, operatorID string, in dto.RegisterSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrEmptyOrder
	}
	if err := validateOrder(in); err != nil {
		return nil, err
	}

	operator, err := uc.userRepo.GetByID(ctx, operatorID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTransactionFailure, err)
	}
	if operator == nil || !operator.Active {
		return nil, domain.ErrUnauthorized
	}

	var customerID *string
	if in.CustomerID != nil && strings.TrimSpace(*in.CustomerID) != "" {
		id := strings.TrimSpace(*in.CustomerID)
		customer, err := uc.customerRepo.GetActiveByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrTransactionFailure, err)
		}
		if customer == nil {
			return nil, fmt.Errorf("cliente %s: %w", id, domain.ErrNotFound)
		}
		customerID = &id
	}

	now := uc.now()
	var sale *entity.Sale
	var items []*entity.SaleItem

	err = uc.txRunner.RunSale(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		// 1) Bloquear las filas de todos los productos del pedido (orden por ID: evita deadlocks entre ventas)
		locked, err := productRepo.GetForUpdate(ctx, distinctProductIDs(in.Items))
		if err != nil {
			return err
		}
		byID := make(map[string]*entity.Product, len(locked))
		remaining := make(map[string]int, len(locked))
		for _, p := range locked {
			byID[p.ID] = p
			remaining[p.ID] = p.Stock
		}

		// 2) Validar todas las líneas en el orden recibido antes de mutar nada
		for _, item := range in.Items {
			p, ok := byID[item.ProductID]
			if !ok {
				return &domain.ProductNotFoundError{ProductID: item.ProductID}
			}
			if remaining[p.ID] < item.Quantity {
				return &domain.InsufficientStockError{
					ProductID:   p.ID,
					ProductName: p.Name,
					Requested:   item.Quantity,
					Available:   remaining[p.ID],
				}
			}
			remaining[p.ID] -= item.Quantity
		}

		// 3) Descontar stock y congelar precios en las líneas
		lineSubtotals := make([]decimal.Decimal, 0, len(in.Items))
		for i, item := range in.Items {
			p := byID[item.ProductID]
			if _, err := productRepo.DecrementStock(ctx, p.ID, item.Quantity); err != nil {
				return err
			}
			subtotal := domainsales.LineSubtotal(item.Quantity, p.Price)
			lineSubtotals = append(lineSubtotals, subtotal)
			items = append(items, &entity.SaleItem{
				ID:          uuid.New().String(),
				ProductID:   p.ID,
				ProductName: p.Name,
				LineNo:      i + 1,
				Quantity:    item.Quantity,
				UnitPrice:   p.Price,
				Subtotal:    subtotal,
			})
		}

		// 4) Totales: subtotal, IGV 18% y total
		totals := domainsales.CalculateTotals(lineSubtotals)
		if totals.Total.GreaterThan(MaxSaleTotal) {
			return &domain.FieldError{Field: "items", Reason: "el total de la venta excede el máximo permitido"}
		}
		sale = &entity.Sale{
			ID:         uuid.New().String(),
			Date:       now,
			CustomerID: customerID,
			UserID:     operator.ID,
			Subtotal:   totals.Subtotal,
			TaxAmount:  totals.TaxAmount,
			Total:      totals.Total,
			Status:     entity.SaleStatusCompleted,
			Notes:      strings.TrimSpace(in.Notes),
		}
		for _, it := range items {
			it.SaleID = sale.ID
		}

		// 5) Persistir cabecera + líneas en la misma transacción
		return saleRepo.Append(ctx, sale, items)
	})
	if err != nil {
		if isBusinessError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrTransactionFailure, err)
	}

	resp := dto.FromSale(sale, items)
	return &resp, nil
}

// GetSale obtiene una venta con sus líneas en el orden de captura.
func (uc *RegisterSaleUseCase) GetSale(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.GetItems(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.FromSale(sale, items)
	return &resp, nil
}

func validateOrder(in dto.RegisterSaleRequest) error {
	for i, item := range in.Items {
		if strings.TrimSpace(item.ProductID) == "" {
			return &domain.FieldError{Field: fmt.Sprintf("items[%d].product_id", i), Reason: "es obligatorio"}
		}
		if item.Quantity <= 0 {
			return &domain.FieldError{Field: fmt.Sprintf("items[%d].quantity", i), Reason: "debe ser mayor a 0"}
		}
	}
	if utf8.RuneCountInString(strings.TrimSpace(in.Notes)) > MaxNotesLength {
		return &domain.FieldError{Field: "notes", Reason: fmt.Sprintf("máximo %d caracteres", MaxNotesLength)}
	}
	return nil
}

func distinctProductIDs(items []dto.SaleItemRequest) []string {
	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.ProductID]; ok {
			continue
		}
		seen[it.ProductID] = struct{}{}
		ids = append(ids, it.ProductID)
	}
	sort.Strings(ids)
	return ids
}

func isBusinessError(err error) bool {
	return errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrInsufficientStock) ||
		errors.Is(err, domain.ErrInvalidInput) ||
		errors.Is(err, domain.ErrEmptyOrder) ||
		errors.Is(err, domain.ErrTransactionFailure)
}
