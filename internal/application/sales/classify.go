package sales

import (
	"errors"
	"net/http"

	"github.com/jhoicas/techstore-pos/internal/domain"
)

// Failure resultado estructurado de una venta fallida: status HTTP equivalente,
// código estable y mensaje para el usuario.
type Failure struct {
	Status  int
	Code    string
	Message string
}

// ClientError indica si el fallo es atribuible a la entrada (4xx).
func (f Failure) ClientError() bool {
	return f.Status >= 400 && f.Status < 500
}

// Classify traduce cualquier error del registro de ventas a un Failure.
// Los errores de infraestructura se reportan de forma genérica.
func Classify(err error) Failure {
	var stockErr *domain.InsufficientStockError
	var notFoundErr *domain.ProductNotFoundError
	var fieldErr *domain.FieldError
	switch {
	case errors.Is(err, domain.ErrEmptyOrder):
		return Failure{Status: http.StatusBadRequest, Code: "EMPTY_ORDER", Message: "No hay productos en la venta"}
	case errors.As(err, &stockErr):
		return Failure{Status: http.StatusConflict, Code: "INSUFFICIENT_STOCK", Message: "Stock insuficiente para " + stockErr.ProductName}
	case errors.As(err, &notFoundErr):
		return Failure{Status: http.StatusNotFound, Code: "PRODUCT_NOT_FOUND", Message: "Producto no encontrado: " + notFoundErr.ProductID}
	case errors.Is(err, domain.ErrNotFound):
		return Failure{Status: http.StatusNotFound, Code: "NOT_FOUND", Message: "Cliente no encontrado"}
	case errors.As(err, &fieldErr):
		return Failure{Status: http.StatusBadRequest, Code: "VALIDATION", Message: "Dato inválido en " + fieldErr.Field + ": " + fieldErr.Reason}
	case errors.Is(err, domain.ErrInvalidInput):
		return Failure{Status: http.StatusBadRequest, Code: "VALIDATION", Message: "Datos de la venta inválidos"}
	case errors.Is(err, domain.ErrUnauthorized):
		return Failure{Status: http.StatusUnauthorized, Code: "UNAUTHORIZED", Message: "Operador inválido o inactivo"}
	case errors.Is(err, domain.ErrTransactionFailure):
		return Failure{Status: http.StatusInternalServerError, Code: "TRANSACTION_FAILURE", Message: "No se pudo registrar la venta, intente nuevamente"}
	default:
		return Failure{Status: http.StatusInternalServerError, Code: "INTERNAL", Message: "Error interno"}
	}
}
