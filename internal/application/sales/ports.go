package sales

import (
	"context"
	"time"

	"github.com/jhoicas/techstore-pos/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn retorna error se hace rollback: ninguna venta queda persistida a medias.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// Recorder registra el resultado de cada intento de venta (métricas). Puede ser nil.
type Recorder interface {
	ObserveRegistration(result string, duration time.Duration)
}
