package postgres

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/techstore-pos/internal/application/dto"
	"github.com/jhoicas/techstore-pos/internal/application/sales"
	"github.com/jhoicas/techstore-pos/internal/domain"
	"github.com/jhoicas/techstore-pos/internal/domain/entity"
	"github.com/jhoicas/techstore-pos/internal/domain/repository"
	"github.com/jhoicas/techstore-pos/pkg/config"
)

// testPool abre un pool contra DATABASE_URL en un schema propio del test y aplica las migraciones.
// Sin DATABASE_URL el test se omite.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL no definido: se omiten los tests contra PostgreSQL")
	}
	ctx := context.Background()

	admin, err := pgx.Connect(ctx, url)
	require.NoError(t, err)
	schema := "it_" + uuid.NewString()[:8]
	_, err = admin.Exec(ctx, "CREATE SCHEMA "+schema)
	require.NoError(t, err)

	pc, err := newPoolConfig(config.DBConfig{DatabaseURL: url, MaxConns: 8})
	require.NoError(t, err)
	pc.ConnConfig.RuntimeParams["search_path"] = schema
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	require.NoError(t, err)

	t.Cleanup(func() {
		pool.Close()
		_, _ = admin.Exec(context.Background(), "DROP SCHEMA "+schema+" CASCADE")
		_ = admin.Close(context.Background())
	})

	require.NoError(t, NewMigrator(pool).Up(ctx))
	return pool
}

func seedOperator(t *testing.T, pool *pgxpool.Pool) *entity.User {
	t.Helper()
	now := time.Now()
	u := &entity.User{
		ID: uuid.NewString(), Username: "caja-" + uuid.NewString()[:6], PasswordHash: "x", Name: "Caja",
		Role: entity.RoleVendedor, Active: true, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, NewUserRepository(pool).Create(context.Background(), u))
	return u
}

func seedProduct(t *testing.T, pool *pgxpool.Pool, name, price string, stock int) *entity.Product {
	t.Helper()
	now := time.Now()
	p := &entity.Product{
		ID: uuid.NewString(), Name: name, Category: "Audio", Price: decimal.RequireFromString(price),
		Stock: stock, LowStockThreshold: entity.DefaultLowStockThreshold, Active: true, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, NewProductRepository(pool).Create(context.Background(), p))
	return p
}

func appendSale(t *testing.T, pool *pgxpool.Pool, operatorID string, at time.Time, total, status string) *entity.Sale {
	t.Helper()
	s := &entity.Sale{
		ID: uuid.NewString(), Date: at, UserID: operatorID,
		Subtotal: decimal.RequireFromString(total), TaxAmount: decimal.Zero, Total: decimal.RequireFromString(total),
		Status: status,
	}
	require.NoError(t, NewSaleRepository(pool).Append(context.Background(), s, nil))
	return s
}

func TestTxRunner_ForUpdateBlocksUntilCommit(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	headset := seedProduct(t, pool, "Audífonos", "349.00", 1)
	runner := NewTxRunner(pool)

	locked := make(chan struct{})
	release := make(chan struct{})
	errA := make(chan error, 1)
	go func() {
		errA <- runner.RunSale(ctx, func(products repository.ProductRepository, _ repository.SaleRepository) error {
			if _, err := products.GetForUpdate(ctx, []string{headset.ID}); err != nil {
				return err
			}
			close(locked)
			<-release
			_, err := products.DecrementStock(ctx, headset.ID, 1)
			return err
		})
	}()
	<-locked

	seen := make(chan int, 1)
	errB := make(chan error, 1)
	go func() {
		errB <- runner.RunSale(ctx, func(products repository.ProductRepository, _ repository.SaleRepository) error {
			list, err := products.GetForUpdate(ctx, []string{headset.ID})
			if err != nil {
				return err
			}
			seen <- list[0].Stock
			_, err = products.DecrementStock(ctx, headset.ID, 1)
			return err
		})
	}()

	select {
	case stock := <-seen:
		t.Fatalf("la segunda transacción leyó stock %d sin esperar el bloqueo", stock)
	case <-time.After(300 * time.Millisecond):
	}
	close(release)

	require.NoError(t, <-errA)
	assert.Equal(t, 0, <-seen, "tras el commit se relee el stock actualizado")
	err := <-errB
	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr), "err: %v", err)
	assert.Equal(t, 0, stockErr.Available)
}

func TestRegisterSale_ConcurrentBuyersOfLastUnitOnPostgres(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	operator := seedOperator(t, pool)
	headset := seedProduct(t, pool, "Audífonos", "349.00", 1)

	saleRepo := NewSaleRepository(pool)
	uc := sales.NewRegisterSaleUseCase(NewTxRunner(pool), NewUserRepository(pool), NewCustomerRepository(pool), saleRepo, nil)

	const buyers = 2
	start := make(chan struct{})
	var wg sync.WaitGroup
	errs := make(chan error, buyers)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := uc.RegisterSale(ctx, operator.ID, dto.RegisterSaleRequest{
				Items: []dto.SaleItemRequest{{ProductID: headset.ID, Quantity: 1}},
			})
			errs <- err
		}()
	}
	close(start)
	wg.Wait()
	close(errs)

	ok, rejected := 0, 0
	for err := range errs {
		if err == nil {
			ok++
			continue
		}
		var stockErr *domain.InsufficientStockError
		require.True(t, errors.As(err, &stockErr), "err: %v", err)
		rejected++
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, rejected)

	p, err := NewProductRepository(pool).GetActiveByID(ctx, headset.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Stock)

	list, err := saleRepo.ListByDateRange(ctx, nil, nil)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRegisterSale_LargeTotalFitsOnPostgres(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	operator := seedOperator(t, pool)
	rack := seedProduct(t, pool, "Rack de servidores", "99999999.99", 10)

	uc := sales.NewRegisterSaleUseCase(NewTxRunner(pool), NewUserRepository(pool), NewCustomerRepository(pool), NewSaleRepository(pool), nil)
	resp, err := uc.RegisterSale(ctx, operator.ID, dto.RegisterSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: rack.ID, Quantity: 10}},
	})
	require.NoError(t, err)
	assert.Equal(t, "1179999999.88", resp.Total.StringFixed(2))
}

func TestSaleRepo_ListByDateRangeBoundsAreInclusive(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	operator := seedOperator(t, pool)
	repo := NewSaleRepository(pool)

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 23, 59, 59, 999999000, time.UTC)
	before := appendSale(t, pool, operator.ID, from.Add(-time.Microsecond), "10.00", entity.SaleStatusCompleted)
	first := appendSale(t, pool, operator.ID, from, "20.00", entity.SaleStatusCompleted)
	last := appendSale(t, pool, operator.ID, to, "30.00", entity.SaleStatusCompleted)
	after := appendSale(t, pool, operator.ID, to.Add(time.Microsecond), "40.00", entity.SaleStatusCompleted)

	list, err := repo.ListByDateRange(ctx, &from, &to)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, last.ID, list[1].ID)

	list, err = repo.ListByDateRange(ctx, nil, &to)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, before.ID, list[0].ID)

	list, err = repo.ListByDateRange(ctx, &from, nil)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, after.ID, list[2].ID)
}

func TestSaleRepo_TotalsBetweenCountsOnlyCompleted(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	operator := seedOperator(t, pool)
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	appendSale(t, pool, operator.ID, day.Add(9*time.Hour), "100.00", entity.SaleStatusCompleted)
	appendSale(t, pool, operator.ID, day.Add(10*time.Hour), "50.50", entity.SaleStatusCompleted)
	appendSale(t, pool, operator.ID, day.Add(11*time.Hour), "999.00", entity.SaleStatusCancelled)

	total, count, err := NewSaleRepository(pool).TotalsBetween(ctx, day, day.Add(24*time.Hour-time.Nanosecond))
	require.NoError(t, err)
	assert.Equal(t, "150.50", total.StringFixed(2))
	assert.Equal(t, 2, count)
}

func TestRepos_MalformedIDIsNotFound(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	products := NewProductRepository(pool)

	p, err := products.GetActiveByID(ctx, "no-es-uuid")
	require.NoError(t, err)
	assert.Nil(t, p)

	s, err := NewSaleRepository(pool).GetByID(ctx, "no-es-uuid")
	require.NoError(t, err)
	assert.Nil(t, s)

	_, err = products.DecrementStock(ctx, "no-es-uuid", 1)
	var nf *domain.ProductNotFoundError
	assert.True(t, errors.As(err, &nf), "err: %v", err)

	locked, err := products.GetForUpdate(ctx, []string{"no-es-uuid"})
	require.NoError(t, err)
	assert.Empty(t, locked)
}

func TestProductRepo_SearchTreatsWildcardsLiterally(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	seedProduct(t, pool, "Cable USB-C 50% dcto", "19.90", 10)
	seedProduct(t, pool, "Cable USB-C 500mm", "24.90", 10)
	seedProduct(t, pool, "Cable_HDMI", "29.90", 10)

	list, err := NewProductRepository(pool).ListActive(ctx, repository.ProductFilter{NameContains: "50%"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Cable USB-C 50% dcto", list[0].Name)

	list, err = NewProductRepository(pool).ListActive(ctx, repository.ProductFilter{NameContains: "cable_"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Cable_HDMI", list[0].Name)
}
