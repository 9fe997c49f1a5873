package bootstrap

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/techstore-pos/internal/domain/entity"
	"github.com/jhoicas/techstore-pos/internal/testutil/memdb"
	"github.com/jhoicas/techstore-pos/pkg/logger"
)

type stubMigrator struct {
	calls int
	err   error
}

func (m *stubMigrator) Up(context.Context) error {
	m.calls++
	return m.err
}

func testLogger() *logger.Logger {
	return logger.Nop()
}

func TestRun_CreatesAdminAndCatalogOnce(t *testing.T) {
	db := memdb.New()
	mig := &stubMigrator{}
	b := New(mig, db.Users(), db.Products(), testLogger(), Options{
		AdminUsername: "admin", AdminPassword: "admin123", SeedCatalog: true,
	})
	ctx := context.Background()

	require.NoError(t, b.Run(ctx))
	require.NoError(t, b.Run(ctx))
	assert.Equal(t, 2, mig.calls)

	admin, err := db.Users().GetByUsername(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, entity.RoleAdmin, admin.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("admin123")))

	n, err := db.Products().CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(initialCatalog), n)

	low, err := db.Products().ListLowStock(ctx)
	require.NoError(t, err)
	assert.Empty(t, low, "el catálogo inicial no arranca con stock bajo")
}

func TestRun_SkipsSeedWhenCatalogHasProducts(t *testing.T) {
	db := memdb.New()
	db.AddProduct(entity.Product{ID: "p1", Name: "Existente", Active: true, Stock: 10, LowStockThreshold: 5})
	b := New(nil, db.Users(), db.Products(), testLogger(), Options{SeedCatalog: true})

	require.NoError(t, b.Run(context.Background()))
	n, err := db.Products().CountActive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRun_MigrationErrorStops(t *testing.T) {
	db := memdb.New()
	b := New(&stubMigrator{err: errors.New("db down")}, db.Users(), db.Products(), testLogger(), Options{
		AdminUsername: "admin", AdminPassword: "admin123",
	})

	assert.Error(t, b.Run(context.Background()))
	u, _ := db.Users().GetByUsername(context.Background(), "admin")
	assert.Nil(t, u)
}

func TestRun_AdminWithoutPassword(t *testing.T) {
	db := memdb.New()
	b := New(nil, db.Users(), db.Products(), testLogger(), Options{AdminUsername: "admin"})
	assert.Error(t, b.Run(context.Background()))
}
