package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/techstore-pos/internal/application/dto"
	"github.com/jhoicas/techstore-pos/internal/application/usecase"
	"github.com/jhoicas/techstore-pos/internal/domain"
	"github.com/jhoicas/techstore-pos/internal/domain/entity"
	"github.com/jhoicas/techstore-pos/internal/testutil/memdb"
)

func TestProductUseCase_CreateDefaultsThreshold(t *testing.T) {
	db := memdb.New()
	uc := usecase.NewProductUseCase(db.Products())

	resp, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Name: " Laptop HP 15 ", Category: "Laptops", Price: decimal.RequireFromString("4999.004"), Stock: 15,
	})
	require.NoError(t, err)
	assert.Equal(t, "Laptop HP 15", resp.Name)
	assert.Equal(t, entity.DefaultLowStockThreshold, resp.LowStockThreshold)
	assert.True(t, resp.Price.Equal(decimal.RequireFromString("4999.00")))
	assert.False(t, resp.LowStock)
	assert.True(t, db.Product(resp.ID).Active)
}

func TestProductUseCase_CreateRejectsInvalid(t *testing.T) {
	uc := usecase.NewProductUseCase(memdb.New().Products())
	negative := -1
	tests := []struct {
		name string
		in   dto.CreateProductRequest
	}{
		{"sin nombre", dto.CreateProductRequest{Category: "X", Price: decimal.NewFromInt(1)}},
		{"precio negativo", dto.CreateProductRequest{Name: "A", Category: "X", Price: decimal.NewFromInt(-1)}},
		{"stock negativo", dto.CreateProductRequest{Name: "A", Category: "X", Stock: -3}},
		{"umbral negativo", dto.CreateProductRequest{Name: "A", Category: "X", LowStockThreshold: &negative}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), tt.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestProductUseCase_ListAndDeactivate(t *testing.T) {
	db := memdb.New()
	db.AddProduct(entity.Product{ID: "p1", Name: "Laptop HP", Category: "Laptops", Stock: 10, LowStockThreshold: 5, Active: true})
	db.AddProduct(entity.Product{ID: "p2", Name: "Mouse HP", Category: "Accesorios", Stock: 2, LowStockThreshold: 5, Active: true})
	db.AddProduct(entity.Product{ID: "p3", Name: "Monitor", Category: "Monitores", Stock: 2, LowStockThreshold: 5, Active: true})
	uc := usecase.NewProductUseCase(db.Products())
	ctx := context.Background()

	list, err := uc.ListActive(ctx, dto.ProductListQuery{Search: "hp"})
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)

	list, err = uc.ListActive(ctx, dto.ProductListQuery{Search: "hp", Category: "Accesorios"})
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
	assert.True(t, list.Items[0].LowStock)

	require.NoError(t, uc.Deactivate(ctx, "p1"))
	_, err = uc.GetByID(ctx, "p1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Deactivate(ctx, "p1"), domain.ErrNotFound)

	cats, err := uc.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Accesorios", "Monitores"}, cats)
}

func TestProductUseCase_CategoriesEmpty(t *testing.T) {
	uc := usecase.NewProductUseCase(memdb.New().Products())
	cats, err := uc.Categories(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, cats)
	assert.Empty(t, cats)
}
