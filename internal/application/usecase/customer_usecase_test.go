package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/techstore-pos/internal/application/dto"
	"github.com/jhoicas/techstore-pos/internal/application/usecase"
	"github.com/jhoicas/techstore-pos/internal/domain"
	"github.com/jhoicas/techstore-pos/internal/domain/entity"
	"github.com/jhoicas/techstore-pos/internal/testutil/memdb"
)

func TestCustomerUseCase_CreateAndDuplicate(t *testing.T) {
	db := memdb.New()
	uc := usecase.NewCustomerUseCase(db.Customers(), db.Sales())
	ctx := context.Background()

	c, err := uc.Create(ctx, dto.CreateCustomerRequest{Name: "Ana Pérez", DocumentID: "12345678"})
	require.NoError(t, err)
	assert.Equal(t, entity.DocumentTypeDNI, c.DocumentType)

	_, err = uc.Create(ctx, dto.CreateCustomerRequest{Name: "Otra", DocumentID: " 12345678 "})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, dto.CreateCustomerRequest{Name: "Empresa", DocumentID: "20123456789", DocumentType: "pasaporte"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	ruc, err := uc.Create(ctx, dto.CreateCustomerRequest{Name: "Empresa SAC", DocumentID: "20123456786", DocumentType: "ruc"})
	require.NoError(t, err)
	assert.Equal(t, entity.DocumentTypeRUC, ruc.DocumentType)

	list, err := uc.ListActive(ctx, "2012")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, ruc.ID, list[0].ID)
}

func TestCustomerUseCase_GetByIDIncludesPurchaseTotals(t *testing.T) {
	db := memdb.New()
	db.AddCustomer(entity.Customer{ID: "c1", Name: "Ana", DocumentID: "1", Active: true})
	cid := "c1"
	db.AddSale(entity.Sale{ID: "s1", Date: time.Now(), CustomerID: &cid, Total: decimal.RequireFromString("100.30"), Status: entity.SaleStatusCompleted})
	db.AddSale(entity.Sale{ID: "s2", Date: time.Now(), CustomerID: &cid, Total: decimal.RequireFromString("20.00"), Status: entity.SaleStatusCompleted})
	db.AddSale(entity.Sale{ID: "s3", Date: time.Now(), Total: decimal.RequireFromString("999"), Status: entity.SaleStatusCompleted})
	uc := usecase.NewCustomerUseCase(db.Customers(), db.Sales())

	detail, err := uc.GetByID(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, 2, detail.PurchaseCount)
	assert.True(t, detail.TotalPurchases.Equal(decimal.RequireFromString("120.30")))

	_, err = uc.GetByID(context.Background(), "c9")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCustomerUseCase_RejectsMalformedDocuments(t *testing.T) {
	db := memdb.New()
	uc := usecase.NewCustomerUseCase(db.Customers(), db.Sales())
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateCustomerRequest{Name: "Ana", DocumentID: "1234"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "DNI corto")

	_, err = uc.Create(ctx, dto.CreateCustomerRequest{Name: "Empresa", DocumentID: "20123456789", DocumentType: "RUC"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "dígito verificador incorrecto")

	c, err := uc.Create(ctx, dto.CreateCustomerRequest{Name: "Empresa", DocumentID: "20-12345678-6", DocumentType: "RUC"})
	require.NoError(t, err)
	assert.Equal(t, "20123456786", c.DocumentID, "se guarda normalizado")
}
