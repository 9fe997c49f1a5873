package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/techstore-pos/internal/application/auth"
	"github.com/jhoicas/techstore-pos/internal/application/dto"
	"github.com/jhoicas/techstore-pos/internal/domain"
	"github.com/jhoicas/techstore-pos/internal/domain/entity"
	"github.com/jhoicas/techstore-pos/internal/testutil/memdb"
	"github.com/jhoicas/techstore-pos/pkg/jwt"
)

const secret = "test-secret"

func newAuth(db *memdb.DB) *auth.AuthUseCase {
	return auth.NewAuthUseCase(db.Users(), auth.JWTConfig{Secret: secret, ExpMinutes: 10, Issuer: "techstore-test"})
}

func TestCreateOperatorAndLogin(t *testing.T) {
	db := memdb.New()
	uc := newAuth(db)
	ctx := context.Background()

	created, err := uc.CreateOperator(ctx, dto.CreateOperatorRequest{Username: " Caja1 ", Password: "secreto123", Name: "Caja 1"})
	require.NoError(t, err)
	assert.Equal(t, "caja1", created.Username)
	assert.Equal(t, entity.RoleVendedor, created.Role)
	assert.True(t, created.Active)

	resp, err := uc.Login(ctx, dto.LoginRequest{Username: "caja1", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, resp.User.ID)

	userID, username, role, err := jwt.Parse(secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, userID)
	assert.Equal(t, "caja1", username)
	assert.Equal(t, entity.RoleVendedor, role)
}

func TestCreateOperator_DuplicateUsername(t *testing.T) {
	db := memdb.New()
	uc := newAuth(db)
	ctx := context.Background()

	_, err := uc.CreateOperator(ctx, dto.CreateOperatorRequest{Username: "admin", Password: "secreto123", Role: entity.RoleAdmin})
	require.NoError(t, err)
	_, err = uc.CreateOperator(ctx, dto.CreateOperatorRequest{Username: "ADMIN", Password: "otro12345"})
	assert.ErrorIs(t, err, domain.ErrUsernameExists)
}

func TestCreateOperator_InvalidRole(t *testing.T) {
	uc := newAuth(memdb.New())
	_, err := uc.CreateOperator(context.Background(), dto.CreateOperatorRequest{Username: "x", Password: "secreto123", Role: "supervisor"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_Failures(t *testing.T) {
	db := memdb.New()
	uc := newAuth(db)
	ctx := context.Background()

	_, err := uc.CreateOperator(ctx, dto.CreateOperatorRequest{Username: "caja1", Password: "secreto123"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "nadie", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "caja1", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	u, err := db.Users().GetByUsername(ctx, "caja1")
	require.NoError(t, err)
	u.Active = false
	db.AddUser(*u)
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "caja1", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
