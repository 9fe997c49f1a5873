package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	tok, err := Generate("secret", "u-1", "caja1", "vendedor", "techstore", 5)
	require.NoError(t, err)

	userID, username, role, err := Parse("secret", tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
	assert.Equal(t, "caja1", username)
	assert.Equal(t, "vendedor", role)
}

func TestParse_Rejects(t *testing.T) {
	tok, err := Generate("secret", "u-1", "caja1", "admin", "techstore", 5)
	require.NoError(t, err)

	_, _, _, err = Parse("otro-secret", tok)
	assert.Error(t, err, "firma incorrecta")

	expired, err := Generate("secret", "u-1", "caja1", "admin", "techstore", -1)
	require.NoError(t, err)
	_, _, _, err = Parse("secret", expired)
	assert.Error(t, err, "token expirado")

	_, err = Generate("", "u-1", "caja1", "admin", "techstore", 5)
	assert.Error(t, err)
}

func TestParseClaims_RejectsOtherAlgorithmsAndMissingUser(t *testing.T) {
	hs512 := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute))},
		UserID:           "u-1",
	})
	tok, err := hs512.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = ParseClaims("secret", tok)
	assert.Error(t, err, "solo HS256")

	noUser, err := Generate("secret", "", "caja1", "admin", "techstore", 5)
	require.NoError(t, err)
	_, err = ParseClaims("secret", noUser)
	assert.Error(t, err, "user_id requerido")

	claims, err := ParseClaims("secret", mustGenerate(t))
	require.NoError(t, err)
	assert.Equal(t, "techstore", claims.Issuer)
	assert.Equal(t, "u-1", claims.Subject)
}

func mustGenerate(t *testing.T) string {
	t.Helper()
	tok, err := Generate("secret", "u-1", "caja1", "admin", "techstore", 5)
	require.NoError(t, err)
	return tok
}
