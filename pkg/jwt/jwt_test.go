package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/Inventario-ledger/pkg/jwt"
)

const secret = "secreto-de-prueba"

func TestGenerateParse(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "u1", "s1", "bodeguero", "inventario-ledger", 5)
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "s1", claims.StoreID)
	assert.Equal(t, "bodeguero", claims.Role)
	assert.Equal(t, "inventario-ledger", claims.Issuer)
}

func TestParse_Rechazos(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "u1", "s1", "admin", "x", 5)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secreto", tok)
	assert.Error(t, err, "firma incorrecta")

	expired, err := pkgjwt.Generate(secret, "u1", "s1", "admin", "x", -1)
	require.NoError(t, err)
	_, err = pkgjwt.Parse(secret, expired)
	assert.Error(t, err, "token expirado")

	noStore, err := pkgjwt.Generate(secret, "u1", "", "admin", "x", 5)
	require.NoError(t, err)
	_, err = pkgjwt.Parse(secret, noStore)
	assert.Error(t, err, "sin tienda")

	_, err = pkgjwt.Generate("", "u1", "s1", "admin", "x", 5)
	assert.Error(t, err)
}
