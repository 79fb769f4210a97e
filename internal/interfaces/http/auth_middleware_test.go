package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/Inventario-ledger/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Inventario-ledger/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testStoreID   = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "inventario-ledger-test"
	testExpMin    = 60
)

// tokenForRole genera el header Authorization con un JWT del rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testStoreID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

// protectedApp GET /protected con AuthMiddleware + RequireRole y un handler que devuelve los claims.
func protectedApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"user_id":  apphttp.GetUserID(c),
				"store_id": apphttp.GetStoreID(c),
				"role":     apphttp.GetRole(c),
			})
		},
	)
	return app
}

func TestAuthMiddleware_RequireRole(t *testing.T) {
	expired, err := pkgjwt.Generate(testJWTSecret, testUserID, testStoreID, "admin", testIssuer, -1)
	require.NoError(t, err)
	foreign, err := pkgjwt.Generate("otro-secret", testUserID, testStoreID, "admin", testIssuer, testExpMin)
	require.NoError(t, err)
	noRole, err := pkgjwt.Generate(testJWTSecret, testUserID, testStoreID, "", testIssuer, testExpMin)
	require.NoError(t, err)

	cases := []struct {
		name    string
		allowed []string
		header  func(t *testing.T) string
		status  int
		code    string
	}{
		{"admin en ruta admin", []string{"admin"}, func(t *testing.T) string { return tokenForRole(t, "admin") }, http.StatusOK, ""},
		{"bodeguero en ruta de operadores", []string{"admin", "bodeguero"}, func(t *testing.T) string { return tokenForRole(t, "bodeguero") }, http.StatusOK, ""},
		{"vendedor en ruta admin", []string{"admin"}, func(t *testing.T) string { return tokenForRole(t, "vendedor") }, http.StatusForbidden, "FORBIDDEN"},
		{"sin header", []string{"admin"}, func(*testing.T) string { return "" }, http.StatusUnauthorized, "MISSING_TOKEN"},
		{"esquema distinto a Bearer", []string{"admin"}, func(*testing.T) string { return "Basic abc" }, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"token malformado", []string{"admin"}, func(*testing.T) string { return "Bearer token.invalido.aqui" }, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"token expirado", []string{"admin"}, func(*testing.T) string { return "Bearer " + expired }, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"firmado con otro secreto", []string{"admin"}, func(*testing.T) string { return "Bearer " + foreign }, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"token sin rol", []string{"admin"}, func(*testing.T) string { return "Bearer " + noRole }, http.StatusUnauthorized, "MISSING_ROLE"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if h := tc.header(t); h != "" {
				req.Header.Set("Authorization", h)
			}
			resp, err := protectedApp(tc.allowed...).Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
			body, _ := io.ReadAll(resp.Body)
			if tc.code != "" {
				assert.Contains(t, string(body), tc.code)
			}
		})
	}
}

func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", tokenForRole(t, "bodeguero"))
	resp, err := protectedApp("bodeguero").Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testStoreID, body["store_id"])
	assert.Equal(t, "bodeguero", body["role"])
}
