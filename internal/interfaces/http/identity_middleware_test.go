package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jcastillo-dev/pos-backoffice/internal/interfaces/http"
	pkgjwt "github.com/jcastillo-dev/pos-backoffice/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "pos-backoffice-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con el middleware de
// identidad y un handler que devuelve lo extraído.
func buildTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/whoami", apphttp.IdentityMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":   apphttp.GetUserID(c),
			"user_name": apphttp.GetUserName(c),
		})
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) map[string]string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode,
		"el middleware de identidad nunca rechaza la petición")

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestIdentityMiddleware_TokenValido(t *testing.T) {
	app := buildTestApp()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "María", "cajero", testIssuer, testExpMin)
	require.NoError(t, err)

	body := doRequest(t, app, "Bearer "+tok)
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, "María", body["user_name"])
}

func TestIdentityMiddleware_SinToken_UsaSistema(t *testing.T) {
	app := buildTestApp()
	body := doRequest(t, app, "")
	assert.Empty(t, body["user_id"])
	assert.Equal(t, apphttp.SystemUser, body["user_name"])
}

func TestIdentityMiddleware_TokenInvalido_UsaSistema(t *testing.T) {
	app := buildTestApp()
	body := doRequest(t, app, "Bearer token.invalido.aqui")
	assert.Empty(t, body["user_id"])
	assert.Equal(t, apphttp.SystemUser, body["user_name"])
}

func TestIdentityMiddleware_TokenSinNombre_UsaSistema(t *testing.T) {
	app := buildTestApp()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "", "cajero", testIssuer, testExpMin)
	require.NoError(t, err)

	body := doRequest(t, app, "Bearer "+tok)
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, apphttp.SystemUser, body["user_name"])
}

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "María", "cajero", testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, name, role, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, userID)
	assert.Equal(t, "María", name)
	assert.Equal(t, "cajero", role)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "María", "cajero", testIssuer, -1)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "María", "cajero", testIssuer, testExpMin)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}
