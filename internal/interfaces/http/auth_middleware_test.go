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

	"github.com/tu-usuario/retail-pos/internal/domain/access"
	apphttp "github.com/tu-usuario/retail-pos/internal/interfaces/http"
	pkgjwt "github.com/tu-usuario/retail-pos/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "retail-pos-test"
	testExpMin    = 60
)

// approvedIdentity identidad con acceso completo, para mutar por caso.
func approvedIdentity(role string) pkgjwt.Identity {
	return pkgjwt.Identity{
		UserID: testUserID,
		Role:   role,
		Status: "APPROVED",
		Active: true,
	}
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar locals
//   - RequireRoles para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(allowedRoles ...access.Role) *fiber.App {
	app := fiber.New(fiber.Config{
		// Silenciar errores internos en los tests
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	guard := apphttp.RequireAccess(access.Policy{})
	if len(allowedRoles) > 0 {
		guard = apphttp.RequireRoles(allowedRoles...)
	}
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		guard,
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":      true,
				"user_id": apphttp.GetUserID(c),
			})
		},
	)
	return app
}

// tokenFor genera un JWT firmado con la identidad indicada.
func tokenFor(t *testing.T, id pkgjwt.Identity) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, id, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// readBody lee el cuerpo completo como string.
func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware — autenticación
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "") // sin header
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "MISSING_TOKEN")
}

func TestAuthMiddleware_EsquemaInvalido_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "Basic dXNlcjpwYXNz")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "INVALID_TOKEN")
}

func TestAuthMiddleware_TokenMalformado_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "INVALID_TOKEN")
}

func TestAuthMiddleware_TokenExpirado_Retorna401(t *testing.T) {
	app := buildTestApp()
	tok, err := pkgjwt.Generate(testJWTSecret, approvedIdentity("ADMIN"), testIssuer, -1)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"token expirado debe retornar 401")
}

func TestAuthMiddleware_ExtractaUserID(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, tokenFor(t, approvedIdentity("STAFF")))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"], "la respuesta debe incluir ok:true")
	assert.Equal(t, testUserID, body["user_id"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireAccess — estados de cuenta
// ──────────────────────────────────────────────────────────────────────────────

// Cada estado no aprobado se deniega con su propio código, para que el cliente
// sepa qué paso le falta.
func TestRequireAccess_EstadosNoAprobados_Retornan403(t *testing.T) {
	cases := []struct {
		name   string
		status string
		code   string
	}{
		{"pendiente de verificar email", "PENDING", "EMAIL_NOT_VERIFIED"},
		{"verificado sin aprobar", "VERIFIED", "PENDING_APPROVAL"},
		{"rechazado", "REJECTED", "ACCOUNT_REJECTED"},
		{"suspendido", "SUSPENDED", "ACCOUNT_SUSPENDED"},
		{"estado desconocido", "ARCHIVED", "PENDING_APPROVAL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := buildTestApp()
			id := approvedIdentity("STAFF")
			id.Status = tc.status

			resp := doRequest(t, app, tokenFor(t, id))
			defer resp.Body.Close()

			assert.Equal(t, http.StatusForbidden, resp.StatusCode)
			assert.Contains(t, readBody(t, resp), tc.code)
		})
	}
}

// La cuenta desactivada se deniega antes que cualquier otra verificación:
// aun con estado PENDING la respuesta debe ser ACCOUNT_INACTIVE.
func TestRequireAccess_InactivoPrecedeAlEstado(t *testing.T) {
	app := buildTestApp()
	id := approvedIdentity("ADMIN")
	id.Status = "PENDING"
	id.Active = false

	resp := doRequest(t, app, tokenFor(t, id))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "ACCOUNT_INACTIVE")
}

func TestRequireAccess_AprobadoYActivo_Pasa(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, tokenFor(t, approvedIdentity("STAFF")))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"una cuenta APPROVED y activa debe acceder a rutas sin restricción de rol")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRoles — RBAC
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRoles_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp(access.RoleAdmin)
	resp := doRequest(t, app, tokenFor(t, approvedIdentity("ADMIN")))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"ADMIN debe poder acceder a ruta restringida a ADMIN")
}

func TestRequireRoles_ManagerAccedeRutaAdminOManager(t *testing.T) {
	app := buildTestApp(access.RoleAdmin, access.RoleManager)
	resp := doRequest(t, app, tokenFor(t, approvedIdentity("MANAGER")))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"MANAGER debe poder acceder a ruta que permite ADMIN o MANAGER")
}

func TestRequireRoles_StaffBloqueadoEnRutaAdmin(t *testing.T) {
	app := buildTestApp(access.RoleAdmin)
	resp := doRequest(t, app, tokenFor(t, approvedIdentity("STAFF")))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"STAFF no debe poder acceder a ruta restringida a ADMIN")
	assert.Contains(t, readBody(t, resp), "FORBIDDEN_ROLE")
}

// Los tokens emitidos antes del renombre de roles traen EMPLOYEE; el middleware
// los normaliza a STAFF y conservan el acceso de ese rol.
func TestRequireRoles_RolLegadoEmployeeEquivaleAStaff(t *testing.T) {
	app := buildTestApp(access.RoleStaff)
	resp := doRequest(t, app, tokenFor(t, approvedIdentity("EMPLOYEE")))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"un token legado con rol EMPLOYEE debe tratarse como STAFF")
}

func TestRequireRoles_RolDesconocidoBloqueado(t *testing.T) {
	app := buildTestApp(access.RoleAdmin, access.RoleManager, access.RoleStaff)
	resp := doRequest(t, app, tokenFor(t, approvedIdentity("SUPERUSER")))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"un rol fuera del enum nunca debe pasar el control de roles")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests JWT pkg — integridad del generate/parse
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse(t *testing.T) {
	id := approvedIdentity("MANAGER")
	tok, err := pkgjwt.Generate(testJWTSecret, id, testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	parsed, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUserID, parsed.UserID)
	assert.Equal(t, "MANAGER", parsed.Role)
	assert.Equal(t, "APPROVED", parsed.Status)
	assert.True(t, parsed.Active)
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, approvedIdentity("ADMIN"), testIssuer, testExpMin)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}
