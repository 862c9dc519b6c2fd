package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/herbie65/Tesland2026-sub004/internal/interfaces/http"
	pkgjwt "github.com/herbie65/Tesland2026-sub004/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "tesland-werkplaats-test"
	testExpMin    = 60
)

// buildTestApp wires a minimal Fiber app with one protected route that echoes
// what the middleware put in locals.
func buildTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"user_id":    apphttp.GetUserID(c),
				"role":       apphttp.GetRole(c),
				"privileged": apphttp.IsPrivileged(c),
			})
		},
	)
	return app
}

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

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

func TestAuthMiddleware_ValidTokenExposesClaims(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, tokenForRole(t, "magazijn"))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, "magazijn", body["role"])
	assert.Equal(t, false, body["privileged"])
}

func TestAuthMiddleware_MissingOrMalformedToken(t *testing.T) {
	app := buildTestApp()

	for name, header := range map[string]string{
		"no header":    "",
		"no scheme":    "some-token",
		"wrong scheme": "Basic dXNlcjpwdw==",
		"empty token":  "Bearer ",
		"garbage":      "Bearer not.a.jwt",
	} {
		t.Run(name, func(t *testing.T) {
			resp := doRequest(t, app, header)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestAuthMiddleware_WrongSecretRejected(t *testing.T) {
	app := buildTestApp()
	tok, err := pkgjwt.Generate("another-secret", testUserID, "admin", testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Only planners and admins may override the schedule gate.
func TestIsPrivileged_ByRole(t *testing.T) {
	app := buildTestApp()
	for role, want := range map[string]bool{
		"planner":  true,
		"admin":    true,
		"monteur":  false,
		"magazijn": false,
	} {
		resp := doRequest(t, app, tokenForRole(t, role))
		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		resp.Body.Close()
		assert.Equal(t, want, body["privileged"], "role %s", role)
	}
}
