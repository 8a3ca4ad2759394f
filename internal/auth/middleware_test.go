package auth_test

import (
	"net/http"
	"testing"

	"scholarship-backend/internal/auth"
	"scholarship-backend/internal/models"
	"scholarship-backend/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// miniApp wires Protect + RequireRole around a trivial handler so the
// middleware chain can be exercised in isolation.
func miniApp(roles ...models.Role) *fiber.App {
	cfg := testutil.Config()
	app := fiber.New()
	handlers := []fiber.Handler{auth.Protect(cfg)}
	if len(roles) > 0 {
		handlers = append(handlers, auth.RequireRole(roles...))
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user": auth.CurrentUser(c).Email})
	})
	app.Get("/guarded", handlers...)
	return app
}

func TestProtectAttachesIdentity(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.Config()
	user := testutil.CreateUser(t, "Ada", "ada@example.com", "secret123", models.RoleUser)
	app := miniApp()

	req, err := http.NewRequest("GET", "/guarded", nil)
	require.NoError(t, err)
	testutil.Authorize(req, testutil.Token(t, cfg, user))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := testutil.ParseBody(t, resp)
	assert.Equal(t, "ada@example.com", body["user"])
}

func TestProtectPrefersCookieOverHeader(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.Config()
	user := testutil.CreateUser(t, "Ada", "ada@example.com", "secret123", models.RoleUser)
	app := miniApp()

	req, err := http.NewRequest("GET", "/guarded", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: testutil.Token(t, cfg, user)})
	testutil.Authorize(req, "garbage")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRoleAllows(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.Config()
	admin := testutil.CreateUser(t, "Root", "root@example.com", "secret123", models.RoleAdmin)
	app := miniApp(models.RoleAdmin)

	req, err := http.NewRequest("GET", "/guarded", nil)
	require.NoError(t, err)
	testutil.Authorize(req, testutil.Token(t, cfg, admin))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRoleRejects(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.Config()
	user := testutil.CreateUser(t, "Ada", "ada@example.com", "secret123", models.RoleUser)
	app := miniApp(models.RoleAdmin)

	req, err := http.NewRequest("GET", "/guarded", nil)
	require.NoError(t, err)
	testutil.Authorize(req, testutil.Token(t, cfg, user))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestProtectRejectsGarbageToken(t *testing.T) {
	testutil.SetupDB(t)
	app := miniApp()

	req, err := http.NewRequest("GET", "/guarded", nil)
	require.NoError(t, err)
	testutil.Authorize(req, "not-a-token")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
