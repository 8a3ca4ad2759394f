package clients_test

import (
	"fmt"
	"net/http"
	"testing"

	"scholarship-backend/internal/database"
	"scholarship-backend/internal/models"
	"scholarship-backend/internal/router"
	"scholarship-backend/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) *fiber.App {
	testutil.SetupDB(t)
	return router.New(testutil.Config(), &testutil.FakeMedia{}, &testutil.FakeSender{})
}

func TestListRequiresAdmin(t *testing.T) {
	app := setup(t)
	cfg := testutil.Config()
	user := testutil.CreateUser(t, "Ada", "ada@example.com", "pw123456", models.RoleUser)

	req, err := http.NewRequest("GET", "/api/clients/", nil)
	require.NoError(t, err)
	testutil.Authorize(req, testutil.Token(t, cfg, user))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestListExcludesPasswordHash(t *testing.T) {
	app := setup(t)
	cfg := testutil.Config()
	admin := testutil.CreateUser(t, "Root", "root@example.com", "pw123456", models.RoleAdmin)
	testutil.CreateUser(t, "Ada", "ada@example.com", "pw123456", models.RoleUser)

	req, err := http.NewRequest("GET", "/api/clients/", nil)
	require.NoError(t, err)
	testutil.Authorize(req, testutil.Token(t, cfg, admin))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := testutil.ParseBody(t, resp)
	assert.Equal(t, float64(2), body["count"])
	for _, d := range body["data"].([]any) {
		entry := d.(map[string]any)
		assert.NotContains(t, entry, "password_hash")
		assert.NotContains(t, entry, "PasswordHash")
	}
}

func TestAdminChangesRole(t *testing.T) {
	app := setup(t)
	cfg := testutil.Config()
	admin := testutil.CreateUser(t, "Root", "root@example.com", "pw123456", models.RoleAdmin)
	user := testutil.CreateUser(t, "Ada", "ada@example.com", "pw123456", models.RoleUser)

	req := testutil.JSONRequest(t, "PUT", fmt.Sprintf("/api/clients/%d", user.ID), fiber.Map{
		"role": "admin",
	})
	testutil.Authorize(req, testutil.Token(t, cfg, admin))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var saved models.User
	require.NoError(t, database.DB.First(&saved, user.ID).Error)
	assert.Equal(t, models.RoleAdmin, saved.Role)
}

func TestUpdateRejectsUnknownRole(t *testing.T) {
	app := setup(t)
	cfg := testutil.Config()
	admin := testutil.CreateUser(t, "Root", "root@example.com", "pw123456", models.RoleAdmin)
	user := testutil.CreateUser(t, "Ada", "ada@example.com", "pw123456", models.RoleUser)

	req := testutil.JSONRequest(t, "PUT", fmt.Sprintf("/api/clients/%d", user.ID), fiber.Map{
		"role": "superuser",
	})
	testutil.Authorize(req, testutil.Token(t, cfg, admin))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// The super admin account must stay untouched, even for admins.
func TestSuperAdminIsImmutable(t *testing.T) {
	app := setup(t)
	cfg := testutil.Config()
	admin := testutil.CreateUser(t, "Root", "root@example.com", "pw123456", models.RoleAdmin)
	super := testutil.CreateUser(t, "Owner", cfg.SuperAdminEmail, "pw123456", models.RoleAdmin)

	req := testutil.JSONRequest(t, "PUT", fmt.Sprintf("/api/clients/%d", super.ID), fiber.Map{
		"name": "Hijacked",
		"role": "user",
	})
	testutil.Authorize(req, testutil.Token(t, cfg, admin))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var saved models.User
	require.NoError(t, database.DB.First(&saved, super.ID).Error)
	assert.Equal(t, "Owner", saved.Name)
	assert.Equal(t, models.RoleAdmin, saved.Role)
}

func TestSuperAdminCannotBeDeleted(t *testing.T) {
	app := setup(t)
	cfg := testutil.Config()
	admin := testutil.CreateUser(t, "Root", "root@example.com", "pw123456", models.RoleAdmin)
	super := testutil.CreateUser(t, "Owner", cfg.SuperAdminEmail, "pw123456", models.RoleAdmin)

	req, err := http.NewRequest("DELETE", fmt.Sprintf("/api/clients/%d", super.ID), nil)
	require.NoError(t, err)
	testutil.Authorize(req, testutil.Token(t, cfg, admin))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var count int64
	database.DB.Model(&models.User{}).Where("email = ?", cfg.SuperAdminEmail).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestDeleteClient(t *testing.T) {
	app := setup(t)
	cfg := testutil.Config()
	admin := testutil.CreateUser(t, "Root", "root@example.com", "pw123456", models.RoleAdmin)
	user := testutil.CreateUser(t, "Ada", "ada@example.com", "pw123456", models.RoleUser)

	req, err := http.NewRequest("DELETE", fmt.Sprintf("/api/clients/%d", user.ID), nil)
	require.NoError(t, err)
	testutil.Authorize(req, testutil.Token(t, cfg, admin))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	database.DB.Model(&models.User{}).Where("id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestDeleteMissingClient(t *testing.T) {
	app := setup(t)
	cfg := testutil.Config()
	admin := testutil.CreateUser(t, "Root", "root@example.com", "pw123456", models.RoleAdmin)

	req, err := http.NewRequest("DELETE", "/api/clients/9999", nil)
	require.NoError(t, err)
	testutil.Authorize(req, testutil.Token(t, cfg, admin))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
