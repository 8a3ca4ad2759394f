package visa_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"scholarship-backend/internal/database"
	"scholarship-backend/internal/models"
	"scholarship-backend/internal/router"
	"scholarship-backend/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, store *testutil.FakeMedia) *fiber.App {
	testutil.SetupDB(t)
	return router.New(testutil.Config(), store, &testutil.FakeSender{})
}

func seedVisa(t *testing.T, owner *models.User, country, title string, createdAt time.Time) *models.Visa {
	t.Helper()
	item := &models.Visa{
		Country:     country,
		Title:       title,
		CreatedByID: owner.ID,
		CreatedAt:   createdAt,
	}
	require.NoError(t, database.DB.Create(item).Error)
	return item
}

func TestListFilterByCountry(t *testing.T) {
	app := setup(t, &testutil.FakeMedia{})
	owner := testutil.CreateUser(t, "Ada", "ada@example.com", "pw123456", models.RoleUser)

	now := time.Now()
	seedVisa(t, owner, "Germany", "Student visa", now)
	seedVisa(t, owner, "Canada", "Work visa", now)

	req, err := http.NewRequest("GET", "/api/visas?country=Canada", nil)
	require.NoError(t, err)
	resp, err := app.Test(req)
	require.NoError(t, err)

	body := testutil.ParseBody(t, resp)
	data := body["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "Work visa", data[0].(map[string]any)["title"])
	assert.Equal(t, float64(1), body["total"])
}

func TestCreateNormalizesRequirements(t *testing.T) {
	app := setup(t, &testutil.FakeMedia{})
	cfg := testutil.Config()
	user := testutil.CreateUser(t, "Ada", "ada@example.com", "pw123456", models.RoleUser)

	req := testutil.MultipartRequest(t, "POST", "/api/visas", map[string]string{
		"country":      "Germany",
		"title":        "Student visa",
		"requirements": "passport, admission letter, proof of funds",
	}, "", "", "", nil)
	testutil.Authorize(req, testutil.Token(t, cfg, user))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var saved models.Visa
	require.NoError(t, database.DB.First(&saved, "title = ?", "Student visa").Error)
	assert.Equal(t, models.StringList{"passport", "admission letter", "proof of funds"}, saved.Requirements)
}

func TestCreateMissingFields(t *testing.T) {
	app := setup(t, &testutil.FakeMedia{})
	cfg := testutil.Config()
	user := testutil.CreateUser(t, "Ada", "ada@example.com", "pw123456", models.RoleUser)

	req := testutil.JSONRequest(t, "POST", "/api/visas", fiber.Map{"title": "No country"})
	testutil.Authorize(req, testutil.Token(t, cfg, user))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// Visa updates keep the original creator, unlike scholarships.
func TestUpdatePreservesCreator(t *testing.T) {
	app := setup(t, &testutil.FakeMedia{})
	cfg := testutil.Config()
	owner := testutil.CreateUser(t, "Ada", "ada@example.com", "pw123456", models.RoleUser)
	editor := testutil.CreateUser(t, "Bob", "bob@example.com", "pw123456", models.RoleUser)

	item := seedVisa(t, owner, "Germany", "Student visa", time.Now())

	req := testutil.JSONRequest(t, "PUT", fmt.Sprintf("/api/visas/%d", item.ID), fiber.Map{
		"fee": "EUR 75",
	})
	testutil.Authorize(req, testutil.Token(t, cfg, editor))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var saved models.Visa
	require.NoError(t, database.DB.First(&saved, item.ID).Error)
	assert.Equal(t, "EUR 75", saved.Fee)
	assert.Equal(t, owner.ID, saved.CreatedByID)
}

func TestDeleteCascadesMediaDelete(t *testing.T) {
	store := &testutil.FakeMedia{}
	app := setup(t, store)
	cfg := testutil.Config()
	admin := testutil.CreateUser(t, "Root", "root@example.com", "pw123456", models.RoleAdmin)

	item := seedVisa(t, admin, "Germany", "Doomed", time.Now())
	item.Image = models.MediaRef{URL: "https://media.example.com/v.jpg", PublicID: "visas/v", ResourceType: "image"}
	require.NoError(t, database.DB.Save(item).Error)

	req, err := http.NewRequest("DELETE", fmt.Sprintf("/api/visas/%d", item.ID), nil)
	require.NoError(t, err)
	testutil.Authorize(req, testutil.Token(t, cfg, admin))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"visas/v"}, store.Deletes)
}

func TestDeleteRequiresAdmin(t *testing.T) {
	app := setup(t, &testutil.FakeMedia{})
	cfg := testutil.Config()
	user := testutil.CreateUser(t, "Ada", "ada@example.com", "pw123456", models.RoleUser)
	item := seedVisa(t, user, "Germany", "Guarded", time.Now())

	req, err := http.NewRequest("DELETE", fmt.Sprintf("/api/visas/%d", item.ID), nil)
	require.NoError(t, err)
	testutil.Authorize(req, testutil.Token(t, cfg, user))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestGetNotFound(t *testing.T) {
	app := setup(t, &testutil.FakeMedia{})

	req, err := http.NewRequest("GET", "/api/visas/1234", nil)
	require.NoError(t, err)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
