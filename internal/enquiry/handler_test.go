package enquiry_test

import (
	"net/http"
	"testing"

	"scholarship-backend/internal/router"
	"scholarship-backend/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, sender *testutil.FakeSender) *fiber.App {
	testutil.SetupDB(t)
	return router.New(testutil.Config(), &testutil.FakeMedia{}, sender)
}

func TestSendEnquiry(t *testing.T) {
	sender := &testutil.FakeSender{}
	app := setup(t, sender)

	req := testutil.JSONRequest(t, "POST", "/api/v1/enquiry", fiber.Map{
		"name":        "Ada",
		"email":       "ada@example.com",
		"message":     "Is the deadline extended?",
		"scholarship": "DAAD",
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.Len(t, sender.Sent, 1)
	sent := sender.Sent[0]
	assert.Equal(t, "Enquiry about DAAD", sent.Subject)
	assert.Equal(t, "ada@example.com", sent.ReplyTo)
	assert.Contains(t, sent.Body, "Is the deadline extended?")
}

func TestSendEnquiryMissingFields(t *testing.T) {
	sender := &testutil.FakeSender{}
	app := setup(t, sender)

	req := testutil.JSONRequest(t, "POST", "/api/v1/enquiry", fiber.Map{
		"name":  "Ada",
		"email": "ada@example.com",
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, sender.Sent)
}

func TestSendEnquiryTransportFailure(t *testing.T) {
	sender := &testutil.FakeSender{Err: testutil.ErrFailed}
	app := setup(t, sender)

	req := testutil.JSONRequest(t, "POST", "/api/v1/enquiry", fiber.Map{
		"name":        "Ada",
		"email":       "ada@example.com",
		"message":     "Hello",
		"scholarship": "DAAD",
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body := testutil.ParseBody(t, resp)
	assert.Equal(t, "Failed to send email", body["message"])
}
