package auth

import (
	"testing"
	"time"

	"scholarship-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret-test-secret-test-secret!"

func TestTokenRoundTrip(t *testing.T) {
	user := &models.User{ID: 42, Role: models.RoleAdmin}

	token, err := GenerateToken(testSecret, time.Hour, user)
	assert.NoError(t, err)

	claims, err := ParseToken(testSecret, token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestExpiredTokenRejected(t *testing.T) {
	user := &models.User{ID: 1, Role: models.RoleUser}

	token, err := GenerateToken(testSecret, -time.Minute, user)
	assert.NoError(t, err)

	_, err = ParseToken(testSecret, token)
	assert.Error(t, err)
}

func TestTamperedTokenRejected(t *testing.T) {
	user := &models.User{ID: 1, Role: models.RoleUser}

	token, err := GenerateToken(testSecret, time.Hour, user)
	assert.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = ParseToken(testSecret, tampered)
	assert.Error(t, err)
}

func TestWrongSecretRejected(t *testing.T) {
	user := &models.User{ID: 1, Role: models.RoleUser}

	token, err := GenerateToken(testSecret, time.Hour, user)
	assert.NoError(t, err)

	_, err = ParseToken("another-secret-another-secret-1234", token)
	assert.Error(t, err)
}
