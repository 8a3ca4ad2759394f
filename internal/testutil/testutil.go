// Package testutil holds the shared fixtures for handler tests: a throwaway
// in-memory database wired into the global handle, fakes for the media host
// and the mailer, and a few request helpers.
package testutil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"scholarship-backend/internal/auth"
	"scholarship-backend/internal/config"
	"scholarship-backend/internal/database"
	"scholarship-backend/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config returns a config suitable for tests. Nothing external is reachable.
func Config() *config.Config {
	return &config.Config{
		HTTPPort:        "0",
		Env:             "development",
		JWTSecret:       "test-secret-test-secret-test-secret!",
		JWTExpiresIn:    time.Hour,
		CORSOrigins:     "http://localhost:3000",
		SuperAdminEmail: "superadmin@example.com",
	}
}

// SetupDB points the global database handle at a fresh in-memory sqlite
// database, migrated and private to the calling test.
func SetupDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	// The shared-cache DB lives as long as one connection is open.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("test db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	database.DB = db
}

// CreateUser persists a user with a real bcrypt hash and returns it.
func CreateUser(t *testing.T, name, email, password string, role models.Role) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := database.DB.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

// Token issues a session token for user against the test config.
func Token(t *testing.T, cfg *config.Config, user *models.User) string {
	t.Helper()

	token, err := auth.GenerateToken(cfg.JWTSecret, cfg.JWTExpiresIn, user)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

// ParseBody decodes a JSON response body into a generic map.
func ParseBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("decode response body %q: %v", raw, err)
	}
	return body
}

// FakeMedia records upload/delete calls and can be told to fail.
type FakeMedia struct {
	UploadErr error
	DeleteErr error

	NextRef models.MediaRef

	Uploads []string // folders uploaded to
	Deletes []string // public IDs deleted
}

func (f *FakeMedia) Upload(_ context.Context, _ *multipart.FileHeader, folder string) (models.MediaRef, error) {
	if f.UploadErr != nil {
		return models.MediaRef{}, f.UploadErr
	}
	f.Uploads = append(f.Uploads, folder)
	ref := f.NextRef
	if ref.Empty() {
		ref = models.MediaRef{
			URL:          "https://media.example.com/fake.jpg",
			PublicID:     fmt.Sprintf("fake-%d", len(f.Uploads)),
			ResourceType: "image",
		}
	}
	return ref, nil
}

func (f *FakeMedia) Delete(_ context.Context, publicID, _ string) error {
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.Deletes = append(f.Deletes, publicID)
	return nil
}

// SentMail is one message captured by FakeSender.
type SentMail struct {
	From    string
	ReplyTo string
	Subject string
	Body    string
}

type FakeSender struct {
	Err  error
	Sent []SentMail
}

func (f *FakeSender) Send(from, replyTo, subject, body string) error {
	if f.Err != nil {
		return f.Err
	}
	f.Sent = append(f.Sent, SentMail{From: from, ReplyTo: replyTo, Subject: subject, Body: body})
	return nil
}

// ErrFailed is handy for forcing fake failures.
var ErrFailed = errors.New("forced failure")
