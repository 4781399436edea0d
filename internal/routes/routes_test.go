package routes

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bewithdhanu/medicine-tracker/internal/config"
	"github.com/bewithdhanu/medicine-tracker/internal/dto"
	"github.com/bewithdhanu/medicine-tracker/internal/handlers"
	"github.com/bewithdhanu/medicine-tracker/internal/ratelimit"
	"github.com/bewithdhanu/medicine-tracker/internal/services"
	"github.com/bewithdhanu/medicine-tracker/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testAPIKey = "family-key-2026"

type testEnv struct {
	app  *fiber.App
	mock sqlmock.Sqlmock
	cfg  *config.Config
}

func newTestEnv(t *testing.T, env string) *testEnv {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{
		Environment:   env,
		APIKey:        testAPIKey,
		JWTSecret:     "routes-secret",
		JWTAlgorithm:  "HS256",
		UploadBackend: "local",
		UploadDir:     t.TempDir(),
		CORSOrigins:   "http://localhost:3000",
	}
	authSvc, err := services.NewAuthService(services.AuthConfig{
		APIKey:            cfg.APIKey,
		JWTSecret:         cfg.JWTSecret,
		JWTAlgorithm:      cfg.JWTAlgorithm,
		TokenLifetime:     30 * time.Minute,
		AdminUsername:     "admin",
		AdminPasswordHash: string(hash),
	})
	require.NoError(t, err)

	store := ratelimit.NewMemoryStore()
	newLimiter := func(name string, limit int) *ratelimit.Limiter {
		l, err := ratelimit.New(name, limit, time.Minute, store)
		require.NoError(t, err)
		return l
	}

	uploads := handlers.NewUploader(storage.NewLocalStorage(cfg.UploadDir))
	app := fiber.New(fiber.Config{ErrorHandler: handlers.RespondError})
	Setup(app, cfg, authSvc, Handlers{
		Auth:     handlers.NewAuthHandler(authSvc),
		Health:   handlers.NewHealthHandler(func() error { return nil }),
		User:     handlers.NewUserHandler(services.NewUserService(db), uploads),
		Medicine: handlers.NewMedicineHandler(services.NewMedicineService(db), uploads),
		Reminder: handlers.NewReminderHandler(services.NewReminderService(db), services.NewMedicineLogService(db)),
		Insulin:  handlers.NewInsulinHandler(services.NewInsulinService(db)),
		Bookmark: handlers.NewBookmarkHandler(services.NewBookmarkService(db)),
	}, Limiters{
		Default: newLimiter("default", 60),
		Info:    newLimiter("info", 10),
		Health:  newLimiter("health", 20),
	})

	return &testEnv{app: app, mock: mock, cfg: cfg}
}

func (e *testEnv) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func withKey(req *http.Request) *http.Request {
	req.Header.Set("X-API-Key", testAPIKey)
	return req
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestPublicRoutes(t *testing.T) {
	env := newTestEnv(t, config.EnvDevelopment)

	resp := env.do(t, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, 200, resp.StatusCode)
	var root dto.RootResponse
	decode(t, resp, &root)
	assert.Equal(t, "running", root.Status)

	resp = env.do(t, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, 200, resp.StatusCode)

	resp = env.do(t, httptest.NewRequest("GET", "/api/auth/api-key-info", nil))
	assert.Equal(t, 200, resp.StatusCode)
	var info dto.APIKeyInfoResponse
	decode(t, resp, &info)
	assert.Equal(t, "fam...026", info.APIKey)

	resp = env.do(t, httptest.NewRequest("GET", "/docs", nil))
	assert.Equal(t, 200, resp.StatusCode)
}

func TestDocsHiddenInProduction(t *testing.T) {
	env := newTestEnv(t, config.EnvProduction)

	resp := env.do(t, httptest.NewRequest("GET", "/docs", nil))
	assert.Equal(t, 404, resp.StatusCode)
}

func TestProtectedRoutesRequireCredentials(t *testing.T) {
	env := newTestEnv(t, config.EnvDevelopment)

	for _, target := range []string{
		"/api/users",
		"/api/medicines",
		"/api/reminders",
		"/api/reminders/logs/missed",
		"/api/insulin/suggest-dosage?glucose_reading=100",
		"/api/bookmarks",
	} {
		resp := env.do(t, httptest.NewRequest("GET", target, nil))
		assert.Equal(t, 401, resp.StatusCode, target)
		assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"), target)
	}
	assert.NoError(t, env.mock.ExpectationsWereMet())
}

func TestSuggestDosage(t *testing.T) {
	env := newTestEnv(t, config.EnvDevelopment)

	resp := env.do(t, withKey(httptest.NewRequest("GET", "/api/insulin/suggest-dosage?glucose_reading=150", nil)))
	require.Equal(t, 200, resp.StatusCode)
	var s dto.DosageSuggestion
	decode(t, resp, &s)
	assert.Equal(t, 150.0, s.GlucoseReading)
	assert.Equal(t, 4.0, s.SuggestedDosage)
	assert.Equal(t, "units", s.Unit)

	resp = env.do(t, withKey(httptest.NewRequest("GET", "/api/insulin/suggest-dosage?glucose_reading=high", nil)))
	assert.Equal(t, 400, resp.StatusCode)

	resp = env.do(t, withKey(httptest.NewRequest("GET", "/api/insulin/suggest-dosage", nil)))
	assert.Equal(t, 400, resp.StatusCode)
}

func TestSuggestDosage_NonFiniteReading(t *testing.T) {
	env := newTestEnv(t, config.EnvDevelopment)

	for _, raw := range []string{"NaN", "Inf", "-Inf", "1e400"} {
		resp := env.do(t, withKey(httptest.NewRequest("GET", "/api/insulin/suggest-dosage?glucose_reading="+raw, nil)))
		assert.Equal(t, 400, resp.StatusCode, raw)
		var e dto.ErrorResponse
		decode(t, resp, &e)
		assert.Equal(t, "invalid glucose_reading", e.Message, raw)
	}

	resp := env.do(t, withKey(httptest.NewRequest("GET", "/api/insulin/suggest-dosage?glucose_reading=-5", nil)))
	require.Equal(t, 200, resp.StatusCode)
	var s dto.DosageSuggestion
	decode(t, resp, &s)
	assert.Equal(t, 0.0, s.SuggestedDosage)
}

func TestLoginThenBearerAccess(t *testing.T) {
	env := newTestEnv(t, config.EnvDevelopment)

	body := strings.NewReader(`{"username":"admin","password":"s3cret"}`)
	req := httptest.NewRequest("POST", "/api/auth/login", body)
	req.Header.Set("Content-Type", "application/json")
	resp := env.do(t, req)
	require.Equal(t, 200, resp.StatusCode)
	var token dto.TokenResponse
	decode(t, resp, &token)
	assert.Equal(t, "bearer", token.TokenType)
	assert.Equal(t, 1800, token.ExpiresIn)

	req = httptest.NewRequest("GET", "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	resp = env.do(t, req)
	require.Equal(t, 200, resp.StatusCode)
	var me dto.MeResponse
	decode(t, resp, &me)
	assert.Equal(t, "admin", me.Subject)

	env.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" ORDER BY id`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Amma").AddRow(2, "Appa"))
	req = httptest.NewRequest("GET", "/api/users", nil)
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	resp = env.do(t, req)
	require.Equal(t, 200, resp.StatusCode)
	var users []map[string]interface{}
	decode(t, resp, &users)
	assert.Len(t, users, 2)
	assert.NoError(t, env.mock.ExpectationsWereMet())
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	env := newTestEnv(t, config.EnvDevelopment)

	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"username":"admin","password":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := env.do(t, req)
	assert.Equal(t, 401, resp.StatusCode)
	var e dto.ErrorResponse
	decode(t, resp, &e)
	assert.Equal(t, "Incorrect username or password", e.Message)
}

func TestMeRejectsAPIKey(t *testing.T) {
	env := newTestEnv(t, config.EnvDevelopment)

	resp := env.do(t, withKey(httptest.NewRequest("GET", "/api/auth/me", nil)))
	assert.Equal(t, 401, resp.StatusCode)
}

func TestUserNotFound(t *testing.T) {
	env := newTestEnv(t, config.EnvDevelopment)

	env.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	resp := env.do(t, withKey(httptest.NewRequest("GET", "/api/users/99", nil)))
	assert.Equal(t, 404, resp.StatusCode)
	var e dto.ErrorResponse
	decode(t, resp, &e)
	assert.Equal(t, "User not found", e.Message)
	assert.NoError(t, env.mock.ExpectationsWereMet())
}

func TestInvalidPathID(t *testing.T) {
	env := newTestEnv(t, config.EnvDevelopment)

	resp := env.do(t, withKey(httptest.NewRequest("GET", "/api/medicines/abc", nil)))
	assert.Equal(t, 400, resp.StatusCode)
}

func TestCreateMedicineForMissingUser(t *testing.T) {
	env := newTestEnv(t, config.EnvDevelopment)

	env.mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "users"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	req := withKey(httptest.NewRequest("POST", "/api/medicines",
		strings.NewReader(`{"user_id":5,"name":"Metformin","type":"tablet"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := env.do(t, req)
	assert.Equal(t, 404, resp.StatusCode)
	assert.NoError(t, env.mock.ExpectationsWereMet())
}

func TestStoreFailureIsHidden(t *testing.T) {
	env := newTestEnv(t, config.EnvDevelopment)

	env.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "bookmarks"`)).
		WillReturnError(errors.New("connection reset by peer"))

	resp := env.do(t, withKey(httptest.NewRequest("GET", "/api/bookmarks", nil)))
	assert.Equal(t, 500, resp.StatusCode)
	var e dto.ErrorResponse
	decode(t, resp, &e)
	assert.Equal(t, "Internal server error", e.Message)
}

func TestInfoRateLimit(t *testing.T) {
	env := newTestEnv(t, config.EnvDevelopment)

	for i := 0; i < 10; i++ {
		resp := env.do(t, httptest.NewRequest("GET", "/", nil))
		require.Equal(t, 200, resp.StatusCode, "request %d", i+1)
	}
	resp := env.do(t, httptest.NewRequest("GET", "/api/auth/api-key-info", nil))
	assert.Equal(t, 429, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))

	// health has its own quota
	resp = env.do(t, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, 200, resp.StatusCode)
}

func TestUploadUserPhoto(t *testing.T) {
	env := newTestEnv(t, config.EnvDevelopment)

	userRow := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Amma")
	}
	env.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).WillReturnRows(userRow())
	env.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).WillReturnRows(userRow())
	env.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "users" SET "photo_url"=$1`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "amma.png")
	require.NoError(t, err)
	_, err = io.WriteString(part, "fake-png")
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := withKey(httptest.NewRequest("POST", "/api/users/1/upload-photo", &buf))
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp := env.do(t, req)
	require.Equal(t, 200, resp.StatusCode)

	var up dto.UploadResponse
	decode(t, resp, &up)
	assert.True(t, strings.HasSuffix(up.Filename, ".png"))
	assert.Equal(t, "/uploads/users/"+up.Filename, up.URL)

	data, err := os.ReadFile(filepath.Join(env.cfg.UploadDir, "users", up.Filename))
	require.NoError(t, err)
	assert.Equal(t, "fake-png", string(data))
	assert.NoError(t, env.mock.ExpectationsWereMet())
}

func TestUploadUserPhoto_RemovesFileWhenUpdateFails(t *testing.T) {
	env := newTestEnv(t, config.EnvDevelopment)

	userRow := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Amma")
	}
	env.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).WillReturnRows(userRow())
	env.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).WillReturnRows(userRow())
	env.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "users" SET "photo_url"=$1`)).
		WillReturnError(errors.New("connection reset by peer"))

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "amma.png")
	require.NoError(t, err)
	_, err = io.WriteString(part, "fake-png")
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := withKey(httptest.NewRequest("POST", "/api/users/1/upload-photo", &buf))
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp := env.do(t, req)
	assert.Equal(t, 500, resp.StatusCode)

	entries, err := os.ReadDir(filepath.Join(env.cfg.UploadDir, "users"))
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.NoError(t, env.mock.ExpectationsWereMet())
}
