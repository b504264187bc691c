package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/avkurov/product-catalog/internal/hash"
	authmw "github.com/avkurov/product-catalog/internal/middleware/auth"
	"github.com/avkurov/product-catalog/internal/models"
)

type testEnv struct {
	T    *testing.T
	E    *echo.Echo
	DB   *gorm.DB
	A    *AuthHandler
	P    *ProductHandler
	Gate *authmw.Gate
}

func initTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Product{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

func newTestEnv(t *testing.T) *testEnv {
	db := initTestDB(t)
	secret := []byte("test_jwt_secret")

	return &testEnv{
		T:    t,
		E:    echo.New(),
		DB:   db,
		A:    &AuthHandler{DB: db, JWTSecret: secret},
		P:    &ProductHandler{DB: db},
		Gate: &authmw.Gate{DB: db, JWTSecret: secret},
	}
}

func (env *testEnv) doJSONRequest(method, target string, payload any) (*httptest.ResponseRecorder, *http.Request, echo.Context) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(env.T, err)
		body = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, target, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, req, c
}

func (env *testEnv) createUser(email, password string) models.User {
	pwHash, err := hash.HashPassword(password)
	require.NoError(env.T, err)

	user := models.User{Email: email, PasswordHash: pwHash, Name: "Test User"}
	require.NoError(env.T, env.DB.Create(&user).Error)
	return user
}

func (env *testEnv) createProduct() models.Product {
	prod := models.Product{
		Title:       "test_title",
		Description: "test_description",
		Price:       9.99,
		ImageURL:    "https://example.com/test.jpg",
	}
	require.NoError(env.T, env.DB.Create(&prod).Error)
	return prod
}

func requireHTTPError(t *testing.T, err error, code int) *echo.HTTPError {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError, got %v", err)
	require.Equal(t, code, he.Code)
	return he
}
