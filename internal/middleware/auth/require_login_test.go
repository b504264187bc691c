package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/avkurov/product-catalog/internal/models"
	"github.com/avkurov/product-catalog/internal/tokens"
)

var testSecret = []byte("test_jwt_secret")

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

func doRequest(t *testing.T, gate *Gate, authHeader string) (*httptest.ResponseRecorder, echo.Context, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := gate.RequireLogin(next)(c)
	return rec, c, err
}

func requireHTTPError(t *testing.T, err error, code int) *echo.HTTPError {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError, got %v", err)
	require.Equal(t, code, he.Code)
	return he
}

func TestRequireLoginNoHeader(t *testing.T) {
	gate := &Gate{DB: initTestDB(t), JWTSecret: testSecret}

	_, _, err := doRequest(t, gate, "")
	requireHTTPError(t, err, http.StatusUnauthorized)
}

func TestRequireLoginMalformedHeader(t *testing.T) {
	gate := &Gate{DB: initTestDB(t), JWTSecret: testSecret}

	for _, header := range []string{"Bearer", "Bearer ", "Token abc", "abc"} {
		_, _, err := doRequest(t, gate, header)
		requireHTTPError(t, err, http.StatusUnauthorized)
	}
}

func TestRequireLoginInvalidToken(t *testing.T) {
	gate := &Gate{DB: initTestDB(t), JWTSecret: testSecret}

	_, _, err := doRequest(t, gate, "Bearer not.a.jwt")
	he := requireHTTPError(t, err, http.StatusUnauthorized)
	require.Equal(t, "invalid token", he.Message)
}

func TestRequireLoginUnknownUser(t *testing.T) {
	gate := &Gate{DB: initTestDB(t), JWTSecret: testSecret}

	token, err := tokens.Issue(12345, testSecret)
	require.NoError(t, err)

	_, _, reqErr := doRequest(t, gate, "Bearer "+token)
	he := requireHTTPError(t, reqErr, http.StatusUnauthorized)
	require.Equal(t, "unknown user", he.Message)
}

func TestRequireLoginValid(t *testing.T) {
	db := initTestDB(t)
	gate := &Gate{DB: db, JWTSecret: testSecret}

	user := models.User{Email: "user@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)

	token, err := tokens.Issue(user.ID, testSecret)
	require.NoError(t, err)

	rec, c, reqErr := doRequest(t, gate, "Bearer "+token)
	require.NoError(t, reqErr)
	require.Equal(t, http.StatusOK, rec.Code)

	attached := CurrentUser(c)
	require.NotNil(t, attached)
	require.Equal(t, user.ID, attached.ID)
	require.Equal(t, user.Email, attached.Email)
}
