package tokens

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test_jwt_secret")

func TestIssueAndParse(t *testing.T) {
	token, err := Issue(42, testSecret)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := Parse(token, testSecret)
	require.NoError(t, err)
	require.Equal(t, uint(42), userID)
}

func TestParseWrongSecret(t *testing.T) {
	token, err := Issue(42, testSecret)
	require.NoError(t, err)

	_, err = Parse(token, []byte("another_secret"))
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse("not.a.jwt", testSecret)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseExpired(t *testing.T) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-8 * 24 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-24 * time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)

	_, err = Parse(raw, testSecret)
	require.ErrorIs(t, err, ErrTokenExpired)
	require.NotErrorIs(t, err, ErrTokenInvalid)
}

func TestParseWrongMethod(t *testing.T) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = Parse(raw, testSecret)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseNonNumericSubject(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "not-a-number",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)

	_, err = Parse(raw, testSecret)
	require.ErrorIs(t, err, ErrTokenInvalid)
}
