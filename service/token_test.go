package service

import (
	"net/http"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestTokenRoundTrip(t *testing.T) {
	ts := NewTokenService(testSecret, DefaultTokenTTL)

	td, err := ts.CreateToken(7, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, td.AccessToken)
	assert.Greater(t, td.AtExpires, time.Now().Unix())

	details, err := ts.VerifyToken(td.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(7), details.UserID)
	assert.Equal(t, "alice", details.Username)
}

func TestVerifyExpiredToken(t *testing.T) {
	ts := NewTokenService(testSecret, DefaultTokenTTL)

	claims := jwt.MapClaims{
		"sub":     "alice",
		"user_id": 7,
		"exp":     time.Now().Add(-time.Minute).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ts.VerifyToken(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	other := NewTokenService("other-secret", DefaultTokenTTL)
	td, err := other.CreateToken(7, "alice")
	require.NoError(t, err)

	ts := NewTokenService(testSecret, DefaultTokenTTL)
	_, err = ts.VerifyToken(td.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyMalformedToken(t *testing.T) {
	ts := NewTokenService(testSecret, DefaultTokenTTL)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := ts.VerifyToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestVerifyRejectsUnsignedToken(t *testing.T) {
	ts := NewTokenService(testSecret, DefaultTokenTTL)

	claims := jwt.MapClaims{
		"sub":     "alice",
		"user_id": 7,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ts.VerifyToken(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsMissingClaims(t *testing.T) {
	ts := NewTokenService(testSecret, DefaultTokenTTL)

	claims := jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ts.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractToken(t *testing.T) {
	ts := NewTokenService(testSecret, DefaultTokenTTL)

	r, _ := http.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, ts.ExtractToken(r))

	r.Header.Set("Authorization", "Bearer abc123")
	assert.Equal(t, "abc123", ts.ExtractToken(r))

	r.Header.Set("Authorization", "abc123")
	assert.Empty(t, ts.ExtractToken(r))
}
