package service

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v4"
)

// DefaultTokenTTL is how long an access token stays valid after login. There
// is no refresh or revocation; a token lives out its window.
const DefaultTokenTTL = 30 * time.Minute

var ErrInvalidToken = errors.New("invalid token")

// TokenDetails ...
type TokenDetails struct {
	AccessToken string
	AtExpires   int64
}

// AccessDetails are the identity claims carried by a verified token.
type AccessDetails struct {
	UserID   uint
	Username string
}

// TokenService mints and verifies HS256 bearer tokens. Expiry is compared
// against the local wall clock at verification; issuer and verifier share a
// clock in this single-process deployment, skew across environments is a
// known limitation.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// CreateToken ...
func (t *TokenService) CreateToken(userID uint, username string) (*TokenDetails, error) {
	td := &TokenDetails{}
	td.AtExpires = time.Now().Add(t.ttl).Unix()

	atClaims := jwt.MapClaims{}
	atClaims["sub"] = username
	atClaims["user_id"] = userID
	atClaims["exp"] = td.AtExpires

	at := jwt.NewWithClaims(jwt.SigningMethodHS256, atClaims)
	var err error
	td.AccessToken, err = at.SignedString(t.secret)
	if err != nil {
		return nil, err
	}
	return td, nil
}

// ExtractToken ...
func (t *TokenService) ExtractToken(r *http.Request) string {
	bearToken := r.Header.Get("Authorization")
	//normally Authorization: Bearer the_token_xxx
	strArr := strings.Split(bearToken, " ")
	if len(strArr) == 2 {
		return strArr[1]
	}
	return ""
}

// VerifyToken checks signature and expiry and returns the identity claims.
// Any malformed encoding, signature mismatch or past expiry yields
// ErrInvalidToken, never partial claims.
func (t *TokenService) VerifyToken(tokenString string) (*AccessDetails, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		//Make sure that the token method conform to "SigningMethodHMAC"
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	username, ok := claims["sub"].(string)
	if !ok || username == "" {
		return nil, ErrInvalidToken
	}
	userID, err := strconv.ParseUint(fmt.Sprintf("%.f", claims["user_id"]), 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &AccessDetails{
		UserID:   uint(userID),
		Username: username,
	}, nil
}
