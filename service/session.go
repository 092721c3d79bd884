package service

import (
	"errors"

	"gochat/model"
)

var ErrUnauthenticated = errors.New("unauthenticated")

// SessionService resolves a bearer token to the live user record. Only the
// identity claim is trusted from the token; everything else is re-fetched, so
// a token for a user that no longer exists resolves as unauthenticated even
// while its signature is still good.
type SessionService struct {
	tokens *TokenService
	users  *model.UserStore
}

func NewSessionService(tokens *TokenService, users *model.UserStore) *SessionService {
	return &SessionService{tokens: tokens, users: users}
}

func (s *SessionService) Resolve(tokenString string) (*model.User, error) {
	details, err := s.tokens.VerifyToken(tokenString)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	user, err := s.users.GetUserByUsername(details.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnauthenticated
	}
	return user, nil
}
