package service

import (
	"errors"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"gochat/model"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type UserService struct {
	users  *model.UserStore
	tokens *TokenService
	logger *logrus.Logger
}

func NewUserService(users *model.UserStore, tokens *TokenService, logger *logrus.Logger) *UserService {
	return &UserService{users: users, tokens: tokens, logger: logger}
}

type RegisterInput struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new account. The username/email lookups are only a fast
// path; the unique indexes decide conflicts, so a duplicate that slips past
// the pre-check still comes back as a conflict, not a storage error.
func (s *UserService) Register(input *RegisterInput) (*model.User, error) {
	if existing, err := s.users.GetUserByUsername(input.Username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrUsernameTaken
	}
	if existing, err := s.users.GetUserByEmail(input.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	newUser := &model.User{
		Username: input.Username,
		Email:    input.Email,
		Password: string(hashedPassword),
	}
	if err := s.users.CreateUser(newUser); err != nil {
		// a duplicate that slipped past the pre-check; the column cannot be
		// told apart at this point
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return newUser, nil
}

// Login verifies the password and mints an access token. Unknown username and
// wrong password are reported identically.
func (s *UserService) Login(username, password string) (string, *model.User, error) {
	registeredUser, err := s.users.GetUserByUsername(username)
	if err != nil {
		return "", nil, err
	}
	if registeredUser == nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(registeredUser.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	td, err := s.tokens.CreateToken(registeredUser.ID, registeredUser.Username)
	if err != nil {
		s.logger.Warnf("Error generating token for %s: %v", username, err)
		return "", nil, err
	}

	return td.AccessToken, registeredUser, nil
}
