package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"gochat/service"
)

// UserController ...
type UserController struct {
	users  *service.UserService
	logger *logrus.Logger
}

func NewUserController(users *service.UserService, logger *logrus.Logger) *UserController {
	return &UserController{users: users, logger: logger}
}

func (ctrl *UserController) Register(c *gin.Context) {
	ctrl.logger.Infof("[%s] Handling user registration request", c.GetString("requestId"))

	var input service.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		ctrl.logger.Warnf("[%s] Invalid input, %s", c.GetString("requestId"), err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	user, err := ctrl.users.Register(&input)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) || errors.Is(err, service.ErrEmailTaken) ||
			errors.Is(err, service.ErrUserExists) {
			ctrl.logger.Warnf("[%s] Registration conflict for %s: %s", c.GetString("requestId"), input.Username, err)
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		ctrl.logger.Warnf("[%s] Failed to register user %s: %s", c.GetString("requestId"), input.Username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}

	ctrl.logger.Infof("[%s] User %s registered successfully", c.GetString("requestId"), user.Username)
	c.JSON(http.StatusCreated, user)
}

func (ctrl *UserController) Login(c *gin.Context) {
	ctrl.logger.Infof("[%s] Handling user login request", c.GetString("requestId"))

	var loginRequest struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&loginRequest); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	token, user, err := ctrl.users.Login(loginRequest.Username, loginRequest.Password)
	if err != nil {
		ctrl.logger.Warnf("[%s] User %s failed to login: %s", c.GetString("requestId"), loginRequest.Username, err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	ctrl.logger.Infof("[%s] User %s login successfully", c.GetString("requestId"), loginRequest.Username)
	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"user":         user,
	})
}

// Me returns the account behind the presented token.
func (ctrl *UserController) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Please login first"})
		return
	}
	c.JSON(http.StatusOK, user)
}
