package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gochat/model"
	"gochat/service"
)

// AuthController ...
type AuthController struct {
	sessions *service.SessionService
	tokens   *service.TokenService
}

func NewAuthController(sessions *service.SessionService, tokens *service.TokenService) *AuthController {
	return &AuthController{sessions: sessions, tokens: tokens}
}

// TokenAuthMiddleware resolves the bearer token to the live user record and
// attaches it to the request context. Every failure mode, missing header,
// bad signature, expired token or deleted user, gets the same 401.
func (a *AuthController) TokenAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := a.tokens.ExtractToken(c.Request)
		user, err := a.sessions.Resolve(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Please login first"})
			return
		}
		c.Set("user", user)
		c.Next()
	}
}

// currentUser pulls the resolved user out of the request context. The auth
// middleware guarantees it is present on protected routes.
func currentUser(c *gin.Context) (*model.User, bool) {
	v, ok := c.Get("user")
	if !ok {
		return nil, false
	}
	user, ok := v.(*model.User)
	return user, ok
}
