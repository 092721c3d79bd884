package main

import (
	"fmt"
	"time"

	_uuid "github.com/google/uuid"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"gochat/controller"
	"gochat/model"
	"gochat/platform"
	"gochat/service"
)

// CORSMiddleware ...
// CORS (Cross-Origin Resource Sharing)
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "http://localhost")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE, UPDATE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "X-Requested-With, Content-Type, Origin, Authorization, Accept, Client-Security-Token, Accept-Encoding, x-access-token")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
		} else {
			c.Next()
		}
	}
}

// RequestIDMiddleware ...
// Generate a unique ID and attach it to each request for future reference or use
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		uuid := _uuid.New()
		c.Writer.Header().Set("X-Request-Id", uuid.String())
		c.Set("requestId", uuid.String())
		c.Next()
	}
}

func LogMiddleware(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery
		if raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		latency := time.Since(start)

		status := c.Writer.Status()
		clientIP := c.ClientIP()
		method := c.Request.Method
		userAgent := c.Request.UserAgent()
		requestId := c.GetString("requestId")

		logger.Infof(
			" [%s] %d | %v | %s | %s | %s | %s ",
			requestId,
			status,
			latency,
			clientIP,
			method,
			path,
			userAgent,
		)
	}
}

func main() {
	fmt.Println("Server started...")

	cfg, err := platform.LoadConfig()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		return
	}

	logger := platform.NewLogger(cfg.LogPath, "gochat")

	db, err := platform.NewDB(cfg.DBPath)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	if err := model.InstallDB(db); err != nil {
		logger.Fatalf("failed to migrate database: %v", err)
	}

	llmClient := platform.NewLLMClient(cfg.LLMBaseURL, cfg.LLMAPIKey)

	userStore := model.NewUserStore(db)
	convStore := model.NewConversationStore(db)

	tokenService := service.NewTokenService(cfg.AccessSecret, service.DefaultTokenTTL)
	sessionService := service.NewSessionService(tokenService, userStore)
	userService := service.NewUserService(userStore, tokenService, logger)
	generator := service.NewOpenAIGenerator(llmClient, cfg.LLMModel)
	chatService := service.NewChatService(convStore, generator, logger)
	statsService := service.NewStatsService(db, logger)

	auth := controller.NewAuthController(sessionService, tokenService)
	user := controller.NewUserController(userService, logger)
	chat := controller.NewChatController(chatService, logger)
	conv := controller.NewConversationController(convStore, logger)

	r := gin.Default()
	r.Use(CORSMiddleware())
	r.Use(RequestIDMiddleware())
	r.Use(LogMiddleware(logger))

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Chatbot API is running",
			"version": "1.0.0",
			"status":  "healthy",
		})
	})

	v1 := r.Group("/v1")
	{
		v1.POST("/user/register", user.Register)
		v1.POST("/user/login", user.Login)
		v1.GET("/user/me", auth.TokenAuthMiddleware(), user.Me)

		v1.POST("/chat", auth.TokenAuthMiddleware(), chat.Chat)

		v1.POST("/conversations", auth.TokenAuthMiddleware(), conv.Create)
		v1.GET("/conversations", auth.TokenAuthMiddleware(), conv.List)
		v1.GET("/conversations/:id", auth.TokenAuthMiddleware(), conv.Get)
		v1.GET("/conversations/:id/messages", auth.TokenAuthMiddleware(), conv.Messages)
		v1.DELETE("/conversations/:id", auth.TokenAuthMiddleware(), conv.Delete)
	}

	c := cron.New()
	c.AddFunc("0 0 * * *", func() {
		_ = statsService.ReportUsageTask()
	})
	c.Start()

	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatalf("server exited: %v", err)
	}
}
