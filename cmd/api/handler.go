package api

import (
	authDelivery "moodchat-backend/internal/auth/delivery"
	authUsecase "moodchat-backend/internal/auth/usecase"
	chatDelivery "moodchat-backend/internal/chat/delivery"
	chatUsecase "moodchat-backend/internal/chat/usecase"
	emotionDelivery "moodchat-backend/internal/emotion/delivery"
	"moodchat-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authUsecase    authUsecase.AuthUsecase
	authHandler    *authDelivery.AuthHandler
	chatHandler    *chatDelivery.ChatHandler
	emotionHandler *emotionDelivery.EmotionHandler
	config         *config.Config
}

func NewHandler(authUc authUsecase.AuthUsecase, deviceRegistry authUsecase.DeviceRegistry, chatUc chatUsecase.ChatUsecase, emotionHandler *emotionDelivery.EmotionHandler, cfg *config.Config) *Handler {
	return &Handler{
		authUsecase:    authUc,
		authHandler:    authDelivery.NewAuthHandler(authUc, deviceRegistry),
		chatHandler:    chatDelivery.NewChatHandler(chatUc),
		emotionHandler: emotionHandler,
		config:         cfg,
	}
}

func (h *Handler) Start(addr string) error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.authUsecase, h.authHandler, h.chatHandler, h.emotionHandler)

	return r.Run(addr)
}
