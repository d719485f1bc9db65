package api

import (
	"net/http"

	authDelivery "moodchat-backend/internal/auth/delivery"
	authUsecase "moodchat-backend/internal/auth/usecase"
	chatDelivery "moodchat-backend/internal/chat/delivery"
	emotionDelivery "moodchat-backend/internal/emotion/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authUc authUsecase.AuthUsecase, authHandler *authDelivery.AuthHandler, chatHandler *chatDelivery.ChatHandler, emotionHandler *emotionDelivery.EmotionHandler) {
	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", authDelivery.AuthMiddleware(authUc), authHandler.Me)
		}

		// Device token routes (protected)
		devices := api.Group("/devices")
		devices.Use(authDelivery.AuthMiddleware(authUc))
		{
			devices.POST("", authHandler.RegisterDevice)
			devices.DELETE("/:token", authHandler.UnregisterDevice)
		}

		// Room and message routes (protected)
		rooms := api.Group("/rooms")
		rooms.Use(authDelivery.AuthMiddleware(authUc))
		{
			rooms.POST("", chatHandler.CreateRoom)
			rooms.GET("", chatHandler.ListRooms)
			rooms.POST("/:id/join", chatHandler.JoinRoom)
			rooms.GET("/:id/messages", chatHandler.ListMessages)
			rooms.POST("/:id/messages", chatHandler.SendMessage)
			rooms.GET("/:id/trends", emotionHandler.GetRoomTrends)
		}

		// Emotion routes (protected)
		emotions := api.Group("/me")
		emotions.Use(authDelivery.AuthMiddleware(authUc))
		{
			emotions.GET("/emotions/profile", emotionHandler.GetMyProfile)
			emotions.GET("/emotions/samples", emotionHandler.GetMySamples)
		}
	}
}
