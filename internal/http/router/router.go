package router

import (
	"github.com/gin-gonic/gin"

	"replyloop.app/engine/internal/http/handler"
	"replyloop.app/engine/internal/http/middleware"
	"replyloop.app/engine/internal/queue"
	"replyloop.app/engine/internal/store"
)

func SetupRoutes(router *gin.Engine, stores *store.Stores, creator *store.AccountCreator, producer queue.Producer) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/v1")
	v1.Use(middleware.RequireUser())
	{
		profileHandler := handler.NewProfileHandler(stores.VoiceProfiles())
		v1.GET("/profile", profileHandler.Get)
		v1.PUT("/profile", profileHandler.Update)

		accountHandler := handler.NewAccountHandler(stores.Accounts(), creator)
		accounts := v1.Group("/accounts")
		{
			accounts.POST("", accountHandler.Create)
			accounts.GET("", accountHandler.List)
			accounts.DELETE("/:id", accountHandler.Delete)
		}

		runHandler := handler.NewRunHandler(producer)
		v1.POST("/runs", runHandler.Enqueue)
	}
}
