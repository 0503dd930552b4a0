package router

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var Router *gin.Engine

func InitEngine() {
	Router = gin.Default()
	if os.Getenv("ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	Router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://127.0.0.1:5175", "https://shop.lorcanacards.ca"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "X-Cache"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}

func InitializeRoutes(cartHandler *CartHandler) {
	api := Router.Group("/api")
	{
		api.GET("/health", HealthCheck)

		cards := api.Group("/cards")
		{
			cards.GET("/", GetAllCards)
			cards.GET("/search", SearchCards)
			cards.GET("/:id", GetCardByID)
			cards.PUT("/:id/price", UpdateCardPrice)
		}

		// The admin surface is deliberately unprotected; the console runs
		// on the shop owner's machine only.
		admin := api.Group("/admin")
		{
			admin.GET("/pricing", GetPricingSettings)
			admin.PUT("/pricing", UpdatePricingSettings)
			admin.POST("/apply-rarity-pricing", ApplyRarityPricing)
		}

		cartRoutes := api.Group("/cart")
		{
			cartRoutes.GET("/:sessionId", cartHandler.GetCart)
			cartRoutes.POST("/:sessionId/items", cartHandler.AddItem)
			cartRoutes.PUT("/:sessionId/items/:id", cartHandler.UpdateItem)
			cartRoutes.POST("/:sessionId/items/:id/premium", cartHandler.TogglePremium)
			cartRoutes.DELETE("/:sessionId/items/:id", cartHandler.RemoveItem)
			cartRoutes.DELETE("/:sessionId/clear", cartHandler.ClearCart)
		}
	}
}
