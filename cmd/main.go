package main

import (
	"log"

	"github.com/joho/godotenv"

	"lorcanacards.ca/shop/api/internal/router"
	"lorcanacards.ca/shop/api/pkg/global"
	"lorcanacards.ca/shop/api/pkg/mongo"
	"lorcanacards.ca/shop/api/pkg/redis"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	mongo.InitMongoDB()
	mongo.EnsureIndexesOnStartup()
	mongo.EnsureDefaultPricing()

	cartHandler := router.NewCartHandler(
		redis.NewCartPersister(redis.RedisClient()),
		mongo.GetCardByID,
		mongo.GetPricingSettings,
		global.GetTaxRate(),
	)

	router.InitEngine()
	router.InitializeRoutes(cartHandler)

	port := global.GetEnvOrDefault("PORT", "8000")
	log.Printf("Server is running on port %s", port)

	if err := router.Router.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
