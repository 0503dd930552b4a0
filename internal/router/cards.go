package router

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"lorcanacards.ca/shop/api/pkg/global"
	"lorcanacards.ca/shop/api/pkg/models"
	"lorcanacards.ca/shop/api/pkg/mongo"
	"lorcanacards.ca/shop/api/pkg/redis"
)

func HealthCheck(c *gin.Context) {
	db := mongo.GetDatabase()
	if err := db.Client().Ping(c, nil); err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Database connection failed", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(map[string]string{"status": "OK", "database": "Connected"}))
}

func GetAllCards(c *gin.Context) {
	cards, err := mongo.GetAllCards()
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get cards", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(cards))
}

func SearchCards(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusOK, global.SuccessResponse([]models.Card{}))
		return
	}

	cards, err := mongo.SearchCards(c.Request.Context(), query)
	if err != nil {
		log.Printf("Search error: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to search cards", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(cards))
}

// GetCardByID retrieves a card by ObjectID with Redis caching
func GetCardByID(c *gin.Context) {
	cardID := c.Param("id")

	objectID, err := bson.ObjectIDFromHex(cardID)
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid card ID format", []global.ValidationError{
			{Field: "id", Message: "Must be a valid MongoDB ObjectID", Code: "invalid_format"},
		}))
		return
	}

	ctx := c.Request.Context()

	// Try Redis cache first
	card, err := redis.GetCardFromCache(ctx, cardID)
	if err == nil {
		c.Header("X-Cache", "HIT")
		c.JSON(http.StatusOK, global.SuccessResponse(card))
		return
	}

	// Cache miss, check MongoDB
	card, err = mongo.GetCardByID(ctx, objectID)
	if err != nil {
		if err.Error() == "card not found" {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Card not found", []global.ValidationError{
				{Field: "id", Message: "No card exists with this ID", Code: "not_found"},
			}))
			return
		}
		log.Printf("Error fetching card from MongoDB: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch card", nil))
		return
	}

	// Found in MongoDB, cache it for future requests
	if cacheErr := redis.CacheCard(ctx, card); cacheErr != nil {
		// Log cache error but don't fail the request
		log.Printf("Warning: Failed to cache card in Redis: %v", cacheErr)
	}

	c.Header("X-Cache", "MISS")
	c.JSON(http.StatusOK, global.SuccessResponse(card))
}

// UpdateCardPrice sets the dealer price of one card
func UpdateCardPrice(c *gin.Context) {
	cardID := c.Param("id")

	objectID, err := bson.ObjectIDFromHex(cardID)
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid card ID format", []global.ValidationError{
			{Field: "id", Message: "Must be a valid MongoDB ObjectID", Code: "invalid_format"},
		}))
		return
	}

	var req models.UpdateCardPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Price field is required", []global.ValidationError{
			{Field: "price", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	ctx := c.Request.Context()

	if err := mongo.UpdateCardPrice(ctx, objectID, *req.Price); err != nil {
		if err.Error() == "card not found" {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Card not found or price not changed", []global.ValidationError{
				{Field: "id", Message: "No card was modified", Code: "not_found"},
			}))
			return
		}
		log.Printf("Error updating card price in MongoDB: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to update card price", nil))
		return
	}

	// Drop the stale cache entry so the next read refetches
	if cacheErr := redis.InvalidateCard(ctx, cardID); cacheErr != nil {
		log.Printf("Warning: Failed to invalidate card cache in Redis: %v", cacheErr)
	}

	c.JSON(http.StatusOK, global.SuccessResponse(map[string]interface{}{
		"message": "Card price updated successfully",
	}))
}
