package router

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"lorcanacards.ca/shop/api/pkg/global"
	"lorcanacards.ca/shop/api/pkg/models"
	"lorcanacards.ca/shop/api/pkg/mongo"
	"lorcanacards.ca/shop/api/pkg/redis"
)

func GetPricingSettings(c *gin.Context) {
	settings, err := mongo.GetPricingSettings(c.Request.Context())
	if err != nil {
		if err.Error() == "no pricing settings found" {
			c.JSON(http.StatusNotFound, global.ErrorResponse("No pricing settings found", nil))
			return
		}
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch pricing settings", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(settings))
}

func UpdatePricingSettings(c *gin.Context) {
	var req models.UpdatePricingSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Missing required fields", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	settings, err := mongo.UpdatePricingSettings(c.Request.Context(), &req)
	if err != nil {
		log.Printf("Error updating pricing settings: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to update pricing settings", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(map[string]interface{}{
		"message":  "Pricing settings updated successfully",
		"settings": settings,
	}))
}

// ApplyRarityPricing bulk-overwrites catalog prices from the rarity table.
func ApplyRarityPricing(c *gin.Context) {
	var req models.ApplyRarityPricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("rarityPrices field is required", []global.ValidationError{
			{Field: "rarityPrices", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	ctx := c.Request.Context()

	updated, err := mongo.ApplyRarityPricing(ctx, req.RarityPrices)
	if err != nil {
		log.Printf("Error applying rarity pricing: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to apply rarity pricing", nil))
		return
	}

	// Bulk repricing can touch most of the catalog; drop all cached cards
	if cacheErr := redis.FlushCardCache(ctx); cacheErr != nil {
		log.Printf("Warning: Failed to flush card cache in Redis: %v", cacheErr)
	}

	c.JSON(http.StatusOK, global.SuccessResponse(map[string]interface{}{
		"message": fmt.Sprintf("Prices updated for %d cards based on rarity", updated),
		"updated": updated,
	}))
}
