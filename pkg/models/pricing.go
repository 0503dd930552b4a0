package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// PricingSettings is the single document in the PricingSettings collection.
// It drives the premium packaging surcharge, the shipping rate table shown
// at checkout, and the rarity-based default prices the admin console can
// bulk-apply to the catalog.
type PricingSettings struct {
	ID               bson.ObjectID      `json:"_id,omitempty" bson:"_id,omitempty"`
	PremiumPackPrice float64            `json:"premiumPackPrice" bson:"premiumPackPrice" validate:"gte=0"`
	ShippingPrices   map[string]float64 `json:"shippingPrices" bson:"shippingPrices"`
	RarityPrices     map[string]float64 `json:"rarityPrices" bson:"rarityPrices"`
	LastUpdated      time.Time          `json:"lastUpdated" bson:"lastUpdated"`
}

type UpdatePricingSettingsRequest struct {
	PremiumPackPrice *float64           `json:"premiumPackPrice" binding:"required"`
	ShippingPrices   map[string]float64 `json:"shippingPrices" binding:"required"`
	RarityPrices     map[string]float64 `json:"rarityPrices" binding:"required"`
}

type ApplyRarityPricingRequest struct {
	RarityPrices map[string]float64 `json:"rarityPrices" binding:"required"`
}

// DefaultPricingSettings seeds the settings document on first startup.
// Regions and tiers match what the storefront was launched with.
func DefaultPricingSettings() *PricingSettings {
	return &PricingSettings{
		PremiumPackPrice: 19.99,
		ShippingPrices: map[string]float64{
			"GTA":              5.99,
			"Southern Ontario": 7.99,
			"Northern Ontario": 9.99,
			"Canada Wide":      12.99,
			"International":    24.99,
		},
		RarityPrices: map[string]float64{
			"Common":     0.99,
			"Uncommon":   1.99,
			"Rare":       4.99,
			"Super Rare": 9.99,
			"Legendary":  24.99,
		},
		LastUpdated: time.Now(),
	}
}
