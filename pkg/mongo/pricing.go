package mongo

import (
	"context"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"lorcanacards.ca/shop/api/pkg/global"
	"lorcanacards.ca/shop/api/pkg/models"
)

const pricingCollection = "PricingSettings"

// GetPricingSettings reads the singleton settings document.
func GetPricingSettings(ctx context.Context) (*models.PricingSettings, error) {
	collection := GetCollection(pricingCollection)

	var settings models.PricingSettings
	err := collection.FindOne(ctx, bson.D{}).Decode(&settings)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errors.New("no pricing settings found")
	}
	if err != nil {
		return nil, err
	}

	return &settings, nil
}

// UpdatePricingSettings replaces the three pricing tables and stamps the
// update time. Upserts so a wiped collection heals on the next admin save.
func UpdatePricingSettings(ctx context.Context, req *models.UpdatePricingSettingsRequest) (*models.PricingSettings, error) {
	collection := GetCollection(pricingCollection)

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "premiumPackPrice", Value: *req.PremiumPackPrice},
		{Key: "shippingPrices", Value: req.ShippingPrices},
		{Key: "rarityPrices", Value: req.RarityPrices},
		{Key: "lastUpdated", Value: time.Now()},
	}}}

	_, err := collection.UpdateOne(ctx, bson.D{}, update, options.UpdateOne().SetUpsert(true))
	if err != nil {
		return nil, err
	}

	return GetPricingSettings(ctx)
}

// EnsureDefaultPricing seeds the settings document when the collection is
// empty so a fresh deployment has working prices.
func EnsureDefaultPricing() {
	ctx, cancel := global.GetDefaultTimer()
	defer cancel()
	collection := GetCollection(pricingCollection)

	count, err := collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		log.Fatalf("Failed to check pricing settings: %v", err)
	}
	if count > 0 {
		return
	}

	if _, err := collection.InsertOne(ctx, models.DefaultPricingSettings()); err != nil {
		log.Fatalf("Failed to seed default pricing settings: %v", err)
	}
	log.Println("Seeded default pricing settings")
}
