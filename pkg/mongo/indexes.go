package mongo

import (
	"log"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"lorcanacards.ca/shop/api/pkg/global"
)

type IndexConfig struct {
	CollectionName string
	IndexModel     mongo.IndexModel
}

var requiredIndexes = []IndexConfig{
	// Cards Collection Indexes
	// Index 1: name lookups for search
	{
		CollectionName: "Cards",
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "Name", Value: 1}},
			Options: options.Index().SetName("idx_card_name"),
		},
	},
	// Index 2: set number lookups for search
	{
		CollectionName: "Cards",
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "Set_Num", Value: 1}},
			Options: options.Index().SetName("idx_card_set"),
		},
	},
	// Index 3: rarity filter, also drives apply-rarity-pricing bulk updates
	{
		CollectionName: "Cards",
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "Rarity", Value: 1}},
			Options: options.Index().SetName("idx_card_rarity"),
		},
	},
	// Index 4: compound rarity + price for priced catalog listings
	{
		CollectionName: "Cards",
		IndexModel: mongo.IndexModel{
			Keys: bson.D{
				{Key: "Rarity", Value: 1},
				{Key: "Price", Value: -1},
			},
			Options: options.Index().SetName("idx_rarity_price"),
		},
	},
}

func EnsureIndexes() error {
	log.Println("Starting index creation...")

	for _, idxConfig := range requiredIndexes {
		collection := GetCollection(idxConfig.CollectionName)
		ctx, cancel := global.GetDefaultTimer()
		defer cancel()

		indexName, err := collection.Indexes().CreateOne(ctx, idxConfig.IndexModel)
		if err != nil {
			log.Printf("Error creating index on collection %s: %v",
				idxConfig.CollectionName, err)
			return err
		}

		log.Printf("✓ Created index '%s' on collection '%s'", indexName, idxConfig.CollectionName)
	}

	log.Println("All indexes created successfully!")
	return nil
}

func EnsureIndexesOnStartup() {
	if err := EnsureIndexes(); err != nil {
		log.Fatalf("Failed to ensure indexes: %v", err)
	}
}
