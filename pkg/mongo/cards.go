package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"lorcanacards.ca/shop/api/pkg/global"
	"lorcanacards.ca/shop/api/pkg/models"
)

const cardsCollection = "Cards"

// searchLimit caps search results; the storefront only renders one page.
const searchLimit = 50

func GetAllCards() ([]models.Card, error) {
	ctx, cancel := global.GetDefaultTimer()
	defer cancel()
	collection := GetCollection(cardsCollection)

	cursor, err := collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var cards []models.Card
	if err := cursor.All(ctx, &cards); err != nil {
		return nil, err
	}

	return cards, nil
}

func GetCardByID(ctx context.Context, id bson.ObjectID) (*models.Card, error) {
	collection := GetCollection(cardsCollection)

	var card models.Card
	err := collection.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&card)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errors.New("card not found")
	}
	if err != nil {
		return nil, err
	}

	return &card, nil
}

// SearchCards matches the query as a case-insensitive substring against the
// card name, set number, and rarity.
func SearchCards(ctx context.Context, query string) ([]models.Card, error) {
	collection := GetCollection(cardsCollection)

	pattern := bson.D{{Key: "$regex", Value: query}, {Key: "$options", Value: "i"}}
	filter := bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "Name", Value: pattern}},
		bson.D{{Key: "Set_Num", Value: pattern}},
		bson.D{{Key: "Rarity", Value: pattern}},
	}}}

	cursor, err := collection.Find(ctx, filter, options.Find().SetLimit(searchLimit))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var cards []models.Card
	if err := cursor.All(ctx, &cards); err != nil {
		return nil, err
	}

	return cards, nil
}

// UpdateCardPrice sets the dealer price on one card. Returns "card not
// found" when nothing was modified, which also covers writing a price equal
// to the current one.
func UpdateCardPrice(ctx context.Context, id bson.ObjectID, price float64) error {
	collection := GetCollection(cardsCollection)

	result, err := collection.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "Price", Value: price}}}},
	)
	if err != nil {
		return err
	}
	if result.ModifiedCount == 0 {
		return errors.New("card not found")
	}

	return nil
}

// ApplyRarityPricing overwrites the price of every card whose rarity has an
// entry in the table. Returns the number of cards modified.
func ApplyRarityPricing(ctx context.Context, rarityPrices map[string]float64) (int64, error) {
	collection := GetCollection(cardsCollection)

	var updated int64
	for rarity, price := range rarityPrices {
		result, err := collection.UpdateMany(ctx,
			bson.D{{Key: "Rarity", Value: rarity}},
			bson.D{{Key: "$set", Value: bson.D{{Key: "Price", Value: price}}}},
		)
		if err != nil {
			return updated, err
		}
		updated += result.ModifiedCount
	}

	return updated, nil
}
