package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Card represents a single trading card in the catalog. Field names mirror
// the documents in the Cards collection, which were imported from the
// upstream card database dump, hence the capitalized keys.
type Card struct {
	ID     bson.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name   string        `json:"Name" bson:"Name" validate:"required"`
	SetNum string        `json:"Set_Num" bson:"Set_Num"`
	Rarity string        `json:"Rarity" bson:"Rarity"`
	Color  string        `json:"Color" bson:"Color"`
	Image  string        `json:"Image" bson:"Image"`
	// Price is optional; cards without a dealer price yet omit the field.
	Price *float64 `json:"Price,omitempty" bson:"Price,omitempty" validate:"omitempty,gte=0"`
}

type UpdateCardPriceRequest struct {
	Price *float64 `json:"price" binding:"required"`
}
