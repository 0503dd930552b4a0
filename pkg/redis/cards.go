package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lorcanacards.ca/shop/api/pkg/models"
)

// Card detail pages are read far more than cards change price, so single
// card reads go through a 24h cache keyed by ObjectID hex.

func CacheCard(ctx context.Context, card *models.Card) error {
	client := RedisClient()
	defer client.Close()

	cardJSON, err := json.Marshal(card)
	if err != nil {
		return fmt.Errorf("failed to marshal card %s: %w", card.ID.Hex(), err)
	}

	// Use pipeline for atomic operations
	pipe := client.TxPipeline()

	cardKey := fmt.Sprintf("card:%s", card.ID.Hex())
	pipe.Set(ctx, cardKey, cardJSON, 24*time.Hour)

	// Add to rarity-based lists for filtering
	rarityKey := fmt.Sprintf("rarity:%s", card.Rarity)
	pipe.LPush(ctx, rarityKey, card.ID.Hex())
	pipe.Expire(ctx, rarityKey, 24*time.Hour)

	// Track recently viewed cards, capped at 100
	pipe.LPush(ctx, "cards:recent", card.ID.Hex())
	pipe.LTrim(ctx, "cards:recent", 0, 99)
	pipe.Expire(ctx, "cards:recent", 24*time.Hour)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to execute Redis pipeline for card %s: %w", card.ID.Hex(), err)
	}

	return nil
}

func GetCardFromCache(ctx context.Context, id string) (*models.Card, error) {
	client := RedisClient()
	defer client.Close()

	cardKey := fmt.Sprintf("card:%s", id)
	cardJSON, err := client.Get(ctx, cardKey).Result()
	if err != nil {
		return nil, err
	}

	var card models.Card
	if err := json.Unmarshal([]byte(cardJSON), &card); err != nil {
		return nil, fmt.Errorf("failed to unmarshal card: %w", err)
	}

	return &card, nil
}

// InvalidateCard drops a single card's cache entry after a price change.
func InvalidateCard(ctx context.Context, id string) error {
	client := RedisClient()
	defer client.Close()

	cardKey := fmt.Sprintf("card:%s", id)
	return client.Del(ctx, cardKey).Err()
}

// FlushCardCache drops every cached card. Used after bulk rarity pricing,
// which can touch most of the catalog.
func FlushCardCache(ctx context.Context) error {
	client := RedisClient()
	defer client.Close()

	keys, err := client.Keys(ctx, "card:*").Result()
	if err != nil {
		return err
	}

	if len(keys) > 0 {
		return client.Del(ctx, keys...).Err()
	}

	return nil
}
