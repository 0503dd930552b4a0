package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	redisclient "github.com/redis/go-redis/v9"

	"lorcanacards.ca/shop/api/pkg/cart"
)

// cartTTL keeps abandoned carts around long enough to survive across
// visits before they expire.
const cartTTL = 30 * 24 * time.Hour

// CartPersister stores each session's cart as one JSON-encoded line-item
// array under cart:{sessionID}, fully overwritten on every save. Last write
// wins; concurrent tabs on the same session are not coordinated.
type CartPersister struct {
	client *redisclient.Client
}

func NewCartPersister(client *redisclient.Client) *CartPersister {
	return &CartPersister{client: client}
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}

// Load reads the session's cart record. A missing record is an empty cart,
// and a record that no longer parses is treated the same way rather than
// breaking the session.
func (p *CartPersister) Load(ctx context.Context, sessionID string) ([]cart.LineItem, error) {
	raw, err := p.client.Get(ctx, cartKey(sessionID)).Result()
	if errors.Is(err, redisclient.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var items []cart.LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Printf("Warning: malformed cart record for session %s, starting empty: %v", sessionID, err)
		return nil, nil
	}

	return items, nil
}

// Save overwrites the session's cart record with the full item list.
func (p *CartPersister) Save(ctx context.Context, sessionID string, items []cart.LineItem) error {
	if items == nil {
		items = []cart.LineItem{}
	}

	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart for session %s: %w", sessionID, err)
	}

	return p.client.Set(ctx, cartKey(sessionID), itemsJSON, cartTTL).Err()
}
