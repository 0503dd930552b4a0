package cart

import (
	"context"
	"log"
)

// FallbackUnitPrice is charged for cards that have no dealer price set.
const FallbackUnitPrice = 3.99

// Persister is the durable home of a session's line items. Save overwrites
// the whole record; there is no merge, the last writer wins.
type Persister interface {
	Load(ctx context.Context, sessionID string) ([]LineItem, error)
	Save(ctx context.Context, sessionID string, items []LineItem) error
}

// Store owns the cart state for one session. Mutations recompute the
// derived totals and persist the full line-item record before returning,
// so callers always observe totals consistent with the items.
type Store struct {
	sessionID string
	persister Persister
	params    Parameters
	items     []LineItem
	totals    Totals
}

// NewStore rehydrates the cart for sessionID from the persister. A missing
// or unreadable record starts the session with an empty cart rather than
// failing.
func NewStore(ctx context.Context, sessionID string, persister Persister, params Parameters) *Store {
	s := &Store{
		sessionID: sessionID,
		persister: persister,
		params:    params,
	}

	items, err := persister.Load(ctx, sessionID)
	if err != nil {
		log.Printf("Warning: could not load cart for session %s, starting empty: %v", sessionID, err)
		items = nil
	}
	s.items = items
	s.recompute()
	return s
}

// AddItem puts a catalog item in the cart. Adding a card that is already
// present bumps its quantity by one instead of creating a second line.
func (s *Store) AddItem(ctx context.Context, item CatalogItem) error {
	for i := range s.items {
		if s.items[i].ID == item.ID {
			s.items[i].Quantity++
			return s.commit(ctx)
		}
	}

	price := FallbackUnitPrice
	if item.Price != nil {
		price = *item.Price
	}
	s.items = append(s.items, LineItem{
		ID:        item.ID,
		Name:      item.Name,
		Image:     item.Image,
		UnitPrice: price,
		Quantity:  1,
	})
	return s.commit(ctx)
}

// UpdateQuantity sets the quantity for a line item. Quantities below one
// are ignored rather than treated as removal, and an unknown id is a no-op;
// neither is an error.
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	if quantity < 1 {
		return nil
	}
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = quantity
			return s.commit(ctx)
		}
	}
	return nil
}

// TogglePremiumPackaging flips the packaging flag on a line item. Unknown
// id is a no-op.
func (s *Store) TogglePremiumPackaging(ctx context.Context, id string) error {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].PremiumPackaging = !s.items[i].PremiumPackaging
			return s.commit(ctx)
		}
	}
	return nil
}

// RemoveItem deletes a line item. Unknown id is a no-op.
func (s *Store) RemoveItem(ctx context.Context, id string) error {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return s.commit(ctx)
		}
	}
	return nil
}

// Clear empties the cart and persists the empty record.
func (s *Store) Clear(ctx context.Context) error {
	s.items = nil
	return s.commit(ctx)
}

// SetShippingCost injects the cost of the selected shipping option. Only
// line items are durable, so parameter changes recompute without a write.
func (s *Store) SetShippingCost(cost float64) {
	s.params.ShippingCost = cost
	s.recompute()
}

// SetPremiumUnitPrice injects the per-unit premium packaging price.
func (s *Store) SetPremiumUnitPrice(price float64) {
	s.params.PremiumPackUnitPrice = price
	s.recompute()
}

// Items returns a copy of the line items in insertion order.
func (s *Store) Items() []LineItem {
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Totals returns the derived totals as of the last mutation.
func (s *Store) Totals() Totals {
	return s.totals
}

// Snapshot renders the cart view returned to the storefront.
func (s *Store) Snapshot() Cart {
	return Cart{
		SessionID:        s.sessionID,
		Items:            s.Items(),
		ItemCount:        s.totals.ItemCount,
		Subtotal:         s.totals.Subtotal,
		Shipping:         s.totals.Shipping,
		PremiumPackaging: s.totals.PremiumPackaging,
		Tax:              s.totals.Tax,
		Total:            s.totals.Total,
	}
}

func (s *Store) recompute() {
	s.totals = Calculate(s.items, s.params)
}

// commit recomputes totals and rewrites the durable record in full.
func (s *Store) commit(ctx context.Context) error {
	s.recompute()
	return s.persister.Save(ctx, s.sessionID, s.items)
}
