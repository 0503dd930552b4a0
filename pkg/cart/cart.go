// Package cart holds the shopping cart state store and its pricing rules.
// A cart is owned by exactly one storefront session; all mutations go
// through Store so totals are never stale and every change is written back
// to the durable record before control returns to the caller.
package cart

// LineItem is one entry in the cart. Display fields are copied from the
// catalog at add time and are not re-synced if the card changes later.
type LineItem struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Image            string  `json:"image"`
	UnitPrice        float64 `json:"unitPrice"`
	Quantity         int     `json:"quantity"`
	PremiumPackaging bool    `json:"premiumPackaging"`
}

// CatalogItem carries the card fields the cart needs at add time. A nil
// Price means the card has no dealer price yet and the fallback applies.
type CatalogItem struct {
	ID    string
	Name  string
	Image string
	Price *float64
}

// Cart is the rendered view of a session's cart: the line items in
// insertion order plus the derived totals.
type Cart struct {
	SessionID        string     `json:"session_id"`
	Items            []LineItem `json:"items"`
	ItemCount        int        `json:"item_count"`
	Subtotal         float64    `json:"subtotal"`
	Shipping         float64    `json:"shipping"`
	PremiumPackaging float64    `json:"premium_packaging"`
	Tax              float64    `json:"tax"`
	Total            float64    `json:"total"`
}
