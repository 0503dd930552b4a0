package router

import (
	"context"
	"log"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"lorcanacards.ca/shop/api/pkg/cart"
	"lorcanacards.ca/shop/api/pkg/global"
	"lorcanacards.ca/shop/api/pkg/models"
)

// defaultShippingRegion is preselected in the storefront's region picker.
const defaultShippingRegion = "GTA"

// CardFetcher resolves a catalog card at add-to-cart time.
type CardFetcher func(ctx context.Context, id bson.ObjectID) (*models.Card, error)

// SettingsFetcher supplies the admin pricing settings the cart prices with.
type SettingsFetcher func(ctx context.Context) (*models.PricingSettings, error)

// CartHandler serves the session cart endpoints. Each request rehydrates
// the session's cart store from the persister, applies one mutation, and
// returns the cart with freshly computed totals.
type CartHandler struct {
	persister     cart.Persister
	fetchCard     CardFetcher
	fetchSettings SettingsFetcher
	taxRate       float64
}

func NewCartHandler(persister cart.Persister, fetchCard CardFetcher, fetchSettings SettingsFetcher, taxRate float64) *CartHandler {
	return &CartHandler{
		persister:     persister,
		fetchCard:     fetchCard,
		fetchSettings: fetchSettings,
		taxRate:       taxRate,
	}
}

// parameters resolves the pricing parameters for a request. The region
// query selects the shipping option; unknown or missing regions fall back
// to the default, then to the first region by name. When the settings fetch
// fails the cart still renders, priced with tax only.
func (h *CartHandler) parameters(ctx context.Context, region string) cart.Parameters {
	params := cart.Parameters{TaxRate: h.taxRate}

	settings, err := h.fetchSettings(ctx)
	if err != nil {
		log.Printf("Warning: could not fetch pricing settings, cart priced without shipping/packaging: %v", err)
		return params
	}

	params.PremiumPackUnitPrice = settings.PremiumPackPrice

	if cost, ok := settings.ShippingPrices[region]; ok {
		params.ShippingCost = cost
		return params
	}
	if cost, ok := settings.ShippingPrices[defaultShippingRegion]; ok {
		params.ShippingCost = cost
		return params
	}

	regions := make([]string, 0, len(settings.ShippingPrices))
	for name := range settings.ShippingPrices {
		regions = append(regions, name)
	}
	sort.Strings(regions)
	if len(regions) > 0 {
		params.ShippingCost = settings.ShippingPrices[regions[0]]
	}

	return params
}

func (h *CartHandler) loadStore(c *gin.Context) *cart.Store {
	sessionID := c.Param("sessionId")
	params := h.parameters(c.Request.Context(), c.Query("region"))
	return cart.NewStore(c.Request.Context(), sessionID, h.persister, params)
}

func (h *CartHandler) GetCart(c *gin.Context) {
	store := h.loadStore(c)
	c.JSON(http.StatusOK, global.SuccessResponse(store.Snapshot()))
}

type addCartItemRequest struct {
	CardID string `json:"cardId" binding:"required"`
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("cardId field is required", []global.ValidationError{
			{Field: "cardId", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	objectID, err := bson.ObjectIDFromHex(req.CardID)
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid card ID format", []global.ValidationError{
			{Field: "cardId", Message: "Must be a valid MongoDB ObjectID", Code: "invalid_format"},
		}))
		return
	}

	card, err := h.fetchCard(c.Request.Context(), objectID)
	if err != nil {
		if err.Error() == "card not found" {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Card not found", []global.ValidationError{
				{Field: "cardId", Message: "No card exists with this ID", Code: "not_found"},
			}))
			return
		}
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch card", nil))
		return
	}

	store := h.loadStore(c)
	err = store.AddItem(c.Request.Context(), cart.CatalogItem{
		ID:    card.ID.Hex(),
		Name:  card.Name,
		Image: card.Image,
		Price: card.Price,
	})
	if err != nil {
		log.Printf("Error saving cart: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to save cart", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(store.Snapshot()))
}

type updateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// UpdateItem sets a line item's quantity. Quantities below one and unknown
// ids are silently ignored; the unchanged cart comes back with 200.
func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("quantity field is required", []global.ValidationError{
			{Field: "quantity", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	store := h.loadStore(c)
	if err := store.UpdateQuantity(c.Request.Context(), c.Param("id"), *req.Quantity); err != nil {
		log.Printf("Error saving cart: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to save cart", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(store.Snapshot()))
}

func (h *CartHandler) TogglePremium(c *gin.Context) {
	store := h.loadStore(c)
	if err := store.TogglePremiumPackaging(c.Request.Context(), c.Param("id")); err != nil {
		log.Printf("Error saving cart: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to save cart", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(store.Snapshot()))
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	store := h.loadStore(c)
	if err := store.RemoveItem(c.Request.Context(), c.Param("id")); err != nil {
		log.Printf("Error saving cart: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to save cart", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(store.Snapshot()))
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	store := h.loadStore(c)
	if err := store.Clear(c.Request.Context()); err != nil {
		log.Printf("Error saving cart: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to save cart", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(store.Snapshot()))
}
