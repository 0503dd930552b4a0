package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryPersister struct {
	records map[string][]LineItem
	saves   int
	loadErr error
	saveErr error
}

func newMemoryPersister() *memoryPersister {
	return &memoryPersister{records: make(map[string][]LineItem)}
}

func (m *memoryPersister) Load(_ context.Context, sessionID string) ([]LineItem, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.records[sessionID], nil
}

func (m *memoryPersister) Save(_ context.Context, sessionID string, items []LineItem) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	saved := make([]LineItem, len(items))
	copy(saved, items)
	m.records[sessionID] = saved
	return nil
}

func price(v float64) *float64 { return &v }

var testParams = Parameters{TaxRate: 0.13, ShippingCost: 5.99, PremiumPackUnitPrice: 19.99}

func TestAddItem_NewCard(t *testing.T) {
	p := newMemoryPersister()
	s := NewStore(context.Background(), "sess-1", p, testParams)

	err := s.AddItem(context.Background(), CatalogItem{ID: "c1", Name: "Elsa", Image: "elsa.png", Price: price(4.99)})
	require.NoError(t, err)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Elsa", items[0].Name)
	assert.Equal(t, 1, items[0].Quantity)
	assert.False(t, items[0].PremiumPackaging)
	assert.Equal(t, 4.99, items[0].UnitPrice)
}

func TestAddItem_SameCardTwiceMergesQuantity(t *testing.T) {
	p := newMemoryPersister()
	s := NewStore(context.Background(), "sess-1", p, testParams)

	card := CatalogItem{ID: "c1", Name: "Elsa", Price: price(4.99)}
	require.NoError(t, s.AddItem(context.Background(), card))
	require.NoError(t, s.AddItem(context.Background(), card))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 2, s.Totals().ItemCount)
}

func TestAddItem_UnpricedCardUsesFallback(t *testing.T) {
	p := newMemoryPersister()
	s := NewStore(context.Background(), "sess-1", p, testParams)

	require.NoError(t, s.AddItem(context.Background(), CatalogItem{ID: "c1", Name: "Mystery Card"}))

	assert.Equal(t, FallbackUnitPrice, s.Items()[0].UnitPrice)
}

func TestAddItem_PreservesInsertionOrder(t *testing.T) {
	p := newMemoryPersister()
	s := NewStore(context.Background(), "sess-1", p, testParams)

	require.NoError(t, s.AddItem(context.Background(), CatalogItem{ID: "c1", Name: "First"}))
	require.NoError(t, s.AddItem(context.Background(), CatalogItem{ID: "c2", Name: "Second"}))
	require.NoError(t, s.AddItem(context.Background(), CatalogItem{ID: "c1", Name: "First"}))

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "c1", items[0].ID)
	assert.Equal(t, "c2", items[1].ID)
}

func TestUpdateQuantity_BelowOneIsIgnored(t *testing.T) {
	p := newMemoryPersister()
	s := NewStore(context.Background(), "sess-1", p, testParams)
	require.NoError(t, s.AddItem(context.Background(), CatalogItem{ID: "c1", Price: price(4.99)}))

	require.NoError(t, s.UpdateQuantity(context.Background(), "c1", 0))
	assert.Equal(t, 1, s.Items()[0].Quantity)

	require.NoError(t, s.UpdateQuantity(context.Background(), "c1", -1))
	assert.Equal(t, 1, s.Items()[0].Quantity)
}

func TestUpdateQuantity_UnknownIDIsNoOp(t *testing.T) {
	p := newMemoryPersister()
	s := NewStore(context.Background(), "sess-1", p, testParams)
	require.NoError(t, s.AddItem(context.Background(), CatalogItem{ID: "c1"}))
	savesBefore := p.saves

	require.NoError(t, s.UpdateQuantity(context.Background(), "missing", 5))

	assert.Equal(t, 1, s.Items()[0].Quantity)
	assert.Equal(t, savesBefore, p.saves)
}

func TestUpdateQuantity_SetsAndRecomputes(t *testing.T) {
	p := newMemoryPersister()
	s := NewStore(context.Background(), "sess-1", p, testParams)
	require.NoError(t, s.AddItem(context.Background(), CatalogItem{ID: "c1", Price: price(4.99)}))

	require.NoError(t, s.UpdateQuantity(context.Background(), "c1", 4))

	assert.Equal(t, 4, s.Items()[0].Quantity)
	assert.InDelta(t, 4.99*4, s.Totals().Subtotal, 1e-9)
	assert.Len(t, p.records["sess-1"], 1)
	assert.Equal(t, 4, p.records["sess-1"][0].Quantity)
}

func TestTogglePremiumPackaging_DoubleToggleRestores(t *testing.T) {
	p := newMemoryPersister()
	s := NewStore(context.Background(), "sess-1", p, testParams)
	require.NoError(t, s.AddItem(context.Background(), CatalogItem{ID: "c1", Price: price(4.99)}))
	require.NoError(t, s.UpdateQuantity(context.Background(), "c1", 2))

	before := s.Totals().PremiumPackaging
	require.NoError(t, s.TogglePremiumPackaging(context.Background(), "c1"))
	assert.InDelta(t, 19.99*2, s.Totals().PremiumPackaging, 1e-9)

	require.NoError(t, s.TogglePremiumPackaging(context.Background(), "c1"))
	assert.Equal(t, before, s.Totals().PremiumPackaging)
}

func TestRemoveItem_LastItemLeavesEmptyRecord(t *testing.T) {
	p := newMemoryPersister()
	s := NewStore(context.Background(), "sess-1", p, testParams)
	require.NoError(t, s.AddItem(context.Background(), CatalogItem{ID: "c1"}))

	require.NoError(t, s.RemoveItem(context.Background(), "c1"))

	assert.Equal(t, 0, s.Totals().ItemCount)
	assert.Empty(t, p.records["sess-1"])
}

func TestRemoveItem_UnknownIDIsNoOp(t *testing.T) {
	p := newMemoryPersister()
	s := NewStore(context.Background(), "sess-1", p, testParams)
	require.NoError(t, s.AddItem(context.Background(), CatalogItem{ID: "c1"}))

	require.NoError(t, s.RemoveItem(context.Background(), "missing"))

	assert.Len(t, s.Items(), 1)
}

func TestClear_EmptiesCartAndPersists(t *testing.T) {
	p := newMemoryPersister()
	s := NewStore(context.Background(), "sess-1", p, testParams)
	require.NoError(t, s.AddItem(context.Background(), CatalogItem{ID: "c1"}))
	require.NoError(t, s.AddItem(context.Background(), CatalogItem{ID: "c2"}))

	require.NoError(t, s.Clear(context.Background()))

	assert.Empty(t, s.Items())
	assert.Empty(t, p.records["sess-1"])
	assert.Equal(t, 0.0, s.Totals().Subtotal)
}

func TestNewStore_RehydratesPersistedCart(t *testing.T) {
	p := newMemoryPersister()
	first := NewStore(context.Background(), "sess-1", p, testParams)
	require.NoError(t, first.AddItem(context.Background(), CatalogItem{ID: "c1", Name: "Elsa", Price: price(4.99)}))
	require.NoError(t, first.UpdateQuantity(context.Background(), "c1", 2))
	require.NoError(t, first.TogglePremiumPackaging(context.Background(), "c1"))

	// A later session sees identical items and totals without any catalog fetch.
	second := NewStore(context.Background(), "sess-1", p, testParams)

	assert.Equal(t, first.Items(), second.Items())
	assert.Equal(t, first.Totals(), second.Totals())
}

func TestNewStore_LoadFailureStartsEmpty(t *testing.T) {
	p := newMemoryPersister()
	p.loadErr = errors.New("record unreadable")

	s := NewStore(context.Background(), "sess-1", p, testParams)

	assert.Empty(t, s.Items())
	assert.Equal(t, 0, s.Totals().ItemCount)
}

func TestSetShippingCost_RecomputesTotals(t *testing.T) {
	p := newMemoryPersister()
	s := NewStore(context.Background(), "sess-1", p, testParams)
	require.NoError(t, s.AddItem(context.Background(), CatalogItem{ID: "c1", Price: price(4.99)}))

	s.SetShippingCost(12.99)

	totals := s.Totals()
	assert.Equal(t, 12.99, totals.Shipping)
	assert.InDelta(t, (4.99+12.99)*0.13, totals.Tax, 1e-9)
}

func TestSetPremiumUnitPrice_RecomputesTotals(t *testing.T) {
	p := newMemoryPersister()
	s := NewStore(context.Background(), "sess-1", p, testParams)
	require.NoError(t, s.AddItem(context.Background(), CatalogItem{ID: "c1", Price: price(4.99)}))
	require.NoError(t, s.TogglePremiumPackaging(context.Background(), "c1"))

	s.SetPremiumUnitPrice(9.99)

	assert.InDelta(t, 9.99, s.Totals().PremiumPackaging, 1e-9)
}

func TestMutation_SaveErrorIsSurfaced(t *testing.T) {
	p := newMemoryPersister()
	s := NewStore(context.Background(), "sess-1", p, testParams)
	p.saveErr = errors.New("write failed")

	err := s.AddItem(context.Background(), CatalogItem{ID: "c1"})

	assert.Error(t, err)
}
