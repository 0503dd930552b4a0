package cart

// Parameters are the pricing inputs supplied by the admin settings:
// the tax rate, the cost of the selected shipping option, and the per-unit
// price of premium packaging.
type Parameters struct {
	TaxRate              float64
	ShippingCost         float64
	PremiumPackUnitPrice float64
}

// Totals is the financial breakdown of a cart. Values are kept unrounded;
// rounding to cents happens in the UI so repeated recomputes don't compound
// rounding error.
type Totals struct {
	ItemCount        int
	Subtotal         float64
	Shipping         float64
	PremiumPackaging float64
	Tax              float64
	Total            float64
}

// Subtotal sums unit price times quantity over all line items.
func Subtotal(items []LineItem) float64 {
	var sum float64
	for _, item := range items {
		sum += item.UnitPrice * float64(item.Quantity)
	}
	return sum
}

// PremiumPackagingTotal sums the packaging surcharge over the items that
// have it enabled, charged per unit of quantity.
func PremiumPackagingTotal(items []LineItem, unitPrice float64) float64 {
	var sum float64
	for _, item := range items {
		if item.PremiumPackaging {
			sum += unitPrice * float64(item.Quantity)
		}
	}
	return sum
}

// TaxAmount applies the tax rate to the taxable base. Premium packaging is
// excluded from the base: only goods and shipping are taxed.
func TaxAmount(subtotal, shippingCost, taxRate float64) float64 {
	return (subtotal + shippingCost) * taxRate
}

// Calculate produces the full breakdown for a set of line items under the
// given parameters. Pure: no state, no ordering dependence among items.
func Calculate(items []LineItem, p Parameters) Totals {
	subtotal := Subtotal(items)
	packaging := PremiumPackagingTotal(items, p.PremiumPackUnitPrice)
	tax := TaxAmount(subtotal, p.ShippingCost, p.TaxRate)

	count := 0
	for _, item := range items {
		count += item.Quantity
	}

	return Totals{
		ItemCount:        count,
		Subtotal:         subtotal,
		Shipping:         p.ShippingCost,
		PremiumPackaging: packaging,
		Tax:              tax,
		Total:            subtotal + p.ShippingCost + packaging + tax,
	}
}
