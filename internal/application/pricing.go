// internal/application/pricing.go
package application

import (
	"github.com/shopspring/decimal"

	"github.com/mahabubulhasibshawon/glamour-storefront/internal/domain"
)

// Pricing is a flat shipping fee plus a flat tax rate on the subtotal.
// The cart summary and the checkout summary each carry their own Pricing.
type Pricing struct {
	ShippingFee decimal.Decimal
	TaxRate     decimal.Decimal
}

var (
	DefaultCartPricing     = Pricing{ShippingFee: decimal.NewFromInt(99), TaxRate: decimal.RequireFromString("0.18")}
	DefaultCheckoutPricing = Pricing{ShippingFee: decimal.RequireFromString("5.99"), TaxRate: decimal.RequireFromString("0.08")}
)

func NewPricing(shippingFee, taxRate float64) Pricing {
	return Pricing{
		ShippingFee: decimal.NewFromFloat(shippingFee),
		TaxRate:     decimal.NewFromFloat(taxRate),
	}
}

// CartSummary charges shipping whenever the cart has a positive subtotal.
func (p Pricing) CartSummary(items []domain.CartLineItem) domain.Amounts {
	subtotal := subtotalOf(items)
	shipping := decimal.Zero
	if subtotal.IsPositive() {
		shipping = p.ShippingFee
	}
	return p.amounts(subtotal, shipping)
}

// Checkout charges shipping only for home service.
func (p Pricing) Checkout(items []domain.CartLineItem, service domain.ServiceType) domain.Amounts {
	subtotal := subtotalOf(items)
	shipping := decimal.Zero
	if service == domain.ServiceHome {
		shipping = p.ShippingFee
	}
	return p.amounts(subtotal, shipping)
}

func (p Pricing) amounts(subtotal, shipping decimal.Decimal) domain.Amounts {
	tax := subtotal.Mul(p.TaxRate).Round(2)
	subtotal = subtotal.Round(2)
	shipping = shipping.Round(2)
	total := subtotal.Add(shipping).Add(tax)
	return domain.Amounts{
		Subtotal: subtotal.InexactFloat64(),
		Shipping: shipping.InexactFloat64(),
		Tax:      tax.InexactFloat64(),
		Total:    total.InexactFloat64(),
	}
}

func subtotalOf(items []domain.CartLineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.UnitPrice).Mul(decimal.NewFromInt(int64(item.Quantity)))
		sum = sum.Add(line)
	}
	return sum
}
