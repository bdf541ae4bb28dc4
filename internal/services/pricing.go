package services

import (
	"errors"
	"math"
)

// Pricing errors. Order creation is all-or-nothing: any of these rejects the
// whole order before anything is persisted.
var (
	ErrNoItems         = errors.New("empty_items")
	ErrNegativePrice   = errors.New("negative_base_price")
	ErrNegativePercent = errors.New("negative_percent")
	ErrInvalidQuantity = errors.New("quantity_below_one")
)

// ItemInput is a requested order line before pricing.
type ItemInput struct {
	Name              string
	BasePrice         float64
	TaxPercent        float64
	CommissionPercent float64
	Quantity          int
}

// PricedItem carries the four derived amounts for a line, cent-rounded.
type PricedItem struct {
	ItemInput
	TaxAmount        float64
	CommissionAmount float64
	FinalPrice       float64
	ProfitAmount     float64
}

// Totals are the element-wise sums of the item amounts.
type Totals struct {
	Tax        float64
	Commission float64
	Profit     float64
	Amount     float64
}

// RoundCents rounds a money amount to 2 decimals, half away from zero.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// PriceOrder turns requested lines into priced lines plus order totals.
//
// Tax is applied per unit before commission: commission is a percentage of the
// tax-inclusive unit price. This is a business rule, not a rounding accident,
// so the order of operations here must not be rearranged. Amounts are rounded
// to cents per line; totals are sums of the rounded line amounts so that
// total == sum(items) holds exactly.
func PriceOrder(items []ItemInput) ([]PricedItem, Totals, error) {
	if len(items) == 0 {
		return nil, Totals{}, ErrNoItems
	}
	priced := make([]PricedItem, 0, len(items))
	var t Totals
	for _, in := range items {
		if in.BasePrice < 0 {
			return nil, Totals{}, ErrNegativePrice
		}
		if in.TaxPercent < 0 || in.CommissionPercent < 0 {
			return nil, Totals{}, ErrNegativePercent
		}
		if in.Quantity < 1 {
			return nil, Totals{}, ErrInvalidQuantity
		}
		qty := float64(in.Quantity)

		taxPerUnit := in.BasePrice * (in.TaxPercent / 100)
		taxAmount := RoundCents(taxPerUnit * qty)

		commissionPerUnit := (in.BasePrice + taxPerUnit) * (in.CommissionPercent / 100)
		commissionAmount := RoundCents(commissionPerUnit * qty)

		finalPrice := RoundCents(in.BasePrice*qty + taxAmount + commissionAmount)
		profitAmount := commissionAmount

		priced = append(priced, PricedItem{
			ItemInput:        in,
			TaxAmount:        taxAmount,
			CommissionAmount: commissionAmount,
			FinalPrice:       finalPrice,
			ProfitAmount:     profitAmount,
		})
		t.Tax = RoundCents(t.Tax + taxAmount)
		t.Commission = RoundCents(t.Commission + commissionAmount)
		t.Profit = RoundCents(t.Profit + profitAmount)
		t.Amount = RoundCents(t.Amount + finalPrice)
	}
	return priced, t, nil
}
