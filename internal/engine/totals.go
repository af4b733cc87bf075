package engine

import "math"

// AggregateInput folds priced line items plus the job-level charges into
// offer totals. IncentivesCHF stays zero for service and maintenance offers;
// installation offers pass the summed per-kW rebates.
type AggregateInput struct {
	Items         []LineItem
	Travel        TravelQuote
	DiscountPct   float64
	VATPercent    float64
	IncentivesCHF float64
}

// OfferTotals is the final, fully recomputed breakdown of an offer. It is
// derived on demand from its inputs and never updated incrementally.
type OfferTotals struct {
	ItemsSubtotal       float64 `json:"itemsSubtotal"`
	Travel              float64 `json:"travel"`
	Callout             float64 `json:"callout"`
	Subtotal            float64 `json:"subtotal"`
	DiscountPct         float64 `json:"discountPct"`
	Discount            float64 `json:"discount"`
	VATPercent          float64 `json:"vatPercent"`
	VAT                 float64 `json:"vat"`
	NetBeforeIncentives float64 `json:"netBeforeIncentives"`
	Incentives          float64 `json:"incentives"`
	Total               float64 `json:"total"`
}

// Aggregate combines line items, travel and call-out into subtotal,
// discount, VAT and grand total.
//
// VAT is computed on the discounted subtotal, uniformly for every offer
// type. Intermediate values keep full floating precision; rounding to
// display precision happens only at presentation time, since chained
// rounding would compound error across the discount, VAT and incentive
// steps. Incentives are subtracted after VAT and the result never goes
// negative.
func Aggregate(in AggregateInput) OfferTotals {
	items := 0.0
	for _, it := range in.Items {
		items += it.Subtotal
	}

	subtotal := items + in.Travel.TravelCHF + in.Travel.CalloutCHF
	discount := subtotal * in.DiscountPct / 100
	vat := (subtotal - discount) * in.VATPercent / 100
	net := subtotal - discount + vat

	return OfferTotals{
		ItemsSubtotal:       items,
		Travel:              in.Travel.TravelCHF,
		Callout:             in.Travel.CalloutCHF,
		Subtotal:            subtotal,
		DiscountPct:         in.DiscountPct,
		Discount:            discount,
		VATPercent:          in.VATPercent,
		VAT:                 vat,
		NetBeforeIncentives: net,
		Incentives:          in.IncentivesCHF,
		Total:               math.Max(0, net-in.IncentivesCHF),
	}
}
