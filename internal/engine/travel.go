package engine

import "fieldquote/internal/catalog"

// BillingMode selects how a job's dispatch is invoiced.
type BillingMode string

const (
	// BillingFixed charges the flat call-out fee once; travel time is not
	// invoiced separately.
	BillingFixed BillingMode = "fixed"
	// BillingMetered charges travel minutes at the per-minute rate, with
	// the call-out fee still additive when enabled.
	BillingMetered BillingMode = "metered"
)

// TravelInput carries the dispatch answers for one job.
//
// Callout is a tri-state: nil means the checkbox was never touched and the
// catalog default decides; an explicit false is a real "no" and wins over
// the default. RoundTripMinutes nil falls back to twice the catalog's
// one-way default.
type TravelInput struct {
	RoundTripMinutes *float64    `json:"roundTripMinutes"`
	Callout          *bool       `json:"callout"`
	Mode             BillingMode `json:"mode"`
}

// TravelQuote is the priced travel and call-out pair.
type TravelQuote struct {
	TravelCHF  float64 `json:"travelCHF"`
	CalloutCHF float64 `json:"calloutCHF"`
}

// PriceTravel applies the travel/call-out billing policy.
func PriceTravel(in TravelInput, cat *catalog.Catalog) TravelQuote {
	if in.Mode == BillingFixed {
		return TravelQuote{CalloutCHF: cat.Travel.CalloutFeeCHF}
	}

	minutes := cat.Travel.DefaultOneWayMinutes * 2
	if in.RoundTripMinutes != nil {
		minutes = *in.RoundTripMinutes
	}
	if minutes < 0 {
		minutes = 0
	}

	apply := cat.Travel.AutoApplyCallout
	if in.Callout != nil {
		apply = *in.Callout
	}

	q := TravelQuote{TravelCHF: minutes * cat.Travel.RatePerMinuteCHF}
	if apply {
		q.CalloutCHF = cat.Travel.CalloutFeeCHF
	}
	return q
}
