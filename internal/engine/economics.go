package engine

import (
	"math"
	"sort"

	"fieldquote/internal/catalog"
)

// SuggestSizes proposes up to three system sizes (S/M/L, ascending) around
// the target capacity derived from annual consumption (1 kWp ≈ 1000 kWh/yr).
//
// M is the available size closest to the target, ties resolved to the larger
// size. S is the next smaller distinct size, or the element above M when
// nothing smaller exists; L is the next larger distinct size, or the element
// below M. If fewer than three distinct sizes result, the sorted size list
// backfills in order until three are present or the catalog is exhausted.
func SuggestSizes(annualKWh float64, sizesKW []float64) []float64 {
	if len(sizesKW) == 0 {
		return nil
	}
	target := math.Max(0, annualKWh) / 1000

	sizes := append([]float64(nil), sizesKW...)
	sort.Float64s(sizes)

	idx := 0
	best := math.Inf(1)
	for i, s := range sizes {
		if d := math.Abs(s - target); d <= best {
			best = d
			idx = i
		}
	}
	m := sizes[idx]

	// Next smaller/larger distinct sizes; when one side is empty, fall back
	// to the adjacent element on the other side of M.
	s, l := m, m
	hasSmaller, hasLarger := false, false
	for _, v := range sizes {
		if v < m {
			s = v
			hasSmaller = true
		}
		if v > m {
			l = v
			hasLarger = true
			break
		}
	}
	if !hasSmaller && idx+1 < len(sizes) {
		s = sizes[idx+1]
	}
	if !hasLarger && idx > 0 {
		l = sizes[idx-1]
	}

	options := make([]float64, 0, 3)
	for _, v := range []float64{s, m, l} {
		if !contains(options, v) {
			options = append(options, v)
		}
	}
	for _, v := range sizes {
		if len(options) == 3 {
			break
		}
		if !contains(options, v) {
			options = append(options, v)
		}
	}
	sort.Float64s(options)
	return options
}

func contains(values []float64, v float64) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

// AnnualKWhFromCost derives annual consumption from the yearly electricity
// bill at the purchase price. Non-positive inputs yield zero consumption.
func AnnualKWhFromCost(costCHF, buyCHFPerKWh float64) float64 {
	if costCHF <= 0 || buyCHFPerKWh <= 0 {
		return 0
	}
	return costCHF / buyCHFPerKWh
}

// UnitPricePerKW interpolates the per-kW system price linearly between the
// curve anchors, clamping capacities outside the anchor range to the
// boundary price. A zero-width curve never divides by zero: the minimum
// anchor price applies.
func UnitPricePerKW(kw float64, c catalog.Curve) float64 {
	k := math.Max(c.MinKW, math.Min(c.MaxKW, kw))
	t := 0.0
	if c.MaxKW > c.MinKW {
		t = (k - c.MinKW) / (c.MaxKW - c.MinKW)
	}
	return c.PriceAtMinCHF + (c.PriceAtMaxCHF-c.PriceAtMinCHF)*t
}

// SystemUnitPrice returns the per-kW price for a proposal: the interpolated
// curve price when curve pricing is enabled, the flat system price otherwise.
func SystemUnitPrice(kw float64, cat *catalog.Catalog) float64 {
	if cat.CurvePricingEnabled {
		return UnitPricePerKW(kw, cat.Curve)
	}
	return cat.SystemPricePerKWCHF
}

// EconomicsInput collects everything the installation projection needs.
// All values come from the caller so the computation stays a pure function
// of its arguments.
type EconomicsInput struct {
	KW                float64
	UnitPriceCHFPerKW float64
	DiscountPct       float64
	VATPercent        float64
	Incentives        catalog.Incentives
	HeatPump          bool
	EnergyPrices      catalog.EnergyPrices
	SelfConsumption   catalog.SelfConsumption
	Environment       catalog.Environment
}

// EconomicsBreakdown is the full financial and energy projection for one
// sized installation. Values keep full floating precision; rounding is a
// presentation concern.
type EconomicsBreakdown struct {
	KW                    float64 `json:"kw"`
	UnitPriceCHFPerKW     float64 `json:"unitPriceCHFPerKW"`
	Subtotal              float64 `json:"subtotal"`
	Discount              float64 `json:"discount"`
	VAT                   float64 `json:"vat"`
	TotalBeforeIncentives float64 `json:"totalBeforeIncentives"`

	IncentiveFederal   float64 `json:"incentiveFederal"`
	IncentiveCantonal  float64 `json:"incentiveCantonal"`
	IncentiveMunicipal float64 `json:"incentiveMunicipal"`
	IncentivesTotal    float64 `json:"incentivesTotal"`
	TotalNet           float64 `json:"totalNet"`

	ProducedKWh        float64 `json:"producedKWh"`
	SelfConsumptionPct float64 `json:"selfConsumptionPct"`
	SelfConsumedKWh    float64 `json:"selfConsumedKWh"`
	GridExportKWh      float64 `json:"gridExportKWh"`
	ValueSelfConsumed  float64 `json:"valueSelfConsumed"`
	ValueExport        float64 `json:"valueExport"`
	AnnualBenefit      float64 `json:"annualBenefit"`

	CO2SavedKg      float64 `json:"co2SavedKg"`
	EquivalentTrees float64 `json:"equivalentTrees"`

	// PaybackYears is nil when the annual benefit is zero or negative:
	// "never pays back" must stay distinguishable from "pays back
	// immediately".
	PaybackYears *float64 `json:"paybackYears"`
}

// Economics turns a sized system into its cost and energy projection.
func Economics(in EconomicsInput) EconomicsBreakdown {
	subtotal := in.KW * in.UnitPriceCHFPerKW
	discount := subtotal * in.DiscountPct / 100
	vat := (subtotal - discount) * in.VATPercent / 100
	beforeIncentives := subtotal - discount + vat

	fed := in.KW * in.Incentives.FederalCHFPerKW
	cant := in.KW * in.Incentives.CantonalCHFPerKW
	mun := in.KW * in.Incentives.MunicipalCHFPerKW
	incentives := fed + cant + mun
	totalNet := math.Max(0, beforeIncentives-incentives)

	produced := in.KW * 1000
	scPct := in.SelfConsumption.WithoutHeatPumpPct
	if in.HeatPump {
		scPct = in.SelfConsumption.WithHeatPumpPct
	}
	autoKWh := produced * scPct / 100
	gridKWh := math.Max(0, produced-autoKWh)
	valueAuto := autoKWh * in.EnergyPrices.BuyCHFPerKWh
	valueExport := gridKWh * in.EnergyPrices.ExportCHFPerKWh
	benefit := valueAuto + valueExport

	co2Saved := produced * in.Environment.CO2GridKgPerKWh
	trees := 0.0
	if in.Environment.CO2PerTreeKgPerYear > 0 {
		trees = co2Saved / in.Environment.CO2PerTreeKgPerYear
	}

	var payback *float64
	if benefit > 0 {
		y := totalNet / benefit
		payback = &y
	}

	return EconomicsBreakdown{
		KW:                    in.KW,
		UnitPriceCHFPerKW:     in.UnitPriceCHFPerKW,
		Subtotal:              subtotal,
		Discount:              discount,
		VAT:                   vat,
		TotalBeforeIncentives: beforeIncentives,
		IncentiveFederal:      fed,
		IncentiveCantonal:     cant,
		IncentiveMunicipal:    mun,
		IncentivesTotal:       incentives,
		TotalNet:              totalNet,
		ProducedKWh:           produced,
		SelfConsumptionPct:    scPct,
		SelfConsumedKWh:       autoKWh,
		GridExportKWh:         gridKWh,
		ValueSelfConsumed:     valueAuto,
		ValueExport:           valueExport,
		AnnualBenefit:         benefit,
		CO2SavedKg:            co2Saved,
		EquivalentTrees:       trees,
		PaybackYears:          payback,
	}
}
