// Package catalog holds the tariff configuration a quote is computed from.
//
// A Catalog is an immutable, fully-defaulted snapshot: callers resolve one
// per quote session and pass it into the engine. The raw configuration is
// user-editable and frequently incomplete, so resolving is total: missing
// or malformed entries fall back to builtin defaults, and a category/option
// combination that was never configured prices as zero rather than failing.
package catalog

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Rates are the labor tariffs.
type Rates struct {
	HourlyWorkerCHF     float64 `json:"hourlyWorkerCHF"`
	HourlyApprenticeCHF float64 `json:"hourlyApprenticeCHF"`
}

// TravelTariff controls travel and call-out billing.
type TravelTariff struct {
	RatePerMinuteCHF     float64 `json:"ratePerMinuteCHF"`
	CalloutFeeCHF        float64 `json:"calloutFeeCHF"`
	DefaultOneWayMinutes float64 `json:"defaultOneWayMinutes"`
	AutoApplyCallout     bool    `json:"autoApplyCallout"`
}

// Curve holds the linear interpolation anchors for per-kW system pricing.
type Curve struct {
	MinKW         float64 `json:"minKW"`
	PriceAtMinCHF float64 `json:"priceAtMinCHF"`
	MaxKW         float64 `json:"maxKW"`
	PriceAtMaxCHF float64 `json:"priceAtMaxCHF"`
}

// Incentives are additive per-kW rebates by authority tier.
type Incentives struct {
	FederalCHFPerKW   float64 `json:"federalCHFPerKW"`
	CantonalCHFPerKW  float64 `json:"cantonalCHFPerKW"`
	MunicipalCHFPerKW float64 `json:"municipalCHFPerKW"`
}

// SelfConsumption is the share of production consumed on site, conditioned
// on heat pump presence.
type SelfConsumption struct {
	WithHeatPumpPct    float64 `json:"withHeatPumpPct"`
	WithoutHeatPumpPct float64 `json:"withoutHeatPumpPct"`
}

// EnergyPrices are the purchase and feed-in prices per kWh.
type EnergyPrices struct {
	BuyCHFPerKWh    float64 `json:"buyCHFPerKWh"`
	ExportCHFPerKWh float64 `json:"exportCHFPerKWh"`
}

// Environment holds the factors for the CO2 savings projection.
type Environment struct {
	CO2GridKgPerKWh     float64 `json:"co2GridKgPerKWh"`
	CO2PerTreeKgPerYear float64 `json:"co2PerTreeKgPerYear"`
}

// Material is one material tier of an option.
type Material struct {
	Label   string  `json:"label,omitempty"`
	UnitCHF float64 `json:"unitCHF"`
}

// Addon is extra time/material keyed by a secondary context (e.g. outdoor).
type Addon struct {
	Label        string  `json:"label,omitempty"`
	ExtraMinutes float64 `json:"extraMinutes"`
	ExtraCHF     float64 `json:"extraCHF"`
}

// Option is one priced entry of a category: base minutes plus material
// tiers, optional context add-ons and optional distance band surcharges.
type Option struct {
	Label           string              `json:"label,omitempty"`
	MinutesPerUnit  float64             `json:"minutesPerUnit"`
	Materials       map[string]Material `json:"materials,omitempty"`
	ContextAddons   map[string]Addon    `json:"contextAddons,omitempty"`
	DistanceBandCHF map[string]float64  `json:"distanceBandCHF,omitempty"`
}

// Category groups the options of one service category.
type Category struct {
	Label   string            `json:"label,omitempty"`
	Options map[string]Option `json:"options"`
}

// Catalog is the resolved, immutable tariff snapshot.
type Catalog struct {
	Rates                       Rates               `json:"rates"`
	Travel                      TravelTariff        `json:"travel"`
	Curve                       Curve               `json:"curve"`
	CurvePricingEnabled         bool                `json:"curvePricingEnabled"`
	SystemPricePerKWCHF         float64             `json:"systemPricePerKWCHF"`
	Incentives                  Incentives          `json:"incentives"`
	SelfConsumption             SelfConsumption     `json:"selfConsumption"`
	EnergyPrices                EnergyPrices        `json:"energyPrices"`
	Environment                 Environment         `json:"environment"`
	VATPercent                  float64             `json:"vatPercent"`
	MaintenancePricePerPanelCHF float64             `json:"maintenancePricePerPanelCHF"`
	PVSizesKW                   []float64           `json:"pvSizesKW"`
	Categories                  map[string]Category `json:"categories"`
}

// Option returns the priced entry for a category/option pair. The zero
// Option is returned when either is unknown, so lookups always succeed.
func (c *Catalog) Option(category, key string) Option {
	cat, ok := c.Categories[category]
	if !ok {
		return Option{}
	}
	return cat.Options[key]
}

// ParseRaw decodes a raw configuration document. The raw config is
// JSON-shaped; decoding goes through yaml.v3 so both YAML files and plain
// JSON payloads are accepted.
func ParseRaw(data []byte) (*RawConfig, error) {
	var raw RawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog config: %w", err)
	}
	return &raw, nil
}

// Resolve merges a raw, possibly partial configuration over the builtin
// defaults and normalizes the result. A nil raw config yields the defaults.
func Resolve(raw *RawConfig) Catalog {
	c := Default()
	if raw == nil {
		return c
	}

	if r := raw.Rates; r != nil {
		c.Rates.HourlyWorkerCHF = money(r.HourlyWorkerCHF.Or(c.Rates.HourlyWorkerCHF))
		c.Rates.HourlyApprenticeCHF = money(r.HourlyApprenticeCHF.Or(c.Rates.HourlyApprenticeCHF))
	}
	if t := raw.Travel; t != nil {
		c.Travel.RatePerMinuteCHF = money(t.RatePerMinuteCHF.Or(c.Travel.RatePerMinuteCHF))
		c.Travel.CalloutFeeCHF = money(t.CalloutFeeCHF.Or(c.Travel.CalloutFeeCHF))
		c.Travel.DefaultOneWayMinutes = money(t.DefaultOneWayMinutes.Or(c.Travel.DefaultOneWayMinutes))
		if t.AutoApplyCallout != nil {
			c.Travel.AutoApplyCallout = *t.AutoApplyCallout
		}
	}
	if cv := raw.Curve; cv != nil {
		c.Curve.MinKW = money(cv.MinKW.Or(c.Curve.MinKW))
		c.Curve.PriceAtMinCHF = money(cv.PriceAtMinCHF.Or(c.Curve.PriceAtMinCHF))
		c.Curve.MaxKW = money(cv.MaxKW.Or(c.Curve.MaxKW))
		c.Curve.PriceAtMaxCHF = money(cv.PriceAtMaxCHF.Or(c.Curve.PriceAtMaxCHF))
	}
	if c.Curve.MaxKW < c.Curve.MinKW {
		c.Curve.MinKW, c.Curve.MaxKW = c.Curve.MaxKW, c.Curve.MinKW
		c.Curve.PriceAtMinCHF, c.Curve.PriceAtMaxCHF = c.Curve.PriceAtMaxCHF, c.Curve.PriceAtMinCHF
	}
	if raw.CurvePricingEnabled != nil {
		c.CurvePricingEnabled = *raw.CurvePricingEnabled
	}
	c.SystemPricePerKWCHF = money(raw.SystemPricePerKWCHF.Or(c.SystemPricePerKWCHF))

	if i := raw.Incentives; i != nil {
		c.Incentives.FederalCHFPerKW = money(i.FederalCHFPerKW.Or(c.Incentives.FederalCHFPerKW))
		c.Incentives.CantonalCHFPerKW = money(i.CantonalCHFPerKW.Or(c.Incentives.CantonalCHFPerKW))
		c.Incentives.MunicipalCHFPerKW = money(i.MunicipalCHFPerKW.Or(c.Incentives.MunicipalCHFPerKW))
	}
	if s := raw.SelfConsumption; s != nil {
		c.SelfConsumption.WithHeatPumpPct = pct(s.WithHeatPumpPct.Or(c.SelfConsumption.WithHeatPumpPct))
		c.SelfConsumption.WithoutHeatPumpPct = pct(s.WithoutHeatPumpPct.Or(c.SelfConsumption.WithoutHeatPumpPct))
	}
	if e := raw.EnergyPrices; e != nil {
		c.EnergyPrices.BuyCHFPerKWh = money(e.BuyCHFPerKWh.Or(c.EnergyPrices.BuyCHFPerKWh))
		c.EnergyPrices.ExportCHFPerKWh = money(e.ExportCHFPerKWh.Or(c.EnergyPrices.ExportCHFPerKWh))
	}
	if e := raw.Environment; e != nil {
		c.Environment.CO2GridKgPerKWh = money(e.CO2GridKgPerKWh.Or(c.Environment.CO2GridKgPerKWh))
		c.Environment.CO2PerTreeKgPerYear = money(e.CO2PerTreeKgPerYear.Or(c.Environment.CO2PerTreeKgPerYear))
	}

	c.VATPercent = pct(raw.VATPercent.Or(c.VATPercent))
	c.MaintenancePricePerPanelCHF = money(raw.MaintenancePricePerPanelCHF.Or(c.MaintenancePricePerPanelCHF))

	if len(raw.PVSizesKW) > 0 {
		sizes := make([]float64, 0, len(raw.PVSizesKW))
		for _, n := range raw.PVSizesKW {
			if n.Valid() && n.Or(0) > 0 {
				sizes = append(sizes, n.Or(0))
			}
		}
		if len(sizes) > 0 {
			sort.Float64s(sizes)
			c.PVSizesKW = sizes
		}
	}

	for catKey, rawCat := range raw.Categories {
		mergeCategory(&c, catKey, rawCat)
	}

	return c
}

func mergeCategory(c *Catalog, key string, raw RawCategory) {
	cat, ok := c.Categories[key]
	if !ok {
		cat = Category{Options: map[string]Option{}}
	} else {
		// Copy-on-write: never mutate the shared default tables.
		opts := make(map[string]Option, len(cat.Options))
		for k, v := range cat.Options {
			opts[k] = v
		}
		cat.Options = opts
	}
	if raw.Label != "" {
		cat.Label = raw.Label
	}
	for optKey, rawOpt := range raw.Options {
		cat.Options[optKey] = mergeOption(cat.Options[optKey], rawOpt)
	}
	c.Categories[key] = cat
}

func mergeOption(base Option, raw RawOption) Option {
	if raw.Label != "" {
		base.Label = raw.Label
	}
	base.MinutesPerUnit = money(raw.MinutesPerUnit.Or(base.MinutesPerUnit))

	if len(raw.Materials) > 0 {
		mats := make(map[string]Material, len(base.Materials)+len(raw.Materials))
		for k, v := range base.Materials {
			mats[k] = v
		}
		for k, rm := range raw.Materials {
			m := mats[k]
			if rm.Label != "" {
				m.Label = rm.Label
			}
			m.UnitCHF = money(rm.UnitCHF.Or(m.UnitCHF))
			mats[k] = m
		}
		base.Materials = mats
	}

	if len(raw.ContextAddons) > 0 {
		addons := make(map[string]Addon, len(base.ContextAddons)+len(raw.ContextAddons))
		for k, v := range base.ContextAddons {
			addons[k] = v
		}
		for k, ra := range raw.ContextAddons {
			a := addons[k]
			if ra.Label != "" {
				a.Label = ra.Label
			}
			a.ExtraMinutes = money(ra.ExtraMinutes.Or(a.ExtraMinutes))
			a.ExtraCHF = money(ra.ExtraCHF.Or(a.ExtraCHF))
			addons[k] = a
		}
		base.ContextAddons = addons
	}

	if len(raw.DistanceBandCHF) > 0 {
		bands := make(map[string]float64, len(base.DistanceBandCHF)+len(raw.DistanceBandCHF))
		for k, v := range base.DistanceBandCHF {
			bands[k] = v
		}
		for k, rn := range raw.DistanceBandCHF {
			bands[k] = money(rn.Or(bands[k]))
		}
		base.DistanceBandCHF = bands
	}

	return base
}

func money(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func pct(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
