package catalog

// RawConfig is the wire shape of the editable tariff configuration. Every
// section and field is optional; absent pieces keep their builtin defaults.
// Numeric fields are Number so "12,5", "12.5" and 12.5 all work.
type RawConfig struct {
	Rates                       *RawRates              `json:"rates,omitempty" yaml:"rates,omitempty"`
	Travel                      *RawTravel             `json:"travel,omitempty" yaml:"travel,omitempty"`
	Curve                       *RawCurve              `json:"curve,omitempty" yaml:"curve,omitempty"`
	CurvePricingEnabled         *bool                  `json:"curvePricingEnabled,omitempty" yaml:"curvePricingEnabled,omitempty"`
	SystemPricePerKWCHF         Number                 `json:"systemPricePerKWCHF,omitempty" yaml:"systemPricePerKWCHF,omitempty"`
	Incentives                  *RawIncentives         `json:"incentives,omitempty" yaml:"incentives,omitempty"`
	SelfConsumption             *RawSelfConsumption    `json:"selfConsumption,omitempty" yaml:"selfConsumption,omitempty"`
	EnergyPrices                *RawEnergyPrices       `json:"energyPrices,omitempty" yaml:"energyPrices,omitempty"`
	Environment                 *RawEnvironment        `json:"environment,omitempty" yaml:"environment,omitempty"`
	VATPercent                  Number                 `json:"vatPercent,omitempty" yaml:"vatPercent,omitempty"`
	MaintenancePricePerPanelCHF Number                 `json:"maintenancePricePerPanelCHF,omitempty" yaml:"maintenancePricePerPanelCHF,omitempty"`
	PVSizesKW                   []Number               `json:"pvSizesKW,omitempty" yaml:"pvSizesKW,omitempty"`
	Categories                  map[string]RawCategory `json:"categories,omitempty" yaml:"categories,omitempty"`
}

type RawRates struct {
	HourlyWorkerCHF     Number `json:"hourlyWorkerCHF,omitempty" yaml:"hourlyWorkerCHF,omitempty"`
	HourlyApprenticeCHF Number `json:"hourlyApprenticeCHF,omitempty" yaml:"hourlyApprenticeCHF,omitempty"`
}

type RawTravel struct {
	RatePerMinuteCHF     Number `json:"ratePerMinuteCHF,omitempty" yaml:"ratePerMinuteCHF,omitempty"`
	CalloutFeeCHF        Number `json:"calloutFeeCHF,omitempty" yaml:"calloutFeeCHF,omitempty"`
	DefaultOneWayMinutes Number `json:"defaultOneWayMinutes,omitempty" yaml:"defaultOneWayMinutes,omitempty"`
	AutoApplyCallout     *bool  `json:"autoApplyCallout,omitempty" yaml:"autoApplyCallout,omitempty"`
}

type RawCurve struct {
	MinKW         Number `json:"minKW,omitempty" yaml:"minKW,omitempty"`
	PriceAtMinCHF Number `json:"priceAtMinCHF,omitempty" yaml:"priceAtMinCHF,omitempty"`
	MaxKW         Number `json:"maxKW,omitempty" yaml:"maxKW,omitempty"`
	PriceAtMaxCHF Number `json:"priceAtMaxCHF,omitempty" yaml:"priceAtMaxCHF,omitempty"`
}

type RawIncentives struct {
	FederalCHFPerKW   Number `json:"federalCHFPerKW,omitempty" yaml:"federalCHFPerKW,omitempty"`
	CantonalCHFPerKW  Number `json:"cantonalCHFPerKW,omitempty" yaml:"cantonalCHFPerKW,omitempty"`
	MunicipalCHFPerKW Number `json:"municipalCHFPerKW,omitempty" yaml:"municipalCHFPerKW,omitempty"`
}

type RawSelfConsumption struct {
	WithHeatPumpPct    Number `json:"withHeatPumpPct,omitempty" yaml:"withHeatPumpPct,omitempty"`
	WithoutHeatPumpPct Number `json:"withoutHeatPumpPct,omitempty" yaml:"withoutHeatPumpPct,omitempty"`
}

type RawEnergyPrices struct {
	BuyCHFPerKWh    Number `json:"buyCHFPerKWh,omitempty" yaml:"buyCHFPerKWh,omitempty"`
	ExportCHFPerKWh Number `json:"exportCHFPerKWh,omitempty" yaml:"exportCHFPerKWh,omitempty"`
}

type RawEnvironment struct {
	CO2GridKgPerKWh     Number `json:"co2GridKgPerKWh,omitempty" yaml:"co2GridKgPerKWh,omitempty"`
	CO2PerTreeKgPerYear Number `json:"co2PerTreeKgPerYear,omitempty" yaml:"co2PerTreeKgPerYear,omitempty"`
}

type RawCategory struct {
	Label   string               `json:"label,omitempty" yaml:"label,omitempty"`
	Options map[string]RawOption `json:"options,omitempty" yaml:"options,omitempty"`
}

type RawOption struct {
	Label           string                 `json:"label,omitempty" yaml:"label,omitempty"`
	MinutesPerUnit  Number                 `json:"minutesPerUnit,omitempty" yaml:"minutesPerUnit,omitempty"`
	Materials       map[string]RawMaterial `json:"materials,omitempty" yaml:"materials,omitempty"`
	ContextAddons   map[string]RawAddon    `json:"contextAddons,omitempty" yaml:"contextAddons,omitempty"`
	DistanceBandCHF map[string]Number      `json:"distanceBandCHF,omitempty" yaml:"distanceBandCHF,omitempty"`
}

type RawMaterial struct {
	Label   string `json:"label,omitempty" yaml:"label,omitempty"`
	UnitCHF Number `json:"unitCHF,omitempty" yaml:"unitCHF,omitempty"`
}

type RawAddon struct {
	Label        string `json:"label,omitempty" yaml:"label,omitempty"`
	ExtraMinutes Number `json:"extraMinutes,omitempty" yaml:"extraMinutes,omitempty"`
	ExtraCHF     Number `json:"extraCHF,omitempty" yaml:"extraCHF,omitempty"`
}
