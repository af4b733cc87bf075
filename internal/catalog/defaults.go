package catalog

// Category keys. The engine's schemas reference these; the option tables
// below are only defaults and stay fully editable through the admin config.
const (
	CategoryLighting       = "lighting"
	CategorySockets        = "sockets_switches"
	CategoryWallbox        = "wallbox"
	CategoryTelecom        = "telecom"
	CategoryCCTV           = "cctv"
	CategoryHomeAutomation = "home_automation"
	CategoryRepairs        = "repairs"
	CategoryOther          = "other"
)

// Default returns the builtin tariff catalog. Values reflect the company's
// standard price book; every one of them can be overridden by the raw config.
func Default() Catalog {
	return Catalog{
		Rates: Rates{
			HourlyWorkerCHF:     120,
			HourlyApprenticeCHF: 70,
		},
		Travel: TravelTariff{
			RatePerMinuteCHF:     1.80,
			CalloutFeeCHF:        80,
			DefaultOneWayMinutes: 20,
			AutoApplyCallout:     true,
		},
		Curve: Curve{
			MinKW:         8,
			PriceAtMinCHF: 2000,
			MaxKW:         200,
			PriceAtMaxCHF: 1000,
		},
		CurvePricingEnabled: true,
		SystemPricePerKWCHF: 1800,
		Incentives: Incentives{
			FederalCHFPerKW:   360,
			CantonalCHFPerKW:  180,
			MunicipalCHFPerKW: 10,
		},
		SelfConsumption: SelfConsumption{
			WithHeatPumpPct:    75,
			WithoutHeatPumpPct: 65,
		},
		EnergyPrices: EnergyPrices{
			BuyCHFPerKWh:    0.28,
			ExportCHFPerKWh: 0.05,
		},
		Environment: Environment{
			CO2GridKgPerKWh:     0.12,
			CO2PerTreeKgPerYear: 21,
		},
		VATPercent:                  8.1,
		MaintenancePricePerPanelCHF: 35,
		PVSizesKW:                   []float64{8, 10, 12, 16, 25, 33},
		Categories:                  defaultCategories(),
	}
}

func defaultCategories() map[string]Category {
	return map[string]Category{
		CategoryLighting: {
			Label: "Lighting",
			Options: map[string]Option{
				"wall":         lightingOption("Wall lamp", 45, 40, 90, 220, 15, 25),
				"ceiling":      lightingOption("Ceiling lamp", 50, 50, 110, 260, 15, 25),
				"floor":        lightingOption("Floor lamp", 30, 35, 80, 180, 10, 15),
				"led_strip":    lightingOption("LED strips", 60, 60, 120, 240, 20, 35),
				"track":        lightingOption("Track lighting", 75, 90, 160, 320, 20, 35),
				"outdoor_pole": lightingOption("Outdoor pole lights", 120, 180, 320, 520, 0, 0),
			},
		},
		CategorySockets: {
			Label: "Sockets / Switches",
			Options: map[string]Option{
				"schuko_socket": baseOption("Schuko socket", 35, 25),
				"switch":        baseOption("Switch", 30, 20),
				"dimmer":        baseOption("Light dimmer", 40, 55),
			},
		},
		CategoryWallbox: {
			Label: "Wallbox",
			Options: map[string]Option{
				"11": wallboxOption("Wallbox 11 kW", 180, 350, 900, 1400,
					map[string]float64{"0-5": 150, "5-10": 280, "10-25": 520, "25-50": 950}),
				"22": wallboxOption("Wallbox 22 kW", 210, 450, 1200, 1800,
					map[string]float64{"0-5": 180, "5-10": 320, "10-25": 600, "25-50": 1100}),
			},
		},
		CategoryTelecom: {
			Label: "Telephony / Internet",
			Options: map[string]Option{
				"rj45_socket":  baseOption("RJ45 data socket", 45, 30),
				"access_point": baseOption("Access point", 60, 180),
			},
		},
		CategoryCCTV: {
			Label: "CCTV / Security",
			Options: map[string]Option{
				"camera":         baseOption("Camera", 90, 220),
				"video_intercom": baseOption("Video intercom", 120, 480),
			},
		},
		CategoryHomeAutomation: {
			Label: "Home automation",
			Options: map[string]Option{
				"smart_relay": baseOption("Smart relay module", 45, 85),
				"hub":         baseOption("Automation hub", 60, 320),
			},
		},
		CategoryRepairs: {
			Label: "Repairs",
			Options: map[string]Option{
				"fault_finding": baseOption("Fault finding / short circuit", 90, 20),
				"line_repair":   baseOption("Line repair", 120, 60),
			},
		},
		CategoryOther: {
			Label: "Other",
			Options: map[string]Option{
				"custom": baseOption("Custom work", 60, 0),
			},
		},
	}
}

func baseOption(label string, minutes, materialCHF float64) Option {
	return Option{
		Label:          label,
		MinutesPerUnit: minutes,
		Materials: map[string]Material{
			"base": {UnitCHF: materialCHF},
		},
	}
}

func lightingOption(label string, minutes, simple, modern, design, outdoorMin, outdoorCHF float64) Option {
	return Option{
		Label:          label,
		MinutesPerUnit: minutes,
		Materials: map[string]Material{
			"simple": {Label: "Simple", UnitCHF: simple},
			"modern": {Label: "Modern", UnitCHF: modern},
			"design": {Label: "Design", UnitCHF: design},
		},
		ContextAddons: map[string]Addon{
			"indoor":  {Label: "Indoor"},
			"outdoor": {Label: "Outdoor", ExtraMinutes: outdoorMin, ExtraCHF: outdoorCHF},
		},
	}
}

func wallboxOption(label string, minutes, socket, standard, smart float64, bands map[string]float64) Option {
	return Option{
		Label:          label,
		MinutesPerUnit: minutes,
		Materials: map[string]Material{
			"socket":   {Label: "Simple socket", UnitCHF: socket},
			"standard": {Label: "Standard wallbox", UnitCHF: standard},
			"smart":    {Label: "Smart wallbox", UnitCHF: smart},
		},
		DistanceBandCHF: bands,
	}
}
