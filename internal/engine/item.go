// Package engine implements the quote computation: line item pricing,
// travel and call-out policy, installation economics and offer totals.
//
// Every function here is pure. Callers resolve a catalog snapshot once per
// quote session and pass it in; identical inputs always produce identical
// output, and nothing is retained between calls.
package engine

import (
	"fmt"
	"strings"

	"fieldquote/internal/catalog"
)

// Answers is the flat key->value map collected by the interview for one
// category. Values are option keys, numbers-as-strings, or free text.
type Answers map[string]string

// Request describes one discrete work item to price.
type Request struct {
	Category string  `json:"category"`
	Answers  Answers `json:"answers"`
	Qty      float64 `json:"qty"`
}

// LineItem is one priced, quantified unit of requested work. It is a
// snapshot, never mutated after construction: catalog values may change
// between quote sessions and a saved line item must not move with them.
type LineItem struct {
	Description     string  `json:"description"`
	Qty             float64 `json:"qty"`
	MinutesPerUnit  float64 `json:"minutesPerUnit"`
	MaterialPerUnit float64 `json:"materialPerUnit"`
	LaborPerUnit    float64 `json:"laborPerUnit"`
	NetPerUnit      float64 `json:"netPerUnit"`
	Subtotal        float64 `json:"subtotal"`
}

// categorySchema declares how the answers of one category map onto the
// catalog tables: which answer selects the option entry, which selects a
// material tier, a context add-on or a distance band, and the order the
// resolved labels are joined into the description.
type categorySchema struct {
	label     string
	primary   string // answer key selecting the catalog option
	tier      string // answer key selecting a material tier ("" -> "base")
	context   string // answer key selecting a context add-on
	distance  string // answer key selecting a distance band
	text      string // answer key carrying free text instead of an option
	descOrder []string
}

// The interview structure is fixed; only the prices behind it are editable.
var categorySchemas = map[string]categorySchema{
	catalog.CategoryLighting: {
		label:     "Lighting",
		primary:   "kind",
		context:   "environment",
		tier:      "style",
		descOrder: []string{"kind", "environment", "style"},
	},
	catalog.CategorySockets: {
		label:     "Sockets/Switches",
		primary:   "kind",
		descOrder: []string{"kind"},
	},
	catalog.CategoryWallbox: {
		label:     "Wallbox",
		primary:   "power",
		tier:      "connection",
		distance:  "distance",
		descOrder: []string{"power", "connection", "distance"},
	},
	catalog.CategoryTelecom: {
		label:     "Telephony/Internet",
		primary:   "kind",
		descOrder: []string{"kind"},
	},
	catalog.CategoryCCTV: {
		label:     "CCTV",
		primary:   "kind",
		descOrder: []string{"kind"},
	},
	catalog.CategoryHomeAutomation: {
		label:     "Home automation",
		primary:   "kind",
		descOrder: []string{"kind"},
	},
	catalog.CategoryRepairs: {
		label:     "Repairs",
		primary:   "kind",
		descOrder: []string{"kind"},
	},
	catalog.CategoryOther: {
		label: "Other",
		text:  "description",
	},
}

// PriceLineItem prices one discrete work request against the catalog.
//
// It returns ok=false for an unknown category or when a required dimension
// has not been answered; callers gate "add to quote" on completeness, so no
// partial line items ever exist. A fully answered request over catalog
// entries that happen to be missing prices as zero instead of failing.
func PriceLineItem(cat *catalog.Catalog, req Request) (LineItem, bool) {
	schema, ok := categorySchemas[req.Category]
	if !ok {
		return LineItem{}, false
	}

	for _, key := range schema.required() {
		if strings.TrimSpace(req.Answers[key]) == "" {
			return LineItem{}, false
		}
	}

	optionKey := "custom"
	if schema.primary != "" {
		optionKey = req.Answers[schema.primary]
	}
	opt := cat.Option(req.Category, optionKey)

	minutes := opt.MinutesPerUnit
	material := 0.0

	tierKey := "base"
	if schema.tier != "" {
		tierKey = req.Answers[schema.tier]
	}
	material += opt.Materials[tierKey].UnitCHF

	if schema.context != "" {
		addon := opt.ContextAddons[req.Answers[schema.context]]
		minutes += addon.ExtraMinutes
		material += addon.ExtraCHF
	}
	if schema.distance != "" {
		// Distance surcharge is an independent additive axis, not an
		// alternative to the tier material.
		material += opt.DistanceBandCHF[req.Answers[schema.distance]]
	}

	qty := req.Qty
	if qty < 1 {
		qty = 1
	}

	labor := (minutes / 60) * cat.Rates.HourlyWorkerCHF
	net := labor + material

	return LineItem{
		Description:     schema.describe(cat, req, opt),
		Qty:             qty,
		MinutesPerUnit:  minutes,
		MaterialPerUnit: material,
		LaborPerUnit:    labor,
		NetPerUnit:      net,
		Subtotal:        net * qty,
	}, true
}

// MaintenanceLineItem prices a panel cleaning/maintenance job: a flat
// per-panel rate from the catalog. Negative panel counts clamp to zero.
func MaintenanceLineItem(panels float64, cat *catalog.Catalog) LineItem {
	if panels < 0 {
		panels = 0
	}
	price := cat.MaintenancePricePerPanelCHF
	return LineItem{
		Description: "PV panel maintenance / cleaning",
		Qty:         panels,
		NetPerUnit:  price,
		Subtotal:    price * panels,
	}
}

func (s categorySchema) required() []string {
	keys := make([]string, 0, 5)
	for _, k := range []string{s.primary, s.tier, s.context, s.distance, s.text} {
		if k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

func (s categorySchema) describe(cat *catalog.Catalog, req Request, opt catalog.Option) string {
	if s.text != "" {
		if txt := strings.TrimSpace(req.Answers[s.text]); txt != "" {
			return fmt.Sprintf("%s · %s", s.label, txt)
		}
		if opt.Label != "" {
			return fmt.Sprintf("%s · %s", s.label, opt.Label)
		}
		return s.label
	}

	parts := []string{s.label}
	for _, key := range s.descOrder {
		answer := req.Answers[key]
		switch key {
		case s.primary:
			if opt.Label != "" {
				parts = append(parts, opt.Label)
			} else {
				parts = append(parts, answer)
			}
		case s.tier:
			if m, ok := opt.Materials[answer]; ok && m.Label != "" {
				parts = append(parts, m.Label)
			} else {
				parts = append(parts, answer)
			}
		case s.context:
			if a, ok := opt.ContextAddons[answer]; ok && a.Label != "" {
				parts = append(parts, a.Label)
			} else {
				parts = append(parts, answer)
			}
		case s.distance:
			parts = append(parts, answer+" m")
		default:
			parts = append(parts, answer)
		}
	}
	return strings.Join(parts, " · ")
}
