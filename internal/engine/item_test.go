package engine

import (
	"math"
	"reflect"
	"testing"

	"fieldquote/internal/catalog"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func defaultCat(t *testing.T) *catalog.Catalog {
	t.Helper()
	c := catalog.Default()
	return &c
}

func TestPriceLineItem_LightingAddsContextAddonAndTier(t *testing.T) {
	cat := defaultCat(t)

	item, ok := PriceLineItem(cat, Request{
		Category: catalog.CategoryLighting,
		Answers: Answers{
			"kind":        "wall",
			"environment": "outdoor",
			"style":       "modern",
		},
		Qty: 2,
	})
	if !ok {
		t.Fatal("expected a line item for a fully answered lighting request")
	}

	// Every dimension resolves its catalog label, the context one included.
	if item.Description != "Lighting · Wall lamp · Outdoor · Modern" {
		t.Fatalf("unexpected description: %q", item.Description)
	}

	// wall: 45 min + 15 outdoor; modern 90 CHF + 25 outdoor; hourly 120.
	nearlyEqual(t, "minutesPerUnit", item.MinutesPerUnit, 60)
	nearlyEqual(t, "laborPerUnit", item.LaborPerUnit, 120)
	nearlyEqual(t, "materialPerUnit", item.MaterialPerUnit, 115)
	nearlyEqual(t, "netPerUnit", item.NetPerUnit, 235)
	nearlyEqual(t, "subtotal", item.Subtotal, 470)
}

func TestPriceLineItem_WallboxAxesAreAdditive(t *testing.T) {
	cat := defaultCat(t)

	item, ok := PriceLineItem(cat, Request{
		Category: catalog.CategoryWallbox,
		Answers: Answers{
			"power":      "11",
			"connection": "standard",
			"distance":   "10-25",
		},
		Qty: 1,
	})
	if !ok {
		t.Fatal("expected a line item for a fully answered wallbox request")
	}

	// 11 kW: 180 min, standard 900 CHF, band 10-25 adds 520 CHF.
	nearlyEqual(t, "materialPerUnit", item.MaterialPerUnit, 1420)
	nearlyEqual(t, "laborPerUnit", item.LaborPerUnit, 360)
	nearlyEqual(t, "subtotal", item.Subtotal, 1780)
}

func TestPriceLineItem_QuantityClampAndMonotonicity(t *testing.T) {
	cat := defaultCat(t)
	req := Request{
		Category: catalog.CategorySockets,
		Answers:  Answers{"kind": "schuko_socket"},
	}

	base, ok := PriceLineItem(cat, req)
	if !ok {
		t.Fatal("expected a line item")
	}
	if base.Qty != 1 {
		t.Fatalf("zero quantity should clamp to 1, got %v", base.Qty)
	}

	for _, n := range []float64{1, 2, 3, 7, 50} {
		req.Qty = n
		item, ok := PriceLineItem(cat, req)
		if !ok {
			t.Fatalf("qty=%v: expected a line item", n)
		}
		nearlyEqual(t, "subtotal scaling", item.Subtotal, n*base.Subtotal)
	}
}

func TestPriceLineItem_IncompleteOrUnknownYieldsNoItem(t *testing.T) {
	cat := defaultCat(t)

	tests := []struct {
		name string
		req  Request
	}{
		{"unknown category", Request{Category: "plumbing", Answers: Answers{"kind": "x"}}},
		{"missing primary", Request{Category: catalog.CategorySockets, Answers: Answers{}}},
		{"missing tier", Request{Category: catalog.CategoryLighting, Answers: Answers{"kind": "wall", "environment": "indoor"}}},
		{"missing distance", Request{Category: catalog.CategoryWallbox, Answers: Answers{"power": "11", "connection": "smart"}}},
		{"blank free text", Request{Category: catalog.CategoryOther, Answers: Answers{"description": "   "}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := PriceLineItem(cat, tt.req); ok {
				t.Fatalf("expected no line item for %s", tt.name)
			}
		})
	}
}

func TestPriceLineItem_UnansweredCatalogEntriesPriceAsZero(t *testing.T) {
	cat := defaultCat(t)

	// A complete answer set over option keys the (user-edited) catalog does
	// not know must surface a zero-valued item, never an error.
	item, ok := PriceLineItem(cat, Request{
		Category: catalog.CategoryLighting,
		Answers: Answers{
			"kind":        "chandelier",
			"environment": "indoor",
			"style":       "baroque",
		},
		Qty: 3,
	})
	if !ok {
		t.Fatal("expected a zero-valued line item, not a refusal")
	}
	nearlyEqual(t, "netPerUnit", item.NetPerUnit, 0)
	nearlyEqual(t, "subtotal", item.Subtotal, 0)
}

func TestPriceLineItem_OtherUsesTrimmedFreeText(t *testing.T) {
	cat := defaultCat(t)

	item, ok := PriceLineItem(cat, Request{
		Category: catalog.CategoryOther,
		Answers:  Answers{"description": "  replace fuse box cover  "},
		Qty:      1,
	})
	if !ok {
		t.Fatal("expected a line item")
	}
	if item.Description != "Other · replace fuse box cover" {
		t.Fatalf("unexpected description: %q", item.Description)
	}
	// "other" bills the configured custom minutes with no material.
	nearlyEqual(t, "laborPerUnit", item.LaborPerUnit, 120)
	nearlyEqual(t, "materialPerUnit", item.MaterialPerUnit, 0)
}

func TestPriceLineItem_IsPure(t *testing.T) {
	cat := defaultCat(t)
	req := Request{
		Category: catalog.CategoryWallbox,
		Answers:  Answers{"power": "22", "connection": "smart", "distance": "25-50"},
		Qty:      2,
	}

	first, ok1 := PriceLineItem(cat, req)
	second, ok2 := PriceLineItem(cat, req)
	if !ok1 || !ok2 {
		t.Fatal("expected line items")
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical inputs produced different items: %+v vs %+v", first, second)
	}
}

func TestMaintenanceLineItem(t *testing.T) {
	cat := defaultCat(t)

	item := MaintenanceLineItem(24, cat)
	nearlyEqual(t, "netPerUnit", item.NetPerUnit, 35)
	nearlyEqual(t, "subtotal", item.Subtotal, 840)

	clamped := MaintenanceLineItem(-3, cat)
	nearlyEqual(t, "negative panels subtotal", clamped.Subtotal, 0)
}
