package engine

import (
	"reflect"
	"testing"
)

func TestAggregate_DiscountThenVAT(t *testing.T) {
	got := Aggregate(AggregateInput{
		Items: []LineItem{
			{Qty: 2, NetPerUnit: 100, Subtotal: 200},
			{Qty: 1, NetPerUnit: 50, Subtotal: 50},
		},
		DiscountPct: 5,
		VATPercent:  10,
	})

	nearlyEqual(t, "itemsSubtotal", got.ItemsSubtotal, 250)
	nearlyEqual(t, "subtotal", got.Subtotal, 250)
	nearlyEqual(t, "discount", got.Discount, 12.5)
	nearlyEqual(t, "vat", got.VAT, 23.75)
	nearlyEqual(t, "total", got.Total, 261.25)
}

func TestAggregate_EmptyOfferIsAllZero(t *testing.T) {
	got := Aggregate(AggregateInput{DiscountPct: 5, VATPercent: 8.1})

	nearlyEqual(t, "subtotal", got.Subtotal, 0)
	nearlyEqual(t, "discount", got.Discount, 0)
	nearlyEqual(t, "vat", got.VAT, 0)
	nearlyEqual(t, "total", got.Total, 0)
}

func TestAggregate_TravelAndCalloutJoinTheSubtotal(t *testing.T) {
	got := Aggregate(AggregateInput{
		Items:      []LineItem{{Qty: 1, NetPerUnit: 100, Subtotal: 100}},
		Travel:     TravelQuote{TravelCHF: 72, CalloutCHF: 80},
		VATPercent: 10,
	})

	nearlyEqual(t, "itemsSubtotal", got.ItemsSubtotal, 100)
	nearlyEqual(t, "travel", got.Travel, 72)
	nearlyEqual(t, "callout", got.Callout, 80)
	nearlyEqual(t, "subtotal", got.Subtotal, 252)
	nearlyEqual(t, "vat", got.VAT, 25.2)
	nearlyEqual(t, "total", got.Total, 277.2)
}

func TestAggregate_NoDiscountMeansExactVATOnSubtotal(t *testing.T) {
	got := Aggregate(AggregateInput{
		Items:      []LineItem{{Subtotal: 1000}},
		VATPercent: 8.1,
	})

	if got.VAT != 1000*8.1/100 {
		t.Fatalf("vat = %v, want exact %v", got.VAT, 1000*8.1/100)
	}
	if got.NetBeforeIncentives != 1000+got.VAT {
		t.Fatalf("netBeforeIncentives = %v, want %v", got.NetBeforeIncentives, 1000+got.VAT)
	}
}

func TestAggregate_IncentivesFloorAtZero(t *testing.T) {
	got := Aggregate(AggregateInput{
		Items:         []LineItem{{Subtotal: 500}},
		IncentivesCHF: 800,
	})

	nearlyEqual(t, "netBeforeIncentives", got.NetBeforeIncentives, 500)
	nearlyEqual(t, "incentives", got.Incentives, 800)
	nearlyEqual(t, "total", got.Total, 0)
}

func TestAggregate_IsDeterministic(t *testing.T) {
	in := AggregateInput{
		Items: []LineItem{
			{Subtotal: 123.45},
			{Subtotal: 678.9},
		},
		Travel:        TravelQuote{TravelCHF: 36, CalloutCHF: 80},
		DiscountPct:   7.5,
		VATPercent:    8.1,
		IncentivesCHF: 50,
	}

	first := Aggregate(in)
	second := Aggregate(in)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical inputs produced different totals: %+v vs %+v", first, second)
	}
}
