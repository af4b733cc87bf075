// Package offer defines the persisted offer value object. An offer is a
// priced, self-contained document: it embeds the line items, the totals and
// the catalog snapshot it was computed from, so reopening it never re-prices
// against a newer tariff.
package offer

import (
	"crypto/rand"
	"fmt"
	"time"

	"fieldquote/internal/catalog"
	"fieldquote/internal/engine"
)

// Type discriminates the three offer kinds.
type Type string

const (
	TypeService     Type = "service"
	TypeInstall     Type = "install"
	TypeMaintenance Type = "maintenance"
)

// ValidType reports whether t is one of the known offer kinds.
func ValidType(t Type) bool {
	switch t {
	case TypeService, TypeInstall, TypeMaintenance:
		return true
	}
	return false
}

// Status tracks an offer through its lifecycle.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusSent     Status = "sent"
	StatusAccepted Status = "accepted"
	StatusDeclined Status = "declined"
)

// Customer is the recipient of an offer.
type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// Offer is one archived quote.
type Offer struct {
	Ref       string                     `json:"ref"`
	Type      Type                       `json:"type"`
	Status    Status                     `json:"status"`
	CreatedAt time.Time                  `json:"createdAt"`
	Customer  Customer                   `json:"customer"`
	Items     []engine.LineItem          `json:"items"`
	Travel    engine.TravelQuote         `json:"travel"`
	Totals    engine.OfferTotals         `json:"totals"`
	Economics *engine.EconomicsBreakdown `json:"economics,omitempty"`
	Notes     string                     `json:"notes,omitempty"`
	Catalog   catalog.Catalog            `json:"catalog"`
}

const refAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewRef builds an offer reference: PREFIX-YYYYMMDD-XXXXXX with a random
// six-character suffix. The alphabet skips lookalike characters since refs
// get read out over the phone.
func NewRef(prefix string, now time.Time) string {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; fall back to a
		// timestamp suffix rather than panicking in a request path.
		return fmt.Sprintf("%s-%s-%06d", prefix, now.Format("20060102"), now.UnixNano()%1000000)
	}
	for i, b := range buf {
		buf[i] = refAlphabet[int(b)%len(refAlphabet)]
	}
	return fmt.Sprintf("%s-%s-%s", prefix, now.Format("20060102"), buf)
}
