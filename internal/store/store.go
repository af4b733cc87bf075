// Package store persists offers and the editable raw tariff configuration
// in SQLite. Offers are stored as JSON documents keyed by reference; the raw
// catalog lives in a singleton row and is resolved against defaults on read.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"fieldquote/internal/engine"
	"fieldquote/internal/offer"
)

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.New("not found")

// Store wraps the application database.
type Store struct {
	db *sql.DB
}

// New builds a Store on an open database.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// OfferSummary is the list view of an archived offer.
type OfferSummary struct {
	Ref          string  `json:"ref"`
	Type         string  `json:"type"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"createdAt"`
	CustomerName string  `json:"customerName"`
	Total        float64 `json:"total"`
}

// SaveOffer inserts or replaces an offer by reference.
func (s *Store) SaveOffer(o offer.Offer) error {
	customer, err := json.Marshal(o.Customer)
	if err != nil {
		return fmt.Errorf("marshal offer customer: %w", err)
	}
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("marshal offer items: %w", err)
	}
	travel, err := json.Marshal(o.Travel)
	if err != nil {
		return fmt.Errorf("marshal offer travel: %w", err)
	}
	totals, err := json.Marshal(o.Totals)
	if err != nil {
		return fmt.Errorf("marshal offer totals: %w", err)
	}
	cat, err := json.Marshal(o.Catalog)
	if err != nil {
		return fmt.Errorf("marshal offer catalog: %w", err)
	}

	var economics any
	if o.Economics != nil {
		b, err := json.Marshal(o.Economics)
		if err != nil {
			return fmt.Errorf("marshal offer economics: %w", err)
		}
		economics = string(b)
	}

	_, err = s.db.Exec(`
		INSERT INTO offers (
			ref, type, status, created_at, customer_name, notes,
			customer_json, items_json, travel_json, totals_json, economics_json, catalog_json
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(ref) DO UPDATE SET
			type = excluded.type,
			status = excluded.status,
			customer_name = excluded.customer_name,
			notes = excluded.notes,
			customer_json = excluded.customer_json,
			items_json = excluded.items_json,
			travel_json = excluded.travel_json,
			totals_json = excluded.totals_json,
			economics_json = excluded.economics_json,
			catalog_json = excluded.catalog_json
	`, o.Ref, string(o.Type), string(o.Status), o.CreatedAt.UTC(), o.Customer.Name, o.Notes,
		string(customer), string(items), string(travel), string(totals), economics, string(cat))
	if err != nil {
		return fmt.Errorf("save offer %s: %w", o.Ref, err)
	}
	return nil
}

// GetOffer loads one offer by reference.
func (s *Store) GetOffer(ref string) (offer.Offer, error) {
	var (
		o             offer.Offer
		typ, status   string
		notes         sql.NullString
		customerJSON  string
		itemsJSON     string
		travelJSON    string
		totalsJSON    string
		economicsJSON sql.NullString
		catalogJSON   string
	)
	err := s.db.QueryRow(`
		SELECT ref, type, status, created_at, COALESCE(notes, ''),
		       customer_json, items_json, travel_json, totals_json, economics_json, catalog_json
		FROM offers
		WHERE ref = ?
	`, ref).Scan(&o.Ref, &typ, &status, &o.CreatedAt, &notes,
		&customerJSON, &itemsJSON, &travelJSON, &totalsJSON, &economicsJSON, &catalogJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return offer.Offer{}, ErrNotFound
		}
		return offer.Offer{}, fmt.Errorf("query offer %s: %w", ref, err)
	}

	o.Type = offer.Type(typ)
	o.Status = offer.Status(status)
	o.Notes = notes.String
	if err := json.Unmarshal([]byte(customerJSON), &o.Customer); err != nil {
		return offer.Offer{}, fmt.Errorf("decode offer customer: %w", err)
	}
	if err := json.Unmarshal([]byte(itemsJSON), &o.Items); err != nil {
		return offer.Offer{}, fmt.Errorf("decode offer items: %w", err)
	}
	if err := json.Unmarshal([]byte(travelJSON), &o.Travel); err != nil {
		return offer.Offer{}, fmt.Errorf("decode offer travel: %w", err)
	}
	if err := json.Unmarshal([]byte(totalsJSON), &o.Totals); err != nil {
		return offer.Offer{}, fmt.Errorf("decode offer totals: %w", err)
	}
	if economicsJSON.Valid {
		var eco engine.EconomicsBreakdown
		if err := json.Unmarshal([]byte(economicsJSON.String), &eco); err != nil {
			return offer.Offer{}, fmt.Errorf("decode offer economics: %w", err)
		}
		o.Economics = &eco
	}
	if err := json.Unmarshal([]byte(catalogJSON), &o.Catalog); err != nil {
		return offer.Offer{}, fmt.Errorf("decode offer catalog: %w", err)
	}
	return o, nil
}

// ListOffers returns summaries newest first, optionally filtered by a
// substring over the customer name and the notes.
func (s *Store) ListOffers(query string) ([]OfferSummary, error) {
	search := "%" + query + "%"
	rows, err := s.db.Query(`
		SELECT ref, type, status, created_at, customer_name, totals_json
		FROM offers
		WHERE (? = '' OR customer_name LIKE ? OR COALESCE(notes, '') LIKE ?)
		ORDER BY datetime(created_at) DESC, ref DESC
	`, query, search, search)
	if err != nil {
		return nil, fmt.Errorf("query offers: %w", err)
	}
	defer rows.Close()

	offers := make([]OfferSummary, 0)
	for rows.Next() {
		var item OfferSummary
		var totalsJSON string
		if err := rows.Scan(&item.Ref, &item.Type, &item.Status, &item.CreatedAt, &item.CustomerName, &totalsJSON); err != nil {
			return nil, fmt.Errorf("scan offer summary: %w", err)
		}
		item.Total = extractTotal(totalsJSON)
		offers = append(offers, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate offers: %w", err)
	}
	return offers, nil
}

func extractTotal(totalsJSON string) float64 {
	var totals engine.OfferTotals
	if err := json.Unmarshal([]byte(totalsJSON), &totals); err != nil {
		return 0
	}
	return totals.Total
}

// DeleteOffer removes one offer by reference.
func (s *Store) DeleteOffer(ref string) error {
	result, err := s.db.Exec(`DELETE FROM offers WHERE ref = ?`, ref)
	if err != nil {
		return fmt.Errorf("delete offer %s: %w", ref, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete offer %s: %w", ref, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetRawCatalog returns the stored raw tariff configuration document.
func (s *Store) GetRawCatalog() ([]byte, error) {
	var raw string
	err := s.db.QueryRow(`SELECT raw_json FROM catalog_config WHERE id = 1`).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query catalog config: %w", err)
	}
	return []byte(raw), nil
}

// UpdateRawCatalog replaces the stored raw tariff configuration.
func (s *Store) UpdateRawCatalog(raw []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO catalog_config (id, raw_json, updated_at)
		VALUES (1, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			raw_json = excluded.raw_json,
			updated_at = CURRENT_TIMESTAMP
	`, string(raw))
	if err != nil {
		return fmt.Errorf("update catalog config: %w", err)
	}
	return nil
}
