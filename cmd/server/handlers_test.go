package main

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"fieldquote/internal/engine"
	"fieldquote/internal/store"
)

func newTestServer(t *testing.T) *server {
	t.Helper()

	database, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}

	_, err = database.Exec(`
		CREATE TABLE offers (
			ref TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'draft',
			created_at DATETIME NOT NULL,
			customer_name TEXT NOT NULL DEFAULT '',
			notes TEXT,
			customer_json TEXT NOT NULL,
			items_json TEXT NOT NULL,
			travel_json TEXT NOT NULL,
			totals_json TEXT NOT NULL,
			economics_json TEXT,
			catalog_json TEXT NOT NULL
		);
		CREATE TABLE catalog_config (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			raw_json TEXT NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		t.Fatalf("failed creating schema: %v", err)
	}

	t.Cleanup(func() {
		_ = database.Close()
	})

	return &server{store: store.New(database), log: zap.NewNop()}
}

func doJSON(t *testing.T, srv *server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response body: %v\nbody: %s", err, rec.Body.String())
	}
}

func TestQuoteItemEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/quote/item", `{
		"category": "lighting",
		"answers": {"kind": "wall", "environment": "outdoor", "style": "modern"},
		"qty": 2
	}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var item engine.LineItem
	decodeBody(t, rec, &item)
	if item.NetPerUnit != 235 || item.Subtotal != 470 {
		t.Fatalf("unexpected pricing: %+v", item)
	}

	rec = doJSON(t, srv, http.MethodPost, "/api/quote/item", `{
		"category": "lighting",
		"answers": {"kind": "wall"}
	}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("incomplete item: status = %d, want 422", rec.Code)
	}
}

func TestQuoteTravelEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/quote/travel", `{"mode": "metered"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var q engine.TravelQuote
	decodeBody(t, rec, &q)
	if q.TravelCHF != 72 || q.CalloutCHF != 80 {
		t.Fatalf("unexpected travel quote: %+v", q)
	}

	rec = doJSON(t, srv, http.MethodPost, "/api/quote/travel", `{"mode": "teleport"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad mode: status = %d, want 400", rec.Code)
	}
}

func TestQuoteInstallationEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/quote/installation", `{"annualKWh": 14000}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp installationQuoteResponse
	decodeBody(t, rec, &resp)
	want := []float64{12, 16, 25}
	if len(resp.SuggestedKW) != 3 {
		t.Fatalf("suggestedKW = %v", resp.SuggestedKW)
	}
	for i, kw := range want {
		if resp.SuggestedKW[i] != kw {
			t.Fatalf("suggestedKW = %v, want %v", resp.SuggestedKW, want)
		}
	}
	if len(resp.Proposals) != 3 || resp.Proposals[1].KW != 16 {
		t.Fatalf("unexpected proposals: %+v", resp.Proposals)
	}

	rec = doJSON(t, srv, http.MethodPost, "/api/quote/installation", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty sizing request: status = %d, want 400", rec.Code)
	}
}

func TestQuoteInstallationFromAnnualCost(t *testing.T) {
	srv := newTestServer(t)

	// A 3'000 CHF bill at 0.28/kWh is ~10'714 kWh, which sizes around 10 kWp.
	rec := doJSON(t, srv, http.MethodPost, "/api/quote/installation", `{"annualCostCHF": 3000}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp installationQuoteResponse
	decodeBody(t, rec, &resp)
	want := []float64{8, 10, 12}
	if len(resp.SuggestedKW) != len(want) {
		t.Fatalf("suggestedKW = %v, want %v", resp.SuggestedKW, want)
	}
	for i, kw := range want {
		if resp.SuggestedKW[i] != kw {
			t.Fatalf("suggestedKW = %v, want %v", resp.SuggestedKW, want)
		}
	}
	if len(resp.Proposals) != 3 || resp.Proposals[0].CO2SavedKg != 8*1000*0.12 {
		t.Fatalf("unexpected proposals: %+v", resp.Proposals)
	}
}

func TestQuoteMaintenanceEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/quote/maintenance", `{"panels": 24}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp maintenanceQuoteResponse
	decodeBody(t, rec, &resp)
	if resp.Item.Subtotal != 840 {
		t.Fatalf("item subtotal = %v, want 840", resp.Item.Subtotal)
	}
	if resp.Totals.Subtotal != 840 {
		t.Fatalf("totals subtotal = %v, want 840", resp.Totals.Subtotal)
	}
}

func TestAdminCatalogRoundTrip(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/admin/catalog", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "{}" {
		t.Fatalf("fresh raw config = %q, want empty document", rec.Body.String())
	}

	rec = doJSON(t, srv, http.MethodPut, "/api/admin/catalog", `{"vatPercent": "7,7"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resolved struct {
		VATPercent float64 `json:"vatPercent"`
	}
	rec = doJSON(t, srv, http.MethodGet, "/api/catalog", "")
	decodeBody(t, rec, &resolved)
	if resolved.VATPercent != 7.7 {
		t.Fatalf("resolved vatPercent = %v, want 7.7", resolved.VATPercent)
	}

	rec = doJSON(t, srv, http.MethodPut, "/api/admin/catalog", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("malformed config: status = %d, want 400", rec.Code)
	}
}

func TestOfferLifecycle(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/offers", `{
		"type": "service",
		"customer": {"name": "Meier AG"},
		"notes": "after the site visit",
		"items": [
			{"category": "sockets_switches", "answers": {"kind": "schuko_socket"}, "qty": 3}
		],
		"travel": {"mode": "metered", "roundTripMinutes": 60}
	}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, body %s", rec.Code, rec.Body.String())
	}

	var created struct {
		Ref    string `json:"ref"`
		Totals engine.OfferTotals
	}
	decodeBody(t, rec, &created)
	if created.Ref == "" {
		t.Fatal("created offer has no ref")
	}
	// 3 sockets (95/unit) + 60 min travel (108) + callout 80.
	if created.Totals.Subtotal != 473 {
		t.Fatalf("subtotal = %v, want 473", created.Totals.Subtotal)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/offers?q=Meier", "")
	var list []store.OfferSummary
	decodeBody(t, rec, &list)
	if len(list) != 1 || list[0].Ref != created.Ref {
		t.Fatalf("unexpected list: %+v", list)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/offers/"+created.Ref, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get: status = %d", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodDelete, "/api/offers/"+created.Ref, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: status = %d", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/offers/"+created.Ref, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete: status = %d, want 404", rec.Code)
	}
}

func TestOfferCreateInstall(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/offers", `{
		"type": "install",
		"customer": {"name": "Huber Elektro"},
		"installation": {"kw": 10, "heatPump": true}
	}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var created struct {
		Totals    engine.OfferTotals
		Economics *engine.EconomicsBreakdown `json:"economics"`
	}
	decodeBody(t, rec, &created)
	if created.Economics == nil {
		t.Fatal("install offer must carry an economics breakdown")
	}
	if created.Totals.Incentives != created.Economics.IncentivesTotal {
		t.Fatalf("totals incentives %v != economics incentives %v",
			created.Totals.Incentives, created.Economics.IncentivesTotal)
	}

	rec = doJSON(t, srv, http.MethodPost, "/api/offers", `{"type": "install", "customer": {"name": "X"}}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing kw: status = %d, want 400", rec.Code)
	}
}

func TestOfferCreateRejectsUnknownType(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/offers", `{"type": "renovation"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodPost, "/api/offers", `{
		"type": "service",
		"items": [{"category": "lighting", "answers": {"kind": "wall"}}]
	}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("incomplete item: status = %d, want 422", rec.Code)
	}
}
