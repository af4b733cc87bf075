package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"fieldquote/internal/catalog"
	"fieldquote/internal/engine"
	"fieldquote/internal/offer"
	"fieldquote/internal/store"
)

const offerRefPrefix = "OF"

type server struct {
	store *store.Store
	log   *zap.Logger
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", s.handleCatalog)
		r.Get("/admin/catalog", s.handleAdminCatalogGet)
		r.Put("/admin/catalog", s.handleAdminCatalogPut)

		r.Post("/quote/item", s.handleQuoteItem)
		r.Post("/quote/travel", s.handleQuoteTravel)
		r.Post("/quote/installation", s.handleQuoteInstallation)
		r.Post("/quote/maintenance", s.handleQuoteMaintenance)

		r.Post("/offers", s.handleOfferCreate)
		r.Get("/offers", s.handleOffersList)
		r.Get("/offers/{ref}", s.handleOfferGet)
		r.Delete("/offers/{ref}", s.handleOfferDelete)
	})

	return r
}

func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// resolveCatalog loads the stored raw configuration and resolves it against
// the builtin defaults. Any problem with the stored document degrades to the
// defaults; pricing must keep working.
func (s *server) resolveCatalog() catalog.Catalog {
	doc, err := s.store.GetRawCatalog()
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.log.Warn("load catalog config", zap.Error(err))
		}
		return catalog.Default()
	}
	raw, err := catalog.ParseRaw(doc)
	if err != nil {
		s.log.Warn("parse catalog config", zap.Error(err))
		return catalog.Default()
	}
	return catalog.Resolve(raw)
}

func (s *server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	cat := s.resolveCatalog()
	respondJSON(w, http.StatusOK, cat)
}

func (s *server) handleAdminCatalogGet(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.GetRawCatalog()
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			doc = []byte("{}")
		} else {
			s.serverError(w, "load catalog config", err)
			return
		}
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

func (s *server) handleAdminCatalogPut(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		respondError(w, http.StatusBadRequest, "unreadable request body")
		return
	}

	raw, err := catalog.ParseRaw(body)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	doc, err := json.Marshal(raw)
	if err != nil {
		s.serverError(w, "encode catalog config", err)
		return
	}
	if err := s.store.UpdateRawCatalog(doc); err != nil {
		s.serverError(w, "save catalog config", err)
		return
	}

	respondJSON(w, http.StatusOK, catalog.Resolve(raw))
}

func (s *server) handleQuoteItem(w http.ResponseWriter, r *http.Request) {
	var req engine.Request
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cat := s.resolveCatalog()
	item, ok := engine.PriceLineItem(&cat, req)
	if !ok {
		respondError(w, http.StatusUnprocessableEntity, "request is incomplete or the category is unknown")
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (s *server) handleQuoteTravel(w http.ResponseWriter, r *http.Request) {
	var in engine.TravelInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.Mode == "" {
		in.Mode = engine.BillingMetered
	}
	if in.Mode != engine.BillingFixed && in.Mode != engine.BillingMetered {
		respondError(w, http.StatusBadRequest, "mode must be fixed or metered")
		return
	}

	cat := s.resolveCatalog()
	respondJSON(w, http.StatusOK, engine.PriceTravel(in, &cat))
}

type installationQuoteRequest struct {
	AnnualKWh     float64 `json:"annualKWh"`
	AnnualCostCHF float64 `json:"annualCostCHF"`
	KW            float64 `json:"kw"`
	DiscountPct   float64 `json:"discountPct"`
	HeatPump      bool    `json:"heatPump"`
}

type installationQuoteResponse struct {
	SuggestedKW []float64                   `json:"suggestedKW"`
	Proposals   []engine.EconomicsBreakdown `json:"proposals"`
}

func (s *server) handleQuoteInstallation(w http.ResponseWriter, r *http.Request) {
	var req installationQuoteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.AnnualKWh <= 0 && req.AnnualCostCHF <= 0 && req.KW <= 0 {
		respondError(w, http.StatusBadRequest, "annualKWh, annualCostCHF or kw is required")
		return
	}

	cat := s.resolveCatalog()

	// The interview accepts the yearly bill when the customer does not know
	// their consumption; an explicit kWh figure wins.
	annualKWh := req.AnnualKWh
	if annualKWh <= 0 {
		annualKWh = engine.AnnualKWhFromCost(req.AnnualCostCHF, cat.EnergyPrices.BuyCHFPerKWh)
	}

	resp := installationQuoteResponse{Proposals: make([]engine.EconomicsBreakdown, 0, 3)}
	if annualKWh > 0 {
		resp.SuggestedKW = engine.SuggestSizes(annualKWh, cat.PVSizesKW)
	}

	sizes := resp.SuggestedKW
	if req.KW > 0 {
		sizes = []float64{req.KW}
	}
	for _, kw := range sizes {
		resp.Proposals = append(resp.Proposals, s.installationBreakdown(kw, req.DiscountPct, req.HeatPump, &cat))
	}

	respondJSON(w, http.StatusOK, resp)
}

func (s *server) installationBreakdown(kw, discountPct float64, heatPump bool, cat *catalog.Catalog) engine.EconomicsBreakdown {
	return engine.Economics(engine.EconomicsInput{
		KW:                kw,
		UnitPriceCHFPerKW: engine.SystemUnitPrice(kw, cat),
		DiscountPct:       discountPct,
		VATPercent:        cat.VATPercent,
		Incentives:        cat.Incentives,
		HeatPump:          heatPump,
		EnergyPrices:      cat.EnergyPrices,
		SelfConsumption:   cat.SelfConsumption,
		Environment:       cat.Environment,
	})
}

type maintenanceQuoteRequest struct {
	Panels      float64 `json:"panels"`
	DiscountPct float64 `json:"discountPct"`
}

type maintenanceQuoteResponse struct {
	Item   engine.LineItem    `json:"item"`
	Totals engine.OfferTotals `json:"totals"`
}

func (s *server) handleQuoteMaintenance(w http.ResponseWriter, r *http.Request) {
	var req maintenanceQuoteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cat := s.resolveCatalog()
	item := engine.MaintenanceLineItem(req.Panels, &cat)
	totals := engine.Aggregate(engine.AggregateInput{
		Items:       []engine.LineItem{item},
		DiscountPct: req.DiscountPct,
		VATPercent:  cat.VATPercent,
	})
	respondJSON(w, http.StatusOK, maintenanceQuoteResponse{Item: item, Totals: totals})
}

type offerRequest struct {
	Type         offer.Type           `json:"type"`
	Customer     offer.Customer       `json:"customer"`
	Notes        string               `json:"notes"`
	DiscountPct  float64              `json:"discountPct"`
	Items        []engine.Request     `json:"items"`
	Travel       *engine.TravelInput  `json:"travel"`
	Panels       float64              `json:"panels"`
	Installation *installationDetails `json:"installation"`
}

type installationDetails struct {
	KW       float64 `json:"kw"`
	HeatPump bool    `json:"heatPump"`
}

func (s *server) handleOfferCreate(w http.ResponseWriter, r *http.Request) {
	var req offerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !offer.ValidType(req.Type) {
		respondError(w, http.StatusBadRequest, "type must be service, install or maintenance")
		return
	}

	cat := s.resolveCatalog()
	now := time.Now().UTC()

	o := offer.Offer{
		Ref:       offer.NewRef(offerRefPrefix, now),
		Type:      req.Type,
		Status:    offer.StatusDraft,
		CreatedAt: now,
		Customer:  req.Customer,
		Notes:     strings.TrimSpace(req.Notes),
		Catalog:   cat,
	}

	var incentives float64
	switch req.Type {
	case offer.TypeService:
		items := make([]engine.LineItem, 0, len(req.Items))
		for i, itemReq := range req.Items {
			item, ok := engine.PriceLineItem(&cat, itemReq)
			if !ok {
				respondError(w, http.StatusUnprocessableEntity, fmt.Sprintf("item %d is incomplete or its category is unknown", i))
				return
			}
			items = append(items, item)
		}
		o.Items = items

		travel := engine.TravelInput{Mode: engine.BillingMetered}
		if req.Travel != nil {
			travel = *req.Travel
			if travel.Mode == "" {
				travel.Mode = engine.BillingMetered
			}
		}
		o.Travel = engine.PriceTravel(travel, &cat)

	case offer.TypeMaintenance:
		o.Items = []engine.LineItem{engine.MaintenanceLineItem(req.Panels, &cat)}

	case offer.TypeInstall:
		if req.Installation == nil || req.Installation.KW <= 0 {
			respondError(w, http.StatusBadRequest, "installation.kw is required for install offers")
			return
		}
		eco := s.installationBreakdown(req.Installation.KW, req.DiscountPct, req.Installation.HeatPump, &cat)
		o.Economics = &eco
		o.Items = []engine.LineItem{{
			Description:     fmt.Sprintf("PV system %g kWp", eco.KW),
			Qty:             eco.KW,
			MaterialPerUnit: eco.UnitPriceCHFPerKW,
			NetPerUnit:      eco.UnitPriceCHFPerKW,
			Subtotal:        eco.Subtotal,
		}}
		incentives = eco.IncentivesTotal
	}

	o.Totals = engine.Aggregate(engine.AggregateInput{
		Items:         o.Items,
		Travel:        o.Travel,
		DiscountPct:   req.DiscountPct,
		VATPercent:    cat.VATPercent,
		IncentivesCHF: incentives,
	})

	if err := s.store.SaveOffer(o); err != nil {
		s.serverError(w, "save offer", err)
		return
	}
	respondJSON(w, http.StatusCreated, o)
}

func (s *server) handleOffersList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	offers, err := s.store.ListOffers(query)
	if err != nil {
		s.serverError(w, "list offers", err)
		return
	}
	respondJSON(w, http.StatusOK, offers)
}

func (s *server) handleOfferGet(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")
	o, err := s.store.GetOffer(ref)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "offer not found")
			return
		}
		s.serverError(w, "load offer", err)
		return
	}
	respondJSON(w, http.StatusOK, o)
}

func (s *server) handleOfferDelete(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")
	if err := s.store.DeleteOffer(ref); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "offer not found")
			return
		}
		s.serverError(w, "delete offer", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) serverError(w http.ResponseWriter, msg string, err error) {
	s.log.Error(msg, zap.Error(err))
	respondError(w, http.StatusInternalServerError, msg)
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
