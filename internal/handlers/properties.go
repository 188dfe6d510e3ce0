package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Hopetizzy/Abisam-properties/internal/catalog"
	"github.com/Hopetizzy/Abisam-properties/internal/httpx"
	"github.com/Hopetizzy/Abisam-properties/internal/transport"
	"github.com/Hopetizzy/Abisam-properties/internal/utils"
)

const propertiesCacheKey = "properties:all"

type PropertyRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Location    string   `json:"location" validate:"required"`
	Price       int64    `json:"price" validate:"required,gt=0"`
	Type        string   `json:"type" validate:"required"`
	Documents   []string `json:"documents"`
	Description string   `json:"description" validate:"required,max=2000"`
	Image       string   `json:"image" validate:"omitempty,url"`
	Bedrooms    int      `json:"bedrooms" validate:"gte=0,lte=20"`
	Bathrooms   int      `json:"bathrooms" validate:"gte=0,lte=20"`
}

func (s *Server) GetProperties(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	if s.Cache != nil {
		if cached, ok, err := s.Cache.Get(r.Context(), propertiesCacheKey); err == nil && ok {
			log.Info("properties: cache hit")
			writeCachedJSON(w, http.StatusOK, cached)
			return
		}
	}

	items := s.Catalog.Table().All()
	response := map[string]interface{}{
		"properties": items,
		"total":      len(items),
	}

	if payload, err := encodeJSON(response); err == nil && s.Cache != nil {
		_ = s.Cache.Set(r.Context(), propertiesCacheKey, payload, time.Duration(s.Cfg.CacheTTLSeconds)*time.Second)
	}

	log.Info("properties: ok", slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, response)
}

func (s *Server) GetProperty(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	property, ok := s.Catalog.Table().ByID(id)
	if !ok {
		log.Warn("property get: not found", slog.String("property_id", id))
		transport.WriteError(w, http.StatusNotFound, "property not found", nil)
		return
	}

	log.Info("property get: ok", slog.String("property_id", id))
	transport.WriteJSON(w, http.StatusOK, property)
}

// GetPropertyWhatsApp returns a wa.me link pre-filled with an inquiry
// about the listing, for the listing card's contact button.
func (s *Server) GetPropertyWhatsApp(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	property, ok := s.Catalog.Table().ByID(id)
	if !ok {
		log.Warn("property whatsapp: not found", slog.String("property_id", id))
		transport.WriteError(w, http.StatusNotFound, "property not found", nil)
		return
	}

	transport.WriteJSON(w, http.StatusOK, map[string]string{
		"url": s.Links.ListingLink(property),
	})
}

func (s *Server) AdminCreateProperty(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)

	req, ok := s.decodePropertyRequest(w, r, log, "admin property create")
	if !ok {
		return
	}

	property := propertyFromRequest(req)
	property.ID = utils.Slugify(req.Title)

	if _, exists := s.Catalog.Table().ByID(property.ID); exists {
		log.Warn("admin property create: duplicate", slog.String("property_id", property.ID))
		transport.WriteError(w, http.StatusConflict, "property already exists", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	if err := s.CatalogRepo.Upsert(ctx, property); err != nil {
		log.Error("admin property create: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	if !s.reloadCatalog(ctx, w, log, "admin property create") {
		return
	}

	log.Info("admin property create: ok", slog.String("property_id", property.ID))
	transport.WriteJSON(w, http.StatusCreated, property)
}

func (s *Server) AdminUpdateProperty(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	if _, exists := s.Catalog.Table().ByID(id); !exists {
		log.Warn("admin property update: not found", slog.String("property_id", id))
		transport.WriteError(w, http.StatusNotFound, "property not found", nil)
		return
	}

	req, ok := s.decodePropertyRequest(w, r, log, "admin property update")
	if !ok {
		return
	}

	property := propertyFromRequest(req)
	property.ID = id

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	if err := s.CatalogRepo.Upsert(ctx, property); err != nil {
		log.Error("admin property update: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	if !s.reloadCatalog(ctx, w, log, "admin property update") {
		return
	}

	log.Info("admin property update: ok", slog.String("property_id", id))
	transport.WriteJSON(w, http.StatusOK, property)
}

func (s *Server) AdminDeleteProperty(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	if err := s.CatalogRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			log.Warn("admin property delete: not found", slog.String("property_id", id))
			transport.WriteError(w, http.StatusNotFound, "property not found", nil)
			return
		}
		log.Error("admin property delete: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	if !s.reloadCatalog(ctx, w, log, "admin property delete") {
		return
	}

	log.Info("admin property delete: ok", slog.String("property_id", id))
	transport.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) decodePropertyRequest(w http.ResponseWriter, r *http.Request, log *slog.Logger, area string) (PropertyRequest, bool) {
	var req PropertyRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn(area + ": invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return PropertyRequest{}, false
	}
	if err := s.Val.Struct(req); err != nil {
		log.Warn(area + ": validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(s.Val.ValidationErrors(err)))
		return PropertyRequest{}, false
	}
	if !catalog.IsValidLocation(req.Location) {
		transport.WriteError(w, http.StatusBadRequest, "validation error", map[string]string{"location": "oneof"})
		return PropertyRequest{}, false
	}
	if !catalog.IsValidType(req.Type) {
		transport.WriteError(w, http.StatusBadRequest, "validation error", map[string]string{"type": "oneof"})
		return PropertyRequest{}, false
	}
	return req, true
}

// reloadCatalog rebuilds the in-memory table from the database after an
// admin write and drops the cached listing payload.
func (s *Server) reloadCatalog(ctx context.Context, w http.ResponseWriter, log *slog.Logger, area string) bool {
	table, err := catalog.LoadTable(ctx, s.CatalogRepo)
	if err != nil {
		log.Error(area+": catalog reload error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "catalog reload error", nil)
		return false
	}
	s.Catalog.Swap(table)
	if s.Cache != nil {
		_ = s.Cache.Delete(ctx, propertiesCacheKey)
	}
	return true
}

func propertyFromRequest(req PropertyRequest) catalog.Property {
	documents := req.Documents
	if documents == nil {
		documents = []string{}
	}
	return catalog.Property{
		Title:       strings.TrimSpace(req.Title),
		Location:    catalog.Location(req.Location),
		Price:       req.Price,
		Type:        catalog.Type(req.Type),
		Documents:   documents,
		Description: strings.TrimSpace(req.Description),
		Image:       strings.TrimSpace(req.Image),
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
	}
}
