package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mkandreum/rodetespruebas/internal/app"
	"github.com/mkandreum/rodetespruebas/internal/domain"
)

// CatalogReader is the minimal interface behind the public storefront routes.
type CatalogReader interface {
	ListEvents(ctx context.Context) ([]app.EventListing, error)
	ListDrags(ctx context.Context) ([]domain.Drag, error)
	ListMerchItems(ctx context.Context, dragID int64) ([]domain.MerchItem, error)
}

// HandleListEvents returns an HTTP handler for GET /events.
func HandleListEvents(svc CatalogReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		listings, err := svc.ListEvents(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := make([]eventListingResponse, 0, len(listings))
		for _, l := range listings {
			resp = append(resp, eventListingResponse{
				ID:       l.Event.ID,
				Name:     l.Event.Name,
				Date:     l.Event.Date,
				Capacity: l.Event.Capacity,
				Sold:     l.Sold,
				SoldOut:  l.SoldOut,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// HandleListDrags returns an HTTP handler for GET /drags.
func HandleListDrags(svc CatalogReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		drags, err := svc.ListDrags(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if drags == nil {
			drags = []domain.Drag{}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(drags)
	}
}

// HandleListMerchItems returns an HTTP handler for GET /drags/{id}/merch.
func HandleListMerchItems(svc CatalogReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		dragID, ok := parseDragMerchPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		items, err := svc.ListMerchItems(r.Context(), dragID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if items == nil {
			items = []domain.MerchItem{}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(items)
	}
}

func parseDragMerchPath(path string) (int64, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 3 {
		return 0, false
	}
	if parts[0] != "drags" || parts[2] != "merch" {
		return 0, false
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

type eventListingResponse struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Date     time.Time `json:"date"`
	Capacity int       `json:"capacity"`
	Sold     int       `json:"sold"`
	SoldOut  bool      `json:"sold_out"`
}
