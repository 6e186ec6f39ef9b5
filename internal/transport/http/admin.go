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

// EventAdmin covers the admin panel's event routes.
type EventAdmin interface {
	CreateEvent(ctx context.Context, in app.CreateEventInput) (domain.Event, error)
	ListEvents(ctx context.Context) ([]domain.Event, error)
	ArchiveEvent(ctx context.Context, eventID int64) error
	ListOrders(ctx context.Context, eventID int64) ([]domain.TicketOrder, error)
}

// HandleAdminEvents returns an HTTP handler for /admin/events.
func HandleAdminEvents(svc EventAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			events, err := svc.ListEvents(r.Context())
			if err != nil {
				writeDomainError(w, err)
				return
			}
			if events == nil {
				events = []domain.Event{}
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(events)

		case http.MethodPost:
			var req createEventRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
			event, err := svc.CreateEvent(r.Context(), app.CreateEventInput{
				Name:     req.Name,
				Date:     req.Date,
				Capacity: req.Capacity,
			})
			if err != nil {
				writeDomainError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(event)

		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

// HandleAdminEventActions routes /admin/events/{id}/{archive|orders|reconcile}.
func HandleAdminEventActions(svc EventAdmin, rec CounterReconciler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID, action, ok := parseAdminEventPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch action {
		case "archive":
			if r.Method != http.MethodPost {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}
			if err := svc.ArchiveEvent(r.Context(), eventID); err != nil {
				writeDomainError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)

		case "orders":
			if r.Method != http.MethodGet {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}
			orders, err := svc.ListOrders(r.Context(), eventID)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			if orders == nil {
				orders = []domain.TicketOrder{}
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(orders)

		case "reconcile":
			if r.Method != http.MethodPost {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}
			correction, err := rec.Reconcile(r.Context(), eventID)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(correction)

		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
		}
	}
}

// MerchAdmin covers the admin panel's drag and merch routes.
type MerchAdmin interface {
	CreateDrag(ctx context.Context, name string) (domain.Drag, error)
	CreateMerchItem(ctx context.Context, dragID int64, name string) (domain.MerchItem, error)
	ListSales(ctx context.Context, dragID int64) ([]domain.MerchSale, error)
}

// HandleAdminDrags returns an HTTP handler for POST /admin/drags.
func HandleAdminDrags(svc MerchAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req createDragRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		drag, err := svc.CreateDrag(r.Context(), req.Name)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(drag)
	}
}

// HandleAdminDragSales returns an HTTP handler for GET /admin/drags/{id}/sales.
func HandleAdminDragSales(svc MerchAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		dragID, ok := parseAdminDragSalesPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		sales, err := svc.ListSales(r.Context(), dragID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if sales == nil {
			sales = []domain.MerchSale{}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(sales)
	}
}

// HandleAdminMerchItems returns an HTTP handler for POST /admin/merch.
func HandleAdminMerchItems(svc MerchAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req createMerchItemRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		item, err := svc.CreateMerchItem(r.Context(), req.DragID, req.Name)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(item)
	}
}

// LedgerAdmin covers direct ledger edits from the admin panel.
type LedgerAdmin interface {
	DeleteOrder(ctx context.Context, orderID string) (app.CounterCorrection, error)
	DeleteSale(ctx context.Context, saleID string) error
}

// HandleAdminDeleteOrder returns an HTTP handler for DELETE /admin/orders/{id}.
// The response carries the counter correction triggered by the delete.
func HandleAdminDeleteOrder(svc LedgerAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		orderID, ok := parseAdminIDPath(r.URL.Path, "orders")
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		correction, err := svc.DeleteOrder(r.Context(), orderID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(correction)
	}
}

// HandleAdminDeleteSale returns an HTTP handler for DELETE /admin/sales/{id}.
func HandleAdminDeleteSale(svc LedgerAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		saleID, ok := parseAdminIDPath(r.URL.Path, "sales")
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		if err := svc.DeleteSale(r.Context(), saleID); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// CounterReconciler exposes the counter reconciler to the admin panel.
type CounterReconciler interface {
	Reconcile(ctx context.Context, eventID int64) (app.CounterCorrection, error)
	ReconcileAll(ctx context.Context) ([]app.CounterCorrection, error)
}

// HandleReconcileAll returns an HTTP handler for POST /admin/reconcile.
func HandleReconcileAll(rec CounterReconciler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		corrections, err := rec.ReconcileAll(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if corrections == nil {
			corrections = []app.CounterCorrection{}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(corrections)
	}
}

func parseAdminEventPath(path string) (int64, string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 4 {
		return 0, "", false
	}
	if parts[0] != "admin" || parts[1] != "events" {
		return 0, "", false
	}
	id, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil || id <= 0 {
		return 0, "", false
	}
	return id, parts[3], true
}

func parseAdminDragSalesPath(path string) (int64, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 4 {
		return 0, false
	}
	if parts[0] != "admin" || parts[1] != "drags" || parts[3] != "sales" {
		return 0, false
	}
	id, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func parseAdminIDPath(path, resource string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 3 {
		return "", false
	}
	if parts[0] != "admin" || parts[1] != resource || parts[2] == "" {
		return "", false
	}
	return parts[2], true
}

type createEventRequest struct {
	Name     string     `json:"name"`
	Date     *time.Time `json:"date"`
	Capacity int        `json:"capacity"`
}

type createDragRequest struct {
	Name string `json:"name"`
}

type createMerchItemRequest struct {
	DragID int64  `json:"drag_id"`
	Name   string `json:"name"`
}
