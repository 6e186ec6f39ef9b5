package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mkandreum/rodetespruebas/internal/app"
	"github.com/mkandreum/rodetespruebas/internal/domain"
)

type stubCatalog struct {
	listings []app.EventListing
	drags    []domain.Drag
	items    []domain.MerchItem
	err      error
	gotDrag  int64
}

func (s *stubCatalog) ListEvents(_ context.Context) ([]app.EventListing, error) {
	return s.listings, s.err
}

func (s *stubCatalog) ListDrags(_ context.Context) ([]domain.Drag, error) {
	return s.drags, s.err
}

func (s *stubCatalog) ListMerchItems(_ context.Context, dragID int64) ([]domain.MerchItem, error) {
	s.gotDrag = dragID
	return s.items, s.err
}

func TestHandleListEvents(t *testing.T) {
	t.Parallel()

	svc := &stubCatalog{listings: []app.EventListing{
		{Event: domain.Event{ID: 1, Name: "Gala", Capacity: 50}, Sold: 50, SoldOut: true},
		{Event: domain.Event{ID: 2, Name: "Open Night"}, Sold: 12},
	}}

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	rec := httptest.NewRecorder()
	HandleListEvents(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp []eventListingResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(resp))
	}
	if !resp[0].SoldOut || resp[0].Sold != 50 {
		t.Fatalf("unexpected first listing %+v", resp[0])
	}
	if resp[1].SoldOut {
		t.Fatalf("unlimited event must not be sold out")
	}
}

func TestHandleListMerchItems(t *testing.T) {
	t.Parallel()

	t.Run("lists items for drag", func(t *testing.T) {
		svc := &stubCatalog{items: []domain.MerchItem{{ID: 10, DragID: 3, Name: "Tote"}}}

		req := httptest.NewRequest(http.MethodGet, "/drags/3/merch", nil)
		rec := httptest.NewRecorder()
		HandleListMerchItems(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if svc.gotDrag != 3 {
			t.Fatalf("expected lookup of drag 3, got %d", svc.gotDrag)
		}
	})

	t.Run("non-numeric id is 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/drags/abc/merch", nil)
		rec := httptest.NewRecorder()
		HandleListMerchItems(&stubCatalog{}).ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
