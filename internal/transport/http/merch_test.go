package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mkandreum/rodetespruebas/internal/app"
	"github.com/mkandreum/rodetespruebas/internal/domain"
)

type stubSaleCreator struct {
	result app.CreateSaleResult
	err    error
	gotIn  app.CreateSaleInput
}

func (s *stubSaleCreator) CreateSale(_ context.Context, in app.CreateSaleInput) (app.CreateSaleResult, error) {
	s.gotIn = in
	return s.result, s.err
}

func TestHandleCreateSale(t *testing.T) {
	t.Parallel()

	t.Run("creates sale with merch qr block", func(t *testing.T) {
		svc := &stubSaleCreator{result: app.CreateSaleResult{
			Sale: domain.MerchSale{
				ID:        "s-1",
				ItemID:    10,
				DragID:    1,
				Email:     "a@example.com",
				FirstName: "Cati",
				Quantity:  2,
			},
			ItemName: "Tote",
			DragName: "Victoria",
		}}

		req := httptest.NewRequest(http.MethodPost, "/merch/sales",
			strings.NewReader(`{"item_id":10,"email":"a@example.com","first_name":"Cati","quantity":2}`))
		rec := httptest.NewRecorder()
		HandleCreateSale(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d body %s", rec.Code, rec.Body.String())
		}
		var resp createSaleResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if !strings.Contains(resp.QRCode, "MERCH_SALE_ID:s-1") {
			t.Fatalf("expected merch qr block, got %q", resp.QRCode)
		}
		if !strings.Contains(resp.QRCode, "DRAG:Victoria") {
			t.Fatalf("expected drag line in block, got %q", resp.QRCode)
		}
		if svc.gotIn.ItemID != 10 {
			t.Fatalf("unexpected input %+v", svc.gotIn)
		}
	})

	t.Run("archived item conflicts", func(t *testing.T) {
		svc := &stubSaleCreator{err: domain.ErrItemUnavailable}

		req := httptest.NewRequest(http.MethodPost, "/merch/sales",
			strings.NewReader(`{"item_id":10,"email":"a@example.com","quantity":1}`))
		rec := httptest.NewRecorder()
		HandleCreateSale(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})

	t.Run("rejects missing item id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/merch/sales",
			strings.NewReader(`{"email":"a@example.com","quantity":1}`))
		rec := httptest.NewRecorder()
		HandleCreateSale(&stubSaleCreator{}).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
