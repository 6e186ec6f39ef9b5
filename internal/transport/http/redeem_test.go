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

type stubTicketRedeemer struct {
	result   app.RedeemTicketResult
	err      error
	gotID    string
	gotCount int
}

func (s *stubTicketRedeemer) RedeemTicket(_ context.Context, orderID string, count int) (app.RedeemTicketResult, error) {
	s.gotID = orderID
	s.gotCount = count
	return s.result, s.err
}

func TestHandleRedeemTicket(t *testing.T) {
	t.Parallel()

	t.Run("redeems requested count", func(t *testing.T) {
		svc := &stubTicketRedeemer{result: app.RedeemTicketResult{Redeemed: 3, Remaining: 1}}

		req := httptest.NewRequest(http.MethodPost, "/tickets/o-1/redeem", strings.NewReader(`{"count":3}`))
		rec := httptest.NewRecorder()
		HandleRedeemTicket(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d body %s", rec.Code, rec.Body.String())
		}
		if svc.gotID != "o-1" || svc.gotCount != 3 {
			t.Fatalf("unexpected call %q %d", svc.gotID, svc.gotCount)
		}
		var resp redeemTicketResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Redeemed != 3 || resp.Remaining != 1 {
			t.Fatalf("unexpected response %+v", resp)
		}
	})

	t.Run("empty body defaults to one", func(t *testing.T) {
		svc := &stubTicketRedeemer{result: app.RedeemTicketResult{Redeemed: 1, Remaining: 0}}

		req := httptest.NewRequest(http.MethodPost, "/tickets/o-1/redeem", nil)
		rec := httptest.NewRecorder()
		HandleRedeemTicket(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if svc.gotCount != 1 {
			t.Fatalf("expected default count 1, got %d", svc.gotCount)
		}
	})

	t.Run("already redeemed returns conflict", func(t *testing.T) {
		svc := &stubTicketRedeemer{err: domain.ErrAlreadyRedeemed}

		req := httptest.NewRequest(http.MethodPost, "/tickets/o-1/redeem", nil)
		rec := httptest.NewRecorder()
		HandleRedeemTicket(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		var resp errorResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Code != codeAlreadyRedeemed {
			t.Fatalf("expected code %s, got %s", codeAlreadyRedeemed, resp.Code)
		}
	})

	t.Run("bad path returns 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/tickets/o-1/confirm", nil)
		rec := httptest.NewRecorder()
		HandleRedeemTicket(&stubTicketRedeemer{}).ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

type stubSaleRedeemer struct {
	sale  domain.MerchSale
	err   error
	gotID string
}

func (s *stubSaleRedeemer) RedeemSale(_ context.Context, saleID string) (domain.MerchSale, error) {
	s.gotID = saleID
	return s.sale, s.err
}

func TestHandleRedeemSale(t *testing.T) {
	t.Parallel()

	t.Run("fulfils sale", func(t *testing.T) {
		svc := &stubSaleRedeemer{sale: domain.MerchSale{ID: "s-1", Quantity: 2, Fulfilled: true}}

		req := httptest.NewRequest(http.MethodPost, "/merch/sales/s-1/redeem", nil)
		rec := httptest.NewRecorder()
		HandleRedeemSale(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if svc.gotID != "s-1" {
			t.Fatalf("expected sale id s-1, got %q", svc.gotID)
		}
		var resp redeemSaleResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if !resp.Fulfilled || resp.Quantity != 2 {
			t.Fatalf("unexpected response %+v", resp)
		}
	})

	t.Run("second scan conflicts", func(t *testing.T) {
		svc := &stubSaleRedeemer{err: domain.ErrAlreadyRedeemed}

		req := httptest.NewRequest(http.MethodPost, "/merch/sales/s-1/redeem", nil)
		rec := httptest.NewRecorder()
		HandleRedeemSale(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})
}
