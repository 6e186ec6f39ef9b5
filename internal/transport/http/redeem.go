package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/mkandreum/rodetespruebas/internal/app"
	"github.com/mkandreum/rodetespruebas/internal/domain"
)

// TicketRedeemer is the minimal interface needed to redeem ticket orders.
type TicketRedeemer interface {
	RedeemTicket(ctx context.Context, orderID string, count int) (app.RedeemTicketResult, error)
}

// HandleRedeemTicket returns an HTTP handler for POST /tickets/{id}/redeem.
// An omitted body redeems a single admission.
func HandleRedeemTicket(svc TicketRedeemer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		orderID, ok := parseRedeemPath(r.URL.Path, "tickets")
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		count := 1
		var req redeemTicketRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			if !errors.Is(err, io.EOF) {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
		} else if req.Count != 0 {
			count = req.Count
		}

		res, err := svc.RedeemTicket(r.Context(), orderID, count)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(redeemTicketResponse{
			OrderID:   orderID,
			Redeemed:  res.Redeemed,
			Remaining: res.Remaining,
		})
	}
}

// SaleRedeemer is the minimal interface needed to fulfil merch sales.
type SaleRedeemer interface {
	RedeemSale(ctx context.Context, saleID string) (domain.MerchSale, error)
}

// HandleRedeemSale returns an HTTP handler for POST /merch/sales/{id}/redeem.
// Merch sales redeem in one shot; there is no count.
func HandleRedeemSale(svc SaleRedeemer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		saleID, ok := parseSaleRedeemPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		sale, err := svc.RedeemSale(r.Context(), saleID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(redeemSaleResponse{
			SaleID:    sale.ID,
			Quantity:  sale.Quantity,
			Fulfilled: sale.Fulfilled,
		})
	}
}

func parseRedeemPath(path, resource string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 3 {
		return "", false
	}
	if parts[0] != resource || parts[2] != "redeem" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func parseSaleRedeemPath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 4 {
		return "", false
	}
	if parts[0] != "merch" || parts[1] != "sales" || parts[3] != "redeem" || parts[2] == "" {
		return "", false
	}
	return parts[2], true
}

type redeemTicketRequest struct {
	Count int `json:"count"`
}

type redeemTicketResponse struct {
	OrderID   string `json:"order_id"`
	Redeemed  int    `json:"redeemed"`
	Remaining int    `json:"remaining"`
}

type redeemSaleResponse struct {
	SaleID    string `json:"sale_id"`
	Quantity  int    `json:"quantity"`
	Fulfilled bool   `json:"fulfilled"`
}
