package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mkandreum/rodetespruebas/internal/app"
	"github.com/mkandreum/rodetespruebas/internal/qr"
)

// Scanner is the minimal interface needed to describe a scanned code.
type Scanner interface {
	DescribeTicket(ctx context.Context, orderID string) (app.TicketStatus, error)
	DescribeSale(ctx context.Context, saleID string) (app.SaleStatus, error)
}

// HandleScan returns an HTTP handler for POST /scan. It classifies the raw
// payload and looks up the referenced order so the operator can confirm
// before redeeming. Unrecognized payloads report as a missing order.
func HandleScan(svc Scanner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req scanRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		decoded := qr.Decode(req.Code)
		switch decoded.Kind {
		case qr.KindTicket, qr.KindLegacyTicket:
			status, err := svc.DescribeTicket(r.Context(), decoded.OrderID)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(scanResponse{
				Kind: string(decoded.Kind),
				Ticket: &scanTicket{
					OrderID:   status.Order.ID,
					EventID:   status.Event.ID,
					EventName: status.Event.Name,
					Buyer:     status.Order.BuyerName(),
					Email:     status.Order.Email,
					Quantity:  status.Order.Quantity,
					Redeemed:  status.Order.RedeemedCount,
					Available: status.Available,
				},
			})
		case qr.KindMerchSale:
			status, err := svc.DescribeSale(r.Context(), decoded.OrderID)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(scanResponse{
				Kind: string(decoded.Kind),
				Sale: &scanSale{
					SaleID:    status.Sale.ID,
					ItemName:  status.ItemName,
					DragName:  status.DragName,
					Buyer:     status.Sale.BuyerName(),
					Email:     status.Sale.Email,
					Quantity:  status.Sale.Quantity,
					Fulfilled: status.Sale.Fulfilled,
				},
			})
		default:
			writeError(w, http.StatusNotFound, codeOrderNotFound, "unrecognized code")
		}
	}
}

type scanRequest struct {
	Code string `json:"code"`
}

type scanResponse struct {
	Kind   string      `json:"kind"`
	Ticket *scanTicket `json:"ticket,omitempty"`
	Sale   *scanSale   `json:"sale,omitempty"`
}

type scanTicket struct {
	OrderID   string `json:"order_id"`
	EventID   int64  `json:"event_id"`
	EventName string `json:"event_name"`
	Buyer     string `json:"buyer"`
	Email     string `json:"email"`
	Quantity  int    `json:"quantity"`
	Redeemed  int    `json:"redeemed"`
	Available int    `json:"available"`
}

type scanSale struct {
	SaleID    string `json:"sale_id"`
	ItemName  string `json:"item_name"`
	DragName  string `json:"drag_name"`
	Buyer     string `json:"buyer"`
	Email     string `json:"email"`
	Quantity  int    `json:"quantity"`
	Fulfilled bool   `json:"fulfilled"`
}
