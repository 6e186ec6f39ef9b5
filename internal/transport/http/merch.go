package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/mkandreum/rodetespruebas/internal/app"
	"github.com/mkandreum/rodetespruebas/internal/qr"
)

// SaleCreator is the minimal interface needed to create merch sales.
type SaleCreator interface {
	CreateSale(ctx context.Context, in app.CreateSaleInput) (app.CreateSaleResult, error)
}

// HandleCreateSale returns an HTTP handler for the merch order form.
func HandleCreateSale(svc SaleCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req createSaleRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.ItemID <= 0 {
			writeError(w, http.StatusBadRequest, codeInvalidID, "item_id is required")
			return
		}

		res, err := svc.CreateSale(r.Context(), app.CreateSaleInput{
			ItemID:    req.ItemID,
			Email:     req.Email,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Quantity:  req.Quantity,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := createSaleResponse{
			ID:        res.Sale.ID,
			ItemID:    res.Sale.ItemID,
			ItemName:  res.ItemName,
			DragID:    res.Sale.DragID,
			DragName:  res.DragName,
			Email:     res.Sale.Email,
			Quantity:  res.Sale.Quantity,
			QRCode:    qr.EncodeMerchSale(res.Sale, res.DragName, res.ItemName),
			CreatedAt: res.Sale.CreatedAt,
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

type createSaleRequest struct {
	ItemID    int64  `json:"item_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Quantity  int    `json:"quantity"`
}

type createSaleResponse struct {
	ID        string    `json:"id"`
	ItemID    int64     `json:"item_id"`
	ItemName  string    `json:"item_name"`
	DragID    int64     `json:"drag_id"`
	DragName  string    `json:"drag_name"`
	Email     string    `json:"email"`
	Quantity  int       `json:"quantity"`
	QRCode    string    `json:"qr_code"`
	CreatedAt time.Time `json:"created_at"`
}
