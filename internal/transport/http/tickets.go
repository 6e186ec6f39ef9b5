package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/mkandreum/rodetespruebas/internal/app"
	"github.com/mkandreum/rodetespruebas/internal/qr"
)

// TicketIssuer is the minimal interface needed to issue ticket orders.
type TicketIssuer interface {
	Issue(ctx context.Context, in app.IssueTicketInput) (app.IssueTicketResult, error)
}

// HandleIssueTicket returns an HTTP handler for the public purchase form.
// Resubmitting the same buyer and event returns the existing order with 200.
func HandleIssueTicket(svc TicketIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req issueTicketRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.EventID <= 0 {
			writeError(w, http.StatusBadRequest, codeInvalidID, "event_id is required")
			return
		}

		res, err := svc.Issue(r.Context(), app.IssueTicketInput{
			EventID:   req.EventID,
			Email:     req.Email,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Quantity:  req.Quantity,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := issueTicketResponse{
			ID:        res.Order.ID,
			EventID:   res.Order.EventID,
			EventName: res.Event.Name,
			Email:     res.Order.Email,
			FirstName: res.Order.FirstName,
			LastName:  res.Order.LastName,
			Quantity:  res.Order.Quantity,
			QRCode:    qr.EncodeTicket(res.Order.ID),
			CreatedAt: res.Order.CreatedAt,
		}

		w.Header().Set("Content-Type", "application/json")
		if res.Created {
			w.WriteHeader(http.StatusCreated)
		} else {
			w.WriteHeader(http.StatusOK)
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

type issueTicketRequest struct {
	EventID   int64  `json:"event_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Quantity  int    `json:"quantity"`
}

type issueTicketResponse struct {
	ID        string    `json:"id"`
	EventID   int64     `json:"event_id"`
	EventName string    `json:"event_name"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Quantity  int       `json:"quantity"`
	QRCode    string    `json:"qr_code"`
	CreatedAt time.Time `json:"created_at"`
}
