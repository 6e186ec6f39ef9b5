package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mkandreum/rodetespruebas/internal/domain"
)

const (
	codeMethodNotAllowed   = "method_not_allowed"
	codeNotFound           = "not_found"
	codeInvalidRequestBody = "invalid_request_body"
	codeInvalidEmail       = "invalid_email"
	codeDomainNotAllowed   = "domain_not_allowed"
	codeInvalidQuantity    = "invalid_quantity"
	codeInvalidCapacity    = "invalid_capacity"
	codeInvalidID          = "invalid_id"
	codeEventNameRequired  = "event_name_required"
	codeDragNameRequired   = "drag_name_required"
	codeItemNameRequired   = "item_name_required"
	codeEventNotFound      = "event_not_found"
	codeEventUnavailable   = "event_unavailable"
	codeDragNotFound       = "drag_not_found"
	codeItemNotFound       = "item_not_found"
	codeItemUnavailable    = "item_unavailable"
	codeOrderNotFound      = "order_not_found"
	codeSaleNotFound       = "sale_not_found"
	codeCapacityExceeded   = "capacity_exceeded"
	codeAlreadyRedeemed    = "already_redeemed"
	codeMalformedBackup    = "malformed_backup"
	codeForbidden          = "forbidden"
	codeInternalError      = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	// Remaining is set only on capacity_exceeded so the buyer can retry
	// with a smaller quantity.
	Remaining *int `json:"remaining,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeErrorResponse(w, status, errorResponse{Error: msg, Code: code})
}

func writeErrorResponse(w http.ResponseWriter, status int, resp errorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(resp)
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeDomainError maps service errors onto HTTP statuses and codes.
// Anything unrecognized, including store failures, becomes a 500.
func writeDomainError(w http.ResponseWriter, err error) {
	if ce, ok := domain.IsCapacityError(err); ok {
		remaining := ce.Remaining
		writeErrorResponse(w, http.StatusConflict, errorResponse{
			Error:     ce.Error(),
			Code:      codeCapacityExceeded,
			Remaining: &remaining,
		})
		return
	}
	if errors.Is(err, domain.ErrMalformedBackup) {
		writeError(w, http.StatusBadRequest, codeMalformedBackup, err.Error())
		return
	}

	switch {
	case errors.Is(err, domain.ErrInvalidEmail):
		writeError(w, http.StatusBadRequest, codeInvalidEmail, err.Error())
	case errors.Is(err, domain.ErrDomainNotAllowed):
		writeError(w, http.StatusBadRequest, codeDomainNotAllowed, err.Error())
	case errors.Is(err, domain.ErrInvalidQuantity):
		writeError(w, http.StatusBadRequest, codeInvalidQuantity, err.Error())
	case errors.Is(err, domain.ErrInvalidCapacity):
		writeError(w, http.StatusBadRequest, codeInvalidCapacity, err.Error())
	case errors.Is(err, domain.ErrInvalidID):
		writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
	case errors.Is(err, domain.ErrEventNameRequired):
		writeError(w, http.StatusBadRequest, codeEventNameRequired, err.Error())
	case errors.Is(err, domain.ErrDragNameRequired):
		writeError(w, http.StatusBadRequest, codeDragNameRequired, err.Error())
	case errors.Is(err, domain.ErrItemNameRequired):
		writeError(w, http.StatusBadRequest, codeItemNameRequired, err.Error())
	case errors.Is(err, domain.ErrEventNotFound):
		writeError(w, http.StatusNotFound, codeEventNotFound, err.Error())
	case errors.Is(err, domain.ErrDragNotFound):
		writeError(w, http.StatusNotFound, codeDragNotFound, err.Error())
	case errors.Is(err, domain.ErrItemNotFound):
		writeError(w, http.StatusNotFound, codeItemNotFound, err.Error())
	case errors.Is(err, domain.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, codeOrderNotFound, err.Error())
	case errors.Is(err, domain.ErrSaleNotFound):
		writeError(w, http.StatusNotFound, codeSaleNotFound, err.Error())
	case errors.Is(err, domain.ErrEventUnavailable):
		writeError(w, http.StatusConflict, codeEventUnavailable, err.Error())
	case errors.Is(err, domain.ErrItemUnavailable):
		writeError(w, http.StatusConflict, codeItemUnavailable, err.Error())
	case errors.Is(err, domain.ErrAlreadyRedeemed):
		writeError(w, http.StatusConflict, codeAlreadyRedeemed, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}
