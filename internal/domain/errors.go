package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidEmail      = errors.New("invalid email address")
	ErrDomainNotAllowed  = errors.New("email domain not allowed")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrEventNotFound     = errors.New("event not found")
	ErrEventUnavailable  = errors.New("event archived or expired")
	ErrDragNotFound      = errors.New("drag not found")
	ErrItemNotFound      = errors.New("merch item not found")
	ErrItemUnavailable   = errors.New("merch item or seller archived")
	ErrOrderNotFound     = errors.New("order not found")
	ErrSaleNotFound      = errors.New("merch sale not found")
	ErrAlreadyRedeemed   = errors.New("already fully redeemed")
	ErrDuplicateOrder    = errors.New("order already exists for buyer")
	ErrEventNameRequired = errors.New("event name required")
	ErrDragNameRequired  = errors.New("drag name required")
	ErrItemNameRequired  = errors.New("item name required")
	ErrInvalidCapacity   = errors.New("invalid capacity")
	ErrInvalidID         = errors.New("invalid id")
	ErrMalformedBackup   = errors.New("malformed backup bundle")
)

// CapacityError reports a refused issuance along with how many slots are still
// free, so the caller can offer a reduced quantity.
type CapacityError struct {
	Remaining int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("insufficient capacity: %d remaining", e.Remaining)
}

// IsCapacityError unwraps err into a CapacityError when it is one.
func IsCapacityError(err error) (*CapacityError, bool) {
	var ce *CapacityError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
