// Package policy holds the pure authorization rules for the inquiry
// lifecycle. It never touches storage: callers load the inquiry and
// pass it in.
package policy

import (
	"errors"
	"fmt"

	"inquiry-service/internal/models"
)

var (
	// ErrForbidden is an expected access-control outcome, not a fault;
	// it is surfaced as permission-denied and never retried.
	ErrForbidden = errors.New("forbidden")

	// ErrAuthRequired means the request carried no usable actor
	// identity and was rejected before policy evaluation.
	ErrAuthRequired = errors.New("authentication required")
)

// Actor is the authenticated party a request acts on behalf of.
type Actor struct {
	ID   int64
	Role string
}

// Valid reports whether the actor carries a usable identity.
func (a Actor) Valid() bool {
	return a.ID > 0 && models.ValidRole(a.Role)
}

// CanCreate allows only buyers creating an inquiry in their own name.
func CanCreate(actor Actor, buyerID int64) error {
	if !actor.Valid() {
		return ErrAuthRequired
	}
	if actor.Role != models.RoleBuyer {
		return fmt.Errorf("only buyers may create inquiries: %w", ErrForbidden)
	}
	if actor.ID != buyerID {
		return ErrForbidden
	}
	return nil
}

// CanListByBuyer allows a buyer to list only their own outgoing inquiries.
func CanListByBuyer(actor Actor, buyerID int64) error {
	if !actor.Valid() {
		return ErrAuthRequired
	}
	if actor.Role != models.RoleBuyer || actor.ID != buyerID {
		return ErrForbidden
	}
	return nil
}

// CanListBySeller allows sellers and administrators to list only the
// inquiries explicitly addressed to them. Administrators get no
// system-wide view.
func CanListBySeller(actor Actor, sellerID int64) error {
	if !actor.Valid() {
		return ErrAuthRequired
	}
	if actor.Role != models.RoleSeller && actor.Role != models.RoleAdmin {
		return ErrForbidden
	}
	if actor.ID != sellerID {
		return ErrForbidden
	}
	return nil
}

// CanUpdateStatus allows a seller or administrator to transition an
// inquiry only when they are its addressed seller.
func CanUpdateStatus(actor Actor, inq *models.Inquiry) error {
	if !actor.Valid() {
		return ErrAuthRequired
	}
	if actor.Role != models.RoleSeller && actor.Role != models.RoleAdmin {
		return ErrForbidden
	}
	if inq == nil || actor.ID != inq.SellerID {
		return ErrForbidden
	}
	return nil
}
