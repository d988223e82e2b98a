package customer

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Customer is a remote-owned record cached as a value object. Email is the
// natural key within the collection; the store decides ordering and the
// cache preserves it as returned.
type Customer struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	BusinessName string `json:"businessName,omitempty"`
	Email        string `json:"email"`
}

// NewCustomerInput carries the fields needed to create a customer.
type NewCustomerInput struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	BusinessName string `json:"businessName,omitempty"`
	Email        string `json:"email"`
}

// Validate checks the required fields. BusinessName is always optional.
// A non-nil result is a *ValidationError and means the remote store must
// not be contacted.
func (i NewCustomerInput) Validate() error {
	err := validation.ValidateStruct(&i,
		validation.Field(&i.FirstName, validation.Required),
		validation.Field(&i.LastName, validation.Required),
		validation.Field(&i.Email, validation.Required),
	)
	if err != nil {
		return &ValidationError{Fields: err}
	}
	return nil
}

// Store is the remote customer store consumed by the directory service.
// Implementations treat email as the natural key; duplicate and not-found
// policy belongs to the store, not the caller.
type Store interface {
	List(ctx context.Context) ([]Customer, error)
	Create(ctx context.Context, input NewCustomerInput) error
	Delete(ctx context.Context, email string) error
}
