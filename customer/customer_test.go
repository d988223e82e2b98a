package customer

import (
	"errors"
	"testing"

	"github.com/containerd/errdefs"
)

func TestNewCustomerInputValidate(t *testing.T) {
	valid := NewCustomerInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}

	withBusiness := valid
	withBusiness.BusinessName = "Analytical Engines Ltd"
	if err := withBusiness.Validate(); err != nil {
		t.Errorf("business name is optional, got %v", err)
	}

	tests := []struct {
		name  string
		morph func(*NewCustomerInput)
	}{
		{"missing first name", func(i *NewCustomerInput) { i.FirstName = "" }},
		{"missing last name", func(i *NewCustomerInput) { i.LastName = "" }},
		{"missing email", func(i *NewCustomerInput) { i.Email = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := valid
			tt.morph(&input)

			err := input.Validate()
			if err == nil {
				t.Fatal("expected a validation error")
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if !errdefs.IsInvalidArgument(err) {
				t.Error("validation errors should classify as invalid argument")
			}
		})
	}
}

func TestRemoteErrorClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(error) bool
	}{
		{"not found", 404, errdefs.IsNotFound},
		{"conflict", 409, errdefs.IsConflict},
		{"bad request", 400, errdefs.IsInvalidArgument},
		{"server error", 500, errdefs.IsUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &RemoteError{Code: "x", Message: "y", StatusCode: tt.status}
			if !tt.check(err) {
				t.Errorf("status %d misclassified: %v", tt.status, err)
			}
		})
	}
}

func TestTransportErrorClassification(t *testing.T) {
	cause := errors.New("connection refused")
	err := &TransportError{Op: "list", Err: cause}

	if !errdefs.IsUnavailable(err) {
		t.Error("transport errors should classify as unavailable")
	}
	if !errors.Is(err, cause) {
		t.Error("transport errors should unwrap to their cause")
	}
}
