// Package httpstore implements customer.Store against a JSON-over-HTTP
// remote customer store.
package httpstore

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-customer-directory/customer"
)

// Config holds wiring options for the store client.
type Config struct {
	// BaseURL is the store's base URL, e.g. http://127.0.0.1:8080
	BaseURL string
	// HTTPClient is optional; defaults to http.DefaultClient. Timeouts
	// belong here, the store imposes none of its own.
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// Store talks to the remote customer store. Rejections surface as
// *customer.RemoteError with the store's code and message passed through
// verbatim; network and decoding failures surface as
// *customer.TransportError.
type Store struct {
	base string
	http *http.Client
	log  zerolog.Logger
}

var _ customer.Store = (*Store)(nil)

// New creates a store client for the given configuration.
func New(cfg Config) *Store {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Store{
		base: strings.TrimRight(cfg.BaseURL, "/"),
		http: hc,
		log:  cfg.Logger,
	}
}

// remoteFault is the error body the store returns on rejected calls.
type remoteFault struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// List fetches the full customer collection in store order.
func (s *Store) List(ctx context.Context) ([]customer.Customer, error) {
	resp, err := s.do(ctx, http.MethodGet, "/customers", nil)
	if err != nil {
		return nil, &customer.TransportError{Op: "list", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, s.remoteError(resp)
	}

	var out []customer.Customer
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &customer.TransportError{Op: "list", Err: err}
	}
	return out, nil
}

// Create submits a new customer. Duplicate policy belongs to the store; a
// rejected email comes back as a RemoteError.
func (s *Store) Create(ctx context.Context, input customer.NewCustomerInput) error {
	body, err := json.Marshal(input)
	if err != nil {
		return &customer.TransportError{Op: "create", Err: err}
	}

	resp, err := s.do(ctx, http.MethodPost, "/customers", bytes.NewReader(body))
	if err != nil {
		return &customer.TransportError{Op: "create", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return s.remoteError(resp)
	}
	return nil
}

// Delete removes the customer with the given email.
func (s *Store) Delete(ctx context.Context, email string) error {
	resp, err := s.do(ctx, http.MethodDelete, "/customers/"+url.PathEscape(email), nil)
	if err != nil {
		return &customer.TransportError{Op: "delete", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return s.remoteError(resp)
	}
	return nil
}

func (s *Store) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, s.base+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, err
	}

	s.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Msg("remote store call")
	return resp, nil
}

// remoteError decodes a rejection body into a RemoteError, falling back to
// the HTTP status line when the body is not the expected shape.
func (s *Store) remoteError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var fault remoteFault
	if err := json.Unmarshal(data, &fault); err == nil && fault.Message != "" {
		return &customer.RemoteError{
			Code:       fault.Code,
			Message:    fault.Message,
			StatusCode: resp.StatusCode,
		}
	}
	return &customer.RemoteError{
		Message:    resp.Status,
		StatusCode: resp.StatusCode,
	}
}
