package httpstore

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/containerd/errdefs"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-customer-directory/customer"
	"github.com/goliatone/go-customer-directory/pkg/testsupport"
)

func newTestStore(t *testing.T, handler http.HandlerFunc) *Store {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(Config{
		BaseURL:    srv.URL,
		HTTPClient: srv.Client(),
		Logger:     zerolog.Nop(),
	})
}

func TestList(t *testing.T) {
	fixture := testsupport.LoadFixture(t, testsupport.FixturePath("customers.json"))

	var sawRequestID bool
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/customers", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		sawRequestID = r.Header.Get("X-Request-ID") != ""

		w.Header().Set("Content-Type", "application/json")
		w.Write(fixture)
	})

	got, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Store order is preserved as returned.
	assert.Equal(t, "ada@example.com", got[0].Email)
	assert.Equal(t, "Analytical Engines Ltd", got[0].BusinessName)
	assert.Equal(t, "grace@example.com", got[1].Email)
	assert.True(t, sawRequestID, "requests should carry an X-Request-ID")
}

func TestList_RemoteError(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{
			"code":    "internal",
			"message": "store exploded",
		})
	})

	_, err := store.List(context.Background())
	require.Error(t, err)

	var rerr *customer.RemoteError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "internal", rerr.Code)
	assert.Equal(t, "store exploded", rerr.Message)
	assert.Equal(t, http.StatusInternalServerError, rerr.StatusCode)
}

func TestList_MalformedErrorBody(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>gateway error</html>"))
	})

	_, err := store.List(context.Background())
	require.Error(t, err)

	var rerr *customer.RemoteError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, http.StatusBadGateway, rerr.StatusCode)
	assert.NotEmpty(t, rerr.Message)
}

func TestCreate(t *testing.T) {
	var received customer.NewCustomerInput
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/customers", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
	})

	input := customer.NewCustomerInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
	}
	require.NoError(t, store.Create(context.Background(), input))
	assert.Equal(t, input, received)
}

func TestCreate_Duplicate(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{
			"code":    "duplicate_email",
			"message": "email already exists",
		})
	})

	err := store.Create(context.Background(), customer.NewCustomerInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
	})
	require.Error(t, err)
	assert.True(t, errdefs.IsConflict(err))

	var rerr *customer.RemoteError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "duplicate_email", rerr.Code)
	assert.Equal(t, "email already exists", rerr.Message)
}

func TestDelete(t *testing.T) {
	var path string
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		path = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, store.Delete(context.Background(), "ada@example.com"))
	assert.Equal(t, "/customers/ada@example.com", path)
}

func TestDelete_NotFound(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{
			"code":    "not_found",
			"message": "no such customer",
		})
	})

	err := store.Delete(context.Background(), "ghost@example.com")
	require.Error(t, err)
	assert.True(t, errdefs.IsNotFound(err))

	var rerr *customer.RemoteError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "not_found", rerr.Code)
	assert.Equal(t, "no such customer", rerr.Message)
}

func TestList_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	store := New(Config{BaseURL: srv.URL, Logger: zerolog.Nop()})
	srv.Close()

	_, err := store.List(context.Background())
	require.Error(t, err)

	var terr *customer.TransportError
	assert.True(t, errors.As(err, &terr))
	assert.True(t, errdefs.IsUnavailable(err))
}
