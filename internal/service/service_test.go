package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"stylesphere/storefront/internal/client"
	"stylesphere/storefront/internal/config"
	"stylesphere/storefront/internal/session"
	"stylesphere/storefront/internal/state"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedAccount struct {
	result *client.LoginResult
}

func (f *fixedAccount) Login(context.Context, client.Credentials) (*client.LoginResult, error) {
	return f.result, nil
}

func customerToken(t *testing.T) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":   "user-42",
		"roles": []any{"customer"},
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func newTestService(t *testing.T, handler http.Handler) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	apiClient := client.New(config.APIConfig{BaseURL: srv.URL, Timeout: 5, MaxWorkers: 4})
	store := state.NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	guard := session.NewGuard(store, &fixedAccount{}, apiClient)
	cfg := config.ListingConfig{PageSize: 12, FetchSize: 100, Status: "active", DebounceMS: 300}
	return New(apiClient, guard, store, cfg, "light")
}

func loggedInService(t *testing.T, handler http.Handler) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	apiClient := client.New(config.APIConfig{BaseURL: srv.URL, Timeout: 5, MaxWorkers: 4})
	store := state.NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	account := &fixedAccount{result: &client.LoginResult{
		Token:  customerToken(t),
		UserID: 42,
		Email:  "asha@example.com",
	}}
	guard := session.NewGuard(store, account, apiClient)
	cfg := config.ListingConfig{PageSize: 12, FetchSize: 100, Status: "active", DebounceMS: 300}
	svc := New(apiClient, guard, store, cfg, "light")

	_, err := svc.Login(context.Background(), "asha@example.com", "secret1")
	require.NoError(t, err)
	return svc
}

func TestBrowseListing(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"products": [
				{"id": 1, "name": "Blue Shirt", "categoryName": "Shirts", "attributes": [{"size": "M", "price": 500}]},
				{"id": 2, "name": "Red Hat", "categoryName": "Accessories", "attributes": [{"size": "M", "price": 200}]}
			],
			"totalProductCount": 2,
			"totalPages": 1
		}`)
	})
	mux.HandleFunc("/categories", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{"id": 1, "categoryName": "Shirts"}]`)
	})
	svc := newTestService(t, mux)

	result, categories, err := svc.BrowseListing(context.Background(), BrowseOptions{Sort: "price-asc", Page: 1})
	require.NoError(t, err)

	require.Len(t, result.Products, 2)
	assert.Equal(t, "Red Hat", result.Products[0].Name)
	assert.Equal(t, 2, result.TotalItems)
	require.Len(t, categories, 1)
	assert.Equal(t, "Shirts", categories[0].CategoryName)
}

func TestBrowseListing_CategoryFailureIsTolerated(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id": 1, "name": "Blue Shirt"}]`)
	})
	mux.HandleFunc("/categories", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	svc := newTestService(t, mux)

	result, categories, err := svc.BrowseListing(context.Background(), BrowseOptions{Page: 1})
	require.NoError(t, err)

	assert.Len(t, result.Products, 1)
	assert.Nil(t, categories)
}

func productDetailHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/products/7", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id": 7, "name": "Blue Shirt", "categoryName": "Shirts", "attributes": [
			{"size": "S", "price": 450, "sku": "BS-S"},
			{"size": "M", "price": 500, "sku": "BS-M"}
		]}`)
	})
	mux.HandleFunc("/cart/add", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		json.NewDecoder(r.Body).Decode(&req)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(req)
	})
	return mux
}

func TestShowProduct(t *testing.T) {
	svc := newTestService(t, productDetailHandler())

	view, err := svc.ShowProduct(context.Background(), 7, "")
	require.NoError(t, err)
	assert.Equal(t, "S", view.SelectedSize)
	assert.Equal(t, "BS-S", view.SKU)
	assert.Equal(t, 450.0, view.UnitPrice)
	assert.Equal(t, 360.0, view.DiscountedPrice)

	view, err = svc.ShowProduct(context.Background(), 7, "M")
	require.NoError(t, err)
	assert.Equal(t, "BS-M", view.SKU)
	assert.Equal(t, 500.0, view.UnitPrice)
	assert.Equal(t, 400.0, view.DiscountedPrice)
}

func TestShowProduct_UnknownSize(t *testing.T) {
	svc := newTestService(t, productDetailHandler())

	_, err := svc.ShowProduct(context.Background(), 7, "XXL")

	var validationErr *client.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "size", validationErr.Field)
}

func TestAddToCart_RequiresLogin(t *testing.T) {
	svc := newTestService(t, productDetailHandler())

	_, err := svc.AddToCart(context.Background(), 7, "M", 1)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestAddToCart(t *testing.T) {
	svc := loggedInService(t, productDetailHandler())

	line, err := svc.AddToCart(context.Background(), 7, "M", 2)
	require.NoError(t, err)

	assert.Equal(t, 42, line.UserID)
	assert.Equal(t, 7, line.ProductID)
	assert.Equal(t, "BS-M", line.SKU)
	assert.Equal(t, "M", line.Size)
	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, 500.0, line.UnitPrice)
	assert.Equal(t, 100.0, line.Discount)
	assert.Equal(t, 800.0, line.FinalPrice)
}

func TestAddToCart_ValidatesInput(t *testing.T) {
	svc := loggedInService(t, productDetailHandler())

	var validationErr *client.ValidationError

	_, err := svc.AddToCart(context.Background(), 7, "", 1)
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "size", validationErr.Field)

	_, err = svc.AddToCart(context.Background(), 7, "M", 0)
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "quantity", validationErr.Field)
}

func TestTheme(t *testing.T) {
	svc := newTestService(t, http.NewServeMux())
	ctx := context.Background()

	assert.Equal(t, "light", svc.Theme(ctx))

	require.NoError(t, svc.SetTheme(ctx, "dark"))
	assert.Equal(t, "dark", svc.Theme(ctx))

	var validationErr *client.ValidationError
	require.ErrorAs(t, svc.SetTheme(ctx, "sepia"), &validationErr)
	assert.Equal(t, "dark", svc.Theme(ctx))
}
