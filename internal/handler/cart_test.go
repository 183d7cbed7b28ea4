package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldenbites/internal/apperror"
	"goldenbites/internal/cart"
	"goldenbites/internal/catalog"
	"goldenbites/internal/handler"
)

type mockCatalog struct {
	getProductFunc func(ctx context.Context, id int64) (*catalog.Product, error)
	getStallFunc   func(ctx context.Context, ownerID int64) (*catalog.Stall, error)
}

func (m *mockCatalog) GetProduct(ctx context.Context, id int64) (*catalog.Product, error) {
	return m.getProductFunc(ctx, id)
}

func (m *mockCatalog) GetStall(ctx context.Context, ownerID int64) (*catalog.Stall, error) {
	return m.getStallFunc(ctx, ownerID)
}

func twoStallCatalog() *mockCatalog {
	products := map[int64]*catalog.Product{
		1: {ID: 1, Name: "Chicken Rice", UnitPrice: decimal.RequireFromString("4.50"), StallID: 10},
		2: {ID: 2, Name: "Laksa", UnitPrice: decimal.RequireFromString("5.00"), StallID: 11},
	}
	stalls := map[int64]*catalog.Stall{
		10: {OwnerID: 10, Name: "Hainan Corner", ServiceType: "Both"},
		11: {OwnerID: 11, Name: "Laksa House", ServiceType: "Pickup"},
	}
	return &mockCatalog{
		getProductFunc: func(ctx context.Context, id int64) (*catalog.Product, error) {
			p, ok := products[id]
			if !ok {
				return nil, apperror.New(apperror.KindNotFound, "product not found")
			}
			return p, nil
		},
		getStallFunc: func(ctx context.Context, id int64) (*catalog.Stall, error) {
			s, ok := stalls[id]
			if !ok {
				return nil, apperror.New(apperror.KindNotFound, "stall not found")
			}
			return s, nil
		},
	}
}

func cartRouter(store cart.Store, cat catalog.Repository) *chi.Mux {
	h := handler.NewCartHandler(store, cat)
	r := chi.NewRouter()
	r.Get("/cart", h.GetCart)
	r.Delete("/cart", h.ClearCart)
	r.Post("/cart/{productID}", h.AddItem)
	r.Patch("/cart/{productID}", h.SetQuantity)
	r.Delete("/cart/{productID}", h.RemoveItem)
	return r
}

func doJSON(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr *strings.Reader
	if body == "" {
		rdr = strings.NewReader("")
	} else {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCartHandler_AddItem(t *testing.T) {
	t.Run("success_returns_snapshot", func(t *testing.T) {
		router := cartRouter(cart.NewMemoryStore(), twoStallCatalog())

		rec := doJSON(t, router, http.MethodPost, "/cart/1", `{"quantity":2}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var snap cart.Snapshot
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
		require.Len(t, snap.Entries, 1)
		assert.Equal(t, "Chicken Rice", snap.Entries[0].Name)
		assert.Equal(t, 2, snap.Entries[0].Quantity)
		assert.Equal(t, "Hainan Corner", snap.Entries[0].StallName)
		assert.True(t, decimal.RequireFromString("9.00").Equal(snap.Total))
	})

	t.Run("cross_stall_conflict_is_400", func(t *testing.T) {
		router := cartRouter(cart.NewMemoryStore(), twoStallCatalog())

		rec := doJSON(t, router, http.MethodPost, "/cart/1", `{"quantity":1}`)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doJSON(t, router, http.MethodPost, "/cart/2", `{"quantity":1}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "conflict", errorKind(t, rec.Body.Bytes()))

		// The cart still holds only the first stall's item.
		rec = doJSON(t, router, http.MethodGet, "/cart", "")
		var snap cart.Snapshot
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
		require.Len(t, snap.Entries, 1)
		assert.EqualValues(t, 1, snap.Entries[0].ProductID)
	})

	t.Run("invalid_quantity_is_400", func(t *testing.T) {
		router := cartRouter(cart.NewMemoryStore(), twoStallCatalog())

		rec := doJSON(t, router, http.MethodPost, "/cart/1", `{"quantity":0}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "validation", errorKind(t, rec.Body.Bytes()))
	})

	t.Run("unknown_product_is_404", func(t *testing.T) {
		router := cartRouter(cart.NewMemoryStore(), twoStallCatalog())

		rec := doJSON(t, router, http.MethodPost, "/cart/999", `{"quantity":1}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("bad_product_id_is_400", func(t *testing.T) {
		router := cartRouter(cart.NewMemoryStore(), twoStallCatalog())

		rec := doJSON(t, router, http.MethodPost, "/cart/abc", `{"quantity":1}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCartHandler_SetQuantityAndRemove(t *testing.T) {
	router := cartRouter(cart.NewMemoryStore(), twoStallCatalog())

	rec := doJSON(t, router, http.MethodPost, "/cart/1", `{"quantity":2}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPatch, "/cart/1", `{"quantity":5}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var snap cart.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, 5, snap.Entries[0].Quantity)

	rec = doJSON(t, router, http.MethodPatch, "/cart/2", `{"quantity":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/cart/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Empty(t, snap.Entries)

	rec = doJSON(t, router, http.MethodDelete, "/cart/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartHandler_Clear(t *testing.T) {
	router := cartRouter(cart.NewMemoryStore(), twoStallCatalog())

	rec := doJSON(t, router, http.MethodPost, "/cart/1", `{"quantity":2}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)

	// After clearing, the other stall is allowed.
	rec = doJSON(t, router, http.MethodPost, "/cart/2", `{"quantity":1}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}
