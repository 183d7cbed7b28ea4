package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"goldenbites/internal/apperror"
	"goldenbites/internal/cart"
	"goldenbites/internal/catalog"
	"goldenbites/internal/session"
)

// CartHandler serves the session cart. Adds snapshot the product's current
// catalog price into the cart entry; nothing re-reads the catalog afterwards.
type CartHandler struct {
	carts   cart.Store
	catalog catalog.Repository
}

func NewCartHandler(carts cart.Store, cat catalog.Repository) *CartHandler {
	return &CartHandler{carts: carts, catalog: cat}
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

func productIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.New(apperror.KindValidation, "invalid product id")
	}
	return id, nil
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	productID, err := productIDParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req quantityRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respondError(w, r, apperror.New(apperror.KindValidation, "invalid request body"))
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), productID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	stall, err := h.catalog.GetStall(r.Context(), product.StallID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	entry := cart.Entry{
		ProductID: product.ID,
		Name:      product.Name,
		Quantity:  req.Quantity,
		UnitPrice: product.UnitPrice,
		StallID:   product.StallID,
		StallName: stall.Name,
		ImageURL:  product.ImageURL,
	}
	if err := h.carts.AddItem(r.Context(), session.ID(r), entry); err != nil {
		respondError(w, r, err)
		return
	}

	snap, err := h.carts.Snapshot(r.Context(), session.ID(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, snap)
}

func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	productID, err := productIDParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req quantityRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respondError(w, r, apperror.New(apperror.KindValidation, "invalid request body"))
		return
	}

	if err := h.carts.SetQuantity(r.Context(), session.ID(r), productID, req.Quantity); err != nil {
		respondError(w, r, err)
		return
	}

	snap, err := h.carts.Snapshot(r.Context(), session.ID(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, snap)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := productIDParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.carts.RemoveItem(r.Context(), session.ID(r), productID); err != nil {
		respondError(w, r, err)
		return
	}

	snap, err := h.carts.Snapshot(r.Context(), session.ID(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, snap)
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	snap, err := h.carts.Snapshot(r.Context(), session.ID(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, snap)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.carts.Clear(r.Context(), session.ID(r)); err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, map[string]bool{"cleared": true})
}
