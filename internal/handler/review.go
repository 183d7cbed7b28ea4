package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/render"

	"goldenbites/internal/apperror"
	"goldenbites/internal/review"
	"goldenbites/internal/session"
)

type ReviewHandler struct {
	svc review.Service
}

func NewReviewHandler(svc review.Service) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

type submitReviewRequest struct {
	ProductID int64  `json:"product_id"`
	OrderID   int64  `json:"order_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	actor, err := session.Identity(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req submitReviewRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respondError(w, r, apperror.New(apperror.KindValidation, "invalid request body"))
		return
	}

	rev := &review.Review{
		ProductID: req.ProductID,
		OrderID:   req.OrderID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := h.svc.Submit(r.Context(), actor.ID, rev); err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, rev)
}

func (h *ReviewHandler) ListForProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(r.URL.Query().Get("product_id"), 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, r, apperror.New(apperror.KindValidation, "invalid product id"))
		return
	}

	reviews, err := h.svc.ListForProduct(r.Context(), productID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, reviews)
}
