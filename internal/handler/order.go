package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"goldenbites/internal/apperror"
	"goldenbites/internal/order"
	"goldenbites/internal/session"
)

type OrderHandler struct {
	svc order.Service
}

func NewOrderHandler(svc order.Service) *OrderHandler {
	return &OrderHandler{svc: svc}
}

type placeOrderRequest struct {
	PaymentMethod   string `json:"payment_method"`
	FulfillmentType string `json:"fulfillment_type"`
	Notes           string `json:"notes"`
	QueueLabel      string `json:"queue_label"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func orderIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.New(apperror.KindValidation, "invalid order id")
	}
	return id, nil
}

func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	actor, err := session.Identity(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req placeOrderRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respondError(w, r, apperror.New(apperror.KindValidation, "invalid request body"))
		return
	}

	placed, err := h.svc.PlaceOrder(r.Context(), actor.ID, session.ID(r), order.PlaceOrderInput{
		PaymentMethod:   req.PaymentMethod,
		FulfillmentType: req.FulfillmentType,
		Notes:           req.Notes,
		QueueLabel:      req.QueueLabel,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, placed)
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, err := session.Identity(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	orderID, err := orderIDParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req updateStatusRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respondError(w, r, apperror.New(apperror.KindValidation, "invalid request body"))
		return
	}

	status, err := h.svc.UpdateStatus(r.Context(), actor, orderID, req.Status)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, map[string]string{"status": status.String()})
}

func (h *OrderHandler) Acknowledge(w http.ResponseWriter, r *http.Request) {
	actor, err := session.Identity(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	orderID, err := orderIDParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.svc.AcknowledgeReceipt(r.Context(), actor.ID, orderID); err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, map[string]bool{"acknowledged": true})
}

func (h *OrderHandler) Tracking(w http.ResponseWriter, r *http.Request) {
	actor, err := session.Identity(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	ord, err := h.svc.CurrentTrackedOrder(r.Context(), actor.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if ord == nil {
		respond(w, r, http.StatusOK, map[string]any{"order": nil})
		return
	}
	respond(w, r, http.StatusOK, map[string]any{"order": ord})
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	actor, err := session.Identity(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	orderID, err := orderIDParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	ord, err := h.svc.GetOrder(r.Context(), actor, orderID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, ord)
}

func (h *OrderHandler) ListCustomerOrders(w http.ResponseWriter, r *http.Request) {
	actor, err := session.Identity(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	orders, err := h.svc.ListCustomerOrders(r.Context(), actor.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, orders)
}

func (h *OrderHandler) ListStallOrders(w http.ResponseWriter, r *http.Request) {
	actor, err := session.Identity(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	orders, err := h.svc.ListStallOrders(r.Context(), actor)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, orders)
}
