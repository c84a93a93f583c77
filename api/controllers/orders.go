package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/novamart/orderhub-backend/api/middleware"
	"github.com/novamart/orderhub-backend/api/responses"
	"github.com/novamart/orderhub-backend/api/validators"
	"github.com/novamart/orderhub-backend/internal/orders"
	"github.com/novamart/orderhub-backend/pkg/logger"
)

// CreateOrder persists a new order aggregate.
func CreateOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req orders.CreateOrderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		env := svc.Create(r.Context(), req, middleware.ActorFromContext(r.Context()))
		responses.WriteEnvelope(w, env)
	}
}

// GetOrder returns one order with its active items.
func GetOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteEnvelope(w, svc.Get(r.Context(), id))
	}
}

// UpdateOrder applies a partial patch guarded by the row version.
func UpdateOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req orders.UpdateOrderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		env := svc.Update(r.Context(), id, req, middleware.ActorFromContext(r.Context()))
		responses.WriteEnvelope(w, env)
	}
}

// DeleteOrder soft-deletes the aggregate.
func DeleteOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		env := svc.Delete(r.Context(), id, middleware.ActorFromContext(r.Context()))
		responses.WriteEnvelope(w, env)
	}
}

// CreateOrderProc routes order creation through the stored procedure.
func CreateOrderProc(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req orders.CreateOrderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		env := svc.CreateViaProc(r.Context(), req, middleware.ActorFromContext(r.Context()))
		responses.WriteEnvelope(w, env)
	}
}

// GetOrderProc reads an order through the stored procedure.
func GetOrderProc(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteEnvelope(w, svc.GetViaProc(r.Context(), id))
	}
}

// UpdateOrderStatus transitions an order through the stored procedure.
func UpdateOrderStatus(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req orders.UpdateOrderStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		env := svc.UpdateStatusViaProc(r.Context(), id, req, middleware.ActorFromContext(r.Context()))
		responses.WriteEnvelope(w, env)
	}
}

// DeleteOrderProc soft-deletes through the stored-procedure surface.
func DeleteOrderProc(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		env := svc.DeleteViaProc(r.Context(), id, middleware.ActorFromContext(r.Context()))
		responses.WriteEnvelope(w, env)
	}
}
