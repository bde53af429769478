package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"portalBack/internal/models"
	"portalBack/internal/services"
)

type WorkOrderHandler struct {
	Service  *services.WorkOrderService
	Invoices *services.InvoiceService
}

func (h *WorkOrderHandler) GetMyWorkOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Service.ListByCustomer(r.Context(), customerID(r))
	if err != nil {
		log.Printf("GetMyWorkOrders error: %v", err)
		http.Error(w, "Failed to get work orders", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(orders)
}

func (h *WorkOrderHandler) GetWorkOrderByID(w http.ResponseWriter, r *http.Request) {
	id := getParam(r, "id")
	if id == "" {
		http.Error(w, "Invalid work order ID", http.StatusBadRequest)
		return
	}
	wo, err := h.Service.GetByID(r.Context(), id, customerID(r))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrWorkOrderNotFound):
			http.Error(w, "Work order not found", http.StatusNotFound)
		case errors.Is(err, models.ErrForbidden):
			http.Error(w, "Work order belongs to another customer", http.StatusForbidden)
		default:
			log.Printf("GetWorkOrderByID error: %v", err)
			http.Error(w, "Failed to get work order", http.StatusInternalServerError)
		}
		return
	}
	json.NewEncoder(w).Encode(wo)
}

// CompleteWorkOrder finishes a scheduled job and raises its invoice.
func (h *WorkOrderHandler) CompleteWorkOrder(w http.ResponseWriter, r *http.Request) {
	id := getParam(r, "id")
	if id == "" {
		http.Error(w, "Invalid work order ID", http.StatusBadRequest)
		return
	}
	inv, err := h.Invoices.CompleteWorkOrder(r.Context(), id, customerID(r))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrWorkOrderNotFound):
			http.Error(w, "Work order not found", http.StatusNotFound)
		case errors.Is(err, models.ErrForbidden):
			http.Error(w, "Work order belongs to another customer", http.StatusForbidden)
		case errors.Is(err, models.ErrInvalidTransition):
			http.Error(w, "Work order is not in a completable state", http.StatusConflict)
		default:
			log.Printf("CompleteWorkOrder error: %v", err)
			http.Error(w, "Failed to complete work order", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(inv)
}
