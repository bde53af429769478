package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"portalBack/internal/models"
	"portalBack/internal/services"
)

type InvoiceHandler struct {
	Service *services.InvoiceService
}

func (h *InvoiceHandler) GetMyInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.Service.ListByCustomer(r.Context(), customerID(r))
	if err != nil {
		log.Printf("GetMyInvoices error: %v", err)
		http.Error(w, "Failed to get invoices", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(invoices)
}

func (h *InvoiceHandler) GetInvoiceByID(w http.ResponseWriter, r *http.Request) {
	id := getParam(r, "id")
	if id == "" {
		http.Error(w, "Invalid invoice ID", http.StatusBadRequest)
		return
	}
	inv, err := h.Service.GetByID(r.Context(), id, customerID(r))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNoRecord):
			http.Error(w, "Invoice not found", http.StatusNotFound)
		case errors.Is(err, models.ErrForbidden):
			http.Error(w, "Invoice belongs to another customer", http.StatusForbidden)
		default:
			log.Printf("GetInvoiceByID error: %v", err)
			http.Error(w, "Failed to get invoice", http.StatusInternalServerError)
		}
		return
	}
	json.NewEncoder(w).Encode(inv)
}
