package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"portalBack/internal/models"
	"portalBack/internal/services"
)

type CompanyHandler struct {
	Service *services.CompanyService
}

// GetCompaniesByTags matches contractors to service tags, best rated first.
func (h *CompanyHandler) GetCompaniesByTags(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	companies, err := h.Service.CompaniesByTags(r.Context(), q["tags"], limit)
	if err != nil {
		log.Printf("GetCompaniesByTags error: %v", err)
		http.Error(w, "Failed to get companies", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(companies)
}

func (h *CompanyHandler) GetCompanyByID(w http.ResponseWriter, r *http.Request) {
	id := getParam(r, "id")
	if id == "" {
		http.Error(w, "Invalid company ID", http.StatusBadRequest)
		return
	}
	company, err := h.Service.GetCompanyByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrCompanyNotFound) {
			http.Error(w, "Company not found", http.StatusNotFound)
			return
		}
		log.Printf("GetCompanyByID error: %v", err)
		http.Error(w, "Failed to get company", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(company)
}
