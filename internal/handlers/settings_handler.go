package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"portalBack/internal/models"
	"portalBack/internal/services"
)

const maxTemplateSize = 10 << 20 // 10 MB

type SettingsHandler struct {
	Service *services.SettingsService
}

func (h *SettingsHandler) GetMarketplaceSettings(w http.ResponseWriter, r *http.Request) {
	id := getParam(r, "company_id")
	if id == "" {
		http.Error(w, "Invalid company ID", http.StatusBadRequest)
		return
	}
	cfg, err := h.Service.MarketplaceSettings(r.Context(), id)
	if err != nil {
		log.Printf("GetMarketplaceSettings error: %v", err)
		http.Error(w, "Failed to get settings", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(cfg)
}

func (h *SettingsHandler) GetQuoteAcceptanceSettings(w http.ResponseWriter, r *http.Request) {
	id := getParam(r, "company_id")
	if id == "" {
		http.Error(w, "Invalid company ID", http.StatusBadRequest)
		return
	}
	cfg, err := h.Service.QuoteAcceptanceSettings(r.Context(), id)
	if err != nil {
		log.Printf("GetQuoteAcceptanceSettings error: %v", err)
		http.Error(w, "Failed to get settings", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(cfg)
}

// UpdateSettings replaces one settings area for a company and drops the
// cached copy.
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	companyID := getParam(r, "company_id")
	area := getParam(r, "area")
	if companyID == "" || area == "" {
		http.Error(w, "Invalid company ID or settings area", http.StatusBadRequest)
		return
	}

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxTemplateSize))
	if err != nil || !json.Valid(payload) {
		http.Error(w, "Invalid settings payload", http.StatusBadRequest)
		return
	}

	setting, err := h.Service.UpdateArea(r.Context(), companyID, area, payload)
	if err != nil {
		var vErr *models.ValidationError
		if errors.As(err, &vErr) {
			http.Error(w, vErr.Message, http.StatusBadRequest)
			return
		}
		log.Printf("UpdateSettings error: %v", err)
		http.Error(w, "Failed to update settings", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(setting)
}

func (h *SettingsHandler) UploadTemplate(w http.ResponseWriter, r *http.Request) {
	companyID := getParam(r, "company_id")
	if companyID == "" {
		http.Error(w, "Invalid company ID", http.StatusBadRequest)
		return
	}
	if err := r.ParseMultipartForm(maxTemplateSize); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Template file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Failed to read template file", http.StatusBadRequest)
		return
	}

	tpl, err := h.Service.UploadTemplate(r.Context(), companyID,
		header.Filename, r.FormValue("kind"), data, header.Header.Get("Content-Type"))
	if err != nil {
		log.Printf("UploadTemplate error: %v", err)
		http.Error(w, "Failed to upload template", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(tpl)
}

func (h *SettingsHandler) GetTemplates(w http.ResponseWriter, r *http.Request) {
	companyID := getParam(r, "company_id")
	if companyID == "" {
		http.Error(w, "Invalid company ID", http.StatusBadRequest)
		return
	}
	templates, err := h.Service.ListTemplates(r.Context(), companyID)
	if err != nil {
		log.Printf("GetTemplates error: %v", err)
		http.Error(w, "Failed to get templates", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(templates)
}
