package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"portalBack/internal/models"
	"portalBack/internal/repositories"
)

const settingsCacheTTL = 5 * time.Minute

type templateStorage interface {
	Upload(file []byte, fileName, folder, contentType string) (string, error)
}

type SettingsService struct {
	SettingsRepo *repositories.SettingsRepository
	Cache        *redis.Client
	Storage      templateStorage
}

// MarketplaceSettings returns the company's marketplace configuration,
// read through the cache. Missing rows resolve to the zero configuration.
func (s *SettingsService) MarketplaceSettings(ctx context.Context, companyID string) (models.MarketplaceSettings, error) {
	var cfg models.MarketplaceSettings
	err := s.getArea(ctx, companyID, models.SettingsAreaMarketplace, &cfg)
	return cfg, err
}

func (s *SettingsService) QuoteAcceptanceSettings(ctx context.Context, companyID string) (models.QuoteAcceptanceSettings, error) {
	var cfg models.QuoteAcceptanceSettings
	err := s.getArea(ctx, companyID, models.SettingsAreaQuoteAcceptance, &cfg)
	return cfg, err
}

func (s *SettingsService) getArea(ctx context.Context, companyID, area string, out interface{}) error {
	key := settingsCacheKey(companyID, area)
	if s.Cache != nil {
		if cached, err := s.Cache.Get(ctx, key).Bytes(); err == nil {
			return json.Unmarshal(cached, out)
		}
	}

	setting, err := s.SettingsRepo.Get(ctx, companyID, area)
	if errors.Is(err, models.ErrNoRecord) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(setting.Payload, out); err != nil {
		return err
	}
	if s.Cache != nil {
		// Cache write failures don't matter; the next read hits the database.
		s.Cache.Set(ctx, key, []byte(setting.Payload), settingsCacheTTL)
	}
	return nil
}

// UpdateArea persists a settings area and invalidates its cache entry.
func (s *SettingsService) UpdateArea(ctx context.Context, companyID, area string, payload json.RawMessage) (models.CompanySetting, error) {
	switch area {
	case models.SettingsAreaMarketplace, models.SettingsAreaQuoteAcceptance,
		models.SettingsAreaApprovals, models.SettingsAreaDocumentTemplates:
	default:
		return models.CompanySetting{}, &models.ValidationError{Field: "area", Message: "Unknown settings area"}
	}
	setting, err := s.SettingsRepo.Upsert(ctx, companyID, area, payload)
	if err != nil {
		return models.CompanySetting{}, err
	}
	if s.Cache != nil {
		s.Cache.Del(ctx, settingsCacheKey(companyID, area))
	}
	return setting, nil
}

// UploadTemplate stores a document template file and records its pointer.
func (s *SettingsService) UploadTemplate(ctx context.Context, companyID, name, kind string, file []byte, contentType string) (models.DocumentTemplate, error) {
	if s.Storage == nil {
		return models.DocumentTemplate{}, fmt.Errorf("template storage is not configured")
	}
	if strings.TrimSpace(name) == "" {
		return models.DocumentTemplate{}, &models.ValidationError{Field: "name", Message: "Please enter a template name"}
	}
	url, err := s.Storage.Upload(file, name, "templates/"+companyID, contentType)
	if err != nil {
		return models.DocumentTemplate{}, err
	}
	return s.SettingsRepo.SaveTemplate(ctx, companyID, models.DocumentTemplate{
		Name:    name,
		Kind:    kind,
		FileURL: url,
	})
}

func (s *SettingsService) ListTemplates(ctx context.Context, companyID string) ([]models.DocumentTemplate, error) {
	return s.SettingsRepo.ListTemplates(ctx, companyID)
}

func settingsCacheKey(companyID, area string) string {
	return "settings:" + companyID + ":" + area
}
