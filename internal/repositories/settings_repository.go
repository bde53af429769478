package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"portalBack/internal/models"
)

type SettingsRepository struct {
	DB *sql.DB
}

func (r *SettingsRepository) Get(ctx context.Context, companyID, area string) (models.CompanySetting, error) {
	var setting models.CompanySetting
	var payload []byte
	err := r.DB.QueryRowContext(ctx, `
        SELECT id, company_id, area, payload, updated_at
        FROM company_settings WHERE company_id = $1 AND area = $2`, companyID, area).Scan(
		&setting.ID, &setting.CompanyID, &setting.Area, &payload, &setting.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.CompanySetting{}, models.ErrNoRecord
	}
	if err != nil {
		return models.CompanySetting{}, err
	}
	setting.Payload = json.RawMessage(payload)
	return setting, nil
}

func (r *SettingsRepository) Upsert(ctx context.Context, companyID, area string, payload json.RawMessage) (models.CompanySetting, error) {
	setting := models.CompanySetting{
		ID:        uuid.NewString(),
		CompanyID: companyID,
		Area:      area,
		Payload:   payload,
		UpdatedAt: time.Now(),
	}
	err := r.DB.QueryRowContext(ctx, `
        INSERT INTO company_settings (id, company_id, area, payload, updated_at)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (company_id, area)
        DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at
        RETURNING id`, setting.ID, companyID, area, []byte(payload), setting.UpdatedAt).Scan(&setting.ID)
	if err != nil {
		return models.CompanySetting{}, err
	}
	return setting, nil
}

func (r *SettingsRepository) SaveTemplate(ctx context.Context, companyID string, tpl models.DocumentTemplate) (models.DocumentTemplate, error) {
	tpl.ID = uuid.NewString()
	tpl.UpdatedAt = time.Now()
	_, err := r.DB.ExecContext(ctx, `
        INSERT INTO document_templates (id, company_id, name, kind, file_url, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		tpl.ID, companyID, tpl.Name, tpl.Kind, tpl.FileURL, tpl.UpdatedAt)
	if err != nil {
		return models.DocumentTemplate{}, err
	}
	return tpl, nil
}

func (r *SettingsRepository) ListTemplates(ctx context.Context, companyID string) ([]models.DocumentTemplate, error) {
	rows, err := r.DB.QueryContext(ctx, `
        SELECT id, name, kind, file_url, updated_at
        FROM document_templates WHERE company_id = $1 ORDER BY updated_at DESC`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tpls []models.DocumentTemplate
	for rows.Next() {
		var tpl models.DocumentTemplate
		if err = rows.Scan(&tpl.ID, &tpl.Name, &tpl.Kind, &tpl.FileURL, &tpl.UpdatedAt); err != nil {
			return nil, err
		}
		tpls = append(tpls, tpl)
	}
	return tpls, rows.Err()
}
