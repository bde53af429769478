package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"portalBack/internal/models"
)

type CompanyRepository struct {
	DB *sql.DB
}

func (r *CompanyRepository) GetByID(ctx context.Context, id string) (models.Company, error) {
	var comp models.Company
	err := r.DB.QueryRowContext(ctx, `
        SELECT id, name, email, phone, avg_rating, rating_count, company_logo_url, created_at
        FROM companies WHERE id = $1`, id).Scan(
		&comp.ID, &comp.Name, &comp.Email, &comp.Phone, &comp.AvgRating, &comp.RatingCount,
		&comp.CompanyLogoURL, &comp.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Company{}, models.ErrCompanyNotFound
	}
	return comp, err
}

// ListByTags returns companies carrying any of the given tags, best rated
// first. With no tags it returns the top-rated companies.
func (r *CompanyRepository) ListByTags(ctx context.Context, tags []string, limit int) ([]models.Company, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows *sql.Rows
	var err error
	if len(tags) == 0 {
		rows, err = r.DB.QueryContext(ctx, `
            SELECT id, name, email, phone, avg_rating, rating_count, company_logo_url, created_at
            FROM companies ORDER BY avg_rating DESC, rating_count DESC LIMIT $1`, limit)
	} else {
		lowered := make([]string, len(tags))
		for i, t := range tags {
			lowered[i] = strings.ToLower(strings.TrimSpace(t))
		}
		rows, err = r.DB.QueryContext(ctx, `
            SELECT DISTINCT c.id, c.name, c.email, c.phone, c.avg_rating, c.rating_count,
                   c.company_logo_url, c.created_at
            FROM companies c
            JOIN company_tags ct ON ct.company_id = c.id
            JOIN tags t ON t.id = ct.tag_id
            WHERE t.name = ANY($1)
            ORDER BY c.avg_rating DESC, c.rating_count DESC LIMIT $2`,
			idArray(lowered), limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comps []models.Company
	for rows.Next() {
		var comp models.Company
		err = rows.Scan(&comp.ID, &comp.Name, &comp.Email, &comp.Phone, &comp.AvgRating,
			&comp.RatingCount, &comp.CompanyLogoURL, &comp.CreatedAt)
		if err != nil {
			return nil, err
		}
		comps = append(comps, comp)
	}
	return comps, rows.Err()
}
