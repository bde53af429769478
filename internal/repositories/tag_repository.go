package repositories

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"portalBack/internal/models"
)

type TagRepository struct {
	DB *sql.DB
}

// EnsureTag upserts a tag by name and returns its row.
func (r *TagRepository) EnsureTag(ctx context.Context, name string) (models.Tag, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	var tag models.Tag
	err := r.DB.QueryRowContext(ctx, `
        INSERT INTO tags (id, name) VALUES ($1, $2)
        ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
        RETURNING id, name`, uuid.NewString(), name).Scan(&tag.ID, &tag.Name)
	if err != nil {
		return models.Tag{}, err
	}
	return tag, nil
}

func (r *TagRepository) GetAllTags(ctx context.Context) ([]models.Tag, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name FROM tags ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		var tag models.Tag
		if err = rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}
