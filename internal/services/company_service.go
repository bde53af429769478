package services

import (
	"context"

	"portalBack/internal/models"
	"portalBack/internal/repositories"
)

type CompanyService struct {
	CompanyRepo *repositories.CompanyRepository
}

// CompaniesByTags finds contractors carrying any of the given tags, best
// rated first.
func (s *CompanyService) CompaniesByTags(ctx context.Context, tags []string, limit int) ([]models.Company, error) {
	return s.CompanyRepo.ListByTags(ctx, tags, limit)
}

func (s *CompanyService) GetCompanyByID(ctx context.Context, id string) (models.Company, error) {
	return s.CompanyRepo.GetByID(ctx, id)
}
