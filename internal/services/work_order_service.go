package services

import (
	"context"

	"portalBack/internal/models"
)

type WorkOrderService struct {
	WorkOrderRepo workOrderStore
}

func (s *WorkOrderService) ListByCustomer(ctx context.Context, customerID string) ([]models.WorkOrder, error) {
	return s.WorkOrderRepo.ListByCustomer(ctx, customerID)
}

func (s *WorkOrderService) GetByID(ctx context.Context, id, customerID string) (models.WorkOrder, error) {
	wo, err := s.WorkOrderRepo.GetByID(ctx, id)
	if err != nil {
		return models.WorkOrder{}, err
	}
	if wo.CustomerID != customerID {
		return models.WorkOrder{}, models.ErrForbidden
	}
	return wo, nil
}
