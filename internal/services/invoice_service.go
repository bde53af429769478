package services

import (
	"context"
	"time"

	"portalBack/internal/models"
	"portalBack/internal/repositories"
)

const invoiceDueDays = 14

type InvoiceService struct {
	InvoiceRepo   *repositories.InvoiceRepository
	WorkOrderRepo *repositories.WorkOrderRepository
}

// CompleteWorkOrder marks a customer's job completed and raises the invoice
// for it, carrying over the work order amount.
func (s *InvoiceService) CompleteWorkOrder(ctx context.Context, workOrderID, customerID string) (models.Invoice, error) {
	wo, err := s.WorkOrderRepo.GetByID(ctx, workOrderID)
	if err != nil {
		return models.Invoice{}, err
	}
	if wo.CustomerID != customerID {
		return models.Invoice{}, models.ErrForbidden
	}
	if err := s.WorkOrderRepo.UpdateStatus(ctx, workOrderID, models.WorkOrderScheduled, models.WorkOrderCompleted); err != nil {
		return models.Invoice{}, err
	}

	due := time.Now().AddDate(0, 0, invoiceDueDays)
	inv, err := s.InvoiceRepo.Create(ctx, models.Invoice{
		CustomerID:  wo.CustomerID,
		CompanyID:   wo.CompanyID,
		WorkOrderID: wo.ID,
		Amount:      wo.TotalAmount,
		DueDate:     &due,
	})
	if err != nil {
		return models.Invoice{}, err
	}

	// The invoice exists; the work order status moving to invoiced is
	// cosmetic and must not fail the completion.
	_ = s.WorkOrderRepo.UpdateStatus(ctx, workOrderID, models.WorkOrderCompleted, models.WorkOrderInvoiced)
	return inv, nil
}

func (s *InvoiceService) ListByCustomer(ctx context.Context, customerID string) ([]models.Invoice, error) {
	return s.InvoiceRepo.ListByCustomer(ctx, customerID)
}

func (s *InvoiceService) GetByID(ctx context.Context, id, customerID string) (models.Invoice, error) {
	inv, err := s.InvoiceRepo.GetByID(ctx, id)
	if err != nil {
		return models.Invoice{}, err
	}
	if inv.CustomerID != customerID {
		return models.Invoice{}, models.ErrForbidden
	}
	return inv, nil
}

func (s *InvoiceService) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	return s.InvoiceRepo.MarkOverdue(ctx, now)
}
