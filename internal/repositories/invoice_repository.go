package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"portalBack/internal/models"
)

type InvoiceRepository struct {
	DB *sql.DB
}

func (r *InvoiceRepository) Create(ctx context.Context, inv models.Invoice) (models.Invoice, error) {
	inv.ID = uuid.NewString()
	inv.CreatedAt = time.Now()
	if inv.Status == "" {
		inv.Status = models.InvoiceUnpaid
	}
	if inv.Number == "" {
		inv.Number = fmt.Sprintf("INV-%s", inv.ID[:8])
	}
	_, err := r.DB.ExecContext(ctx, `
        INSERT INTO invoices
            (id, customer_id, company_id, work_order_id, number, amount, amount_paid, status, due_date, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		inv.ID, inv.CustomerID, inv.CompanyID, inv.WorkOrderID, inv.Number,
		inv.Amount, inv.AmountPaid, inv.Status, inv.DueDate, inv.CreatedAt)
	if err != nil {
		return models.Invoice{}, err
	}
	return inv, nil
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id string) (models.Invoice, error) {
	var inv models.Invoice
	err := r.DB.QueryRowContext(ctx, `
        SELECT id, customer_id, company_id, work_order_id, number, amount, amount_paid, status, due_date, created_at
        FROM invoices WHERE id = $1`, id).Scan(
		&inv.ID, &inv.CustomerID, &inv.CompanyID, &inv.WorkOrderID, &inv.Number,
		&inv.Amount, &inv.AmountPaid, &inv.Status, &inv.DueDate, &inv.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Invoice{}, models.ErrNoRecord
	}
	return inv, err
}

func (r *InvoiceRepository) ListByCustomer(ctx context.Context, customerID string) ([]models.Invoice, error) {
	rows, err := r.DB.QueryContext(ctx, `
        SELECT id, customer_id, company_id, work_order_id, number, amount, amount_paid, status, due_date, created_at
        FROM invoices WHERE customer_id = $1 ORDER BY created_at DESC`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invs []models.Invoice
	for rows.Next() {
		var inv models.Invoice
		err = rows.Scan(&inv.ID, &inv.CustomerID, &inv.CompanyID, &inv.WorkOrderID, &inv.Number,
			&inv.Amount, &inv.AmountPaid, &inv.Status, &inv.DueDate, &inv.CreatedAt)
		if err != nil {
			return nil, err
		}
		invs = append(invs, inv)
	}
	return invs, rows.Err()
}

// MarkOverdue flips unpaid invoices past their due date. Returns the number
// of rows updated; the overdue sweeper logs it.
func (r *InvoiceRepository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
        UPDATE invoices SET status = $1
        WHERE status IN ($2, $3) AND due_date IS NOT NULL AND due_date < $4`,
		models.InvoiceOverdue, models.InvoiceUnpaid, models.InvoicePartiallyPaid, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
