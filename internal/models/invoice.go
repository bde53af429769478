package models

import "time"

// Invoice statuses.
const (
	InvoiceUnpaid        = "UNPAID"
	InvoicePartiallyPaid = "PARTIALLY_PAID"
	InvoicePaid          = "PAID"
	InvoiceOverdue       = "OVERDUE"
	InvoiceVoid          = "VOID"
)

type Invoice struct {
	ID          string     `json:"id"`
	CustomerID  string     `json:"customer_id"`
	CompanyID   string     `json:"company_id"`
	WorkOrderID string     `json:"work_order_id"`
	Number      string     `json:"number"`
	Amount      float64    `json:"amount"`
	AmountPaid  float64    `json:"amount_paid"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
