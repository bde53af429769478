package models

import "time"

// Work order statuses (unified quote/job/invoice pipeline).
const (
	WorkOrderScheduled  = "scheduled"
	WorkOrderInProgress = "in_progress"
	WorkOrderOnHold     = "on_hold"
	WorkOrderCompleted  = "completed"
	WorkOrderInvoiced   = "invoiced"
	WorkOrderPaid       = "paid"
	WorkOrderClosed     = "closed"
	WorkOrderCancelled  = "cancelled"
)

type WorkOrder struct {
	ID                    string    `json:"id"`
	CustomerID            string    `json:"customer_id"`
	CompanyID             string    `json:"company_id"`
	MarketplaceRequestID  string    `json:"marketplace_request_id"`
	MarketplaceResponseID string    `json:"marketplace_response_id"`
	Status                string    `json:"status"`
	TotalAmount           float64   `json:"total_amount"`
	ReviewCompleted       bool      `json:"review_completed"`
	CreatedAt             time.Time `json:"created_at"`

	Company *Company `json:"company,omitempty"`
}
