package main

import (
	"context"
	"log"
	"time"

	"portalBack/internal/services"
)

const invoiceSweeperTimeout = 1 * time.Minute

// startInvoiceSweeper periodically flips unpaid invoices past their due
// date to OVERDUE.
func startInvoiceSweeper(ctx context.Context, svc *services.InvoiceService, infoLog, errorLog *log.Logger) {
	if svc == nil {
		return
	}

	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()

		runOnce := func() {
			runCtx, cancel := context.WithTimeout(ctx, invoiceSweeperTimeout)
			marked, err := svc.MarkOverdue(runCtx, time.Now().UTC())
			cancel()
			if err != nil {
				if errorLog != nil {
					errorLog.Printf("invoice sweeper: failed to mark overdue invoices: %v", err)
				}
			} else if marked > 0 && infoLog != nil {
				infoLog.Printf("invoice sweeper: marked %d invoices overdue", marked)
			}
		}

		runOnce()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runOnce()
			}
		}
	}()
}
