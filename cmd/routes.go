package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	authMiddleware := standardMiddleware.Append(app.JWTMiddleware)

	mux := pat.New()

	// Accounts
	mux.Post("/account/sign_up", standardMiddleware.ThenFunc(app.accountHandler.SignUp))
	mux.Post("/account/sign_in", standardMiddleware.ThenFunc(app.accountHandler.SignIn))
	mux.Post("/account/sign_out", authMiddleware.ThenFunc(app.accountHandler.SignOut))
	mux.Get("/account/session", standardMiddleware.ThenFunc(app.accountHandler.Session))
	mux.Post("/account/verify_email", authMiddleware.ThenFunc(app.accountHandler.VerifyEmail))
	mux.Post("/account/setup_password", authMiddleware.ThenFunc(app.accountHandler.SetupPassword))

	// Marketplace requests
	mux.Post("/request", authMiddleware.ThenFunc(app.requestHandler.CreateRequest))
	mux.Post("/request/guest", standardMiddleware.ThenFunc(app.requestHandler.CreateRequest))
	mux.Get("/request/browse", authMiddleware.ThenFunc(app.requestHandler.BrowseRequests))
	mux.Get("/request/my", authMiddleware.ThenFunc(app.requestHandler.GetMyRequests))
	mux.Get("/request/:id", authMiddleware.ThenFunc(app.requestHandler.GetRequestByID))
	mux.Post("/request/:id/cancel", authMiddleware.ThenFunc(app.requestHandler.CancelRequest))

	// Marketplace responses
	mux.Post("/response", authMiddleware.ThenFunc(app.responseHandler.CreateResponse))
	mux.Post("/response/:id/accept", authMiddleware.ThenFunc(app.responseHandler.AcceptResponse))
	mux.Post("/response/:id/decline", authMiddleware.ThenFunc(app.responseHandler.DeclineResponse))

	// Work orders
	mux.Get("/work_order/my", authMiddleware.ThenFunc(app.workOrderHandler.GetMyWorkOrders))
	mux.Get("/work_order/:id", authMiddleware.ThenFunc(app.workOrderHandler.GetWorkOrderByID))
	mux.Post("/work_order/:id/complete", authMiddleware.ThenFunc(app.workOrderHandler.CompleteWorkOrder))

	// Reviews
	mux.Post("/review", authMiddleware.ThenFunc(app.reviewHandler.CreateReview))
	mux.Get("/review/company/:company_id", authMiddleware.ThenFunc(app.reviewHandler.GetReviewsByCompanyID))

	// Messages
	mux.Get("/ws", authMiddleware.ThenFunc(app.WebSocketHandler))
	mux.Post("/message", authMiddleware.ThenFunc(app.messageHandler.CreateMessage))
	mux.Get("/message/threads", authMiddleware.ThenFunc(app.messageHandler.GetThreads))
	mux.Get("/message/:type/:context_id", authMiddleware.ThenFunc(app.messageHandler.GetMessagesForContext))
	mux.Post("/message/read", authMiddleware.ThenFunc(app.messageHandler.MarkRead))

	// Companies
	mux.Get("/company/by_tags", authMiddleware.ThenFunc(app.companyHandler.GetCompaniesByTags))
	mux.Get("/company/:id", authMiddleware.ThenFunc(app.companyHandler.GetCompanyByID))

	// Settings
	mux.Get("/settings/:company_id/marketplace", authMiddleware.ThenFunc(app.settingsHandler.GetMarketplaceSettings))
	mux.Get("/settings/:company_id/quote_acceptance", authMiddleware.ThenFunc(app.settingsHandler.GetQuoteAcceptanceSettings))
	mux.Put("/settings/:company_id/:area", authMiddleware.ThenFunc(app.settingsHandler.UpdateSettings))
	mux.Post("/settings/:company_id/templates", authMiddleware.ThenFunc(app.settingsHandler.UploadTemplate))
	mux.Get("/settings/:company_id/templates", authMiddleware.ThenFunc(app.settingsHandler.GetTemplates))

	// Invoices
	mux.Get("/invoice/my", authMiddleware.ThenFunc(app.invoiceHandler.GetMyInvoices))
	mux.Get("/invoice/:id", authMiddleware.ThenFunc(app.invoiceHandler.GetInvoiceByID))

	// Tags
	mux.Get("/tags", standardMiddleware.ThenFunc(app.requestHandler.GetAllTags))

	// Push tokens
	mux.Post("/device_token", authMiddleware.ThenFunc(app.deviceTokenHandler.RegisterToken))

	return standardMiddleware.Then(mux)
}
