package main

import (
	"database/sql"
	"log"
	"net/http"

	"firebase.google.com/go/messaging"
	"github.com/redis/go-redis/v9"

	"portalBack/internal/config"
	"portalBack/internal/handlers"
	"portalBack/internal/repositories"
	"portalBack/internal/services"
	"portalBack/utils"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger
	cfg      config.Config
	db       *sql.DB

	accountRepo *repositories.AccountRepository

	invoiceService *services.InvoiceService
	messageService *services.MessageService

	accountHandler     *handlers.AccountHandler
	requestHandler     *handlers.MarketplaceRequestHandler
	responseHandler    *handlers.MarketplaceResponseHandler
	workOrderHandler   *handlers.WorkOrderHandler
	reviewHandler      *handlers.ReviewHandler
	messageHandler     *handlers.MessageHandler
	companyHandler     *handlers.CompanyHandler
	settingsHandler    *handlers.SettingsHandler
	invoiceHandler     *handlers.InvoiceHandler
	deviceTokenHandler *handlers.DeviceTokenHandler

	wsManager *WebSocketManager
}

func initializeApp(db *sql.DB, cache *redis.Client, fcmClient *messaging.Client, cfg config.Config, errorLog, infoLog *log.Logger) (*application, error) {
	// Repositories
	requestRepo := repositories.MarketplaceRequestRepository{DB: db}
	responseRepo := repositories.MarketplaceResponseRepository{DB: db}
	workOrderRepo := repositories.WorkOrderRepository{DB: db}
	reviewRepo := repositories.ReviewRepository{DB: db}
	messageRepo := repositories.MessageRepository{DB: db}
	tagRepo := repositories.TagRepository{DB: db}
	companyRepo := repositories.CompanyRepository{DB: db}
	accountRepo := repositories.AccountRepository{DB: db}
	settingsRepo := repositories.SettingsRepository{DB: db}
	invoiceRepo := repositories.InvoiceRepository{DB: db}
	deviceTokenRepo := repositories.DeviceTokenRepository{DB: db}

	tokenManager, err := utils.NewManager(cfg.Auth.SigningKey)
	if err != nil {
		return nil, err
	}
	storage := utils.NewStorage(cfg.Storage.AccessKey, cfg.Storage.SecretKey,
		cfg.Storage.Bucket, cfg.Storage.Region, cfg.Storage.Endpoint)

	// Services
	notificationService := &services.NotificationService{
		Client:    fcmClient,
		TokenRepo: &deviceTokenRepo,
	}
	settingsService := &services.SettingsService{
		SettingsRepo: &settingsRepo,
		Cache:        cache,
		Storage:      storage,
	}
	marketplaceService := &services.MarketplaceService{
		RequestRepo:  &requestRepo,
		ResponseRepo: &responseRepo,
		TagRepo:      &tagRepo,
		Customers:    &accountRepo,
		Notifier:     notificationService,
		Settings:     settingsService,
	}
	workOrderService := &services.WorkOrderService{WorkOrderRepo: &workOrderRepo}
	reviewService := &services.ReviewService{ReviewsRepo: &reviewRepo, WorkOrderRepo: &workOrderRepo}
	messageService := &services.MessageService{
		MessageRepo:   &messageRepo,
		RequestRepo:   &requestRepo,
		WorkOrderRepo: &workOrderRepo,
		Notifier:      notificationService,
	}
	companyService := &services.CompanyService{CompanyRepo: &companyRepo}
	accountService := &services.AccountService{
		AccountRepo:  &accountRepo,
		TokenManager: tokenManager,
		SigningKey:   cfg.Auth.SigningKey,
	}
	invoiceService := &services.InvoiceService{InvoiceRepo: &invoiceRepo, WorkOrderRepo: &workOrderRepo}

	// Handlers
	accountHandler := &handlers.AccountHandler{Service: accountService}
	requestHandler := &handlers.MarketplaceRequestHandler{Service: marketplaceService}
	responseHandler := &handlers.MarketplaceResponseHandler{Service: marketplaceService}
	workOrderHandler := &handlers.WorkOrderHandler{Service: workOrderService, Invoices: invoiceService}
	reviewHandler := &handlers.ReviewHandler{Service: reviewService}
	messageHandler := &handlers.MessageHandler{Service: messageService}
	companyHandler := &handlers.CompanyHandler{Service: companyService}
	settingsHandler := &handlers.SettingsHandler{Service: settingsService}
	invoiceHandler := &handlers.InvoiceHandler{Service: invoiceService}
	deviceTokenHandler := &handlers.DeviceTokenHandler{Service: notificationService}

	return &application{
		errorLog:           errorLog,
		infoLog:            infoLog,
		cfg:                cfg,
		db:                 db,
		accountRepo:        &accountRepo,
		invoiceService:     invoiceService,
		messageService:     messageService,
		accountHandler:     accountHandler,
		requestHandler:     requestHandler,
		responseHandler:    responseHandler,
		workOrderHandler:   workOrderHandler,
		reviewHandler:      reviewHandler,
		messageHandler:     messageHandler,
		companyHandler:     companyHandler,
		settingsHandler:    settingsHandler,
		invoiceHandler:     invoiceHandler,
		deviceTokenHandler: deviceTokenHandler,
	}, nil
}

func openDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Printf("Failed to open DB: %v", err)
		return nil, err
	}
	if err = db.Ping(); err != nil {
		log.Printf("Failed to ping DB: %v", err)
		return nil, err
	}
	db.SetMaxIdleConns(35)
	log.Println("Successfully connected to database")
	return db, nil
}

func addSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cross-Origin-Opener-Policy", "same-origin")
		w.Header().Set("Cross-Origin-Resource-Policy", "same-origin")
		next.ServeHTTP(w, r)
	})
}
