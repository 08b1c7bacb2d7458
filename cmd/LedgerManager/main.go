package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rkhatri/LedgerManager/internal/auth"
	database "github.com/rkhatri/LedgerManager/internal/db"
	"github.com/rkhatri/LedgerManager/internal/ledger/application"
	"github.com/rkhatri/LedgerManager/internal/ledger/infrastructure"
	"github.com/rkhatri/LedgerManager/internal/ledger/interfaces"
)

type Response struct {
	Message string `json:"message"`
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("Started %s %s", r.Method, r.URL.Path)

		next.ServeHTTP(w, r)

		log.Printf("Completed %s in %v", r.URL.Path, time.Since(start))
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string, errs ...[]string) {
	payload := map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	}
	if len(errs) > 0 && len(errs[0]) > 0 {
		payload["errors"] = errs[0]
	}
	respondJSON(w, status, payload)
}

type Server struct {
	router          *http.ServeMux
	authService     auth.Service
	dbService       *database.DBService
	accountHandler  *interfaces.AccountHandler
	categoryHandler *interfaces.CategoryHandler
	entryHandler    *interfaces.EntryHandler
	lendingHandler  *interfaces.LendingHandler
	summaryHandler  *interfaces.SummaryHandler
}

func NewServer(
	authService auth.Service,
	dbService *database.DBService,
	accountHandler *interfaces.AccountHandler,
	categoryHandler *interfaces.CategoryHandler,
	entryHandler *interfaces.EntryHandler,
	lendingHandler *interfaces.LendingHandler,
	summaryHandler *interfaces.SummaryHandler,
) *Server {
	return &Server{
		router:          http.NewServeMux(),
		authService:     authService,
		dbService:       dbService,
		accountHandler:  accountHandler,
		categoryHandler: categoryHandler,
		entryHandler:    entryHandler,
		lendingHandler:  lendingHandler,
		summaryHandler:  summaryHandler,
	}
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(Response{Message: "Path not found"})
}

func checkConfiguration() error {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, continuing with system environment variables")
	}

	if os.Getenv("JWT_SECRET") == "" {
		return errors.New("no JWT_SECRET Provided")
	}
	if os.Getenv("DB_CONNECTION_STRING") == "" {
		return errors.New("no DB_CONNECTION_STRING Provided")
	}
	return nil
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	stats := s.dbService.Health()
	status := http.StatusOK
	if stats["status"] != "up" {
		status = http.StatusServiceUnavailable
	}
	respondJSON(w, status, stats)
}

func (s *Server) RegisterRoutes() {
	// Public routes
	publicRoutes := http.NewServeMux()
	publicRoutes.Handle("GET /api/ready", http.HandlerFunc(s.handleReady))

	// Protected routes (using JWT Access Token Middleware)
	protected := s.authService.JWTAccessTokenMiddleware()
	protectedRoutes := http.NewServeMux()

	// ACCOUNTS API
	protectedRoutes.Handle("GET /api/accounts", protected(http.HandlerFunc(s.accountHandler.GetAccounts)))
	protectedRoutes.Handle("POST /api/accounts", protected(http.HandlerFunc(s.accountHandler.CreateAccount)))
	protectedRoutes.Handle("PUT /api/accounts/{accountID}", protected(http.HandlerFunc(s.accountHandler.UpdateAccount)))
	protectedRoutes.Handle("DELETE /api/accounts/{accountID}", protected(http.HandlerFunc(s.accountHandler.DeleteAccount)))
	protectedRoutes.Handle("POST /api/accounts/transfer", protected(http.HandlerFunc(s.accountHandler.TransferFunds)))

	// CATEGORIES API
	protectedRoutes.Handle("GET /api/categories", protected(http.HandlerFunc(s.categoryHandler.GetCategories)))
	protectedRoutes.Handle("POST /api/categories", protected(http.HandlerFunc(s.categoryHandler.CreateCategory)))
	protectedRoutes.Handle("PUT /api/categories/{categoryID}", protected(http.HandlerFunc(s.categoryHandler.UpdateCategory)))
	protectedRoutes.Handle("DELETE /api/categories/{categoryID}", protected(http.HandlerFunc(s.categoryHandler.DeleteCategory)))

	// ENTRIES API
	protectedRoutes.Handle("GET /api/entries", protected(http.HandlerFunc(s.entryHandler.GetEntries)))
	protectedRoutes.Handle("POST /api/entries", protected(http.HandlerFunc(s.entryHandler.CreateEntry)))
	protectedRoutes.Handle("DELETE /api/entries/{entryID}", protected(http.HandlerFunc(s.entryHandler.DeleteEntry)))

	// LENDINGS API
	protectedRoutes.Handle("GET /api/lendings", protected(http.HandlerFunc(s.lendingHandler.GetLendings)))
	protectedRoutes.Handle("POST /api/lendings", protected(http.HandlerFunc(s.lendingHandler.CreateLending)))
	protectedRoutes.Handle("POST /api/lendings/{lendingID}/settle", protected(http.HandlerFunc(s.lendingHandler.SettleLending)))

	// DASHBOARD API
	protectedRoutes.Handle("GET /api/summary", protected(http.HandlerFunc(s.summaryHandler.GetSummary)))

	// Main router
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/api/ready", publicRoutes)
	mainRouter.Handle("/api/", protectedRoutes)
	mainRouter.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = mainRouter
}

func main() {
	if err := checkConfiguration(); err != nil {
		log.Fatalf("Missing configuration, update to start server: %v", err)
	}

	dbService, err := database.NewDBService()
	if err != nil {
		log.Fatalf("Could not initialize database: %v", err)
	}
	defer dbService.Close()

	if err := database.RunMigrations(dbService.DB); err != nil {
		log.Fatalf("Could not run migrations: %v", err)
	}

	jwtManager := auth.NewJWTManager()
	authService := auth.NewAuthService(jwtManager)

	accountRepo := infrastructure.NewAccountRepository(dbService.DB)
	categoryRepo := infrastructure.NewCategoryRepository(dbService.DB)
	entryRepo := infrastructure.NewEntryRepository(dbService.DB)
	lendingRepo := infrastructure.NewLendingRepository(dbService.DB)
	txRunner := infrastructure.NewSQLTxRunner(dbService.DB)

	accountService := application.NewAccountService(accountRepo, txRunner)
	categoryService := application.NewCategoryService(categoryRepo)
	entryService := application.NewEntryService(entryRepo, categoryService, txRunner)
	lendingService := application.NewLendingService(lendingRepo, txRunner)
	summaryService := application.NewSummaryService(entryRepo)

	accountHandler := interfaces.NewAccountHandler(accountService, respondJSON, respondError)
	categoryHandler := interfaces.NewCategoryHandler(categoryService, respondJSON, respondError)
	entryHandler := interfaces.NewEntryHandler(entryService, respondJSON, respondError)
	lendingHandler := interfaces.NewLendingHandler(lendingService, respondJSON, respondError)
	summaryHandler := interfaces.NewSummaryHandler(summaryService, respondJSON, respondError)

	server := NewServer(authService, dbService, accountHandler, categoryHandler, entryHandler, lendingHandler, summaryHandler)
	server.RegisterRoutes()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	handler := loggingMiddleware(http.HandlerFunc(server.router.ServeHTTP))
	log.Printf("Server starting on port %s...", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
