package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/picthaisky/jobmarket/docs"
	"github.com/picthaisky/jobmarket/internal/booking"
	"github.com/picthaisky/jobmarket/internal/config"
	"github.com/picthaisky/jobmarket/internal/database"
	"github.com/picthaisky/jobmarket/internal/income"
	"github.com/picthaisky/jobmarket/internal/payment"
	"github.com/picthaisky/jobmarket/internal/payment/settle"
	"github.com/picthaisky/jobmarket/internal/provider"
	"github.com/picthaisky/jobmarket/internal/review"
	"github.com/picthaisky/jobmarket/internal/user"
	mw "github.com/picthaisky/jobmarket/pkg/middleware"
)

// @title           JobMarket API
// @version         1.0
// @description     Job and service marketplace with escrow payments, platform commission and withholding tax.
// @BasePath        /api/v1
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize database connection
	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Println("Connected to database successfully")

	// Settlement engine (commission and withholding tax rates from config)
	engine, err := settle.NewEngine(settle.Rates{
		Commission:     cfg.CommissionRate,
		WithholdingTax: cfg.WithholdingTaxRate,
	})
	if err != nil {
		log.Fatalf("Invalid settlement rates: %v", err)
	}

	// User feature
	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)

	// Provider feature
	providerRepo := provider.NewRepository(db)
	providerService := provider.NewService(providerRepo, userService)
	providerHandler := provider.NewHandler(providerService)

	// Income feature (withholding certificates and yearly summaries)
	incomeRepo := income.NewRepository(db)
	incomeService := income.NewService(incomeRepo)
	incomeHandler := income.NewHandler(incomeService)

	// Payment feature (with engine and income service injected)
	paymentRepo := payment.NewRepository(db)
	paymentService := payment.NewService(paymentRepo, engine, incomeService)
	paymentHandler := payment.NewHandler(paymentService)

	// Booking feature (captures a payment on completion)
	bookingRepo := booking.NewRepository(db)
	bookingService := booking.NewService(bookingRepo, paymentService)
	bookingHandler := booking.NewHandler(bookingService)

	// Review feature (updates provider rating aggregates)
	reviewRepo := review.NewRepository(db)
	reviewService := review.NewService(reviewRepo, bookingService, providerService)
	reviewHandler := review.NewHandler(reviewService)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(mw.TestUserMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Mount feature routers
		r.Mount("/users", userHandler.Routes())
		r.Mount("/providers", providerHandler.Routes())
		r.Mount("/bookings", bookingHandler.Routes())
		r.Mount("/payments", paymentHandler.Routes())
		r.Mount("/reviews", reviewHandler.Routes())
		r.Mount("/income", incomeHandler.Routes())
	})

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
