// cmd/api/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"

	"siperpus/internal/catalog"
	"siperpus/internal/circulation"
	"siperpus/internal/config"
	"siperpus/internal/labels"
	"siperpus/internal/membership"
	"siperpus/internal/notifications"
	"siperpus/internal/postgres"
	"siperpus/internal/spreadsheet"
	"siperpus/internal/telemetry"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	shutdownTracing, err := telemetry.Setup(ctx, "siperpus", cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("Failed to set up telemetry: %v", err)
	}
	defer shutdownTracing(ctx)

	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	memberSvc := membership.NewService(membership.NewPostgresStore(db))
	catalogSvc := catalog.NewService(catalog.NewPostgresStore(db), cfg.BarcodePrefix)
	circulationSvc := circulation.NewService(
		circulation.NewPostgresStore(db),
		memberSvc,
		catalogSvc,
		circulation.Config{
			LoanPeriodDays:       cfg.LoanPeriodDays,
			RenewalIncrementDays: cfg.RenewalIncrementDays,
			DueSoonThresholdDays: cfg.DueSoonThresholdDays,
			MaxRenewals:          cfg.MaxRenewals,
			BorrowLimits: map[membership.Role]int{
				membership.RoleStudent:   cfg.StudentBorrowLimit,
				membership.RoleGuest:     cfg.StudentBorrowLimit,
				membership.RoleTeacher:   cfg.TeacherBorrowLimit,
				membership.RoleStaff:     cfg.StaffBorrowLimit,
				membership.RoleLibrarian: cfg.StaffBorrowLimit,
			},
		},
	)
	labelSvc := labels.NewService(labels.NewPostgresStore(db), catalogSvc, cfg.BarcodePrefix)
	notificationSvc := notifications.NewService(notifications.NewPostgresStore(db))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/members", membership.NewHandler(memberSvc).Routes())
		r.Mount("/books", catalog.NewHandler(catalogSvc).Routes())
		r.Mount("/circulation", circulation.NewHandler(circulationSvc).Routes())
		r.Mount("/labels", labels.NewHandler(labelSvc).Routes())
		r.Mount("/notifications", notifications.NewHandler(notificationSvc).Routes())
		r.Mount("/spreadsheet", spreadsheet.NewHandler(catalogSvc).Routes())
	})

	log.Printf("Starting siperpus API on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, r))
}
