package main

import (
	"context"
	"log"
	"net/http"
	"os"

	webAdapter "github.com/fazalktk93/cda-store/internal/adapters/web"
	"github.com/fazalktk93/cda-store/internal/app"
	"github.com/fazalktk93/cda-store/internal/core"
	"github.com/fazalktk93/cda-store/internal/db"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	pool, err := db.NewPool(ctx, os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	catalog := core.NewCatalogService(pool)
	ledger := core.NewStockLedger(pool)
	reporting := core.NewReportingService(pool)

	svc := app.NewAppService(catalog, ledger, reporting)

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	handler := webAdapter.NewHandler(svc, allowedOrigins)

	log.Printf("server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("server: %v", err)
	}
}
