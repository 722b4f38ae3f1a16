package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fazalktk93/cda-store/internal/core"
	"github.com/fazalktk93/cda-store/internal/db"

	"github.com/joho/godotenv"
)

// Replays the receipt/issue ledger and rewrites every stock item's cached
// quantity and total_price. Run after manual data surgery or suspected drift;
// the ledger tables are the source of truth, the cache is a read optimization.
func main() {
	_ = godotenv.Load()
	ctx := context.Background()

	pool, err := db.NewPool(ctx, os.Getenv("DATABASE_URL"))
	if err != nil {
		fmt.Printf("Failed to connect to DB: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	ledger := core.NewStockLedger(pool)
	n, err := ledger.RebuildQuantities(ctx)
	if err != nil {
		fmt.Printf("Rebuild failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Rebuilt cached quantities for %d stock items.\n", n)
}
