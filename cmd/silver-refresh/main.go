package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mmdatafocus/dwh_backend/config"
	"github.com/mmdatafocus/dwh_backend/models"
	"github.com/mmdatafocus/dwh_backend/utils"
	"github.com/mmdatafocus/dwh_backend/workflow"
)

func main() {
	kindFlag := flag.String("kind", "", "Optional: refresh a single entity kind (customers, products, sales_lines, customer_demos, locations, product_categories). Default: all")
	migrate := flag.Bool("migrate", false, "Run schema migration before refreshing")
	noLock := flag.Bool("no-lock", false, "Skip the shared refresh lock (default: lock via REDIS_ADDRESS)")
	continueOnError := flag.Bool("continue-on-error", false, "Exit 0 even when some entity kinds fail; failures are still reported")
	flag.Parse()

	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized")
		os.Exit(1)
	}
	if *migrate {
		models.MigrateTable()
	}
	if !*noLock {
		config.ConnectRedisWithRetry()
	}

	logger := config.GetLogger()
	refresher := workflow.NewRefresher(db, logger)
	ctx := context.Background()

	run := func(ctx context.Context) error {
		if strings.TrimSpace(*kindFlag) == "" {
			return refresher.RefreshAll(ctx)
		}
		kind, err := models.ParseEntityKind(strings.TrimSpace(*kindFlag))
		if err != nil {
			return err
		}
		return refresher.RefreshKind(ctx, kind)
	}

	fmt.Printf("Refreshing silver tables (run=%s)\n", refresher.RunID)
	if err := workflow.WithRefreshLock(ctx, run); err != nil {
		// Per-kind load failures never block the remaining kinds; with
		// -continue-on-error they don't fail the tool either. A refresh
		// already holding the lock is always fatal.
		if errors.Is(err, utils.ErrorRefreshInProgress) || !*continueOnError {
			fmt.Fprintf(os.Stderr, "refresh failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "refresh completed with failures (skipped): %v\n", err)
	}
	fmt.Println("Done.")
}
