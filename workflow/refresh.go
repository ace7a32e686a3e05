package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mmdatafocus/dwh_backend/config"
	"github.com/mmdatafocus/dwh_backend/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Refresher runs bronze-to-silver loads. Each entity kind's load reads the
// full bronze snapshot in ingestion order, transforms it in memory, and
// replaces the silver table inside one transaction (clear-then-write, never
// upsert), so readers only ever see the previous complete snapshot or the
// new one. The six kinds touch disjoint tables and are fully independent:
// one kind failing neither blocks nor rolls back the others.
type Refresher struct {
	DB     *gorm.DB
	Logger *logrus.Logger
	RunID  string

	BatchSize int
	Now       func() time.Time
}

func NewRefresher(db *gorm.DB, logger *logrus.Logger) *Refresher {
	return &Refresher{
		DB:        db,
		Logger:    logger,
		RunID:     uuid.NewString(),
		BatchSize: config.SilverBatchSize(),
		Now:       time.Now,
	}
}

// RefreshAll loads every entity kind, sequentially by default or
// concurrently when SILVER_PARALLEL_LOADS is set. All kinds are always
// attempted; the joined error reports every kind that failed.
func (r *Refresher) RefreshAll(ctx context.Context) error {
	kinds := models.AllEntityKinds()
	errs := make([]error, len(kinds))

	if config.ParallelSilverLoads() {
		var wg sync.WaitGroup
		for i, kind := range kinds {
			wg.Add(1)
			go func(i int, kind models.EntityKind) {
				defer wg.Done()
				errs[i] = r.RefreshKind(ctx, kind)
			}(i, kind)
		}
		wg.Wait()
	} else {
		for i, kind := range kinds {
			errs[i] = r.RefreshKind(ctx, kind)
		}
	}
	return errors.Join(errs...)
}

func (r *Refresher) RefreshKind(ctx context.Context, kind models.EntityKind) error {
	var err error
	switch kind {
	case models.EntityKindCustomers:
		err = r.loadCustomers(ctx)
	case models.EntityKindProducts:
		err = r.loadProducts(ctx)
	case models.EntityKindSalesLines:
		err = r.loadSalesLines(ctx)
	case models.EntityKindCustomerDemos:
		err = r.loadCustomerDemos(ctx)
	case models.EntityKindLocations:
		err = r.loadLocations(ctx)
	case models.EntityKindProductCategories:
		err = r.loadProductCategories(ctx)
	default:
		err = fmt.Errorf("unknown entity kind %q", kind)
	}
	if err != nil {
		config.LogError(r.Logger, "workflow", "RefreshKind", string(kind), nil, err)
		return fmt.Errorf("refresh %s: %w", kind, err)
	}
	return nil
}

func (r *Refresher) loadCustomers(ctx context.Context) error {
	startedAt := time.Now().UTC()
	loadedAt := r.loadTimestamp()

	var raws []models.BronzeCrmCustInfo
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&raws).Error; err != nil {
		return r.finishLoad(models.EntityKindCustomers, startedAt, len(raws), 0, 0, fmt.Errorf("read bronze_crm_cust_info: %w", err))
	}

	candidates := make([]CustomerCandidate, 0, len(raws))
	dropped := 0
	for _, raw := range raws {
		c, ok := NormalizeCustomer(raw)
		if !ok {
			dropped++
			continue
		}
		c.Record.LoadedAt = loadedAt
		candidates = append(candidates, c)
	}
	rows := DedupeCustomers(candidates)

	err := replaceAll(ctx, r.DB, r.BatchSize, rows)
	return r.finishLoad(models.EntityKindCustomers, startedAt, len(raws), len(rows), dropped, err)
}

func (r *Refresher) loadProducts(ctx context.Context) error {
	startedAt := time.Now().UTC()
	loadedAt := r.loadTimestamp()

	var raws []models.BronzeCrmPrdInfo
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&raws).Error; err != nil {
		return r.finishLoad(models.EntityKindProducts, startedAt, len(raws), 0, 0, fmt.Errorf("read bronze_crm_prd_info: %w", err))
	}

	candidates := make([]models.Product, 0, len(raws))
	dropped := 0
	for _, raw := range raws {
		p, ok := NormalizeProduct(raw)
		if !ok {
			dropped++
			continue
		}
		p.LoadedAt = loadedAt
		candidates = append(candidates, p)
	}
	rows := BuildProductIntervals(candidates)

	err := replaceAll(ctx, r.DB, r.BatchSize, rows)
	return r.finishLoad(models.EntityKindProducts, startedAt, len(raws), len(rows), dropped, err)
}

func (r *Refresher) loadSalesLines(ctx context.Context) error {
	startedAt := time.Now().UTC()
	loadedAt := r.loadTimestamp()

	var raws []models.BronzeCrmSalesDetails
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&raws).Error; err != nil {
		return r.finishLoad(models.EntityKindSalesLines, startedAt, len(raws), 0, 0, fmt.Errorf("read bronze_crm_sales_details: %w", err))
	}

	rows := make([]models.SalesLine, 0, len(raws))
	for _, raw := range raws {
		line := ReconcileSalesLine(NormalizeSalesLine(raw))
		line.LoadedAt = loadedAt
		rows = append(rows, line)
	}

	err := replaceAll(ctx, r.DB, r.BatchSize, rows)
	return r.finishLoad(models.EntityKindSalesLines, startedAt, len(raws), len(rows), 0, err)
}

func (r *Refresher) loadCustomerDemos(ctx context.Context) error {
	startedAt := time.Now().UTC()
	loadedAt := r.loadTimestamp()

	var raws []models.BronzeErpCustAz12
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&raws).Error; err != nil {
		return r.finishLoad(models.EntityKindCustomerDemos, startedAt, len(raws), 0, 0, fmt.Errorf("read bronze_erp_cust_az12: %w", err))
	}

	rows := make([]models.CustomerDemo, 0, len(raws))
	for _, raw := range raws {
		demo := NormalizeCustomerDemo(raw, loadedAt)
		demo.LoadedAt = loadedAt
		rows = append(rows, demo)
	}

	err := replaceAll(ctx, r.DB, r.BatchSize, rows)
	return r.finishLoad(models.EntityKindCustomerDemos, startedAt, len(raws), len(rows), 0, err)
}

func (r *Refresher) loadLocations(ctx context.Context) error {
	startedAt := time.Now().UTC()
	loadedAt := r.loadTimestamp()

	var raws []models.BronzeErpLocA101
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&raws).Error; err != nil {
		return r.finishLoad(models.EntityKindLocations, startedAt, len(raws), 0, 0, fmt.Errorf("read bronze_erp_loc_a101: %w", err))
	}

	rows := make([]models.Location, 0, len(raws))
	for _, raw := range raws {
		loc := NormalizeLocation(raw)
		loc.LoadedAt = loadedAt
		rows = append(rows, loc)
	}

	err := replaceAll(ctx, r.DB, r.BatchSize, rows)
	return r.finishLoad(models.EntityKindLocations, startedAt, len(raws), len(rows), 0, err)
}

func (r *Refresher) loadProductCategories(ctx context.Context) error {
	startedAt := time.Now().UTC()
	loadedAt := r.loadTimestamp()

	var raws []models.BronzeErpPxCatG1v2
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&raws).Error; err != nil {
		return r.finishLoad(models.EntityKindProductCategories, startedAt, len(raws), 0, 0, fmt.Errorf("read bronze_erp_px_cat_g1v2: %w", err))
	}

	rows := make([]models.ProductCategory, 0, len(raws))
	for _, raw := range raws {
		cat := NormalizeProductCategory(raw)
		cat.LoadedAt = loadedAt
		rows = append(rows, cat)
	}

	err := replaceAll(ctx, r.DB, r.BatchSize, rows)
	return r.finishLoad(models.EntityKindProductCategories, startedAt, len(raws), len(rows), 0, err)
}

// loadTimestamp reads the run clock once per load; every row of one kind's
// load carries the identical stamp.
func (r *Refresher) loadTimestamp() time.Time {
	return r.Now().UTC().Truncate(time.Second)
}

// replaceAll swaps a silver table's entire contents inside one transaction:
// either readers get the complete new snapshot or the previous one survives.
func replaceAll[T any](ctx context.Context, db *gorm.DB, batchSize int, rows []T) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model T
		if err := tx.Where("1 = 1").Delete(&model).Error; err != nil {
			return fmt.Errorf("clear target table: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(rows, batchSize).Error; err != nil {
			return fmt.Errorf("write target table: %w", err)
		}
		return nil
	})
}

// finishLoad records run bookkeeping and logs the outcome. Bookkeeping is
// best-effort: a failure to write the run row never fails the load itself.
func (r *Refresher) finishLoad(kind models.EntityKind, startedAt time.Time, read, written, dropped int, loadErr error) error {
	run := models.RefreshRun{
		RunID:       r.RunID,
		Kind:        kind,
		RowsRead:    read,
		RowsWritten: written,
		RowsDropped: dropped,
		Status:      models.RefreshRunStatusSucceeded,
		StartedAt:   startedAt,
		FinishedAt:  time.Now().UTC(),
	}
	if loadErr != nil {
		run.Status = models.RefreshRunStatusFailed
		run.Error = loadErr.Error()
		run.RowsWritten = 0
	}
	if err := r.DB.Create(&run).Error; err != nil {
		config.LogError(r.Logger, "workflow", "finishLoad", string(kind), nil, err)
	}
	if loadErr == nil {
		r.Logger.WithFields(logrus.Fields{
			"run_id":       r.RunID,
			"kind":         kind,
			"rows_read":    read,
			"rows_written": written,
			"rows_dropped": dropped,
		}).Info("silver load complete")
	}
	return loadErr
}
