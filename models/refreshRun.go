package models

import (
	"time"
)

type RefreshRunStatus string

const (
	RefreshRunStatusSucceeded RefreshRunStatus = "Succeeded"
	RefreshRunStatusFailed    RefreshRunStatus = "Failed"
)

// RefreshRun is bookkeeping for one entity kind within one refresh: how many
// bronze rows were read, how many silver rows written, and how many were
// dropped for having no parseable identity. Written best-effort after the
// load; it never participates in the replace transaction.
type RefreshRun struct {
	ID          int              `gorm:"primary_key" json:"id"`
	RunID       string           `gorm:"size:36;index;not null" json:"run_id"`
	Kind        EntityKind       `gorm:"size:50;not null" json:"kind"`
	RowsRead    int              `json:"rows_read"`
	RowsWritten int              `json:"rows_written"`
	RowsDropped int              `json:"rows_dropped"`
	Status      RefreshRunStatus `gorm:"type:enum('Succeeded','Failed')" json:"status"`
	Error       string           `gorm:"type:text" json:"error"`
	StartedAt   time.Time        `json:"started_at"`
	FinishedAt  time.Time        `json:"finished_at"`
}

func (RefreshRun) TableName() string {
	return "silver_refresh_runs"
}
