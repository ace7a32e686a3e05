package config

import (
	"os"
	"strings"
)

// ParallelSilverLoads runs the six entity-kind loads concurrently instead of
// sequentially. Each load touches disjoint tables, so this is safe; it is off
// by default to keep log output readable on small instances.
//
// Set via env:
// - SILVER_PARALLEL_LOADS=true
func ParallelSilverLoads() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("SILVER_PARALLEL_LOADS")))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}

// SilverBatchSize is the insert batch size used when writing a cleaned table.
//
// Set via env:
// - SILVER_BATCH_SIZE=500
func SilverBatchSize() int {
	n := intFromEnv("SILVER_BATCH_SIZE", 500)
	if n <= 0 {
		return 500
	}
	return n
}
