package workflow

import (
	"context"
	"errors"
	"time"

	"github.com/bsm/redislock"
	"github.com/mmdatafocus/dwh_backend/config"
	"github.com/mmdatafocus/dwh_backend/utils"
)

const refreshLockKey = "silver:refresh"
const refreshLockTTL = 15 * time.Minute

// WithRefreshLock serializes full refreshes across instances so two
// concurrent triggers cannot interleave table replaces. When no redis
// locker is configured (batch tools run without redis) fn runs unguarded.
func WithRefreshLock(ctx context.Context, fn func(context.Context) error) error {
	locker := config.GetRedisLock()
	if locker == nil {
		return fn(ctx)
	}
	lock, err := locker.Obtain(ctx, refreshLockKey, refreshLockTTL, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return utils.ErrorRefreshInProgress
	}
	if err != nil {
		return err
	}
	defer lock.Release(ctx)
	return fn(ctx)
}
