package obs

import (
	"context"
	"pickup-route-service/internal/platform/logger"
	"time"

	"go.uber.org/zap"
)

// Time logs the duration of the named operation when the returned func runs.
// Pass the address of the caller's named error result to log failures.
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	return func(errp *error) {
		l := logger.FromContext(ctx)
		fields := []zap.Field{
			zap.String("op", name),
			zap.Int64("dur_ms", time.Since(start).Milliseconds()),
		}

		if errp != nil && *errp != nil {
			l.Warn("op failed", append(fields, zap.Error(*errp))...)
			return
		}
		l.Debug("op done", fields...)
	}
}
