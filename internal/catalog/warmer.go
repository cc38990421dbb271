package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const warmTimeout = 30 * time.Second

// StartWarmer refreshes the catalog cache on spec (standard cron syntax or a
// descriptor such as "@every 10m"). The caller stops the returned scheduler.
func (r *Reader) StartWarmer(spec string) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), warmTimeout)
		defer cancel()

		start := time.Now()
		if err := r.Warm(ctx); err != nil {
			r.log.Warn("catalog warm failed", slog.Any("error", err))
			return
		}
		r.log.Debug("catalog warmed", slog.Duration("took", time.Since(start)))
	})
	if err != nil {
		return nil, fmt.Errorf("schedule catalog warmer %q: %w", spec, err)
	}

	c.Start()
	return c, nil
}
