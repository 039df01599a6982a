package cleanup

import (
	"context"
	"moapyr/internal/core/port"
	"time"
)

func (c *cleanupService) CleanupAbandonedUploads(ctx context.Context, now time.Time) (int, error) {

	abandoned, err := c.uow.ResourceRepo().FindAbandoned(ctx, now.Add(-c.ttl))
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, res := range abandoned {

		txErr := c.uow.Execute(ctx, func(uow port.UnitOfWork) error {
			return uow.ResourceRepo().Delete(ctx, res.ID)
		})
		if txErr != nil {
			c.logger.Error("failed to delete abandoned upload", "resource_id", res.ID, "error", txErr)
			continue
		}
		removed++

		// the client may have sent bytes without finalizing
		if err := c.fileStorage.DeleteObject(ctx, res.FileKey); err != nil {
			c.logger.Warn("failed to delete abandoned object", "file_key", res.FileKey, "error", err)
		}
	}

	c.logger.Info("abandoned uploads cleanup completed", "found", len(abandoned), "removed", removed)
	return removed, nil
}
