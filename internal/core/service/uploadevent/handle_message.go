package uploadevent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"moapyr/internal/core/domain"
	"net/url"
)

// HandleMessage finalizes every resource whose object was created. Messages that can
// never succeed are dropped so they are not redelivered.
func (u *uploadEventService) HandleMessage(ctx context.Context, data []byte) error {
	var event domain.BucketNotification

	if err := json.Unmarshal(data, &event); err != nil {
		u.logger.Warn("dropping unreadable bucket notification", "error", err)
		return nil
	}
	if len(event.Records) == 0 {
		u.logger.Warn("dropping bucket notification without records", "event", event.EventName)
		return nil
	}

	var errs []error
	for _, record := range event.Records {
		if !domain.IsObjectCreated(record.EventName) {
			continue
		}

		key, err := url.QueryUnescape(record.S3.Object.Key)
		if err != nil {
			u.logger.Warn("dropping record with undecodable key", "key", record.S3.Object.Key, "error", err)
			continue
		}

		id, err := domain.ResourceIDFromFileKey(key)
		if err != nil {
			u.logger.Warn("object key does not belong to a resource", "key", key)
			continue
		}

		u.logger.Info("handling bucket event", "event", record.EventName, "key", key, "resource_id", id)

		err = u.resources.FinalizePendingUpload(ctx, id)
		switch {
		case errors.Is(err, domain.ErrResourceNotFound):
			u.logger.Warn("no resource for uploaded object", "key", key, "resource_id", id)
		case err != nil:
			errs = append(errs, fmt.Errorf("finalize %s: %w", id, err))
		}
	}

	return errors.Join(errs...)
}
