package store

import (
	"context"

	"task-backend/internal/models"
)

// TaskUpdate carries the three mutable task fields for a partial update.
// Other attributes (owner, creation time, attachment URL) are never touched
// through this path.
type TaskUpdate struct {
	Title   string
	DueDate string
	Done    bool
}

// RecordStore is the persistence contract for tasks. Implementations hold no
// business rules: ownership checks and id assignment live in the service
// layer. Errors from the underlying client propagate unchanged; there is no
// retry in this layer.
type RecordStore interface {
	// ItemExists reports whether a record with the given id is present.
	ItemExists(ctx context.Context, taskID string) (bool, error)

	// GetItem returns the task for taskID, or (nil, nil) when absent.
	GetItem(ctx context.Context, taskID string) (*models.Task, error)

	// ListByOwner returns the owner's tasks oldest first.
	ListByOwner(ctx context.Context, ownerID string) ([]models.Task, error)

	// ListByOwnerRecentFirst returns the owner's tasks newest first.
	ListByOwnerRecentFirst(ctx context.Context, ownerID string) ([]models.Task, error)

	// CreateItem inserts the task unconditionally, silently overwriting any
	// record with the same id. Callers guarantee uniqueness by generating a
	// fresh random id per creation.
	CreateItem(ctx context.Context, task *models.Task) error

	// UpdateFields writes exactly the three mutable fields of the task.
	UpdateFields(ctx context.Context, taskID string, upd TaskUpdate) error

	// UpdateAttachmentURL writes only the attachment URL field.
	UpdateAttachmentURL(ctx context.Context, taskID, url string) error

	// DeleteItem removes the record by id. Deleting an absent id is not an
	// error.
	DeleteItem(ctx context.Context, taskID string) error
}

// AttachmentStore produces the two URL representations of an attachment: a
// stable public read URL and a time-limited pre-signed write URL. The write
// URL is never persisted.
type AttachmentStore interface {
	// AttachmentReadURL deterministically builds the public object URL for
	// the attachment id. No network call is made.
	AttachmentReadURL(attachmentID string) string

	// AttachmentWriteURL returns a pre-signed, expiring URL granting a
	// single-object upload.
	AttachmentWriteURL(ctx context.Context, attachmentID string) (string, error)
}
