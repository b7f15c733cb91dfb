package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"task-backend/internal/models"
	"task-backend/internal/store"
	"task-backend/pkg/logger"
)

var (
	// ErrTaskNotFound means the referenced task id has no matching record.
	ErrTaskNotFound = errors.New("task not found")
	// ErrNotTaskOwner means the task exists but belongs to a different owner.
	ErrNotTaskOwner = errors.New("caller is not the task owner")
)

// Service enforces the ownership invariant and coordinates multi-step flows.
// It holds no state of its own; all durable state lives in the record store.
type Service struct {
	records     store.RecordStore
	attachments store.AttachmentStore
}

// New creates a Service over the given stores.
func New(records store.RecordStore, attachments store.AttachmentStore) *Service {
	return &Service{records: records, attachments: attachments}
}

// ListTasks returns the owner's tasks in ascending chronological order.
func (s *Service) ListTasks(ctx context.Context, ownerID string) ([]models.Task, error) {
	logger.Info(ctx, "Listing tasks", "owner_id", ownerID)
	return s.records.ListByOwner(ctx, ownerID)
}

// RecentTasks returns the owner's tasks newest first.
func (s *Service) RecentTasks(ctx context.Context, ownerID string) ([]models.Task, error) {
	return s.records.ListByOwnerRecentFirst(ctx, ownerID)
}

// CreateTask assigns a fresh id and creation timestamp, persists the task and
// returns it. Done starts false and no attachment URL is set.
func (s *Service) CreateTask(ctx context.Context, ownerID string, req models.CreateTaskRequest) (*models.Task, error) {
	task := &models.Task{
		TaskID:    uuid.New().String(),
		OwnerID:   ownerID,
		Title:     req.Title,
		DueDate:   req.DueDate,
		Done:      false,
		CreatedAt: time.Now().UTC(),
	}
	logger.Info(ctx, "Creating task", "owner_id", ownerID, "task_id", task.TaskID)
	if err := s.records.CreateItem(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateTask applies a partial update of title, due date and done after the
// ownership check. The read-then-write sequence is not atomic; concurrent
// updates to the same task are last-writer-wins.
func (s *Service) UpdateTask(ctx context.Context, ownerID, taskID string, req models.UpdateTaskRequest) error {
	if err := s.authorize(ctx, ownerID, taskID); err != nil {
		return err
	}
	logger.Info(ctx, "Updating task", "owner_id", ownerID, "task_id", taskID)
	return s.records.UpdateFields(ctx, taskID, store.TaskUpdate{
		Title:   req.Title,
		DueDate: req.DueDate,
		Done:    req.Done,
	})
}

// DeleteTask removes the task after the ownership check.
func (s *Service) DeleteTask(ctx context.Context, ownerID, taskID string) error {
	if err := s.authorize(ctx, ownerID, taskID); err != nil {
		return err
	}
	logger.Info(ctx, "Deleting task", "owner_id", ownerID, "task_id", taskID)
	return s.records.DeleteItem(ctx, taskID)
}

// LinkAttachment computes the public read URL for the attachment and writes it
// onto the task after the ownership check. The write is awaited so that the
// link is durably recorded before the caller responds.
func (s *Service) LinkAttachment(ctx context.Context, ownerID, taskID, attachmentID string) error {
	attachmentURL := s.attachments.AttachmentReadURL(attachmentID)
	if err := s.authorize(ctx, ownerID, taskID); err != nil {
		return err
	}
	logger.Info(ctx, "Linking attachment", "task_id", taskID, "attachment_url", attachmentURL)
	return s.records.UpdateAttachmentURL(ctx, taskID, attachmentURL)
}

// RequestUploadURL returns a time-limited write URL for the attachment id.
// No ownership check happens here; the caller links the attachment to a task
// it owns within the same request.
func (s *Service) RequestUploadURL(ctx context.Context, attachmentID string) (string, error) {
	return s.attachments.AttachmentWriteURL(ctx, attachmentID)
}

// HasTasks reports whether the owner index holds at least one task for the
// owner. This is how the listing handler distinguishes callers; an owner with
// zero tasks is indistinguishable from an unknown one.
func (s *Service) HasTasks(ctx context.Context, ownerID string) (bool, error) {
	tasks, err := s.records.ListByOwner(ctx, ownerID)
	if err != nil {
		return false, err
	}
	return len(tasks) > 0, nil
}

// authorize loads the task and verifies the caller owns it.
func (s *Service) authorize(ctx context.Context, ownerID, taskID string) error {
	task, err := s.records.GetItem(ctx, taskID)
	if err != nil {
		return err
	}
	if task == nil {
		return ErrTaskNotFound
	}
	if task.OwnerID != ownerID {
		logger.Warn(ctx, "Ownership check failed", "owner_id", ownerID, "task_id", taskID)
		return ErrNotTaskOwner
	}
	return nil
}
