package models

import "time"

// Task is the core persisted record. TaskID is the sole primary key;
// OwnerID and CreatedAt never change after creation.
type Task struct {
	TaskID        string    `json:"taskId"`
	OwnerID       string    `json:"ownerId"`
	Title         string    `json:"title"`
	DueDate       string    `json:"dueDate"`
	Done          bool      `json:"done"`
	CreatedAt     time.Time `json:"createdAt"`
	AttachmentURL string    `json:"attachmentUrl,omitempty"`
}

// CreateTaskRequest is the validated body for task creation.
type CreateTaskRequest struct {
	Title   string `json:"title" binding:"required"`
	DueDate string `json:"dueDate" binding:"required"`
}

// UpdateTaskRequest is the validated body for a partial task update.
// Done has no binding tag so that false is an acceptable value.
type UpdateTaskRequest struct {
	Title   string `json:"title" binding:"required"`
	DueDate string `json:"dueDate" binding:"required"`
	Done    bool   `json:"done"`
}
