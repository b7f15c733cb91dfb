package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"task-backend/internal/models"
	"task-backend/internal/service"
	"task-backend/pkg/logger"
)

// Controller holds the gin handlers for the task API. All state it needs is
// the injected task service.
type Controller struct {
	svc *service.Service
}

// New creates a Controller over the given service.
func New(svc *service.Service) *Controller {
	return &Controller{svc: svc}
}

// Health returns 200 if the process is alive. Used by load balancers.
func (ct *Controller) Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// GetTasks (auth): returns the caller's tasks, newest first by default
// (?order=asc for chronological). Responds 404 when the owner index holds no
// tasks for the caller.
func (ct *Controller) GetTasks(c *gin.Context) {
	ctx := c.Request.Context()
	uid, ok := ownerID(c)
	if !ok {
		return
	}
	has, err := ct.svc.HasTasks(ctx, uid)
	if err != nil {
		logger.Error(ctx, "GetTasks existence probe failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get tasks"})
		return
	}
	if !has {
		c.JSON(http.StatusNotFound, gin.H{"error": "User does not exist"})
		return
	}
	var tasks []models.Task
	if c.Query("order") == "asc" {
		tasks, err = ct.svc.ListTasks(ctx, uid)
	} else {
		tasks, err = ct.svc.RecentTasks(ctx, uid)
	}
	if err != nil {
		logger.Error(ctx, "GetTasks listing failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get tasks"})
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	c.JSON(http.StatusOK, gin.H{"items": tasks})
}

// CreateTask (auth): validates the body, persists a new task, returns 201.
func (ct *Controller) CreateTask(c *gin.Context) {
	ctx := c.Request.Context()
	uid, ok := ownerID(c)
	if !ok {
		return
	}
	var body models.CreateTaskRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	task, err := ct.svc.CreateTask(ctx, uid, body)
	if err != nil {
		logger.Error(ctx, "CreateTask failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": task})
}

// UpdateTask (auth): partial update of title, due date and done.
func (ct *Controller) UpdateTask(c *gin.Context) {
	ctx := c.Request.Context()
	uid, ok := ownerID(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing task id"})
		return
	}
	var body models.UpdateTaskRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	if err := ct.svc.UpdateTask(ctx, uid, id, body); err != nil {
		abortServiceError(c, err, "Failed to update task")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// DeleteTask (auth): deletes the caller's task.
func (ct *Controller) DeleteTask(c *gin.Context) {
	ctx := c.Request.Context()
	uid, ok := ownerID(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing task id"})
		return
	}
	if err := ct.svc.DeleteTask(ctx, uid, id); err != nil {
		abortServiceError(c, err, "Failed to delete task")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// GenerateUploadURL (auth): mints a fresh attachment id, links its public read
// URL onto the task, and returns a time-limited upload URL. The link write
// completes before the response is sent.
func (ct *Controller) GenerateUploadURL(c *gin.Context) {
	ctx := c.Request.Context()
	uid, ok := ownerID(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing task id"})
		return
	}
	attachmentID := uuid.New().String()
	uploadURL, err := ct.svc.RequestUploadURL(ctx, attachmentID)
	if err != nil {
		logger.Error(ctx, "Upload URL generation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate upload URL"})
		return
	}
	if err := ct.svc.LinkAttachment(ctx, uid, id, attachmentID); err != nil {
		abortServiceError(c, err, "Failed to link attachment")
		return
	}
	c.JSON(http.StatusOK, gin.H{"uploadUrl": uploadURL})
}

// ownerID extracts the authenticated owner id placed by the auth middleware.
func ownerID(c *gin.Context) (string, bool) {
	v, _ := c.Get("user")
	uid, _ := v.(string)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return uid, true
}

// abortServiceError maps service errors onto HTTP statuses: NotFound -> 404,
// ownership failure -> 403, anything else -> 500.
func abortServiceError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, service.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
	case errors.Is(err, service.ErrNotTaskOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not the task owner"})
	default:
		logger.Error(c.Request.Context(), msg, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}
