package pgstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"task-backend/internal/models"
	"task-backend/internal/store"
	"task-backend/pkg/logger"
)

var _ store.RecordStore = (*Store)(nil)

// Store persists tasks in Postgres. task_id is the primary key; a composite
// index on (owner_id, created_at) serves as the owner index.
type Store struct {
	db    *sql.DB
	table string
	index string
}

// New creates a Store over the given connection pool. table and index are the
// relation and index names, quoted before use.
func New(db *sql.DB, table, index string) *Store {
	return &Store{db: db, table: pq.QuoteIdentifier(table), index: pq.QuoteIdentifier(index)}
}

// Open opens a connection pool for the given database URL.
func Open(ctx context.Context, databaseURL string, poolSize int) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(poolSize)
	db.SetMaxIdleConns(poolSize / 2)
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	logger.Info(ctx, "Database pool initialized", "max_open", poolSize)
	return db, nil
}

// Migrate creates the tasks table and owner index if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS %s (
			task_id        TEXT PRIMARY KEY,
			owner_id       TEXT NOT NULL,
			title          TEXT NOT NULL,
			due_date       TEXT NOT NULL,
			done           BOOLEAN NOT NULL DEFAULT FALSE,
			created_at     TIMESTAMPTZ NOT NULL,
			attachment_url TEXT
		)`, s.table))
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, fmt.Sprintf(
		`CREATE INDEX IF NOT EXISTS %s ON %s (owner_id, created_at)`, s.index, s.table))
	return err
}

func (s *Store) ItemExists(ctx context.Context, taskID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, fmt.Sprintf(
		`SELECT EXISTS (SELECT 1 FROM %s WHERE task_id = $1)`, s.table), taskID).Scan(&exists)
	return exists, err
}

func (s *Store) GetItem(ctx context.Context, taskID string) (*models.Task, error) {
	row := s.db.QueryRowContext(ctx, fmt.Sprintf(
		`SELECT task_id, owner_id, title, due_date, done, created_at, attachment_url
		 FROM %s WHERE task_id = $1`, s.table), taskID)
	task, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *Store) ListByOwner(ctx context.Context, ownerID string) ([]models.Task, error) {
	return s.listByOwner(ctx, ownerID, "ASC")
}

func (s *Store) ListByOwnerRecentFirst(ctx context.Context, ownerID string) ([]models.Task, error) {
	return s.listByOwner(ctx, ownerID, "DESC")
}

func (s *Store) listByOwner(ctx context.Context, ownerID, order string) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT task_id, owner_id, title, due_date, done, created_at, attachment_url
		 FROM %s WHERE owner_id = $1 ORDER BY created_at %s`, s.table, order), ownerID)
	if err != nil {
		logger.Error(ctx, "List tasks query failed", "error", err, "owner_id", ownerID)
		return nil, err
	}
	defer rows.Close()
	var tasks []models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (s *Store) CreateItem(ctx context.Context, task *models.Task) error {
	attachment := sql.NullString{String: task.AttachmentURL, Valid: task.AttachmentURL != ""}
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(
		`INSERT INTO %s (task_id, owner_id, title, due_date, done, created_at, attachment_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (task_id) DO UPDATE SET
			owner_id = EXCLUDED.owner_id,
			title = EXCLUDED.title,
			due_date = EXCLUDED.due_date,
			done = EXCLUDED.done,
			created_at = EXCLUDED.created_at,
			attachment_url = EXCLUDED.attachment_url`, s.table),
		task.TaskID, task.OwnerID, task.Title, task.DueDate, task.Done, task.CreatedAt, attachment)
	if err != nil {
		logger.Error(ctx, "Create task failed", "error", err, "task_id", task.TaskID)
	}
	return err
}

func (s *Store) UpdateFields(ctx context.Context, taskID string, upd store.TaskUpdate) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(
		`UPDATE %s SET title = $1, due_date = $2, done = $3 WHERE task_id = $4`, s.table),
		upd.Title, upd.DueDate, upd.Done, taskID)
	if err != nil {
		logger.Error(ctx, "Update task failed", "error", err, "task_id", taskID)
	}
	return err
}

func (s *Store) UpdateAttachmentURL(ctx context.Context, taskID, url string) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(
		`UPDATE %s SET attachment_url = $1 WHERE task_id = $2`, s.table), url, taskID)
	return err
}

func (s *Store) DeleteItem(ctx context.Context, taskID string) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(
		`DELETE FROM %s WHERE task_id = $1`, s.table), taskID)
	if err != nil {
		logger.Error(ctx, "Delete task failed", "error", err, "task_id", taskID)
	}
	return err
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row scanner) (*models.Task, error) {
	var task models.Task
	var attachment sql.NullString
	err := row.Scan(&task.TaskID, &task.OwnerID, &task.Title, &task.DueDate,
		&task.Done, &task.CreatedAt, &attachment)
	if err != nil {
		return nil, err
	}
	task.AttachmentURL = attachment.String
	return &task, nil
}
