package redisstore

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"task-backend/internal/models"
	"task-backend/internal/store"
	"task-backend/pkg/logger"
)

// Hash field names for a task record.
const (
	fieldOwnerID       = "ownerId"
	fieldTitle         = "title"
	fieldDueDate       = "dueDate"
	fieldDone          = "done"
	fieldCreatedAt     = "createdAt"
	fieldAttachmentURL = "attachmentUrl"
)

var _ store.RecordStore = (*Store)(nil)

// Store persists tasks in Redis: one hash per task under the table prefix,
// plus one sorted set per owner (scored by creation time) serving as the
// owner index. Partial updates write individual hash fields, never the whole
// record.
type Store struct {
	client *redis.Client
	table  string
	index  string
}

// New creates a Store using the given client. table and index name the key
// prefixes for task hashes and owner index sets.
func New(client *redis.Client, table, index string) *Store {
	return &Store{client: client, table: table, index: index}
}

// Open connects to Redis at the given URL and pings it.
func Open(ctx context.Context, rawURL string, poolSize int) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, err
	}
	opts.PoolSize = poolSize
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	logger.Info(ctx, "Redis client initialized", "pool_size", poolSize)
	return client, nil
}

func (s *Store) taskKey(taskID string) string {
	return s.table + ":" + taskID
}

func (s *Store) ownerKey(ownerID string) string {
	return s.index + ":" + ownerID
}

func (s *Store) ItemExists(ctx context.Context, taskID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.taskKey(taskID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) GetItem(ctx context.Context, taskID string) (*models.Task, error) {
	fields, err := s.client.HGetAll(ctx, s.taskKey(taskID)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, nil
	}
	task, err := taskFromFields(taskID, fields)
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *Store) ListByOwner(ctx context.Context, ownerID string) ([]models.Task, error) {
	ids, err := s.client.ZRange(ctx, s.ownerKey(ownerID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	return s.fetchTasks(ctx, ids)
}

func (s *Store) ListByOwnerRecentFirst(ctx context.Context, ownerID string) ([]models.Task, error) {
	ids, err := s.client.ZRevRange(ctx, s.ownerKey(ownerID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	return s.fetchTasks(ctx, ids)
}

func (s *Store) fetchTasks(ctx context.Context, ids []string) ([]models.Task, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	pipe := s.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGetAll(ctx, s.taskKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	tasks := make([]models.Task, 0, len(ids))
	for i, cmd := range cmds {
		fields, err := cmd.Result()
		if err != nil {
			return nil, err
		}
		if len(fields) == 0 {
			// Index entry without a record (deleted out of band); skip.
			continue
		}
		task, err := taskFromFields(ids[i], fields)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, nil
}

func (s *Store) CreateItem(ctx context.Context, task *models.Task) error {
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, s.taskKey(task.TaskID), taskToFields(task))
	pipe.ZAdd(ctx, s.ownerKey(task.OwnerID), redis.Z{
		Score:  float64(task.CreatedAt.UnixNano()),
		Member: task.TaskID,
	})
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Store) UpdateFields(ctx context.Context, taskID string, upd store.TaskUpdate) error {
	return s.client.HSet(ctx, s.taskKey(taskID),
		fieldTitle, upd.Title,
		fieldDueDate, upd.DueDate,
		fieldDone, strconv.FormatBool(upd.Done),
	).Err()
}

func (s *Store) UpdateAttachmentURL(ctx context.Context, taskID, url string) error {
	return s.client.HSet(ctx, s.taskKey(taskID), fieldAttachmentURL, url).Err()
}

func (s *Store) DeleteItem(ctx context.Context, taskID string) error {
	ownerID, err := s.client.HGet(ctx, s.taskKey(taskID), fieldOwnerID).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return err
	}
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.taskKey(taskID))
	pipe.ZRem(ctx, s.ownerKey(ownerID), taskID)
	_, err = pipe.Exec(ctx)
	return err
}

// taskToFields flattens a task into hash fields. The task id lives in the key,
// not the hash.
func taskToFields(task *models.Task) map[string]interface{} {
	fields := map[string]interface{}{
		fieldOwnerID:   task.OwnerID,
		fieldTitle:     task.Title,
		fieldDueDate:   task.DueDate,
		fieldDone:      strconv.FormatBool(task.Done),
		fieldCreatedAt: task.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	if task.AttachmentURL != "" {
		fields[fieldAttachmentURL] = task.AttachmentURL
	}
	return fields
}

func taskFromFields(taskID string, fields map[string]string) (*models.Task, error) {
	done, err := strconv.ParseBool(fields[fieldDone])
	if err != nil {
		return nil, err
	}
	createdAt, err := time.Parse(time.RFC3339Nano, fields[fieldCreatedAt])
	if err != nil {
		return nil, err
	}
	return &models.Task{
		TaskID:        taskID,
		OwnerID:       fields[fieldOwnerID],
		Title:         fields[fieldTitle],
		DueDate:       fields[fieldDueDate],
		Done:          done,
		CreatedAt:     createdAt,
		AttachmentURL: fields[fieldAttachmentURL],
	}, nil
}
