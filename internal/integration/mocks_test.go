package integration

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/AraTman/recipe-parser-api/internal/db"
	"github.com/AraTman/recipe-parser-api/internal/services/scraper"
)

func testLogger() *slog.Logger {
	return slog.Default()
}

// memoryStore is an in-memory stand-in for db.Store shared by the API and
// worker integration tests.
type memoryStore struct {
	mu      sync.Mutex
	jobs    map[uuid.UUID]*db.ParseJob
	recipes map[string]json.RawMessage
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		jobs:    make(map[uuid.UUID]*db.ParseJob),
		recipes: make(map[string]json.RawMessage),
	}
}

func (m *memoryStore) CreateParseJob(ctx context.Context, userID, sourceURL, platform, language string) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New()
	now := time.Now().UTC()
	m.jobs[id] = &db.ParseJob{
		ID:        id,
		UserID:    userID,
		SourceURL: sourceURL,
		Platform:  platform,
		Language:  language,
		Status:    db.JobStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return id, nil
}

func (m *memoryStore) GetParseJob(ctx context.Context, id uuid.UUID) (*db.ParseJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[id]
	if !ok {
		return nil, db.ErrJobNotFound
	}
	copied := *job
	return &copied, nil
}

func (m *memoryStore) MarkJobProcessing(ctx context.Context, id uuid.UUID) error {
	return m.update(id, func(job *db.ParseJob) {
		job.Status = db.JobStatusProcessing
	})
}

func (m *memoryStore) CompleteJob(ctx context.Context, id uuid.UUID, result json.RawMessage) error {
	return m.update(id, func(job *db.ParseJob) {
		now := time.Now().UTC()
		job.Status = db.JobStatusCompleted
		job.Result = result
		job.FinishedAt = &now
	})
}

func (m *memoryStore) FailJob(ctx context.Context, id uuid.UUID, reason string) error {
	return m.update(id, func(job *db.ParseJob) {
		now := time.Now().UTC()
		job.Status = db.JobStatusFailed
		job.Error = reason
		job.FinishedAt = &now
	})
}

func (m *memoryStore) DeleteFinishedJobsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var deleted int64
	for id, job := range m.jobs {
		finished := job.Status == db.JobStatusCompleted || job.Status == db.JobStatusFailed
		if finished && job.FinishedAt != nil && job.FinishedAt.Before(cutoff) {
			delete(m.jobs, id)
			deleted++
		}
	}
	return deleted, nil
}

func (m *memoryStore) SaveParsedRecipe(ctx context.Context, sourceURL, platform, language string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.recipes[sourceURL+"|"+language] = payload
	return nil
}

func (m *memoryStore) GetParsedRecipe(ctx context.Context, sourceURL, language string) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.recipes[sourceURL+"|"+language], nil
}

func (m *memoryStore) update(id uuid.UUID, fn func(*db.ParseJob)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[id]
	if !ok {
		return db.ErrJobNotFound
	}
	fn(job)
	job.UpdatedAt = time.Now().UTC()
	return nil
}

// captureEnqueuer records enqueued tasks instead of pushing them to Redis.
type captureEnqueuer struct {
	mu    sync.Mutex
	tasks []*asynq.Task
}

func (c *captureEnqueuer) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tasks = append(c.tasks, task)
	return &asynq.TaskInfo{ID: uuid.New().String(), Type: task.Type()}, nil
}

// stubScraper serves a fixed post for any URL of its platform.
type stubScraper struct {
	platform string
	post     *scraper.Post
	err      error
}

func (s *stubScraper) Platform() string { return s.platform }

func (s *stubScraper) Scrape(ctx context.Context, postURL string) (*scraper.Post, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.post, nil
}
