package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Job statuses for asynchronous parse jobs.
const (
	JobStatusPending    = "pending"
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
)

var ErrJobNotFound = errors.New("parse job not found")

// ParseJob tracks an asynchronous parse request.
type ParseJob struct {
	ID         uuid.UUID       `json:"id"`
	UserID     string          `json:"user_id,omitempty"`
	SourceURL  string          `json:"source_url"`
	Platform   string          `json:"platform"`
	Language   string          `json:"language"`
	Status     string          `json:"status"`
	Error      string          `json:"error,omitempty"`
	Result     json.RawMessage `json:"result,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	FinishedAt *time.Time      `json:"finished_at,omitempty"`
}

// Store wraps the connection pool with the queries the service needs.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// CreateParseJob inserts a new pending job and returns its ID.
func (s *Store) CreateParseJob(ctx context.Context, userID, sourceURL, platform, language string) (uuid.UUID, error) {
	id := uuid.New()
	_, err := s.pool.Exec(ctx, `
		INSERT INTO parse_jobs (id, user_id, source_url, platform, language, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())`,
		id, userID, sourceURL, platform, language, JobStatusPending)
	if err != nil {
		return uuid.Nil, fmt.Errorf("create parse job: %w", err)
	}
	return id, nil
}

// GetParseJob fetches a job by ID.
func (s *Store) GetParseJob(ctx context.Context, id uuid.UUID) (*ParseJob, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, COALESCE(user_id, ''), source_url, platform, language, status,
		       COALESCE(error, ''), result, created_at, updated_at, finished_at
		FROM parse_jobs WHERE id = $1`, id)

	var job ParseJob
	err := row.Scan(&job.ID, &job.UserID, &job.SourceURL, &job.Platform, &job.Language,
		&job.Status, &job.Error, &job.Result, &job.CreatedAt, &job.UpdatedAt, &job.FinishedAt)
	if err == pgx.ErrNoRows {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get parse job: %w", err)
	}
	return &job, nil
}

// MarkJobProcessing transitions a job to the processing state.
func (s *Store) MarkJobProcessing(ctx context.Context, id uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE parse_jobs SET status = $2, updated_at = now() WHERE id = $1`,
		id, JobStatusProcessing)
	if err != nil {
		return fmt.Errorf("mark job processing: %w", err)
	}
	return nil
}

// CompleteJob stores the result payload and marks the job completed.
func (s *Store) CompleteJob(ctx context.Context, id uuid.UUID, result json.RawMessage) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE parse_jobs SET status = $2, result = $3, updated_at = now(), finished_at = now()
		WHERE id = $1`,
		id, JobStatusCompleted, result)
	if err != nil {
		return fmt.Errorf("complete job: %w", err)
	}
	return nil
}

// FailJob records the failure reason and marks the job failed.
func (s *Store) FailJob(ctx context.Context, id uuid.UUID, reason string) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE parse_jobs SET status = $2, error = $3, updated_at = now(), finished_at = now()
		WHERE id = $1`,
		id, JobStatusFailed, reason)
	if err != nil {
		return fmt.Errorf("fail job: %w", err)
	}
	return nil
}

// DeleteFinishedJobsBefore removes completed and failed jobs older than the
// cutoff. Used by the periodic cleanup task.
func (s *Store) DeleteFinishedJobsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM parse_jobs
		WHERE status IN ($1, $2) AND finished_at < $3`,
		JobStatusCompleted, JobStatusFailed, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete finished jobs: %w", err)
	}
	return tag.RowsAffected(), nil
}

// SaveParsedRecipe upserts the latest parsed payload for a URL and language.
func (s *Store) SaveParsedRecipe(ctx context.Context, sourceURL, platform, language string, payload []byte) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO parsed_recipes (source_url, platform, language, payload, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		ON CONFLICT (source_url, language)
		DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`,
		sourceURL, platform, language, payload)
	if err != nil {
		return fmt.Errorf("save parsed recipe: %w", err)
	}
	return nil
}

// GetParsedRecipe returns the stored payload for a URL and language, or nil.
func (s *Store) GetParsedRecipe(ctx context.Context, sourceURL, language string) (json.RawMessage, error) {
	var payload json.RawMessage
	err := s.pool.QueryRow(ctx, `
		SELECT payload FROM parsed_recipes WHERE source_url = $1 AND language = $2`,
		sourceURL, language).Scan(&payload)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get parsed recipe: %w", err)
	}
	return payload, nil
}
