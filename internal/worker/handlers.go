package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	apperrors "github.com/AraTman/recipe-parser-api/internal/errors"
	"github.com/AraTman/recipe-parser-api/internal/services/parse"
)

// Finished jobs older than this are removed by the cleanup task.
const jobRetention = 7 * 24 * time.Hour

// JobStore is the persistence surface the processor needs.
// Implemented by db.Store.
type JobStore interface {
	MarkJobProcessing(ctx context.Context, id uuid.UUID) error
	CompleteJob(ctx context.Context, id uuid.UUID, result json.RawMessage) error
	FailJob(ctx context.Context, id uuid.UUID, reason string) error
	DeleteFinishedJobsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Parser turns a post URL into a structured recipe.
// Implemented by parse.Service.
type Parser interface {
	ParseURL(ctx context.Context, sourceURL string) (*parse.ParsedRecipe, error)
}

type RecipeProcessor struct {
	store       JobStore
	parser      Parser
	broadcaster *ProgressBroadcaster
	metrics     *WorkerMetrics
}

func NewRecipeProcessor(store JobStore, parser Parser, broadcaster *ProgressBroadcaster, metrics *WorkerMetrics) *RecipeProcessor {
	return &RecipeProcessor{
		store:       store,
		parser:      parser,
		broadcaster: broadcaster,
		metrics:     metrics,
	}
}

func (p *RecipeProcessor) HandleParseRecipe(ctx context.Context, t *asynq.Task) error {
	start := time.Now()

	var payload ParseRecipePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	jobID, err := uuid.Parse(payload.JobID)
	if err != nil {
		return fmt.Errorf("invalid job id %q: %v: %w", payload.JobID, err, asynq.SkipRetry)
	}

	slog.Info("Processing parse job", "job_id", payload.JobID, "url", payload.URL)

	if err := p.store.MarkJobProcessing(ctx, jobID); err != nil {
		return err
	}
	p.broadcast(ctx, payload, "processing", "Fetching post and extracting recipe...")

	parsed, err := p.parser.ParseURL(ctx, payload.URL)
	if err != nil {
		return p.handleParseFailure(ctx, payload, jobID, start, err)
	}

	result, err := json.Marshal(parsed)
	if err != nil {
		return p.handleParseFailure(ctx, payload, jobID, start, fmt.Errorf("failed to encode result: %w", err))
	}

	if err := p.store.CompleteJob(ctx, jobID, result); err != nil {
		return err
	}
	p.broadcast(ctx, payload, "completed", "Recipe extracted successfully")

	p.metrics.RecordJob(ctx, TypeParseRecipe, "success", time.Since(start).Seconds())
	slog.Info("Parse job completed", "job_id", payload.JobID, "title", parsed.Title)

	return nil
}

// handleParseFailure records the failure and decides whether asynq should
// retry. Validation and not-found failures are permanent.
func (p *RecipeProcessor) handleParseFailure(ctx context.Context, payload ParseRecipePayload, jobID uuid.UUID, start time.Time, err error) error {
	slog.Error("Parse job failed", "job_id", payload.JobID, "url", payload.URL, "error", err)

	// Both writes are best effort; the task outcome is decided below.
	result := RunParallel(ctx, []ParallelFunc{
		func(ctx context.Context) error {
			return p.store.FailJob(ctx, jobID, err.Error())
		},
		func(ctx context.Context) error {
			return p.broadcaster.Broadcast(ctx, ProgressUpdate{
				JobID:   payload.JobID,
				UserID:  payload.UserID,
				Status:  "failed",
				Message: err.Error(),
			})
		},
	})
	for _, reportErr := range result.Errors {
		slog.Error("Failed to record job failure", "job_id", payload.JobID, "error", reportErr)
	}

	p.metrics.RecordJob(ctx, TypeParseRecipe, "failed", time.Since(start).Seconds())

	if appErr, ok := apperrors.IsAppError(err); ok && !appErr.IsRetryable() {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	return err
}

func (p *RecipeProcessor) HandleCleanupJobs(ctx context.Context, t *asynq.Task) error {
	cutoff := time.Now().Add(-jobRetention)

	deleted, err := p.store.DeleteFinishedJobsBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("cleanup failed: %w", err)
	}

	slog.Info("Cleanup job finished", "deleted", deleted, "cutoff", cutoff)
	return nil
}

func (p *RecipeProcessor) broadcast(ctx context.Context, payload ParseRecipePayload, status, message string) {
	if p.broadcaster == nil {
		return
	}
	err := p.broadcaster.Broadcast(ctx, ProgressUpdate{
		JobID:   payload.JobID,
		UserID:  payload.UserID,
		Status:  status,
		Message: message,
	})
	if err != nil {
		slog.Warn("Progress broadcast failed", "job_id", payload.JobID, "error", err)
	}
}
