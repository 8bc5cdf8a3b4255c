package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/AraTman/recipe-parser-api/internal/config"
	"github.com/AraTman/recipe-parser-api/internal/db"
	apperrors "github.com/AraTman/recipe-parser-api/internal/errors"
	"github.com/AraTman/recipe-parser-api/internal/middleware"
	"github.com/AraTman/recipe-parser-api/internal/services/parse"
	"github.com/AraTman/recipe-parser-api/internal/services/scraper"
	"github.com/AraTman/recipe-parser-api/internal/worker"
)

// RecipeParser is the synchronous extraction surface.
// Implemented by parse.Service.
type RecipeParser interface {
	ParseURL(ctx context.Context, sourceURL string) (*parse.ParsedRecipe, error)
	ParseCaption(ctx context.Context, caption, platform string) (*parse.ParsedRecipe, error)
}

// JobStore persists async parse jobs. Implemented by db.Store.
type JobStore interface {
	CreateParseJob(ctx context.Context, userID, sourceURL, platform, language string) (uuid.UUID, error)
	GetParseJob(ctx context.Context, id uuid.UUID) (*db.ParseJob, error)
}

// TaskEnqueuer is satisfied by *asynq.Client.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type Server struct {
	cfg    *config.Config
	parser RecipeParser
	jobs   JobStore
	tasks  TaskEnqueuer
}

func NewServer(cfg *config.Config, parser RecipeParser, jobs JobStore, tasks TaskEnqueuer) *Server {
	return &Server{
		cfg:    cfg,
		parser: parser,
		jobs:   jobs,
		tasks:  tasks,
	}
}

// RecipeResponse is the envelope for synchronous parse endpoints.
type RecipeResponse struct {
	Success bool                `json:"success"`
	Recipe  *parse.ParsedRecipe `json:"recipe,omitempty"`
	Error   string              `json:"error,omitempty"`
	Message string              `json:"message,omitempty"`
}

type HealthResponse struct {
	Status             string                 `json:"status"`
	Version            string                 `json:"version"`
	SupportedPlatforms []scraper.PlatformInfo `json:"supported_platforms"`
	Timestamp          string                 `json:"timestamp"`
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:             "ok",
		Version:            s.cfg.ServiceVersion,
		SupportedPlatforms: scraper.SupportedPlatforms(),
		Timestamp:          time.Now().UTC().Format(time.RFC3339),
	})
}

type ParseRecipeRequest struct {
	URL      string `json:"url,omitempty"`
	Caption  string `json:"caption,omitempty"`
	Platform string `json:"platform,omitempty"`
}

// HandleParseRecipe extracts a recipe synchronously, either from a post URL
// or from a raw caption supplied by the caller.
func (s *Server) HandleParseRecipe(w http.ResponseWriter, r *http.Request) {
	var req ParseRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.NewValidationError("Invalid request body", "INVALID_BODY", "Send a JSON object with a url or caption field."))
		return
	}

	var (
		parsed *parse.ParsedRecipe
		err    error
	)
	switch {
	case req.URL != "":
		parsed, err = s.parser.ParseURL(r.Context(), req.URL)
	case req.Caption != "":
		platform := req.Platform
		if platform == "" {
			platform = "caption"
		}
		parsed, err = s.parser.ParseCaption(r.Context(), req.Caption, platform)
	default:
		err = apperrors.NewValidationError("url or caption is required", "MISSING_INPUT", "Provide a post URL or a caption to parse.")
	}
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, RecipeResponse{
		Success: true,
		Recipe:  parsed,
		Message: "Recipe extracted successfully",
	})
}

type SupportedPlatformsResponse struct {
	Platforms []scraper.PlatformInfo `json:"platforms"`
}

func (s *Server) HandleSupportedPlatforms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, SupportedPlatformsResponse{
		Platforms: scraper.SupportedPlatforms(),
	})
}

type ImportRecipeRequest struct {
	URL string `json:"url"`
}

type ImportRecipeResponse struct {
	JobID  string `json:"job_id"`
	URL    string `json:"url"`
	Status string `json:"status"`
}

// HandleImportRecipe enqueues an asynchronous parse job.
func (s *Server) HandleImportRecipe(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	var req ImportRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.NewValidationError("Invalid request body", "INVALID_BODY", "Send a JSON object with a url field."))
		return
	}
	if req.URL == "" {
		writeError(w, apperrors.NewValidationError("url is required", "MISSING_URL", "Provide the post URL to import."))
		return
	}

	platform, err := scraper.DetectPlatform(req.URL)
	if err != nil {
		writeError(w, apperrors.NewValidationError("Unsupported platform URL", "UNSUPPORTED_PLATFORM", "Use an Instagram, TikTok or YouTube post URL."))
		return
	}

	jobID, err := s.jobs.CreateParseJob(r.Context(), userID, req.URL, platform, s.cfg.Extraction.Language)
	if err != nil {
		writeError(w, apperrors.NewInternalError("Failed to create import job", "JOB_CREATE_FAILED", err))
		return
	}

	task, err := worker.NewParseRecipeTask(worker.ParseRecipePayload{
		JobID:  jobID.String(),
		URL:    req.URL,
		UserID: userID,
	})
	if err != nil {
		writeError(w, apperrors.NewInternalError("Failed to create task", "TASK_CREATE_FAILED", err))
		return
	}

	if _, err := s.tasks.Enqueue(task); err != nil {
		writeError(w, apperrors.NewInternalError("Failed to enqueue task", "TASK_ENQUEUE_FAILED", err))
		return
	}

	writeJSON(w, http.StatusAccepted, ImportRecipeResponse{
		JobID:  jobID.String(),
		URL:    req.URL,
		Status: db.JobStatusPending,
	})
}

type JobStatusResponse struct {
	ID         string          `json:"id"`
	Status     string          `json:"status"`
	Error      string          `json:"error,omitempty"`
	Recipe     json.RawMessage `json:"recipe,omitempty"`
	CreatedAt  string          `json:"created_at"`
	UpdatedAt  string          `json:"updated_at"`
	FinishedAt string          `json:"finished_at,omitempty"`
}

// HandleImportStatus returns the state of an async parse job, including the
// parsed recipe once the job has completed.
func (s *Server) HandleImportStatus(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	rawID := r.URL.Query().Get("job_id")
	if rawID == "" {
		writeError(w, apperrors.NewValidationError("job_id is required", "MISSING_JOB_ID", "Pass the job_id returned by the import endpoint."))
		return
	}

	jobID, err := uuid.Parse(rawID)
	if err != nil {
		writeError(w, apperrors.NewValidationError("job_id is not a valid UUID", "INVALID_JOB_ID", ""))
		return
	}

	job, err := s.jobs.GetParseJob(r.Context(), jobID)
	if err != nil {
		writeError(w, apperrors.NewNotFoundError("Job not found", "JOB_NOT_FOUND", "Check the job_id and try again."))
		return
	}

	// Jobs created by an authenticated user are only visible to that user.
	if job.UserID != "" && job.UserID != userID {
		writeError(w, apperrors.NewNotFoundError("Job not found", "JOB_NOT_FOUND", ""))
		return
	}

	resp := JobStatusResponse{
		ID:        job.ID.String(),
		Status:    job.Status,
		Error:     job.Error,
		Recipe:    job.Result,
		CreatedAt: job.CreatedAt.Format(time.RFC3339),
		UpdatedAt: job.UpdatedAt.Format(time.RFC3339),
	}
	if job.FinishedAt != nil {
		resp.FinishedAt = job.FinishedAt.Format(time.RFC3339)
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps application errors onto the response envelope. Unknown
// errors are reported as opaque internal failures.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := "INTERNAL_ERROR"
	message := "An unexpected error occurred"

	if appErr, ok := apperrors.IsAppError(err); ok {
		status = appErr.StatusCode
		code = appErr.ErrorCode
		message = appErr.Message
		if appErr.Recovery != "" {
			message = message + ". " + appErr.Recovery
		}
	}

	writeJSON(w, status, RecipeResponse{
		Success: false,
		Error:   code,
		Message: message,
	})
}
