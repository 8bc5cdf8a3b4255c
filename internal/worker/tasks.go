package worker

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// Task type constants
const (
	TypeParseRecipe = "parse:recipe"
	TypeCleanupJobs = "cleanup:jobs"
)

// ParseRecipePayload is the payload for recipe parse tasks
type ParseRecipePayload struct {
	JobID  string `json:"job_id"`
	URL    string `json:"url"`
	UserID string `json:"user_id,omitempty"`
}

// NewParseRecipeTask creates a new parse recipe task
func NewParseRecipeTask(payload ParseRecipePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeParseRecipe, data), nil
}

// NewCleanupJobsTask creates a new cleanup task
func NewCleanupJobsTask() *asynq.Task {
	return asynq.NewTask(TypeCleanupJobs, nil)
}
