package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/AraTman/recipe-parser-api/internal/config"
	"github.com/AraTman/recipe-parser-api/internal/db"
	apperrors "github.com/AraTman/recipe-parser-api/internal/errors"
	"github.com/AraTman/recipe-parser-api/internal/extract"
	"github.com/AraTman/recipe-parser-api/internal/middleware"
	"github.com/AraTman/recipe-parser-api/internal/services/parse"
)

// Mocks

type MockParser struct {
	mock.Mock
}

func (m *MockParser) ParseURL(ctx context.Context, sourceURL string) (*parse.ParsedRecipe, error) {
	args := m.Called(ctx, sourceURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parse.ParsedRecipe), args.Error(1)
}

func (m *MockParser) ParseCaption(ctx context.Context, caption, platform string) (*parse.ParsedRecipe, error) {
	args := m.Called(ctx, caption, platform)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parse.ParsedRecipe), args.Error(1)
}

type MockJobStore struct {
	mock.Mock
}

func (m *MockJobStore) CreateParseJob(ctx context.Context, userID, sourceURL, platform, language string) (uuid.UUID, error) {
	args := m.Called(ctx, userID, sourceURL, platform, language)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockJobStore) GetParseJob(ctx context.Context, id uuid.UUID) (*db.ParseJob, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db.ParseJob), args.Error(1)
}

type MockEnqueuer struct {
	mock.Mock
}

func (m *MockEnqueuer) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	args := m.Called(task)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asynq.TaskInfo), args.Error(1)
}

func testConfig() *config.Config {
	return &config.Config{
		ServiceVersion: "1.0.0",
		Extraction:     config.ExtractionConfig{Language: "tr"},
	}
}

func withUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, middleware.UserIDKey, userID)
}

func postJSON(path string, body any) *http.Request {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// Tests

func TestHandleHealth(t *testing.T) {
	srv := NewServer(testConfig(), nil, nil, nil)

	rr := httptest.NewRecorder()
	srv.HandleHealth(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rr.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "1.0.0", resp.Version)
	assert.Len(t, resp.SupportedPlatforms, 3)
}

func TestHandleParseRecipe_FromCaption(t *testing.T) {
	parsed := &parse.ParsedRecipe{
		Recipe:   extract.Recipe{Title: "Mercimek Çorbası"},
		Platform: "caption",
	}

	mockParser := new(MockParser)
	mockParser.On("ParseCaption", mock.Anything, "Mercimek Çorbası Tarifi...", "caption").Return(parsed, nil)

	srv := NewServer(testConfig(), mockParser, nil, nil)

	rr := httptest.NewRecorder()
	srv.HandleParseRecipe(rr, postJSON("/api/v1/parse-recipe", ParseRecipeRequest{Caption: "Mercimek Çorbası Tarifi..."}))

	require.Equal(t, http.StatusOK, rr.Code)

	var resp RecipeResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Recipe)
	assert.Equal(t, "Mercimek Çorbası", resp.Recipe.Title)
	mockParser.AssertExpectations(t)
}

func TestHandleParseRecipe_FromURL(t *testing.T) {
	url := "https://www.instagram.com/p/C_abc123/"
	parsed := &parse.ParsedRecipe{
		Recipe:    extract.Recipe{Title: "Havuçlu Kek"},
		SourceURL: url,
		Platform:  "instagram",
	}

	mockParser := new(MockParser)
	mockParser.On("ParseURL", mock.Anything, url).Return(parsed, nil)

	srv := NewServer(testConfig(), mockParser, nil, nil)

	rr := httptest.NewRecorder()
	srv.HandleParseRecipe(rr, postJSON("/api/v1/parse-recipe", ParseRecipeRequest{URL: url}))

	require.Equal(t, http.StatusOK, rr.Code)
	mockParser.AssertExpectations(t)
}

func TestHandleParseRecipe_MissingInput(t *testing.T) {
	srv := NewServer(testConfig(), new(MockParser), nil, nil)

	rr := httptest.NewRecorder()
	srv.HandleParseRecipe(rr, postJSON("/api/v1/parse-recipe", ParseRecipeRequest{}))

	require.Equal(t, http.StatusBadRequest, rr.Code)

	var resp RecipeResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "MISSING_INPUT", resp.Error)
}

func TestHandleParseRecipe_ParserErrorMapsStatus(t *testing.T) {
	url := "https://www.instagram.com/p/C_gone/"

	mockParser := new(MockParser)
	mockParser.On("ParseURL", mock.Anything, url).
		Return(nil, apperrors.NewNotFoundError("Post not found", "POST_NOT_FOUND", "The post may have been deleted."))

	srv := NewServer(testConfig(), mockParser, nil, nil)

	rr := httptest.NewRecorder()
	srv.HandleParseRecipe(rr, postJSON("/api/v1/parse-recipe", ParseRecipeRequest{URL: url}))

	require.Equal(t, http.StatusNotFound, rr.Code)

	var resp RecipeResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "POST_NOT_FOUND", resp.Error)
}

func TestHandleSupportedPlatforms(t *testing.T) {
	srv := NewServer(testConfig(), nil, nil, nil)

	rr := httptest.NewRecorder()
	srv.HandleSupportedPlatforms(rr, httptest.NewRequest(http.MethodGet, "/api/v1/supported-platforms", nil))

	require.Equal(t, http.StatusOK, rr.Code)

	var resp SupportedPlatformsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Platforms, 3)

	names := make([]string, 0, len(resp.Platforms))
	for _, p := range resp.Platforms {
		names = append(names, p.Name)
	}
	assert.ElementsMatch(t, []string{"instagram", "tiktok", "youtube"}, names)
}

func TestHandleImportRecipe(t *testing.T) {
	url := "https://www.tiktok.com/@cook/video/123"
	userID := uuid.New().String()
	jobID := uuid.New()

	mockJobs := new(MockJobStore)
	mockJobs.On("CreateParseJob", mock.Anything, userID, url, "tiktok", "tr").Return(jobID, nil)

	mockTasks := new(MockEnqueuer)
	mockTasks.On("Enqueue", mock.MatchedBy(func(task *asynq.Task) bool {
		return task.Type() == "parse:recipe" && bytes.Contains(task.Payload(), []byte(jobID.String()))
	})).Return(&asynq.TaskInfo{}, nil)

	srv := NewServer(testConfig(), nil, mockJobs, mockTasks)

	req := postJSON("/api/v1/import", ImportRecipeRequest{URL: url})
	req = req.WithContext(withUserID(req.Context(), userID))

	rr := httptest.NewRecorder()
	srv.HandleImportRecipe(rr, req)

	require.Equal(t, http.StatusAccepted, rr.Code)

	var resp ImportRecipeResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, jobID.String(), resp.JobID)
	assert.Equal(t, db.JobStatusPending, resp.Status)
	mockJobs.AssertExpectations(t)
	mockTasks.AssertExpectations(t)
}

func TestHandleImportRecipe_UnsupportedPlatform(t *testing.T) {
	srv := NewServer(testConfig(), nil, new(MockJobStore), new(MockEnqueuer))

	rr := httptest.NewRecorder()
	srv.HandleImportRecipe(rr, postJSON("/api/v1/import", ImportRecipeRequest{URL: "https://example.com/recipe"}))

	require.Equal(t, http.StatusBadRequest, rr.Code)

	var resp RecipeResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "UNSUPPORTED_PLATFORM", resp.Error)
}

func TestHandleImportStatus(t *testing.T) {
	jobID := uuid.New()
	now := time.Now().UTC()

	mockJobs := new(MockJobStore)
	mockJobs.On("GetParseJob", mock.Anything, jobID).Return(&db.ParseJob{
		ID:        jobID,
		Status:    db.JobStatusCompleted,
		Result:    json.RawMessage(`{"title":"Havuçlu Kek"}`),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil)

	srv := NewServer(testConfig(), nil, mockJobs, nil)

	rr := httptest.NewRecorder()
	srv.HandleImportStatus(rr, httptest.NewRequest(http.MethodGet, "/api/v1/import-status?job_id="+jobID.String(), nil))

	require.Equal(t, http.StatusOK, rr.Code)

	var resp JobStatusResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, jobID.String(), resp.ID)
	assert.Equal(t, db.JobStatusCompleted, resp.Status)
	assert.JSONEq(t, `{"title":"Havuçlu Kek"}`, string(resp.Recipe))
}

func TestHandleImportStatus_MissingJobID(t *testing.T) {
	srv := NewServer(testConfig(), nil, new(MockJobStore), nil)

	rr := httptest.NewRecorder()
	srv.HandleImportStatus(rr, httptest.NewRequest(http.MethodGet, "/api/v1/import-status", nil))

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleImportStatus_OtherUsersJobHidden(t *testing.T) {
	jobID := uuid.New()

	mockJobs := new(MockJobStore)
	mockJobs.On("GetParseJob", mock.Anything, jobID).Return(&db.ParseJob{
		ID:     jobID,
		UserID: uuid.New().String(),
		Status: db.JobStatusPending,
	}, nil)

	srv := NewServer(testConfig(), nil, mockJobs, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/import-status?job_id="+jobID.String(), nil)
	req = req.WithContext(withUserID(req.Context(), uuid.New().String()))

	rr := httptest.NewRecorder()
	srv.HandleImportStatus(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
}
