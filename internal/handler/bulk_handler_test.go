package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Cheragshah/udyamipmp-api/internal/dto"
	"github.com/Cheragshah/udyamipmp-api/internal/middleware"
	"github.com/Cheragshah/udyamipmp-api/internal/models"
	appErrors "github.com/Cheragshah/udyamipmp-api/pkg/errors"
)

type fakeBulkSrv struct {
	verifyResult  *dto.BulkResult
	verifyErr     error
	sessionResult *dto.SessionCompletionResult
	lastSession   models.SessionType
	lastBatch     string
	lastActor     string
}

func (f *fakeBulkSrv) VerifyTasks(_ context.Context, actorID string, _ dto.BulkVerifyTasksRequest) (*dto.BulkResult, error) {
	f.lastActor = actorID
	return f.verifyResult, f.verifyErr
}

func (f *fakeBulkSrv) ApproveDocuments(_ context.Context, actorID string, req dto.BulkApproveDocumentsRequest) (*dto.BulkResult, error) {
	f.lastActor = actorID
	return &dto.BulkResult{Requested: len(req.DocumentIDs), Applied: len(req.DocumentIDs)}, nil
}

func (f *fakeBulkSrv) CompleteStages(_ context.Context, actorID string, req dto.BulkCompleteStagesRequest) (*dto.BulkResult, error) {
	f.lastActor = actorID
	return &dto.BulkResult{Requested: len(req.StageIDs), Applied: len(req.StageIDs)}, nil
}

func (f *fakeBulkSrv) CompleteSession(_ context.Context, actorID string, sessionType models.SessionType, batch string) (*dto.SessionCompletionResult, error) {
	f.lastActor = actorID
	f.lastSession = sessionType
	f.lastBatch = batch
	return f.sessionResult, nil
}

func coachContext(rec *httptest.ResponseRecorder, method, target, body string) *gin.Context {
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "coach-1", Role: models.RoleCoach})
	return c
}

func TestBulkHandlerVerifyTasks(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &fakeBulkSrv{verifyResult: &dto.BulkResult{Requested: 2, Applied: 2}}
	handler := NewBulkHandler(service)

	rec := httptest.NewRecorder()
	c := coachContext(rec, http.MethodPost, "/bulk/tasks/verify", `{"user_id":"u1","task_ids":["t1","t2"]}`)

	handler.VerifyTasks(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "coach-1", service.lastActor)
	assert.Contains(t, rec.Body.String(), `"applied":2`)
}

func TestBulkHandlerVerifyTasksConflictKeepsPartialResult(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewBulkHandler(&fakeBulkSrv{
		verifyResult: &dto.BulkResult{Requested: 3, Applied: 1},
		verifyErr:    appErrors.Clone(appErrors.ErrConflict, "task t2 was rejected and cannot be verified"),
	})

	rec := httptest.NewRecorder()
	c := coachContext(rec, http.MethodPost, "/bulk/tasks/verify", `{"user_id":"u1","task_ids":["t1","t2","t3"]}`)

	handler.VerifyTasks(c)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), `"applied":1`)
	assert.Contains(t, rec.Body.String(), "rejected")
}

func TestBulkHandlerVerifyTasksRequiresAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewBulkHandler(&fakeBulkSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/bulk/tasks/verify", strings.NewReader(`{}`))

	handler.VerifyTasks(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBulkHandlerCompleteSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &fakeBulkSrv{sessionResult: &dto.SessionCompletionResult{TargetUsers: 5, CompletionsInserted: 5}}
	handler := NewBulkHandler(service)

	rec := httptest.NewRecorder()
	c := coachContext(rec, http.MethodPost, "/sessions/complete", `{"session_type":"orientation","batch":"7"}`)

	handler.CompleteSession(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.SessionOrientation, service.lastSession)
	assert.Equal(t, "7", service.lastBatch)
}

func TestBulkHandlerCompleteSessionUnknownType(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewBulkHandler(&fakeBulkSrv{})

	rec := httptest.NewRecorder()
	c := coachContext(rec, http.MethodPost, "/sessions/complete", `{"session_type":"hackathon"}`)

	handler.CompleteSession(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
