package tests

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "taskflow/internal/adapter/http"
	"taskflow/internal/adapter/http/handlers"
	"taskflow/internal/adapter/http/middleware"
	"taskflow/internal/adapter/memory"
	"taskflow/internal/core/domain"
	"taskflow/pkg/apierrors"
	"taskflow/pkg/translator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	adminToken = "admin-token"
	userToken  = "user-token"
)

var (
	fixedNow = time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC)

	adminPrincipal = domain.Principal{
		ID:        1,
		Username:  "admin@test.com",
		Email:     "admin@test.com",
		Name:      "Master",
		Role:      domain.RoleAdmin,
		IsActive:  true,
		CreatedAt: fixedNow,
	}

	managerID     = uint64(1)
	userPrincipal = domain.Principal{
		ID:        2,
		Username:  "u1@test.com",
		Email:     "u1@test.com",
		Name:      "User One",
		Role:      domain.RoleUser,
		ManagerID: &managerID,
		IsActive:  true,
		CreatedAt: fixedNow,
	}
)

func newRouter(taskService *taskServiceMock, identityService *identityServiceMock) *gin.Engine {
	router := gin.New()
	httpadapter.RegisterRoutes(
		router,
		handlers.NewHealthHandler(memory.NewStore(), "memory"),
		handlers.NewAuthHandler(identityService),
		handlers.NewTaskHandler(taskService).WithClock(func() time.Time { return fixedNow }),
		middleware.AuthMiddleware(identityService),
	)
	return router
}

func authorize(identityService *identityServiceMock, token string, principal domain.Principal) {
	identityService.On("CurrentPrincipal", mock.Anything, token).Return(principal, nil).Once()
}

func perform(router *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Accept-Language", translator.LanguageEn)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func requireAPIError(t *testing.T, rec *httptest.ResponseRecorder, code int, message string) {
	t.Helper()

	require.Equal(t, code, rec.Code)

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, code, got.ErrDetails.Code)
	require.Equal(t, message, got.ErrDetails.Message)
	require.NotEmpty(t, rec.Header().Get(middleware.HeaderRequestID))
	require.Equal(t, rec.Header().Get(middleware.HeaderRequestID), got.ErrDetails.RequestID)
}

func sampleTask() domain.Task {
	details := "halfway"
	return domain.Task{
		ID:            7,
		Title:         "Write report",
		Description:   "Quarterly numbers",
		Status:        domain.TaskStatusInProgress,
		Details:       &details,
		DueDate:       time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		CreatedAt:     time.Date(2024, 5, 30, 9, 15, 0, 0, time.UTC),
		CreatedBy:     1,
		CreatedByName: "Master",
		Assignees: []domain.Assignee{
			{ID: 2, Username: "u1@test.com"},
			{ID: 3, Username: "u2@test.com"},
		},
	}
}
