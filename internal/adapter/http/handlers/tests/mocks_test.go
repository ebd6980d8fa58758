package tests

import (
	"context"
	"time"

	"taskflow/internal/core/domain"
	"taskflow/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type taskServiceMock struct {
	mock.Mock
}

var _ ports.TaskService = (*taskServiceMock)(nil)

func (m *taskServiceMock) CreateTask(ctx context.Context, actor domain.Principal, input domain.CreateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, actor, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) CreateSelfTask(ctx context.Context, actor domain.Principal, input domain.SelfTaskInput) (domain.Task, error) {
	args := m.Called(ctx, actor, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) UpdateTaskStatus(ctx context.Context, actor domain.Principal, taskID uint64, input domain.StatusUpdateInput) (domain.Task, error) {
	args := m.Called(ctx, actor, taskID, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) ReviewTask(ctx context.Context, actor domain.Principal, taskID uint64, input domain.ReviewInput) (domain.Task, error) {
	args := m.Called(ctx, actor, taskID, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) TasksForUser(ctx context.Context, actor domain.Principal, date time.Time) ([]domain.Task, error) {
	args := m.Called(ctx, actor, date)

	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskServiceMock) TasksForAdmin(ctx context.Context, actor domain.Principal, date time.Time) ([]domain.Task, error) {
	args := m.Called(ctx, actor, date)

	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskServiceMock) TasksForAdminGroupedByUser(ctx context.Context, actor domain.Principal, date time.Time) ([]domain.UserTasks, error) {
	args := m.Called(ctx, actor, date)

	var groups []domain.UserTasks
	if value := args.Get(0); value != nil {
		groups = value.([]domain.UserTasks)
	}
	return groups, args.Error(1)
}

type identityServiceMock struct {
	mock.Mock
}

var _ ports.IdentityService = (*identityServiceMock)(nil)

func (m *identityServiceMock) Authenticate(ctx context.Context, credentials domain.Credentials) (domain.Principal, error) {
	args := m.Called(ctx, credentials)
	return args.Get(0).(domain.Principal), args.Error(1)
}

func (m *identityServiceMock) Login(ctx context.Context, credentials domain.Credentials) (domain.AccessToken, error) {
	args := m.Called(ctx, credentials)
	return args.Get(0).(domain.AccessToken), args.Error(1)
}

func (m *identityServiceMock) CurrentPrincipal(ctx context.Context, token string) (domain.Principal, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(domain.Principal), args.Error(1)
}

func (m *identityServiceMock) RegisterUser(ctx context.Context, actor domain.Principal, input domain.RegisterUserInput) (domain.Principal, error) {
	args := m.Called(ctx, actor, input)
	return args.Get(0).(domain.Principal), args.Error(1)
}

func (m *identityServiceMock) Profile(ctx context.Context, actor domain.Principal) (domain.Profile, error) {
	args := m.Called(ctx, actor)
	return args.Get(0).(domain.Profile), args.Error(1)
}

func (m *identityServiceMock) UpdateProfile(ctx context.Context, actor domain.Principal, input domain.UpdateProfileInput) (domain.Principal, error) {
	args := m.Called(ctx, actor, input)
	return args.Get(0).(domain.Principal), args.Error(1)
}

func (m *identityServiceMock) EnsureSeedAdmin(ctx context.Context, seed domain.SeedAdmin) (bool, error) {
	args := m.Called(ctx, seed)
	return args.Bool(0), args.Error(1)
}
