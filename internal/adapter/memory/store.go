// Package memory is an in-process Persistence Store. It backs local runs
// (STORE_DRIVER=memory) and the service tests.
package memory

import (
	"context"
	"sync"

	"taskflow/internal/core/domain"
	"taskflow/internal/core/ports"
)

type txKey struct{}

type state struct {
	users       map[uint64]domain.Principal
	tasks       map[uint64]domain.Task
	assignments map[uint64][]uint64
	nextUserID  uint64
	nextTaskID  uint64
}

type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	data state
}

func NewStore() *Store {
	return &Store{
		data: state{
			users:       make(map[uint64]domain.Principal),
			tasks:       make(map[uint64]domain.Task),
			assignments: make(map[uint64][]uint64),
			nextUserID:  1,
			nextTaskID:  1,
		},
	}
}

func (s *Store) Users() *UserRepository {
	return &UserRepository{store: s}
}

func (s *Store) Tasks() *TaskRepository {
	return &TaskRepository{store: s}
}

// PingContext lets the health check treat the store like a database.
func (s *Store) PingContext(ctx context.Context) error {
	return ctx.Err()
}

// WithinTransaction serializes transactions and restores the state taken
// before fn when fn fails. Nested calls join the outer transaction.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(bool); ok {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.data.clone()
	s.mu.RUnlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (d state) clone() state {
	users := make(map[uint64]domain.Principal, len(d.users))
	for id, user := range d.users {
		users[id] = user
	}
	tasks := make(map[uint64]domain.Task, len(d.tasks))
	for id, task := range d.tasks {
		tasks[id] = task
	}
	assignments := make(map[uint64][]uint64, len(d.assignments))
	for id, userIDs := range d.assignments {
		assignments[id] = append([]uint64(nil), userIDs...)
	}
	return state{
		users:       users,
		tasks:       tasks,
		assignments: assignments,
		nextUserID:  d.nextUserID,
		nextTaskID:  d.nextTaskID,
	}
}

var _ ports.Transactor = (*Store)(nil)
