package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"logiflow/internal/model"
)

// Memory is a simple in-memory store used when neither DATABASE_URL nor
// REDIS_URL is set. Results live only for the lifetime of the process.
type Memory struct {
	mu        sync.Mutex
	solutions map[string]model.Solution
	sweeps    map[string]model.SweepResult
	latest    string
}

func NewMemory() *Memory {
	return &Memory{
		solutions: map[string]model.Solution{},
		sweeps:    map[string]model.SweepResult{},
	}
}

func (m *Memory) SaveSolution(ctx context.Context, sol model.Solution) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sol.ID = uuid.New().String()
	m.solutions[sol.ID] = sol
	m.latest = sol.ID
	return sol.ID, nil
}

func (m *Memory) GetSolution(ctx context.Context, id string) (model.Solution, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sol, ok := m.solutions[id]
	if !ok {
		return model.Solution{}, ErrNotFound
	}
	return sol, nil
}

func (m *Memory) LatestSolution(ctx context.Context) (model.Solution, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.latest == "" {
		return model.Solution{}, ErrNotFound
	}
	return m.solutions[m.latest], nil
}

func (m *Memory) SaveSweep(ctx context.Context, sweep model.SweepResult) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sweep.ID = uuid.New().String()
	m.sweeps[sweep.ID] = sweep
	return sweep.ID, nil
}

func (m *Memory) GetSweep(ctx context.Context, id string) (model.SweepResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sweep, ok := m.sweeps[id]
	if !ok {
		return model.SweepResult{}, ErrNotFound
	}
	return sweep, nil
}
