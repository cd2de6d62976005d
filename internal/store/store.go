package store

import (
	"context"
	"errors"

	"logiflow/internal/model"
)

// Store persists optimization results for cross-process consumers (reporting
// API, dashboard). Implementations must round-trip the entities exactly.
type Store interface {
	// SaveSolution assigns an ID and persists the solution, marking it latest.
	SaveSolution(ctx context.Context, sol model.Solution) (id string, err error)
	GetSolution(ctx context.Context, id string) (model.Solution, error)
	// LatestSolution returns the most recently saved solution.
	LatestSolution(ctx context.Context) (model.Solution, error)

	SaveSweep(ctx context.Context, sweep model.SweepResult) (id string, err error)
	GetSweep(ctx context.Context, id string) (model.SweepResult, error)
}

var ErrNotFound = errors.New("not found")
