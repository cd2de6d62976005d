package opt

import (
	"errors"
	"fmt"
	"time"

	highs "github.com/bartolsthoorn/gohighs/highs"
)

// Status classifies the outcome of one solve.
type Status int

const (
	StatusOptimal Status = iota
	// StatusFeasible means the time budget ran out while the solver held an
	// incumbent solution. The values are usable but not proven optimal.
	StatusFeasible
	StatusInfeasible
	StatusUnbounded
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusFeasible:
		return "feasible"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnbounded:
		return "unbounded"
	default:
		return "error"
	}
}

var (
	// ErrInfeasible: the model has no satisfying assignment, e.g. a cap of
	// zero combined with nonzero demand.
	ErrInfeasible = errors.New("model is infeasible")
	// ErrUnbounded should not occur given the model structure: costs and
	// flows are bounded below.
	ErrUnbounded = errors.New("model is unbounded")
	// ErrNoIncumbent: the time budget was exhausted before any feasible
	// solution was found. Distinct from StatusFeasible, which has one.
	ErrNoIncumbent = errors.New("time limit reached with no feasible solution")
)

// Result carries the raw variable assignment from one successful solve.
// It is only ever produced with StatusOptimal or StatusFeasible; on every
// other outcome Solve returns an error and no values.
type Result struct {
	Status    Status
	Objective float64
	values    []float64
}

// Solve hands the instance to HiGHS with a wall-clock budget and maps the
// solver status onto the Status taxonomy. The call blocks until the solver
// returns or the limit elapses; there is no mid-solve cancellation.
func Solve(inst *Instance, timeLimit time.Duration) (*Result, error) {
	sol, err := inst.mdl.Solve(
		highs.WithTimeLimit(timeLimit.Seconds()),
		highs.WithOutput(false),
	)
	if err != nil {
		return nil, fmt.Errorf("highs solve: %w", err)
	}

	switch {
	case sol.IsOptimal():
		return &Result{Status: StatusOptimal, Objective: sol.Objective, values: sol.ColValues}, nil
	case sol.IsTimeLimit() && sol.HasSolution():
		return &Result{Status: StatusFeasible, Objective: sol.Objective, values: sol.ColValues}, nil
	case sol.IsInfeasible():
		return nil, ErrInfeasible
	case sol.IsUnbounded():
		return nil, ErrUnbounded
	case sol.IsTimeLimit():
		return nil, ErrNoIncumbent
	default:
		return nil, fmt.Errorf("solver stopped without a solution: status %v", sol.Status)
	}
}
