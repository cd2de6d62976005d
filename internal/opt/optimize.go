package opt

import (
	"errors"
	"log"
	"time"

	"logiflow/internal/metrics"
	"logiflow/internal/model"
)

// Optimize is the build->solve->extract pipeline as a single pure call:
// a fresh model instance is constructed from the inputs, solved within the
// time budget, and extracted into a Solution. Nothing is shared between
// calls, so callers may run independent optimizations concurrently.
func Optimize(in Inputs, p Params) (model.Solution, error) {
	inst := Build(in, p.MaxWarehouses)
	if n := inst.MissingCosts(); n > 0 {
		// Data-quality concern, not an error: those lanes ship for free.
		log.Printf("warning: %d lanes with demand have no cost entry for service level %q, defaulting to zero cost", n, in.ServiceLevel)
		metrics.DefaultedCostEntries.Add(float64(n))
	}

	start := time.Now()
	res, err := Solve(inst, p.TimeLimit)
	status := statusLabel(res, err)
	metrics.Solves.WithLabelValues(status).Inc()
	metrics.SolveDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())
	if err != nil {
		return model.Solution{}, err
	}
	return Extract(inst, res), nil
}

func statusLabel(res *Result, err error) string {
	switch {
	case err == nil:
		return res.Status.String()
	case errors.Is(err, ErrInfeasible):
		return StatusInfeasible.String()
	case errors.Is(err, ErrUnbounded):
		return StatusUnbounded.String()
	case errors.Is(err, ErrNoIncumbent):
		return "timeout"
	default:
		return StatusError.String()
	}
}

// ComputeSavings reports the annual saving of a solution against a baseline
// network cost (typically the all-warehouses-open configuration).
func ComputeSavings(baselineCost float64, sol model.Solution) model.Savings {
	savings := baselineCost - sol.TotalCost
	pct := 0.0
	if baselineCost > 0 {
		pct = savings / baselineCost * 100
	}
	return model.Savings{
		BaselineCost:      baselineCost,
		OptimizedCost:     sol.TotalCost,
		AnnualSavings:     savings,
		SavingsPercentage: round2(pct),
	}
}
