package opt

import (
	"errors"
	"fmt"
	"log"
	"time"

	"logiflow/internal/model"
)

// Runner solves one scenario. Injectable so sweep logic can be tested
// without a solver binary; nil selects Optimize.
type Runner func(in Inputs, p Params) (model.Solution, error)

// SweepConfig parameterizes a scenario sweep.
type SweepConfig struct {
	// Caps is the ordered set of max-warehouse counts to compare.
	Caps      []int
	TimeLimit time.Duration
	Run       Runner
}

// ErrNoScenarios is returned when every swept cap was infeasible.
var ErrNoScenarios = errors.New("no feasible scenarios")

// CompareScenarios re-solves the model once per cap, strictly sequentially,
// each iteration through a fresh instance. Infeasible caps are logged and
// omitted from the table; any other failure aborts the sweep. The best row
// is the first minimum of total cost in cap order.
func CompareScenarios(in Inputs, cfg SweepConfig) (model.SweepResult, error) {
	run := cfg.Run
	if run == nil {
		run = Optimize
	}

	result := model.SweepResult{Best: -1, CreatedAt: time.Now().UTC()}
	for _, maxW := range cfg.Caps {
		sol, err := run(in, Params{MaxWarehouses: &maxW, TimeLimit: cfg.TimeLimit})
		if err != nil {
			if errors.Is(err, ErrInfeasible) {
				log.Printf("scenario max_warehouses=%d is infeasible, skipping", maxW)
				continue
			}
			return model.SweepResult{}, fmt.Errorf("scenario max_warehouses=%d: %w", maxW, err)
		}
		result.Rows = append(result.Rows, model.Scenario{
			MaxWarehouses:    maxW,
			ActualWarehouses: sol.NumWarehouses(),
			TotalCost:        sol.TotalCost,
			FixedCost:        sol.FixedCost,
			VariableCost:     sol.VariableCost,
		})
		if result.Best < 0 || sol.TotalCost < result.Rows[result.Best].TotalCost {
			result.Best = len(result.Rows) - 1
		}
	}
	if len(result.Rows) == 0 {
		return model.SweepResult{}, ErrNoScenarios
	}
	return result, nil
}
