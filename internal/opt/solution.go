package opt

import (
	"math"
	"time"

	"logiflow/internal/model"
)

const (
	// openThreshold separates 0/1 indicator values despite solver noise.
	openThreshold = 0.5
	// flowThreshold filters near-zero flows the solver leaves non-exactly
	// zero from genuine routes.
	flowThreshold = 0.01
)

func round2(v float64) float64 { return math.Round(v*100) / 100 }

// Extract converts a solved variable assignment into a Solution: the open
// warehouse set, the significant routes with their costs, and the cost
// breakdown. The returned value is self-contained and never mutated.
func Extract(inst *Instance, res *Result) model.Solution {
	open := make([]string, 0, len(inst.warehouses))
	fixedCost := 0.0
	for wi, w := range inst.warehouses {
		if res.values[inst.openCol(wi)] > openThreshold {
			open = append(open, w.ID)
			fixedCost += w.FixedCost
		}
	}

	routes := []model.Route{}
	variableCost := 0.0
	for wi, w := range inst.warehouses {
		for ci, c := range inst.customers {
			flow := res.values[inst.flowCol(wi, ci)]
			if flow <= flowThreshold {
				continue
			}
			unit := inst.costs[Lane{Warehouse: w.ID, Customer: c}] // absent lanes priced zero, same as the objective
			line := round2(flow * unit)
			routes = append(routes, model.Route{
				Warehouse:   w.ID,
				Customer:    c,
				Shipments:   round2(flow),
				CostPerUnit: unit,
				LineCost:    line,
			})
			variableCost += line
		}
	}

	sol := model.Solution{
		ServiceLevel:   inst.serviceLevel,
		OpenWarehouses: open,
		Routes:         routes,
		FixedCost:      fixedCost,
		VariableCost:   variableCost,
		TotalCost:      fixedCost + variableCost,
		Objective:      res.Objective,
		SolvedAt:       time.Now().UTC(),
	}
	if inst.cap != nil {
		sol.MaxWarehouses = *inst.cap
	}
	return sol
}
