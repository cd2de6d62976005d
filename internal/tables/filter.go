package tables

import (
	"logiflow/internal/model"
	"logiflow/internal/opt"
)

// ForServiceLevel filters the demand and cost tables to one service level
// and aggregates demand per customer, producing the optimizer inputs.
// Service levels partition the data into independent sub-problems solved one
// at a time; the warehouse candidate set is shared across levels.
func ForServiceLevel(warehouses []model.Warehouse, demand []model.DemandRecord, costs []model.CostEntry, level string) opt.Inputs {
	in := opt.Inputs{
		ServiceLevel: level,
		Warehouses:   warehouses,
		Demand:       map[string]float64{},
		Costs:        map[opt.Lane]float64{},
	}
	for _, d := range demand {
		if d.ServiceLevel != level {
			continue
		}
		in.Demand[d.Customer] += d.Demand
	}
	for _, c := range costs {
		if c.ServiceLevel != level {
			continue
		}
		in.Costs[opt.Lane{Warehouse: c.Warehouse, Customer: c.Customer}] = c.CostPerUnit
	}
	return in
}
