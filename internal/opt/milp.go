package opt

import (
	"math"
	"sort"
	"time"

	highs "github.com/bartolsthoorn/gohighs/highs"

	"logiflow/internal/model"
)

// Lane identifies one warehouse->customer shipping pair.
type Lane struct {
	Warehouse string
	Customer  string
}

// Inputs are the data tables filtered to a single service level: the full
// candidate set, total demand per customer, and per-unit lane costs.
type Inputs struct {
	ServiceLevel string
	Warehouses   []model.Warehouse
	Demand       map[string]float64
	Costs        map[Lane]float64
}

// Params control one solve.
type Params struct {
	// MaxWarehouses caps the number of open facilities. Nil means uncapped.
	// A cap of zero is a real (infeasible) cap, not "no cap".
	MaxWarehouses *int
	TimeLimit     time.Duration
}

// Instance is one built MILP, immutable once returned by Build. Every build
// produces a fresh Instance; solve and extract consume it without sharing
// mutable state, so concurrent optimization requests each get their own.
type Instance struct {
	mdl          *highs.Model
	warehouses   []model.Warehouse
	customers    []string // sorted; fixes the flow column layout
	demand       map[string]float64
	costs        map[Lane]float64
	totalDemand  float64
	missingCosts int
	cap          *int
	serviceLevel string
}

// Column layout: open indicators occupy [0, W), flow variables follow in
// warehouse-major order.
func (in *Instance) openCol(wi int) int { return wi }

func (in *Instance) flowCol(wi, ci int) int {
	return len(in.warehouses) + wi*len(in.customers) + ci
}

// MissingCosts reports how many lanes serving nonzero demand had no cost
// entry and were priced at zero. Nonzero counts are a data-quality problem:
// shipping on those lanes looks free to the objective.
func (in *Instance) MissingCosts() int { return in.missingCosts }

// TotalDemand is the sum of all filtered demand, also the big-M constant.
func (in *Instance) TotalDemand() float64 { return in.totalDemand }

// NumVars returns the number of decision variables in the instance.
func (in *Instance) NumVars() int {
	return len(in.warehouses) + len(in.warehouses)*len(in.customers)
}

// Build constructs the facility-location MILP:
//
//	min   sum_w fixed_w*open_w + sum_{w,c} cost_{wc}*flow_{wc}
//	s.t.  sum_w flow_{wc} == demand_c            for every customer c
//	      flow_{wc} <= M*open_w                  M = total demand
//	      sum_w open_w <= cap                    if a cap is given
//	      open_w in {0,1}, flow_{wc} >= 0
//
// Lanes absent from the cost table default to zero cost; the count of such
// lanes is kept on the Instance so callers can surface the warning.
func Build(in Inputs, maxWarehouses *int) *Instance {
	customers := make([]string, 0, len(in.Demand))
	for c := range in.Demand {
		customers = append(customers, c)
	}
	sort.Strings(customers)

	inst := &Instance{
		warehouses:   in.Warehouses,
		customers:    customers,
		demand:       in.Demand,
		costs:        in.Costs,
		cap:          maxWarehouses,
		serviceLevel: in.ServiceLevel,
	}
	for _, c := range customers {
		inst.totalDemand += in.Demand[c]
	}

	numW := len(in.Warehouses)
	numCols := inst.NumVars()
	mdl := &highs.Model{
		ColCosts: make([]float64, numCols),
		ColLower: make([]float64, numCols),
		ColUpper: make([]float64, numCols),
		VarTypes: make([]highs.VariableType, numCols),
	}

	for wi, w := range in.Warehouses {
		col := inst.openCol(wi)
		mdl.ColCosts[col] = w.FixedCost
		mdl.ColUpper[col] = 1
		mdl.VarTypes[col] = highs.Integer
	}
	for wi, w := range in.Warehouses {
		for ci, c := range customers {
			col := inst.flowCol(wi, ci)
			unit, ok := in.Costs[Lane{Warehouse: w.ID, Customer: c}]
			if !ok && in.Demand[c] > 0 {
				inst.missingCosts++
			}
			mdl.ColCosts[col] = unit
			mdl.ColUpper[col] = math.Inf(1)
			mdl.VarTypes[col] = highs.Continuous
		}
	}

	// Demand satisfaction: inbound flow equals demand exactly. No backlog,
	// no partial fulfillment.
	for ci, c := range customers {
		cols := make([]int, numW)
		vals := make([]float64, numW)
		for wi := range in.Warehouses {
			cols[wi] = inst.flowCol(wi, ci)
			vals[wi] = 1
		}
		mdl.AddSparseRow(in.Demand[c], cols, vals, in.Demand[c])
	}

	// Linking: flow_{wc} - M*open_w <= 0. M = total demand never binds when
	// the warehouse is open and forces flow to zero when closed.
	for wi := range in.Warehouses {
		for ci := range customers {
			mdl.AddSparseRow(
				math.Inf(-1),
				[]int{inst.flowCol(wi, ci), inst.openCol(wi)},
				[]float64{1, -inst.totalDemand},
				0,
			)
		}
	}

	if maxWarehouses != nil {
		cols := make([]int, numW)
		vals := make([]float64, numW)
		for wi := range in.Warehouses {
			cols[wi] = inst.openCol(wi)
			vals[wi] = 1
		}
		mdl.AddSparseRow(math.Inf(-1), cols, vals, float64(*maxWarehouses))
	}

	inst.mdl = mdl
	return inst
}
