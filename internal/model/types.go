package model

import "time"

// Warehouse is a candidate facility location. The candidate set is fixed for
// the lifetime of one optimization run.
type Warehouse struct {
	ID        string  `json:"id"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Region    string  `json:"region"`
	FixedCost float64 `json:"fixedCostAnnual"`
}

// DemandRecord is one aggregated (customer, service level) demand row.
type DemandRecord struct {
	Customer     string  `json:"customer"`
	ServiceLevel string  `json:"serviceLevel"`
	Demand       float64 `json:"demand"`
}

// CostEntry prices one warehouse->customer lane for a service level.
type CostEntry struct {
	Warehouse    string  `json:"warehouse"`
	Customer     string  `json:"customer"`
	ServiceLevel string  `json:"serviceLevel"`
	DistanceKm   float64 `json:"distanceKm"`
	CostPerUnit  float64 `json:"costPerShipment"`
}

// Route is one shipping lane in an extracted solution. Flows below the
// extraction threshold never appear here.
type Route struct {
	Warehouse   string  `json:"warehouse"`
	Customer    string  `json:"customer"`
	Shipments   float64 `json:"shipments"`
	CostPerUnit float64 `json:"costPerShipment"`
	LineCost    float64 `json:"totalCost"`
}

// Solution is the immutable result of one solve. The ID is assigned by the
// store at save time.
type Solution struct {
	ID             string    `json:"id,omitempty"`
	ServiceLevel   string    `json:"serviceLevel"`
	MaxWarehouses  int       `json:"maxWarehouses,omitempty"` // 0 means uncapped
	OpenWarehouses []string  `json:"openWarehouses"`
	Routes         []Route   `json:"routes"`
	FixedCost      float64   `json:"fixedCost"`
	VariableCost   float64   `json:"variableCost"`
	TotalCost      float64   `json:"totalCost"`
	Objective      float64   `json:"objectiveValue"`
	SolvedAt       time.Time `json:"solvedAt"`
}

// NumWarehouses returns the number of facilities opened by the solution.
func (s Solution) NumWarehouses() int { return len(s.OpenWarehouses) }

// Scenario is one row of a warehouse-count sweep: the requested cap and the
// cost profile the solver reached under it. The solver may open fewer
// warehouses than the cap allows.
type Scenario struct {
	MaxWarehouses    int     `json:"maxWarehouses"`
	ActualWarehouses int     `json:"actualWarehouses"`
	TotalCost        float64 `json:"totalCost"`
	FixedCost        float64 `json:"fixedCost"`
	VariableCost     float64 `json:"variableCost"`
}

// SweepResult is the ordered comparison table produced by a scenario sweep.
// Best indexes the cost-minimizing row (first minimum in cap order).
type SweepResult struct {
	ID        string     `json:"id,omitempty"`
	Rows      []Scenario `json:"rows"`
	Best      int        `json:"best"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Optimal returns the cost-minimizing scenario row.
func (r SweepResult) Optimal() Scenario { return r.Rows[r.Best] }

// Savings compares an optimized solution against a baseline network cost.
type Savings struct {
	BaselineCost      float64 `json:"baselineCost"`
	OptimizedCost     float64 `json:"optimizedCost"`
	AnnualSavings     float64 `json:"annualSavings"`
	SavingsPercentage float64 `json:"savingsPercentage"`
}
