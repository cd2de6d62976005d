package opt

import (
	"errors"
	"math"
	"testing"
	"time"

	"logiflow/internal/model"
)

// These tests invoke the HiGHS solver on small instances; each solve is well
// under a second.

const solveBudget = 30 * time.Second

func mustOptimize(t *testing.T, in Inputs, maxWarehouses *int) model.Solution {
	t.Helper()
	sol, err := Optimize(in, Params{MaxWarehouses: maxWarehouses, TimeLimit: solveBudget})
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	return sol
}

func TestOptimizeOpensCheapestWarehouse(t *testing.T) {
	sol := mustOptimize(t, twoWarehouseInputs(), nil)

	if sol.NumWarehouses() != 1 || sol.OpenWarehouses[0] != "A" {
		t.Fatalf("open warehouses = %v, want [A]", sol.OpenWarehouses)
	}
	// 100*10 + 50*12 + 30*8 = 1840 transport on top of A's fixed cost
	if math.Abs(sol.VariableCost-1840) > 0.05 {
		t.Fatalf("variable cost = %v, want 1840", sol.VariableCost)
	}
	if math.Abs(sol.TotalCost-1_001_840) > 0.05 {
		t.Fatalf("total cost = %v, want 1001840", sol.TotalCost)
	}
	if sol.ServiceLevel != "Standard" {
		t.Fatalf("service level = %q, want Standard", sol.ServiceLevel)
	}
}

func TestDemandConservation(t *testing.T) {
	in := threeWarehouseInputs()
	sol := mustOptimize(t, in, nil)

	served := map[string]float64{}
	for _, r := range sol.Routes {
		served[r.Customer] += r.Shipments
	}
	for c, want := range in.Demand {
		if math.Abs(served[c]-want) > 0.02 {
			t.Fatalf("customer %s served %v, want %v", c, served[c], want)
		}
	}
}

func TestRoutesOnlyFromOpenWarehouses(t *testing.T) {
	sol := mustOptimize(t, threeWarehouseInputs(), intp(2))

	open := map[string]bool{}
	for _, w := range sol.OpenWarehouses {
		open[w] = true
	}
	for _, r := range sol.Routes {
		if !open[r.Warehouse] {
			t.Fatalf("route %s->%s ships from a closed warehouse", r.Warehouse, r.Customer)
		}
	}
}

func TestCostConsistency(t *testing.T) {
	for name, in := range map[string]Inputs{
		"two":   twoWarehouseInputs(),
		"three": threeWarehouseInputs(),
	} {
		sol := mustOptimize(t, in, nil)
		if math.Abs(sol.FixedCost+sol.VariableCost-sol.TotalCost) > 1e-9 {
			t.Fatalf("%s: fixed+variable != total: %v + %v != %v", name, sol.FixedCost, sol.VariableCost, sol.TotalCost)
		}
		if math.Abs(sol.TotalCost-sol.Objective) > 0.05 {
			t.Fatalf("%s: total %v diverges from objective %v", name, sol.TotalCost, sol.Objective)
		}
	}
}

func TestCapRespected(t *testing.T) {
	for _, maxW := range []int{1, 2, 3} {
		sol := mustOptimize(t, threeWarehouseInputs(), intp(maxW))
		if sol.NumWarehouses() > maxW {
			t.Fatalf("cap %d: opened %d warehouses", maxW, sol.NumWarehouses())
		}
		if sol.MaxWarehouses != maxW {
			t.Fatalf("cap %d not recorded on solution, got %d", maxW, sol.MaxWarehouses)
		}
	}
}

func TestMonotonicRelaxation(t *testing.T) {
	in := threeWarehouseInputs()
	cap1 := mustOptimize(t, in, intp(1))
	cap2 := mustOptimize(t, in, intp(2))
	uncapped := mustOptimize(t, in, nil)

	if cap1.TotalCost < cap2.TotalCost-0.05 {
		t.Fatalf("cap=1 (%v) cheaper than cap=2 (%v)", cap1.TotalCost, cap2.TotalCost)
	}
	if cap2.TotalCost < uncapped.TotalCost-0.05 {
		t.Fatalf("cap=2 (%v) cheaper than uncapped (%v)", cap2.TotalCost, uncapped.TotalCost)
	}
	// This network is built so more warehouses strictly help.
	if uncapped.TotalCost >= cap2.TotalCost {
		t.Fatalf("uncapped (%v) should strictly beat cap=2 (%v)", uncapped.TotalCost, cap2.TotalCost)
	}
}

func TestZeroCapIsInfeasible(t *testing.T) {
	_, err := Optimize(twoWarehouseInputs(), Params{MaxWarehouses: intp(0), TimeLimit: solveBudget})
	if !errors.Is(err, ErrInfeasible) {
		t.Fatalf("cap=0 err = %v, want ErrInfeasible", err)
	}
}

func TestScenarioSweepEndToEnd(t *testing.T) {
	sweep, err := CompareScenarios(threeWarehouseInputs(), SweepConfig{
		Caps:      []int{1, 2, 3},
		TimeLimit: solveBudget,
	})
	if err != nil {
		t.Fatalf("CompareScenarios: %v", err)
	}
	if len(sweep.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(sweep.Rows))
	}
	// More warehouses strictly help here, so cap=3 wins.
	if best := sweep.Optimal(); best.MaxWarehouses != 3 || best.ActualWarehouses != 3 {
		t.Fatalf("optimal = %+v, want cap 3 with 3 open", best)
	}
	for i := 1; i < len(sweep.Rows); i++ {
		if sweep.Rows[i].TotalCost > sweep.Rows[i-1].TotalCost+0.05 {
			t.Fatalf("total cost increased with a looser cap: %v", sweep.Rows)
		}
	}
}
