package store

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"logiflow/internal/model"
)

func testSolution() model.Solution {
	return model.Solution{
		ServiceLevel:   "Standard",
		OpenWarehouses: []string{"A"},
		Routes: []model.Route{
			{Warehouse: "A", Customer: "X", Shipments: 100, CostPerUnit: 10, LineCost: 1000},
		},
		FixedCost:    1_000_000,
		VariableCost: 1000,
		TotalCost:    1_001_000,
		Objective:    1_001_000,
		SolvedAt:     time.Date(2026, 8, 23, 9, 0, 0, 0, time.UTC),
	}
}

func TestMemorySolutionRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	sol := testSolution()
	id, err := m.SaveSolution(ctx, sol)
	if err != nil {
		t.Fatalf("SaveSolution: %v", err)
	}
	if id == "" {
		t.Fatal("expected an assigned id")
	}

	got, err := m.GetSolution(ctx, id)
	if err != nil {
		t.Fatalf("GetSolution: %v", err)
	}
	want := sol
	want.ID = id
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestMemoryLatestSolution(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if _, err := m.LatestSolution(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("empty store err = %v, want ErrNotFound", err)
	}

	first := testSolution()
	if _, err := m.SaveSolution(ctx, first); err != nil {
		t.Fatalf("SaveSolution: %v", err)
	}
	second := testSolution()
	second.TotalCost = 999_999
	id2, err := m.SaveSolution(ctx, second)
	if err != nil {
		t.Fatalf("SaveSolution: %v", err)
	}

	latest, err := m.LatestSolution(ctx)
	if err != nil {
		t.Fatalf("LatestSolution: %v", err)
	}
	if latest.ID != id2 || latest.TotalCost != 999_999 {
		t.Fatalf("latest = %+v, want the second save", latest)
	}
}

func TestMemorySweepRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	sweep := model.SweepResult{
		Rows: []model.Scenario{
			{MaxWarehouses: 2, ActualWarehouses: 2, TotalCost: 900},
			{MaxWarehouses: 3, ActualWarehouses: 2, TotalCost: 850},
		},
		Best:      1,
		CreatedAt: time.Date(2026, 8, 23, 9, 5, 0, 0, time.UTC),
	}
	id, err := m.SaveSweep(ctx, sweep)
	if err != nil {
		t.Fatalf("SaveSweep: %v", err)
	}

	got, err := m.GetSweep(ctx, id)
	if err != nil {
		t.Fatalf("GetSweep: %v", err)
	}
	want := sweep
	want.ID = id
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestMemoryNotFound(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if _, err := m.GetSolution(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetSolution err = %v, want ErrNotFound", err)
	}
	if _, err := m.GetSweep(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetSweep err = %v, want ErrNotFound", err)
	}
}
