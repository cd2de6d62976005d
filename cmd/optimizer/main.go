package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"logiflow/internal/config"
	"logiflow/internal/metrics"
	"logiflow/internal/model"
	"logiflow/internal/opt"
	"logiflow/internal/store"
	"logiflow/internal/tables"
)

func main() {
	cfgPath := flag.String("config", "logiflow.yaml", "path to run configuration")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	metrics.RegisterDefault()
	if cfg.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
			log.Printf("metrics listening on %s", cfg.MetricsAddr)
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				log.Printf("metrics server: %v", err)
			}
		}()
	}

	warehouses, err := tables.LoadWarehouses(cfg.WarehouseFile)
	if err != nil {
		log.Fatalf("load tables: %v", err)
	}
	demand, err := tables.LoadDemand(cfg.DemandFile)
	if err != nil {
		log.Fatalf("load tables: %v", err)
	}
	costs, err := tables.LoadCosts(cfg.DistanceFile)
	if err != nil {
		log.Fatalf("load tables: %v", err)
	}
	log.Printf("loaded %d warehouse candidates, %d demand rows, %d cost rows",
		len(warehouses), len(demand), len(costs))

	in := tables.ForServiceLevel(warehouses, demand, costs, cfg.ServiceLevel)
	log.Printf("service level %q: %d customers, total demand %.0f",
		cfg.ServiceLevel, len(in.Demand), sum(in.Demand))

	ctx := context.Background()
	st, err := openStore(ctx)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}

	// Single solve, optionally capped.
	params := opt.Params{TimeLimit: cfg.SolveTimeLimit()}
	if cfg.MaxWarehouses > 0 {
		maxW := cfg.MaxWarehouses
		params.MaxWarehouses = &maxW
	}
	sol, err := opt.Optimize(in, params)
	if err != nil {
		log.Fatalf("optimize: %v", err)
	}
	printSolution(sol)

	if cfg.BaselineCost > 0 {
		sav := opt.ComputeSavings(cfg.BaselineCost, sol)
		log.Printf("baseline $%.0f/year, optimized $%.0f/year, annual savings $%.0f (%.1f%%)",
			sav.BaselineCost, sav.OptimizedCost, sav.AnnualSavings, sav.SavingsPercentage)
	}

	id, err := st.SaveSolution(ctx, sol)
	if err != nil {
		log.Fatalf("save solution: %v", err)
	}
	log.Printf("solution saved as %s", id)

	// Scenario sweep across warehouse-count caps.
	sweep, err := opt.CompareScenarios(in, opt.SweepConfig{
		Caps:      cfg.Sweep.Caps,
		TimeLimit: cfg.SweepTimeLimit(),
	})
	if err != nil {
		log.Fatalf("scenario sweep: %v", err)
	}
	printSweep(sweep)

	if _, err := st.SaveSweep(ctx, sweep); err != nil {
		log.Fatalf("save sweep: %v", err)
	}
	if cfg.Sweep.OutFile != "" {
		if err := writeSweepCSV(cfg.Sweep.OutFile, sweep); err != nil {
			log.Fatalf("write %s: %v", cfg.Sweep.OutFile, err)
		}
		log.Printf("scenario analysis written to %s", cfg.Sweep.OutFile)
	}
}

// openStore picks the store backend by environment, preferring Postgres,
// then Redis, then process memory.
func openStore(ctx context.Context) (store.Store, error) {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		return store.NewPostgres(ctx, dsn)
	}
	if url := os.Getenv("REDIS_URL"); url != "" {
		return store.NewRedis(url)
	}
	log.Printf("no DATABASE_URL or REDIS_URL set, using in-memory store")
	return store.NewMemory(), nil
}

func printSolution(sol model.Solution) {
	log.Printf("open warehouses (%d):", sol.NumWarehouses())
	for _, w := range sol.OpenWarehouses {
		log.Printf("  %s", w)
	}
	log.Printf("fixed $%.0f + transport $%.0f = total $%.0f/year (%d routes, objective %.2f)",
		sol.FixedCost, sol.VariableCost, sol.TotalCost, len(sol.Routes), sol.Objective)
}

func printSweep(sweep model.SweepResult) {
	log.Printf("scenario comparison (%d rows):", len(sweep.Rows))
	for i, row := range sweep.Rows {
		marker := " "
		if i == sweep.Best {
			marker = "*"
		}
		log.Printf("%s cap=%d opened=%d total=$%.0f fixed=$%.0f transport=$%.0f",
			marker, row.MaxWarehouses, row.ActualWarehouses, row.TotalCost, row.FixedCost, row.VariableCost)
	}
	best := sweep.Optimal()
	log.Printf("optimal scenario: %d warehouses at $%.0f/year", best.ActualWarehouses, best.TotalCost)
}

func writeSweepCSV(path string, sweep model.SweepResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"max_warehouses", "actual_warehouses", "total_cost", "fixed_cost", "variable_cost"}); err != nil {
		return err
	}
	for _, row := range sweep.Rows {
		rec := []string{
			strconv.Itoa(row.MaxWarehouses),
			strconv.Itoa(row.ActualWarehouses),
			fmt.Sprintf("%.2f", row.TotalCost),
			fmt.Sprintf("%.2f", row.FixedCost),
			fmt.Sprintf("%.2f", row.VariableCost),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func sum(m map[string]float64) float64 {
	total := 0.0
	for _, v := range m {
		total += v
	}
	return total
}
