package tables

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"logiflow/internal/model"
)

// Loaders for the three optimizer input tables. Each file must carry the
// expected header; rows are parsed strictly so data errors surface at load
// time instead of as silent zeros inside the model.

var (
	warehouseHeader = []string{"warehouse", "lat", "lon", "region", "fixed_cost_annual"}
	demandHeader    = []string{"city", "service_level", "demand"}
	costHeader      = []string{"warehouse", "customer_city", "service_level", "distance_km", "transport_cost_per_shipment"}
)

// LoadWarehouses loads the warehouse candidate table.
func LoadWarehouses(filename string) ([]model.Warehouse, error) {
	records, err := readTable(filename, warehouseHeader)
	if err != nil {
		return nil, fmt.Errorf("warehouses: %w", err)
	}
	out := make([]model.Warehouse, 0, len(records))
	seen := map[string]bool{}
	for i, rec := range records {
		lat, err := parseFloat(rec[1], "lat")
		if err != nil {
			return nil, fmt.Errorf("warehouses row %d: %w", i+2, err)
		}
		lon, err := parseFloat(rec[2], "lon")
		if err != nil {
			return nil, fmt.Errorf("warehouses row %d: %w", i+2, err)
		}
		fixed, err := parseFloat(rec[4], "fixed_cost_annual")
		if err != nil {
			return nil, fmt.Errorf("warehouses row %d: %w", i+2, err)
		}
		if fixed <= 0 {
			return nil, fmt.Errorf("warehouses row %d: fixed_cost_annual must be positive, got %v", i+2, fixed)
		}
		if seen[rec[0]] {
			return nil, fmt.Errorf("warehouses row %d: duplicate warehouse %q", i+2, rec[0])
		}
		seen[rec[0]] = true
		out = append(out, model.Warehouse{ID: rec[0], Lat: lat, Lon: lon, Region: rec[3], FixedCost: fixed})
	}
	return out, nil
}

// LoadDemand loads the aggregated demand table.
func LoadDemand(filename string) ([]model.DemandRecord, error) {
	records, err := readTable(filename, demandHeader)
	if err != nil {
		return nil, fmt.Errorf("demand: %w", err)
	}
	out := make([]model.DemandRecord, 0, len(records))
	for i, rec := range records {
		d, err := parseFloat(rec[2], "demand")
		if err != nil {
			return nil, fmt.Errorf("demand row %d: %w", i+2, err)
		}
		if d < 0 {
			return nil, fmt.Errorf("demand row %d: demand must be non-negative, got %v", i+2, d)
		}
		out = append(out, model.DemandRecord{Customer: rec[0], ServiceLevel: rec[1], Demand: d})
	}
	return out, nil
}

// LoadCosts loads the warehouse-to-customer cost/distance matrix.
func LoadCosts(filename string) ([]model.CostEntry, error) {
	records, err := readTable(filename, costHeader)
	if err != nil {
		return nil, fmt.Errorf("costs: %w", err)
	}
	out := make([]model.CostEntry, 0, len(records))
	for i, rec := range records {
		dist, err := parseFloat(rec[3], "distance_km")
		if err != nil {
			return nil, fmt.Errorf("costs row %d: %w", i+2, err)
		}
		unit, err := parseFloat(rec[4], "transport_cost_per_shipment")
		if err != nil {
			return nil, fmt.Errorf("costs row %d: %w", i+2, err)
		}
		if unit < 0 {
			return nil, fmt.Errorf("costs row %d: transport_cost_per_shipment must be non-negative, got %v", i+2, unit)
		}
		out = append(out, model.CostEntry{
			Warehouse:    rec[0],
			Customer:     rec[1],
			ServiceLevel: rec[2],
			DistanceKm:   dist,
			CostPerUnit:  unit,
		})
	}
	return out, nil
}

func readTable(filename string, expectedHeader []string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filename, err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s must have a header and at least one data row", filename)
	}
	if !headerMatches(records[0], expectedHeader) {
		return nil, fmt.Errorf("%s header mismatch: expected %v, got %v", filename, expectedHeader, records[0])
	}
	for i, rec := range records[1:] {
		if len(rec) != len(expectedHeader) {
			return nil, fmt.Errorf("%s row %d: expected %d columns, got %d", filename, i+2, len(expectedHeader), len(rec))
		}
	}
	return records[1:], nil
}

func headerMatches(header, expected []string) bool {
	if len(header) != len(expected) {
		return false
	}
	for i, h := range header {
		if strings.TrimSpace(strings.ToLower(h)) != expected[i] {
			return false
		}
	}
	return true
}

func parseFloat(s, field string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", field, s)
	}
	return v, nil
}
