package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"logiflow/internal/model"
)

// Postgres persists solutions and sweep tables as JSON documents.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	p := &Postgres{db: db}
	if err := p.ensureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return p, nil
}

func (p *Postgres) ensureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS solutions (
			id UUID PRIMARY KEY,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			doc JSONB NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS sweeps (
			id UUID PRIMARY KEY,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			doc JSONB NOT NULL
		)`,
	}
	for _, s := range stmts {
		if _, err := p.db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

func (p *Postgres) SaveSolution(ctx context.Context, sol model.Solution) (string, error) {
	sol.ID = uuid.New().String()
	doc, err := json.Marshal(sol)
	if err != nil {
		return "", err
	}
	_, err = p.db.ExecContext(ctx,
		`INSERT INTO solutions (id, created_at, doc) VALUES ($1, $2, $3)`,
		sol.ID, time.Now().UTC(), doc)
	if err != nil {
		return "", err
	}
	return sol.ID, nil
}

func (p *Postgres) GetSolution(ctx context.Context, id string) (model.Solution, error) {
	var doc []byte
	err := p.db.QueryRowContext(ctx, `SELECT doc FROM solutions WHERE id=$1`, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Solution{}, ErrNotFound
		}
		return model.Solution{}, err
	}
	var sol model.Solution
	if err := json.Unmarshal(doc, &sol); err != nil {
		return model.Solution{}, err
	}
	return sol, nil
}

func (p *Postgres) LatestSolution(ctx context.Context) (model.Solution, error) {
	var doc []byte
	err := p.db.QueryRowContext(ctx, `SELECT doc FROM solutions ORDER BY created_at DESC LIMIT 1`).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Solution{}, ErrNotFound
		}
		return model.Solution{}, err
	}
	var sol model.Solution
	if err := json.Unmarshal(doc, &sol); err != nil {
		return model.Solution{}, err
	}
	return sol, nil
}

func (p *Postgres) SaveSweep(ctx context.Context, sweep model.SweepResult) (string, error) {
	sweep.ID = uuid.New().String()
	doc, err := json.Marshal(sweep)
	if err != nil {
		return "", err
	}
	_, err = p.db.ExecContext(ctx,
		`INSERT INTO sweeps (id, created_at, doc) VALUES ($1, $2, $3)`,
		sweep.ID, time.Now().UTC(), doc)
	if err != nil {
		return "", err
	}
	return sweep.ID, nil
}

func (p *Postgres) GetSweep(ctx context.Context, id string) (model.SweepResult, error) {
	var doc []byte
	err := p.db.QueryRowContext(ctx, `SELECT doc FROM sweeps WHERE id=$1`, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.SweepResult{}, ErrNotFound
		}
		return model.SweepResult{}, err
	}
	var sweep model.SweepResult
	if err := json.Unmarshal(doc, &sweep); err != nil {
		return model.SweepResult{}, err
	}
	return sweep, nil
}

// Close releases the underlying connection pool.
func (p *Postgres) Close() error { return p.db.Close() }
