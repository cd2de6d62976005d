package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"

	"logiflow/internal/model"
)

// Redis stores results as JSON values so dashboard processes can read them
// without linking this module.
//
// Keys: solution:<id>, solution:latest (id pointer), sweep:<id>.
type Redis struct {
	rdb *redis.Client
}

func NewRedis(url string) (*Redis, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &Redis{rdb: redis.NewClient(opt)}, nil
}

func (r *Redis) SaveSolution(ctx context.Context, sol model.Solution) (string, error) {
	sol.ID = uuid.New().String()
	data, err := json.Marshal(sol)
	if err != nil {
		return "", err
	}
	if err := r.rdb.Set(ctx, "solution:"+sol.ID, data, 0).Err(); err != nil {
		return "", err
	}
	if err := r.rdb.Set(ctx, "solution:latest", sol.ID, 0).Err(); err != nil {
		return "", err
	}
	return sol.ID, nil
}

func (r *Redis) GetSolution(ctx context.Context, id string) (model.Solution, error) {
	data, err := r.rdb.Get(ctx, "solution:"+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.Solution{}, ErrNotFound
		}
		return model.Solution{}, err
	}
	var sol model.Solution
	if err := json.Unmarshal(data, &sol); err != nil {
		return model.Solution{}, err
	}
	return sol, nil
}

func (r *Redis) LatestSolution(ctx context.Context) (model.Solution, error) {
	id, err := r.rdb.Get(ctx, "solution:latest").Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.Solution{}, ErrNotFound
		}
		return model.Solution{}, err
	}
	return r.GetSolution(ctx, id)
}

func (r *Redis) SaveSweep(ctx context.Context, sweep model.SweepResult) (string, error) {
	sweep.ID = uuid.New().String()
	data, err := json.Marshal(sweep)
	if err != nil {
		return "", err
	}
	if err := r.rdb.Set(ctx, "sweep:"+sweep.ID, data, 0).Err(); err != nil {
		return "", err
	}
	return sweep.ID, nil
}

func (r *Redis) GetSweep(ctx context.Context, id string) (model.SweepResult, error) {
	data, err := r.rdb.Get(ctx, "sweep:"+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.SweepResult{}, ErrNotFound
		}
		return model.SweepResult{}, err
	}
	var sweep model.SweepResult
	if err := json.Unmarshal(data, &sweep); err != nil {
		return model.SweepResult{}, err
	}
	return sweep, nil
}

// Close releases the client connection.
func (r *Redis) Close() error { return r.rdb.Close() }
