package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ArchivedResult is one emitted result record as stored in the archive.
type ArchivedResult struct {
	Seq       int
	Command   string
	Username  string
	Timestamp string
	IsError   bool
	Payload   []byte
}

// ResultRepository appends a run's results to an external archive. The
// engine never reads the archive back.
type ResultRepository interface {
	SaveRun(ctx context.Context, runID uuid.UUID, results []ArchivedResult) error
}

type resultRepository struct {
	pool *pgxpool.Pool
}

// NewResultRepository returns a Postgres-backed archive.
func NewResultRepository(pool *pgxpool.Pool) ResultRepository {
	return &resultRepository{pool: pool}
}

const insertResultQuery = `
        INSERT INTO replay_results (run_id, seq, command, username, command_timestamp, is_error, payload)
        VALUES ($1,$2,$3,$4,$5,$6,$7)`

func (r *resultRepository) SaveRun(ctx context.Context, runID uuid.UUID, results []ArchivedResult) error {
	if len(results) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin archive: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	for _, res := range results {
		if _, err := tx.Exec(ctx, insertResultQuery,
			runID.String(),
			res.Seq,
			res.Command,
			res.Username,
			res.Timestamp,
			res.IsError,
			string(res.Payload),
		); err != nil {
			return fmt.Errorf("archive result %d: %w", res.Seq, err)
		}
	}
	return tx.Commit(ctx)
}
