// Package results archives season outcomes and serves the
// historical-year views built on them.
package results

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/boersenspiel/leaderboard/internal/contracts"
	"github.com/boersenspiel/leaderboard/pkg/logger"
)

// Record is one archived stock result: who bet on which company, in
// which direction, and what it returned that season.
type Record struct {
	Year        int     `json:"year"`
	Owner       string  `json:"owner"`
	Company     string  `json:"company"`
	Direction   string  `json:"direction"`
	Performance float64 `json:"performance"`
}

// Repository stores season results in PostgreSQL.
type Repository struct {
	pool   *pgxpool.Pool
	logger *logger.Logger
}

// NewRepository connects to the database and ensures the schema exists.
func NewRepository(ctx context.Context, databaseURL string, log *logger.Logger) (*Repository, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	repo := &Repository{pool: pool, logger: log}
	if err := repo.init(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return repo, nil
}

// init creates the results table when missing.
func (r *Repository) init(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS season_results (
			year        INT          NOT NULL,
			owner       TEXT         NOT NULL,
			company     TEXT         NOT NULL,
			direction   TEXT         NOT NULL,
			performance DOUBLE PRECISION NOT NULL,
			PRIMARY KEY (year, owner, company)
		)
	`)
	if err != nil {
		return fmt.Errorf("create season_results table: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (r *Repository) Close() {
	r.pool.Close()
}

// Archive writes the current ranking as the final result of a season,
// one row per stock. Existing rows for the year are replaced.
func (r *Repository) Archive(ctx context.Context, year int, entries []contracts.RankingEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin archive transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM season_results WHERE year = $1`, year); err != nil {
		return fmt.Errorf("clear season %d: %w", year, err)
	}

	for _, entry := range entries {
		for _, stock := range entry.Stocks {
			_, err := tx.Exec(ctx, `
				INSERT INTO season_results (year, owner, company, direction, performance)
				VALUES ($1, $2, $3, $4, $5)
			`, year, entry.Player, stock.Ticker, string(stock.Direction), float64(stock.PerformanceForGame))
			if err != nil {
				return fmt.Errorf("insert result for %s/%s: %w", entry.Player, stock.Ticker, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit archive transaction: %w", err)
	}

	r.logger.WithFields(map[string]interface{}{
		"year":    year,
		"players": len(entries),
	}).Info("Season results archived")
	return nil
}

// ByYear returns all archived results for one season.
func (r *Repository) ByYear(ctx context.Context, year int) ([]Record, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT year, owner, company, direction, performance
		FROM season_results
		WHERE year = $1
		ORDER BY owner, direction
	`, year)
	if err != nil {
		return nil, fmt.Errorf("query season %d: %w", year, err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// Matrix returns the owner-by-year performance matrix: for every owner
// and season, the average game performance of their stocks.
func (r *Repository) Matrix(ctx context.Context) (map[string]map[int]float64, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT owner, year, AVG(performance)
		FROM season_results
		GROUP BY owner, year
		ORDER BY owner, year
	`)
	if err != nil {
		return nil, fmt.Errorf("query performance matrix: %w", err)
	}
	defer rows.Close()

	matrix := make(map[string]map[int]float64)
	for rows.Next() {
		var owner string
		var year int
		var avg float64
		if err := rows.Scan(&owner, &year, &avg); err != nil {
			return nil, fmt.Errorf("scan matrix row: %w", err)
		}
		if matrix[owner] == nil {
			matrix[owner] = make(map[int]float64)
		}
		matrix[owner][year] = avg
	}

	return matrix, rows.Err()
}

func scanRecords(rows pgx.Rows) ([]Record, error) {
	records := make([]Record, 0)
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.Year, &rec.Owner, &rec.Company, &rec.Direction, &rec.Performance); err != nil {
			return nil, fmt.Errorf("scan result row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
