package sink

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/flexworks/co2flex/core/model"
	coresink "github.com/flexworks/co2flex/core/sink"
)

// SQLiteSink persists runs and their results in a SQLite database, one row
// per run and one per result. Skipped objectives are stored as NULL.
type SQLiteSink struct {
	db *sql.DB
}

// NewSQLiteSink opens or creates the database and ensures schema.
func NewSQLiteSink(path string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `CREATE TABLE IF NOT EXISTS runs (
        id TEXT PRIMARY KEY,
        year INTEGER,
        started INTEGER,
        finished INTEGER,
        series_points INTEGER,
        cases INTEGER,
        combination INTEGER,
        avg_price REAL,
        avg_emf REAL
    );
    CREATE TABLE IF NOT EXISTS results (
        run_id TEXT,
        tp TEXT,
        name TEXT,
        scope TEXT,
        maximization TEXT,
        load_change TEXT,
        max_emission REAL,
        ass_cost REAL,
        max_cost REAL,
        ass_emission REAL
    );`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteSink{db: db}, nil
}

// RecordResults stores the run row and all result rows in one transaction.
func (s *SQLiteSink) RecordResults(run coresink.RunInfo, results []model.AnnualResult) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	_, err = tx.Exec(`INSERT INTO runs (id, year, started, finished, series_points, cases, combination, avg_price, avg_emf)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Year, run.Started.Unix(), run.Finished.Unix(),
		run.SeriesLen, run.Cases, run.Combination, run.Avg.Price, run.Avg.EMF)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("insert run: %w", err)
	}
	for _, r := range results {
		_, err = tx.Exec(`INSERT INTO results (run_id, tp, name, scope, maximization, load_change, max_emission, ass_cost, max_cost, ass_emission)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, r.TP, r.Name, string(r.Scope), string(r.Maximization), string(r.LoadChange),
			nullObjective(r.Emission, true), nullObjective(r.Emission, false),
			nullObjective(r.Cost, true), nullObjective(r.Cost, false))
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert result %s/%s: %w", r.TP, r.Name, err)
		}
	}
	return tx.Commit()
}

func nullObjective(o model.ObjectiveResult, reduction bool) sql.NullFloat64 {
	if !o.Computed {
		return sql.NullFloat64{}
	}
	v := o.Associated
	if reduction {
		v = o.Reduction
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

// Close closes the underlying database.
func (s *SQLiteSink) Close() error { return s.db.Close() }
