// Package store persists saved scenarios and calculation history in SQLite.
package store

import (
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/pressly/goose/v3"

	"github.com/theirongolddev/revcalc/internal/model"
	"github.com/theirongolddev/revcalc/internal/revenue"

	_ "modernc.org/sqlite" // register sqlite driver
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrNotFound is returned when a scenario does not exist.
var ErrNotFound = errors.New("scenario not found")

// Store is the SQLite-backed scenario and run store.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at dbPath and applies pending migrations.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func migrate(db *sql.DB) error {
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

var scenarioColumns = []string{
	"id", "name", "description",
	"call_duration_minutes", "target_volume", "price_per_minute", "hours_per_day",
	"channels", "one_time_purchase_cost", "operational_cost_per_period", "tax_rate_percent",
	"created_at", "updated_at",
}

// SaveScenario inserts sc, or updates the scenario with the same
// (case-insensitive) name. The stored scenario is returned with its ID and
// timestamps filled in.
func (s *Store) SaveScenario(sc model.Scenario) (model.Scenario, error) {
	sc.Name = strings.TrimSpace(sc.Name)
	if sc.Name == "" {
		return model.Scenario{}, errors.New("scenario name is required")
	}
	if err := sc.Params.Validate(); err != nil {
		return model.Scenario{}, fmt.Errorf("scenario %q: %w", sc.Name, err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return model.Scenario{}, err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	existing, err := getScenario(tx, sc.Name)
	switch {
	case errors.Is(err, ErrNotFound):
		sc.ID = uuid.NewString()
		sc.CreatedAt = now
	case err != nil:
		return model.Scenario{}, err
	default:
		sc.ID = existing.ID
		sc.CreatedAt = existing.CreatedAt
	}
	sc.UpdatedAt = now
	sc.Source = model.SourceSaved

	p := sc.Params
	query, args, err := squirrel.Insert("scenarios").
		Options("OR REPLACE").
		Columns(scenarioColumns...).
		Values(sc.ID, sc.Name, sc.Description,
			p.CallDurationMinutes, p.TargetVolume, p.PricePerMinute, p.HoursPerDay,
			p.Channels, p.OneTimePurchaseCost, p.OperationalCostPerPeriod, p.TaxRatePercent,
			formatTime(sc.CreatedAt), formatTime(sc.UpdatedAt)).
		ToSql()
	if err != nil {
		return model.Scenario{}, fmt.Errorf("building insert: %w", err)
	}
	if _, err := tx.Exec(query, args...); err != nil {
		return model.Scenario{}, fmt.Errorf("saving scenario %q: %w", sc.Name, err)
	}
	if err := tx.Commit(); err != nil {
		return model.Scenario{}, err
	}
	return sc, nil
}

// GetScenario returns the saved scenario with the given name.
func (s *Store) GetScenario(name string) (model.Scenario, error) {
	return getScenario(s.db, name)
}

type queryer interface {
	Query(query string, args ...any) (*sql.Rows, error)
}

func getScenario(q queryer, name string) (model.Scenario, error) {
	query, args, err := squirrel.Select(scenarioColumns...).
		From("scenarios").
		Where(squirrel.Eq{"name": strings.TrimSpace(name)}).
		ToSql()
	if err != nil {
		return model.Scenario{}, fmt.Errorf("building query: %w", err)
	}

	list, err := queryScenarios(q, query, args)
	if err != nil {
		return model.Scenario{}, err
	}
	if len(list) == 0 {
		return model.Scenario{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return list[0], nil
}

// Filter narrows ListScenarios.
type Filter struct {
	NameContains string
	Limit        int // 0 means no limit
}

// ListScenarios returns saved scenarios ordered by name.
func (s *Store) ListScenarios(f Filter) ([]model.Scenario, error) {
	qb := squirrel.Select(scenarioColumns...).
		From("scenarios").
		OrderBy("name")
	if f.NameContains != "" {
		qb = qb.Where(squirrel.Like{"name": "%" + f.NameContains + "%"})
	}
	if f.Limit > 0 {
		qb = qb.Limit(uint64(f.Limit))
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}
	return queryScenarios(s.db, query, args)
}

func queryScenarios(q queryer, query string, args []any) ([]model.Scenario, error) {
	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying scenarios: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Scenario
	for rows.Next() {
		var sc model.Scenario
		var created, updated string
		p := &sc.Params
		if err := rows.Scan(&sc.ID, &sc.Name, &sc.Description,
			&p.CallDurationMinutes, &p.TargetVolume, &p.PricePerMinute, &p.HoursPerDay,
			&p.Channels, &p.OneTimePurchaseCost, &p.OperationalCostPerPeriod, &p.TaxRatePercent,
			&created, &updated); err != nil {
			return nil, err
		}
		sc.Source = model.SourceSaved
		sc.CreatedAt = parseTime(created)
		sc.UpdatedAt = parseTime(updated)
		out = append(out, sc)
	}
	return out, rows.Err()
}

// DeleteScenario removes a saved scenario. Its run history is kept.
func (s *Store) DeleteScenario(name string) error {
	query, args, err := squirrel.Delete("scenarios").
		Where(squirrel.Eq{"name": strings.TrimSpace(name)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building delete: %w", err)
	}

	res, err := s.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("deleting scenario %q: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return nil
}

// RecordRun appends a calculation to the history.
func (s *Store) RecordRun(scenarioName string, p revenue.Params, r revenue.Results) (model.Run, error) {
	paramsJSON, err := json.Marshal(p)
	if err != nil {
		return model.Run{}, err
	}
	resultsJSON, err := json.Marshal(r)
	if err != nil {
		return model.Run{}, err
	}

	run := model.Run{ScenarioName: scenarioName, Params: p, Results: r, At: time.Now().UTC()}
	query, args, err := squirrel.Insert("runs").
		Columns("scenario_name", "params_json", "results_json", "gross_revenue", "net_revenue", "roi", "run_at").
		Values(scenarioName, string(paramsJSON), string(resultsJSON), r.GrossRevenue, r.NetRevenue, r.ROI, formatTime(run.At)).
		ToSql()
	if err != nil {
		return model.Run{}, fmt.Errorf("building insert: %w", err)
	}

	res, err := s.db.Exec(query, args...)
	if err != nil {
		return model.Run{}, fmt.Errorf("recording run: %w", err)
	}
	run.ID, _ = res.LastInsertId()
	return run, nil
}

// ListRuns returns the most recent runs first. An empty scenarioName
// lists runs for every scenario.
func (s *Store) ListRuns(scenarioName string, limit int) ([]model.Run, error) {
	qb := squirrel.Select("id", "scenario_name", "params_json", "results_json", "run_at").
		From("runs").
		OrderBy("id DESC")
	if scenarioName != "" {
		qb = qb.Where(squirrel.Expr("scenario_name = ? COLLATE NOCASE", scenarioName))
	}
	if limit > 0 {
		qb = qb.Limit(uint64(limit))
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Run
	for rows.Next() {
		var run model.Run
		var paramsJSON, resultsJSON, at string
		if err := rows.Scan(&run.ID, &run.ScenarioName, &paramsJSON, &resultsJSON, &at); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(paramsJSON), &run.Params); err != nil {
			return nil, fmt.Errorf("run %d params: %w", run.ID, err)
		}
		if err := json.Unmarshal([]byte(resultsJSON), &run.Results); err != nil {
			return nil, fmt.Errorf("run %d results: %w", run.ID, err)
		}
		run.At = parseTime(at)
		out = append(out, run)
	}
	return out, rows.Err()
}

// RunCount returns the number of recorded runs.
func (s *Store) RunCount() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&n)
	return n, err
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}
