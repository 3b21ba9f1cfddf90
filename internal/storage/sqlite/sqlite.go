package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/webcat/nifictl/internal/log"
	"github.com/webcat/nifictl/internal/model"
	"github.com/webcat/nifictl/internal/storage/sqlite/migrations"
)

// RepositoryConfig is the configuration for the SQLite run repository.
type RepositoryConfig struct {
	DBPath string
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.DBPath == "" {
		return fmt.Errorf("db path is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.SQLite"})
	return nil
}

// Repository is a SQLite implementation of storage.RunRepository.
type Repository struct {
	db     *sql.DB
	logger log.Logger
}

// NewRepository creates a new SQLite run repository.
func NewRepository(ctx context.Context, cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	dir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", cfg.DBPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	migrator, err := migrations.NewMigrator(db, cfg.Logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create migrator: %w", err)
	}
	if err := migrator.Up(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not run migrations: %w", err)
	}

	cfg.Logger.Debugf("SQLite run repository initialized at %s", cfg.DBPath)

	return &Repository{db: db, logger: cfg.Logger}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error { return r.db.Close() }

// DB returns the underlying database connection.
func (r *Repository) DB() *sql.DB { return r.db }

// CreateRun stores a flow run record.
func (r *Repository) CreateRun(ctx context.Context, run model.FlowRun) error {
	if run.ID == "" {
		return fmt.Errorf("run id is required: %w", model.ErrNotValid)
	}
	if run.FlowID == "" {
		return fmt.Errorf("run flow id is required: %w", model.ErrNotValid)
	}

	query := `
		INSERT INTO flow_runs (id, flow_id, action, status, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		run.ID,
		run.FlowID,
		run.Action,
		run.Status,
		run.Error,
		run.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("could not insert flow run: %w", err)
	}

	r.logger.Debugf("Created flow run in repository: %s", run.ID)
	return nil
}

// ListRuns returns flow run records newest first, optionally filtered by flow id.
func (r *Repository) ListRuns(ctx context.Context, flowID string) ([]model.FlowRun, error) {
	query := `
		SELECT id, flow_id, action, status, error, created_at
		FROM flow_runs
	`
	args := []interface{}{}
	if flowID != "" {
		query += ` WHERE flow_id = ?`
		args = append(args, flowID)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("could not query flow runs: %w", err)
	}
	defer rows.Close()

	var runs []model.FlowRun
	for rows.Next() {
		var run model.FlowRun
		var createdAt int64
		if err := rows.Scan(&run.ID, &run.FlowID, &run.Action, &run.Status, &run.Error, &createdAt); err != nil {
			return nil, fmt.Errorf("could not scan flow run: %w", err)
		}
		run.CreatedAt = time.Unix(createdAt, 0).UTC()
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not iterate flow runs: %w", err)
	}

	return runs, nil
}
