package storage

import (
	"context"
	"database/sql"
	"fmt"
	"iter"
	"time"

	"nagios-autothreshold/src/helpers"
	"nagios-autothreshold/src/logger"
	"nagios-autothreshold/src/models"

	_ "modernc.org/sqlite"
)

// sqliteTimeLayout is how start_time is stored in snapshot databases.
const sqliteTimeLayout = time.DateTime

// -----------------------------------------------------------------------------

// SQLiteDB reads check results from an offline NDOUtils snapshot.
type SQLiteDB struct {
	Config *models.MConfig
	DB     *sql.DB
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewSQLiteDB(cfg *models.MConfig, log *logger.Logger) (*SQLiteDB, error) {
	return &SQLiteDB{
		Config: cfg,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) Initialize() error {
	dsn := d.Config.Storage.DBPath

	// Open DB
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return helpers.NewRepositoryUnavailableError("open", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.Config.Storage.Timeout())
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return helpers.NewRepositoryUnavailableError("ping", err)
	}

	d.DB = db

	// Readers never block on a concurrent importer
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		d.Logger.Warning("Failed to set WAL mode: %v", err)
	}

	d.Logger.Info("SQLiteDB initialized successfully (path: %s)", dsn)
	return nil
}

// -----------------------------------------------------------------------------

// CreateSchema creates the NDOUtils subset the analysis reads, for seeding
// a new snapshot. Existing tables are left alone.
func (d *SQLiteDB) CreateSchema() error {
	p := d.Config.Storage.TablePrefix
	statements := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %shosts (
				host_object_id INTEGER PRIMARY KEY,
				display_name TEXT NOT NULL
			);`, p),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %sservices (
				service_object_id INTEGER PRIMARY KEY,
				host_object_id INTEGER NOT NULL,
				display_name TEXT NOT NULL
			);`, p),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %sservicechecks (
				servicecheck_id INTEGER PRIMARY KEY AUTOINCREMENT,
				service_object_id INTEGER NOT NULL,
				state INTEGER NOT NULL,
				start_time TEXT NOT NULL,
				perfdata TEXT
			);`, p),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %sservicechecks_start_idx ON %sservicechecks (service_object_id, start_time);`, p, p),
	}

	for _, stmt := range statements {
		if _, err := d.DB.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) FetchSamples(ctx context.Context, q models.MSampleQuery) iter.Seq2[models.MRawSample, error] {
	loc := q.Location
	if loc == nil {
		loc = time.Local
	}
	query, args := sampleQuery(d.Config.Storage.TablePrefix, q, questionPlaceholder, func(t time.Time) any {
		return t.In(loc).Format(sqliteTimeLayout)
	})

	return fetchSamples(ctx, d.DB, d.Config.Storage.Timeout(), d.Logger, query, args, func(rows *sql.Rows) (models.MRawSample, error) {
		var s models.MRawSample
		var raw any
		if err := rows.Scan(&raw, &s.PerfData); err != nil {
			return s, err
		}
		ts, err := sqliteTime(raw, loc)
		if err != nil {
			return s, err
		}
		s.StartTime = ts
		return s, nil
	})
}

// sqliteTime accepts start_time as text or, when the column was declared
// DATETIME, as the driver-parsed time.
func sqliteTime(raw any, loc *time.Location) (time.Time, error) {
	switch v := raw.(type) {
	case time.Time:
		return wallClock(v, loc), nil
	case string:
		return time.ParseInLocation(sqliteTimeLayout, v, loc)
	case []byte:
		return time.ParseInLocation(sqliteTimeLayout, string(v), loc)
	default:
		return time.Time{}, fmt.Errorf("unexpected start_time type %T", raw)
	}
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
