package storage

import (
	"context"
	"database/sql"
	"iter"
	"time"

	"nagios-autothreshold/src/helpers"
	"nagios-autothreshold/src/logger"
	"nagios-autothreshold/src/models"

	_ "github.com/lib/pq"
)

// -----------------------------------------------------------------------------

// PostgresDB reads NDOUtils check results from PostgreSQL.
type PostgresDB struct {
	Config *models.MConfig
	DB     *sql.DB
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewPostgresDB(cfg *models.MConfig, log *logger.Logger) (*PostgresDB, error) {
	return &PostgresDB{
		Config: cfg,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) Initialize() error {
	dsn := d.Config.Storage.DBConnectionString
	db, err := sql.Open("postgres", dsn)
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
	d.Logger.Info("PostgresDB initialized successfully (prefix: %s)", d.Config.Storage.TablePrefix)
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) FetchSamples(ctx context.Context, q models.MSampleQuery) iter.Seq2[models.MRawSample, error] {
	loc := q.Location
	if loc == nil {
		loc = time.Local
	}
	query, args := sampleQuery(d.Config.Storage.TablePrefix, q, dollarPlaceholder, func(t time.Time) any {
		// timestamp without time zone compares on wall clock
		return t.In(loc)
	})

	return fetchSamples(ctx, d.DB, d.Config.Storage.Timeout(), d.Logger, query, args, func(rows *sql.Rows) (models.MRawSample, error) {
		var s models.MRawSample
		if err := rows.Scan(&s.StartTime, &s.PerfData); err != nil {
			return s, err
		}
		s.StartTime = wallClock(s.StartTime, loc)
		return s, nil
	})
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
