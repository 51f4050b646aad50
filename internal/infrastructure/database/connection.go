package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jackc/pgx/v5/tracelog"
	_ "github.com/lib/pq"           // registers the postgres driver
	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/lingodeck/internal/infrastructure/config"
)

// DB is a database/sql handle that remembers which placeholder dialect it speaks.
type DB struct {
	*sql.DB
	Driver string
}

// Rebind rewrites ? placeholders into $n for the postgres drivers.
func (db *DB) Rebind(query string) string {
	if db.Driver == config.DriverSQLite {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// NewConnection opens the configured database, applies the schema and returns a
// cleanup function that closes it.
func NewConnection(cfg *config.Config, logger *logrus.Logger) (*DB, func(), error) {
	driver, err := cfg.DatabaseDriver()
	if err != nil {
		return nil, nil, fmt.Errorf("determine database driver: %w", err)
	}
	dsn, err := cfg.DatabaseURL()
	if err != nil {
		return nil, nil, fmt.Errorf("determine database dsn: %w", err)
	}

	var rawDB *sql.DB
	switch driver {
	case config.DriverPGX:
		rawDB, err = openPGX(dsn, cfg.Database.LogSQL, logger)
	default:
		rawDB, err = sql.Open(driver, dsn)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("open %s db: %w", driver, err)
	}
	if driver == config.DriverSQLite {
		rawDB.SetMaxOpenConns(1)
		rawDB.SetMaxIdleConns(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rawDB.PingContext(ctx); err != nil {
		rawDB.Close()
		return nil, nil, fmt.Errorf("ping %s db: %w", driver, err)
	}

	db := &DB{DB: rawDB, Driver: driver}
	if err := Migrate(ctx, db); err != nil {
		rawDB.Close()
		return nil, nil, err
	}

	logger.WithField("driver", driver).Debug("database ready")
	return db, func() {
		_ = rawDB.Close()
	}, nil
}

func openPGX(dsn string, logSQL bool, logger *logrus.Logger) (*sql.DB, error) {
	connCfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pgx config: %w", err)
	}
	if logSQL {
		connCfg.Tracer = &tracelog.TraceLog{
			Logger: tracelog.LoggerFunc(func(_ context.Context, lvl tracelog.LogLevel, msg string, data map[string]any) {
				logger.WithFields(logrus.Fields(data)).WithField("pgx_level", lvl.String()).Debug(msg)
			}),
			LogLevel: tracelog.LogLevelTrace,
		}
	}
	return stdlib.OpenDB(*connCfg), nil
}
