package repository

import (
	"errors"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file" // Required for file source
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // SQLite driver for local setups
)

// NewDB establishes a connection to the database. Supported drivers are
// "postgres" and "sqlite".
func NewDB(driver, dataSourceName string, logger *zap.Logger) (*sqlx.DB, error) {
	db, err := sqlx.Connect(driver, dataSourceName)
	if err != nil {
		return nil, err
	}

	err = db.Ping()
	if err != nil {
		return nil, err
	}

	logger.Info("Successfully connected to the database!", zap.String("driver", driver))
	return db, nil
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS sentiment_results (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	text TEXT NOT NULL,
	result TEXT NOT NULL,
	score REAL NOT NULL,
	true_result TEXT,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_sentiment_results_created_at ON sentiment_results (created_at);
`

// MigrateDB brings the schema up to date. PostgreSQL goes through
// golang-migrate with the migrations/ directory; sqlite applies the
// embedded schema directly.
func MigrateDB(db *sqlx.DB, driver string, logger *zap.Logger) {
	if driver == "sqlite" {
		if _, err := db.Exec(sqliteSchema); err != nil {
			logger.Fatal("Couldn't apply sqlite schema", zap.Error(err))
		}
		logger.Info("Database migration was run successfully")
		return
	}

	pgDriver, err := postgres.WithInstance(db.DB, &postgres.Config{})
	if err != nil {
		logger.Fatal("Couldn't get database instance for running migrations", zap.Error(err))
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "sentiment_service", pgDriver)
	if err != nil {
		logger.Fatal("Couldn't create migrate instance", zap.Error(err))
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Fatal("Couldn't run database migration", zap.Error(err))
	}

	logger.Info("Database migration was run successfully")
}
