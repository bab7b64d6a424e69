package pg

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/huddle-dev/huddle/shared/config"
	"github.com/huddle-dev/huddle/shared/logger"
	sharedpg "github.com/huddle-dev/huddle/shared/storage/pg"
)

//go:embed migrations/init.sql
var initSQL string

type Storage struct {
	db *sql.DB
}

func New(ctx context.Context, cfg *config.Config) (*Storage, error) {
	logger.Log.Info("connecting to db", "component", "pg", "host", cfg.Private.Pg.Host, "dbname", cfg.Private.Pg.Dbname)
	db, err := sharedpg.Connect(ctx, cfg, sharedpg.DefaultConnectionConfig())
	if err != nil {
		return nil, err
	}
	s := &Storage{db: db}

	if cfg.Private.Pg.Migrate {
		if err := s.Migrate(ctx); err != nil {
			db.Close()
			return nil, err
		}
	}
	logger.Log.Info("connected to db", "component", "pg")
	return s, nil
}

// Migrate applies the schema. Every statement is idempotent.
func (s *Storage) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, initSQL); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}

// database anyway round to microsecond
func now() time.Time {
	return time.Now().UTC().Round(time.Microsecond)
}

func newId() string {
	return uuid.NewString()
}
