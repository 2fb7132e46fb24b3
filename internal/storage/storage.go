// Package storage provides score persistence for the tower game.
// SQLite (pure-Go modernc.org/sqlite driver) is the default backend;
// PostgreSQL is available through pgx for shared servers.
package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pressly/goose/v3"
)

// ScoreStore is the persistence surface used by the CLI, the TUI and the
// game itself (BestScore/SetBestScore satisfy the game's best-score store).
type ScoreStore interface {
	SaveScore(gameID string, score int) (int64, error)
	TopScores(gameID string, limit int) ([]ScoreEntry, error)
	HighScore(gameID string) (int, error)
	ClearScores(gameID string) error
	GetGameStats(gameID string) (*GameStats, error)
	BestScore(key string) (int, bool, error)
	SetBestScore(key string, score int) error
	Close() error
}

// ScoreEntry represents a single high score record.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Score     int
	CreatedAt time.Time
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// OpenURL opens the store named by dsn: postgres:// and postgresql:// URLs
// use PostgreSQL, anything else is treated as a SQLite file path.
func OpenURL(ctx context.Context, dsn string) (ScoreStore, error) {
	if isPostgresDSN(dsn) {
		return OpenPostgres(ctx, dsn)
	}
	return Open(dsn)
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrations embed.FS

// goose keeps its dialect and filesystem in package globals.
var migrateMu sync.Mutex

// runMigrations applies all pending migrations from dir using dialect.
func runMigrations(ctx context.Context, db *sql.DB, dialect, dir string) error {
	migrateMu.Lock()
	defer migrateMu.Unlock()

	goose.SetLogger(goose.NopLogger())
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// keyPrefixPattern matches best score keys of difficulty variants
// ("tower_easy" for "tower") in a LIKE clause.
func keyPrefixPattern(gameID string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(gameID) + `\_%`
}

// parseTimestamp handles drivers that return DATETIME as a string.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339Nano} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
