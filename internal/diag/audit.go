package diag

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/archipelago-host/archi/internal/registry"
)

// AuditLog records, durably, exactly what replay did: one row per
// executed step (spec §B.3). It is a trace of actions taken, not of
// context state, and is never read back by a later run - it does not
// reopen the "persistence of context state across runs" non-goal (spec
// §1/§C).
type AuditLog struct {
	db *sql.DB
}

// OpenAuditLog opens (creating if necessary) a sqlite database at path
// and ensures its schema exists.
func OpenAuditLog(path string) (*AuditLog, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("diag: open audit db: %w", err)
	}
	const schema = `
CREATE TABLE IF NOT EXISTS replay_steps (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	blob TEXT NOT NULL,
	step_index INTEGER NOT NULL,
	kind TEXT NOT NULL,
	key TEXT NOT NULL,
	status INTEGER NOT NULL,
	duration_ns INTEGER NOT NULL,
	recorded_at TEXT NOT NULL
);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("diag: create audit schema: %w", err)
	}
	return &AuditLog{db: db}, nil
}

// Close closes the underlying database handle.
func (a *AuditLog) Close() error { return a.db.Close() }

// RecordStep inserts one row for an executed step.
func (a *AuditLog) RecordStep(blobName string, index int, result registry.StepResult, elapsed time.Duration) error {
	_, err := a.db.Exec(
		`INSERT INTO replay_steps (blob, step_index, kind, key, status, duration_ns, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		blobName, index, result.Step.Kind.String(), result.Step.Key,
		int32(result.Status), elapsed.Nanoseconds(), time.Now().UTC().Format(time.RFC3339Nano),
	)
	return err
}
