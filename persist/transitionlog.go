package persist

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/comalice/fsmx"
)

const transitionSchema = `
CREATE TABLE IF NOT EXISTS transitions (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	machine_id  TEXT NOT NULL,
	seq         INTEGER NOT NULL,
	from_id     TEXT NOT NULL,
	to_id       TEXT NOT NULL,
	event_id    TEXT NOT NULL,
	edge_id     TEXT NOT NULL,
	context     TEXT NOT NULL,
	recorded_at TEXT NOT NULL,
	UNIQUE(machine_id, seq)
);
CREATE INDEX IF NOT EXISTS idx_transitions_machine ON transitions(machine_id);
`

// TransitionLog is a SQLite-backed durable, append-only log of dehydrated
// transition records, keyed by machine id and ordered by append sequence.
// Context values are stored as JSON.
type TransitionLog[C any] struct {
	db *sql.DB
}

// NewTransitionLog opens (or creates) the database at dbPath and runs
// migrations. Use ":memory:" for an ephemeral log.
func NewTransitionLog[C any](dbPath string) (*TransitionLog[C], error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(transitionSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &TransitionLog[C]{db: db}, nil
}

// Append stores records for machineID after the log's current tail.
// All records are written in one transaction.
func (l *TransitionLog[C]) Append(machineID string, recs ...fsmx.TransitionSnapshot[C]) error {
	if len(recs) == 0 {
		return nil
	}

	var next int64
	err := l.db.QueryRow(
		`SELECT COALESCE(MAX(seq)+1, 0) FROM transitions WHERE machine_id = ?`,
		machineID,
	).Scan(&next)
	if err != nil {
		return fmt.Errorf("next seq: %w", err)
	}

	tx, err := l.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	for i, r := range recs {
		ctxJSON, err := json.Marshal(r.Context)
		if err != nil {
			return fmt.Errorf("marshal context: %w", err)
		}
		_, err = tx.Exec(
			`INSERT INTO transitions (machine_id, seq, from_id, to_id, event_id, edge_id, context, recorded_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			machineID, next+int64(i), r.FromStateID, r.ToStateID, r.EventID, r.EdgeID, string(ctxJSON), now,
		)
		if err != nil {
			return fmt.Errorf("insert transition: %w", err)
		}
	}
	return tx.Commit()
}

// List returns all stored records for machineID in append order.
func (l *TransitionLog[C]) List(machineID string) ([]fsmx.TransitionSnapshot[C], error) {
	rows, err := l.db.Query(
		`SELECT from_id, to_id, event_id, edge_id, context
		 FROM transitions WHERE machine_id = ? ORDER BY seq`,
		machineID,
	)
	if err != nil {
		return nil, fmt.Errorf("list transitions: %w", err)
	}
	defer rows.Close()

	var recs []fsmx.TransitionSnapshot[C]
	for rows.Next() {
		var r fsmx.TransitionSnapshot[C]
		var ctxJSON string
		if err := rows.Scan(&r.FromStateID, &r.ToStateID, &r.EventID, &r.EdgeID, &ctxJSON); err != nil {
			return nil, fmt.Errorf("scan transition: %w", err)
		}
		if err := json.Unmarshal([]byte(ctxJSON), &r.Context); err != nil {
			return nil, fmt.Errorf("unmarshal context: %w", err)
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

// Machines returns the ids of all machines with at least one record.
func (l *TransitionLog[C]) Machines() ([]string, error) {
	rows, err := l.db.Query(`SELECT DISTINCT machine_id FROM transitions ORDER BY machine_id`)
	if err != nil {
		return nil, fmt.Errorf("list machines: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan machine id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Close releases the underlying database handle.
func (l *TransitionLog[C]) Close() error {
	return l.db.Close()
}
