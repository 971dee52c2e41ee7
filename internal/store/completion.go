package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"hearth/internal/model"
)

// ErrAlreadyCompleted reports that a completion already exists for the
// (task, user) pair. It is a defined idempotent outcome, not a failure.
var ErrAlreadyCompleted = errors.New("task already completed by user")

type CompletionStore struct {
	db *sql.DB
}

func NewCompletionStore(db *sql.DB) *CompletionStore {
	return &CompletionStore{db: db}
}

func scanCompletion(scanner interface{ Scan(...any) error }) (*model.Completion, error) {
	var c model.Completion
	err := scanner.Scan(&c.ID, &c.TaskID, &c.UserID, &c.CompletedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

const completionCols = `id, task_id, user_id, completed_at`

// Complete records a completion and its points award in one transaction:
// one completions row and one points_ledger row, or neither. Repeat calls
// for the same (task, user) return ErrAlreadyCompleted. Two concurrent
// calls racing past the existence check are serialized by the unique
// index on (task_id, user_id), so points can never be awarded twice.
func (s *CompletionStore) Complete(taskID, userID int64, points int, reason string) (*model.Completion, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var existing int64
	err = tx.QueryRow(
		`SELECT id FROM completions WHERE task_id = ? AND user_id = ?`,
		taskID, userID,
	).Scan(&existing)
	if err == nil {
		return nil, ErrAlreadyCompleted
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("check completion: %w", err)
	}

	result, err := tx.Exec(
		`INSERT INTO completions (task_id, user_id) VALUES (?, ?)`,
		taskID, userID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyCompleted
		}
		return nil, fmt.Errorf("insert completion: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	if _, err := tx.Exec(
		`INSERT INTO points_ledger (user_id, delta, reason) VALUES (?, ?, ?)`,
		userID, points, reason,
	); err != nil {
		return nil, fmt.Errorf("insert ledger entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit completion: %w", err)
	}

	row := s.db.QueryRow(`SELECT `+completionCols+` FROM completions WHERE id = ?`, id)
	c, err := scanCompletion(row)
	if err != nil {
		return nil, fmt.Errorf("get completion: %w", err)
	}
	return c, nil
}

// CompletedTaskIDs returns the ids of the household's tasks that any of
// its members have completed. Visibility is shared inside the household
// and never crosses household boundaries.
func (s *CompletionStore) CompletedTaskIDs(householdID int64) (map[int64]bool, error) {
	rows, err := s.db.Query(
		`SELECT DISTINCT c.task_id FROM completions c
		 JOIN tasks t ON t.id = c.task_id
		 WHERE t.household_id = ?`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("list completed task ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan task id: %w", err)
		}
		ids[id] = true
	}
	return ids, rows.Err()
}

func (s *CompletionStore) ListByTask(taskID int64) ([]model.Completion, error) {
	rows, err := s.db.Query(
		`SELECT `+completionCols+` FROM completions WHERE task_id = ? ORDER BY completed_at DESC, id DESC`,
		taskID,
	)
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}
	defer rows.Close()

	var completions []model.Completion
	for rows.Next() {
		c, err := scanCompletion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan completion: %w", err)
		}
		completions = append(completions, *c)
	}
	return completions, rows.Err()
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
