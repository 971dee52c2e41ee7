package store

import (
	"database/sql"
	"fmt"
	"time"

	"hearth/internal/model"
)

const dueDateLayout = "2006-01-02"

type TaskStore struct {
	db *sql.DB
}

func NewTaskStore(db *sql.DB) *TaskStore {
	return &TaskStore{db: db}
}

func scanTask(scanner interface{ Scan(...any) error }) (*model.Task, error) {
	var t model.Task
	var dueDate sql.NullString
	var active int

	err := scanner.Scan(
		&t.ID, &t.HouseholdID, &t.Title, &t.Description, &t.Points,
		&t.Priority, &dueDate, &t.CreatedBy, &active, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if dueDate.Valid {
		d, err := time.Parse(dueDateLayout, dueDate.String)
		if err != nil {
			return nil, fmt.Errorf("parse due date %q: %w", dueDate.String, err)
		}
		t.DueDate = &d
	}
	t.IsActive = active != 0
	return &t, nil
}

const taskCols = `id, household_id, title, description, points, priority, due_date, created_by, is_active, created_at`

func (s *TaskStore) Create(householdID int64, title, description string, points int, priority string, dueDate *time.Time, createdBy int64) (*model.Task, error) {
	var due sql.NullString
	if dueDate != nil {
		due = sql.NullString{String: dueDate.Format(dueDateLayout), Valid: true}
	}

	result, err := s.db.Exec(
		`INSERT INTO tasks (household_id, title, description, points, priority, due_date, created_by) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		householdID, title, description, points, priority, due, createdBy,
	)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *TaskStore) GetByID(id int64) (*model.Task, error) {
	row := s.db.QueryRow(`SELECT `+taskCols+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// ListActiveByHousehold returns the household's active tasks, due-dated
// tasks first in ascending due-date order, undated tasks last.
func (s *TaskStore) ListActiveByHousehold(householdID int64) ([]model.Task, error) {
	rows, err := s.db.Query(
		`SELECT `+taskCols+` FROM tasks
		 WHERE household_id = ? AND is_active = 1
		 ORDER BY due_date IS NULL, due_date ASC, id ASC`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("list active tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// Deactivate soft-deletes a task. Rows are never removed; completions
// and ledger history must keep resolving.
func (s *TaskStore) Deactivate(id int64) error {
	_, err := s.db.Exec(`UPDATE tasks SET is_active = 0 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deactivate task: %w", err)
	}
	return nil
}
