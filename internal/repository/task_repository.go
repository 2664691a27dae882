package repository

import (
	"context"
	"database/sql"

	"github.com/devkashyap/college-management/internal/model"
)

// TaskRepo provides data access to the tasks table.
type TaskRepo struct {
	db *sql.DB
}

// NewTaskRepo returns a new TaskRepo bound to the given database.
func NewTaskRepo(db *sql.DB) *TaskRepo { return &TaskRepo{db: db} }

const taskColumns = "id, title, details, assigned_to, assigned_by, status, due_date, created_at, updated_at"

// Create inserts a task in ASSIGNED state and returns its generated ID.
func (r *TaskRepo) Create(ctx context.Context, t *model.Task) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO tasks (title, details, assigned_to, assigned_by, status, due_date) VALUES (?,?,?,?,?,?)",
		t.Title, t.Details, t.AssignedTo, t.AssignedBy, model.TaskAssigned, t.DueDate)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListAssignedTo returns tasks assigned to a student, soonest due first.
func (r *TaskRepo) ListAssignedTo(ctx context.Context, studentID uint64) ([]model.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE assigned_to=? ORDER BY due_date ASC, id ASC", studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTasks(rows)
}

// ListAssignedBy returns tasks a faculty member has handed out, newest
// first.
func (r *TaskRepo) ListAssignedBy(ctx context.Context, facultyID uint64) ([]model.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE assigned_by=? ORDER BY created_at DESC", facultyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTasks(rows)
}

// Complete marks a task COMPLETED.  Only the assigned student may complete
// it; a task belonging to someone else yields ErrForbidden and a missing
// task yields ErrTaskNotFound.
func (r *TaskRepo) Complete(ctx context.Context, taskID, studentID uint64) error {
	var assignedTo uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT assigned_to FROM tasks WHERE id=? LIMIT 1", taskID).Scan(&assignedTo)
	if err == sql.ErrNoRows {
		return ErrTaskNotFound
	}
	if err != nil {
		return err
	}
	if assignedTo != studentID {
		return ErrForbidden
	}
	_, err = r.db.ExecContext(ctx,
		"UPDATE tasks SET status=? WHERE id=?", model.TaskCompleted, taskID)
	return err
}

func scanTasks(rows *sql.Rows) ([]model.Task, error) {
	tasks := make([]model.Task, 0)
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Details, &t.AssignedTo, &t.AssignedBy,
			&t.Status, &t.DueDate, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}
