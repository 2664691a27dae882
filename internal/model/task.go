package model

import "time"

// Task statuses.
const (
	TaskAssigned  = "ASSIGNED"
	TaskCompleted = "COMPLETED"
)

// Task is a piece of work a faculty member assigns to a student.
//
// Fields:
//
//	ID         – primary key identifier.
//	Title      – short summary of the task.
//	Details    – longer description, may be empty.
//	AssignedTo – student who must complete the task.
//	AssignedBy – faculty member who created it.
//	Status     – ASSIGNED or COMPLETED.
//	DueDate    – deadline (date precision).
//	CreatedAt  – creation timestamp.
//	UpdatedAt  – last update timestamp.
type Task struct {
	ID         uint64    // tasks.id
	Title      string    // tasks.title
	Details    string    // tasks.details
	AssignedTo uint64    // tasks.assigned_to
	AssignedBy uint64    // tasks.assigned_by
	Status     string    // tasks.status
	DueDate    time.Time // tasks.due_date
	CreatedAt  time.Time // tasks.created_at
	UpdatedAt  time.Time // tasks.updated_at
}
