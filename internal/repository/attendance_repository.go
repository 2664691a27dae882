package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/devkashyap/college-management/internal/model"
)

// AttendanceRepo provides data access to the attendance table.  The
// schema carries a unique key over (student_id, course, att_date); a
// duplicate insert is surfaced as ErrConflict rather than overwriting
// the earlier mark.
type AttendanceRepo struct {
	db *sql.DB
}

// NewAttendanceRepo returns a new AttendanceRepo bound to the given database.
func NewAttendanceRepo(db *sql.DB) *AttendanceRepo { return &AttendanceRepo{db: db} }

// Mark records one student's attendance for a course on a date.
func (r *AttendanceRepo) Mark(ctx context.Context, a *model.Attendance) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO attendance (student_id, course, att_date, status, marked_by) VALUES (?,?,?,?,?)",
		a.StudentID, a.Course, a.Date.Format("2006-01-02"), a.Status, a.MarkedBy)
	if err != nil {
		// 1062 = MySQL duplicate entry on (student_id, course, att_date)
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrConflict
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListByStudent returns a student's attendance records, newest date first.
func (r *AttendanceRepo) ListByStudent(ctx context.Context, studentID uint64) ([]model.Attendance, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, student_id, course, att_date, status, marked_by, created_at FROM attendance WHERE student_id=? ORDER BY att_date DESC, course ASC",
		studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAttendance(rows)
}

// ListByCourseAndDate returns every record for a course on a given date.
func (r *AttendanceRepo) ListByCourseAndDate(ctx context.Context, course string, date time.Time) ([]model.Attendance, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, student_id, course, att_date, status, marked_by, created_at FROM attendance WHERE course=? AND att_date=? ORDER BY student_id ASC",
		course, date.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAttendance(rows)
}

func scanAttendance(rows *sql.Rows) ([]model.Attendance, error) {
	records := make([]model.Attendance, 0)
	for rows.Next() {
		var a model.Attendance
		if err := rows.Scan(&a.ID, &a.StudentID, &a.Course, &a.Date, &a.Status, &a.MarkedBy, &a.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
