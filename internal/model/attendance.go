package model

import "time"

// Attendance statuses.
const (
	AttendancePresent = "PRESENT"
	AttendanceAbsent  = "ABSENT"
)

// Attendance is one student's record for one course on one date.  The
// (student, course, date) triple is unique; marking it twice is a
// conflict rather than an overwrite.
type Attendance struct {
	ID        uint64    // attendance.id
	StudentID uint64    // attendance.student_id
	Course    string    // attendance.course
	Date      time.Time // attendance.att_date (date precision)
	Status    string    // attendance.status
	MarkedBy  uint64    // attendance.marked_by
	CreatedAt time.Time // attendance.created_at
}
