package model

import "time"

// Resume stores the structured content of a user's resume.  Rendering to
// HTML or PDF happens outside this service; only the text is kept here.
// Each user has at most one resume row.
type Resume struct {
	ID         uint64    // resumes.id
	UserID     uint64    // resumes.user_id (unique)
	Summary    string    // resumes.summary
	Education  string    // resumes.education
	Experience string    // resumes.experience
	Skills     string    // resumes.skills
	UpdatedAt  time.Time // resumes.updated_at
}
