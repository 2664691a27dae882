package repository

import (
	"context"
	"database/sql"

	"github.com/devkashyap/college-management/internal/model"
)

// ResumeRepo provides data access to the resumes table.  Each user owns
// at most one resume row; Upsert keeps that invariant with an
// ON DUPLICATE KEY update against the unique user_id key.
type ResumeRepo struct {
	db *sql.DB
}

// NewResumeRepo returns a new ResumeRepo bound to the given database.
func NewResumeRepo(db *sql.DB) *ResumeRepo { return &ResumeRepo{db: db} }

// Upsert creates or replaces the resume content for a user.
func (r *ResumeRepo) Upsert(ctx context.Context, res *model.Resume) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO resumes (user_id, summary, education, experience, skills)
		 VALUES (?,?,?,?,?)
		 ON DUPLICATE KEY UPDATE summary=VALUES(summary), education=VALUES(education),
		                         experience=VALUES(experience), skills=VALUES(skills)`,
		res.UserID, res.Summary, res.Education, res.Experience, res.Skills)
	return err
}

// GetByUser fetches a user's resume.  ErrResumeNotFound is returned when
// the user has never saved one.
func (r *ResumeRepo) GetByUser(ctx context.Context, userID uint64) (model.Resume, error) {
	var res model.Resume
	err := r.db.QueryRowContext(ctx,
		"SELECT id, user_id, summary, education, experience, skills, updated_at FROM resumes WHERE user_id=? LIMIT 1",
		userID).Scan(&res.ID, &res.UserID, &res.Summary, &res.Education, &res.Experience, &res.Skills, &res.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Resume{}, ErrResumeNotFound
	}
	return res, err
}
