package repos

import (
	"gizmocash/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type AdminRepo struct{ db *sqlx.DB }

func NewAdminRepo(db *sqlx.DB) *AdminRepo { return &AdminRepo{db: db} }

func (r *AdminRepo) ByEmail(email string) (*domain.AdminUser, error) {
	var u domain.AdminUser
	err := r.db.Get(&u, `
		SELECT id, email, name, password_hash
		FROM admin_users WHERE LOWER(email) = LOWER(?)
	`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *AdminRepo) ByID(id string) (*domain.AdminUser, error) {
	var u domain.AdminUser
	err := r.db.Get(&u, `SELECT id, email, name, password_hash FROM admin_users WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// LogActivity appends one row to the admin audit trail.
func (r *AdminRepo) LogActivity(adminID, action, detail string) error {
	_, err := r.db.Exec(`
		INSERT INTO admin_activity_logs(id, admin_id, action, detail)
		VALUES (?, ?, ?, ?)
	`, uuid.NewString(), adminID, action, detail)
	return err
}

func (r *AdminRepo) RecentActivity(limit int) ([]domain.ActivityLog, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []domain.ActivityLog
	err := r.db.Select(&out, `
		SELECT id, admin_id, action, detail, created_at
		FROM admin_activity_logs
		ORDER BY datetime(created_at) DESC
		LIMIT ?
	`, limit)
	return out, err
}
