package repos

import (
	"gizmocash/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ReviewRepo struct{ db *sqlx.DB }

func NewReviewRepo(db *sqlx.DB) *ReviewRepo { return &ReviewRepo{db: db} }

func (r *ReviewRepo) ListApproved(limit int) ([]domain.Review, error) {
	if limit <= 0 {
		limit = 20
	}
	var out []domain.Review
	err := r.db.Select(&out, `
		SELECT id, author, city_name, rating, body, approved, created_at
		FROM reviews WHERE approved = 1
		ORDER BY datetime(created_at) DESC
		LIMIT ?
	`, limit)
	return out, err
}

func (r *ReviewRepo) ListAll() ([]domain.Review, error) {
	var out []domain.Review
	err := r.db.Select(&out, `
		SELECT id, author, city_name, rating, body, approved, created_at
		FROM reviews ORDER BY datetime(created_at) DESC
	`)
	return out, err
}

func (r *ReviewRepo) SetApproved(id string, approved bool) error {
	_, err := r.db.Exec(`UPDATE reviews SET approved = ? WHERE id = ?`, approved, id)
	return err
}

func (r *ReviewRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM reviews WHERE id = ?`, id)
	return err
}
