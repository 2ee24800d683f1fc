package repos

import (
	"gizmocash/internal/domain"

	"github.com/jmoiron/sqlx"
)

type LeadRepo struct{ db *sqlx.DB }

func NewLeadRepo(db *sqlx.DB) *LeadRepo { return &LeadRepo{db: db} }

func (r *LeadRepo) Create(l domain.Lead) error {
	_, err := r.db.Exec(`
		INSERT INTO leads(id, phone, category, brand_name, device_name, city_name, quoted_price, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, 'NEW')
	`, l.ID, l.Phone, l.Category, l.BrandName, l.DeviceName, l.CityName, l.QuotedAt)
	return err
}

func (r *LeadRepo) ListLatest(limit int) ([]domain.Lead, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []domain.Lead
	err := r.db.Select(&out, `
		SELECT id, phone, category, brand_name, device_name, city_name, quoted_price, status, created_at
		FROM leads
		ORDER BY datetime(created_at) DESC
		LIMIT ?
	`, limit)
	return out, err
}

func (r *LeadRepo) All() ([]domain.Lead, error) {
	var out []domain.Lead
	err := r.db.Select(&out, `
		SELECT id, phone, category, brand_name, device_name, city_name, quoted_price, status, created_at
		FROM leads ORDER BY datetime(created_at) DESC
	`)
	return out, err
}

func (r *LeadRepo) UpdateStatus(id, status string) error {
	_, err := r.db.Exec(`UPDATE leads SET status = ? WHERE id = ?`, status, id)
	return err
}
