package repos

import (
	"gizmocash/internal/domain"

	"github.com/jmoiron/sqlx"
)

type BrandRepo struct{ db *sqlx.DB }

func NewBrandRepo(db *sqlx.DB) *BrandRepo { return &BrandRepo{db: db} }

func (r *BrandRepo) ListByCategory(category string) ([]domain.Brand, error) {
	var out []domain.Brand
	err := r.db.Select(&out, `
		SELECT id, name, category, logo_path, active
		FROM brands
		WHERE category = ? AND active = 1
		ORDER BY name
	`, category)
	return out, err
}

func (r *BrandRepo) Get(id string) (domain.Brand, error) {
	var b domain.Brand
	err := r.db.Get(&b, `SELECT id, name, category, logo_path, active FROM brands WHERE id = ?`, id)
	return b, err
}

// ---------- Admin CRUD ----------

func (r *BrandRepo) ListAll() ([]domain.Brand, error) {
	var out []domain.Brand
	err := r.db.Select(&out, `SELECT id, name, category, logo_path, active FROM brands ORDER BY category, name`)
	return out, err
}

func (r *BrandRepo) Upsert(b domain.Brand) error {
	_, err := r.db.Exec(`
		INSERT INTO brands(id, name, category, logo_path, active)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		  name = excluded.name, category = excluded.category,
		  logo_path = excluded.logo_path, active = excluded.active
	`, b.ID, b.Name, b.Category, b.LogoPath, b.Active)
	return err
}

func (r *BrandRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM brands WHERE id = ?`, id)
	return err
}
