package repos

import (
	"gizmocash/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CityRepo struct{ db *sqlx.DB }

func NewCityRepo(db *sqlx.DB) *CityRepo { return &CityRepo{db: db} }

func (r *CityRepo) ListActive() ([]domain.City, error) {
	var out []domain.City
	err := r.db.Select(&out, `SELECT id, name, active FROM cities WHERE active = 1 ORDER BY name`)
	return out, err
}

func (r *CityRepo) Get(id string) (domain.City, error) {
	var c domain.City
	err := r.db.Get(&c, `SELECT id, name, active FROM cities WHERE id = ?`, id)
	return c, err
}

func (r *CityRepo) ListAll() ([]domain.City, error) {
	var out []domain.City
	err := r.db.Select(&out, `SELECT id, name, active FROM cities ORDER BY name`)
	return out, err
}

func (r *CityRepo) Upsert(c domain.City) error {
	_, err := r.db.Exec(`
		INSERT INTO cities(id, name, active) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, active = excluded.active
	`, c.ID, c.Name, c.Active)
	return err
}

func (r *CityRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM cities WHERE id = ?`, id)
	return err
}
