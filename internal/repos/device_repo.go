package repos

import (
	"gizmocash/internal/domain"

	"github.com/jmoiron/sqlx"
)

type DeviceRepo struct{ db *sqlx.DB }

func NewDeviceRepo(db *sqlx.DB) *DeviceRepo { return &DeviceRepo{db: db} }

func (r *DeviceRepo) ListByBrand(brandID string) ([]domain.Device, error) {
	var out []domain.Device
	err := r.db.Select(&out, `
		SELECT id, brand_id, name, series, release_date, active
		FROM devices
		WHERE brand_id = ? AND active = 1
		ORDER BY name
	`, brandID)
	return out, err
}

func (r *DeviceRepo) Get(id string) (domain.Device, error) {
	var d domain.Device
	err := r.db.Get(&d, `
		SELECT id, brand_id, name, series, release_date, active
		FROM devices WHERE id = ?
	`, id)
	return d, err
}

// ---------- Admin CRUD ----------

func (r *DeviceRepo) ListAll() ([]domain.Device, error) {
	var out []domain.Device
	err := r.db.Select(&out, `
		SELECT id, brand_id, name, series, release_date, active
		FROM devices ORDER BY brand_id, name
	`)
	return out, err
}

func (r *DeviceRepo) Upsert(d domain.Device) error {
	_, err := r.db.Exec(`
		INSERT INTO devices(id, brand_id, name, series, release_date, active)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		  brand_id = excluded.brand_id, name = excluded.name, series = excluded.series,
		  release_date = excluded.release_date, active = excluded.active
	`, d.ID, d.BrandID, d.Name, d.Series, d.ReleaseDate, d.Active)
	return err
}

func (r *DeviceRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM devices WHERE id = ?`, id)
	return err
}
