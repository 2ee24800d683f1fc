package repos

import (
	"gizmocash/internal/domain"

	"github.com/jmoiron/sqlx"
)

type VariantRepo struct{ db *sqlx.DB }

func NewVariantRepo(db *sqlx.DB) *VariantRepo { return &VariantRepo{db: db} }

func (r *VariantRepo) ListByDevice(deviceID string) ([]domain.Variant, error) {
	var out []domain.Variant
	err := r.db.Select(&out, `
		SELECT id, device_id, storage, base_price
		FROM variants
		WHERE device_id = ?
		ORDER BY base_price
	`, deviceID)
	return out, err
}

func (r *VariantRepo) Get(id string) (domain.Variant, error) {
	var v domain.Variant
	err := r.db.Get(&v, `SELECT id, device_id, storage, base_price FROM variants WHERE id = ?`, id)
	return v, err
}

func (r *VariantRepo) Upsert(v domain.Variant) error {
	_, err := r.db.Exec(`
		INSERT INTO variants(id, device_id, storage, base_price)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		  device_id = excluded.device_id, storage = excluded.storage,
		  base_price = excluded.base_price
	`, v.ID, v.DeviceID, v.Storage, v.BasePrice)
	return err
}

func (r *VariantRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM variants WHERE id = ?`, id)
	return err
}
