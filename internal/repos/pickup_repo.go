package repos

import (
	"gizmocash/internal/domain"

	"github.com/jmoiron/sqlx"
)

type PickupRepo struct{ db *sqlx.DB }

func NewPickupRepo(db *sqlx.DB) *PickupRepo { return &PickupRepo{db: db} }

func (r *PickupRepo) Create(p domain.PickupRequest) error {
	_, err := r.db.Exec(`
		INSERT INTO pickup_requests(id, lead_id, phone, category, brand_name, device_name,
		  variant_label, city_name, final_price, customer_name, address, pincode,
		  pickup_date, pickup_slot, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 'PENDING')
	`, p.ID, p.LeadID, p.Phone, p.Category, p.BrandName, p.DeviceName,
		p.VariantLabel, p.CityName, p.FinalPrice, p.CustomerName, p.Address, p.Pincode,
		p.PickupDate, p.PickupSlot)
	return err
}

func (r *PickupRepo) Get(id string) (domain.PickupRequest, error) {
	var p domain.PickupRequest
	err := r.db.Get(&p, `SELECT * FROM pickup_requests WHERE id = ?`, id)
	return p, err
}

func (r *PickupRepo) ListLatest(limit int) ([]domain.PickupRequest, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []domain.PickupRequest
	err := r.db.Select(&out, `
		SELECT * FROM pickup_requests
		ORDER BY datetime(created_at) DESC
		LIMIT ?
	`, limit)
	return out, err
}

func (r *PickupRepo) All() ([]domain.PickupRequest, error) {
	var out []domain.PickupRequest
	err := r.db.Select(&out, `SELECT * FROM pickup_requests ORDER BY datetime(created_at) DESC`)
	return out, err
}

func (r *PickupRepo) UpdateStatus(id, status string) error {
	_, err := r.db.Exec(`UPDATE pickup_requests SET status = ? WHERE id = ?`, status, id)
	return err
}
