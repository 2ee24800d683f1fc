package repos

import (
	"gizmocash/internal/domain"

	"github.com/jmoiron/sqlx"
)

type LaptopRepo struct{ db *sqlx.DB }

func NewLaptopRepo(db *sqlx.DB) *LaptopRepo { return &LaptopRepo{db: db} }

// Processors lists distinct processors for a device, the first facet.
func (r *LaptopRepo) Processors(deviceID string) ([]string, error) {
	var out []string
	err := r.db.Select(&out, `
		SELECT DISTINCT processor FROM laptop_variants
		WHERE device_id = ? ORDER BY processor
	`, deviceID)
	return out, err
}

// RAMs lists RAM options still valid under the chosen processor.
func (r *LaptopRepo) RAMs(deviceID, processor string) ([]string, error) {
	var out []string
	err := r.db.Select(&out, `
		SELECT DISTINCT ram FROM laptop_variants
		WHERE device_id = ? AND processor = ? ORDER BY ram
	`, deviceID, processor)
	return out, err
}

// Storages lists storage options under processor+RAM.
func (r *LaptopRepo) Storages(deviceID, processor, ram string) ([]string, error) {
	var out []string
	err := r.db.Select(&out, `
		SELECT DISTINCT storage FROM laptop_variants
		WHERE device_id = ? AND processor = ? AND ram = ? ORDER BY storage
	`, deviceID, processor, ram)
	return out, err
}

// Screens lists screen sizes under processor+RAM+storage.
func (r *LaptopRepo) Screens(deviceID, processor, ram, storage string) ([]string, error) {
	var out []string
	err := r.db.Select(&out, `
		SELECT DISTINCT screen FROM laptop_variants
		WHERE device_id = ? AND processor = ? AND ram = ? AND storage = ?
		ORDER BY screen
	`, deviceID, processor, ram, storage)
	return out, err
}

// Resolve returns the single variant matching all four facets.
func (r *LaptopRepo) Resolve(deviceID, processor, ram, storage, screen string) (domain.LaptopVariant, error) {
	var v domain.LaptopVariant
	err := r.db.Get(&v, `
		SELECT id, device_id, processor, ram, storage, screen
		FROM laptop_variants
		WHERE device_id = ? AND processor = ? AND ram = ? AND storage = ? AND screen = ?
	`, deviceID, processor, ram, storage, screen)
	return v, err
}

func (r *LaptopRepo) Get(id string) (domain.LaptopVariant, error) {
	var v domain.LaptopVariant
	err := r.db.Get(&v, `
		SELECT id, device_id, processor, ram, storage, screen
		FROM laptop_variants WHERE id = ?
	`, id)
	return v, err
}

// PriceRecord returns the pricing row for a laptop variant. sql.ErrNoRows
// means pricing is unavailable; callers must surface that, never invent
// a price.
func (r *LaptopRepo) PriceRecord(variantID string) (domain.LaptopPriceRecord, error) {
	var rec domain.LaptopPriceRecord
	err := r.db.Get(&rec, `
		SELECT variant_id, price_under_1yr, price_1_to_3yrs, price_over_3yrs,
		       deduct_good_pct, deduct_average_pct, deduct_below_avg_pct,
		       charger_deduction, box_deduction, bill_deduction
		FROM laptop_prices WHERE variant_id = ?
	`, variantID)
	return rec, err
}

// ---------- Admin CRUD ----------

type LaptopPriceRow struct {
	domain.LaptopPriceRecord
	DeviceName string `db:"device_name"`
	Processor  string `db:"processor"`
	RAM        string `db:"ram"`
	Storage    string `db:"storage"`
}

func (r *LaptopRepo) ListPrices() ([]LaptopPriceRow, error) {
	var out []LaptopPriceRow
	err := r.db.Select(&out, `
		SELECT p.variant_id, p.price_under_1yr, p.price_1_to_3yrs, p.price_over_3yrs,
		       p.deduct_good_pct, p.deduct_average_pct, p.deduct_below_avg_pct,
		       p.charger_deduction, p.box_deduction, p.bill_deduction,
		       d.name AS device_name, v.processor, v.ram, v.storage
		FROM laptop_prices p
		JOIN laptop_variants v ON v.id = p.variant_id
		JOIN devices d ON d.id = v.device_id
		ORDER BY d.name, v.processor
	`)
	return out, err
}

func (r *LaptopRepo) UpsertPrice(rec domain.LaptopPriceRecord) error {
	_, err := r.db.Exec(`
		INSERT INTO laptop_prices(variant_id, price_under_1yr, price_1_to_3yrs, price_over_3yrs,
		  deduct_good_pct, deduct_average_pct, deduct_below_avg_pct,
		  charger_deduction, box_deduction, bill_deduction)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(variant_id) DO UPDATE SET
		  price_under_1yr = excluded.price_under_1yr,
		  price_1_to_3yrs = excluded.price_1_to_3yrs,
		  price_over_3yrs = excluded.price_over_3yrs,
		  deduct_good_pct = excluded.deduct_good_pct,
		  deduct_average_pct = excluded.deduct_average_pct,
		  deduct_below_avg_pct = excluded.deduct_below_avg_pct,
		  charger_deduction = excluded.charger_deduction,
		  box_deduction = excluded.box_deduction,
		  bill_deduction = excluded.bill_deduction
	`, rec.VariantID, rec.PriceUnderOneYear, rec.PriceOneToThreeYears, rec.PriceOverThreeYears,
		rec.DeductGoodPct, rec.DeductAveragePct, rec.DeductBelowAvgPct,
		rec.ChargerDeduction, rec.BoxDeduction, rec.BillDeduction)
	return err
}
