package repos

import (
	"database/sql"

	"gizmocash/internal/domain"

	"github.com/jmoiron/sqlx"
)

type SettingsRepo struct{ db *sqlx.DB }

func NewSettingsRepo(db *sqlx.DB) *SettingsRepo { return &SettingsRepo{db: db} }

// Get returns def when the key is absent.
func (r *SettingsRepo) Get(key, def string) (string, error) {
	var v string
	err := r.db.Get(&v, `SELECT value FROM system_settings WHERE key = ?`, key)
	if err == sql.ErrNoRows {
		return def, nil
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (r *SettingsRepo) All() ([]domain.SystemSetting, error) {
	var out []domain.SystemSetting
	err := r.db.Select(&out, `SELECT key, value, updated_at FROM system_settings ORDER BY key`)
	return out, err
}

func (r *SettingsRepo) Set(key, value string) error {
	_, err := r.db.Exec(`
		INSERT INTO system_settings(key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	return err
}
