package repos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// FlowRepo persists wizard snapshots keyed by the browser session id.
// It is the durable store behind the flow checkpoints: a refresh or app
// switch mid-wizard restores from here.
type FlowRepo struct{ db *sqlx.DB }

func NewFlowRepo(db *sqlx.DB) *FlowRepo { return &FlowRepo{db: db} }

func (r *FlowRepo) Save(sessionID string, stateJSON []byte) error {
	_, err := r.db.Exec(`
		INSERT INTO flow_states(session_id, state_json, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(session_id) DO UPDATE SET
		  state_json = excluded.state_json, updated_at = CURRENT_TIMESTAMP
	`, sessionID, string(stateJSON))
	return err
}

// Load returns nil bytes (no error) when no snapshot exists.
func (r *FlowRepo) Load(sessionID string) ([]byte, error) {
	var raw string
	err := r.db.Get(&raw, `SELECT state_json FROM flow_states WHERE session_id = ?`, sessionID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(raw), nil
}

func (r *FlowRepo) Clear(sessionID string) error {
	_, err := r.db.Exec(`DELETE FROM flow_states WHERE session_id = ?`, sessionID)
	return err
}
