package services

import (
	"gizmocash/internal/flow"
	"gizmocash/internal/repos"
)

// FlowService loads and checkpoints wizard snapshots for a session.
type FlowService struct {
	Snapshots *repos.FlowRepo
}

func NewFlowService(snapshots *repos.FlowRepo) *FlowService {
	return &FlowService{Snapshots: snapshots}
}

// Load returns the session's flow state, or nil when none exists or the
// stored snapshot is unreadable (treated as no flow, never an error the
// user sees).
func (s *FlowService) Load(sessionID string) (*flow.State, error) {
	raw, err := s.Snapshots.Load(sessionID)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	st, err := flow.Unmarshal(raw)
	if err != nil {
		// Corrupt snapshot: drop it and restart the flow.
		_ = s.Snapshots.Clear(sessionID)
		return nil, nil
	}
	return st, nil
}

// Save persists the full state. Called after every merge so plain
// navigation survives too; the post-condition and post-verification
// checkpoints are just the mandatory saves.
func (s *FlowService) Save(sessionID string, st *flow.State) error {
	data, err := st.Marshal()
	if err != nil {
		return err
	}
	return s.Snapshots.Save(sessionID, data)
}

// Reset discards the session's flow, used on back-button exit and after
// the pickup request is durably recorded.
func (s *FlowService) Reset(sessionID string) error {
	return s.Snapshots.Clear(sessionID)
}
