package services

import (
	"errors"
	"fmt"

	"gizmocash/internal/domain"
	"gizmocash/internal/flow"
	"gizmocash/internal/repos"
	"gizmocash/internal/sse"

	"github.com/google/uuid"
)

var ErrFlowIncomplete = errors.New("flow state incomplete")

// SellService owns the tail of the wizard: lead creation at phone
// verification and the terminal pickup request.
type SellService struct {
	Leads   *repos.LeadRepo
	Pickups *repos.PickupRepo
	Flows   *FlowService
	Hub     *sse.Hub
}

func NewSellService(leads *repos.LeadRepo, pickups *repos.PickupRepo, flows *FlowService, hub *sse.Hub) *SellService {
	return &SellService{Leads: leads, Pickups: pickups, Flows: flows, Hub: hub}
}

// RecordVerified runs right after OTP confirmation: it merges the
// verified phone into the flow, writes the lead (follow-up record even
// if the user abandons here) and checkpoints the snapshot.
func (s *SellService) RecordVerified(sessionID string, st *flow.State, phone string) error {
	if st == nil || st.Quote == nil {
		return ErrFlowIncomplete
	}
	st.MergeVerifiedPhone(phone)

	lead := domain.Lead{
		ID:         uuid.NewString(),
		Phone:      phone,
		Category:   string(st.Category),
		BrandName:  st.BrandName,
		DeviceName: st.DeviceName,
		CityName:   st.CityName,
		QuotedAt:   st.Quote.FinalPrice,
	}
	if err := s.Leads.Create(lead); err != nil {
		return err
	}
	st.LeadID = lead.ID

	if err := s.Flows.Save(sessionID, st); err != nil {
		return err
	}
	s.Hub.PublishLeadCreated(lead.ID, lead.DeviceName)
	return nil
}

// PickupDetails is the validated final-step form.
type PickupDetails struct {
	CustomerName string `validate:"required,max=60"`
	Address      string `validate:"required,min=10,max=300"`
	Pincode      string `validate:"required,len=6,numeric"`
	PickupDate   string `validate:"required,datetime=2006-01-02"`
	PickupSlot   string `validate:"required"`
}

// SchedulePickup records the terminal pickup request, discards the flow
// snapshot and notifies the admin feed. The flow must be fully verified.
func (s *SellService) SchedulePickup(sessionID string, st *flow.State, d PickupDetails) (string, error) {
	if st == nil || !st.CanEnter(flow.StepPickup) {
		return "", ErrFlowIncomplete
	}

	label := st.Storage
	if st.IsLaptop() {
		label = fmt.Sprintf("%s / %s / %s", st.Processor, st.RAM, st.LaptopStorage)
	}

	p := domain.PickupRequest{
		ID:           uuid.NewString(),
		LeadID:       st.LeadID,
		Phone:        st.Phone,
		Category:     string(st.Category),
		BrandName:    st.BrandName,
		DeviceName:   st.DeviceName,
		VariantLabel: label,
		CityName:     st.CityName,
		FinalPrice:   st.Quote.FinalPrice,
		CustomerName: d.CustomerName,
		Address:      d.Address,
		Pincode:      d.Pincode,
		PickupDate:   d.PickupDate,
		PickupSlot:   d.PickupSlot,
	}
	if err := s.Pickups.Create(p); err != nil {
		return "", err
	}

	// The flow is complete; its snapshot is no longer needed.
	_ = s.Flows.Reset(sessionID)
	s.Hub.PublishPickupCreated(p.ID, p.DeviceName, p.FinalPrice)
	return p.ID, nil
}
