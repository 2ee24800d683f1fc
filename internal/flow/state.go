// Package flow implements the sell wizard's state machine: the
// accumulated selection state, the per-step entry guards and the
// snapshot serialization used to survive refreshes.
package flow

import (
	"encoding/json"

	"gizmocash/internal/domain"
	"gizmocash/internal/pricing"
)

// State is the wizard's accumulated selection. Each step merges its own
// slice via the setters below; the struct is never replaced wholesale.
type State struct {
	Category  domain.Category `json:"category,omitempty"`
	BrandID   string          `json:"brand_id,omitempty"`
	BrandName string          `json:"brand_name,omitempty"`
	Series    string          `json:"series,omitempty"`

	DeviceID    string `json:"device_id,omitempty"`
	DeviceName  string `json:"device_name,omitempty"`
	ReleaseDate string `json:"release_date,omitempty"`

	CityID   string `json:"city_id,omitempty"`
	CityName string `json:"city_name,omitempty"`

	// Phone/tablet variant selection.
	VariantID string `json:"variant_id,omitempty"`
	Storage   string `json:"storage,omitempty"`
	BasePrice int64  `json:"base_price,omitempty"`

	// Laptop facet selection, narrowed in order.
	Processor       string `json:"processor,omitempty"`
	RAM             string `json:"ram,omitempty"`
	LaptopStorage   string `json:"laptop_storage,omitempty"`
	Screen          string `json:"screen,omitempty"`
	LaptopVariantID string `json:"laptop_variant_id,omitempty"`

	AgeRange        domain.AgeRange        `json:"age_range,omitempty"`
	LaptopCondition domain.LaptopCondition `json:"laptop_condition,omitempty"`

	Condition *domain.ConditionInput `json:"condition,omitempty"`
	Quote     *pricing.Quote         `json:"quote,omitempty"`

	Phone         string `json:"phone,omitempty"`
	PhoneVerified bool   `json:"phone_verified,omitempty"`
	LeadID        string `json:"lead_id,omitempty"`
}

func (s *State) IsLaptop() bool { return s.Category == domain.CategoryLaptop }

// MergeBrand records a brand choice and invalidates everything picked
// downstream of it.
func (s *State) MergeBrand(id, name string) {
	if s.BrandID != id {
		s.clearFrom(StepSeries)
	}
	s.BrandID, s.BrandName = id, name
}

func (s *State) MergeSeries(series string) {
	if s.Series != series {
		s.clearFrom(StepDevice)
	}
	s.Series = series
}

func (s *State) MergeDevice(d domain.Device) {
	if s.DeviceID != d.ID {
		s.clearFrom(StepCity)
	}
	s.DeviceID, s.DeviceName, s.ReleaseDate = d.ID, d.Name, d.ReleaseDate
}

func (s *State) MergeCity(id, name string) {
	s.CityID, s.CityName = id, name
}

func (s *State) MergeVariant(v domain.Variant) {
	if s.VariantID != v.ID {
		s.clearFrom(StepCondition)
	}
	s.VariantID, s.Storage, s.BasePrice = v.ID, v.Storage, v.BasePrice
}

func (s *State) MergeLaptopVariant(v domain.LaptopVariant) {
	if s.LaptopVariantID != v.ID {
		s.clearFrom(StepCondition)
	}
	s.LaptopVariantID = v.ID
	s.Processor, s.RAM, s.LaptopStorage, s.Screen = v.Processor, v.RAM, v.Storage, v.Screen
}

func (s *State) MergeCondition(in domain.ConditionInput, q pricing.Quote) {
	s.Condition = &in
	s.Quote = &q
}

func (s *State) MergeLaptopCondition(age domain.AgeRange, cond domain.LaptopCondition, in domain.ConditionInput, q pricing.Quote) {
	s.AgeRange, s.LaptopCondition = age, cond
	s.Condition = &in
	s.Quote = &q
}

// MergePhonePending records the number a verification code was just
// sent to. A different number invalidates any earlier verification and
// its lead; re-sending to the same number keeps both.
func (s *State) MergePhonePending(phone string) {
	if s.Phone != phone {
		s.PhoneVerified = false
		s.LeadID = ""
	}
	s.Phone = phone
}

func (s *State) MergeVerifiedPhone(phone string) {
	s.Phone = phone
	s.PhoneVerified = true
}

// clearFrom wipes every slice owned by the given step and all steps
// after it, so a changed upstream choice cannot leave stale downstream
// state behind.
func (s *State) clearFrom(step Step) {
	switch step {
	case StepSeries:
		s.Series = ""
		fallthrough
	case StepDevice:
		s.DeviceID, s.DeviceName, s.ReleaseDate = "", "", ""
		fallthrough
	case StepCity:
		s.CityID, s.CityName = "", ""
		fallthrough
	case StepVariant:
		s.VariantID, s.Storage, s.BasePrice = "", "", 0
		s.Processor, s.RAM, s.LaptopStorage, s.Screen, s.LaptopVariantID = "", "", "", "", ""
		fallthrough
	case StepCondition:
		s.AgeRange, s.LaptopCondition = "", ""
		s.Condition, s.Quote = nil, nil
		fallthrough
	case StepOTP:
		s.Phone, s.PhoneVerified, s.LeadID = "", false, ""
	}
}

// Marshal serializes the state for the snapshot store.
func (s *State) Marshal() ([]byte, error) { return json.Marshal(s) }

// Unmarshal restores a snapshot written by Marshal.
func Unmarshal(data []byte) (*State, error) {
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
