package flow

import "gizmocash/internal/domain"

// Step identifies one wizard page. Steps are strictly ordered, with one
// branch point: series-grouped brands insert StepSeries before the
// device list, and laptops replace the flat variant list with facets.
type Step string

const (
	StepCategory  Step = "category"
	StepBrand     Step = "brand"
	StepSeries    Step = "series"
	StepDevice    Step = "device"
	StepCity      Step = "city"
	StepVariant   Step = "variant"
	StepCondition Step = "condition"
	StepOTP       Step = "otp"
	StepValuation Step = "valuation"
	StepPickup    Step = "pickup"
)

// Order is the linear page sequence (series is conditional and sits
// between brand and device when present).
var Order = []Step{
	StepCategory, StepBrand, StepSeries, StepDevice, StepCity,
	StepVariant, StepCondition, StepOTP, StepValuation, StepPickup,
}

// CanEnter reports whether every upstream field the step requires is
// present. Pages must redirect to the flow start when this is false;
// rendering a step with missing upstream state is a hard invariant
// violation, not a cosmetic issue.
func (s *State) CanEnter(step Step) bool {
	switch step {
	case StepCategory:
		return true
	case StepBrand:
		return s.Category.Valid()
	case StepSeries, StepDevice:
		return s.Category.Valid() && s.BrandID != ""
	case StepCity:
		return s.Category.Valid() && s.BrandID != "" && s.DeviceID != ""
	case StepVariant:
		return s.Category.Valid() && s.BrandID != "" && s.DeviceID != "" && s.CityID != ""
	case StepCondition:
		if !s.CanEnter(StepVariant) {
			return false
		}
		if s.IsLaptop() {
			return s.LaptopVariantID != ""
		}
		return s.VariantID != "" && s.BasePrice > 0
	case StepOTP:
		return s.CanEnter(StepCondition) && s.Condition != nil && s.Quote != nil
	case StepValuation, StepPickup:
		return s.CanEnter(StepOTP) && s.PhoneVerified && s.Phone != ""
	default:
		return false
	}
}

// Checkpointed reports whether entering the step must persist a
// snapshot: after the offer is computed and after phone verification,
// so a refresh mid-OTP or mid-scheduling never loses progress.
func Checkpointed(step Step) bool {
	return step == StepOTP || step == StepValuation || step == StepPickup
}

// NewState starts an empty flow for a category. An invalid category
// yields nil so callers fall back to the category page.
func NewState(cat domain.Category) *State {
	if !cat.Valid() {
		return nil
	}
	return &State{Category: cat}
}
