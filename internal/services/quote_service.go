package services

import (
	"database/sql"
	"time"

	"gizmocash/internal/domain"
	"gizmocash/internal/flow"
	"gizmocash/internal/pricing"
	"gizmocash/internal/repos"
)

// QuoteService turns a flow's selections plus condition inputs into a
// final offer via the valuation engines.
type QuoteService struct {
	Laptops *repos.LaptopRepo
	Now     func() time.Time
}

func NewQuoteService(laptops *repos.LaptopRepo) *QuoteService {
	return &QuoteService{Laptops: laptops, Now: time.Now}
}

// QuotePhone values the phone/tablet selected in the flow. The release
// date comes from the flow state; an unparseable or empty date counts
// as a just-launched device.
func (s *QuoteService) QuotePhone(st *flow.State, in domain.ConditionInput) pricing.Quote {
	var release *time.Time
	if st.ReleaseDate != "" {
		if d, err := time.Parse("2006-01-02", st.ReleaseDate); err == nil {
			release = &d
		}
	}
	return pricing.ComputePhonePrice(st.BasePrice, in, release, s.Now())
}

// QuoteLaptop values the laptop selected in the flow. A missing pricing
// record is surfaced as pricing.ErrPricingUnavailable; the flow must
// block the step with a user-facing error rather than invent a price.
func (s *QuoteService) QuoteLaptop(st *flow.State, age domain.AgeRange, cond domain.LaptopCondition, hasCharger, hasBox, hasBill bool) (pricing.Quote, error) {
	rec, err := s.Laptops.PriceRecord(st.LaptopVariantID)
	if err == sql.ErrNoRows {
		return pricing.Quote{}, pricing.ErrPricingUnavailable
	}
	if err != nil {
		return pricing.Quote{}, err
	}
	return pricing.ComputeLaptopPrice(rec, age, cond, hasCharger, hasBox, hasBill), nil
}
