package pricing

import (
	"errors"

	"gizmocash/internal/domain"
)

// ErrPricingUnavailable means no pricing record exists for a laptop
// variant. There is no sane default for a money value, so the caller
// must surface this as a blocking user-facing error.
var ErrPricingUnavailable = errors.New("pricing unavailable for this configuration")

// Fallback deduction percentages used only when the pricing record's
// own field is unset (zero). Stored values always win.
var defaultConditionPct = map[domain.LaptopCondition]int{
	domain.LaptopGood:         0,
	domain.LaptopAverage:      10,
	domain.LaptopBelowAverage: 25,
}

// Fallback fixed deductions (rupees) for missing accessories.
const (
	defaultChargerDeduction = 1500
	defaultBoxDeduction     = 500
	defaultBillDeduction    = 300
)

// ComputeLaptopPrice values a laptop from its pricing record: base
// price picked by age bracket (three discrete buckets, no
// interpolation), a percentage condition deduction, then fixed rupee
// deductions per missing accessory. Negative totals are clamped to
// zero. The breakdown carries the bracket base and the two deduction
// lines (Body for condition, Accessories for missing items) so the
// offer page can itemize them. Callers validate enum membership before
// invoking.
func ComputeLaptopPrice(rec domain.LaptopPriceRecord, age domain.AgeRange, cond domain.LaptopCondition, hasCharger, hasBox, hasBill bool) Quote {
	var base int64
	switch age {
	case domain.AgeUnderOneYear:
		base = rec.PriceUnderOneYear
	case domain.AgeOneToThree:
		base = rec.PriceOneToThreeYears
	default:
		base = rec.PriceOverThreeYears
	}

	pct := 0
	switch cond {
	case domain.LaptopGood:
		pct = rec.DeductGoodPct
	case domain.LaptopAverage:
		pct = rec.DeductAveragePct
	case domain.LaptopBelowAverage:
		pct = rec.DeductBelowAvgPct
	}
	if pct == 0 {
		pct = defaultConditionPct[cond]
	}
	condDeduction := round(float64(base) * float64(pct) / 100)

	var missing int64
	if !hasCharger {
		missing += orDefault(rec.ChargerDeduction, defaultChargerDeduction)
	}
	if !hasBox {
		missing += orDefault(rec.BoxDeduction, defaultBoxDeduction)
	}
	if !hasBill {
		missing += orDefault(rec.BillDeduction, defaultBillDeduction)
	}

	final := base - condDeduction - missing
	if final < 0 {
		final = 0
	}
	return Quote{
		FinalPrice: final,
		Breakdown: Breakdown{
			Base:        base,
			Body:        -condDeduction,
			Accessories: -missing,
		},
	}
}

func orDefault(v, def int64) int64 {
	if v <= 0 {
		return def
	}
	return v
}
