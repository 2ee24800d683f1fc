package pricing

import (
	"math"
	"time"

	"gizmocash/internal/domain"
)

// Quote is the result of a phone/tablet valuation: the rounded final
// offer plus the signed line items that produced it. Penalties are
// negative, the accessory bonus is positive.
type Quote struct {
	FinalPrice int64     `json:"final_price"`
	Breakdown  Breakdown `json:"breakdown"`
}

type Breakdown struct {
	Base        int64 `json:"base"`
	Power       int64 `json:"power"`
	Display     int64 `json:"display"`
	Body        int64 `json:"body"`
	Age         int64 `json:"age"`
	Accessories int64 `json:"accessories"`
}

var displayPenalty = map[domain.Grade]float64{
	domain.GradeExcellent: 0,
	domain.GradeGood:      0.05,
	domain.GradeFair:      0.15,
	domain.GradePoor:      0.30,
}

var bodyPenalty = map[domain.Grade]float64{
	domain.GradeExcellent: 0,
	domain.GradeGood:      0.03,
	domain.GradeFair:      0.10,
	domain.GradePoor:      0.20,
}

type ageBucket struct {
	maxMonths int // inclusive upper bound
	rate      float64
}

var ageBuckets = []ageBucket{
	{3, 0},
	{6, 0.08},
	{12, 0.15},
	{24, 0.25},
	{36, 0.35},
}

const oldestRate = 0.45

// accessoryBonusRate is applied per present accessory to the single
// post-depreciation price. Unlike the penalty steps the three bonuses
// do NOT compound on each other; they are summed and added once. That
// asymmetry is intentional pricing behavior and must not be "fixed".
const accessoryBonusRate = 0.02

// ComputePhonePrice values a phone or tablet. Deductions for power,
// display, body and age are applied sequentially, each against the
// already-discounted running price. releaseDate nil means a just-launched
// device (zero months). The function is pure and total over valid
// grades; callers validate enum membership before invoking.
func ComputePhonePrice(basePrice int64, in domain.ConditionInput, releaseDate *time.Time, now time.Time) Quote {
	price := float64(basePrice)
	q := Quote{Breakdown: Breakdown{Base: basePrice}}

	if !in.PowersOn {
		d := price * 0.50
		price -= d
		q.Breakdown.Power = -round(d)
	}

	if d := price * displayPenalty[in.Display]; d != 0 {
		price -= d
		q.Breakdown.Display = -round(d)
	}

	if d := price * bodyPenalty[in.Body]; d != 0 {
		price -= d
		q.Breakdown.Body = -round(d)
	}

	if d := price * ageRate(MonthsSinceLaunch(now, releaseDate)); d != 0 {
		price -= d
		q.Breakdown.Age = -round(d)
	}

	// Each bonus is 2% of the same post-depreciation price, summed,
	// then added in one step.
	bonus := 0.0
	for _, has := range []bool{in.HasCharger, in.HasBill, in.HasBox} {
		if has {
			bonus += price * accessoryBonusRate
		}
	}
	if bonus != 0 {
		price += bonus
		q.Breakdown.Accessories = round(bonus)
	}

	q.FinalPrice = round(price)
	return q
}

func ageRate(months int) float64 {
	for _, b := range ageBuckets {
		if months <= b.maxMonths {
			return b.rate
		}
	}
	return oldestRate
}

// MonthsSinceLaunch returns whole calendar months elapsed since the
// release date, floored at zero. A nil release date counts as zero.
func MonthsSinceLaunch(now time.Time, releaseDate *time.Time) int {
	if releaseDate == nil {
		return 0
	}
	m := (now.Year()-releaseDate.Year())*12 + int(now.Month()) - int(releaseDate.Month())
	if now.Day() < releaseDate.Day() {
		m--
	}
	if m < 0 {
		return 0
	}
	return m
}

func round(v float64) int64 { return int64(math.Round(v)) }
