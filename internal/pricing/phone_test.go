package pricing

import (
	"testing"
	"time"

	"gizmocash/internal/domain"
)

var testNow = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

func monthsAgo(n int) *time.Time {
	t := testNow.AddDate(0, -n, 0)
	return &t
}

func TestComputePhonePrice_WorkedExample(t *testing.T) {
	// 20000 base, good display (-5%) -> 19000, 4 months old (-8%)
	// -> 17480, no accessories.
	in := domain.ConditionInput{
		PowersOn: true,
		Display:  domain.GradeGood,
		Body:     domain.GradeExcellent,
	}
	q := ComputePhonePrice(20000, in, monthsAgo(4), testNow)
	if q.FinalPrice != 17480 {
		t.Fatalf("want 17480, got %d", q.FinalPrice)
	}
	if q.Breakdown.Display != -1000 || q.Breakdown.Age != -1520 {
		t.Fatalf("bad breakdown: %+v", q.Breakdown)
	}
	if q.Breakdown.Power != 0 || q.Breakdown.Body != 0 || q.Breakdown.Accessories != 0 {
		t.Fatalf("unexpected deltas: %+v", q.Breakdown)
	}
}

func TestComputePhonePrice_AccessoryBonusNotCompounding(t *testing.T) {
	// Same device, just launched, all three accessories. Bonus must be
	// 3 * (19000 * 0.02) = 1140 off the single post-depreciation price,
	// not three sequentially compounded 2% additions.
	in := domain.ConditionInput{
		PowersOn:   true,
		Display:    domain.GradeGood,
		Body:       domain.GradeExcellent,
		HasCharger: true,
		HasBill:    true,
		HasBox:     true,
	}
	q := ComputePhonePrice(20000, in, monthsAgo(0), testNow)
	if q.FinalPrice != 20140 {
		t.Fatalf("want 20140, got %d", q.FinalPrice)
	}
	if q.Breakdown.Accessories != 1140 {
		t.Fatalf("want accessories +1140, got %d", q.Breakdown.Accessories)
	}
	// Compounding would give 19000*1.02^3 = 20162.952; make sure we
	// did not drift there.
	if q.FinalPrice == 20163 {
		t.Fatal("accessory bonus compounded; must be flat per-flag")
	}
}

func TestComputePhonePrice_PenaltiesCompoundSequentially(t *testing.T) {
	in := domain.ConditionInput{
		PowersOn: false,
		Display:  domain.GradePoor,
		Body:     domain.GradePoor,
	}
	// 10000 -> 5000 (power) -> 3500 (display -30%) -> 2800 (body -20%),
	// no age deduction.
	q := ComputePhonePrice(10000, in, monthsAgo(1), testNow)
	if q.FinalPrice != 2800 {
		t.Fatalf("want 2800, got %d", q.FinalPrice)
	}
	if q.Breakdown.Power != -5000 || q.Breakdown.Display != -1500 || q.Breakdown.Body != -700 {
		t.Fatalf("bad breakdown: %+v", q.Breakdown)
	}
}

func TestComputePhonePrice_NilReleaseDateMeansNoAgeDeduction(t *testing.T) {
	in := domain.ConditionInput{PowersOn: true, Display: domain.GradeExcellent, Body: domain.GradeExcellent}
	q := ComputePhonePrice(15000, in, nil, testNow)
	if q.FinalPrice != 15000 || q.Breakdown.Age != 0 {
		t.Fatalf("want untouched 15000, got %+v", q)
	}
}

func TestComputePhonePrice_Deterministic(t *testing.T) {
	in := domain.ConditionInput{PowersOn: true, Display: domain.GradeFair, Body: domain.GradeGood, HasBox: true}
	a := ComputePhonePrice(31999, in, monthsAgo(14), testNow)
	b := ComputePhonePrice(31999, in, monthsAgo(14), testNow)
	if a != b {
		t.Fatalf("same inputs gave %+v vs %+v", a, b)
	}
}

func TestComputePhonePrice_RoundsHalfUp(t *testing.T) {
	// 25 base with poor body: 25 - 5.0... pick a case landing on .5:
	// base 10, display good -> 10 - 0.5 = 9.5 -> rounds to 10.
	in := domain.ConditionInput{PowersOn: true, Display: domain.GradeGood, Body: domain.GradeExcellent}
	q := ComputePhonePrice(10, in, nil, testNow)
	if q.FinalPrice != 10 {
		t.Fatalf("want 10 (9.5 rounded), got %d", q.FinalPrice)
	}
}

func TestComputePhonePrice_WorseConditionNeverPaysMore(t *testing.T) {
	grades := []domain.Grade{domain.GradeExcellent, domain.GradeGood, domain.GradeFair, domain.GradePoor}
	base := int64(24000)
	for _, powers := range []bool{true, false} {
		prev := int64(1 << 40)
		for _, g := range grades {
			in := domain.ConditionInput{PowersOn: powers, Display: g, Body: domain.GradeGood}
			q := ComputePhonePrice(base, in, monthsAgo(10), testNow)
			if q.FinalPrice > prev {
				t.Fatalf("display %s increased price: %d > %d", g, q.FinalPrice, prev)
			}
			prev = q.FinalPrice
		}
	}
}

func TestComputePhonePrice_AccessoryNeverLowersPrice(t *testing.T) {
	base := domain.ConditionInput{PowersOn: true, Display: domain.GradeFair, Body: domain.GradeFair}
	without := ComputePhonePrice(18000, base, monthsAgo(20), testNow)
	withCharger := base
	withCharger.HasCharger = true
	with := ComputePhonePrice(18000, withCharger, monthsAgo(20), testNow)
	if with.FinalPrice < without.FinalPrice {
		t.Fatalf("charger lowered price: %d < %d", with.FinalPrice, without.FinalPrice)
	}
}

func TestAgeRateBuckets(t *testing.T) {
	cases := []struct {
		months int
		rate   float64
	}{
		{0, 0}, {3, 0}, {4, 0.08}, {6, 0.08}, {7, 0.15}, {12, 0.15},
		{13, 0.25}, {24, 0.25}, {25, 0.35}, {36, 0.35}, {37, 0.45}, {120, 0.45},
	}
	for _, c := range cases {
		if got := ageRate(c.months); got != c.rate {
			t.Fatalf("months=%d: want %v, got %v", c.months, c.rate, got)
		}
	}
}

func TestMonthsSinceLaunch(t *testing.T) {
	if got := MonthsSinceLaunch(testNow, nil); got != 0 {
		t.Fatalf("nil release: want 0, got %d", got)
	}
	future := testNow.AddDate(0, 2, 0)
	if got := MonthsSinceLaunch(testNow, &future); got != 0 {
		t.Fatalf("future release: want 0, got %d", got)
	}
	// 2026-08-15 vs 2025-08-20 is 11 full months, not 12.
	rel := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)
	if got := MonthsSinceLaunch(testNow, &rel); got != 11 {
		t.Fatalf("partial month: want 11, got %d", got)
	}
}
