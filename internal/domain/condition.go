package domain

// Grade is the four-tier cosmetic/functional condition scale used for
// phone and tablet display and body condition.
type Grade string

const (
	GradeExcellent Grade = "excellent"
	GradeGood      Grade = "good"
	GradeFair      Grade = "fair"
	GradePoor      Grade = "poor"
)

func (g Grade) Valid() bool {
	return g == GradeExcellent || g == GradeGood || g == GradeFair || g == GradePoor
}

// ConditionInput is the canonical phone/tablet condition shape. The age
// bucket is derived from the device release date, not entered here.
type ConditionInput struct {
	PowersOn   bool  `json:"powers_on"`
	Display    Grade `json:"display"`
	Body       Grade `json:"body"`
	HasCharger bool  `json:"has_charger"`
	HasBill    bool  `json:"has_bill"`
	HasBox     bool  `json:"has_box"`
}

func (in ConditionInput) Valid() bool {
	return in.Display.Valid() && in.Body.Valid()
}

// AgeRange is the self-reported laptop age bracket.
type AgeRange string

const (
	AgeUnderOneYear AgeRange = "<1yr"
	AgeOneToThree   AgeRange = "1-3yrs"
	AgeOverThree    AgeRange = ">3yrs"
)

func (a AgeRange) Valid() bool {
	return a == AgeUnderOneYear || a == AgeOneToThree || a == AgeOverThree
}

// LaptopCondition is the three-tier overall laptop condition scale.
type LaptopCondition string

const (
	LaptopGood         LaptopCondition = "good"
	LaptopAverage      LaptopCondition = "average"
	LaptopBelowAverage LaptopCondition = "below_average"
)

func (c LaptopCondition) Valid() bool {
	return c == LaptopGood || c == LaptopAverage || c == LaptopBelowAverage
}

// LaptopPriceRecord holds the per-variant laptop pricing table: three
// age-bracket base prices, three condition deduction percentages and
// three fixed accessory deduction amounts. Exactly one record exists
// per laptop variant; absence is a hard "pricing unavailable" error.
type LaptopPriceRecord struct {
	VariantID            string `db:"variant_id"`
	PriceUnderOneYear    int64  `db:"price_under_1yr"`
	PriceOneToThreeYears int64  `db:"price_1_to_3yrs"`
	PriceOverThreeYears  int64  `db:"price_over_3yrs"`
	DeductGoodPct        int    `db:"deduct_good_pct"`
	DeductAveragePct     int    `db:"deduct_average_pct"`
	DeductBelowAvgPct    int    `db:"deduct_below_avg_pct"`
	ChargerDeduction     int64  `db:"charger_deduction"`
	BoxDeduction         int64  `db:"box_deduction"`
	BillDeduction        int64  `db:"bill_deduction"`
}
