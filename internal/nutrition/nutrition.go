package nutrition

import "math"

// Value holds the nutrition facts tracked per serving: calories plus
// the three macros in grams.
type Value struct {
	Calories int     `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatsG    float64 `json:"fats_g"`
}

// Scale multiplies every field by servings. Calories round to the
// nearest integer and the gram fields to two decimals, half away from
// zero. Rounding happens only here; Sum never rounds, so re-summing
// already-scaled entries reproduces stored totals exactly.
func (v Value) Scale(servings float64) Value {
	return Value{
		Calories: int(math.Round(float64(v.Calories) * servings)),
		ProteinG: Round2(v.ProteinG * servings),
		CarbsG:   Round2(v.CarbsG * servings),
		FatsG:    Round2(v.FatsG * servings),
	}
}

// Sum adds values element-wise without rounding.
func Sum(values ...Value) Value {
	var total Value
	for _, v := range values {
		total.Calories += v.Calories
		total.ProteinG += v.ProteinG
		total.CarbsG += v.CarbsG
		total.FatsG += v.FatsG
	}
	return total
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}
