package scoring

import "github.com/dotcommander/lifeindex/internal/survey"

// Derived item ids used in the breakdown.
const (
	ItemBMI     = "bmi"
	ItemSavings = "savings"
)

// Item is one contribution to the composite score.
type Item struct {
	ID       string  `json:"id"`
	Raw      float64 `json:"raw"`      // value on its native scale
	Scaled   float64 `json:"scaled"`   // direction-corrected 0..10
	Quality  float64 `json:"quality"`  // value fed to the aggregator
	Inverted bool    `json:"inverted"` // raw scale was flipped
	Derived  bool    `json:"derived"`  // computed from auxiliary inputs
}

// Result is the engine output for one store.
type Result struct {
	Profile    string     `json:"profile"`
	Law        survey.Law `json:"law"`
	Score      float64    `json:"score"`      // 0..10 composite
	Band       Band       `json:"band"`       // descriptive bucket
	Percentile float64    `json:"percentile"` // 0..100, from the composite's z-score
	Metrics    Metrics    `json:"metrics"`
	Items      []Item     `json:"items"`
}
