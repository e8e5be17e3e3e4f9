package scoring

// Band is the descriptive bucket a composite score falls into.
type Band struct {
	Label      string `json:"label"`
	Percentile int    `json:"percentile"` // approximate population percentile
}

// Fixed score bands.
var (
	BandBelowAverage = Band{Label: "Below average", Percentile: 15}
	BandAverage      = Band{Label: "Average", Percentile: 50}
	BandAboveAverage = Band{Label: "Above average", Percentile: 80}
	BandExceptional  = Band{Label: "Exceptional", Percentile: 95}
)

// BandFromScore classifies a 0..10 composite score.
func BandFromScore(score float64) Band {
	switch {
	case score < 4:
		return BandBelowAverage
	case score < 6:
		return BandAverage
	case score < 8:
		return BandAboveAverage
	default:
		return BandExceptional
	}
}
