package scoring

import (
	"fmt"

	"github.com/dotcommander/lifeindex/internal/answers"
	"github.com/dotcommander/lifeindex/internal/survey"
)

// Engine scores answer stores for one profile. It holds no mutable state
// and may be shared.
type Engine struct {
	profile    *survey.Profile
	aggregator Aggregator
}

// NewEngine builds an engine using the profile's aggregation law.
func NewEngine(profile *survey.Profile) (*Engine, error) {
	agg, err := NewAggregator(profile.Law)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", profile.Name, err)
	}
	return &Engine{profile: profile, aggregator: agg}, nil
}

// Profile returns the engine's profile.
func (e *Engine) Profile() *survey.Profile {
	return e.profile
}

// Items normalizes every answered question and every available derived
// metric of s, in catalog order with derived items last.
func (e *Engine) Items(s *answers.Store, m Metrics) []Item {
	enc := e.profile.Encoding
	answered := s.Answered()

	items := make([]Item, 0, len(answered)+2)
	for _, a := range answered {
		inverted := e.profile.IsInverted(a.ID)
		scaled := Scale(a.Raw, enc, inverted)
		items = append(items, Item{
			ID:       a.ID,
			Raw:      a.Raw,
			Scaled:   scaled,
			Quality:  e.aggregator.Quality(scaled),
			Inverted: inverted,
		})
	}

	if m.BMI != nil {
		items = append(items, e.derivedItem(ItemBMI, m.BMI.Score))
	}
	if m.SavingsRate != nil {
		items = append(items, e.derivedItem(ItemSavings, m.SavingsRate.Score))
	}
	return items
}

func (e *Engine) derivedItem(id string, score int) Item {
	scaled := Scale(float64(score), DerivedEncoding, false)
	return Item{
		ID:      id,
		Raw:     float64(score),
		Scaled:  scaled,
		Quality: e.aggregator.Quality(scaled),
		Derived: true,
	}
}

// Score computes the composite score for s. It returns ErrNoData when no
// question is answered and no derived metric is available.
func (e *Engine) Score(s *answers.Store) (*Result, error) {
	if s.Profile() != e.profile {
		return nil, fmt.Errorf("store uses profile %s, engine uses %s", s.Profile().Name, e.profile.Name)
	}

	metrics := DeriveMetrics(s)
	items := e.Items(s, metrics)

	qualities := make([]float64, len(items))
	for i, it := range items {
		qualities[i] = it.Quality
	}

	score, err := e.aggregator.Aggregate(qualities)
	if err != nil {
		return nil, err
	}

	return &Result{
		Profile:    e.profile.Name,
		Law:        e.aggregator.Law(),
		Score:      score,
		Band:       BandFromScore(score),
		Percentile: Percentile(score) * 100,
		Metrics:    metrics,
		Items:      items,
	}, nil
}
