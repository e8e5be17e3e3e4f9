package survey

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownQuestion is returned for ids that are not part of a profile.
var ErrUnknownQuestion = errors.New("unknown question")

// Law selects how per-item quality values are combined into one score.
type Law string

const (
	// LawGeometric uses the compressed-range policy and a geometric mean.
	LawGeometric Law = "geometric"
	// LawStatistical uses the percentile policy and an arithmetic mean.
	LawStatistical Law = "statistical"
)

// Question is one survey item.
type Question struct {
	ID       string
	Section  string
	Prompt   string
	MinLabel string
	MidLabel string
	MaxLabel string
}

// IDSet is a fixed set of question ids.
type IDSet map[string]struct{}

// NewIDSet builds an IDSet from ids.
func NewIDSet(ids ...string) IDSet {
	set := make(IDSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Has reports whether id is in the set.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the members in lexical order.
func (s IDSet) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Profile bundles a question set, its raw encoding, the inverted-question set
// and the aggregation law. Profiles never share tables.
type Profile struct {
	Name      string
	Encoding  Encoding
	Law       Law
	Questions []Question
	Inverted  IDSet

	index map[string]int
}

// Question looks up a question by id.
func (p *Profile) Question(id string) (Question, bool) {
	i, ok := p.index[id]
	if !ok {
		return Question{}, false
	}
	return p.Questions[i], true
}

// Has reports whether id belongs to the profile.
func (p *Profile) Has(id string) bool {
	_, ok := p.index[id]
	return ok
}

// Order returns the catalog position of id, or -1.
func (p *Profile) Order(id string) int {
	if i, ok := p.index[id]; ok {
		return i
	}
	return -1
}

// IsInverted reports whether the raw minimum of id is the best outcome.
func (p *Profile) IsInverted(id string) bool {
	return p.Inverted.Has(id)
}

// Check validates a raw value for id against the profile.
func (p *Profile) Check(id string, v float64) error {
	if !p.Has(id) {
		return fmt.Errorf("%w %q in profile %s", ErrUnknownQuestion, id, p.Name)
	}
	if err := p.Encoding.Validate(v); err != nil {
		return fmt.Errorf("question %s: %w", id, err)
	}
	return nil
}

func newProfile(name string, enc Encoding, law Law, questions []Question, inverted IDSet) *Profile {
	p := &Profile{
		Name:      name,
		Encoding:  enc,
		Law:       law,
		Questions: questions,
		Inverted:  inverted,
		index:     make(map[string]int, len(questions)),
	}
	for i, q := range questions {
		p.index[q.ID] = i
	}
	return p
}

// Profile names.
const (
	ProfileClassic    = "classic"
	ProfilePercentile = "percentile"
)

// DefaultProfile is used when nothing is configured.
const DefaultProfile = ProfileClassic

var profiles = map[string]*Profile{
	ProfileClassic: newProfile(ProfileClassic, Ordinal5, LawGeometric,
		baseQuestions(),
		NewIDSet("1b", "5a", "5b", "5e", "5f")),
	ProfilePercentile: newProfile(ProfilePercentile, Continuous10, LawStatistical,
		percentileQuestions(),
		NewIDSet("1b", "1e", "5a", "5b", "5e", "5f", "11d")),
}

// Lookup returns the named profile.
func Lookup(name string) (*Profile, error) {
	p, ok := profiles[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown profile %q (want %s)", name, strings.Join(ProfileNames(), ", "))
	}
	return p, nil
}

// ProfileNames lists the registered profiles.
func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

const (
	sectionCareer    = "Career & Income"
	sectionExercise  = "Exercise"
	sectionSocial    = "Social Life"
	sectionHealth    = "Physical Health"
	sectionEducation = "Education & Nutrition"
	sectionHobbies   = "Hobbies & Skills"
	sectionSleep     = "Sleep"
	sectionRomance   = "Romantic Relationship"
	sectionFamily    = "Family Connection"
	sectionDaily     = "Daily Structure & Outdoor"
	sectionMental    = "Mental Health"
)

func baseQuestions() []Question {
	return []Question{
		{"1a", sectionCareer, "Annual salary compared to people your age?", "Well below", "Average", "Well above"},
		{"1b", sectionCareer, "Hours working per week compared to average?", "Well below", "Average", "Well above"},
		{"1c", sectionCareer, "Net worth compared to people your age?", "Well below", "Average", "Well above"},
		{"1d", sectionCareer, "How comfortable is your job?", "Very uncomfortable", "Average", "Very comfortable"},
		{"2a", sectionExercise, "How many times per week do you exercise?", "0 times", "3-4 times", "7+ times"},
		{"2b", sectionExercise, "How intense is your exercise on average?", "None", "Moderate", "Athlete-level"},
		{"3a", sectionSocial, "How many hours per day do you interact with friends?", "0 hours", "2-3 hours", "5+ hours"},
		{"3b", sectionSocial, "How many close friends do you have?", "0-1 friends", "5-8 friends", "16+ friends"},
		{"3c", sectionSocial, "Length of your longest active friendship (years)?", "Less than 1", "10 years", "20+ years"},
		{"5a", sectionHealth, "How many alcoholic drinks per week?", "0 drinks", "7-8 drinks", "15+ drinks"},
		{"5b", sectionHealth, "How many times per week do you use nicotine/tobacco?", "Never", "3-4 times", "Daily (7+)"},
		{"5d", sectionHealth, "Dental hygiene routine?", "Never", "Brush once daily", "Brush & floss 2x daily"},
		{"5e", sectionHealth, "How many times per week do you use recreational drugs?", "Never", "3-4 times", "Daily (7+)"},
		{"5f", sectionHealth, "Chronic health conditions (e.g., back pain, migraines, arthritis)?", "None", "Manageable", "Terminal/severe"},
		{"6a", sectionEducation, "Education level compared to people your age?", "Well below", "Average", "Well above"},
		{"6b", sectionEducation, "How healthy do you eat overall?", "Very unhealthy", "Average", "Very healthy"},
		{"7a", sectionHobbies, "Number of hobbies compared to average?", "Well below", "Average", "Well above"},
		{"7b", sectionHobbies, "Skill level in hobbies compared to average person?", "Beginner", "Average", "Expert"},
		{"8a", sectionSleep, "Sleep hours compared to recommended average?", "Well below", "Average", "Optimal"},
		{"9a", sectionRomance, "How many years in your current relationship?", "None (single)", "3-4 years", "8+ years"},
		{"10a", sectionFamily, "How good are your family relationships?", "Very poor", "Average", "Very good"},
		{"11a", sectionDaily, "Time spent outside per week (walking, nature, fresh air)?", "Well below", "Average", "Well above"},
		{"11b", sectionDaily, "Daily routine structure compared to average?", "Chaotic", "Average", "Very structured"},
		{"11c", sectionDaily, "Active goals/projects compared to average?", "Well below", "Average", "Well above"},
		{"12a", sectionMental, "Mental health treatment history", "No treatment", "Moderate treatment", "Fully stable/No issues"},
	}
}

// percentileQuestions extends the base set with the commute and screen-time items.
func percentileQuestions() []Question {
	base := baseQuestions()
	out := make([]Question, 0, len(base)+2)
	for _, q := range base {
		out = append(out, q)
		switch q.ID {
		case "1d":
			out = append(out, Question{"1e", sectionCareer, "Daily commute time compared to average?", "Well below", "Average", "Well above"})
		case "11c":
			out = append(out, Question{"11d", sectionDaily, "Daily recreational screen time compared to average?", "Well below", "Average", "Well above"})
		}
	}
	return out
}
