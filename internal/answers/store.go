package answers

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/dotcommander/lifeindex/internal/survey"
)

// Aux identifies one of the four auxiliary numeric inputs.
type Aux string

const (
	AuxHeight  Aux = "height"
	AuxWeight  Aux = "weight"
	AuxSalary  Aux = "salary"
	AuxSavings Aux = "savings"
)

// AuxKeys lists the auxiliary inputs in display order.
var AuxKeys = []Aux{AuxHeight, AuxWeight, AuxSalary, AuxSavings}

// ParseAux maps a key such as "height" to its Aux.
func ParseAux(key string) (Aux, bool) {
	for _, a := range AuxKeys {
		if string(a) == strings.ToLower(key) {
			return a, true
		}
	}
	return "", false
}

// Answer is one stored raw value.
type Answer struct {
	ID  string
	Raw float64
}

// Store holds the current raw answers for one profile. Every stored value
// has passed the profile's range check. A Store is not safe for concurrent
// use; callers serving several users keep one Store per user.
//
// Snapshot entries rejected by Load are retained verbatim so that saving the
// store does not drop them. Retained entries are never scored.
type Store struct {
	profile  *survey.Profile
	values   map[string]float64
	aux      map[Aux]string
	retained map[string]string
}

// NewStore returns an empty store bound to profile.
func NewStore(profile *survey.Profile) *Store {
	return &Store{
		profile:  profile,
		values:   make(map[string]float64),
		aux:      make(map[Aux]string),
		retained: make(map[string]string),
	}
}

// Profile returns the profile the store validates against.
func (s *Store) Profile() *survey.Profile {
	return s.profile
}

// Set stores v for id, rejecting unknown ids and out-of-range values.
func (s *Store) Set(id string, v float64) error {
	if err := s.profile.Check(id, v); err != nil {
		return err
	}
	s.values[id] = v
	delete(s.retained, id)
	return nil
}

// SetRaw parses a decimal string and stores it with Set.
func (s *Store) SetRaw(id, raw string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return fmt.Errorf("question %s: %q is not a number", id, raw)
	}
	return s.Set(id, v)
}

// Unset removes the answer for id, including a retained entry.
func (s *Store) Unset(id string) {
	delete(s.values, id)
	delete(s.retained, id)
}

// Retained reports whether id holds a snapshot entry that Load rejected.
func (s *Store) Retained(id string) bool {
	_, ok := s.retained[id]
	return ok
}

// Value returns the raw value for id.
func (s *Store) Value(id string) (float64, bool) {
	v, ok := s.values[id]
	return v, ok
}

// Len returns the number of answered questions.
func (s *Store) Len() int {
	return len(s.values)
}

// Answered returns the stored answers in catalog order.
func (s *Store) Answered() []Answer {
	out := make([]Answer, 0, len(s.values))
	for id, v := range s.values {
		out = append(out, Answer{ID: id, Raw: v})
	}
	sort.Slice(out, func(i, j int) bool {
		return s.profile.Order(out[i].ID) < s.profile.Order(out[j].ID)
	})
	return out
}

// SetAux stores an auxiliary input verbatim. An empty string unsets it.
func (s *Store) SetAux(key Aux, raw string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		delete(s.aux, key)
		return
	}
	s.aux[key] = raw
}

// AuxRaw returns the auxiliary input as entered.
func (s *Store) AuxRaw(key Aux) string {
	return s.aux[key]
}

// AuxValue parses an auxiliary input. Absent, non-numeric and non-finite
// inputs all report false.
func (s *Store) AuxValue(key Aux) (float64, bool) {
	return parseDecimal(s.aux[key])
}

func parseDecimal(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
