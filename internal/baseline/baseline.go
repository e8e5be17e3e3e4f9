package baseline

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dotcommander/lifeindex/internal/answers"
	"github.com/dotcommander/lifeindex/internal/scoring"
)

// Baseline is a saved composite score that later runs compare against
type Baseline struct {
	Version     string             `json:"version"`
	CreatedAt   string             `json:"created_at"`
	Profile     string             `json:"profile"`
	Score       float64            `json:"score"`
	Band        string             `json:"band"`
	Fingerprint string             `json:"fingerprint"`
	Items       map[string]float64 `json:"items"`
}

// Comparison describes how a result moved relative to a baseline
type Comparison struct {
	Delta     float64            `json:"delta"`
	Unchanged bool               `json:"unchanged"` // answers identical to the baseline's
	Items     map[string]float64 `json:"items,omitempty"`
}

// CreateBaseline records result together with a fingerprint of the
// snapshot it was computed from
func CreateBaseline(result *scoring.Result, snap answers.Snapshot, now time.Time) *Baseline {
	items := make(map[string]float64, len(result.Items))
	for _, it := range result.Items {
		items[it.ID] = it.Quality
	}
	return &Baseline{
		Version:     "1.0",
		CreatedAt:   now.UTC().Format(time.RFC3339),
		Profile:     result.Profile,
		Score:       result.Score,
		Band:        result.Band.Label,
		Fingerprint: Fingerprint(snap),
		Items:       items,
	}
}

// LoadBaseline loads a baseline from a JSON file
func LoadBaseline(path string) (*Baseline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read baseline file: %w", err)
	}

	var b Baseline
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to parse baseline file: %w", err)
	}

	return &b, nil
}

// SaveBaseline saves the baseline to a JSON file
func (b *Baseline) SaveBaseline(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create baseline directory: %w", err)
	}

	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal baseline: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write baseline file: %w", err)
	}

	return nil
}

// Compare reports the change from b to result. Item deltas cover ids
// present in both; a baseline from another profile cannot be compared.
func (b *Baseline) Compare(result *scoring.Result, snap answers.Snapshot) (*Comparison, error) {
	if b.Profile != result.Profile {
		return nil, fmt.Errorf("baseline profile %s does not match %s", b.Profile, result.Profile)
	}

	cmp := &Comparison{
		Delta:     result.Score - b.Score,
		Unchanged: b.Fingerprint == Fingerprint(snap),
	}
	for _, it := range result.Items {
		prev, ok := b.Items[it.ID]
		if !ok || prev == it.Quality {
			continue
		}
		if cmp.Items == nil {
			cmp.Items = make(map[string]float64)
		}
		cmp.Items[it.ID] = it.Quality - prev
	}
	return cmp, nil
}

// Fingerprint creates a stable hash of a snapshot's contents.
// Map order and surrounding whitespace do not affect it.
func Fingerprint(snap answers.Snapshot) string {
	ids := make([]string, 0, len(snap.Answers))
	for id, raw := range snap.Answers {
		if strings.TrimSpace(raw) != "" {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	var sb strings.Builder
	for _, id := range ids {
		fmt.Fprintf(&sb, "%s=%s;", id, strings.TrimSpace(snap.Answers[id]))
	}
	fmt.Fprintf(&sb, "|%s|%s|%s|%s",
		strings.TrimSpace(snap.Height), strings.TrimSpace(snap.Weight),
		strings.TrimSpace(snap.Salary), strings.TrimSpace(snap.Savings))

	hash := sha256.Sum256([]byte(sb.String()))
	return fmt.Sprintf("%x", hash)
}
