package answers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Snapshot is the persisted layout of a Store. All fields may be absent.
type Snapshot struct {
	Answers map[string]string `json:"answers,omitempty" yaml:"answers,omitempty"`
	Height  string            `json:"height,omitempty" yaml:"height,omitempty"`
	Weight  string            `json:"weight,omitempty" yaml:"weight,omitempty"`
	Salary  string            `json:"salary,omitempty" yaml:"salary,omitempty"`
	Savings string            `json:"savings,omitempty" yaml:"savings,omitempty"`
}

// Rejection records a snapshot answer that could not be loaded.
type Rejection struct {
	ID  string
	Raw string
	Err error
}

// Snapshot captures the store contents.
func (s *Store) Snapshot() Snapshot {
	snap := Snapshot{
		Height:  s.aux[AuxHeight],
		Weight:  s.aux[AuxWeight],
		Salary:  s.aux[AuxSalary],
		Savings: s.aux[AuxSavings],
	}
	if len(s.values)+len(s.retained) > 0 {
		snap.Answers = make(map[string]string, len(s.values)+len(s.retained))
		for id, raw := range s.retained {
			snap.Answers[id] = raw
		}
		for id, v := range s.values {
			snap.Answers[id] = strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return snap
}

// Load replaces the store contents with snap. Answers that fail validation
// are returned as rejections and kept aside verbatim: they are not scored,
// but Snapshot writes them back.
func (s *Store) Load(snap Snapshot) []Rejection {
	s.values = make(map[string]float64, len(snap.Answers))
	s.aux = make(map[Aux]string)
	s.retained = make(map[string]string)

	var rejected []Rejection
	for id, raw := range snap.Answers {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		if err := s.SetRaw(id, raw); err != nil {
			rejected = append(rejected, Rejection{ID: id, Raw: raw, Err: err})
			s.retained[id] = raw
		}
	}

	s.SetAux(AuxHeight, snap.Height)
	s.SetAux(AuxWeight, snap.Weight)
	s.SetAux(AuxSalary, snap.Salary)
	s.SetAux(AuxSavings, snap.Savings)

	sort.Slice(rejected, func(i, j int) bool { return rejected[i].ID < rejected[j].ID })
	return rejected
}

// ReadSnapshot reads a snapshot file. The format follows the extension:
// .yaml and .yml use YAML, anything else JSON. A missing file yields an
// empty snapshot.
func ReadSnapshot(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Snapshot{}, nil
		}
		return Snapshot{}, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return DecodeSnapshot(path, data)
}

// DecodeSnapshot parses snapshot content, picking the format from path's
// extension. Blank content is an empty snapshot. Values may be strings or
// bare numbers; numbers keep their literal text.
func DecodeSnapshot(path string, data []byte) (Snapshot, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Snapshot{}, nil
	}

	var (
		raw rawSnapshot
		err error
	)
	if IsYAML(path) {
		err = yaml.Unmarshal(data, &raw)
	} else {
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to parse snapshot %s: %w", path, err)
	}
	return raw.snapshot(), nil
}

// rawSnapshot is the decoding form of Snapshot
type rawSnapshot struct {
	Answers map[string]scalar `json:"answers" yaml:"answers"`
	Height  scalar            `json:"height" yaml:"height"`
	Weight  scalar            `json:"weight" yaml:"weight"`
	Salary  scalar            `json:"salary" yaml:"salary"`
	Savings scalar            `json:"savings" yaml:"savings"`
}

func (r rawSnapshot) snapshot() Snapshot {
	snap := Snapshot{
		Height:  string(r.Height),
		Weight:  string(r.Weight),
		Salary:  string(r.Salary),
		Savings: string(r.Savings),
	}
	if r.Answers != nil {
		snap.Answers = make(map[string]string, len(r.Answers))
		for id, v := range r.Answers {
			snap.Answers[id] = string(v)
		}
	}
	return snap
}

// scalar is a string or number value kept as its literal text. Null is empty.
type scalar string

func (s *scalar) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	switch x := v.(type) {
	case nil:
		*s = ""
	case string:
		*s = scalar(x)
	case json.Number:
		*s = scalar(x.String())
	default:
		return fmt.Errorf("expected a string or number, got %s", data)
	}
	return nil
}

func (s *scalar) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a string or number", node.Line)
	}
	if node.ShortTag() == "!!null" {
		*s = ""
		return nil
	}
	*s = scalar(node.Value)
	return nil
}

// WriteSnapshot writes snap to path, creating parent directories.
func WriteSnapshot(path string, snap Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	var (
		data []byte
		err  error
	)
	if IsYAML(path) {
		data, err = yaml.Marshal(snap)
	} else {
		data, err = json.MarshalIndent(snap, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// IsYAML reports whether path names a YAML snapshot.
func IsYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
