package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dotcommander/lifeindex/internal/answers"
	"github.com/dotcommander/lifeindex/internal/survey"
)

// SnapshotFormatter rewrites snapshot files in canonical form.
//
// Values are trimmed and empty entries dropped. Question ids are lowercased
// and listed in the profile's catalog order; ids the profile does not know
// are kept and follow in alphabetical order. Auxiliary fields come last in
// the order height, weight, salary, savings.
type SnapshotFormatter struct {
	profile *survey.Profile
}

// NewSnapshotFormatter creates a formatter ordering answers by profile
func NewSnapshotFormatter(profile *survey.Profile) *SnapshotFormatter {
	return &SnapshotFormatter{profile: profile}
}

type field struct {
	key   string
	value string
}

// Format takes raw file content and returns formatted content. The output
// format follows path's extension. On error the original content is returned.
func (f *SnapshotFormatter) Format(path, content string) (string, error) {
	snap, err := answers.DecodeSnapshot(path, []byte(content))
	if err != nil {
		return content, err
	}

	ordered := f.orderAnswers(snap.Answers)
	aux := auxFields(snap)

	if answers.IsYAML(path) {
		out, err := encodeYAML(ordered, aux)
		if err != nil {
			return content, err
		}
		return out, nil
	}
	return encodeJSON(ordered, aux), nil
}

// orderAnswers normalizes answer entries and sorts them
func (f *SnapshotFormatter) orderAnswers(raw map[string]string) []field {
	byID := make(map[string]string, len(raw))
	for id, v := range raw {
		id = strings.ToLower(strings.TrimSpace(id))
		v = strings.TrimSpace(v)
		if id == "" || v == "" {
			continue
		}
		byID[id] = v
	}

	out := make([]field, 0, len(byID))
	for id, v := range byID {
		out = append(out, field{key: id, value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		oi, oj := f.profile.Order(out[i].key), f.profile.Order(out[j].key)
		switch {
		case oi >= 0 && oj >= 0:
			return oi < oj
		case oi >= 0:
			return true
		case oj >= 0:
			return false
		default:
			return out[i].key < out[j].key
		}
	})
	return out
}

func auxFields(snap answers.Snapshot) []field {
	var out []field
	for _, kv := range []field{
		{string(answers.AuxHeight), snap.Height},
		{string(answers.AuxWeight), snap.Weight},
		{string(answers.AuxSalary), snap.Salary},
		{string(answers.AuxSavings), snap.Savings},
	} {
		if v := strings.TrimSpace(kv.value); v != "" {
			out = append(out, field{key: kv.key, value: v})
		}
	}
	return out
}

func strNode(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

// encodeYAML builds the document as nodes so key order survives encoding
func encodeYAML(ordered, aux []field) (string, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	if len(ordered) > 0 {
		m := &yaml.Node{Kind: yaml.MappingNode}
		for _, kv := range ordered {
			m.Content = append(m.Content, strNode(kv.key), strNode(kv.value))
		}
		root.Content = append(root.Content, strNode("answers"), m)
	}
	for _, kv := range aux {
		root.Content = append(root.Content, strNode(kv.key), strNode(kv.value))
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// encodeJSON writes the document by hand; encoding/json sorts map keys
func encodeJSON(ordered, aux []field) string {
	if len(ordered) == 0 && len(aux) == 0 {
		return "{}\n"
	}

	var entries []string
	if len(ordered) > 0 {
		lines := make([]string, len(ordered))
		for i, kv := range ordered {
			lines[i] = fmt.Sprintf("    %s: %s", quote(kv.key), quote(kv.value))
		}
		entries = append(entries, fmt.Sprintf("  %s: {\n%s\n  }", quote("answers"), strings.Join(lines, ",\n")))
	}
	for _, kv := range aux {
		entries = append(entries, fmt.Sprintf("  %s: %s", quote(kv.key), quote(kv.value)))
	}
	return "{\n" + strings.Join(entries, ",\n") + "\n}\n"
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

// Diff computes a simple line diff between original and formatted content.
// Returns empty string if contents are identical.
func Diff(original, formatted, filename string) string {
	if original == formatted {
		return ""
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "--- %s\n", filename)
	fmt.Fprintf(&buf, "+++ %s (formatted)\n", filename)

	origLines := strings.Split(original, "\n")
	fmtLines := strings.Split(formatted, "\n")

	maxLen := max(len(origLines), len(fmtLines))
	for i := 0; i < maxLen; i++ {
		var origLine, fmtLine string
		if i < len(origLines) {
			origLine = origLines[i]
		}
		if i < len(fmtLines) {
			fmtLine = fmtLines[i]
		}

		if origLine != fmtLine {
			if origLine != "" {
				fmt.Fprintf(&buf, "- %s\n", origLine)
			}
			if fmtLine != "" {
				fmt.Fprintf(&buf, "+ %s\n", fmtLine)
			}
		}
	}

	return buf.String()
}
