package answers

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotcommander/lifeindex/internal/survey"
)

func classicStore(t *testing.T) *Store {
	t.Helper()
	p, err := survey.Lookup(survey.ProfileClassic)
	require.NoError(t, err)
	return NewStore(p)
}

func percentileStore(t *testing.T) *Store {
	t.Helper()
	p, err := survey.Lookup(survey.ProfilePercentile)
	require.NoError(t, err)
	return NewStore(p)
}

func TestStoreSetRejectsAtWrite(t *testing.T) {
	s := classicStore(t)

	require.NoError(t, s.Set("1a", 4))
	v, ok := s.Value("1a")
	require.True(t, ok)
	assert.Equal(t, 4.0, v)

	err := s.Set("1a", 5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, survey.ErrOutOfRange))

	v, _ = s.Value("1a")
	assert.Equal(t, 4.0, v, "rejected write must not change the stored value")

	err = s.Set("1e", 2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, survey.ErrUnknownQuestion))
	assert.Equal(t, 1, s.Len())
}

func TestStoreSetRaw(t *testing.T) {
	s := percentileStore(t)

	require.NoError(t, s.SetRaw("11d", " 7.5 "))
	v, ok := s.Value("11d")
	require.True(t, ok)
	assert.Equal(t, 7.5, v)

	assert.Error(t, s.SetRaw("11d", "lots"))
	assert.Error(t, s.SetRaw("11d", "7.55"))
}

func TestStoreUnsetAndOrder(t *testing.T) {
	s := classicStore(t)
	require.NoError(t, s.Set("12a", 1))
	require.NoError(t, s.Set("1a", 2))
	require.NoError(t, s.Set("5a", 3))

	got := s.Answered()
	require.Len(t, got, 3)
	assert.Equal(t, []string{"1a", "5a", "12a"}, []string{got[0].ID, got[1].ID, got[2].ID})

	s.Unset("5a")
	_, ok := s.Value("5a")
	assert.False(t, ok)
	assert.Equal(t, 2, s.Len())
}

func TestStoreAux(t *testing.T) {
	s := classicStore(t)

	s.SetAux(AuxHeight, "175")
	v, ok := s.AuxValue(AuxHeight)
	require.True(t, ok)
	assert.Equal(t, 175.0, v)

	s.SetAux(AuxSavings, "-250.5")
	v, ok = s.AuxValue(AuxSavings)
	require.True(t, ok)
	assert.Equal(t, -250.5, v)

	for _, raw := range []string{"abc", "NaN", "Inf"} {
		s.SetAux(AuxWeight, raw)
		_, ok = s.AuxValue(AuxWeight)
		assert.False(t, ok, raw)
		assert.Equal(t, raw, s.AuxRaw(AuxWeight))
	}

	s.SetAux(AuxWeight, "")
	assert.Equal(t, "", s.AuxRaw(AuxWeight))
	_, ok = s.AuxValue(AuxSalary)
	assert.False(t, ok)
}

func TestParseAux(t *testing.T) {
	a, ok := ParseAux("Height")
	assert.True(t, ok)
	assert.Equal(t, AuxHeight, a)

	_, ok = ParseAux("age")
	assert.False(t, ok)
}

func TestLoadSkipsInvalidEntries(t *testing.T) {
	s := classicStore(t)
	require.NoError(t, s.Set("2a", 1))

	rejected := s.Load(Snapshot{
		Answers: map[string]string{
			"1a": "3",
			"1b": "9",
			"zz": "1",
			"3a": "",
			"3b": "x",
		},
		Height: "180",
	})

	require.Len(t, rejected, 3)
	assert.Equal(t, "1b", rejected[0].ID)
	assert.Equal(t, "3b", rejected[1].ID)
	assert.Equal(t, "zz", rejected[2].ID)

	assert.Equal(t, 1, s.Len())
	_, ok := s.Value("2a")
	assert.False(t, ok, "load replaces previous contents")
	assert.Equal(t, "180", s.AuxRaw(AuxHeight))
}

func TestSnapshotKeepsRejectedEntries(t *testing.T) {
	s := classicStore(t)
	rejected := s.Load(Snapshot{
		Answers: map[string]string{
			"1a":  "7.5",
			"1e":  "3",
			"11d": "2.5",
			"2a":  "4",
		},
	})
	require.Len(t, rejected, 3)
	assert.True(t, s.Retained("1e"))
	assert.Equal(t, 1, s.Len(), "retained entries are not scored")

	require.NoError(t, s.Set("3a", 1))
	assert.Equal(t, map[string]string{
		"1a":  "7.5",
		"1e":  "3",
		"11d": "2.5",
		"2a":  "4",
		"3a":  "1",
	}, s.Snapshot().Answers)

	// a valid write replaces the retained entry
	require.NoError(t, s.Set("1a", 2))
	assert.False(t, s.Retained("1a"))
	assert.Equal(t, "2", s.Snapshot().Answers["1a"])

	s.Unset("1e")
	assert.False(t, s.Retained("1e"))
	assert.NotContains(t, s.Snapshot().Answers, "1e")
}

func TestSnapshotRoundTripFiles(t *testing.T) {
	for _, name := range []string{"answers.json", "answers.yaml"} {
		t.Run(name, func(t *testing.T) {
			s := percentileStore(t)
			require.NoError(t, s.Set("1a", 6.5))
			require.NoError(t, s.Set("11d", 2))
			s.SetAux(AuxHeight, "175")
			s.SetAux(AuxSalary, "4000")

			path := filepath.Join(t.TempDir(), "nested", name)
			require.NoError(t, WriteSnapshot(path, s.Snapshot()))

			snap, err := ReadSnapshot(path)
			require.NoError(t, err)
			assert.Equal(t, "6.5", snap.Answers["1a"])
			assert.Equal(t, "2", snap.Answers["11d"])
			assert.Equal(t, "175", snap.Height)
			assert.Empty(t, snap.Savings)

			loaded := percentileStore(t)
			assert.Empty(t, loaded.Load(snap))
			assert.Equal(t, s.Answered(), loaded.Answered())
		})
	}
}

func TestReadSnapshotOriginalLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lifeHappinessIndex.json")
	content := `{"answers":{"1a":"2","5a":"0"},"height":"175","weight":"70","salary":"","savings":""}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	snap, err := ReadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, "2", snap.Answers["1a"])
	assert.Equal(t, "70", snap.Weight)
	assert.Equal(t, "", snap.Salary)
}

func TestReadSnapshotMissingAndBroken(t *testing.T) {
	dir := t.TempDir()

	snap, err := ReadSnapshot(filepath.Join(dir, "none.json"))
	require.NoError(t, err)
	assert.Empty(t, snap.Answers)

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte("{not json"), 0644))
	_, err = ReadSnapshot(broken)
	assert.Error(t, err)
}

func TestDecodeSnapshot(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
		want    Snapshot
		wantErr bool
	}{
		{
			name:    "json",
			path:    "a.json",
			content: `{"answers": {"1a": "3"}, "salary": "4000"}`,
			want:    Snapshot{Answers: map[string]string{"1a": "3"}, Salary: "4000"},
		},
		{
			name:    "yaml by extension",
			path:    "a.YML",
			content: "answers:\n  5b: \"0\"\nheight: \"180\"\n",
			want:    Snapshot{Answers: map[string]string{"5b": "0"}, Height: "180"},
		},
		{
			name:    "blank",
			path:    "a.yaml",
			content: "  \n",
		},
		{
			name:    "bare json numbers",
			path:    "a.json",
			content: `{"answers": {"1a": 3, "1b": null}, "height": 175.5, "salary": "4e3"}`,
			want:    Snapshot{Answers: map[string]string{"1a": "3", "1b": ""}, Height: "175.5", Salary: "4e3"},
		},
		{
			name:    "bare yaml scalars",
			path:    "a.yaml",
			content: "answers:\n  1a: 3\nweight: 70\nsavings:\nheight: abc\n",
			want:    Snapshot{Answers: map[string]string{"1a": "3"}, Weight: "70", Height: "abc"},
		},
		{
			name:    "json answer list",
			path:    "a.json",
			content: `{"answers": {"1a": [3]}}`,
			wantErr: true,
		},
		{
			name:    "yaml mapping as value",
			path:    "a.yaml",
			content: "height:\n  cm: 180\n",
			wantErr: true,
		},
		{
			name:    "broken json",
			path:    "a.json",
			content: `{"answers": [`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeSnapshot(tt.path, []byte(tt.content))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
