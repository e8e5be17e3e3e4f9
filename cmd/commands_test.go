package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotcommander/lifeindex/internal/answers"
	"github.com/dotcommander/lifeindex/internal/output"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestRunSetAndScore(t *testing.T) {
	setupCmdTest(t)

	var buf bytes.Buffer
	require.NoError(t, runSet(&buf, []string{"1a", "2", "5A", "2", "10a", " 2 "}))
	assert.Contains(t, buf.String(), "Saved 3 value(s)")

	snap, err := answers.ReadSnapshot(testStore)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"1a": "2", "5a": "2", "10a": "2"}, snap.Answers)

	buf.Reset()
	require.NoError(t, runScore(&buf, ""))
	out := buf.String()
	assert.Contains(t, out, "Life Happiness Index:")
	assert.Contains(t, out, "5.00")
	assert.Contains(t, out, "Average")
	assert.Contains(t, out, "Profile: classic (geometric mean), 3 items")
}

func TestRunSetRejectsOutOfRange(t *testing.T) {
	setupCmdTest(t)

	var buf bytes.Buffer
	err := runSet(&buf, []string{"1a", "3", "2b", "7"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2b")

	_, statErr := os.Stat(testStore)
	assert.True(t, os.IsNotExist(statErr), "nothing is written when an answer is rejected")
}

func TestRunSetRejectsUnknownQuestion(t *testing.T) {
	setupCmdTest(t)

	// 1e exists only in the percentile profile
	err := runSet(&bytes.Buffer{}, []string{"1e", "2"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown question")

	viper.Set("profile", "percentile")
	require.NoError(t, runSet(&bytes.Buffer{}, []string{"1e", "2.5"}))
}

func TestRunMetrics(t *testing.T) {
	setupCmdTest(t)

	var buf bytes.Buffer
	require.NoError(t, runMetrics(&buf))
	assert.Contains(t, buf.String(), "BMI: not available")
	assert.Contains(t, buf.String(), "Savings rate: not available")

	require.NoError(t, runSet(&bytes.Buffer{}, []string{"height", "175", "weight", "70", "salary", "4000", "savings", "1000"}))

	buf.Reset()
	require.NoError(t, runMetrics(&buf))
	assert.Contains(t, buf.String(), "BMI: 22.9")
	assert.Contains(t, buf.String(), "(score 9/9)")
	assert.Contains(t, buf.String(), "Savings rate: 25.0%")
	assert.Contains(t, buf.String(), "(score 8/9)")
}

func TestRunScoreNoData(t *testing.T) {
	setupCmdTest(t)

	var buf bytes.Buffer
	require.NoError(t, runScore(&buf, ""))
	assert.Contains(t, buf.String(), "No data")
}

func TestRunScoreSkipsOutOfRangeEntries(t *testing.T) {
	setupCmdTest(t)
	writeFile(t, testStore, `{"answers": {"1a": "3", "2a": "9"}}`)

	var buf bytes.Buffer
	require.NoError(t, runScore(&buf, ""))
	out := buf.String()
	assert.Contains(t, out, "skipped")
	assert.Contains(t, out, "7.00")
	assert.Contains(t, out, "1 items")
}

func TestRunScoreSchemaViolation(t *testing.T) {
	setupCmdTest(t)
	writeFile(t, testStore, `{"answers": {"1a": "3"}, "mood": "great"}`)

	err := runScore(&bytes.Buffer{}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid snapshot")

	viper.Set("schemas.enabled", false)
	assert.NoError(t, runScore(&bytes.Buffer{}, ""))
}

func TestRunScoreExplicitPath(t *testing.T) {
	tmpDir := setupCmdTest(t)
	path := filepath.Join(tmpDir, "other.yaml")
	writeFile(t, path, "height: \"175\"\nweight: \"70\"\n")

	var buf bytes.Buffer
	require.NoError(t, runScore(&buf, path))
	assert.Contains(t, buf.String(), "9.00")
	assert.Contains(t, buf.String(), "Exceptional")
}

func TestRunScoreJSON(t *testing.T) {
	setupCmdTest(t)
	viper.Set("format", "json")
	require.NoError(t, runSet(&bytes.Buffer{}, []string{"1a", "4", "1b", "0"}))

	var buf bytes.Buffer
	require.NoError(t, runScore(&buf, ""))

	var report output.JSONReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))
	assert.Equal(t, "lifeindex", report.Header.Tool)
	assert.False(t, report.NoData)
	require.NotNil(t, report.Result)
	assert.InDelta(t, 9.0, report.Result.Score, 1e-9)
	assert.Len(t, report.Result.Items, 2)
}

func TestRunScoreQuiet(t *testing.T) {
	setupCmdTest(t)
	viper.Set("quiet", true)
	require.NoError(t, runSet(&bytes.Buffer{}, []string{"1a", "2"}))

	var buf bytes.Buffer
	require.NoError(t, runScore(&buf, ""))
	assert.Equal(t, "5.00\n", buf.String())
}

func TestRunScoreBaseline(t *testing.T) {
	tmpDir := setupCmdTest(t)
	viper.Set("baseline", filepath.Join(tmpDir, "baseline.json"))

	require.NoError(t, runSet(&bytes.Buffer{}, []string{"1a", "2"}))

	saveBaseline = true
	require.NoError(t, runScore(&bytes.Buffer{}, ""))
	assert.FileExists(t, filepath.Join(tmpDir, "baseline.json"))

	saveBaseline = false
	var buf bytes.Buffer
	require.NoError(t, runScore(&buf, ""))
	assert.Contains(t, buf.String(), "Answers unchanged since baseline")

	require.NoError(t, runSet(&bytes.Buffer{}, []string{"1a", "4"}))
	buf.Reset()
	require.NoError(t, runScore(&buf, ""))
	assert.Contains(t, buf.String(), "Change since baseline: +4.00")
}

func TestRunScoreSaveBaselineNeedsPath(t *testing.T) {
	setupCmdTest(t)
	require.NoError(t, runSet(&bytes.Buffer{}, []string{"1a", "2"}))

	saveBaseline = true
	err := runScore(&bytes.Buffer{}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--save-baseline")
}

func TestRunUnset(t *testing.T) {
	setupCmdTest(t)
	require.NoError(t, runSet(&bytes.Buffer{}, []string{"1a", "2", "height", "180"}))

	require.NoError(t, runUnset(&bytes.Buffer{}, []string{"1a", "height"}))
	snap, err := answers.ReadSnapshot(testStore)
	require.NoError(t, err)
	assert.Empty(t, snap.Answers)
	assert.Empty(t, snap.Height)

	err = runUnset(&bytes.Buffer{}, []string{"zz"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a question")
}

func TestRunQuestions(t *testing.T) {
	setupCmdTest(t)
	require.NoError(t, runSet(&bytes.Buffer{}, []string{"1a", "3"}))

	var buf bytes.Buffer
	require.NoError(t, runQuestions(&buf))
	out := buf.String()
	assert.Contains(t, out, "classic, geometric mean")
	assert.Contains(t, out, "5f")
	assert.Contains(t, out, "(inverted)")
	assert.Contains(t, out, "[3]")
	assert.Contains(t, out, "0 = Well below, 2 = Average, 4 = Well above")
	assert.NotContains(t, out, "1e ")

	viper.Set("profile", "percentile")
	buf.Reset()
	require.NoError(t, runQuestions(&buf))
	assert.Contains(t, buf.String(), "percentile, statistical mean")
	assert.Contains(t, buf.String(), "1e ")
	assert.Contains(t, buf.String(), "11d")
	assert.Contains(t, buf.String(), "5 = Average, 10 = Well above")
}

func TestRunValidate(t *testing.T) {
	tmpDir := setupCmdTest(t)
	good := filepath.Join(tmpDir, "good.json")
	bad := filepath.Join(tmpDir, "bad.yaml")
	writeFile(t, good, `{"answers": {"1a": "3"}, "height": "175"}`)
	writeFile(t, bad, "answers:\n  - 3\n")

	var buf bytes.Buffer
	failed, err := runValidate(&buf, []string{good, bad, filepath.Join(tmpDir, "missing.json")})
	require.NoError(t, err)
	assert.Equal(t, 2, failed)
	assert.Contains(t, buf.String(), "1/3 valid")
	assert.Contains(t, buf.String(), "file not found")
}

func TestRunValidateDefaultsToStore(t *testing.T) {
	setupCmdTest(t)
	require.NoError(t, runSet(&bytes.Buffer{}, []string{"1a", "3"}))

	var buf bytes.Buffer
	failed, err := runValidate(&buf, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, failed)
	assert.Contains(t, buf.String(), "answers.json")
}

func TestRunBatch(t *testing.T) {
	tmpDir := setupCmdTest(t)
	root := filepath.Join(tmpDir, "people")
	writeFile(t, filepath.Join(root, "alice.json"), `{"answers": {"1a": "2", "10a": "2"}}`)
	writeFile(t, filepath.Join(root, "team", "bob.yaml"), "answers: {}\n")
	writeFile(t, filepath.Join(root, "carol.json"), `{"answers": `)
	writeFile(t, filepath.Join(root, "skip", "dave.json"), `{"answers": {"1a": "4"}}`)
	writeFile(t, filepath.Join(root, "notes.txt"), "not a snapshot")

	batchExclude = []string{"skip/**"}

	var buf bytes.Buffer
	require.NoError(t, runBatch(&buf, root, "**/*"))
	out := buf.String()
	assert.Contains(t, out, "alice.json")
	assert.Contains(t, out, "team/bob.yaml")
	assert.Contains(t, out, "carol.json")
	assert.NotContains(t, out, "dave.json")
	assert.NotContains(t, out, "notes.txt")
	assert.Contains(t, out, "1/3 scored, 1 without data, 1 failed")
}

func TestRunBatchInvalidPattern(t *testing.T) {
	tmpDir := setupCmdTest(t)

	err := runBatch(&bytes.Buffer{}, tmpDir, "[")
	assert.Error(t, err)
}

func TestRunFmt(t *testing.T) {
	tmpDir := setupCmdTest(t)
	path := filepath.Join(tmpDir, "a.json")
	writeFile(t, path, `{"answers": {"10a": "2", "1a": " 3"}}`)

	var buf bytes.Buffer
	changed, err := runFmt(&buf, []string{path})
	require.NoError(t, err)
	assert.Equal(t, 1, changed)
	assert.Contains(t, buf.String(), `"1a": "3"`)

	fmtDiff = true
	buf.Reset()
	_, err = runFmt(&buf, []string{path})
	fmtDiff = false
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "(formatted)")

	fmtWrite = true
	buf.Reset()
	_, err = runFmt(&buf, []string{path})
	fmtWrite = false
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Formatted")

	changed, err = runFmt(&bytes.Buffer{}, []string{path})
	require.NoError(t, err)
	assert.Equal(t, 0, changed)

	snap, err := answers.ReadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"1a": "3", "10a": "2"}, snap.Answers)
}

func TestRunFmtCheck(t *testing.T) {
	tmpDir := setupCmdTest(t)
	path := filepath.Join(tmpDir, "a.yaml")
	writeFile(t, path, "answers:\n  1a: \"3\"\n")

	fmtCheck = true
	defer func() { fmtCheck = false }()

	changed, err := runFmt(&bytes.Buffer{}, []string{path})
	require.NoError(t, err)
	assert.Equal(t, 0, changed)
}

func TestNonNumericAuxDoesNotBlockStore(t *testing.T) {
	setupCmdTest(t)

	require.NoError(t, runSet(&bytes.Buffer{}, []string{"1a", "2", "height", "abc", "weight", "70"}))

	var buf bytes.Buffer
	require.NoError(t, runScore(&buf, ""))
	assert.Contains(t, buf.String(), "5.00")
	assert.NotContains(t, buf.String(), "BMI")

	require.NoError(t, runUnset(&bytes.Buffer{}, []string{"height"}))
	require.NoError(t, runSet(&bytes.Buffer{}, []string{"height", "175"}))

	buf.Reset()
	require.NoError(t, runMetrics(&buf))
	assert.Contains(t, buf.String(), "BMI: 22.9")
}

func TestRunScoreAcceptsBareNumbers(t *testing.T) {
	tmpDir := setupCmdTest(t)

	yamlPath := filepath.Join(tmpDir, "bare.yaml")
	writeFile(t, yamlPath, "answers:\n  1a: 3\n")
	var buf bytes.Buffer
	require.NoError(t, runScore(&buf, yamlPath))
	assert.Contains(t, buf.String(), "7.00")

	jsonPath := filepath.Join(tmpDir, "bare.json")
	writeFile(t, jsonPath, `{"answers": {"1a": 2}, "salary": "4e3", "savings": 1000}`)
	buf.Reset()
	require.NoError(t, runScore(&buf, jsonPath))
	assert.Contains(t, buf.String(), "Savings rate: 25.0%")
}

func TestSetKeepsOtherProfileAnswers(t *testing.T) {
	setupCmdTest(t)

	viper.Set("profile", "percentile")
	require.NoError(t, runSet(&bytes.Buffer{}, []string{"1a", "7.5", "1e", "3", "2a", "4"}))

	viper.Set("profile", "classic")
	require.NoError(t, runSet(&bytes.Buffer{}, []string{"3a", "1"}))

	snap, err := answers.ReadSnapshot(testStore)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"1a": "7.5", "1e": "3", "2a": "4", "3a": "1"}, snap.Answers)

	// a retained answer can still be removed from the other profile
	require.NoError(t, runUnset(&bytes.Buffer{}, []string{"1e"}))
	snap, err = answers.ReadSnapshot(testStore)
	require.NoError(t, err)
	assert.NotContains(t, snap.Answers, "1e")
	assert.Equal(t, "7.5", snap.Answers["1a"])
}
