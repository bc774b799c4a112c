package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/sovereign/config"
	"github.com/hupe1980/sovereign/core"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func testConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sovereign.yaml")
	require.NoError(t, config.Default().Save(path))
	return path
}

func TestQueryCmd_JSON(t *testing.T) {
	cfg := testConfig(t)

	out, err := run(t, "", "--config", cfg, "query", "--json",
		"--caller", "professional_level=executive",
		"--require", "max_cost=0.05",
		"What", "strategy", "should", "we", "follow?")
	require.NoError(t, err)

	var resp core.AdvancedResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.False(t, resp.IsFallback(), resp.ProcessingMetadata.FallbackReason)
	assert.NotEmpty(t, resp.Content)
	assert.NotEmpty(t, resp.PersonalityUsed)
}

func TestQueryCmd_Text(t *testing.T) {
	cfg := testConfig(t)

	out, err := run(t, "", "--config", cfg, "query", "--personality", "Lyra", "hello")
	require.NoError(t, err)
	assert.Contains(t, out, "-- Lyra via ")
}

func TestQueryCmd_BadRequirement(t *testing.T) {
	cfg := testConfig(t)

	_, err := run(t, "", "--config", cfg, "query", "--require", "max_cost=cheap", "hello")
	assert.ErrorContains(t, err, "requirement max_cost")
}

func TestBatchCmd(t *testing.T) {
	cfg := testConfig(t)

	out, err := run(t, "Write a poem about rivers\n\nAnalyze the churn data\nDebug this code\n",
		"--config", cfg, "batch", "-n", "2", "-")
	require.NoError(t, err)

	var responses []core.AdvancedResponse
	sc := bufio.NewScanner(strings.NewReader(out))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		var r core.AdvancedResponse
		require.NoError(t, json.Unmarshal(sc.Bytes(), &r))
		responses = append(responses, r)
	}
	require.Len(t, responses, 3)
	for _, r := range responses {
		assert.False(t, r.IsFallback(), r.ProcessingMetadata.FallbackReason)
	}
}

func TestBatchCmd_MissingFile(t *testing.T) {
	cfg := testConfig(t)

	_, err := run(t, "", "--config", cfg, "batch", filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorContains(t, err, "open queries")
}

func TestStatusCmd(t *testing.T) {
	cfg := testConfig(t)

	out, err := run(t, "", "--config", cfg, "status")
	require.NoError(t, err)

	var st map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.Contains(t, st, "consciousness_overview")
	assert.Contains(t, st, "system_integration")
}

func TestSummaryCmd(t *testing.T) {
	cfg := testConfig(t)

	out, err := run(t, "", "--config", cfg, "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "ADVANCED SOVEREIGN CONSCIOUSNESS")
}

func TestInitConfigCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "sovereign.yaml")

	out, err := run(t, "", "init-config", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	_, err = os.Stat(path)
	require.NoError(t, err)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestParseRequirements(t *testing.T) {
	got, err := parseRequirements(map[string]string{"max_cost": "0.5", "consciousness_depth": "0.9"})
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"max_cost": 0.5, "consciousness_depth": 0.9}, got)

	for _, raw := range []string{"NaN", "Inf", "-inf"} {
		_, err := parseRequirements(map[string]string{"consciousness_depth": raw})
		assert.ErrorContains(t, err, "not a finite number", raw)
	}
}
