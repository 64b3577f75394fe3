package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tower-climb/internal/games/tower"
	"github.com/vovakirdan/tower-climb/internal/storage"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

// useTowerConfig points the game package at a YAML file for one test.
func useTowerConfig(t *testing.T, yaml string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tower.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	tower.SetConfigPath(path)
	t.Cleanup(func() { tower.SetConfigPath("") })
}

func TestSimulateWinsEmptyTower(t *testing.T) {
	useTowerConfig(t, `
tower:
  total_floors: 2
obstacles:
  chance: { base: 0, scale: 0, max: 0 }
`)

	sum, err := simulate(simOptions{Variant: "tower", Ticks: 1000, Seed: 7}, quietLogger())
	require.NoError(t, err)

	assert.Equal(t, "won", sum.Outcome)
	assert.Equal(t, "summit", sum.Cause)
	assert.Equal(t, 2, sum.Floor)
	assert.Equal(t, 240, sum.Ticks)
	assert.Equal(t, int64(7), sum.Seed)
}

func TestSimulateStopsAtTickLimit(t *testing.T) {
	useTowerConfig(t, "tower:\n  total_floors: 50\n")

	sum, err := simulate(simOptions{Variant: "tower", Ticks: 50, Seed: 7}, quietLogger())
	require.NoError(t, err)

	assert.Equal(t, "running", sum.Outcome)
	assert.Equal(t, 50, sum.Ticks)
	assert.Equal(t, 50, sum.TotalFloors)
}

func TestSimulateDeterministic(t *testing.T) {
	opts := simOptions{Variant: "tower_autofire", Ticks: 3000, Seed: 99, Strafe: 25, Progress: 100}

	a, err := simulate(opts, quietLogger())
	require.NoError(t, err)
	b, err := simulate(opts, quietLogger())
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestSimulateUnknownVariant(t *testing.T) {
	_, err := simulate(simOptions{Variant: "ladder", Ticks: 10}, quietLogger())
	assert.Error(t, err)
}

func TestOutcomeOf(t *testing.T) {
	assert.Equal(t, storage.OutcomeWon, outcomeOf("won"))
	assert.Equal(t, storage.OutcomeLost, outcomeOf("lost"))
	assert.Equal(t, storage.OutcomeAbandoned, outcomeOf("running"))
	assert.Equal(t, storage.OutcomeAbandoned, outcomeOf("paused"))
}

func TestVariantArg(t *testing.T) {
	id, err := variantArg(nil)
	require.NoError(t, err)
	assert.Equal(t, "tower", id)

	id, err = variantArg([]string{"tower_mouse"})
	require.NoError(t, err)
	assert.Equal(t, "tower_mouse", id)

	_, err = variantArg([]string{"ladder"})
	assert.ErrorContains(t, err, "unknown variant")
}

func TestFormatTable(t *testing.T) {
	out := formatTable([]string{"Rank", "Floor"}, [][]string{{"#1", "12/50"}, {"#2", "3/50"}})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	require.Len(t, lines, 4)
	assert.Equal(t, "  Rank Floor", lines[0])
	assert.Equal(t, "  ---- -----", lines[1])
	assert.Equal(t, "  #1   12/50", lines[2])
	assert.Equal(t, "  #2   3/50 ", lines[3])
}
