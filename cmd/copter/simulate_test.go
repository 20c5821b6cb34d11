package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-copter/internal/games/copter"
	"github.com/vovakirdan/tui-copter/internal/storage"
)

func TestSimulationIsDeterministic(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	sim := simulation{Seed: 42, Ticks: 900, LiftEvery: 14}
	a := sim.run()
	b := sim.run()

	if !reflect.DeepEqual(a, b) {
		t.Errorf("Same seed produced different results:\n%+v\n%+v", a, b)
	}
	if a.Tick == 0 {
		t.Error("Simulation should advance")
	}
}

func TestSimulationStopsAtGameOver(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	// Never lifting burns through the crash budget well within the limit
	snap := simulation{Seed: 1, Ticks: 1_000_000}.run()
	if !snap.Terminal {
		t.Fatal("Expected the run to end")
	}
	if snap.Crashes != snap.MaxCrashes {
		t.Errorf("Crashes = %d, expected %d", snap.Crashes, snap.MaxCrashes)
	}
	if snap.Tick >= 1_000_000 {
		t.Errorf("Run should stop at game over, ran %d ticks", snap.Tick)
	}
}

func TestWriteSnapshot(t *testing.T) {
	snap := copter.Snapshot{
		Tick:       10,
		CraftY:     48.5,
		Obstacles:  []copter.ObstacleView{{X: 95, GapCenter: 40}},
		Score:      2,
		Crashes:    1,
		MaxCrashes: 50,
	}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := writeSnapshot(&buf, snap, "json"); err != nil {
			t.Fatalf("writeSnapshot() failed: %v", err)
		}
		var got copter.Snapshot
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("output is not JSON: %v", err)
		}
		if !reflect.DeepEqual(got, snap) {
			t.Errorf("got %+v, expected %+v", got, snap)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		if err := writeSnapshot(&buf, snap, "yaml"); err != nil {
			t.Fatalf("writeSnapshot() failed: %v", err)
		}
		var got copter.Snapshot
		if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("output is not YAML: %v", err)
		}
		if !reflect.DeepEqual(got, snap) {
			t.Errorf("got %+v, expected %+v", got, snap)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if err := writeSnapshot(&bytes.Buffer{}, snap, "xml"); err == nil {
			t.Error("Expected error for unknown format")
		}
	})
}

func TestSavedSimulationCanBeLookedUp(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	snap := simulation{Seed: 3, Ticks: 1200, LiftEvery: 14}.run()
	runID, err := saveSimulation(store, snap)
	if err != nil {
		t.Fatalf("saveSimulation() failed: %v", err)
	}

	var buf bytes.Buffer
	if err := describeRun(&buf, store, runID); err != nil {
		t.Fatalf("describeRun() failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Run:     " + runID,
		"Game:    copter",
		"Crashes: " + strconv.Itoa(snap.Crashes),
		"Ticks:   " + strconv.FormatUint(snap.Tick, 10),
	} {
		if !strings.Contains(out, want) {
			t.Errorf("describeRun() output missing %q:\n%s", want, out)
		}
	}

	if err := describeRun(&bytes.Buffer{}, store, "no-such-run"); err == nil {
		t.Error("Expected error for unknown run ID")
	}
}
