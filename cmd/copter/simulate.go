package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-copter/internal/core"
	"github.com/vovakirdan/tui-copter/internal/games/copter"
	"github.com/vovakirdan/tui-copter/internal/storage"
)

var (
	flagSimTicks     int
	flagSimLiftEvery int
	flagSimFormat    string
	flagSimSave      bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the simulation headless",
	Long: `Advance the simulation without a terminal and print the final state.

The craft lifts once every --lift-every ticks (0 never lifts). The run stops
after --ticks ticks or when the crash budget is spent, whichever comes first.
The same --seed always produces the same result. With --save the run is
recorded in the scores database and its run ID is printed to stderr.

Examples:
  copter simulate --seed 1
  copter simulate --ticks 3600 --lift-every 15 --format json
  copter simulate --difficulty hard --seed 7
  copter simulate --lift-every 14 --save`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimTicks, "ticks", 600, "Maximum number of ticks to run")
	simulateCmd.Flags().IntVar(&flagSimLiftEvery, "lift-every", 0, "Lift once every N ticks (0 = never)")
	simulateCmd.Flags().StringVar(&flagSimFormat, "format", "yaml", "Output format: yaml or json")
	simulateCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record the run in the scores database")
	simulateCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	simulateCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// simulation describes one headless run.
type simulation struct {
	Seed      int64
	Ticks     int
	LiftEvery int
}

// run drives a fresh game with a fixed lift cadence and returns its final snapshot.
func (s simulation) run() copter.Snapshot {
	game := copter.New()
	game.Reset(core.RuntimeConfig{Seed: s.Seed})

	frame := core.NewInputFrame()
	for i := 1; i <= s.Ticks; i++ {
		frame.Clear()
		if s.LiftEvery > 0 && i%s.LiftEvery == 0 {
			frame.Set(core.ActionJump)
		}
		if game.Step(frame).State.GameOver {
			break
		}
	}

	return game.Engine().Snapshot()
}

// writeSnapshot encodes snap to w as yaml or json.
func writeSnapshot(w io.Writer, snap copter.Snapshot, format string) error {
	switch format {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	default:
		return fmt.Errorf("unknown format %q (want yaml or json)", format)
	}
}

// saveSimulation records the final snapshot of a run and returns its run ID.
func saveSimulation(store *storage.Store, snap copter.Snapshot) (string, error) {
	return store.SaveRun(storage.RunResult{
		GameID:  gameID,
		Score:   snap.Score,
		Crashes: snap.Crashes,
		Ticks:   snap.Tick,
	})
}

func runSimulate(_ *cobra.Command, _ []string) {
	if err := applyGameFlags(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagSimTicks < 0 || flagSimLiftEvery < 0 {
		fmt.Fprintln(os.Stderr, "Error: --ticks and --lift-every must not be negative")
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	snap := simulation{
		Seed:      seed,
		Ticks:     flagSimTicks,
		LiftEvery: flagSimLiftEvery,
	}.run()

	if err := writeSnapshot(os.Stdout, snap, flagSimFormat); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if !flagSimSave {
		return
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	runID, err := saveSimulation(store, snap)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Saved run %s\n", runID)
}
