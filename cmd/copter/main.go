// copter is a helicopter cave flyer for the terminal.
//
// Usage:
//
//	copter play              - Play in this terminal
//	copter serve             - Start SSH server for remote play
//	copter scores            - Show high scores
//	copter simulate          - Run the simulation headless and print the final state
//	copter config            - Print the built-in game config
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.arcade/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Register the game
	_ "github.com/vovakirdan/tui-copter/internal/games/copter"
)

const gameID = "copter"

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "copter",
	Short: "Copter - fly a helicopter through scrolling caves",
	Long: `Copter is a terminal arcade game. Hold your altitude against gravity,
thread the gaps between walls and score a point for every wall you pass.
Each crash respawns the helicopter until the crash budget is spent.

Available commands:
  play      - Play in this terminal
  serve     - Start SSH server for remote play
  scores    - View high scores
  simulate  - Run a headless simulation
  config    - Print the built-in config

Examples:
  copter play
  copter play --difficulty hard --spectate :8080
  copter serve --ssh :2222
  copter scores --tui
  copter simulate --ticks 600 --lift-every 12 --seed 1
  copter config --output ./copter.yaml`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)
}
