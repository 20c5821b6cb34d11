package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-copter/internal/config"
	"github.com/vovakirdan/tui-copter/internal/core"
	"github.com/vovakirdan/tui-copter/internal/games/copter"
	"github.com/vovakirdan/tui-copter/internal/platform/spectate"
	"github.com/vovakirdan/tui-copter/internal/platform/tui"
	"github.com/vovakirdan/tui-copter/internal/registry"
	"github.com/vovakirdan/tui-copter/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagSpectate   string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start playing.

Controls:
  Space/W/Up - Lift
  P/Esc      - Pause
  F/R        - Restart (after game over)
  B          - Leave (while paused or after game over)
  Ctrl+S     - Save a screenshot to ~/.arcade/screenshots
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Generous crash budget, speed progresses from the lowest level
  normal - Default crash budget, speed progresses from 30%
  hard   - Tight crash budget, speed progresses from 70%
  fixed  - No progression, stays at config's initial level

Spectating:
  --spectate :8080 streams every tick as JSON on ws://localhost:8080/ws
  Viewer activity is logged to ~/.arcade/spectate.log

Examples:
  copter play
  copter play --difficulty easy
  copter play --config ./my-copter.yaml
  copter play --seed 42 --spectate :8080`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve a WebSocket spectator stream on this address")
}

// applyGameFlags validates config and difficulty flags and hands them to the game.
func applyGameFlags() error {
	if _, _, err := copter.LoadWorld(flagConfig, config.ParsePreset(flagDifficulty)); err != nil {
		return err
	}
	copter.SetConfigPath(flagConfig)
	copter.SetDifficultyPreset(flagDifficulty)
	return nil
}

func runPlay(_ *cobra.Command, _ []string) {
	if err := applyGameFlags(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	var pub tui.Publisher
	ctx, cancel := context.WithCancel(context.Background())
	streamErr := make(chan error, 1)
	if flagSpectate != "" {
		hub := spectate.NewHub()
		logFile := openSpectateLog(hub)
		if logFile != nil {
			defer logFile.Close()
		}
		go func() {
			streamErr <- hub.ListenAndServe(ctx, flagSpectate)
		}()
		pub = hub
	}

	runErr := tui.Run(game, store, pub, cfg)

	cancel()
	select {
	case err := <-streamErr:
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: spectator stream stopped: %v\n", err)
		}
	default:
	}
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// openSpectateLog points the hub's logger at ~/.arcade/spectate.log so
// viewer activity does not draw over the game. Logging is discarded when
// the file cannot be opened.
func openSpectateLog(hub *spectate.Hub) *os.File {
	var out io.Writer = io.Discard
	var file *os.File

	if home, err := os.UserHomeDir(); err == nil {
		dir := filepath.Join(home, ".arcade")
		if err := os.MkdirAll(dir, 0o755); err == nil {
			f, err := os.OpenFile(filepath.Join(dir, "spectate.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
			if err == nil {
				out, file = f, f
			}
		}
	}

	hub.SetLogger(log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "copter-spectate",
	}))
	return file
}
