package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-copter/internal/core"
	"github.com/vovakirdan/tui-copter/internal/registry"
	"github.com/vovakirdan/tui-copter/internal/storage"
)

// Publisher receives a snapshot of the game after every tick.
type Publisher interface {
	Publish(v any)
}

// configReporter is implemented by games that fall back to built-in
// tuning when their config file is unusable.
type configReporter interface {
	ConfigErr() error
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	publisher  Publisher
	logger     *log.Logger // nil while the terminal is owned by the program
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	quitting   bool
	runSaved   bool // Whether the finished run has been recorded
	started    bool
	configErr  error
	saveErr    error
}

// NewModel creates a new Bubble Tea model for the given game.
// The store and publisher may be nil.
func NewModel(game registry.Game, store *storage.Store, pub Publisher, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		publisher:  pub,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// WithLogger returns a copy of the model that logs problems as they happen.
// Use it only when the program does not draw to the process terminal.
func (m Model) WithLogger(logger *log.Logger) Model {
	m.logger = logger
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// B leaves once the run is over or paused
	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize processes window resize events.
// The world has fixed coordinates, so only the projection changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	wasOver := m.gameState.GameOver

	if !m.started {
		m.started = true
		if r, ok := m.game.(configReporter); ok && r.ConfigErr() != nil {
			m.configErr = r.ConfigErr()
			if m.logger != nil {
				m.logger.Warn("using built-in config", "error", m.configErr)
			}
		}
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// A restart clears the finished run
	if wasOver && !m.gameState.GameOver {
		m.runSaved = false
	}

	if m.gameState.GameOver && !m.runSaved {
		m.saveErr = m.saveRun()
		m.runSaved = true
		if m.saveErr != nil && m.logger != nil {
			m.logger.Warn("could not save run", "error", m.saveErr)
		}
	}

	if m.publisher != nil {
		m.publisher.Publish(m.game.Snapshot())
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// saveRun records the finished run. Failures are reported, not fatal.
func (m Model) saveRun() error {
	if m.store == nil {
		return nil
	}
	_, err := m.store.SaveRun(storage.RunResult{
		GameID:  m.game.ID(),
		Score:   m.gameState.Score,
		Crashes: m.gameState.Crashes,
		Ticks:   m.gameState.Ticks,
	})
	return err
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// State returns the game state observed on the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// ConfigErr returns the config problem the game reported on start, if any.
func (m Model) ConfigErr() error {
	return m.configErr
}

// SaveErr returns the error from recording the last finished run, if any.
func (m Model) SaveErr() error {
	return m.saveErr
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given model.
// Problems met during play are logged once the terminal is restored.
func Run(game registry.Game, store *storage.Store, pub Publisher, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, pub, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if m, ok := final.(Model); ok {
		logger := log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "copter",
		})
		if m.ConfigErr() != nil {
			logger.Warn("played with built-in config", "error", m.ConfigErr())
		}
		if m.SaveErr() != nil {
			logger.Warn("could not save run", "error", m.SaveErr())
		}
	}
	return err
}
