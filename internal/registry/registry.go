// Package registry maps game IDs to factories. Game packages register
// from init so hosts (the terminal, the SSH server, the CLI) can build a
// session by ID without importing the game directly.
package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/vovakirdan/tui-copter/internal/core"
)

// ErrUnknownGame is returned for IDs nothing has registered.
var ErrUnknownGame = errors.New("registry: unknown game")

// Game is what a host drives at a fixed tick rate. Implementations hold
// pure simulation state and never touch the terminal.
type Game interface {
	// ID is the stable key used on the command line and in the scores table.
	ID() string

	// Title is the display name shown in HUDs and scoreboards.
	Title() string

	// Reset starts a fresh session. The runtime config carries the screen
	// size and the seed for the session RNG.
	Reset(cfg core.RuntimeConfig)

	// Step advances one tick with the actions held during that tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the session into a cleared screen buffer.
	Render(dst *core.Screen)

	// State reports score, crashes and the pause and game over flags.
	State() core.GameState

	// Snapshot returns a serializable copy of the session for spectators.
	Snapshot() any
}

// Factory builds a fresh game instance.
type Factory func() Game

type entry struct {
	factory Factory
	title   string
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a factory under id. It panics on an empty or repeated id,
// both of which are programming errors in a game package's init.
func Register(id string, f Factory) {
	if id == "" {
		panic("registry: empty game id")
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{factory: f, title: f().Title()}
}

// Create builds a new instance of the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	return e.factory(), nil
}

// Title returns the display name of a registered game without building it.
func Title(id string) (string, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	return e.title, nil
}
