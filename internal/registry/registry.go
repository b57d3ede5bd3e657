// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the platform
// and the HTTP API to discover and instantiate games without hardcoded
// dependencies.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/mini-arcade/internal/core"
)

var (
	// ErrUnknownGame is returned when a game ID has not been registered.
	ErrUnknownGame = errors.New("registry: unknown game")
	// ErrUnknownOption is returned by SetOption for keys a game does not offer.
	ErrUnknownOption = errors.New("registry: unknown option")
	// ErrInvalidOption is returned by SetOption for values outside the choices.
	ErrInvalidOption = errors.New("registry: invalid option value")
)

// Game is the interface every arcade game implements.
// Games contain pure logic with no Bubble Tea dependency.
// The platform handles input mapping, timing and rendering.
type Game interface {
	// ID returns a unique identifier (e.g. "tetris"), used for CLI
	// arguments, score storage and API routes.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes or resets the game state.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into a pre-cleared screen buffer.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}

// Describer is implemented by games that ship a blurb and a rules list.
type Describer interface {
	Description() string
	Rules() []string
}

// Choice is one selectable value of an Option.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Option is a pre-game setting offered by the menu, e.g. a starting level.
type Option struct {
	Key     string   `json:"key"`
	Label   string   `json:"label"`
	Choices []Choice `json:"choices"`
	Default string   `json:"default"`
}

// Configurable is implemented by games with pre-game settings.
// SetOption takes effect on the next Reset.
type Configurable interface {
	Options() []Option
	SetOption(key, value string) error
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Rules       []string `json:"rules,omitempty"`
	Options     []Option `json:"options,omitempty"`
}

// Factory creates a new instance of a game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]GameInfo)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Panics on an empty or duplicate ID.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if strings.TrimSpace(id) == "" {
		panic("registry: empty game id")
	}
	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	infos[id] = describe(id, f())
}

func describe(id string, g Game) GameInfo {
	info := GameInfo{ID: id, Title: g.Title()}
	if d, ok := g.(Describer); ok {
		info.Description = d.Description()
		info.Rules = slices.Clone(d.Rules())
	}
	if c, ok := g.(Configurable); ok {
		info.Options = slices.Clone(c.Options())
	}
	return info
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}
	slices.SortFunc(result, func(a, b GameInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return result
}

// Info returns the metadata of a registered game.
func Info(id string) (GameInfo, error) {
	mu.RLock()
	defer mu.RUnlock()

	info, ok := infos[id]
	if !ok {
		return GameInfo{}, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	return info, nil
}

// Create instantiates a new game by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	return f(), nil
}

// ValidateOption checks value against the choices of key in opts.
// Games use it to implement SetOption.
func ValidateOption(opts []Option, key, value string) error {
	for _, o := range opts {
		if o.Key != key {
			continue
		}
		for _, c := range o.Choices {
			if c.Value == value {
				return nil
			}
		}
		return fmt.Errorf("%w: %s=%q", ErrInvalidOption, key, value)
	}
	return fmt.Errorf("%w %q", ErrUnknownOption, key)
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
