package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/mini-arcade/internal/core"
	"github.com/vovakirdan/mini-arcade/internal/registry"
)

// OptionsModel lets the player pick pre-game settings of a Configurable
// game. Left/Right cycles the highlighted option; Enter starts the game.
type OptionsModel struct {
	title     string
	options   []registry.Option
	picked    []int // chosen choice index per option
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	done      bool
	quitting  bool
	back      bool
}

// NewOptionsModel creates a selector for opts, starting at each default.
func NewOptionsModel(title string, opts []registry.Option, width, height int) OptionsModel {
	picked := make([]int, len(opts))
	for i, o := range opts {
		for j, c := range o.Choices {
			if c.Value == o.Default {
				picked[i] = j
				break
			}
		}
	}
	return OptionsModel{
		title:     title,
		options:   opts,
		picked:    picked,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model.
func (m OptionsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m OptionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m OptionsModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case MenuActionLeft:
		m.cycle(-1)
	case MenuActionRight:
		m.cycle(1)
	case MenuActionSelect:
		m.done = true
	}
	return m, nil
}

func (m *OptionsModel) cycle(delta int) {
	if len(m.options) == 0 {
		return
	}
	n := len(m.options[m.cursor].Choices)
	if n == 0 {
		return
	}
	m.picked[m.cursor] = core.Wrap(m.picked[m.cursor]+delta, n)
}

// View renders the option list.
func (m OptionsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render(strings.ToUpper(m.title)), m.width))
	b.WriteString("\n\n")

	for i, o := range m.options {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		value := ""
		if len(o.Choices) > 0 {
			value = o.Choices[m.picked[i]].Label
		}
		b.WriteString(centerText(fmt.Sprintf("%s%-10s < %s >", cursor, o.Label, value), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Left/Right: Change  |  Enter: Start  |  Esc: Back  |  Q: Quit", m.width))
	return b.String()
}

// Values returns the chosen value for every option key.
func (m OptionsModel) Values() map[string]string {
	out := make(map[string]string, len(m.options))
	for i, o := range m.options {
		if len(o.Choices) > 0 {
			out[o.Key] = o.Choices[m.picked[i]].Value
		}
	}
	return out
}

// Apply sets the chosen values on the game.
func (m OptionsModel) Apply(game registry.Configurable) error {
	values := m.Values()
	for _, o := range m.options {
		v, ok := values[o.Key]
		if !ok {
			continue
		}
		if err := game.SetOption(o.Key, v); err != nil {
			return err
		}
	}
	return nil
}

// Done returns true once the player confirmed the settings.
func (m OptionsModel) Done() bool {
	return m.done
}

// IsQuitting returns true if user wants to quit.
func (m OptionsModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m OptionsModel) WantsBack() bool {
	return m.back
}

// optionsProgram quits as soon as the selector finishes.
type optionsProgram struct {
	OptionsModel
}

func (p optionsProgram) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := p.OptionsModel.Update(msg)
	p.OptionsModel = next.(OptionsModel)
	if p.Done() || p.WantsBack() {
		return p, tea.Quit
	}
	return p, cmd
}

// OptionsResult is the outcome of RunOptions.
type OptionsResult struct {
	Start bool // settings applied, play the game
	Back  bool
	Quit  bool
}

// RunOptions shows the selector for game in the local terminal and applies
// the chosen settings. Games without options start immediately.
func RunOptions(game registry.Game, cfg core.RuntimeConfig) (OptionsResult, error) {
	c, ok := game.(registry.Configurable)
	if !ok || len(c.Options()) == 0 {
		return OptionsResult{Start: true}, nil
	}

	p := tea.NewProgram(
		optionsProgram{NewOptionsModel(game.Title(), c.Options(), cfg.ScreenW, cfg.ScreenH)},
		tea.WithAltScreen(),
	)
	final, err := p.Run()
	if err != nil {
		return OptionsResult{}, err
	}

	m, ok := final.(optionsProgram)
	switch {
	case !ok || m.IsQuitting():
		return OptionsResult{Quit: true}, nil
	case m.WantsBack():
		return OptionsResult{Back: true}, nil
	}
	if err := m.Apply(c); err != nil {
		return OptionsResult{}, err
	}
	return OptionsResult{Start: true}, nil
}
