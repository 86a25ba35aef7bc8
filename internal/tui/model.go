package tui

import (
	"github.com/Veraticus/appraise/internal/api"
	"github.com/Veraticus/appraise/internal/model"
	"github.com/Veraticus/appraise/internal/tui/components"
	"github.com/Veraticus/appraise/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Status texts shown by the shell.
const (
	HealthCheckFailed = "Failed to check model status"
	ModelNotLoaded    = "Model is not loaded. Please ensure the backend is running and the model is trained."
	PredictingText    = "Predicting house price..."
)

// Panel identifies which panel owns keyboard focus.
type Panel int

// Focusable panels.
const (
	PanelForm Panel = iota
	PanelImportance
)

// Model is the top-level application model.
type Model struct {
	client     api.Client
	health     *model.ModelHealthResponse
	recorder   *Recorder
	keymap     KeyMap
	theme      themes.Theme
	errMsg     string
	form       components.FormModel
	results    components.ResultsModel
	importance components.ImportanceModel
	spinner    spinner.Model
	help       help.Model
	config     Config
	errSeq     int
	width      int
	height     int
	focus      Panel
	loading    bool
	showHelp   bool
	quitting   bool
}

// newModel creates a new TUI model.
func newModel(cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = cfg.Theme.StatusPending

	h := help.New()
	h.Width = cfg.Width

	m := Model{
		client:     cfg.Client,
		config:     cfg,
		theme:      cfg.Theme,
		keymap:     DefaultKeyMap(),
		form:       components.NewFormModel(cfg.Client, cfg.Theme, cfg.Timeout),
		results:    components.NewResultsModel(cfg.Theme),
		importance: components.NewImportanceModel(cfg.Client, cfg.Theme, cfg.Timeout),
		spinner:    s,
		help:       h,
		width:      cfg.Width,
		height:     cfg.Height,
		focus:      PanelForm,
	}

	// Nothing can be submitted until the service reports a loaded model.
	m.form = m.form.SetDisabled(true)
	m.importance = m.importance.SetWidth(m.importanceWidth())
	return m
}

// Init starts the health check and the one-time importance fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.checkHealth(),
		m.importance.Init(),
		m.form.Init(),
	)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	if next.recorder != nil {
		next.recorder.RecordState(next, msg)
	}
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if next, cmd, handled := m.handleGlobalKeys(msg); handled {
			return next, cmd
		}
		return m.routeKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case healthCheckedMsg:
		if msg.err != nil {
			// An unreachable service no longer vouches for its model.
			m.health = nil
			cmd = m.setError(HealthCheckFailed)
		} else {
			health := msg.health
			m.health = &health
		}
		m.form = m.form.SetDisabled(!m.modelReady())
		return m, cmd

	case components.LoadingMsg:
		m.loading = msg.Loading
		if m.loading {
			return m, m.spinner.Tick
		}
		return m, nil

	case components.PredictionReceivedMsg:
		prediction := msg.Response
		m.results = m.results.SetPrediction(&prediction)
		return m, nil

	case components.PredictionErrorMsg:
		return m, m.setError(msg.Message)

	case dismissErrorMsg:
		// A newer error restarted the countdown.
		if msg.seq == m.errSeq {
			m.errMsg = ""
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case components.ImportanceLoadedMsg:
		m.importance, cmd = m.importance.Update(msg)
		return m, cmd
	}

	// Settlements, cursor blinks and anything else belong to the form.
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

// handleGlobalKeys processes application-wide shortcuts.
func (m Model) handleGlobalKeys(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if m.showHelp && msg.Type == tea.KeyEsc {
			m.showHelp = false
			return m, nil, true
		}
		m.quitting = true
		return m, tea.Quit, true

	case key.Matches(msg, m.keymap.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil, true

	case key.Matches(msg, m.keymap.Recheck):
		return m, m.checkHealth(), true

	case key.Matches(msg, m.keymap.Submit):
		var cmd tea.Cmd
		m.form, cmd = m.form.Submit()
		return m, cmd, true

	case key.Matches(msg, m.keymap.FocusNext):
		return m.cycleFocus(true)

	case key.Matches(msg, m.keymap.FocusPrev):
		return m.cycleFocus(false)
	}

	return m, nil, false
}

// cycleFocus moves focus between panels when the form is at its edge.
// It reports false when the form should handle the key itself.
func (m Model) cycleFocus(forward bool) (Model, tea.Cmd, bool) {
	if m.focus == PanelImportance {
		m.importance = m.importance.Blur()
		m.focus = PanelForm
		if forward {
			m.form = m.form.FocusFirst()
		} else {
			m.form = m.form.FocusLast()
		}
		return m, nil, true
	}

	if !m.importance.Focusable() {
		return m, nil, false
	}

	atEdge := m.form.AtLast()
	if !forward {
		atEdge = m.form.AtFirst()
	}
	if !atEdge && !m.form.Disabled() {
		return m, nil, false
	}

	m.form = m.form.Blur()
	m.importance = m.importance.Focus()
	m.focus = PanelImportance
	return m, nil, true
}

func (m Model) routeKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.focus == PanelImportance {
		m.importance, cmd = m.importance.Update(msg)
		return m, cmd
	}
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

// handleResize updates dimensions on window resize.
func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width
	m.importance = m.importance.SetWidth(m.importanceWidth())
	return m
}

// setError shows msg in the error banner and schedules its dismissal.
func (m *Model) setError(msg string) tea.Cmd {
	m.errSeq++
	m.errMsg = msg
	return dismissErrorAfter(m.config.ErrorTimeout, m.errSeq)
}

func (m Model) modelReady() bool {
	return m.health != nil && m.health.ModelLoaded
}

// Error returns the error banner text, if any.
func (m Model) Error() string { return m.errMsg }

// Health returns the last successful health report.
func (m Model) Health() *model.ModelHealthResponse { return m.health }

// Loading reports whether a prediction request is in flight.
func (m Model) Loading() bool { return m.loading }

// Prediction returns the most recent successful prediction.
func (m Model) Prediction() *model.PredictionResponse { return m.results.Prediction() }

// FocusedPanel returns the panel that owns keyboard focus.
func (m Model) FocusedPanel() Panel { return m.focus }

// Form exposes the form panel.
func (m Model) Form() components.FormModel { return m.form }
