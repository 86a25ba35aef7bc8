package components

import (
	"context"
	"strings"
	"time"

	"github.com/Veraticus/appraise/internal/api"
	"github.com/Veraticus/appraise/internal/common"
	"github.com/Veraticus/appraise/internal/format"
	"github.com/Veraticus/appraise/internal/model"
	"github.com/Veraticus/appraise/internal/tui/themes"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Messages shown by the importance panel.
const (
	ImportanceTitle       = "Feature Importance"
	ImportanceLoadingText = "Loading feature importance..."
	ImportanceErrorPrefix = "Error loading feature importance: "
	ImportanceUnavailable = "Feature importance is not available for this model type."
	ImportanceTreeOnly    = "Currently available only for tree-based models like Random Forest."
	ImportanceNoWeights   = "The model reported no feature weights."
)

const (
	defaultBarWidth = 30
	minBarWidth     = 10
)

// ImportanceState is the fetch state of the importance panel.
type ImportanceState int

const (
	ImportanceLoading ImportanceState = iota
	ImportanceReady
	ImportanceEmpty
	ImportanceError
)

// ImportanceKeyMap defines the keys used to move between bars.
type ImportanceKeyMap struct {
	Up   key.Binding
	Down key.Binding
}

// DefaultImportanceKeyMap returns the default chart bindings.
func DefaultImportanceKeyMap() ImportanceKeyMap {
	return ImportanceKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous bar"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next bar"),
		),
	}
}

// ImportanceModel fetches feature importance once and draws it as a bar chart.
type ImportanceModel struct {
	client   api.Client
	data     *model.ImportanceData
	keys     ImportanceKeyMap
	theme    themes.Theme
	errMsg   string
	timeout  time.Duration
	state    ImportanceState
	selected int
	width    int
	focused  bool
}

// NewImportanceModel creates the panel in its loading state.
func NewImportanceModel(client api.Client, theme themes.Theme, timeout time.Duration) ImportanceModel {
	if timeout <= 0 {
		timeout = api.DefaultTimeout
	}
	return ImportanceModel{
		client:  client,
		theme:   theme,
		timeout: timeout,
		keys:    DefaultImportanceKeyMap(),
		state:   ImportanceLoading,
	}
}

// Init issues the one and only importance request.
func (m ImportanceModel) Init() tea.Cmd {
	client := m.client
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		resp, err := client.GetFeatureImportance(ctx)
		return ImportanceLoadedMsg{Response: resp, Err: err}
	}
}

// Update handles messages.
func (m ImportanceModel) Update(msg tea.Msg) (ImportanceModel, tea.Cmd) {
	switch msg := msg.(type) {
	case ImportanceLoadedMsg:
		m.load(msg)

	case tea.KeyMsg:
		if !m.focused || m.state != ImportanceReady {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Up):
			m.selected = max(m.selected-1, 0)
		case key.Matches(msg, m.keys.Down):
			m.selected = min(m.selected+1, max(len(m.data.ChartData)-1, 0))
		}
	}

	return m, nil
}

func (m *ImportanceModel) load(msg ImportanceLoadedMsg) {
	m.selected = 0
	if msg.Err != nil {
		m.state = ImportanceError
		m.errMsg = common.MessageOf(msg.Err, FallbackErrorMessage)
		m.data = nil
		return
	}

	m.data = model.NewImportanceData(msg.Response)
	if m.data == nil {
		m.state = ImportanceEmpty
		return
	}
	m.state = ImportanceReady
}

// SetWidth sets the width available to the panel.
func (m ImportanceModel) SetWidth(width int) ImportanceModel {
	m.width = width
	return m
}

// Focus lets the panel react to bar navigation keys.
func (m ImportanceModel) Focus() ImportanceModel {
	m.focused = true
	return m
}

// Blur stops the panel from reacting to keys.
func (m ImportanceModel) Blur() ImportanceModel {
	m.focused = false
	return m
}

// Focusable reports whether there is a chart to navigate.
func (m ImportanceModel) Focusable() bool {
	return m.state == ImportanceReady && len(m.data.ChartData) > 0
}

// Focused reports whether the panel holds keyboard focus.
func (m ImportanceModel) Focused() bool { return m.focused }

// State returns the fetch state.
func (m ImportanceModel) State() ImportanceState { return m.state }

// Data returns the chart data, nil unless ready.
func (m ImportanceModel) Data() *model.ImportanceData { return m.data }

// Selected returns the highlighted bar.
func (m ImportanceModel) Selected() (model.ChartDataPoint, bool) {
	if m.state != ImportanceReady || m.selected >= len(m.data.ChartData) {
		return model.ChartDataPoint{}, false
	}
	return m.data.ChartData[m.selected], true
}

// KeyMap returns the chart bindings for help rendering.
func (m ImportanceModel) KeyMap() ImportanceKeyMap { return m.keys }

// View renders the panel for its current state.
func (m ImportanceModel) View() string {
	title := m.theme.Title.Render(ImportanceTitle)

	switch m.state {
	case ImportanceLoading:
		return lipgloss.JoinVertical(lipgloss.Left, title, m.theme.StatusPending.Render(ImportanceLoadingText))
	case ImportanceError:
		return lipgloss.JoinVertical(lipgloss.Left, title, m.theme.FieldError.Render(ImportanceErrorPrefix+m.errMsg))
	case ImportanceEmpty:
		return lipgloss.JoinVertical(lipgloss.Left,
			title,
			m.theme.Subtitle.Render(ImportanceUnavailable),
			m.theme.Subtitle.Render(ImportanceTreeOnly),
		)
	}

	sections := []string{title}
	if len(m.data.ChartData) == 0 {
		sections = append(sections, m.theme.Subtitle.Render(ImportanceNoWeights))
	} else {
		sections = append(sections, m.renderChart(), "", m.renderTooltip())
	}
	sections = append(sections, "", m.theme.StatusInfo.Render("Model: "+format.ModelLabel(m.data.ModelType)))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m ImportanceModel) renderChart() string {
	labelWidth := 0
	for _, p := range m.data.ChartData {
		labelWidth = max(labelWidth, lipgloss.Width(p.Feature))
	}
	barWidth := m.barWidth(labelWidth)
	maxWeight := m.data.MaxImportance()

	labelStyle := m.theme.Label.Width(labelWidth + 1)
	lines := make([]string, 0, len(m.data.ChartData)+1)
	for i, p := range m.data.ChartData {
		filled := 0
		if maxWeight > 0 {
			filled = int(p.Importance/maxWeight*float64(barWidth) + 0.5)
		}
		filled = min(max(filled, 0), barWidth)

		barStyle := m.theme.Bar
		marker := " "
		if i == m.selected {
			barStyle = m.theme.BarSelected
			marker = "▸"
		}

		lines = append(lines, marker+labelStyle.Render(p.Feature)+"│"+
			barStyle.Render(strings.Repeat("█", filled))+
			m.theme.BarEmpty.Render(strings.Repeat("░", barWidth-filled)))
	}

	lines = append(lines, strings.Repeat(" ", labelWidth+2)+"└"+axis(maxWeight, barWidth))
	return strings.Join(lines, "\n")
}

func (m ImportanceModel) renderTooltip() string {
	p, ok := m.Selected()
	if !ok {
		return ""
	}
	return m.theme.Tooltip.Render(Tooltip(p))
}

func (m ImportanceModel) barWidth(labelWidth int) int {
	if m.width <= 0 {
		return defaultBarWidth
	}
	// marker, label padding, axis and panel border
	return max(m.width-labelWidth-8, minBarWidth)
}

// Tooltip describes a single bar, e.g. "Square Footage: Importance 46.0%".
func Tooltip(p model.ChartDataPoint) string {
	return p.Feature + ": Importance " + format.Percent(p.Importance, 1)
}

// axis renders the value axis from 0% to the largest weight in whole percent.
func axis(maxWeight float64, width int) string {
	low := format.Percent(0, 0)
	high := format.Percent(maxWeight, 0)
	fill := width - len(low) - len(high)
	if fill < 1 {
		return low + " " + high
	}
	return low + strings.Repeat("─", fill) + high
}
