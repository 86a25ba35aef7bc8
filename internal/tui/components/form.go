package components

import (
	"context"
	"time"

	"github.com/Veraticus/appraise/internal/api"
	"github.com/Veraticus/appraise/internal/common"
	"github.com/Veraticus/appraise/internal/form"
	"github.com/Veraticus/appraise/internal/model"
	"github.com/Veraticus/appraise/internal/tui/themes"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FallbackErrorMessage is shown when a failed prediction carries no message of its own.
const FallbackErrorMessage = "An error occurred"

// Submit button labels.
const (
	SubmitLabel     = "Predict Price"
	SubmittingLabel = "Predicting..."
)

// FormPhase is the submission lifecycle of the form.
type FormPhase int

const (
	PhaseIdle FormPhase = iota
	PhaseSubmitting
	PhaseSettled
)

// FormOutcome records how the last submission attempt ended.
type FormOutcome int

const (
	OutcomeNone FormOutcome = iota
	OutcomeSucceeded
	OutcomeRejected
	OutcomeFailed
)

// FormKeyMap defines the keys the form reacts to.
type FormKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Enter  key.Binding
	Submit key.Binding
}

// DefaultFormKeyMap returns the default form bindings.
func DefaultFormKeyMap() FormKeyMap {
	return FormKeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab/↓", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab/↑", "previous field"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "next / submit"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "predict"),
		),
	}
}

// FormModel collects the six house features and submits them for prediction.
type FormModel struct {
	client   api.Client
	errors   form.Errors
	keys     FormKeyMap
	inputs   []textinput.Model
	theme    themes.Theme
	timeout  time.Duration
	phase    FormPhase
	outcome  FormOutcome
	cursor   int
	disabled bool
	focused  bool
}

// NewFormModel creates a form pre-filled with the default house.
func NewFormModel(client api.Client, theme themes.Theme, timeout time.Duration) FormModel {
	if timeout <= 0 {
		timeout = api.DefaultTimeout
	}

	defaults := form.DefaultValues()
	inputs := make([]textinput.Model, len(model.FeatureOrder))
	for i, field := range model.FeatureOrder {
		ti := textinput.New()
		ti.Prompt = "› "
		ti.CharLimit = 10
		ti.Width = 12
		ti.Placeholder = defaults[field]
		ti.SetValue(defaults[field])
		ti.CursorEnd()
		inputs[i] = ti
	}
	inputs[0].Focus()

	return FormModel{
		client:  client,
		theme:   theme,
		timeout: timeout,
		keys:    DefaultFormKeyMap(),
		inputs:  inputs,
		focused: true,
	}
}

// Init returns the cursor blink command.
func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case PredictionSettledMsg:
		return m.settle(msg)

	case tea.KeyMsg:
		if m.Disabled() || !m.focused {
			return m, nil
		}
		return m.handleKey(msg)
	}

	// Cursor blinks and the like.
	var cmd tea.Cmd
	m.inputs[m.cursor], cmd = m.inputs[m.cursor].Update(msg)
	return m, cmd
}

func (m FormModel) handleKey(msg tea.KeyMsg) (FormModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.Submit()

	case key.Matches(msg, m.keys.Enter):
		if m.AtLast() {
			return m.Submit()
		}
		return m.moveFocus(1), nil

	case key.Matches(msg, m.keys.Next):
		return m.moveFocus(1), nil

	case key.Matches(msg, m.keys.Prev):
		return m.moveFocus(-1), nil
	}

	var cmd tea.Cmd
	m.inputs[m.cursor], cmd = m.inputs[m.cursor].Update(msg)
	m.revalidate(m.cursor)
	return m, cmd
}

// Submit validates the fields and, when they pass, starts a prediction request.
// It does nothing while the form is disabled or a request is in flight.
func (m FormModel) Submit() (FormModel, tea.Cmd) {
	if m.Disabled() {
		return m, nil
	}

	features, errs := form.Validate(m.Values())
	m.errors = errs
	if errs.HasErrors() {
		m.phase = PhaseSettled
		m.outcome = OutcomeRejected
		if field, _, ok := errs.First(); ok {
			m = m.focusField(fieldIndex(field))
		}
		return m, nil
	}

	m.phase = PhaseSubmitting
	m.blurAll()

	return m, tea.Sequence(
		emit(LoadingMsg{Loading: true}),
		m.predict(features),
	)
}

func (m FormModel) predict(features model.HouseFeatures) tea.Cmd {
	client := m.client
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		resp, err := client.Predict(ctx, features)
		return PredictionSettledMsg{Response: resp, Err: err}
	}
}

func (m FormModel) settle(msg PredictionSettledMsg) (FormModel, tea.Cmd) {
	if m.phase != PhaseSubmitting {
		return m, nil
	}

	m.phase = PhaseSettled
	if !m.disabled && m.focused {
		m.inputs[m.cursor].Focus()
	}

	var result tea.Msg
	if msg.Err != nil {
		m.outcome = OutcomeFailed
		result = PredictionErrorMsg{Message: common.MessageOf(msg.Err, FallbackErrorMessage)}
	} else {
		m.outcome = OutcomeSucceeded
		result = PredictionReceivedMsg{Response: msg.Response}
	}

	return m, tea.Sequence(
		emit(result),
		emit(LoadingMsg{Loading: false}),
	)
}

// revalidate refreshes the message of a field that already shows an error.
func (m *FormModel) revalidate(i int) {
	field := model.FeatureOrder[i]
	if _, shown := m.errors[field]; !shown {
		return
	}
	rule, ok := form.RuleFor(field)
	if !ok {
		return
	}
	if _, msg := form.ValidateField(rule, m.inputs[i].Value()); msg != "" {
		m.errors[field] = msg
	} else {
		delete(m.errors, field)
	}
}

// SetDisabled applies the external gate. A disabled form ignores input.
func (m FormModel) SetDisabled(disabled bool) FormModel {
	m.disabled = disabled
	if disabled {
		m.blurAll()
	} else if m.focused && m.phase != PhaseSubmitting {
		m.inputs[m.cursor].Focus()
	}
	return m
}

// Focus gives the form keyboard focus at its current field.
func (m FormModel) Focus() FormModel {
	m.focused = true
	if !m.Disabled() {
		m.inputs[m.cursor].Focus()
	}
	return m
}

// FocusFirst focuses the first field.
func (m FormModel) FocusFirst() FormModel {
	m.blurAll()
	m.cursor = 0
	return m.Focus()
}

// FocusLast focuses the last field.
func (m FormModel) FocusLast() FormModel {
	m.blurAll()
	m.cursor = len(m.inputs) - 1
	return m.Focus()
}

// Blur removes keyboard focus from the form.
func (m FormModel) Blur() FormModel {
	m.focused = false
	m.blurAll()
	return m
}

func (m *FormModel) blurAll() {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

func (m FormModel) moveFocus(delta int) FormModel {
	next := (m.cursor + delta + len(m.inputs)) % len(m.inputs)
	return m.focusField(next)
}

func (m FormModel) focusField(i int) FormModel {
	if i < 0 || i >= len(m.inputs) {
		return m
	}
	m.inputs[m.cursor].Blur()
	m.cursor = i
	if m.focused && !m.Disabled() {
		m.inputs[m.cursor].Focus()
	}
	return m
}

// Disabled reports whether submission is currently blocked.
func (m FormModel) Disabled() bool {
	return m.disabled || m.phase == PhaseSubmitting
}

// Focused reports whether the form holds keyboard focus.
func (m FormModel) Focused() bool { return m.focused }

// AtFirst reports whether the first field is focused.
func (m FormModel) AtFirst() bool { return m.cursor == 0 }

// AtLast reports whether the last field is focused.
func (m FormModel) AtLast() bool { return m.cursor == len(m.inputs)-1 }

// Cursor returns the focused field.
func (m FormModel) Cursor() model.FeatureKey { return model.FeatureOrder[m.cursor] }

// Phase returns the submission phase.
func (m FormModel) Phase() FormPhase { return m.phase }

// Outcome returns how the last submission ended.
func (m FormModel) Outcome() FormOutcome { return m.outcome }

// Errors returns the field messages from the last validation.
func (m FormModel) Errors() form.Errors { return m.errors }

// Values returns the raw text of every field.
func (m FormModel) Values() map[model.FeatureKey]string {
	values := make(map[model.FeatureKey]string, len(m.inputs))
	for i, field := range model.FeatureOrder {
		values[field] = m.inputs[i].Value()
	}
	return values
}

// SetValue replaces the text of one field.
func (m FormModel) SetValue(field model.FeatureKey, value string) FormModel {
	if i := fieldIndex(field); i >= 0 {
		m.inputs[i].SetValue(value)
		m.inputs[i].CursorEnd()
	}
	return m
}

// KeyMap returns the form bindings for help rendering.
func (m FormModel) KeyMap() FormKeyMap { return m.keys }

// View renders the form.
func (m FormModel) View() string {
	lines := []string{m.theme.Title.Render("House Details")}

	for i, field := range model.FeatureOrder {
		labelStyle := m.theme.Label
		if i == m.cursor && m.focused && !m.Disabled() {
			labelStyle = m.theme.FocusedLabel
		}
		lines = append(lines, labelStyle.Render(model.Label(field)))

		input := m.inputs[i].View()
		if m.Disabled() {
			input = m.theme.StatusPending.Render("  " + m.inputs[i].Value())
		}
		lines = append(lines, input)

		if msg, ok := m.errors[field]; ok {
			lines = append(lines, m.theme.FieldError.Render("  "+msg))
		}
	}

	lines = append(lines, "", m.renderButton())

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m FormModel) renderButton() string {
	label := SubmitLabel
	if m.phase == PhaseSubmitting {
		label = SubmittingLabel
	}
	if m.Disabled() {
		return m.theme.ButtonDisabled.Render(label)
	}
	return m.theme.Button.Render(label)
}

func fieldIndex(field model.FeatureKey) int {
	for i, k := range model.FeatureOrder {
		if k == field {
			return i
		}
	}
	return -1
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
