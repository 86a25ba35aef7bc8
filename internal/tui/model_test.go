package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/appraise/internal/api"
	"github.com/Veraticus/appraise/internal/apitest"
	"github.com/Veraticus/appraise/internal/model"
	"github.com/Veraticus/appraise/internal/tui/components"
	tuitest "github.com/Veraticus/appraise/internal/tui/testing"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testErrorTimeout = 10 * time.Millisecond

func fixedPrice(f model.HouseFeatures) model.PredictionResponse {
	return model.PredictionResponse{
		PredictedPrice:     350000,
		ConfidenceInterval: model.ConfidenceInterval{Lower: 320000, Upper: 380000},
		ModelUsed:          apitest.ModelRandomForest,
		InputFeatures:      f,
	}
}

// newTestModel builds a shell backed by a fake service.
func newTestModel(t *testing.T, width int, opts ...apitest.Option) (Model, *apitest.Server) {
	t.Helper()

	srv, ts := apitest.NewTestServer(t, opts...)
	client, err := api.NewClient(api.Config{BaseURL: ts.URL, Timeout: time.Second})
	require.NoError(t, err)

	cfg := defaultConfig()
	for _, opt := range []Option{
		WithClient(client),
		WithSize(width, 40),
		WithErrorTimeout(testErrorTimeout),
		WithTimeout(time.Second),
	} {
		opt(&cfg)
	}
	return newModel(cfg), srv
}

// start runs the startup fetches and feeds their results back.
func start(t *testing.T, m Model) (Model, []tea.Cmd) {
	t.Helper()

	var fed []tea.Msg
	for _, msg := range tuitest.Collect(m.Init()) {
		switch msg.(type) {
		case healthCheckedMsg, components.ImportanceLoadedMsg:
			fed = append(fed, msg)
		}
	}
	require.Len(t, fed, 2)

	return feed(m, fed...)
}

func feed(m Model, msgs ...tea.Msg) (Model, []tea.Cmd) {
	next, cmds := tuitest.NewTestRenderer().Feed(m, msgs...)
	return next.(Model), cmds
}

func view(m Model) string {
	return tuitest.StripANSI(m.View())
}

func TestModel_GatedUntilHealthy(t *testing.T) {
	m, _ := newTestModel(t, 120)
	assert.True(t, m.Form().Disabled())

	m, cmds := start(t, m)
	assert.Empty(t, cmds)

	require.NotNil(t, m.Health())
	assert.True(t, m.Health().ModelLoaded)
	assert.False(t, m.Form().Disabled())

	out := view(m)
	assert.Contains(t, out, HeaderText)
	assert.Contains(t, out, FooterText)
	assert.Contains(t, out, "House Details")
	assert.Contains(t, out, "Feature Importance")
	assert.NotContains(t, out, ModelNotLoaded)
	assert.NotContains(t, out, components.ResultsTitle)
}

func TestModel_ModelNotLoaded(t *testing.T) {
	m, srv := newTestModel(t, 120, apitest.WithLoaded(false))
	m, _ = start(t, m)

	assert.True(t, m.Form().Disabled())
	assert.Contains(t, view(m), ModelNotLoaded)

	// Submission is refused while the model is missing.
	m, cmds := feed(m, tuitest.KeyCtrl("s"))
	assert.Empty(t, cmds)
	assert.Zero(t, srv.Calls(api.PredictPath))

	// A re-check picks up the newly loaded model.
	srv.SetLoaded(true)
	m, cmds = feed(m, tuitest.KeyCtrl("r"))
	require.Len(t, cmds, 1)
	m, _ = feed(m, tuitest.Collect(cmds[0])...)

	assert.False(t, m.Form().Disabled())
	assert.NotContains(t, view(m), ModelNotLoaded)
}

func TestModel_HealthCheckFailure(t *testing.T) {
	m, srv := newTestModel(t, 120)
	srv.Fail(api.ModelHealthPath, apitest.Failure{Status: 503})

	var health tea.Msg
	for _, msg := range tuitest.Collect(m.checkHealth()) {
		health = msg
	}
	require.IsType(t, healthCheckedMsg{}, health)

	m, cmds := feed(m, health)
	assert.Equal(t, HealthCheckFailed, m.Error())
	assert.Nil(t, m.Health())
	assert.True(t, m.Form().Disabled())
	assert.Contains(t, view(m), HealthCheckFailed)
	// No health report means no warning either.
	assert.NotContains(t, view(m), ModelNotLoaded)

	require.Len(t, cmds, 1)
	m, _ = feed(m, tuitest.Collect(cmds[0])...)
	assert.Empty(t, m.Error())
}

func TestModel_RecheckFailureDisablesForm(t *testing.T) {
	m, srv := newTestModel(t, 120)
	m, _ = start(t, m)
	require.NotNil(t, m.Health())
	require.False(t, m.Form().Disabled())

	srv.Fail(api.ModelHealthPath, apitest.Failure{Status: 503})
	m, cmds := feed(m, tuitest.KeyCtrl("r"))
	require.Len(t, cmds, 1)
	m, _ = feed(m, tuitest.Collect(cmds[0])...)

	assert.Equal(t, HealthCheckFailed, m.Error())
	assert.Nil(t, m.Health())
	assert.True(t, m.Form().Disabled())

	_, cmds = feed(m, tuitest.KeyCtrl("s"))
	assert.Empty(t, cmds)
	assert.Zero(t, srv.Calls(api.PredictPath))
}

func TestModel_PredictionFlow(t *testing.T) {
	m, srv := newTestModel(t, 120, apitest.WithPredictFunc(fixedPrice))
	m, _ = start(t, m)

	m, cmds := feed(m, tuitest.KeyCtrl("s"))
	require.Len(t, cmds, 1)

	msgs := tuitest.Collect(cmds[0])
	require.Len(t, msgs, 2)
	assert.Equal(t, components.LoadingMsg{Loading: true}, msgs[0])
	require.IsType(t, components.PredictionSettledMsg{}, msgs[1])

	m, _ = feed(m, msgs[0])
	assert.True(t, m.Loading())
	assert.Contains(t, view(m), PredictingText)
	assert.Contains(t, view(m), components.SubmittingLabel)

	m, cmds = feed(m, msgs[1])
	require.Len(t, cmds, 1)
	m, _ = feed(m, tuitest.Collect(cmds[0])...)

	assert.False(t, m.Loading())
	require.NotNil(t, m.Prediction())
	assert.InDelta(t, 350000, m.Prediction().PredictedPrice, 0.001)
	assert.Equal(t, 1, srv.Calls(api.PredictPath))

	out := view(m)
	assert.NotContains(t, out, PredictingText)
	assert.True(t, tuitest.ContainsInOrder(out, components.ResultsTitle, "$350,000", "Range: $320,000 - $380,000", "Model Used: RANDOM FOREST"), out)
	assert.Empty(t, m.Error())
}

func TestModel_PredictionFailure(t *testing.T) {
	tests := []struct {
		name    string
		failure apitest.Failure
		want    string
	}{
		{name: "service detail", failure: apitest.Failure{Status: 500, Detail: "Model not trained"}, want: "Model not trained"},
		{name: "no detail", failure: apitest.Failure{Status: 500}, want: "Failed to predict house price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, srv := newTestModel(t, 120)
			m, _ = start(t, m)
			srv.Fail(api.PredictPath, tt.failure)

			m, cmds := feed(m, tuitest.KeyCtrl("s"))
			require.Len(t, cmds, 1)
			msgs := tuitest.Collect(cmds[0])
			require.Len(t, msgs, 2)
			m, _ = feed(m, msgs[0])
			m, cmds = feed(m, msgs[1])
			require.Len(t, cmds, 1)

			var dismiss []tea.Cmd
			m, dismiss = feed(m, tuitest.Collect(cmds[0])...)

			assert.Equal(t, tt.want, m.Error())
			assert.Contains(t, view(m), tt.want)
			assert.False(t, m.Loading())
			assert.Nil(t, m.Prediction())
			assert.False(t, m.Form().Disabled())

			require.Len(t, dismiss, 1)
			m, _ = feed(m, tuitest.Collect(dismiss[0])...)
			assert.Empty(t, m.Error())
		})
	}
}

func TestModel_ErrorDismissKeepsNewerError(t *testing.T) {
	m, _ := newTestModel(t, 120)

	m, first := feed(m, components.PredictionErrorMsg{Message: "first"})
	m, second := feed(m, components.PredictionErrorMsg{Message: "second"})
	require.Len(t, first, 1)
	require.Len(t, second, 1)

	// The first timer fires but a newer error is showing.
	m, _ = feed(m, tuitest.Collect(first[0])...)
	assert.Equal(t, "second", m.Error())

	m, _ = feed(m, tuitest.Collect(second[0])...)
	assert.Empty(t, m.Error())
}

func TestModel_ErrorDismissDelay(t *testing.T) {
	assert.Equal(t, 5*time.Second, defaultConfig().ErrorTimeout)

	m, _ := newTestModel(t, 120)
	m, cmds := feed(m, components.PredictionErrorMsg{Message: "boom"})
	require.Len(t, cmds, 1)

	began := time.Now()
	msgs := tuitest.Collect(cmds[0])
	assert.GreaterOrEqual(t, time.Since(began), testErrorTimeout)
	assert.Equal(t, []tea.Msg{dismissErrorMsg{seq: 1}}, msgs)
}

func TestModel_Layout(t *testing.T) {
	tests := []struct {
		name       string
		width      int
		sideBySide bool
	}{
		{name: "wide", width: 120, sideBySide: true},
		{name: "at breakpoint", width: wideLayoutWidth, sideBySide: true},
		{name: "narrow", width: 80, sideBySide: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel(t, 40)
			m, _ = start(t, m)
			m, _ = feed(m, tuitest.WindowSize(tt.width, 50))

			out := view(m)
			form := tuitest.IndexOfLine(out, "House Details")
			chart := tuitest.IndexOfLine(out, "Feature Importance")
			require.NotEqual(t, -1, form)
			require.NotEqual(t, -1, chart)

			if tt.sideBySide {
				assert.Equal(t, form, chart)
			} else {
				assert.Less(t, form, chart)
			}
		})
	}
}

func TestModel_FocusRing(t *testing.T) {
	m, _ := newTestModel(t, 120)
	m, _ = start(t, m)
	require.Equal(t, PanelForm, m.FocusedPanel())

	// Shift+Tab on the first field jumps to the chart.
	m, _ = feed(m, tuitest.KeyShiftTab())
	assert.Equal(t, PanelImportance, m.FocusedPanel())
	assert.False(t, m.Form().Focused())

	// Tab from the chart returns to the first field.
	m, _ = feed(m, tuitest.KeyTab())
	assert.Equal(t, PanelForm, m.FocusedPanel())
	assert.Equal(t, model.FeatureSquareFootage, m.Form().Cursor())

	// Tab walks the fields before leaving the form.
	for range len(model.FeatureOrder) - 1 {
		m, _ = feed(m, tuitest.KeyTab())
		assert.Equal(t, PanelForm, m.FocusedPanel())
	}
	assert.True(t, m.Form().AtLast())

	m, _ = feed(m, tuitest.KeyTab())
	assert.Equal(t, PanelImportance, m.FocusedPanel())

	// Arrow keys now move through the bars.
	m, _ = feed(m, tuitest.KeyDown())
	assert.Contains(t, view(m), "Location Score (1-10): Importance 21.0%")

	m, _ = feed(m, tuitest.KeyShiftTab())
	assert.Equal(t, PanelForm, m.FocusedPanel())
	assert.True(t, m.Form().AtLast())
}

func TestModel_FocusStaysInFormWithoutChart(t *testing.T) {
	m, _ := newTestModel(t, 120, apitest.WithModelType(apitest.ModelLinearRegression))
	m, _ = start(t, m)

	for range len(model.FeatureOrder) {
		m, _ = feed(m, tuitest.KeyTab())
		assert.Equal(t, PanelForm, m.FocusedPanel())
	}
	// The form wraps around.
	assert.True(t, m.Form().AtFirst())
	assert.Contains(t, view(m), components.ImportanceUnavailable)
}

func TestModel_SubmitFromChart(t *testing.T) {
	m, srv := newTestModel(t, 120, apitest.WithPredictFunc(fixedPrice))
	m, _ = start(t, m)
	m, _ = feed(m, tuitest.KeyShiftTab())
	require.Equal(t, PanelImportance, m.FocusedPanel())

	_, cmds := feed(m, tuitest.KeyCtrl("s"))
	require.Len(t, cmds, 1)
	tuitest.Collect(cmds[0])
	assert.Equal(t, 1, srv.Calls(api.PredictPath))
}

func TestModel_Help(t *testing.T) {
	m, _ := newTestModel(t, 120)
	assert.NotContains(t, view(m), "re-check model")

	m, _ = feed(m, tuitest.KeyPress("?"))
	assert.Contains(t, view(m), "re-check model")

	// Esc closes help instead of quitting.
	m, cmds := feed(m, tuitest.KeyEsc())
	assert.Empty(t, cmds)
	assert.NotContains(t, view(m), "re-check model")
	assert.NotEmpty(t, view(m))
}

func TestModel_Quit(t *testing.T) {
	for _, msg := range []tea.KeyMsg{tuitest.KeyCtrl("c"), tuitest.KeyEsc()} {
		t.Run(msg.String(), func(t *testing.T) {
			m, _ := newTestModel(t, 120)
			m, cmds := feed(m, msg)

			require.Len(t, cmds, 1)
			assert.Equal(t, []tea.Msg{tea.QuitMsg{}}, tuitest.Collect(cmds[0]))
			assert.Empty(t, m.View())
		})
	}
}

func TestModel_ImportanceWidthFollowsLayout(t *testing.T) {
	m, _ := newTestModel(t, 120)
	m, _ = start(t, m)

	_, right := m.columnWidths()
	assert.Equal(t, right-panelChrome, m.importanceWidth())

	m, _ = feed(m, tuitest.WindowSize(80, 40))
	assert.Equal(t, 80-panelChrome, m.importanceWidth())

	for _, line := range strings.Split(view(m), "\n") {
		assert.LessOrEqual(t, len([]rune(strings.TrimRight(line, " "))), 80, line)
	}
}
