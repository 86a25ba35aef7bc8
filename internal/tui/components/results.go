package components

import (
	"strings"

	"github.com/Veraticus/appraise/internal/format"
	"github.com/Veraticus/appraise/internal/model"
	"github.com/Veraticus/appraise/internal/tui/themes"
	"github.com/charmbracelet/lipgloss"
)

// ResultsTitle heads the results panel.
const ResultsTitle = "Prediction Results"

// ResultsModel shows the most recent prediction.
type ResultsModel struct {
	prediction *model.PredictionResponse
	theme      themes.Theme
}

// NewResultsModel creates an empty results panel.
func NewResultsModel(theme themes.Theme) ResultsModel {
	return ResultsModel{theme: theme}
}

// SetPrediction replaces the displayed prediction. Nil clears the panel.
func (m ResultsModel) SetPrediction(p *model.PredictionResponse) ResultsModel {
	m.prediction = p
	return m
}

// Prediction returns the displayed prediction, if any.
func (m ResultsModel) Prediction() *model.PredictionResponse {
	return m.prediction
}

// View renders the prediction, or nothing when there is none.
func (m ResultsModel) View() string {
	if m.prediction == nil {
		return ""
	}
	p := m.prediction

	details := make([]string, 0, len(model.FeatureOrder))
	for _, fv := range p.InputFeatures.Entries() {
		details = append(details,
			m.theme.Label.Render(model.Label(fv.Key)+": ")+
				m.theme.Bold.Render(format.FeatureValue(fv.Key, fv.Value)))
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Title.Render(ResultsTitle),
		m.theme.Price.Render(format.Currency(p.PredictedPrice)),
		m.theme.Subtitle.Render("Range: "+format.Range(p.ConfidenceInterval)),
		"",
		strings.Join(details, "\n"),
		"",
		m.theme.StatusInfo.Render("Model Used: "+format.ModelLabel(p.ModelUsed)),
	)
}

// RenderPlain renders a prediction as unstyled text.
func RenderPlain(p model.PredictionResponse) string {
	var b strings.Builder
	b.WriteString(ResultsTitle + "\n\n")
	b.WriteString(format.Currency(p.PredictedPrice) + "\n")
	b.WriteString("Range: " + format.Range(p.ConfidenceInterval) + "\n\n")
	for _, fv := range p.InputFeatures.Entries() {
		b.WriteString(model.Label(fv.Key) + ": " + format.FeatureValue(fv.Key, fv.Value) + "\n")
	}
	b.WriteString("\nModel Used: " + format.ModelLabel(p.ModelUsed) + "\n")
	return b.String()
}
