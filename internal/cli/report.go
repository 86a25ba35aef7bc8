package cli

import (
	"fmt"
	"strings"

	"github.com/Veraticus/appraise/internal/format"
	"github.com/Veraticus/appraise/internal/model"
	"github.com/Veraticus/appraise/internal/tui/components"
	"github.com/charmbracelet/lipgloss"
)

// reportBarWidth is the length of the longest importance bar.
const reportBarWidth = 40

// RenderImportance renders the importance ranking as a text bar chart, or the
// not-available notice when the model reports no mapping.
func RenderImportance(resp model.FeatureImportanceResponse) string {
	data := model.NewImportanceData(resp)
	if data == nil {
		return FormatWarning(components.ImportanceUnavailable) + "\n" +
			SubtleStyle.Render(components.ImportanceTreeOnly) + "\n"
	}

	var b strings.Builder
	b.WriteString(FormatTitle(components.ImportanceTitle))
	b.WriteString("\n")

	if len(data.ChartData) == 0 {
		b.WriteString(SubtleStyle.Render(components.ImportanceNoWeights) + "\n")
	}

	labelWidth := 0
	for _, p := range data.ChartData {
		labelWidth = max(labelWidth, lipgloss.Width(p.Feature))
	}

	maxWeight := data.MaxImportance()
	for _, p := range data.ChartData {
		filled := 0
		if maxWeight > 0 {
			filled = int(p.Importance/maxWeight*reportBarWidth + 0.5)
		}
		fmt.Fprintf(&b, "%-*s %s %s\n",
			labelWidth, p.Feature,
			BarStyle.Render(strings.Repeat("█", filled))+strings.Repeat(" ", reportBarWidth-filled),
			format.Percent(p.Importance, 1),
		)
	}

	fmt.Fprintf(&b, "\nModel: %s\n", format.ModelLabel(data.ModelType))
	return b.String()
}

// RenderHealth renders a model health report.
func RenderHealth(h model.ModelHealthResponse) string {
	var b strings.Builder

	status := FormatSuccess("Model is loaded")
	if !h.ModelLoaded {
		status = FormatWarning("Model is not loaded")
	}
	b.WriteString(status + "\n")

	modelType := "none"
	if t := h.ModelTypeOrEmpty(); t != "" {
		modelType = format.ModelLabel(t)
	}
	fmt.Fprintf(&b, "Status:     %s\n", h.Status)
	fmt.Fprintf(&b, "Model type: %s\n", modelType)
	return b.String()
}
