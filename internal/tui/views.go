package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Chrome texts.
const (
	HeaderText = "House Price Predictor"
	FooterText = "Built with Go & Bubble Tea | Machine Learning Model: Random Forest & Linear Regression"
)

// wideLayoutWidth is the width at which the panels sit side by side.
const wideLayoutWidth = 100

// panelChrome is the horizontal space taken by a panel's border and padding.
const panelChrome = 4

// View renders the entire TUI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{m.renderHeader()}
	sections = append(sections, m.renderBanners()...)

	if m.width >= wideLayoutWidth {
		sections = append(sections, m.renderWide())
	} else {
		sections = append(sections, m.renderStacked())
	}

	sections = append(sections,
		m.renderFooter(),
		m.help.View(m.keymap),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	style := m.theme.Header
	if m.width > 0 {
		style = style.Width(m.width)
	}
	return style.Render(HeaderText)
}

func (m Model) renderFooter() string {
	style := m.theme.Footer
	if m.width > 0 {
		style = style.Width(m.width)
	}
	return style.Render(FooterText)
}

// renderBanners returns the transient error and the persistent not-loaded warning.
func (m Model) renderBanners() []string {
	errStyle, warnStyle := m.theme.ErrorBanner, m.theme.WarningBanner
	if m.width > 1 {
		// Width excludes the left rule.
		errStyle = errStyle.Width(m.width - 1)
		warnStyle = warnStyle.Width(m.width - 1)
	}

	var banners []string
	if m.errMsg != "" {
		banners = append(banners, errStyle.Render(m.errMsg))
	}
	if m.health != nil && !m.health.ModelLoaded {
		banners = append(banners, warnStyle.Render(ModelNotLoaded))
	}
	return banners
}

func (m Model) renderWide() string {
	left, right := m.columnWidths()
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderFormPanel(left),
		m.renderResultsPanel(right),
	)
}

func (m Model) renderStacked() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderFormPanel(m.width),
		m.renderResultsPanel(m.width),
	)
}

// columnWidths splits the terminal into a narrow form column and a wider results column.
func (m Model) columnWidths() (int, int) {
	left := m.width * 2 / 5
	return left, m.width - left
}

func (m Model) renderFormPanel(width int) string {
	content := m.form.View()
	if m.loading {
		content = lipgloss.JoinVertical(lipgloss.Left,
			content,
			"",
			m.spinner.View()+" "+m.theme.StatusPending.Render(PredictingText),
		)
	}
	return m.panelStyle(m.focus == PanelForm, width).Render(content)
}

func (m Model) renderResultsPanel(width int) string {
	var parts []string
	if results := m.results.View(); results != "" {
		parts = append(parts, results, "")
	}
	parts = append(parts, m.importance.View())

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)
	return m.panelStyle(m.focus == PanelImportance, width).Render(content)
}

func (m Model) panelStyle(focused bool, outerWidth int) lipgloss.Style {
	style := m.theme.Panel
	if focused {
		style = m.theme.FocusedPanel
	}
	// Width excludes the border.
	if w := outerWidth - 2; w > panelChrome {
		style = style.Width(w)
	}
	return style
}

// importanceWidth is the content width available to the chart.
func (m Model) importanceWidth() int {
	width := m.width
	if m.width >= wideLayoutWidth {
		_, width = m.columnWidths()
	}
	return width - panelChrome
}
