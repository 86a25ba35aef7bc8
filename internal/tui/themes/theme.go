package themes

import "github.com/charmbracelet/lipgloss"

// Palette holds the colors a theme is built from.
type Palette struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Info       lipgloss.Color
	Background lipgloss.Color
	Foreground lipgloss.Color
	Subtle     lipgloss.Color
	Border     lipgloss.Color
	Muted      lipgloss.Color
}

// Theme defines the visual style for the TUI.
type Theme struct {
	Header         lipgloss.Style
	Footer         lipgloss.Style
	Title          lipgloss.Style
	Subtitle       lipgloss.Style
	Normal         lipgloss.Style
	Bold           lipgloss.Style
	Label          lipgloss.Style
	FocusedLabel   lipgloss.Style
	FieldError     lipgloss.Style
	Button         lipgloss.Style
	ButtonDisabled lipgloss.Style
	Price          lipgloss.Style
	Bar            lipgloss.Style
	BarSelected    lipgloss.Style
	BarEmpty       lipgloss.Style
	Tooltip        lipgloss.Style
	ErrorBanner    lipgloss.Style
	WarningBanner  lipgloss.Style
	StatusInfo     lipgloss.Style
	StatusPending  lipgloss.Style
	Panel          lipgloss.Style
	FocusedPanel   lipgloss.Style
	Palette        Palette
}

// Default is the default theme.
var Default = newTheme(Palette{
	Primary:    lipgloss.Color("#2563eb"),
	Secondary:  lipgloss.Color("#60a5fa"),
	Success:    lipgloss.Color("#10b981"),
	Warning:    lipgloss.Color("#f59e0b"),
	Error:      lipgloss.Color("#ef4444"),
	Info:       lipgloss.Color("#3b82f6"),
	Background: lipgloss.Color("#1a1a1a"),
	Foreground: lipgloss.Color("#fafafa"),
	Subtle:     lipgloss.Color("#a3a3a3"),
	Border:     lipgloss.Color("#404040"),
	Muted:      lipgloss.Color("#737373"),
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = newTheme(Palette{
	Primary:    lipgloss.Color("#89b4fa"),
	Secondary:  lipgloss.Color("#b4befe"),
	Success:    lipgloss.Color("#a6e3a1"),
	Warning:    lipgloss.Color("#f9e2af"),
	Error:      lipgloss.Color("#f38ba8"),
	Info:       lipgloss.Color("#89dceb"),
	Background: lipgloss.Color("#1e1e2e"),
	Foreground: lipgloss.Color("#cdd6f4"),
	Subtle:     lipgloss.Color("#a6adc8"),
	Border:     lipgloss.Color("#45475a"),
	Muted:      lipgloss.Color("#6c7086"),
})

func newTheme(p Palette) Theme {
	return Theme{
		Palette: p,

		// Chrome
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Foreground).
			Background(p.Primary).
			Padding(0, 2),
		Footer: lipgloss.NewStyle().
			Foreground(p.Muted).
			Italic(true),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
		FocusedPanel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Primary).
			Padding(0, 1),

		// Text
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Foreground).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(p.Subtle),
		Normal: lipgloss.NewStyle().
			Foreground(p.Foreground),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Foreground),

		// Form
		Label: lipgloss.NewStyle().
			Foreground(p.Subtle),
		FocusedLabel: lipgloss.NewStyle().
			Foreground(p.Primary).
			Bold(true),
		FieldError: lipgloss.NewStyle().
			Foreground(p.Error),
		Button: lipgloss.NewStyle().
			Foreground(p.Foreground).
			Background(p.Primary).
			Bold(true).
			Padding(0, 2),
		ButtonDisabled: lipgloss.NewStyle().
			Foreground(p.Muted).
			Background(p.Border).
			Padding(0, 2),

		// Results
		Price: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Success),

		// Chart
		Bar: lipgloss.NewStyle().
			Foreground(p.Secondary),
		BarSelected: lipgloss.NewStyle().
			Foreground(p.Primary).
			Bold(true),
		BarEmpty: lipgloss.NewStyle().
			Foreground(p.Border),
		Tooltip: lipgloss.NewStyle().
			Foreground(p.Info).
			Bold(true),

		// Status
		ErrorBanner: lipgloss.NewStyle().
			Foreground(p.Error).
			Bold(true).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(p.Error).
			PaddingLeft(1),
		WarningBanner: lipgloss.NewStyle().
			Foreground(p.Warning).
			Bold(true).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(p.Warning).
			PaddingLeft(1),
		StatusInfo: lipgloss.NewStyle().
			Foreground(p.Info).
			Bold(true),
		StatusPending: lipgloss.NewStyle().
			Foreground(p.Muted).
			Italic(true),
	}
}

// Names lists the selectable themes.
var Names = []string{"default", "catppuccin-mocha"}

// GetTheme returns a theme by name, falling back to Default.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}

// Valid reports whether name is a known theme.
func Valid(name string) bool {
	for _, n := range Names {
		if n == name {
			return true
		}
	}
	return false
}
