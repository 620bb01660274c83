package styles

import (
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/taskpilot/internal/config"
	"github.com/thenoetrevino/taskpilot/internal/models"
)

var (
	// Card styles
	CardStyle lipgloss.Style
	CardWidth = 80

	// Text styles
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	LabelStyle    lipgloss.Style // For field labels like "Status:", "Priority:"
	ValueStyle    lipgloss.Style // For field values
	SectionStyle  lipgloss.Style // For section headers like "Description"

	// Notice styles
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style

	statusStyles   map[models.TaskStatus]lipgloss.Style
	priorityStyles map[models.TaskPriority]lipgloss.Style
)

func init() {
	Init(config.DefaultColorScheme())
}

// Init initializes all CLI styles with the given color scheme
func Init(colors config.ColorScheme) {
	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colors.Accent)).
		Padding(1, 2).
		Width(CardWidth)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Title))

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Subtle))

	LabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Accent))

	ValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Normal))

	SectionStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Accent)).
		Bold(true).
		MarginTop(1)

	SuccessStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.InfoFg)).
		Background(lipgloss.Color(colors.InfoBg)).
		Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.ErrorFg)).
		Background(lipgloss.Color(colors.ErrorBg)).
		Padding(0, 1)

	WarningStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.WarningFg)).
		Background(lipgloss.Color(colors.WarningBg)).
		Padding(0, 1)

	statusStyles = map[models.TaskStatus]lipgloss.Style{
		models.StatusTodo:       badge(colors.StatusTodo),
		models.StatusInProgress: badge(colors.StatusInProgress),
		models.StatusDone:       badge(colors.StatusDone),
	}
	priorityStyles = map[models.TaskPriority]lipgloss.Style{
		models.PriorityLow:    badge(colors.PriorityLow),
		models.PriorityMedium: badge(colors.PriorityMedium),
		models.PriorityHigh:   badge(colors.PriorityHigh),
	}
}

func badge(color string) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color))
}

// Status renders a status in its column color.
func Status(s models.TaskStatus) string {
	if style, ok := statusStyles[s]; ok {
		return style.Render(s.Title())
	}
	return s.Title()
}

// Priority renders a priority in its badge color.
func Priority(p models.TaskPriority) string {
	if style, ok := priorityStyles[p]; ok {
		return style.Render(p.Title())
	}
	return p.Title()
}
