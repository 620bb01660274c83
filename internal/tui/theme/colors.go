package theme

import "github.com/thenoetrevino/taskpilot/internal/config"

// Colors holds the current theme colors, initialized by Init
var (
	Highlight      string
	Background     string
	Title          string
	Subtle         string
	Normal         string
	Create         string
	Delete         string
	ColumnBorder   string
	TaskBorder     string
	SelectedBorder string
	SelectedBg     string
	CarriedBorder  string
	TaskBg         string
	InfoFg         string
	InfoBg         string
	WarningFg      string
	WarningBg      string
	ErrorFg        string
	ErrorBg        string
	StatusBarBg    string
	StatusBarText  string

	StatusTodo       string
	StatusInProgress string
	StatusDone       string
	PriorityLow      string
	PriorityMedium   string
	PriorityHigh     string
)

func init() {
	Init(config.DefaultColorScheme())
}

// Init initializes the theme colors from the given color scheme
func Init(colors config.ColorScheme) {
	Highlight = colors.Accent
	Background = colors.Background
	Title = colors.Title
	Subtle = colors.Subtle
	Normal = colors.Normal
	Create = colors.Create
	Delete = colors.Delete
	ColumnBorder = colors.ColumnBorder
	TaskBorder = colors.TaskBorder
	SelectedBorder = colors.SelectedBorder
	SelectedBg = colors.SelectedBg
	CarriedBorder = colors.CarriedBorder
	TaskBg = colors.TaskBackground
	InfoFg = colors.InfoFg
	InfoBg = colors.InfoBg
	WarningFg = colors.WarningFg
	WarningBg = colors.WarningBg
	ErrorFg = colors.ErrorFg
	ErrorBg = colors.ErrorBg
	StatusBarBg = colors.StatusBarBg
	StatusBarText = colors.StatusBarText

	StatusTodo = colors.StatusTodo
	StatusInProgress = colors.StatusInProgress
	StatusDone = colors.StatusDone
	PriorityLow = colors.PriorityLow
	PriorityMedium = colors.PriorityMedium
	PriorityHigh = colors.PriorityHigh
}
