package colors

// Wave returns the Kanagawa Wave color scheme (dark theme with blue/purple accents)
func Wave() *ColorScheme {
	return &ColorScheme{
		Preset: "wave",

		Accent: "#957FB8", // oniViolet

		Background:       "#1F1F28", // sumiInk1
		ColumnBackground: "#2A2A37", // sumiInk2

		Create: "#98BB6C", // springGreen
		Edit:   "#7E9CD8", // crystalBlue
		Delete: "#FF5D62", // peachRed

		ColumnBorder:   "#54546D", // sumiInk6
		TaskBorder:     "#363646", // sumiInk4
		TaskBackground: "#2A2A37",
		SelectedBorder: "#7AA89F", // waveAqua2
		SelectedBg:     "#223249", // waveBlue1
		CarriedBorder:  "#FF9E3B", // roninYellow

		Title:  "#7E9CD8",
		Subtle: "#727169", // fujiGray
		Normal: "#DCD7BA", // fujiWhite

		StatusTodo:       "#727169",
		StatusInProgress: "#E6C384", // carpYellow
		StatusDone:       "#98BB6C",

		PriorityLow:    "#7AA89F",
		PriorityMedium: "#E6C384",
		PriorityHigh:   "#E82424", // samuraiRed

		InfoFg:    "#658594", // dragonBlue
		InfoBg:    "#252535", // winterBlue
		WarningFg: "#FF9E3B",
		WarningBg: "#49443C", // winterYellow
		ErrorFg:   "#E82424",
		ErrorBg:   "#43242B", // winterRed

		StatusBarBg:   "#957FB8",
		StatusBarText: "#1F1F28",
	}
}
