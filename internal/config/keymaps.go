package config

// KeyMappings defines all configurable key bindings
type KeyMappings struct {
	// Tasks
	AddTask       string `yaml:"add_task"`
	EditTask      string `yaml:"edit_task"`
	DeleteTask    string `yaml:"delete_task"`
	MoveTaskLeft  string `yaml:"move_task_left"`
	MoveTaskRight string `yaml:"move_task_right"`
	ViewTask      string `yaml:"view_task"`

	// Drag and drop
	PickUpTask string `yaml:"pick_up_task"` // also drops a carried task
	CancelDrag string `yaml:"cancel_drag"`

	// Forms
	SaveForm string `yaml:"save_form"`

	// Projects
	CreateProject string `yaml:"create_project"`
	EditProject   string `yaml:"edit_project"`
	DeleteProject string `yaml:"delete_project"`
	OpenProject   string `yaml:"open_project"`

	// Navigation
	PrevColumn    string `yaml:"prev_column"`
	NextColumn    string `yaml:"next_column"`
	PrevTask      string `yaml:"prev_task"`
	NextTask      string `yaml:"next_task"`
	Back          string `yaml:"back"`
	ShowDashboard string `yaml:"show_dashboard"`
	ShowProjects  string `yaml:"show_projects"`
	ShowProfile   string `yaml:"show_profile"`

	// Account
	EditProfile string `yaml:"edit_profile"`
	SignOut     string `yaml:"sign_out"`

	// Other
	ShowHelp string `yaml:"show_help"`
	Quit     string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		// Tasks
		AddTask:       "a",
		EditTask:      "e",
		DeleteTask:    "d",
		MoveTaskLeft:  "H",
		MoveTaskRight: "L",
		ViewTask:      "enter",

		// Drag and drop
		PickUpTask: "space",
		CancelDrag: "esc",

		SaveForm: "ctrl+s",

		// Projects
		CreateProject: "n",
		EditProject:   "r",
		DeleteProject: "x",
		OpenProject:   "enter",

		// Navigation
		PrevColumn:    "h",
		NextColumn:    "l",
		PrevTask:      "k",
		NextTask:      "j",
		Back:          "esc",
		ShowDashboard: "1",
		ShowProjects:  "2",
		ShowProfile:   "3",

		// Account
		EditProfile: "e",
		SignOut:     "o",

		// Other
		ShowHelp: "?",
		Quit:     "q",
	}
}

// fields pairs every binding of k with the same binding of other
func (k *KeyMappings) fields(other *KeyMappings) [][2]*string {
	return [][2]*string{
		{&k.AddTask, &other.AddTask},
		{&k.EditTask, &other.EditTask},
		{&k.DeleteTask, &other.DeleteTask},
		{&k.MoveTaskLeft, &other.MoveTaskLeft},
		{&k.MoveTaskRight, &other.MoveTaskRight},
		{&k.ViewTask, &other.ViewTask},
		{&k.PickUpTask, &other.PickUpTask},
		{&k.CancelDrag, &other.CancelDrag},
		{&k.SaveForm, &other.SaveForm},
		{&k.CreateProject, &other.CreateProject},
		{&k.EditProject, &other.EditProject},
		{&k.DeleteProject, &other.DeleteProject},
		{&k.OpenProject, &other.OpenProject},
		{&k.PrevColumn, &other.PrevColumn},
		{&k.NextColumn, &other.NextColumn},
		{&k.PrevTask, &other.PrevTask},
		{&k.NextTask, &other.NextTask},
		{&k.Back, &other.Back},
		{&k.ShowDashboard, &other.ShowDashboard},
		{&k.ShowProjects, &other.ShowProjects},
		{&k.ShowProfile, &other.ShowProfile},
		{&k.EditProfile, &other.EditProfile},
		{&k.SignOut, &other.SignOut},
		{&k.ShowHelp, &other.ShowHelp},
		{&k.Quit, &other.Quit},
	}
}

// applyDefaults fills in missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()
	for _, pair := range k.fields(&defaults) {
		if *pair[0] == "" {
			*pair[0] = *pair[1]
		}
	}
}
