package state

// DragState tracks a task card picked up on the board and carried across
// columns. Columns are referred to by index into board.Columns().
type DragState struct {
	active bool
	taskID string
	origin int
	target int
}

// NewDragState creates an idle DragState.
func NewDragState() *DragState {
	return &DragState{}
}

// PickUp starts carrying taskID out of column origin.
func (s *DragState) PickUp(taskID string, origin int) {
	s.active = true
	s.taskID = taskID
	s.origin = origin
	s.target = origin
}

// Active reports whether a card is being carried.
func (s *DragState) Active() bool {
	return s.active
}

// TaskID returns the carried task, empty when idle.
func (s *DragState) TaskID() string {
	return s.taskID
}

// Origin returns the column the card was picked up from.
func (s *DragState) Origin() int {
	return s.origin
}

// Target returns the column the card hovers over.
func (s *DragState) Target() int {
	return s.target
}

// Carry moves the card delta columns, staying within [0, columns).
func (s *DragState) Carry(delta, columns int) {
	if !s.active {
		return
	}
	s.target = clamp(s.target+delta, columns)
}

// Drop ends the drag and returns the carried task and the column it was
// dropped on.
func (s *DragState) Drop() (taskID string, target int) {
	taskID, target = s.taskID, s.target
	s.Cancel()
	return taskID, target
}

// Cancel ends the drag without a drop.
func (s *DragState) Cancel() {
	*s = DragState{}
}
