package state

import "testing"

func TestDragState_CarryStaysOnBoard(t *testing.T) {
	d := NewDragState()
	d.PickUp("t1", 1)

	d.Carry(1, 3)
	d.Carry(1, 3)
	if d.Target() != 2 {
		t.Errorf("Target() after carrying right twice = %d, want 2", d.Target())
	}

	d.Carry(-5, 3)
	if d.Target() != 0 {
		t.Errorf("Target() after carrying far left = %d, want 0", d.Target())
	}
	if d.Origin() != 1 {
		t.Errorf("Origin() = %d, want 1", d.Origin())
	}
}

func TestDragState_DropResets(t *testing.T) {
	d := NewDragState()
	d.PickUp("t1", 0)
	d.Carry(1, 3)

	taskID, target := d.Drop()
	if taskID != "t1" || target != 1 {
		t.Errorf("Drop() = (%q, %d), want (t1, 1)", taskID, target)
	}
	if d.Active() {
		t.Error("Active() after Drop() = true, want false")
	}
}

func TestDragState_CarryWhileIdleIsIgnored(t *testing.T) {
	d := NewDragState()
	d.Carry(1, 3)
	if d.Active() || d.Target() != 0 {
		t.Errorf("idle Carry changed state: active=%v target=%d", d.Active(), d.Target())
	}
}

func TestDragState_Cancel(t *testing.T) {
	d := NewDragState()
	d.PickUp("t1", 2)
	d.Cancel()
	if d.Active() || d.TaskID() != "" {
		t.Errorf("after Cancel: active=%v taskID=%q", d.Active(), d.TaskID())
	}
}
