package models

import "testing"

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusInProgress, StatusCompleted} {
		if !ValidStatus(s) {
			t.Errorf("%q must be valid", s)
		}
	}
	for _, s := range []string{"", "done", "PENDING", "archived"} {
		if ValidStatus(s) {
			t.Errorf("%q must be invalid", s)
		}
	}
}

func TestValidPriority(t *testing.T) {
	for p := PriorityLow; p <= PriorityHigh; p++ {
		if !ValidPriority(p) {
			t.Errorf("%d must be valid", p)
		}
	}
	for _, p := range []int{0, -1, 4, 100} {
		if ValidPriority(p) {
			t.Errorf("%d must be invalid", p)
		}
	}
}

func TestCompletedDerivedFromStatus(t *testing.T) {
	task := &Task{Status: StatusPending}
	if task.Completed() {
		t.Fatal("pending task must not be completed")
	}
	task.Status = StatusInProgress
	if task.Completed() {
		t.Fatal("in-progress task must not be completed")
	}
	task.Status = StatusCompleted
	if !task.Completed() {
		t.Fatal("completed status must derive completed")
	}
}
