package task

import (
	"fmt"

	"github.com/pomotrack/pomotrack/internal/core/model"
)

// List holds the user's tasks together with the single selected task a
// work session runs against. Completed tasks are never selectable, and
// completing or removing the selected task clears the selection.
type List struct {
	tasks        []model.Task
	selectedID   int64
	hasSelection bool
}

// NewList creates an empty list
func NewList() *List {
	return &List{}
}

// Replace swaps in a fresh task snapshot from the server. The current
// selection survives only while it still points at an incomplete task.
func (l *List) Replace(tasks []model.Task) {
	l.tasks = tasks

	if !l.hasSelection {
		return
	}
	for _, t := range tasks {
		if t.ID == l.selectedID && !t.Completed {
			return
		}
	}
	l.clearSelection()
}

// Tasks returns the current snapshot
func (l *List) Tasks() []model.Task {
	return l.tasks
}

// Select marks the given task as the one work sessions run against
func (l *List) Select(taskID int64) error {
	for _, t := range l.tasks {
		if t.ID != taskID {
			continue
		}
		if t.Completed {
			return fmt.Errorf("task %d is already completed", taskID)
		}
		l.selectedID = taskID
		l.hasSelection = true
		return nil
	}
	return fmt.Errorf("task %d not found", taskID)
}

// Selected returns the selected task, if any
func (l *List) Selected() (model.Task, bool) {
	if !l.hasSelection {
		return model.Task{}, false
	}
	for _, t := range l.tasks {
		if t.ID == l.selectedID {
			return t, true
		}
	}
	return model.Task{}, false
}

// SelectedTaskID returns the selected task id, if any
func (l *List) SelectedTaskID() (int64, bool) {
	if !l.hasSelection {
		return 0, false
	}
	return l.selectedID, true
}

// IncompleteCount returns the number of tasks still open
func (l *List) IncompleteCount() int {
	count := 0
	for _, t := range l.tasks {
		if !t.Completed {
			count++
		}
	}
	return count
}

// MarkCompleted flags a task as done locally, clearing the selection
// when it was the selected one
func (l *List) MarkCompleted(taskID int64) {
	for i := range l.tasks {
		if l.tasks[i].ID == taskID {
			l.tasks[i].Completed = true
			break
		}
	}
	if l.hasSelection && l.selectedID == taskID {
		l.clearSelection()
	}
}

// Remove drops a task locally, clearing the selection when it was the
// selected one
func (l *List) Remove(taskID int64) {
	for i := range l.tasks {
		if l.tasks[i].ID == taskID {
			l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
			break
		}
	}
	if l.hasSelection && l.selectedID == taskID {
		l.clearSelection()
	}
}

func (l *List) clearSelection() {
	l.selectedID = 0
	l.hasSelection = false
}
