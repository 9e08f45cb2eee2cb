package task

// Matches reports whether t is visible under m. Unknown modes behave like All.
func (m FilterMode) Matches(t Task) bool {
	switch m {
	case Active:
		return !t.IsCompleted
	case Completed:
		return t.IsCompleted
	}
	return true
}

// Filter returns the tasks matching mode, in their original order.
// The input is never modified.
func Filter(tasks []Task, mode FilterMode) []Task {
	result := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if mode.Matches(t) {
			result = append(result, t)
		}
	}
	return result
}

// ActiveCount returns the number of tasks not yet completed.
func ActiveCount(tasks []Task) int {
	n := 0
	for _, t := range tasks {
		if !t.IsCompleted {
			n++
		}
	}
	return n
}
