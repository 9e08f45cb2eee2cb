package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"todo/internal/task"
)

// MinIDPrefix is the shortest id prefix accepted as a task reference.
const MinIDPrefix = 4

// TaskRef represents a parsed task reference.
type TaskRef struct {
	Num int    // 1-based position in the full list, 0 if ID is set
	ID  string // task id or id prefix
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses a task reference from args.
//
// Parsing rules:
// 1. If the first arg is all digits, it is a position as printed by list
// 2. Otherwise it is a task id, or an id prefix of at least MinIDPrefix characters
// 3. Any further arg is an error: invalid task reference: <arg>
func ParseTaskRef(args []string) (TaskRef, error) {
	if len(args) == 0 {
		return TaskRef{}, ErrTaskRefRequired
	}
	if len(args) > 1 {
		return TaskRef{}, fmt.Errorf("invalid task reference: %s", args[1])
	}

	arg := strings.TrimSpace(args[0])
	if arg == "" {
		return TaskRef{}, ErrTaskRefRequired
	}

	if isAllDigits(arg) {
		num, err := strconv.Atoi(arg)
		if err != nil {
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", arg)
		}
		return TaskRef{Num: num}, nil
	}

	return TaskRef{ID: arg}, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ResolveTaskRef finds the task ref points at in tasks (the full list, most
// recent first). An exact id match wins over prefix matches.
func ResolveTaskRef(tasks []task.Task, ref TaskRef) (task.Task, error) {
	if ref.ID == "" {
		if ref.Num < 1 || ref.Num > len(tasks) {
			return task.Task{}, fmt.Errorf("task number out of range: %d", ref.Num)
		}
		return tasks[ref.Num-1], nil
	}

	for _, t := range tasks {
		if t.ID == ref.ID {
			return t, nil
		}
	}

	if len(ref.ID) < MinIDPrefix {
		return task.Task{}, fmt.Errorf("invalid task reference: %s", ref.ID)
	}

	var matches []task.Task
	for _, t := range tasks {
		if strings.HasPrefix(t.ID, ref.ID) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return task.Task{}, fmt.Errorf("task not found: %s", ref.ID)
	case 1:
		return matches[0], nil
	default:
		return task.Task{}, fmt.Errorf("ambiguous task reference: %s", ref.ID)
	}
}

// resolveArgs parses and resolves args against the current task list,
// printing the error and returning false on failure.
func resolveArgs(tasks []task.Task, args []string, errOut io.Writer) (task.Task, bool) {
	ref, err := ParseTaskRef(args)
	if err == nil {
		var t task.Task
		if t, err = ResolveTaskRef(tasks, ref); err == nil {
			return t, true
		}
	}
	fmt.Fprintf(errOut, "error: %v\n", err)
	return task.Task{}, false
}
