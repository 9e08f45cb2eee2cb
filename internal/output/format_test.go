package output

import (
	"bytes"
	"testing"

	"todo/internal/task"
	"todo/internal/testutil"
)

func TestFormatTask(t *testing.T) {
	var buf bytes.Buffer
	FormatTask(&buf, 1, task.Task{Text: "Book venue"})
	FormatTask(&buf, 12, task.Task{Text: "Send\ninvites", IsCompleted: true})

	want := "   1  [ ] Book venue\n  12  [x] Send invites\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestActiveCountText(t *testing.T) {
	cases := map[int]string{
		0: "0 active tasks remaining",
		1: "1 active task remaining",
		3: "3 active tasks remaining",
	}
	for n, want := range cases {
		if got := ActiveCountText(n); got != want {
			t.Errorf("ActiveCountText(%d): expected %q, got %q", n, want, got)
		}
	}
}

func TestFormatView_Golden(t *testing.T) {
	var buf bytes.Buffer
	FormatFilterHeader(&buf, task.Completed)
	FormatTask(&buf, 2, task.Task{Text: "Send invites", IsCompleted: true})
	FormatTask(&buf, 4, task.Task{Text: "Buy balloons", IsCompleted: true})
	buf.WriteString("\n")
	FormatActiveCount(&buf, 2)

	testutil.GoldenString(t, "completed_view", buf.String())
}
