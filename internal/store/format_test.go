package store

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"todo/internal/task"
)

func TestDecode_Grammar(t *testing.T) {
	input := "\n\n  Buy gifts  \nTrue\n25-12-2024\n\n\n\nCall client\nFalse\n\n\n"

	tasks, err := Decode(strings.NewReader(input), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	first := task.Task{Description: "Buy gifts", Completed: true, Due: task.Date(2024, time.December, 25)}
	if !tasks[0].Equal(first) {
		t.Errorf("expected %+v, got %+v", first, tasks[0])
	}
	if !tasks[1].Equal(task.Task{Description: "Call client"}) {
		t.Errorf("unexpected second task: %+v", tasks[1])
	}
}

func TestDecode_TokenAsDescription(t *testing.T) {
	tasks, err := Decode(strings.NewReader("True\nFalse\n\n"), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Description != "True" || tasks[0].Completed {
		t.Errorf("unexpected tasks: %+v", tasks)
	}
}

func TestDecode_LastFlagWins(t *testing.T) {
	tasks, err := Decode(strings.NewReader("a\nTrue\nFalse\n\n"), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tasks[0].Completed {
		t.Error("expected later False to override True")
	}
}

func TestDecode_MalformedDateLine(t *testing.T) {
	_, err := Decode(strings.NewReader("a\nFalse\n\nb\nmaybe\n\n"), false)
	if !errors.Is(err, task.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	if !strings.Contains(err.Error(), "line 5") {
		t.Errorf("expected line number in %q", err.Error())
	}
}

func TestDecode_TruncateOnlyAffectsUnterminatedStanza(t *testing.T) {
	tasks, err := Decode(strings.NewReader("a\nFalse\n\n\n"), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 1 {
		t.Errorf("expected terminated stanza to survive truncation, got %d", len(tasks))
	}
}

func TestEncode_FlattensLineBreaks(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, []task.Task{{Description: "two\nlines"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := "two lines\nFalse\n\n\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	in := []task.Task{
		{Description: "a", Completed: true, Due: task.Date(2023, time.February, 28)},
		{Description: "b"},
		{Description: "c", Due: task.Date(2030, time.October, 1)},
	}
	var buf bytes.Buffer
	if err := Encode(&buf, in); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out, err := Decode(&buf, true)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("expected %d tasks, got %d", len(in), len(out))
	}
	for i := range in {
		if !in[i].Equal(out[i]) {
			t.Errorf("task %d: expected %+v, got %+v", i, in[i], out[i])
		}
	}
}
