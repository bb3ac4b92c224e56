package store

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"todo/internal/task"
)

const (
	trueToken  = "True"
	falseToken = "False"
)

// Encode writes tasks as stanzas: description, True/False, date or empty
// line, then a terminating blank line.
func Encode(w io.Writer, tasks []task.Task) error {
	bw := bufio.NewWriter(w)
	for _, t := range tasks {
		due := ""
		if t.Due != nil {
			due = task.FormatDate(*t.Due)
		}
		completed := falseToken
		if t.Completed {
			completed = trueToken
		}
		if _, err := fmt.Fprintf(bw, "%s\n%s\n%s\n\n", singleLine(t.Description), completed, due); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Decode parses stanzas from r. Lines have no length limit.
//
// A blank line commits the pending stanza if it has a description. When
// truncate is set, a stanza still pending at end of input is dropped;
// otherwise it is committed.
func Decode(r io.Reader, truncate bool) ([]task.Task, error) {
	var (
		tasks   []task.Task
		pending task.Task
		hasDesc bool
		lineNo  int
	)

	commit := func() {
		tasks = append(tasks, pending)
		pending = task.Task{}
		hasDesc = false
	}

	br := bufio.NewReader(r)
	for {
		raw, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		if raw == "" && err == io.EOF {
			break
		}
		lineNo++
		line := strings.TrimSpace(raw)
		switch {
		case line == "":
			if hasDesc {
				commit()
			}
		case !hasDesc:
			pending.Description = line
			hasDesc = true
		case line == trueToken:
			pending.Completed = true
		case line == falseToken:
			pending.Completed = false
		default:
			d, err := task.ParseDate(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			pending.Due = &d
		}
		if err == io.EOF {
			break
		}
	}

	if hasDesc && !truncate {
		commit()
	}
	return tasks, nil
}

func singleLine(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
