package export

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"todo/internal/task"
)

// Version is the JSON document version written by WriteJSON.
const Version = 1

const schemaURL = "https://schemas.todo.local/tasks.schema.json"

//go:embed schema.json
var schemaJSON string

var (
	compileOnce sync.Once
	schema      *jsonschema.Schema
	schemaErr   error
)

// Document is the JSON interchange form of a task list.
type Document struct {
	Version int    `json:"version"`
	Tasks   []Item `json:"tasks"`
}

// Item is one task in a Document. Due is DD-MM-YYYY or empty.
type Item struct {
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	Due         string `json:"due,omitempty"`
}

// SchemaError lists every schema violation found in an imported document.
type SchemaError struct {
	Problems []string // "<instance path>: <message>"
}

func (e *SchemaError) Error() string {
	return "invalid task document: " + strings.Join(e.Problems, "; ")
}

// NewDocument converts tasks into a Document.
func NewDocument(tasks []task.Task) Document {
	doc := Document{Version: Version, Tasks: make([]Item, 0, len(tasks))}
	for _, t := range tasks {
		item := Item{Description: t.Description, Completed: t.Completed}
		if t.Due != nil {
			item.Due = task.FormatDate(*t.Due)
		}
		doc.Tasks = append(doc.Tasks, item)
	}
	return doc
}

// WriteJSON writes tasks as an indented JSON document.
func WriteJSON(w io.Writer, tasks []task.Task) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(tasks))
}

// ReadJSON validates a JSON document against the embedded schema and
// returns its tasks.
func ReadJSON(r io.Reader) ([]task.Task, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read task document: %w", err)
	}

	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse task document: %w", err)
	}

	sch, err := compiledSchema()
	if err != nil {
		return nil, err
	}
	if err := sch.Validate(raw); err != nil {
		return nil, schemaError(err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse task document: %w", err)
	}

	tasks := make([]task.Task, 0, len(doc.Tasks))
	for i, item := range doc.Tasks {
		due, err := task.ParseOptionalDate(item.Due)
		if err != nil {
			return nil, fmt.Errorf("tasks[%d]: %w", i, err)
		}
		t := task.New(item.Description, due)
		t.Completed = item.Completed
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("load task schema: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile(schemaURL)
	})
	return schema, schemaErr
}

func schemaError(err error) error {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}
	se := &SchemaError{}
	collectProblems(se, ve)
	return se
}

func collectProblems(se *SchemaError, ve *jsonschema.ValidationError) {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		se.Problems = append(se.Problems, fmt.Sprintf("%s: %s", loc, ve.Message))
		return
	}
	for _, cause := range ve.Causes {
		collectProblems(se, cause)
	}
}
