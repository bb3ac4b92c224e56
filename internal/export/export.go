// Package export writes the task list in text, JSON and PDF form and
// reads JSON documents back.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"todo/internal/output"
	"todo/internal/task"
)

// Format names an export format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatPDF  Format = "pdf"
)

// Options controls rendering of text and PDF exports.
type Options struct {
	Labels task.Labels
	Title  string
}

// ParseFormat resolves a format name (case-insensitive).
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatPDF:
		return f, nil
	case "txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown export format: %s", s)
	}
}

// Write renders tasks to w in the given format.
func Write(w io.Writer, f Format, tasks []task.Task, opts Options) error {
	switch f {
	case FormatText:
		output.FormatTasks(w, tasks, opts.Labels, false)
		return nil
	case FormatJSON:
		return WriteJSON(w, tasks)
	case FormatPDF:
		return WritePDF(w, tasks, opts)
	default:
		return fmt.Errorf("unknown export format: %s", f)
	}
}

// pdfLabels replaces glyphs the core PDF fonts cannot draw.
var pdfLabels = task.Labels{Done: "[x]", Pending: "[ ]"}

// WritePDF renders tasks as a one-column A4 document.
func WritePDF(w io.Writer, tasks []task.Task, opts Options) error {
	labels := pdfLabels
	labels.Due = opts.Labels.Due
	if labels.Due == "" {
		labels.Due = task.DefaultLabels().Due
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, tr(opts.Title))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	if len(tasks) == 0 {
		pdf.MultiCell(0, 6, "no tasks", "0", "L", false)
	}
	for i, t := range tasks {
		line := fmt.Sprintf("%d. %s", i+1, t.Label(labels))
		pdf.MultiCell(0, 6, tr(line), "0", "L", false)
	}

	return pdf.Output(w)
}
