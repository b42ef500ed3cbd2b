// Package export writes a task collection in download formats. Exports
// are one way: nothing reads them back.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/adanyl0v/go-taskboard/internal/models"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown export format %q", s)
	}
}

func (f Format) ContentType() string {
	if f == FormatYAML {
		return "application/yaml; charset=utf-8"
	}
	return "text/csv; charset=utf-8"
}

func (f Format) FileName() string {
	return "tasks." + string(f)
}

func Write(w io.Writer, f Format, tasks []models.Task) error {
	if f == FormatYAML {
		return WriteYAML(w, tasks)
	}
	return WriteCSV(w, tasks)
}

var csvHeader = []string{
	"id",
	"title",
	"dueDate",
	"priority",
	"status",
	"notes",
	"subtasks",
	"repeat",
}

// WriteCSV writes one header row and one row per task. Fields holding a
// comma, quote or line break are quoted with embedded quotes doubled.
// Subtasks are embedded as a JSON array.
func WriteCSV(w io.Writer, tasks []models.Task) error {
	cw := csv.NewWriter(w)

	err := cw.Write(csvHeader)
	if err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, t := range tasks {
		dueDate := ""
		if t.DueDate != nil {
			dueDate = t.DueDate.String()
		}

		subtasks := ""
		if len(t.Subtasks) > 0 {
			b, err := json.Marshal(t.Subtasks)
			if err != nil {
				return fmt.Errorf("failed to marshal subtasks of task %q: %w", t.ID, err)
			}
			subtasks = string(b)
		}

		repeat := t.Repeat
		if repeat == "" {
			repeat = models.RepeatNone
		}

		err = cw.Write([]string{
			t.ID,
			t.Title,
			dueDate,
			string(t.Priority),
			string(t.Status),
			t.Notes,
			subtasks,
			string(repeat),
		})
		if err != nil {
			return fmt.Errorf("failed to write csv row for task %q: %w", t.ID, err)
		}
	}

	cw.Flush()
	err = cw.Error()
	if err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

func WriteYAML(w io.Writer, tasks []models.Task) error {
	if tasks == nil {
		tasks = []models.Task{}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	err := enc.Encode(struct {
		Tasks []models.Task `yaml:"tasks"`
	}{Tasks: tasks})
	if err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	err = enc.Close()
	if err != nil {
		return fmt.Errorf("failed to close yaml encoder: %w", err)
	}
	return nil
}
