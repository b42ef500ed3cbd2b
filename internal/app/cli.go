package app

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/adanyl0v/go-taskboard/internal/export"
	"github.com/adanyl0v/go-taskboard/internal/views"
)

// Export writes the loaded collection to path, or to stdout when path is
// empty.
func Export(format, path string) (err error) {
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}

	w := io.Writer(os.Stdout)
	if path != "" {
		file, createErr := os.Create(path)
		if createErr != nil {
			return fmt.Errorf("failed to create export file: %w", createErr)
		}
		defer closeExportFile(file, &err)
		w = file
	}

	tasks := globalTaskStore.Tasks()
	err = export.Write(w, f, tasks)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Str("format", string(f)).
			Msg("failed to export tasks")
		return err
	}

	globalLogger.Info().
		Str("format", string(f)).
		Str("path", path).
		Int("count", len(tasks)).
		Msg("exported tasks")
	return nil
}

// closeExportFile reports a failed close through err unless an earlier
// error is already set.
func closeExportFile(c io.Closer, err *error) {
	closeErr := c.Close()
	if closeErr != nil && *err == nil {
		*err = fmt.Errorf("failed to close export file: %w", closeErr)
	}
}

// PrintStats writes the per-category counts for today as YAML.
func PrintStats(w io.Writer, today time.Time) error {
	counts := views.CountByCategory(globalTaskStore.Tasks(), today)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	err := enc.Encode(counts)
	if err != nil {
		return fmt.Errorf("failed to encode counts: %w", err)
	}
	return enc.Close()
}
