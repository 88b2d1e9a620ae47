package commands

import (
	"fmt"
	"io"

	"github.com/cubekit/cube-go/pkg/log"
)

// RunFilter writes the events matching opts to a new log file and reports
// how many were kept.
func RunFilter(path, output string, opts FilterOptions, w io.Writer) error {
	reader, err := openFiltered(path, opts)
	if err != nil {
		return err
	}
	defer reader.Close()

	logger, err := log.NewFileLogger(output)
	if err != nil {
		return fmt.Errorf("failed to create output logger: %w", err)
	}
	defer logger.Close()

	count := 0
	if err := reader.Each(func(event log.Event) error {
		logger.Log(event)
		count++
		return nil
	}); err != nil {
		return fmt.Errorf("failed to read event: %w", err)
	}

	fmt.Fprintf(w, "Filtered %d events to %s\n", count, output)
	return nil
}
