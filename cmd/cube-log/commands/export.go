package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/cubekit/cube-go/pkg/inspect"
	"github.com/cubekit/cube-go/pkg/log"
)

// RunExport exports the log file to the specified format. An empty output
// writes to stdout.
func RunExport(path, format, output string, opts FilterOptions) error {
	if format != "jsonl" && format != "csv" {
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}

	reader, err := openFiltered(path, opts)
	if err != nil {
		return err
	}
	defer reader.Close()

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if format == "csv" {
		return exportCSV(reader, w)
	}
	return exportJSONL(reader, w)
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	return reader.Each(func(event log.Event) error {
		if err := encoder.Encode(event); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
		return nil
	})
}

var csvHeader = []string{"timestamp", "session_id", "direction", "layer", "category", "device", "channel", "type", "size"}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	err := reader.Each(func(event log.Event) error {
		channel := ""
		if ch, ok := event.Channel(); ok {
			channel = ch.String()
		}
		size := ""
		if event.Frame != nil {
			size = strconv.Itoa(event.Frame.Size)
		}
		device := event.DeviceName
		if device == "" {
			device = event.DeviceAddress
		}

		row := []string{
			event.Timestamp.UTC().Format(inspect.TimestampFormat),
			event.SessionID,
			event.Direction.String(),
			event.Layer.String(),
			event.Category.String(),
			device,
			channel,
			inspect.EventLabel(event),
			size,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
