// Package commands implements the cube-log CLI commands.
package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/cubekit/cube-go/pkg/log"
	"github.com/cubekit/cube-go/pkg/wire"
)

// FilterOptions holds the filter flags shared by every command.
type FilterOptions struct {
	SessionID string
	Device    string
	Channel   string
	TimeStart string
	TimeEnd   string
	Layer     string
	Direction string
	Category  string
}

// Build converts the flag values into a log filter.
func (o FilterOptions) Build() (log.Filter, error) {
	filter := log.Filter{
		SessionID:  o.SessionID,
		DeviceName: o.Device,
	}

	if o.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, o.TimeStart)
		if err != nil {
			return log.Filter{}, fmt.Errorf("invalid time-start format: %w", err)
		}
		filter.TimeStart = &t
	}
	if o.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, o.TimeEnd)
		if err != nil {
			return log.Filter{}, fmt.Errorf("invalid time-end format: %w", err)
		}
		filter.TimeEnd = &t
	}
	if o.Layer != "" {
		l, err := parseLayer(o.Layer)
		if err != nil {
			return log.Filter{}, err
		}
		filter.Layer = &l
	}
	if o.Direction != "" {
		d, err := parseDirection(o.Direction)
		if err != nil {
			return log.Filter{}, err
		}
		filter.Direction = &d
	}
	if o.Category != "" {
		c, ok := log.ParseCategory(o.Category)
		if !ok {
			return log.Filter{}, fmt.Errorf("invalid category: %s (must be command, notification, read, state or error)", o.Category)
		}
		filter.Category = &c
	}
	if o.Channel != "" {
		ch, ok := wire.ParseChannel(o.Channel)
		if !ok {
			return log.Filter{}, fmt.Errorf("invalid channel: %s", o.Channel)
		}
		filter.Channel = &ch
	}
	return filter, nil
}

// parseLayer parses a layer string (case-insensitive).
func parseLayer(s string) (log.Layer, error) {
	switch strings.ToLower(s) {
	case "transport":
		return log.LayerTransport, nil
	case "wire":
		return log.LayerWire, nil
	case "service":
		return log.LayerService, nil
	default:
		return 0, fmt.Errorf("invalid layer: %s (must be transport, wire, or service)", s)
	}
}

// parseDirection parses a direction string (case-insensitive).
func parseDirection(s string) (log.Direction, error) {
	switch strings.ToLower(s) {
	case "in":
		return log.DirectionIn, nil
	case "out":
		return log.DirectionOut, nil
	default:
		return 0, fmt.Errorf("invalid direction: %s (must be in or out)", s)
	}
}

// openFiltered opens path and applies opts.
func openFiltered(path string, opts FilterOptions) (*log.Reader, error) {
	filter, err := opts.Build()
	if err != nil {
		return nil, err
	}
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return reader, nil
}
