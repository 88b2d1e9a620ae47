package commands

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/samber/lo"

	"github.com/cubekit/cube-go/pkg/inspect"
	"github.com/cubekit/cube-go/pkg/log"
	"github.com/cubekit/cube-go/pkg/wire"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents       int
	EventsByLayer     map[log.Layer]int
	EventsByCategory  map[log.Category]int
	EventsByDirection map[log.Direction]int
	EventsByChannel   map[wire.Channel]int
	EventsByKind      map[string]int
	Sessions          map[string]*SessionStats
	Errors            int
	BytesIn           int
	BytesOut          int
	TimeRange         struct {
		Start time.Time
		End   time.Time
	}
}

// SessionStats holds statistics for a single session.
type SessionStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	Device    string
	Errors    int
}

// CollectStats aggregates every event read from reader.
func CollectStats(reader *log.Reader) (*Stats, error) {
	stats := &Stats{
		EventsByLayer:     make(map[log.Layer]int),
		EventsByCategory:  make(map[log.Category]int),
		EventsByDirection: make(map[log.Direction]int),
		EventsByChannel:   make(map[wire.Channel]int),
		EventsByKind:      make(map[string]int),
		Sessions:          make(map[string]*SessionStats),
	}

	err := reader.Each(func(event log.Event) error {
		stats.add(event)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read event: %w", err)
	}
	return stats, nil
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsByLayer[event.Layer]++
	s.EventsByCategory[event.Category]++
	s.EventsByDirection[event.Direction]++
	if ch, ok := event.Channel(); ok {
		s.EventsByChannel[ch]++
	}
	if event.Decoded != nil {
		s.EventsByKind[event.Decoded.Kind]++
	}
	if event.Frame != nil {
		if event.Direction == log.DirectionIn {
			s.BytesIn += event.Frame.Size
		} else {
			s.BytesOut += event.Frame.Size
		}
	}

	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	sess, ok := s.Sessions[event.SessionID]
	if !ok {
		sess = &SessionStats{FirstSeen: event.Timestamp, LastSeen: event.Timestamp}
		s.Sessions[event.SessionID] = sess
	}
	sess.Events++
	if event.Timestamp.After(sess.LastSeen) {
		sess.LastSeen = event.Timestamp
	}
	if sess.Device == "" {
		sess.Device = lo.Ternary(event.DeviceName != "", event.DeviceName, event.DeviceAddress)
	}

	if event.Error != nil {
		s.Errors++
		sess.Errors++
	}
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, opts FilterOptions, w io.Writer) error {
	reader, err := openFiltered(path, opts)
	if err != nil {
		return err
	}
	defer reader.Close()

	stats, err := CollectStats(reader)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func printCounts[K comparable](w io.Writer, title string, keys []K, counts map[K]int, name func(K) string) {
	fmt.Fprintln(w, title)
	for _, k := range keys {
		if count := counts[k]; count > 0 {
			fmt.Fprintf(w, "  %-16s %d\n", name(k)+":", count)
		}
	}
	fmt.Fprintln(w)
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Cube Protocol Log Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintf(w, "Bytes:        %d in, %d out\n", stats.BytesIn, stats.BytesOut)
	fmt.Fprintln(w)

	printCounts(w, "Events by Layer:",
		[]log.Layer{log.LayerTransport, log.LayerWire, log.LayerService},
		stats.EventsByLayer, log.Layer.String)
	printCounts(w, "Events by Category:",
		[]log.Category{log.CategoryCommand, log.CategoryNotification, log.CategoryRead, log.CategoryState, log.CategoryError},
		stats.EventsByCategory, log.Category.String)
	printCounts(w, "Events by Direction:",
		[]log.Direction{log.DirectionIn, log.DirectionOut},
		stats.EventsByDirection, log.Direction.String)
	printCounts(w, "Events by Channel:", wire.Channels, stats.EventsByChannel, wire.Channel.String)

	if len(stats.EventsByKind) > 0 {
		kinds := lo.Keys(stats.EventsByKind)
		slices.Sort(kinds)
		printCounts(w, "Decoded Events:", kinds, stats.EventsByKind, func(k string) string { return k })
	}

	fmt.Fprintf(w, "Sessions: %d\n", len(stats.Sessions))
	if len(stats.Sessions) > 0 {
		entries := lo.Entries(stats.Sessions)
		slices.SortFunc(entries, func(a, b lo.Entry[string, *SessionStats]) int {
			return a.Value.FirstSeen.Compare(b.Value.FirstSeen)
		})

		fmt.Fprintln(w)
		for _, e := range entries {
			duration := e.Value.LastSeen.Sub(e.Value.FirstSeen).Round(time.Millisecond)
			fmt.Fprintf(w, "  [%s] %d events, duration %s\n", inspect.ShortID(e.Key), e.Value.Events, duration)
			if e.Value.Device != "" {
				fmt.Fprintf(w, "           Device: %s\n", e.Value.Device)
			}
			if e.Value.Errors > 0 {
				fmt.Fprintf(w, "           Errors: %d\n", e.Value.Errors)
			}
		}
	}

	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
