// Command cube-log is a tool for viewing and analyzing cube protocol log files.
//
// Log files are created by cube-ctl with the -protocol-log flag or the
// logging.protocol_log configuration setting.
//
// Usage:
//
//	cube-log <command> [flags] <file.clog>
//
// Commands:
//
//	view     View log file in human-readable format
//	export   Export log file to JSONL or CSV format
//	filter   Filter log file and write to new file
//	stats    Show statistics about the log file
//
// Examples:
//
//	# View all events
//	cube-log view session.clog
//
//	# View only decoded notifications from the identification channel
//	cube-log view -layer wire -channel id session.clog
//
//	# Export to CSV
//	cube-log export -format csv -o session.csv session.clog
//
//	# Keep one session and save to new file
//	cube-log filter -session 5f1c2e4a-... -o one.clog session.clog
//
//	# Show statistics
//	cube-log stats session.clog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cubekit/cube-go/cmd/cube-log/commands"
)

const usage = `cube-log - Cube Protocol Log Analyzer

Usage:
  cube-log <command> [flags] <file.clog>

Commands:
  view     View log file in human-readable format
  export   Export log file to JSONL or CSV format
  filter   Filter log file and write to new file
  stats    Show statistics about the log file

Use "cube-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "view":
		err = runView(args)
	case "export":
		err = runExport(args)
	case "filter":
		err = runFilter(args)
	case "stats":
		err = runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newFlagSet creates a flag set with the shared filter flags bound to opts.
func newFlagSet(name, summary string, opts *commands.FilterOptions) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "cube-log %s - %s\n\nUsage:\n  cube-log %s [flags] <file.clog>\n\nFlags:\n", name, summary, name)
		fs.PrintDefaults()
	}

	fs.StringVar(&opts.SessionID, "session", "", "Filter by session ID")
	fs.StringVar(&opts.Device, "device", "", "Filter by device name")
	fs.StringVar(&opts.Channel, "channel", "", "Filter by channel (id, motor, light, sound, motion, button, battery, config)")
	fs.StringVar(&opts.TimeStart, "time-start", "", "Filter by start time (RFC3339)")
	fs.StringVar(&opts.TimeEnd, "time-end", "", "Filter by end time (RFC3339)")
	fs.StringVar(&opts.Layer, "layer", "", "Filter by layer (transport, wire, service)")
	fs.StringVar(&opts.Direction, "direction", "", "Filter by direction (in, out)")
	fs.StringVar(&opts.Category, "category", "", "Filter by category (command, notification, read, state, error)")
	return fs
}

// logPath parses args and returns the single positional log file.
func logPath(fs *flag.FlagSet, args []string) (string, error) {
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return "", fmt.Errorf("log file path required")
	}
	return fs.Arg(0), nil
}

func runView(args []string) error {
	var opts commands.ViewOptions
	fs := newFlagSet("view", "View log file in human-readable format", &opts.FilterOptions)
	fs.BoolVar(&opts.HideData, "no-data", false, "Omit captured frame bytes")

	path, err := logPath(fs, args)
	if err != nil {
		return err
	}
	return commands.RunView(path, opts, os.Stdout)
}

func runExport(args []string) error {
	var opts commands.FilterOptions
	fs := newFlagSet("export", "Export log file to JSONL or CSV format", &opts)
	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")

	path, err := logPath(fs, args)
	if err != nil {
		return err
	}
	return commands.RunExport(path, *format, *output, opts)
}

func runFilter(args []string) error {
	var opts commands.FilterOptions
	fs := newFlagSet("filter", "Filter log file and write to new file", &opts)
	output := fs.String("o", "", "Output file (required)")

	path, err := logPath(fs, args)
	if err != nil {
		return err
	}
	if *output == "" {
		fs.Usage()
		return fmt.Errorf("output file (-o) required")
	}
	return commands.RunFilter(path, *output, opts, os.Stdout)
}

func runStats(args []string) error {
	var opts commands.FilterOptions
	fs := newFlagSet("stats", "Show statistics about the log file", &opts)

	path, err := logPath(fs, args)
	if err != nil {
		return err
	}
	return commands.RunStats(path, opts, os.Stdout)
}
