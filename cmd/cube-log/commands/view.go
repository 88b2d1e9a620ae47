package commands

import (
	"fmt"
	"io"

	"github.com/cubekit/cube-go/pkg/inspect"
	"github.com/cubekit/cube-go/pkg/log"
)

// ViewOptions controls the view command.
type ViewOptions struct {
	FilterOptions

	// HideData omits captured frame bytes.
	HideData bool
}

// RunView executes the view command.
func RunView(path string, opts ViewOptions, output io.Writer) error {
	reader, err := openFiltered(path, opts.FilterOptions)
	if err != nil {
		return err
	}
	defer reader.Close()

	f := inspect.NewFormatter()
	f.ShowData = !opts.HideData

	if err := reader.Each(func(event log.Event) error {
		f.FormatEvent(output, event)
		return nil
	}); err != nil {
		return fmt.Errorf("failed to read event: %w", err)
	}
	return nil
}
