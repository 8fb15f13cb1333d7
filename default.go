package osgb

import (
	"fmt"
	"os"
	"sync"

	"github.com/osgrid/osgb/ostn"
)

var (
	defaultOnce sync.Once
	defaultConv *Converter
	defaultErr  error
)

// Default returns a process-wide Converter backed by the packed shift grid
// named by the OSTN_GRID_FILE environment variable. The grid is loaded at
// most once, on first call; concurrent first calls share the one load.
// A load failure is sticky and reported to every caller so no conversion can
// run against partial data.
func Default() (*Converter, error) {
	defaultOnce.Do(func() {
		path := os.Getenv("OSTN_GRID_FILE")
		if path == "" {
			defaultErr = ErrNoGridFile
			return
		}
		grid, err := ostn.LoadFile(path)
		if err != nil {
			defaultErr = fmt.Errorf("osgb: loading default shift grid: %w", err)
			return
		}
		defaultConv = NewConverter(grid)
	})
	return defaultConv, defaultErr
}
