// bngbatch converts a CSV of coordinates in bulk, using all CPUs. Input rows
// are "lat,lon" (or "easting,northing" with -inverse); output rows carry the
// converted pair plus the accuracy tag. Rows are processed concurrently over
// one shared shift grid and written in input order.
//
//	bngbatch -grid ostn15.grid points.csv > grid.csv
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/joho/godotenv"

	"github.com/osgrid/osgb"
	"github.com/osgrid/osgb/ostn"
)

type row struct {
	index int
	a, b  float64
}

type result struct {
	a, b float64
	acc  osgb.Accuracy
	err  error
}

func main() {
	var (
		gridPath  string
		datumName string
		inverse   bool
		workers   int
		verbose   bool
	)
	flag.StringVar(&gridPath, "grid", "", "Packed OSTN grid file (default $OSTN_GRID_FILE)")
	flag.StringVar(&datumName, "datum", "wgs84", "Datum for lat/lon: wgs84 or osgb36")
	flag.BoolVar(&inverse, "inverse", false, "Convert easting/northing to lat/lon")
	flag.IntVar(&workers, "workers", runtime.NumCPU(), "Number of parallel workers")
	flag.BoolVar(&verbose, "verbose", false, "Progress output on stderr")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: bngbatch [flags] <points.csv>\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	_ = godotenv.Load() // optional .env

	var datum osgb.Datum
	switch strings.ToLower(datumName) {
	case "wgs84":
		datum = osgb.WGS84
	case "osgb36":
		datum = osgb.OSGB36
	default:
		log.Fatalf("Unknown datum %q", datumName)
	}

	if gridPath == "" {
		gridPath = os.Getenv("OSTN_GRID_FILE")
	}
	var grid *ostn.Grid
	if gridPath != "" {
		g, err := ostn.LoadFile(gridPath)
		if err != nil {
			log.Fatalf("Shift grid: %v", err)
		}
		grid = g
	} else if datum == osgb.WGS84 {
		log.Print("No OSTN grid configured; WGS84 results limited to +/-5 m")
	}
	conv := osgb.NewConverter(grid)

	rows, err := readRows(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	start := time.Now()
	results := convertAll(conv, rows, datum, inverse, workers, verbose)

	w := csv.NewWriter(os.Stdout)
	failures := 0
	for i, res := range results {
		if res.err != nil {
			failures++
			w.Write([]string{"", "", "error: " + res.err.Error()})
			if verbose {
				log.Printf("Row %d: %v", i+1, res.err)
			}
			continue
		}
		w.Write([]string{
			strconv.FormatFloat(res.a, 'f', -1, 64),
			strconv.FormatFloat(res.b, 'f', -1, 64),
			res.acc.String(),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Fatalf("Writing output: %v", err)
	}

	if verbose {
		log.Printf("Converted %d rows (%d failed) in %v",
			len(results), failures, time.Since(start).Round(time.Millisecond))
	}
}

func readRows(path string) ([]row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var rows []row
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		if len(rec) < 2 {
			return nil, fmt.Errorf("%s: row %d has %d fields, want 2", path, len(rows)+1, len(rec))
		}
		a, errA := strconv.ParseFloat(rec[0], 64)
		b, errB := strconv.ParseFloat(rec[1], 64)
		if errA != nil || errB != nil {
			if len(rows) == 0 {
				continue // header row
			}
			return nil, fmt.Errorf("%s: row %d is not numeric", path, len(rows)+1)
		}
		rows = append(rows, row{index: len(rows), a: a, b: b})
	}
	return rows, nil
}

// convertAll fans the rows out over a worker pool. The shift grid is
// read-only, so the workers share the converter without locking.
func convertAll(conv *osgb.Converter, rows []row, datum osgb.Datum, inverse bool, workers int, verbose bool) []result {
	results := make([]result, len(rows))
	jobs := make(chan row, workers*2)

	var processed atomic.Int64
	done := make(chan struct{})
	if verbose {
		go func() {
			ticker := time.NewTicker(time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					log.Printf("  %d / %d rows", processed.Load(), len(rows))
				}
			}
		}()
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := range jobs {
				var res result
				if inverse {
					res.a, res.b, res.acc, res.err = conv.GridToLL(r.a, r.b, datum)
				} else {
					res.a, res.b, res.acc, res.err = conv.LLToGrid(r.a, r.b, datum)
				}
				results[r.index] = res
				processed.Add(1)
			}
		}()
	}

	for _, r := range rows {
		jobs <- r
	}
	close(jobs)
	wg.Wait()
	close(done)

	return results
}
