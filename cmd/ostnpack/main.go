// ostnpack builds the compact binary shift-grid resource from the
// OS-published OSTN15 data file (CSV, one row per kilometre lattice node).
//
//	ostnpack -o ostn15.grid OSTN15_OSGM15_DataFile.csv
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/osgrid/osgb/ostn"
)

func main() {
	var output string
	flag.StringVar(&output, "o", "ostn15.grid", "Output file")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ostnpack [flags] <OSTN15 data file.csv>\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	start := time.Now()
	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatalf("Opening data file: %v", err)
	}
	grid, err := ostn.ParseCSV(f)
	f.Close()
	if err != nil {
		log.Fatalf("Parsing data file: %v", err)
	}

	published := 0
	for j := 0; j < ostn.Rows; j++ {
		for i := 0; i < ostn.Cols; i++ {
			if grid.Node(i, j).Flag != 0 {
				published++
			}
		}
	}

	if err := grid.WriteFile(output); err != nil {
		log.Fatalf("Writing grid: %v", err)
	}

	fi, _ := os.Stat(output)
	fmt.Printf("Packed %d nodes (%d published) into %s (%d bytes) in %v\n",
		ostn.Cols*ostn.Rows, published, output, fi.Size(),
		time.Since(start).Round(time.Millisecond))
}
