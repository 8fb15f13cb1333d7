// bngconv converts a single coordinate between latitude/longitude and the
// OSGB national grid.
//
//	bngconv 51.5 -2.1              lat/lon -> grid
//	bngconv "TQ 213 455"           grid ref -> lat/lon
//	bngconv 533212.83 180460.35 -inverse
//
// The OSTN shift grid is taken from -grid or the OSTN_GRID_FILE environment
// variable (a .env file is honoured). Without it, WGS84 conversions still
// work but fall back to the Helmert transform (+/-5 m).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/osgrid/osgb"
	"github.com/osgrid/osgb/gridref"
	"github.com/osgrid/osgb/ostn"
)

func main() {
	var (
		datumName string
		gridPath  string
		figures   int
		inverse   bool
	)

	flag.StringVar(&datumName, "datum", "wgs84", "Datum for lat/lon: wgs84 or osgb36")
	flag.StringVar(&gridPath, "grid", "", "Packed OSTN grid file (default $OSTN_GRID_FILE)")
	flag.IntVar(&figures, "figures", 3, "Figures per axis in formatted grid references (1-5)")
	flag.BoolVar(&inverse, "inverse", false, "Treat two numeric arguments as easting/northing")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: bngconv [flags] <lat> <lon> | <grid reference>\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	datum, err := parseDatum(datumName)
	if err != nil {
		log.Fatal(err)
	}

	conv := newConverter(gridPath)

	args := flag.Args()
	switch {
	case len(args) == 1:
		gridRefToLL(conv, args[0], datum)

	case len(args) == 2:
		a, errA := strconv.ParseFloat(args[0], 64)
		b, errB := strconv.ParseFloat(args[1], 64)
		if errA != nil || errB != nil {
			// "TQ 213 455" arrives as two shell words.
			gridRefToLL(conv, args[0]+" "+args[1], datum)
			return
		}
		if inverse {
			gridToLL(conv, a, b, datum)
		} else {
			llToGrid(conv, a, b, datum, figures)
		}

	case len(args) == 3:
		gridRefToLL(conv, strings.Join(args, " "), datum)

	default:
		flag.Usage()
		os.Exit(1)
	}
}

func newConverter(gridPath string) *osgb.Converter {
	_ = godotenv.Load() // optional .env
	if gridPath == "" {
		gridPath = os.Getenv("OSTN_GRID_FILE")
	}
	if gridPath == "" {
		log.Print("No OSTN grid configured; WGS84 results limited to +/-5 m")
		return osgb.NewConverter(nil)
	}
	grid, err := ostn.LoadFile(gridPath)
	if err != nil {
		log.Fatalf("Shift grid: %v", err)
	}
	return osgb.NewConverter(grid)
}

func parseDatum(name string) (osgb.Datum, error) {
	switch strings.ToLower(name) {
	case "wgs84":
		return osgb.WGS84, nil
	case "osgb36":
		return osgb.OSGB36, nil
	}
	return 0, fmt.Errorf("unknown datum %q (want wgs84 or osgb36)", name)
}

func llToGrid(conv *osgb.Converter, lat, lon float64, datum osgb.Datum, figures int) {
	easting, northing, acc, err := conv.LLToGrid(lat, lon, datum)
	if err != nil {
		log.Fatal(err)
	}
	ref, err := gridref.Format(easting, northing, figures)
	if err != nil {
		ref = "(off the lettered grid)"
	}
	fmt.Printf("%s  easting %.3f  northing %.3f  (%s)\n", ref, easting, northing, acc)
}

func gridToLL(conv *osgb.Converter, easting, northing float64, datum osgb.Datum) {
	lat, lon, acc, err := conv.GridToLL(easting, northing, datum)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("lat %.8f  lon %.8f  %s  (%s)\n", lat, lon, datum, acc)
}

func gridRefToLL(conv *osgb.Converter, ref string, datum osgb.Datum) {
	easting, northing, err := gridref.Parse(ref)
	if err != nil {
		log.Fatal(err)
	}
	gridToLL(conv, easting, northing, datum)
}
