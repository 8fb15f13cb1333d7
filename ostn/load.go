package ostn

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

// Packed grid file layout, all little-endian:
//
//	offset  size  field
//	0       8     magic "OSTNGRID"
//	8       2     format version (1)
//	10      2     record size (10)
//	12      4     columns (701)
//	16      4     rows (1251)
//	20      ...   cols*rows records, row-major by northing then easting
//
// Each record is int32 east shift (mm), int32 north shift (mm), uint16 flag.
// Millimetre integers reproduce the published OSTN values exactly.
const (
	fileMagic  = "OSTNGRID"
	headerSize = 20
	recordSize = 10
	version    = 1
)

// ErrFormat reports a malformed or mismatched grid resource. Individual
// failures wrap it with detail.
var ErrFormat = errors.New("ostn: bad grid resource")

func errRecordCount(n int) error {
	return fmt.Errorf("%w: %d records, want %d", ErrFormat, n, Cols*Rows)
}

// Load reads a packed grid from r, validating the header and the exact
// payload length before any conversion can see the data.
func Load(r io.Reader) (*Grid, error) {
	br := bufio.NewReaderSize(r, 1<<16)

	var hdr [headerSize]byte
	if _, err := io.ReadFull(br, hdr[:]); err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrFormat, err)
	}
	if string(hdr[0:8]) != fileMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrFormat, hdr[0:8])
	}
	if v := binary.LittleEndian.Uint16(hdr[8:10]); v != version {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrFormat, v)
	}
	if rs := binary.LittleEndian.Uint16(hdr[10:12]); rs != recordSize {
		return nil, fmt.Errorf("%w: record size %d, want %d", ErrFormat, rs, recordSize)
	}
	cols := binary.LittleEndian.Uint32(hdr[12:16])
	rows := binary.LittleEndian.Uint32(hdr[16:20])
	if cols != Cols || rows != Rows {
		return nil, fmt.Errorf("%w: lattice %dx%d, want %dx%d", ErrFormat, cols, rows, Cols, Rows)
	}

	payload := make([]byte, Cols*Rows*recordSize)
	if _, err := io.ReadFull(br, payload); err != nil {
		return nil, fmt.Errorf("%w: truncated payload: %v", ErrFormat, err)
	}
	// Anything after the records means the file is not what we think it is.
	if _, err := br.ReadByte(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after %d records", ErrFormat, Cols*Rows)
	}

	nodes := make([]Node, Cols*Rows)
	for k := range nodes {
		rec := payload[k*recordSize:]
		nodes[k] = Node{
			East:  float64(int32(binary.LittleEndian.Uint32(rec[0:4]))) / 1000,
			North: float64(int32(binary.LittleEndian.Uint32(rec[4:8]))) / 1000,
			Flag:  binary.LittleEndian.Uint16(rec[8:10]),
		}
	}
	return &Grid{nodes: nodes}, nil
}

// LoadFile reads a packed grid from the named file.
func LoadFile(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	g, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return g, nil
}

// Write serializes g in the packed format read by Load.
func (g *Grid) Write(w io.Writer) error {
	bw := bufio.NewWriterSize(w, 1<<16)

	var hdr [headerSize]byte
	copy(hdr[0:8], fileMagic)
	binary.LittleEndian.PutUint16(hdr[8:10], version)
	binary.LittleEndian.PutUint16(hdr[10:12], recordSize)
	binary.LittleEndian.PutUint32(hdr[12:16], Cols)
	binary.LittleEndian.PutUint32(hdr[16:20], Rows)
	if _, err := bw.Write(hdr[:]); err != nil {
		return err
	}

	var rec [recordSize]byte
	for _, n := range g.nodes {
		binary.LittleEndian.PutUint32(rec[0:4], uint32(int32(math.Round(n.East*1000))))
		binary.LittleEndian.PutUint32(rec[4:8], uint32(int32(math.Round(n.North*1000))))
		binary.LittleEndian.PutUint16(rec[8:10], n.Flag)
		if _, err := bw.Write(rec[:]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile serializes g to the named file.
func (g *Grid) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := g.Write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
