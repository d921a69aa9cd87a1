// Package archive implements the .ww3a hindcast archive: a flat binary file
// holding the grid axes and channel table once, followed by fixed-size
// records. Fixed record size means any time step can be read with a single
// seek, without touching the rest of the file.
package archive

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/ivlev/ww3anim/internal/hindcast"
)

const (
	magic   = "WW3A"
	version = 1

	// countOffset is the file position of the record-count field:
	// magic(4) + version(2) + nchan(2) + nlat(4) + nlon(4).
	countOffset = 16
)

var order = binary.LittleEndian

// Header is the parsed archive preamble. DataOffset and RecordSize together
// locate any record: record i starts at DataOffset + i*RecordSize.
type Header struct {
	Grid       hindcast.Grid
	Channels   []hindcast.Channel
	Count      int
	DataOffset int64
	RecordSize int64
}

// ReadHeader parses the archive preamble from r. It reads only the header,
// never the records, so opening a huge archive stays cheap.
func ReadHeader(r io.Reader) (*Header, error) {
	var m [4]byte
	if _, err := io.ReadFull(r, m[:]); err != nil {
		return nil, fmt.Errorf("read magic: %w", err)
	}
	if string(m[:]) != magic {
		return nil, fmt.Errorf("bad magic %q", m[:])
	}

	var ver, nchan uint16
	var nlat, nlon, nrec uint32
	for _, f := range []any{&ver, &nchan, &nlat, &nlon, &nrec} {
		if err := binary.Read(r, order, f); err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
	}
	if ver != version {
		return nil, fmt.Errorf("unsupported archive version %d", ver)
	}
	if nchan == 0 || nlat == 0 || nlon == 0 {
		return nil, fmt.Errorf("degenerate dimensions %d×%d×%d", nchan, nlat, nlon)
	}

	h := &Header{Count: int(nrec)}
	if err := binary.Read(r, order, &h.Grid.LatStep); err != nil {
		return nil, fmt.Errorf("read lat step: %w", err)
	}
	if err := binary.Read(r, order, &h.Grid.LonStep); err != nil {
		return nil, fmt.Errorf("read lon step: %w", err)
	}

	h.Grid.Lats = make([]float64, nlat)
	if err := binary.Read(r, order, h.Grid.Lats); err != nil {
		return nil, fmt.Errorf("read lat axis: %w", err)
	}
	h.Grid.Lons = make([]float64, nlon)
	if err := binary.Read(r, order, h.Grid.Lons); err != nil {
		return nil, fmt.Errorf("read lon axis: %w", err)
	}

	stringBytes := 0
	h.Channels = make([]hindcast.Channel, nchan)
	for c := range h.Channels {
		for _, dst := range []*string{&h.Channels[c].Name, &h.Channels[c].Description, &h.Channels[c].Unit} {
			s, n, err := readString(r)
			if err != nil {
				return nil, fmt.Errorf("read channel %d: %w", c, err)
			}
			*dst = s
			stringBytes += n
		}
	}

	h.DataOffset = int64(countOffset + 4 + // count field itself
		16 + // steps
		8*int(nlat) + 8*int(nlon) +
		stringBytes)
	h.RecordSize = 8 + 8*int64(nchan)*int64(nlat)*int64(nlon)
	return h, nil
}

func readString(r io.Reader) (string, int, error) {
	var n uint16
	if err := binary.Read(r, order, &n); err != nil {
		return "", 0, err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", 0, err
	}
	return string(b), 2 + int(n), nil
}

func writeString(w io.Writer, s string) error {
	if len(s) > math.MaxUint16 {
		return fmt.Errorf("string too long (%d bytes)", len(s))
	}
	if err := binary.Write(w, order, uint16(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}
