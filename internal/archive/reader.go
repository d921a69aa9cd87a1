package archive

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/ivlev/ww3anim/internal/hindcast"
)

// ReadRecord reads record i from r by seeking straight to its offset. The
// caller owns r and is expected to close it as soon as the record is read;
// nothing is cached between calls.
func ReadRecord(r io.ReadSeeker, h *Header, i int) (*hindcast.Record, error) {
	if i < 0 || i >= h.Count {
		return nil, fmt.Errorf("record index %d out of range [0,%d)", i, h.Count)
	}
	if _, err := r.Seek(h.DataOffset+int64(i)*h.RecordSize, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek record %d: %w", i, err)
	}

	var unix int64
	if err := binary.Read(r, order, &unix); err != nil {
		return nil, fmt.Errorf("read record %d time: %w", i, err)
	}

	nlat := h.Grid.Rows()
	nlon := h.Grid.Cols()
	rec := &hindcast.Record{
		Time:   time.Unix(unix, 0).UTC(),
		Fields: make([][][]float64, len(h.Channels)),
	}
	for c := range h.Channels {
		field := make([][]float64, nlat)
		for row := range field {
			field[row] = make([]float64, nlon)
			if err := binary.Read(r, order, field[row]); err != nil {
				return nil, fmt.Errorf("read record %d channel %d: %w", i, c, err)
			}
		}
		rec.Fields[c] = field
	}
	return rec, nil
}
