package archive

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/ivlev/ww3anim/internal/hindcast"
)

// Writer streams records into a new .ww3a archive. The record count is
// patched into the header on Close, so the caller does not have to know it
// up front.
type Writer struct {
	f     *os.File
	buf   *bufio.Writer
	grid  hindcast.Grid
	nchan int
	count int
}

// Create starts a new archive at path with the given grid and channel table.
func Create(path string, grid hindcast.Grid, channels []hindcast.Channel) (*Writer, error) {
	if grid.Rows() == 0 || grid.Cols() == 0 || len(channels) == 0 {
		return nil, fmt.Errorf("archive create: degenerate grid or empty channel set")
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := &Writer{f: f, buf: bufio.NewWriter(f), grid: grid, nchan: len(channels)}

	for _, v := range []any{
		[]byte(magic),
		uint16(version), uint16(len(channels)),
		uint32(grid.Rows()), uint32(grid.Cols()),
		uint32(0), // record count, patched on Close
		grid.LatStep, grid.LonStep,
		grid.Lats, grid.Lons,
	} {
		if err := binary.Write(w.buf, order, v); err != nil {
			f.Close()
			return nil, fmt.Errorf("write header: %w", err)
		}
	}
	for _, ch := range channels {
		for _, s := range []string{ch.Name, ch.Description, ch.Unit} {
			if err := writeString(w.buf, s); err != nil {
				f.Close()
				return nil, fmt.Errorf("write channel table: %w", err)
			}
		}
	}
	return w, nil
}

// Append writes one record. Field shapes must match the grid declared at
// Create time.
func (w *Writer) Append(rec hindcast.Record) error {
	if len(rec.Fields) != w.nchan {
		return fmt.Errorf("record has %d channels, archive declares %d", len(rec.Fields), w.nchan)
	}
	if err := binary.Write(w.buf, order, rec.Time.Unix()); err != nil {
		return err
	}
	for c, field := range rec.Fields {
		if len(field) != w.grid.Rows() {
			return fmt.Errorf("channel %d: %d rows, grid declares %d", c, len(field), w.grid.Rows())
		}
		for _, row := range field {
			if len(row) != w.grid.Cols() {
				return fmt.Errorf("channel %d: %d cols, grid declares %d", c, len(row), w.grid.Cols())
			}
			if err := binary.Write(w.buf, order, row); err != nil {
				return err
			}
		}
	}
	w.count++
	return nil
}

// Close flushes pending records, patches the record count into the header
// and closes the file.
func (w *Writer) Close() error {
	if err := w.buf.Flush(); err != nil {
		w.f.Close()
		return err
	}
	if _, err := w.f.Seek(countOffset, io.SeekStart); err != nil {
		w.f.Close()
		return err
	}
	if err := binary.Write(w.f, order, uint32(w.count)); err != nil {
		w.f.Close()
		return err
	}
	return w.f.Close()
}
