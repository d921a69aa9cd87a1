package source

import (
	"fmt"
	"os"

	"github.com/ivlev/ww3anim/internal/archive"
	"github.com/ivlev/ww3anim/internal/hindcast"
)

// ArchiveSource streams records out of a .ww3a archive. The header (grid,
// channel table, record count) is read once at construction; each Record
// call opens the file, seeks to the requested record, and releases the
// handle before returning. Nothing is held across calls, so the archive may
// be replaced on disk between steps without leaking handles.
type ArchiveSource struct {
	path string
	hdr  *archive.Header
}

// NewArchiveSource opens path once to read the preamble and validates that
// the archive holds at least one record.
func NewArchiveSource(path string) (*ArchiveSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &InvalidDatasetError{Reason: fmt.Sprintf("cannot open %s", path), Err: err}
	}
	hdr, err := archive.ReadHeader(f)
	f.Close()
	if err != nil {
		return nil, &InvalidDatasetError{Reason: fmt.Sprintf("%s is not a hindcast archive", path), Err: err}
	}
	if hdr.Count < 1 {
		return nil, &InvalidDatasetError{Reason: fmt.Sprintf("%s holds no records", path)}
	}
	return &ArchiveSource{path: path, hdr: hdr}, nil
}

func (s *ArchiveSource) RecordCount() int {
	return s.hdr.Count
}

func (s *ArchiveSource) Record(i int) (*hindcast.Record, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("reopen archive: %w", err)
	}
	defer f.Close()
	return archive.ReadRecord(f, s.hdr, i)
}

func (s *ArchiveSource) Grid() hindcast.Grid {
	return s.hdr.Grid
}

func (s *ArchiveSource) Channels() []hindcast.Channel {
	return s.hdr.Channels
}

// Close is a no-op: the streaming source never holds a handle between
// Record calls.
func (s *ArchiveSource) Close() error {
	return nil
}
