package source

import (
	"fmt"

	"github.com/ivlev/ww3anim/internal/hindcast"
)

// RecordSource abstracts record retrieval for the playback loop. Both
// variants report the record count without scanning records, and Record is
// valid for 0 <= i < RecordCount(). Construction guarantees at least one
// record.
type RecordSource interface {
	RecordCount() int
	Record(i int) (*hindcast.Record, error)
	Grid() hindcast.Grid
	Channels() []hindcast.Channel
	Close() error
}

// InvalidDatasetError reports a dataset identifier that is neither a
// readable archive nor a structurally valid in-memory dataset. Detected
// before any rendering; never retried.
type InvalidDatasetError struct {
	Reason string
	Err    error
}

func (e *InvalidDatasetError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid dataset: %s: %v", e.Reason, e.Err)
	}
	return "invalid dataset: " + e.Reason
}

func (e *InvalidDatasetError) Unwrap() error {
	return e.Err
}
