package source

import (
	"fmt"

	"github.com/ivlev/ww3anim/internal/hindcast"
)

// DatasetSource wraps a pre-materialized dataset; Record is a constant-time
// lookup. The dataset is validated structurally once, at construction.
type DatasetSource struct {
	ds *hindcast.Dataset
}

// NewDatasetSource checks that ds has a usable grid, at least one channel,
// at least one record, and that every record's field shapes match the grid.
// Timestamp ordering is a data-quality concern and is not checked.
func NewDatasetSource(ds *hindcast.Dataset) (*DatasetSource, error) {
	if ds == nil {
		return nil, &InvalidDatasetError{Reason: "nil dataset"}
	}
	if ds.Grid.Rows() == 0 || ds.Grid.Cols() == 0 {
		return nil, &InvalidDatasetError{Reason: "empty grid axes"}
	}
	if len(ds.Channels) == 0 {
		return nil, &InvalidDatasetError{Reason: "no channels"}
	}
	if len(ds.Records) == 0 {
		return nil, &InvalidDatasetError{Reason: "no records"}
	}
	for k, rec := range ds.Records {
		if len(rec.Fields) != len(ds.Channels) {
			return nil, &InvalidDatasetError{
				Reason: fmt.Sprintf("record %d has %d channels, dataset declares %d", k, len(rec.Fields), len(ds.Channels)),
			}
		}
		for c, field := range rec.Fields {
			if len(field) != ds.Grid.Rows() {
				return nil, &InvalidDatasetError{
					Reason: fmt.Sprintf("record %d channel %d has %d rows, grid declares %d", k, c, len(field), ds.Grid.Rows()),
				}
			}
			for _, row := range field {
				if len(row) != ds.Grid.Cols() {
					return nil, &InvalidDatasetError{
						Reason: fmt.Sprintf("record %d channel %d has %d cols, grid declares %d", k, c, len(row), ds.Grid.Cols()),
					}
				}
			}
		}
	}
	return &DatasetSource{ds: ds}, nil
}

func (s *DatasetSource) RecordCount() int {
	return len(s.ds.Records)
}

func (s *DatasetSource) Record(i int) (*hindcast.Record, error) {
	if i < 0 || i >= len(s.ds.Records) {
		return nil, fmt.Errorf("record index %d out of range [0,%d)", i, len(s.ds.Records))
	}
	return &s.ds.Records[i], nil
}

func (s *DatasetSource) Grid() hindcast.Grid {
	return s.ds.Grid
}

func (s *DatasetSource) Channels() []hindcast.Channel {
	return s.ds.Channels
}

func (s *DatasetSource) Close() error {
	return nil
}
