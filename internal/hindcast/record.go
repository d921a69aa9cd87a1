package hindcast

import "time"

// Record holds one time step: a timestamp plus one value matrix per channel.
// Fields is indexed [channel][lat][lon] and matches the dataset Grid; cells
// with no measurement (land, ice) carry the NoData sentinel.
type Record struct {
	Time   time.Time
	Fields [][][]float64
}

// Dataset is a fully materialized hindcast: fixed grid, fixed channel set,
// and a time-ordered sequence of records. Timestamps are expected to be
// strictly increasing; this is a data-quality concern and is not enforced
// here.
type Dataset struct {
	Grid     Grid
	Channels []Channel
	Records  []Record
}
