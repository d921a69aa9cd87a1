package hindcast

import "math"

// NoData returns the sentinel marking a grid cell with no measurement.
func NoData() float64 {
	return math.NaN()
}

// IsNoData reports whether v is the missing-measurement sentinel.
func IsNoData(v float64) bool {
	return math.IsNaN(v)
}

// PadCellEdges converts an R×S cell-value matrix into the edge-convention
// matrix expected by cell-centered grid renderers: the last row and column
// are duplicated, then the result is transposed, giving (S+1)×(R+1).
func PadCellEdges(values [][]float64) [][]float64 {
	r := len(values)
	if r == 0 {
		return nil
	}
	s := len(values[0])

	out := make([][]float64, s+1)
	for j := 0; j <= s; j++ {
		row := make([]float64, r+1)
		sj := j
		if sj >= s {
			sj = s - 1
		}
		for i := 0; i <= r; i++ {
			si := i
			if si >= r {
				si = r - 1
			}
			row[i] = values[si][sj]
		}
		out[j] = row
	}
	return out
}

// VisibilityMask returns a matrix shaped like padded that is true exactly
// where the value is a real measurement. Masked cells must render fully
// transparent, never as a colored artifact.
func VisibilityMask(padded [][]float64) [][]bool {
	mask := make([][]bool, len(padded))
	for j, row := range padded {
		mrow := make([]bool, len(row))
		for i, v := range row {
			mrow[i] = !IsNoData(v)
		}
		mask[j] = mrow
	}
	return mask
}
