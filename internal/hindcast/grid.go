package hindcast

// Grid describes the fixed lat/lon axes shared by every record of a dataset.
// Axis lengths never change for the lifetime of the dataset.
type Grid struct {
	Lats    []float64
	Lons    []float64
	LatStep float64
	LonStep float64
}

// Rows returns the number of latitude cells.
func (g Grid) Rows() int {
	return len(g.Lats)
}

// Cols returns the number of longitude cells.
func (g Grid) Cols() int {
	return len(g.Lons)
}

// Channel is one physical quantity tracked per time step, e.g. significant
// wave height or a wind component.
type Channel struct {
	Name        string
	Description string
	Unit        string
}
