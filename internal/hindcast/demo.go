package hindcast

import (
	"math"
	"time"
)

// Demo builds a small synthetic hindcast: a travelling swell field plus a
// rotating wind component on a 24×36 grid, with a circular "island" of
// NoData cells. Used by the pack mode so the tool can be exercised without
// real model output.
func Demo(steps int) *Dataset {
	const (
		nlat = 24
		nlon = 36
	)

	grid := Grid{
		Lats:    make([]float64, nlat),
		Lons:    make([]float64, nlon),
		LatStep: 1.0,
		LonStep: 1.0,
	}
	for i := range grid.Lats {
		grid.Lats[i] = 30.0 + float64(i)*grid.LatStep
	}
	for j := range grid.Lons {
		grid.Lons[j] = -80.0 + float64(j)*grid.LonStep
	}

	channels := []Channel{
		{Name: "hs", Description: "Significant wave height", Unit: "m"},
		{Name: "u10", Description: "Wind u-component at 10 m", Unit: "m/s"},
	}

	start := time.Date(2005, 8, 25, 0, 0, 0, 0, time.UTC)

	ds := &Dataset{Grid: grid, Channels: channels}
	for k := 0; k < steps; k++ {
		phase := float64(k) * 0.4
		hs := make([][]float64, nlat)
		u10 := make([][]float64, nlat)
		for i := 0; i < nlat; i++ {
			hs[i] = make([]float64, nlon)
			u10[i] = make([]float64, nlon)
			for j := 0; j < nlon; j++ {
				if land(i, j) {
					hs[i][j] = NoData()
					u10[i][j] = NoData()
					continue
				}
				x := float64(j) * 0.3
				y := float64(i) * 0.3
				hs[i][j] = 2.5 + 2.0*math.Sin(x-phase)*math.Cos(y*0.5)
				u10[i][j] = 8.0 * math.Sin(y+phase*0.7)
			}
		}
		ds.Records = append(ds.Records, Record{
			Time:   start.Add(time.Duration(k) * 3 * time.Hour),
			Fields: [][][]float64{hs, u10},
		})
	}
	return ds
}

func land(i, j int) bool {
	di := float64(i - 12)
	dj := float64(j - 20)
	return di*di+dj*dj < 16
}
