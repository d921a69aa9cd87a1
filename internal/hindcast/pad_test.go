package hindcast

import (
	"math"
	"testing"
)

func TestPadCellEdgesShape(t *testing.T) {
	// 2 lat rows × 3 lon cols
	values := [][]float64{
		{1, 2, 3},
		{4, 5, 6},
	}

	padded := PadCellEdges(values)

	// Post-transpose shape must be (S+1)×(R+1) = 4×3.
	if len(padded) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(padded))
	}
	for j, row := range padded {
		if len(row) != 3 {
			t.Fatalf("row %d: expected 3 cols, got %d", j, len(row))
		}
	}

	// Transposition: padded[j][i] == values[i][j].
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			if padded[j][i] != values[i][j] {
				t.Errorf("padded[%d][%d] = %v, want %v", j, i, padded[j][i], values[i][j])
			}
		}
	}

	// Duplicated edge row and column equal their neighbors.
	for i := 0; i < 3; i++ {
		if padded[3][i] != padded[2][i] {
			t.Errorf("edge row mismatch at col %d: %v != %v", i, padded[3][i], padded[2][i])
		}
	}
	for j := 0; j < 4; j++ {
		if padded[j][2] != padded[j][1] {
			t.Errorf("edge col mismatch at row %d: %v != %v", j, padded[j][2], padded[j][1])
		}
	}
}

func TestPadCellEdgesPropagatesNoData(t *testing.T) {
	values := [][]float64{
		{1, 2},
		{3, NoData()},
	}

	padded := PadCellEdges(values)
	mask := VisibilityMask(padded)

	if len(padded) != 3 || len(padded[0]) != 3 {
		t.Fatalf("expected 3×3 padded matrix, got %d×%d", len(padded), len(padded[0]))
	}

	// The NoData cell sits at values[1][1]; duplication replicates it across
	// the padded grid's bottom-right 2×2 block (transposed coordinates).
	falseCount := 0
	for j := range mask {
		for i := range mask[j] {
			want := !IsNoData(padded[j][i])
			if mask[j][i] != want {
				t.Errorf("mask[%d][%d] = %v, want %v", j, i, mask[j][i], want)
			}
			if !mask[j][i] {
				falseCount++
				if j < 1 || i < 1 {
					t.Errorf("unexpected masked cell at [%d][%d]", j, i)
				}
			}
		}
	}
	if falseCount != 4 {
		t.Errorf("expected 4 masked cells, got %d", falseCount)
	}
}

func TestVisibilityMaskMatchesSentinel(t *testing.T) {
	padded := [][]float64{
		{1, NoData()},
		{NoData(), 4},
	}
	mask := VisibilityMask(padded)
	for j := range padded {
		for i := range padded[j] {
			if mask[j][i] != !math.IsNaN(padded[j][i]) {
				t.Errorf("mask[%d][%d] disagrees with sentinel", j, i)
			}
		}
	}
}

func TestPadCellEdgesEmpty(t *testing.T) {
	if got := PadCellEdges(nil); got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
}
