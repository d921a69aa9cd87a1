package archive

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ivlev/ww3anim/internal/hindcast"
)

func testGrid() hindcast.Grid {
	return hindcast.Grid{
		Lats:    []float64{10, 11},
		Lons:    []float64{20, 21, 22},
		LatStep: 1,
		LonStep: 1,
	}
}

func testChannels() []hindcast.Channel {
	return []hindcast.Channel{
		{Name: "hs", Description: "Significant wave height", Unit: "m"},
	}
}

func writeTestArchive(t *testing.T, steps int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.ww3a")

	w, err := Create(path, testGrid(), testChannels())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	start := time.Date(2005, 8, 25, 0, 0, 0, 0, time.UTC)
	for k := 0; k < steps; k++ {
		field := [][]float64{
			{float64(k), 1, 2},
			{3, 4, hindcast.NoData()},
		}
		err := w.Append(hindcast.Record{
			Time:   start.Add(time.Duration(k) * 3 * time.Hour),
			Fields: [][][]float64{field},
		})
		if err != nil {
			t.Fatalf("Append record %d failed: %v", k, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	return path
}

func TestHeaderRoundTrip(t *testing.T) {
	path := writeTestArchive(t, 4)

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	h, err := ReadHeader(f)
	if err != nil {
		t.Fatalf("ReadHeader failed: %v", err)
	}
	if h.Count != 4 {
		t.Errorf("Count = %d, want 4", h.Count)
	}
	if h.Grid.Rows() != 2 || h.Grid.Cols() != 3 {
		t.Errorf("grid %d×%d, want 2×3", h.Grid.Rows(), h.Grid.Cols())
	}
	if len(h.Channels) != 1 || h.Channels[0].Description != "Significant wave height" {
		t.Errorf("unexpected channel table: %+v", h.Channels)
	}
}

func TestReadRecordSeeksDirectly(t *testing.T) {
	path := writeTestArchive(t, 5)

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	h, err := ReadHeader(f)
	if err != nil {
		t.Fatalf("ReadHeader failed: %v", err)
	}

	// Read record 3 without touching 0..2.
	rec, err := ReadRecord(f, h, 3)
	if err != nil {
		t.Fatalf("ReadRecord failed: %v", err)
	}
	if rec.Fields[0][0][0] != 3 {
		t.Errorf("record 3 first cell = %v, want 3", rec.Fields[0][0][0])
	}
	if !hindcast.IsNoData(rec.Fields[0][1][2]) {
		t.Errorf("expected NoData at [1][2], got %v", rec.Fields[0][1][2])
	}
	want := time.Date(2005, 8, 25, 9, 0, 0, 0, time.UTC)
	if !rec.Time.Equal(want) {
		t.Errorf("record 3 time = %v, want %v", rec.Time, want)
	}

	// Out-of-range index is rejected.
	if _, err := ReadRecord(f, h, 5); err == nil {
		t.Error("expected error for out-of-range index")
	}
	if _, err := ReadRecord(f, h, -1); err == nil {
		t.Error("expected error for negative index")
	}
}

func TestReadHeaderRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.bin")
	if err := os.WriteFile(path, []byte("not an archive at all"), 0644); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := ReadHeader(f); err == nil {
		t.Error("expected error for non-archive input")
	}
}
