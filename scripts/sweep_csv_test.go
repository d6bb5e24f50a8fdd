package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/Agrid-Dev/solarthermal/internal/sizing"
)

func TestSweep(t *testing.T) {
	var buf bytes.Buffer
	base := sizing.Input{AvgBedroomsPerApartment: 2, UsableRoofAreaSqFt: 300, GasCostPerTherm: 2.5}

	if err := Sweep(&buf, base, 8, 12); err != nil {
		t.Fatal(err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 6 {
		t.Fatalf("expected header + 5 rows, got %d", len(rows))
	}
	last := rows[len(rows)-1]
	// 10 apartments need 12 panels; 12 apartments need more, roof caps at 9.
	if last[0] != "12" || last[5] != "9" || last[6] != "9" {
		t.Fatalf("unexpected last row: %v", last)
	}
}

func TestSweep_RejectsOutOfRange(t *testing.T) {
	var buf bytes.Buffer
	base := sizing.Input{AvgBedroomsPerApartment: 2, UsableRoofAreaSqFt: 300, GasCostPerTherm: 2.5}

	if err := Sweep(&buf, base, 0, 1); err == nil {
		t.Fatal("expected error for zero apartments")
	}
}

func TestRunWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.csv")
	if err := run(path); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 201 {
		t.Fatalf("expected header + 200 rows, got %d", len(rows))
	}
}

func TestRunReportsCreateError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "sweep.csv")
	if err := run(path); err == nil {
		t.Fatal("expected error for unwritable path")
	}
}
