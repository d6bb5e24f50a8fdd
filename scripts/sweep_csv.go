package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/Agrid-Dev/solarthermal/internal/calculator"
	"github.com/Agrid-Dev/solarthermal/internal/sizing"
)

// Sweep sizes base for every apartment count in [from, to] and writes one
// CSV row per building.
func Sweep(w io.Writer, base sizing.Input, from, to int) error {
	calc, err := calculator.New(sizing.Input{}, sizing.DefaultBounds())
	if err != nil {
		return fmt.Errorf("failed to create calculator: %w", err)
	}

	writer := csv.NewWriter(w)

	if err := writer.Write([]string{
		"Apartments", "DailyGallons", "AnnualTherms", "AnnualGasCost",
		"PanelsNeeded", "PanelsFitting", "PanelsToInstall", "StorageGallons", "AnnualSaved",
	}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for n := from; n <= to; n++ {
		in := base
		in.ApartmentCount = n
		if err := calc.Submit(in); err != nil {
			return fmt.Errorf("apartments=%d: %w", n, err)
		}
		r := calc.Get().Result

		if err := writer.Write([]string{
			strconv.Itoa(n),
			fmt.Sprintf("%.2f", r.DailyHotWaterGallons),
			fmt.Sprintf("%.2f", r.AnnualThermsConsumed),
			fmt.Sprintf("%.2f", r.AnnualBaselineGasCost),
			strconv.Itoa(r.PanelsNeededForSolarFraction),
			strconv.Itoa(r.PanelsFittingRoof),
			strconv.Itoa(r.PanelsToInstall),
			strconv.Itoa(r.ThermalStorageGallons),
			fmt.Sprintf("%.2f", r.AnnualDollarSaved),
		}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
		calc.Reset()
	}

	writer.Flush()
	return writer.Error()
}

func main() {
	if err := run("solarthermal_sweep.csv"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run writes the default sweep to path. The file is closed before run
// returns, and a failed close is reported.
func run(path string) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	base := sizing.Input{
		AvgBedroomsPerApartment: 2,
		UsableRoofAreaSqFt:      1000,
		GasCostPerTherm:         2.5,
	}
	return Sweep(file, base, 1, 200)
}
