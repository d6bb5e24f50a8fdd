package modbusctrl

import (
	"encoding/binary"
	"math"

	"github.com/Agrid-Dev/solarthermal/internal/sizing"
)

// Holding registers 0..3 carry the draft inputs in sizing.Fields order,
// scaled to integers.
var inputScale = map[sizing.Field]float64{
	sizing.FieldApartmentCount:          1,
	sizing.FieldAvgBedroomsPerApartment: 100,
	sizing.FieldUsableRoofAreaSqFt:      1,
	sizing.FieldGasCostPerTherm:         100,
}

const (
	holdingCount = 4
	// Each result value spans two input registers (float32, high word first).
	resultValueCount   = 12
	inputRegisterCount = resultValueCount * 2
)

func fieldAt(addr int) (sizing.Field, bool) {
	if addr < 0 || addr >= holdingCount {
		return sizing.FieldUnknown, false
	}
	return sizing.Fields[addr], true
}

func encodeInput(f sizing.Field, v float64) uint16 {
	r := math.Round(v * inputScale[f])
	return uint16(math.Min(math.Max(r, 0), math.MaxUint16))
}

func decodeInput(f sizing.Field, u uint16) float64 {
	return float64(u) / inputScale[f]
}

func resultValues(r sizing.Result) [resultValueCount]float64 {
	return [resultValueCount]float64{
		r.DailyHotWaterGallons,
		r.DailyHeatLoadBTU,
		r.DailyBoilerGasInputBTU,
		r.DailyThermsConsumed,
		r.AnnualThermsConsumed,
		r.AnnualBaselineGasCost,
		r.DailySolarCoveredBTU,
		float64(r.PanelsNeededForSolarFraction),
		float64(r.PanelsFittingRoof),
		float64(r.PanelsToInstall),
		float64(r.ThermalStorageGallons),
		r.AnnualDollarSaved,
	}
}

func resultRegisters(r sizing.Result) [inputRegisterCount]uint16 {
	var regs [inputRegisterCount]uint16
	for i, v := range resultValues(r) {
		bits := math.Float32bits(float32(v))
		regs[2*i] = uint16(bits >> 16)
		regs[2*i+1] = uint16(bits)
	}
	return regs
}

// decodeFloat32 reads a float32 from two registers, high word first.
func decodeFloat32(b []byte) float32 {
	return math.Float32frombits(binary.BigEndian.Uint32(b))
}

func registerBytes(regs []uint16) []byte {
	resp := make([]byte, 1+len(regs)*2)
	resp[0] = byte(len(regs) * 2)
	for i, r := range regs {
		binary.BigEndian.PutUint16(resp[1+i*2:1+i*2+2], r)
	}
	return resp
}
