package ports

import (
	"github.com/Agrid-Dev/solarthermal/internal/calculator"
	"github.com/Agrid-Dev/solarthermal/internal/sizing"
)

// CalculatorService is the control-plane port used by controllers (HTTP/MQTT/etc).
type CalculatorService interface {
	Get() calculator.Snapshot
	Bounds() sizing.Bounds
	SetField(sizing.Field, float64) error
	SetFields(map[sizing.Field]float64) error
	Calculate() error
	Submit(sizing.Input) error
	Reset()
}
