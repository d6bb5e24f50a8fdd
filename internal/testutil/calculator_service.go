package testutil

import (
	"github.com/Agrid-Dev/solarthermal/internal/calculator"
	"github.com/Agrid-Dev/solarthermal/internal/sizing"
)

// FakeCalculatorService is a reusable fake implementing ports.CalculatorService.
// Put ONLY what multiple test packages need here.
type FakeCalculatorService struct {
	S calculator.Snapshot

	SetFieldCalled bool
	SetFieldField  sizing.Field
	SetFieldValue  float64
	SetFieldErr    error

	SetFieldsCalled bool
	SetFieldsArg    map[sizing.Field]float64
	SetFieldsErr    error

	CalculateCalled bool
	CalculateErr    error

	SubmitCalled bool
	SubmitArg    sizing.Input
	SubmitErr    error

	ResetCalled bool
}

func ScenarioInput() sizing.Input {
	return sizing.Input{
		ApartmentCount:          10,
		AvgBedroomsPerApartment: 2,
		UsableRoofAreaSqFt:      1000,
		GasCostPerTherm:         2.5,
	}
}

// NewFakeCalculatorService starts in entry mode with a complete draft.
func NewFakeCalculatorService() *FakeCalculatorService {
	return &FakeCalculatorService{
		S: calculator.Snapshot{
			Mode:  calculator.ModeEntry,
			Draft: ScenarioInput(),
		},
	}
}

func (f *FakeCalculatorService) Get() calculator.Snapshot { return f.S }

func (f *FakeCalculatorService) SetField(field sizing.Field, v float64) error {
	f.SetFieldCalled = true
	f.SetFieldField = field
	f.SetFieldValue = v
	if f.SetFieldErr != nil {
		return f.SetFieldErr
	}
	f.S.Draft = f.S.Draft.With(field, v)
	return nil
}

func (f *FakeCalculatorService) Bounds() sizing.Bounds { return sizing.DefaultBounds() }

func (f *FakeCalculatorService) SetFields(values map[sizing.Field]float64) error {
	f.SetFieldsCalled = true
	f.SetFieldsArg = values
	if f.SetFieldsErr != nil {
		return f.SetFieldsErr
	}
	for field, v := range values {
		f.S.Draft = f.S.Draft.With(field, v)
	}
	return nil
}

func (f *FakeCalculatorService) Calculate() error {
	f.CalculateCalled = true
	if f.CalculateErr != nil {
		return f.CalculateErr
	}
	f.S.Result = sizing.Compute(f.S.Draft)
	f.S.Mode = calculator.ModeResults
	return nil
}

func (f *FakeCalculatorService) Submit(in sizing.Input) error {
	f.SubmitCalled = true
	f.SubmitArg = in
	if f.SubmitErr != nil {
		return f.SubmitErr
	}
	f.S = calculator.Snapshot{Mode: calculator.ModeResults, Draft: in, Result: sizing.Compute(in)}
	return nil
}

func (f *FakeCalculatorService) Reset() {
	f.ResetCalled = true
	f.S = calculator.Snapshot{Mode: calculator.ModeEntry}
}
