package calculator

import (
	"errors"
	"sync"

	"github.com/Agrid-Dev/solarthermal/internal/sizing"
)

// Snapshot is a consistent copy of the calculator state.
type Snapshot struct {
	Mode   Mode
	Draft  sizing.Input
	Result sizing.Result
}

// Calculator holds the draft inputs and the last result for one client
// session. It validates against its bounds before calling the engine.
type Calculator struct {
	mu     sync.RWMutex
	s      Snapshot
	bounds sizing.Bounds
}

func New(draft sizing.Input, bounds sizing.Bounds) (*Calculator, error) {
	if err := bounds.Check(); err != nil {
		return nil, err
	}
	return &Calculator{
		s:      Snapshot{Mode: ModeEntry, Draft: draft},
		bounds: bounds,
	}, nil
}

func (c *Calculator) Get() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.s
}

// Bounds returns the ranges every draft value is checked against.
func (c *Calculator) Bounds() sizing.Bounds {
	return c.bounds
}

// SetField updates one draft input. Only allowed in entry mode.
func (c *Calculator) SetField(f sizing.Field, v float64) error {
	if err := c.bounds.ValidateField(f, v); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.s.Mode != ModeEntry {
		return ErrNotInEntryMode
	}
	c.s.Draft = c.s.Draft.With(f, v)
	return nil
}

// SetFields updates several draft inputs at once. Either every value is
// stored or, when any value is rejected, none is.
func (c *Calculator) SetFields(values map[sizing.Field]float64) error {
	var errs []error
	for _, f := range sizing.Fields {
		if v, ok := values[f]; ok {
			if err := c.bounds.ValidateField(f, v); err != nil {
				errs = append(errs, err)
			}
		}
	}
	for f := range values {
		if !f.Valid() {
			errs = append(errs, sizing.ErrInvalidField)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.s.Mode != ModeEntry {
		return ErrNotInEntryMode
	}
	draft := c.s.Draft
	for f, v := range values {
		draft = draft.With(f, v)
	}
	c.s.Draft = draft
	return nil
}

// Calculate sizes the current draft and switches to results mode.
func (c *Calculator) Calculate() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.bounds.Validate(c.s.Draft); err != nil {
		return err
	}
	c.s.Result = sizing.Compute(c.s.Draft)
	c.s.Mode = ModeResults
	return nil
}

// Submit replaces the draft with in and sizes it in one step.
func (c *Calculator) Submit(in sizing.Input) error {
	if err := c.bounds.Validate(in); err != nil {
		return err
	}
	res := sizing.Compute(in)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.s = Snapshot{Mode: ModeResults, Draft: in, Result: res}
	return nil
}

// Reset discards the draft and the result together.
func (c *Calculator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.s = Snapshot{Mode: ModeEntry}
}

// Result returns the last result, or ErrNoResult in entry mode.
func (c *Calculator) Result() (sizing.Result, error) {
	s := c.Get()
	if s.Mode != ModeResults {
		return sizing.Result{}, ErrNoResult
	}
	return s.Result, nil
}
