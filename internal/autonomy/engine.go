package autonomy

import (
	"errors"
	"fmt"
)

// ErrUnknownModel is returned when no calculator is registered under the requested name.
var ErrUnknownModel = errors.New("unknown calculation model")

// Engine holds the registered calculation models and dispatches inputs to them.
type Engine struct {
	calculators []Calculator
}

// NewEngine creates a new Engine with no calculators registered.
func NewEngine() *Engine {
	return &Engine{
		calculators: make([]Calculator, 0),
	}
}

// Register adds a Calculator. The first registered calculator is the default model.
// Register panics if a calculator with the same Name() is already registered.
func (e *Engine) Register(c Calculator) {
	for _, existing := range e.calculators {
		if existing.Name() == c.Name() {
			panic(fmt.Sprintf("autonomy: calculator %q already registered", c.Name()))
		}
	}
	e.calculators = append(e.calculators, c)
}

// Names returns the registered model names in registration order.
func (e *Engine) Names() []string {
	names := make([]string, 0, len(e.calculators))
	for _, c := range e.calculators {
		names = append(names, c.Name())
	}
	return names
}

// Calculator looks up a model by name. An empty name selects the default model.
func (e *Engine) Calculator(name string) (Calculator, error) {
	if len(e.calculators) == 0 {
		return nil, fmt.Errorf("%w: no calculators registered", ErrUnknownModel)
	}
	if name == "" {
		return e.calculators[0], nil
	}
	for _, c := range e.calculators {
		if c.Name() == name {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownModel, name)
}

// Run calculates in with the named model.
func (e *Engine) Run(name string, in Input) (Result, error) {
	c, err := e.Calculator(name)
	if err != nil {
		return Result{}, err
	}
	return c.Calculate(in), nil
}

// RunAll executes every registered model against the same input and returns the results keyed by name.
func (e *Engine) RunAll(in Input) map[string]Result {
	results := make(map[string]Result, len(e.calculators))
	for _, c := range e.calculators {
		results[c.Name()] = c.Calculate(in)
	}
	return results
}
