package calc

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/agbru/bigcalc/internal/bigint"
)

// ErrUnknownCalculator is returned by Get for names that are not registered.
var ErrUnknownCalculator = errors.New("unknown calculator")

// CalculatorFactory creates and caches calculators by name.
type CalculatorFactory interface {
	// Get returns the calculator registered under name.
	Get(name string) (Calculator, error)
	// List returns the registered names in sorted order.
	List() []string
	// Register adds or replaces a calculator constructor.
	Register(name string, ctor Constructor)
	// GetAll returns one calculator per registered name, keyed by name.
	GetAll() map[string]Calculator
}

// Constructor builds a calculator tuned with the given engine options.
type Constructor func(opts bigint.Options) Calculator

var (
	extraMu   sync.Mutex
	extraCtor = map[string]Constructor{}
)

// RegisterCalculator makes an optional engine available to every factory
// created afterwards. It is meant to be called from init functions of
// build-tagged files.
func RegisterCalculator(name string, ctor Constructor) {
	extraMu.Lock()
	defer extraMu.Unlock()
	extraCtor[name] = ctor
}

// DefaultFactory is the standard CalculatorFactory. It is safe for
// concurrent use.
type DefaultFactory struct {
	mu     sync.RWMutex
	opts   bigint.Options
	ctors  map[string]Constructor
	cached map[string]Calculator
}

// NewDefaultFactory returns a factory with the built-in engines registered
// and tuned with bigint.DefaultOptions.
func NewDefaultFactory() *DefaultFactory {
	return NewFactoryWithOptions(bigint.DefaultOptions())
}

// NewFactoryWithOptions returns a factory whose engines use opts.
func NewFactoryWithOptions(opts bigint.Options) *DefaultFactory {
	f := &DefaultFactory{
		opts:   opts,
		ctors:  make(map[string]Constructor),
		cached: make(map[string]Calculator),
	}
	f.ctors[KaratsubaName] = NewKaratsubaCalculator
	f.ctors[SchoolbookName] = func(bigint.Options) Calculator { return NewSchoolbookCalculator() }
	f.ctors[MathBigName] = func(bigint.Options) Calculator { return NewMathBigCalculator() }

	extraMu.Lock()
	for name, ctor := range extraCtor {
		f.ctors[name] = ctor
	}
	extraMu.Unlock()
	return f
}

// Register adds or replaces a constructor and drops any cached instance.
func (f *DefaultFactory) Register(name string, ctor Constructor) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ctors[name] = ctor
	delete(f.cached, name)
}

// Get returns the calculator registered under name, creating it on first
// use.
func (f *DefaultFactory) Get(name string) (Calculator, error) {
	f.mu.RLock()
	if c, ok := f.cached[name]; ok {
		f.mu.RUnlock()
		return c, nil
	}
	f.mu.RUnlock()

	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.cached[name]; ok {
		return c, nil
	}
	ctor, ok := f.ctors[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %v)", ErrUnknownCalculator, name, f.listLocked())
	}
	c := ctor(f.opts)
	f.cached[name] = c
	return c, nil
}

// List returns the registered names in sorted order.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.listLocked()
}

func (f *DefaultFactory) listLocked() []string {
	names := make([]string, 0, len(f.ctors))
	for name := range f.ctors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll instantiates every registered calculator.
func (f *DefaultFactory) GetAll() map[string]Calculator {
	all := make(map[string]Calculator)
	for _, name := range f.List() {
		if c, err := f.Get(name); err == nil {
			all[name] = c
		}
	}
	return all
}
