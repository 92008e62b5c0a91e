// Package registry tracks the correlation models served by the daemon.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/ihumphrey-usgs/csm/correlation"
)

// ErrNotFound is returned when a model name is not registered.
var ErrNotFound = errors.New("model not registered")

// Info summarises one registered model.
type Info struct {
	Name       string `json:"name"`
	Strategy   string `json:"strategy"`
	Parameters int    `json:"parameters"`
	Groups     int    `json:"groups"`
}

// Registry is a named collection of correlation models. The correlation
// core provides no internal locking, so every model operation goes through
// the registry's single-writer/multi-reader lock.
type Registry struct {
	mu     sync.RWMutex
	models map[string]correlation.Model
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{models: make(map[string]correlation.Model)}
}

// Add registers a model under name. Duplicate names are rejected.
func (r *Registry) Add(name string, model correlation.Model) error {
	if name == "" {
		return fmt.Errorf("model name is required")
	}
	if model == nil {
		return fmt.Errorf("model %q: nil model", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.models[name]; ok {
		return fmt.Errorf("model %q already registered", name)
	}
	r.models[name] = model
	return nil
}

// List returns summaries of all registered models, sorted by name.
func (r *Registry) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]Info, 0, len(r.models))
	for name, model := range r.models {
		infos = append(infos, describe(name, model))
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// Describe returns the summary of one model.
func (r *Registry) Describe(name string) (Info, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	model, ok := r.models[name]
	if !ok {
		return Info{}, fmt.Errorf("model %q: %w", name, ErrNotFound)
	}
	return describe(name, model), nil
}

// Group returns the group assignment of one parameter.
func (r *Registry) Group(name string, smParamIndex int) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	model, ok := r.models[name]
	if !ok {
		return 0, fmt.Errorf("model %q: %w", name, ErrNotFound)
	}
	return model.Group(smParamIndex)
}

// SetGroup assigns a parameter to a group.
func (r *Registry) SetGroup(name string, smParamIndex, groupIndex int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	model, ok := r.models[name]
	if !ok {
		return fmt.Errorf("model %q: %w", name, ErrNotFound)
	}
	return model.SetGroup(smParamIndex, groupIndex)
}

// Curve returns the stored decay curve of one group. Only linear-decay
// models expose curves.
func (r *Registry) Curve(name string, groupIndex int) (correlation.Curve, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	model, ok := r.models[name]
	if !ok {
		return correlation.Curve{}, fmt.Errorf("model %q: %w", name, ErrNotFound)
	}
	decay, ok := model.(*correlation.LinearDecayModel)
	if !ok {
		return correlation.Curve{}, fmt.Errorf("model %q: strategy %q has no curves", name, model.Format())
	}
	return decay.GroupCurve(groupIndex)
}

// SetCurve validates and installs a decay curve for one group.
func (r *Registry) SetCurve(name string, groupIndex int, correlations, times []float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	model, ok := r.models[name]
	if !ok {
		return fmt.Errorf("model %q: %w", name, ErrNotFound)
	}
	decay, ok := model.(*correlation.LinearDecayModel)
	if !ok {
		return fmt.Errorf("model %q: strategy %q has no curves", name, model.Format())
	}
	return decay.SetCurveData(groupIndex, correlations, times)
}

// Coefficient evaluates one group's correlation coefficient.
func (r *Registry) Coefficient(name string, groupIndex int, deltaTime float64) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	model, ok := r.models[name]
	if !ok {
		return 0, fmt.Errorf("model %q: %w", name, ErrNotFound)
	}
	return model.Coefficient(groupIndex, deltaTime)
}

// Matrix evaluates the full parameter correlation matrix of one model.
func (r *Registry) Matrix(name string, deltaTime float64) (*mat.SymDense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	model, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("model %q: %w", name, ErrNotFound)
	}
	return correlation.Matrix(model, deltaTime)
}

// Strategy returns the strategy tag of one model.
func (r *Registry) Strategy(name string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	model, ok := r.models[name]
	if !ok {
		return "", fmt.Errorf("model %q: %w", name, ErrNotFound)
	}
	return model.Format(), nil
}

func describe(name string, model correlation.Model) Info {
	return Info{
		Name:       name,
		Strategy:   model.Format(),
		Parameters: model.ParameterCount(),
		Groups:     model.GroupCount(),
	}
}
