// Package modelfile loads correlation model definitions from YAML.
package modelfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ihumphrey-usgs/csm/correlation"
)

// File is the YAML root structure of a model definition file.
type File struct {
	Models []Definition `yaml:"models"`
}

// Definition describes one correlation model.
type Definition struct {
	Name        string       `yaml:"name"`
	Strategy    string       `yaml:"strategy"`
	Parameters  int          `yaml:"parameters"`
	Groups      int          `yaml:"groups"`
	Assignments []Assignment `yaml:"assignments"`
	Curves      []CurveDef   `yaml:"curves"`
}

// Assignment maps one sensor model parameter to a correlation group.
type Assignment struct {
	Parameter int `yaml:"parameter"`
	Group     int `yaml:"group"`
}

// CurveDef is the decay curve for one group.
type CurveDef struct {
	Group        int       `yaml:"group"`
	Times        []float64 `yaml:"times"`
	Correlations []float64 `yaml:"correlations"`
}

// Load reads a model definition file and builds every model in it.
func Load(path string) (map[string]correlation.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model file: %w", err)
	}
	return Parse(data)
}

// Parse builds the models defined in YAML data, keyed by name. Any
// definition the correlation core rejects aborts the whole load.
func Parse(data []byte) (map[string]correlation.Model, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse model file: %w", err)
	}

	models := make(map[string]correlation.Model, len(file.Models))
	for _, def := range file.Models {
		if def.Name == "" {
			return nil, fmt.Errorf("model name is required")
		}
		if _, ok := models[def.Name]; ok {
			return nil, fmt.Errorf("duplicate model name %q", def.Name)
		}
		model, err := build(def)
		if err != nil {
			return nil, fmt.Errorf("model %q: %w", def.Name, err)
		}
		models[def.Name] = model
	}
	return models, nil
}

func build(def Definition) (correlation.Model, error) {
	if def.Strategy != "" && def.Strategy != correlation.FormatLinearDecay {
		return nil, fmt.Errorf("unknown strategy %q", def.Strategy)
	}
	if def.Parameters < 0 || def.Groups < 0 {
		return nil, fmt.Errorf("parameter and group counts must be non-negative")
	}

	model := correlation.NewLinearDecayModel(def.Parameters, def.Groups)
	for _, a := range def.Assignments {
		if err := model.SetGroup(a.Parameter, a.Group); err != nil {
			return nil, fmt.Errorf("assign parameter %d: %w", a.Parameter, err)
		}
	}
	for _, c := range def.Curves {
		if err := model.SetCurveData(c.Group, c.Correlations, c.Times); err != nil {
			return nil, fmt.Errorf("curve for group %d: %w", c.Group, err)
		}
	}
	return model, nil
}
