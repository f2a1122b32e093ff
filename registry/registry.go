package registry

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"sort"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed registry.yml
var defaultRegistry []byte

// Registry maps cities to operator names and operator names to descriptors
type Registry struct {
	cities    map[string][]string
	operators map[string]OperatorDescriptor
}

// New builds a registry from in-memory tables. The maps are copied.
func New(cities map[string][]string, operators map[string]OperatorDescriptor) *Registry {
	r := &Registry{
		cities:    make(map[string][]string, len(cities)),
		operators: make(map[string]OperatorDescriptor, len(operators)),
	}
	for city, ops := range cities {
		r.cities[city] = slices.Clone(ops)
	}
	for name, d := range operators {
		d.Name = name
		r.operators[name] = d
	}
	return r
}

// Default returns the registry embedded in the binary
func Default() (*Registry, error) {
	return Parse(defaultRegistry)
}

// Load reads a registry file; an empty path selects the embedded registry
func Load(path string) (*Registry, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML registry document
func Parse(data []byte) (*Registry, error) {
	var f registryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}
	if len(f.Cities) == 0 {
		return nil, fmt.Errorf("parse registry: no cities")
	}
	v := validator.New()
	for name, d := range f.Operators {
		if err := v.Struct(d); err != nil {
			return nil, fmt.Errorf("operator %q: %w", name, err)
		}
	}
	for city, ops := range f.Cities {
		if len(ops) == 0 {
			return nil, fmt.Errorf("city %q: no operators", city)
		}
	}
	return New(f.Cities, f.Operators), nil
}

// LookupCity returns the operators serving city (exact, case-sensitive match)
func (r *Registry) LookupCity(city string) ([]string, bool) {
	ops, ok := r.cities[city]
	if !ok {
		return nil, false
	}
	return slices.Clone(ops), true
}

// LookupOperator returns the descriptor for an operator name
func (r *Registry) LookupOperator(name string) (OperatorDescriptor, bool) {
	d, ok := r.operators[name]
	return d, ok
}

// Cities returns all known city names, sorted
func (r *Registry) Cities() []string {
	out := make([]string, 0, len(r.cities))
	for c := range r.cities {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
