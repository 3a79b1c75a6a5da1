package physics

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/platform2d/parameter"
)

// ErrInvalidMaterial is returned when a material coefficient is out of range
var ErrInvalidMaterial = errors.New("invalid material")

// Material is a named physical profile shared by pointer across bodies
// Treat as immutable after construction
type Material struct {
	Name       string
	Density    float64
	Elasticity float64 // Velocity kept on boundary contact, [0,1]
	Friction   float64 // Velocity kept per frame, [0,1]
}

// Material profiles - pre-defined for zero allocation in hot path

// DefaultMaterial applies to every body created without an explicit material
var DefaultMaterial = &Material{
	Name:       parameter.DefaultMaterialName,
	Density:    parameter.DefaultMaterialDensity,
	Elasticity: parameter.DefaultMaterialElasticity,
	Friction:   parameter.DefaultMaterialFriction,
}

// WaterMaterial is a dull, draggy profile used by liquid regions
var WaterMaterial = &Material{
	Name:       "water",
	Density:    1.0,
	Elasticity: 0.10,
	Friction:   0.80,
}

// NewMaterial validates coefficients and returns a new profile
func NewMaterial(name string, density, elasticity, friction float64) (*Material, error) {
	if density <= 0 {
		return nil, fmt.Errorf("%w: %s density %v must be positive", ErrInvalidMaterial, name, density)
	}
	if elasticity < 0 || elasticity > 1 {
		return nil, fmt.Errorf("%w: %s elasticity %v outside [0,1]", ErrInvalidMaterial, name, elasticity)
	}
	if friction < 0 || friction > 1 {
		return nil, fmt.Errorf("%w: %s friction %v outside [0,1]", ErrInvalidMaterial, name, friction)
	}
	return &Material{Name: name, Density: density, Elasticity: elasticity, Friction: friction}, nil
}

// MustMaterial is NewMaterial for package-level profiles, panics on invalid input
func MustMaterial(name string, density, elasticity, friction float64) *Material {
	m, err := NewMaterial(name, density, elasticity, friction)
	if err != nil {
		panic(err)
	}
	return m
}
