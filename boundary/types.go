package boundary

import (
	"fmt"
	"strings"
)

// Type is the category of a fluid boundary
type Type uint8

const (
	Wall Type = iota
	Inlet
	Outlet
	Open
	Constraint
	Baffle
)

func (t Type) String() string {
	names := map[Type]string{
		Wall:       "wall",
		Inlet:      "inlet",
		Outlet:     "outlet",
		Open:       "open",
		Constraint: "constraint",
		Baffle:     "baffle",
	}
	if name, ok := names[t]; ok {
		return name
	}
	return "unknown"
}

// TypeNameMap maps boundary category names to Type
// Keys are lowercase for case-insensitive matching
var TypeNameMap = map[string]Type{
	"wall":       Wall,
	"inlet":      Inlet,
	"outlet":     Outlet,
	"open":       Open,
	"constraint": Constraint,
	"baffle":     Baffle,
}

func ParseType(name string) (Type, error) {
	if t, ok := TypeNameMap[strings.ToLower(strings.TrimSpace(name))]; ok {
		return t, nil
	}
	return Wall, fmt.Errorf("unknown boundary type %q", name)
}

func (t Type) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *Type) UnmarshalText(text []byte) (err error) {
	*t, err = ParseType(string(text))
	return
}

// SubType is the specific condition applied within a boundary category
type SubType string

const (
	FixedWall       SubType = "fixedWall"
	SlipWall        SubType = "slipWall"
	PartialSlipWall SubType = "partialSlipWall"
	TranslatingWall SubType = "translatingWall"
	RoughWall       SubType = "roughWall"

	UniformVelocityInlet    SubType = "uniformVelocityInlet"
	VolumetricFlowRateInlet SubType = "volumetricFlowRateInlet"
	MassFlowRateInlet       SubType = "massFlowRateInlet"
	TotalPressureInlet      SubType = "totalPressureInlet"
	StaticPressureInlet     SubType = "staticPressureInlet"

	StaticPressureOutlet  SubType = "staticPressureOutlet"
	UniformVelocityOutlet SubType = "uniformVelocityOutlet"
	OutFlowOutlet         SubType = "outFlowOutlet"

	TotalPressureOpening SubType = "totalPressureOpening"
	FarField             SubType = "farField"

	Symmetry          SubType = "symmetry"
	TwoDBoundingPlane SubType = "twoDBoundingPlane"

	PorousBaffle SubType = "porousBaffle"
)

// SubTypes lists the sub-types allowed for each category; the first is the default.
var SubTypes = map[Type][]SubType{
	Wall:       {FixedWall, SlipWall, PartialSlipWall, TranslatingWall, RoughWall},
	Inlet:      {UniformVelocityInlet, VolumetricFlowRateInlet, MassFlowRateInlet, TotalPressureInlet, StaticPressureInlet},
	Outlet:     {StaticPressureOutlet, UniformVelocityOutlet, OutFlowOutlet},
	Open:       {TotalPressureOpening, FarField},
	Constraint: {Symmetry, TwoDBoundingPlane},
	Baffle:     {PorousBaffle},
}

// Allows reports whether st is one of the sub-types of t.
func (t Type) Allows(st SubType) bool {
	for _, s := range SubTypes[t] {
		if s == st {
			return true
		}
	}
	return false
}

type ThermalType string

const (
	FixedValue        ThermalType = "fixedValue"
	ZeroGradient      ThermalType = "zeroGradient"
	FixedGradient     ThermalType = "fixedGradient"
	HeatTransferCoeff ThermalType = "heatTransferCoeff"
)

var ThermalTypes = []ThermalType{FixedValue, ZeroGradient, FixedGradient, HeatTransferCoeff}

type PorousMethod string

const (
	PorousCoeff  PorousMethod = "porousCoeff"
	PorousScreen PorousMethod = "porousScreen"
)

// TurbulenceSpec is how inlet turbulence is given
type TurbulenceSpec string

const (
	TKEAndSpecDissipationRate TurbulenceSpec = "TKEAndSpecDissipationRate"
	IntensityAndLengthScale   TurbulenceSpec = "intensityAndLengthScale"
)

func validThermal(t ThermalType) bool {
	for _, tt := range ThermalTypes {
		if tt == t {
			return true
		}
	}
	return false
}
