package boundary

import (
	"encoding/json"

	"github.com/notargets/foamcase/geometry"
	"github.com/notargets/foamcase/quantity"
)

// Boundary is a fluid boundary condition as entered by the user.
type Boundary struct {
	Label                        string                       `json:"Label"`
	BoundaryType                 Type                         `json:"BoundaryType"`
	BoundarySubType              SubType                      `json:"BoundarySubType"`
	References                   []geometry.Reference         `json:"References"`
	VelocityIsCartesian          bool                         `json:"VelocityIsCartesian"`
	Ux                           quantity.Quantity            `json:"Ux"`
	Uy                           quantity.Quantity            `json:"Uy"`
	Uz                           quantity.Quantity            `json:"Uz"`
	VelocityMag                  quantity.Quantity            `json:"VelocityMag"`
	DirectionFace                string                       `json:"DirectionFace"`
	ReverseNormal                bool                         `json:"ReverseNormal"`
	Pressure                     quantity.Quantity            `json:"Pressure"`
	SlipRatio                    quantity.Quantity            `json:"SlipRatio"`
	VolFlowRate                  quantity.Quantity            `json:"VolFlowRate"`
	MassFlowRate                 quantity.Quantity            `json:"MassFlowRate"`
	PorousBaffleMethod           PorousMethod                 `json:"PorousBaffleMethod"`
	PressureDropCoeff            quantity.Quantity            `json:"PressureDropCoeff"`
	ScreenWireDiameter           quantity.Quantity            `json:"ScreenWireDiameter"`
	ScreenSpacing                quantity.Quantity            `json:"ScreenSpacing"`
	ThermalBoundaryType          ThermalType                  `json:"ThermalBoundaryType"`
	Temperature                  quantity.Quantity            `json:"Temperature"`
	HeatFlux                     quantity.Quantity            `json:"HeatFlux"`
	HeatTransferCoeff            quantity.Quantity            `json:"HeatTransferCoeff"`
	TurbulenceInletSpecification TurbulenceSpec               `json:"TurbulenceInletSpecification"`
	TurbulentKineticEnergy       quantity.Quantity            `json:"TurbulentKineticEnergy"`
	SpecificDissipationRate      quantity.Quantity            `json:"SpecificDissipationRate"`
	TurbulenceIntensity          quantity.Quantity            `json:"TurbulenceIntensity"`
	TurbulenceLengthScale        quantity.Quantity            `json:"TurbulenceLengthScale"`
	VolumeFractions              map[string]quantity.Quantity `json:"VolumeFractions"`
}

// Default returns a no-slip wall with every optional property at its usual value.
func Default(label string) Boundary {
	return Boundary{
		Label:                        label,
		BoundaryType:                 Wall,
		BoundarySubType:              FixedWall,
		VelocityIsCartesian:          true,
		Ux:                           quantity.MustParse("0 m/s"),
		Uy:                           quantity.MustParse("0 m/s"),
		Uz:                           quantity.MustParse("0 m/s"),
		VelocityMag:                  quantity.MustParse("0 m/s"),
		Pressure:                     quantity.MustParse("0 Pa"),
		SlipRatio:                    quantity.Dimensionless(0),
		VolFlowRate:                  quantity.MustParse("0 m^3/s"),
		MassFlowRate:                 quantity.MustParse("0 kg/s"),
		PorousBaffleMethod:           PorousCoeff,
		PressureDropCoeff:            quantity.Dimensionless(0),
		ScreenWireDiameter:           quantity.MustParse("0.2 mm"),
		ScreenSpacing:                quantity.MustParse("2 mm"),
		ThermalBoundaryType:          FixedValue,
		Temperature:                  quantity.MustParse("293 K"),
		HeatFlux:                     quantity.MustParse("0 W/m^2"),
		HeatTransferCoeff:            quantity.MustParse("0 W/m^2/K"),
		TurbulenceInletSpecification: IntensityAndLengthScale,
		TurbulentKineticEnergy:       quantity.MustParse("0.01 m^2/s^2"),
		SpecificDissipationRate:      quantity.MustParse("1 rad/s"),
		TurbulenceIntensity:          quantity.Dimensionless(0.1),
		TurbulenceLengthScale:        quantity.MustParse("0.1 m"),
	}
}

// UnmarshalJSON fills in defaults for any property missing from data. A boundary whose
// type is given without a sub-type gets that type's first sub-type.
func (b *Boundary) UnmarshalJSON(data []byte) error {
	type plain Boundary
	p := plain(Default(""))
	p.BoundarySubType = ""
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	if p.BoundarySubType == "" {
		p.BoundarySubType = SubTypes[p.BoundaryType][0]
	}
	*b = Boundary(p)
	return nil
}

// Settings are the processed values of one boundary, in SI units.
type Settings struct {
	Label                        string               `json:"Label"`
	BoundaryType                 Type                 `json:"BoundaryType"`
	BoundarySubType              SubType              `json:"BoundarySubType"`
	References                   []geometry.Reference `json:"References"`
	VelocityIsCartesian          bool                 `json:"VelocityIsCartesian"`
	Ux                           float64              `json:"Ux"`
	Uy                           float64              `json:"Uy"`
	Uz                           float64              `json:"Uz"`
	VelocityMag                  float64              `json:"VelocityMag"`
	DirectionFace                string               `json:"DirectionFace"`
	ReverseNormal                bool                 `json:"ReverseNormal"`
	Pressure                     float64              `json:"Pressure"`
	KinematicPressure            *float64             `json:"KinematicPressure,omitempty"`
	SlipRatio                    float64              `json:"SlipRatio"`
	VolFlowRate                  float64              `json:"VolFlowRate"`
	MassFlowRate                 float64              `json:"MassFlowRate"`
	PorousBaffleMethod           PorousMethod         `json:"PorousBaffleMethod"`
	PressureDropCoeff            float64              `json:"PressureDropCoeff"`
	ScreenWireDiameter           float64              `json:"ScreenWireDiameter"`
	ScreenSpacing                float64              `json:"ScreenSpacing"`
	ThermalBoundaryType          ThermalType          `json:"ThermalBoundaryType"`
	Temperature                  float64              `json:"Temperature"`
	HeatFlux                     float64              `json:"HeatFlux"`
	HeatTransferCoeff            float64              `json:"HeatTransferCoeff"`
	TurbulenceInletSpecification TurbulenceSpec       `json:"TurbulenceInletSpecification"`
	TurbulentKineticEnergy       float64              `json:"TurbulentKineticEnergy"`
	SpecificDissipationRate      float64              `json:"SpecificDissipationRate"`
	TurbulenceIntensity          float64              `json:"TurbulenceIntensity"`
	TurbulenceLengthScale        float64              `json:"TurbulenceLengthScale"`
	VolumeFractions              map[string]float64   `json:"VolumeFractions,omitempty"`
}

// PorousBafflesPresent reports whether any boundary is a porous baffle.
func PorousBafflesPresent(bs []Boundary) bool {
	for _, b := range bs {
		if b.BoundaryType == Baffle && b.BoundarySubType == PorousBaffle {
			return true
		}
	}
	return false
}
