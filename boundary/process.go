package boundary

import (
	"math"
	"strings"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/foamcase/caseerr"
	"github.com/notargets/foamcase/geometry"
	"github.com/notargets/foamcase/material"
	"github.com/notargets/foamcase/quantity"
	"github.com/notargets/foamcase/solver"
)

// ScreenDragCoeff is the drag coefficient of a screen wire (Simmons; valid for Re > ~300)
const ScreenDragCoeff = 1.0

// ScreenPressureDropCoeff is the Simmons pressure drop coefficient of a square mesh screen
// of wire diameter d and spacing s.
func ScreenPressureDropCoeff(d, s float64) float64 {
	beta := math.Pow(1-d/s, 2)
	return ScreenDragCoeff * (1 - beta)
}

// ValidateLabels checks that every label is non-empty, free of spaces and unique.
func ValidateLabels(bs []Boundary) error {
	for _, b := range bs {
		if b.Label == "" || strings.ContainsAny(b.Label, " \t") {
			return caseerr.Validationf(b.Label, "boundary condition label is not valid: may not contain spaces")
		}
	}
	seen := make(map[string]bool, len(bs))
	for _, b := range bs {
		if seen[b.Label] {
			return caseerr.Validationf(b.Label, "boundary condition label is duplicated")
		}
		seen[b.Label] = true
	}
	return nil
}

// Process derives the settings of each boundary for the selected solver. Velocities given
// by magnitude are directed along the normal of a planar face found through faces. The
// first failure aborts processing; no boundary is skipped.
func Process(bs []Boundary, name solver.Name, fluids []material.Properties,
	faces geometry.Resolver) (reg *Registry, err error) {
	if err = ValidateLabels(bs); err != nil {
		return
	}
	reg = NewRegistry()
	for _, b := range bs {
		var s Settings
		if s, err = processOne(b, name, fluids, faces); err != nil {
			return nil, err
		}
		reg.add(s)
	}
	log.WithFields(log.Fields{
		"boundaries": reg.Len(),
		"solver":     name,
	}).Debug("processed boundary conditions")
	return
}

// siConverter converts quantities to SI, keeping the first failure.
type siConverter struct {
	owner string
	err   error
}

func (c *siConverter) conv(field string, q quantity.Quantity, units string) (v float64) {
	if c.err != nil {
		return
	}
	var err error
	if v, err = q.AsOr(units, 0); err != nil {
		c.err = caseerr.Validationf(c.owner, "%s: %v", field, err)
	}
	return
}

func checkEnums(b Boundary) error {
	switch {
	case !b.BoundaryType.Allows(b.BoundarySubType):
		return caseerr.Validationf(b.Label, "sub-type %s is not a kind of %s boundary",
			b.BoundarySubType, b.BoundaryType)
	case !validThermal(b.ThermalBoundaryType):
		return caseerr.Validationf(b.Label, "unknown thermal boundary type %q", b.ThermalBoundaryType)
	}
	switch b.PorousBaffleMethod {
	case PorousCoeff, PorousScreen:
	default:
		return caseerr.Validationf(b.Label, "unknown porous baffle method %q", b.PorousBaffleMethod)
	}
	switch b.TurbulenceInletSpecification {
	case TKEAndSpecDissipationRate, IntensityAndLengthScale:
	default:
		return caseerr.Validationf(b.Label, "unknown turbulence inlet specification %q",
			b.TurbulenceInletSpecification)
	}
	return nil
}

func processOne(b Boundary, name solver.Name, fluids []material.Properties,
	faces geometry.Resolver) (s Settings, err error) {
	if err = checkEnums(b); err != nil {
		return
	}
	c := &siConverter{owner: b.Label}
	s = Settings{
		Label:                        b.Label,
		BoundaryType:                 b.BoundaryType,
		BoundarySubType:              b.BoundarySubType,
		References:                   b.References,
		VelocityIsCartesian:          b.VelocityIsCartesian,
		Ux:                           c.conv("Ux", b.Ux, "m/s"),
		Uy:                           c.conv("Uy", b.Uy, "m/s"),
		Uz:                           c.conv("Uz", b.Uz, "m/s"),
		VelocityMag:                  c.conv("VelocityMag", b.VelocityMag, "m/s"),
		DirectionFace:                b.DirectionFace,
		ReverseNormal:                b.ReverseNormal,
		Pressure:                     c.conv("Pressure", b.Pressure, "Pa"),
		SlipRatio:                    c.conv("SlipRatio", b.SlipRatio, ""),
		VolFlowRate:                  c.conv("VolFlowRate", b.VolFlowRate, "m^3/s"),
		MassFlowRate:                 c.conv("MassFlowRate", b.MassFlowRate, "kg/s"),
		PorousBaffleMethod:           b.PorousBaffleMethod,
		PressureDropCoeff:            c.conv("PressureDropCoeff", b.PressureDropCoeff, ""),
		ScreenWireDiameter:           c.conv("ScreenWireDiameter", b.ScreenWireDiameter, "m"),
		ScreenSpacing:                c.conv("ScreenSpacing", b.ScreenSpacing, "m"),
		ThermalBoundaryType:          b.ThermalBoundaryType,
		Temperature:                  c.conv("Temperature", b.Temperature, "K"),
		HeatFlux:                     c.conv("HeatFlux", b.HeatFlux, "W/m^2"),
		HeatTransferCoeff:            c.conv("HeatTransferCoeff", b.HeatTransferCoeff, "W/m^2/K"),
		TurbulenceInletSpecification: b.TurbulenceInletSpecification,
		TurbulentKineticEnergy:       c.conv("TurbulentKineticEnergy", b.TurbulentKineticEnergy, "m^2/s^2"),
		SpecificDissipationRate:      c.conv("SpecificDissipationRate", b.SpecificDissipationRate, "1/s"),
		TurbulenceIntensity:          c.conv("TurbulenceIntensity", b.TurbulenceIntensity, ""),
		TurbulenceLengthScale:        c.conv("TurbulenceLengthScale", b.TurbulenceLengthScale, "m"),
	}
	if err = c.err; err != nil {
		return
	}

	if !s.VelocityIsCartesian {
		var u r3.Vec
		if u, err = velocityFromFace(b, s.VelocityMag, faces); err != nil {
			return
		}
		s.Ux, s.Uy, s.Uz = u.X, u.Y, u.Z
	}

	if name.IsIncompressible() {
		var kp float64
		if kp, err = KinematicPressure(b.Label, s.Pressure, fluids); err != nil {
			return
		}
		s.KinematicPressure = &kp
	}

	if s.PorousBaffleMethod == PorousScreen {
		if s.ScreenSpacing <= 0 {
			return s, caseerr.Validationf(b.Label, "screen spacing must be positive")
		}
		s.PressureDropCoeff = ScreenPressureDropCoeff(s.ScreenWireDiameter, s.ScreenSpacing)
	}

	if name.IsVOF() {
		if err = material.CheckFractionNames(b.Label, fluids, b.VolumeFractions); err != nil {
			return
		}
		s.VolumeFractions, err = material.NormaliseFractions(b.Label, fluids, b.VolumeFractions,
			name == solver.MultiphaseInterFoam)
	}
	return
}

// KinematicPressure divides p by the density of the first fluid.
func KinematicPressure(owner string, p float64, fluids []material.Properties) (float64, error) {
	if len(fluids) == 0 || fluids[0].Density == nil || *fluids[0].Density == 0 {
		return 0, caseerr.Validationf(owner, "kinematic pressure needs the density of the first fluid")
	}
	return p / *fluids[0].Density, nil
}

// DirectionReference splits a direction face "Object:Face". An empty object name means the
// boundary's own first reference.
func DirectionReference(b Boundary) (ref geometry.Reference, err error) {
	parts := strings.SplitN(b.DirectionFace, ":", 2)
	switch {
	case parts[0] == "":
		if len(b.References) == 0 {
			return ref, caseerr.New(caseerr.ErrInvalidDirectionFace, b.Label,
				"no direction face given and the boundary has no references")
		}
		return b.References[0], nil
	case len(parts) < 2 || parts[1] == "":
		return ref, caseerr.New(caseerr.ErrInvalidDirectionFace, b.Label,
			"%q is not of the form Object:Face", b.DirectionFace)
	}
	return geometry.Reference{parts[0], parts[1]}, nil
}

func velocityFromFace(b Boundary, mag float64, faces geometry.Resolver) (u r3.Vec, err error) {
	var (
		ref  geometry.Reference
		face geometry.Face
	)
	if ref, err = DirectionReference(b); err != nil {
		return
	}
	if faces == nil {
		return u, caseerr.New(caseerr.ErrInvalidDirectionFace, b.Label,
			"%s: no geometry loaded to resolve the face", ref)
	}
	if face, err = faces.ResolveFace(ref.Object(), ref.Face()); err != nil {
		return u, caseerr.New(caseerr.ErrInvalidDirectionFace, b.Label,
			"%s is not a valid, planar face: %v", ref, err)
	}
	if !face.IsPlanar() {
		return u, caseerr.New(caseerr.ErrInvalidDirectionFace, b.Label,
			"%s is not a valid, planar face", ref)
	}
	n := face.NormalAt(0.5, 0.5)
	if b.ReverseNormal {
		n = r3.Scale(-1, n)
	}
	return r3.Scale(mag, n), nil
}
