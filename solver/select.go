package solver

import (
	log "github.com/sirupsen/logrus"

	"github.com/notargets/foamcase/caseerr"
)

type Name string

const (
	SimpleFoam          Name = "simpleFoam"
	PorousSimpleFoam    Name = "porousSimpleFoam"
	PimpleFoam          Name = "pimpleFoam"
	BuoyantSimpleFoam   Name = "buoyantSimpleFoam"
	BuoyantPimpleFoam   Name = "buoyantPimpleFoam"
	Hisa                Name = "hisa"
	InterFoam           Name = "interFoam"
	MultiphaseInterFoam Name = "multiphaseInterFoam"
)

// IsIncompressible reports whether the solver works with kinematic pressure.
func (n Name) IsIncompressible() bool {
	switch n {
	case SimpleFoam, PorousSimpleFoam, PimpleFoam:
		return true
	}
	return false
}

// IsVOF reports whether the solver tracks phase volume fractions.
func (n Name) IsVOF() bool {
	return n == InterFoam || n == MultiphaseInterFoam
}

// SupportsPotentialFlowP reports whether pressure can be initialised from a potential flow solution.
func (n Name) SupportsPotentialFlowP() bool {
	return n.IsIncompressible() || n == Hisa
}

// Select picks the solver for a combination of physics, number of fluids and presence of
// porous media. The rules are tried in order; the first one that applies decides.
func Select(ps PhysicsSettings, materialCount int, porous bool) (name Name, err error) {
	switch ps.Phase {
	case Single:
		if materialCount != 1 {
			return "", caseerr.Unsupportedf(string(ps.Phase),
				"exactly one material required for single phase simulation, got %d", materialCount)
		}
		switch ps.Flow {
		case Incompressible:
			switch {
			case ps.Thermal != NoThermal:
				return "", caseerr.Unsupportedf(string(ps.Thermal),
					"only isothermal simulation currently supported for incompressible flow")
			case ps.Time == Transient:
				name = PimpleFoam
			case porous:
				name = PorousSimpleFoam
			default:
				name = SimpleFoam
			}
		case Compressible:
			if ps.Time == Transient {
				name = BuoyantPimpleFoam
			} else {
				name = BuoyantSimpleFoam
			}
		case HighMachCompressible:
			name = Hisa
		default:
			return "", caseerr.Unsupportedf(string(ps.Flow), "flow model currently not supported")
		}
	case FreeSurface:
		switch {
		case ps.Time != Transient:
			return "", caseerr.Unsupportedf(string(ps.Time),
				"only transient analysis is supported for free surface flow simulation")
		case ps.Thermal != NoThermal:
			return "", caseerr.Unsupportedf(string(ps.Thermal),
				"only isothermal analysis is supported for free surface flow simulation")
		case materialCount == 2:
			name = InterFoam
		case materialCount > 2:
			name = MultiphaseInterFoam
		default:
			return "", caseerr.Unsupportedf(string(ps.Phase),
				"at least two materials required for free surface simulation, got %d", materialCount)
		}
	default:
		return "", caseerr.Unsupportedf(string(ps.Phase), "phase model currently not supported")
	}
	log.WithFields(log.Fields{
		"phase":     ps.Phase,
		"flow":      ps.Flow,
		"time":      ps.Time,
		"materials": materialCount,
		"porous":    porous,
	}).Debugf("selected solver %s", name)
	return
}
