package initial

import (
	"encoding/json"
	"math"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/foamcase/boundary"
	"github.com/notargets/foamcase/caseerr"
	"github.com/notargets/foamcase/material"
	"github.com/notargets/foamcase/quantity"
	"github.com/notargets/foamcase/solver"
)

// Cmu is the k-omega model constant relating k, omega and the turbulent length scale
const Cmu = 0.09

// Values are the initial conditions of the internal field as entered by the user. The
// Boundary* fields name the boundary each Use* option copies from.
type Values struct {
	PotentialFlow            bool                         `json:"PotentialFlow"`
	PotentialFlowP           bool                         `json:"PotentialFlowP"`
	UseInletUValues          bool                         `json:"UseInletUValues"`
	UseOutletPValue          bool                         `json:"UseOutletPValue"`
	UseInletTemperatureValue bool                         `json:"UseInletTemperatureValue"`
	UseInletTurbulenceValues bool                         `json:"UseInletTurbulenceValues"`
	Ux                       quantity.Quantity            `json:"Ux"`
	Uy                       quantity.Quantity            `json:"Uy"`
	Uz                       quantity.Quantity            `json:"Uz"`
	Pressure                 quantity.Quantity            `json:"Pressure"`
	Temperature              quantity.Quantity            `json:"Temperature"`
	K                        quantity.Quantity            `json:"k"`
	Omega                    quantity.Quantity            `json:"omega"`
	VolumeFractions          map[string]quantity.Quantity `json:"VolumeFractions"`
	BoundaryU                string                       `json:"BoundaryU"`
	BoundaryP                string                       `json:"BoundaryP"`
	BoundaryT                string                       `json:"BoundaryT"`
	BoundaryTurb             string                       `json:"BoundaryTurb"`
}

func DefaultValues() Values {
	return Values{
		PotentialFlow:   true,
		UseOutletPValue: true,
		Ux:              quantity.MustParse("0 m/s"),
		Uy:              quantity.MustParse("0 m/s"),
		Uz:              quantity.MustParse("0 m/s"),
		Pressure:        quantity.MustParse("0 Pa"),
		Temperature:     quantity.MustParse("293 K"),
		K:               quantity.MustParse("0.01 m^2/s^2"),
		Omega:           quantity.MustParse("1 rad/s"),
	}
}

func (v *Values) UnmarshalJSON(data []byte) error {
	type plain Values
	p := plain(DefaultValues())
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*v = Values(p)
	return nil
}

// Settings is the initialValues subtree of the case settings, in SI units.
type Settings struct {
	PotentialFlow            bool               `json:"PotentialFlow"`
	PotentialFlowP           bool               `json:"PotentialFlowP"`
	UseInletUValues          bool               `json:"UseInletUValues"`
	UseOutletPValue          bool               `json:"UseOutletPValue"`
	UseInletTemperatureValue bool               `json:"UseInletTemperatureValue"`
	UseInletTurbulenceValues bool               `json:"UseInletTurbulenceValues"`
	Ux                       float64            `json:"Ux"`
	Uy                       float64            `json:"Uy"`
	Uz                       float64            `json:"Uz"`
	Pressure                 float64            `json:"Pressure"`
	KinematicPressure        *float64           `json:"KinematicPressure,omitempty"`
	Temperature              float64            `json:"Temperature"`
	K                        float64            `json:"k"`
	Omega                    float64            `json:"omega"`
	VolumeFractions          map[string]float64 `json:"VolumeFractions,omitempty"`
	BoundaryU                string             `json:"BoundaryU,omitempty"`
	BoundaryP                string             `json:"BoundaryP,omitempty"`
	BoundaryT                string             `json:"BoundaryT,omitempty"`
	BoundaryTurb             string             `json:"BoundaryTurb,omitempty"`
}

// TurbulenceFromIntensity converts an inlet speed U, turbulence intensity I and eddy length
// scale L to turbulent kinetic energy and specific dissipation rate.
func TurbulenceFromIntensity(U, I, L float64) (k, omega float64) {
	k = 1.5 * math.Pow(U*I, 2)
	omega = math.Sqrt(k) / (math.Pow(Cmu, 0.25) * L)
	return
}

// Process derives the initial field values. Boundaries must already be processed since
// values may be copied from them.
func Process(v Values, ps solver.PhysicsSettings, name solver.Name, fluids []material.Properties,
	reg *boundary.Registry) (s Settings, err error) {
	var (
		owner = "initialValues"
		src   boundary.Settings
	)
	if s, err = convert(owner, v); err != nil {
		return
	}

	if name.IsVOF() {
		if err = material.CheckFractionNames(owner, fluids, v.VolumeFractions); err != nil {
			return
		}
		if s.VolumeFractions, err = material.NormaliseFractions(owner, fluids, v.VolumeFractions,
			name == solver.MultiphaseInterFoam); err != nil {
			return
		}
	}

	if v.PotentialFlowP && !name.SupportsPotentialFlowP() {
		return s, caseerr.Unsupportedf(string(name), "selected solver does not support potential pressure initialisation")
	}

	if v.UseInletUValues {
		if src, err = source(reg, v.BoundaryU, "velocity"); err != nil {
			return
		}
		switch src.BoundarySubType {
		case boundary.UniformVelocityInlet, boundary.FarField:
			s.Ux, s.Uy, s.Uz = src.Ux, src.Uy, src.Uz
		default:
			return s, incompatible(src, "initial velocity")
		}
	}

	if v.UseOutletPValue {
		if src, err = source(reg, v.BoundaryP, "pressure"); err != nil {
			return
		}
		switch src.BoundarySubType {
		case boundary.StaticPressureOutlet, boundary.TotalPressureOpening, boundary.TotalPressureInlet,
			boundary.StaticPressureInlet, boundary.FarField:
			s.Pressure = src.Pressure
		default:
			return s, incompatible(src, "initial pressure")
		}
	}

	if name.IsIncompressible() {
		var kp float64
		if kp, err = boundary.KinematicPressure(owner, s.Pressure, fluids); err != nil {
			return
		}
		s.KinematicPressure = &kp
	}

	if ps.Thermal == solver.Energy && v.UseInletTemperatureValue {
		if src, err = source(reg, v.BoundaryT, "temperature"); err != nil {
			return
		}
		switch {
		case src.BoundaryType == boundary.Inlet && src.ThermalBoundaryType != boundary.FixedValue:
			return s, incompatible(src, "initial temperature")
		case src.BoundaryType == boundary.Inlet, src.BoundarySubType == boundary.FarField:
			s.Temperature = src.Temperature
		default:
			return s, incompatible(src, "initial temperature")
		}
	}

	if ps.HasTurbulenceModel() && v.UseInletTurbulenceValues {
		if src, err = source(reg, v.BoundaryTurb, "turbulence"); err != nil {
			return
		}
		if s.K, s.Omega, err = turbulenceFrom(src); err != nil {
			return
		}
	}

	log.WithFields(log.Fields{
		"Ux":       s.Ux,
		"Uy":       s.Uy,
		"Uz":       s.Uz,
		"pressure": s.Pressure,
	}).Debug("processed initial conditions")
	return
}

func convert(owner string, v Values) (s Settings, err error) {
	s = Settings{
		PotentialFlow:            v.PotentialFlow,
		PotentialFlowP:           v.PotentialFlowP,
		UseInletUValues:          v.UseInletUValues,
		UseOutletPValue:          v.UseOutletPValue,
		UseInletTemperatureValue: v.UseInletTemperatureValue,
		UseInletTurbulenceValues: v.UseInletTurbulenceValues,
		BoundaryU:                v.BoundaryU,
		BoundaryP:                v.BoundaryP,
		BoundaryT:                v.BoundaryT,
		BoundaryTurb:             v.BoundaryTurb,
	}
	fields := []struct {
		name  string
		q     quantity.Quantity
		units string
		dst   *float64
	}{
		{"Ux", v.Ux, "m/s", &s.Ux},
		{"Uy", v.Uy, "m/s", &s.Uy},
		{"Uz", v.Uz, "m/s", &s.Uz},
		{"Pressure", v.Pressure, "Pa", &s.Pressure},
		{"Temperature", v.Temperature, "K", &s.Temperature},
		{"k", v.K, "m^2/s^2", &s.K},
		{"omega", v.Omega, "1/s", &s.Omega},
	}
	for _, f := range fields {
		if *f.dst, err = f.q.AsOr(f.units, 0); err != nil {
			return s, caseerr.Validationf(owner, "%s: %v", f.name, err)
		}
	}
	return
}

func source(reg *boundary.Registry, label, what string) (boundary.Settings, error) {
	if label == "" {
		return boundary.Settings{}, caseerr.New(caseerr.ErrMissingSourceBoundary, what,
			"no boundary selected to copy initial %s value from", what)
	}
	if reg == nil {
		return boundary.Settings{}, caseerr.New(caseerr.ErrUnknownBoundary, label, "no boundaries defined")
	}
	return reg.Lookup(label)
}

func incompatible(src boundary.Settings, what string) error {
	return caseerr.New(caseerr.ErrIncompatibleBoundaryType, src.Label,
		"boundary type %s/%s not appropriate to determine %s", src.BoundaryType, src.BoundarySubType, what)
}

func turbulenceFrom(src boundary.Settings) (k, omega float64, err error) {
	switch src.TurbulenceInletSpecification {
	case boundary.TKEAndSpecDissipationRate:
		return src.TurbulentKineticEnergy, src.SpecificDissipationRate, nil
	case boundary.IntensityAndLengthScale:
		switch src.BoundarySubType {
		case boundary.UniformVelocityInlet, boundary.FarField:
		default:
			return 0, 0, incompatible(src, "initial turbulence")
		}
		if src.TurbulenceLengthScale <= 0 {
			return 0, 0, caseerr.Validationf(src.Label, "turbulence length scale must be positive")
		}
		U := floats.Norm([]float64{src.Ux, src.Uy, src.Uz}, 2)
		k, omega = TurbulenceFromIntensity(U, src.TurbulenceIntensity, src.TurbulenceLengthScale)
		return
	}
	return 0, 0, caseerr.New(caseerr.ErrIncompatibleBoundaryType, src.Label,
		"turbulence inlet specification %s unsupported for copying initial turbulence", src.TurbulenceInletSpecification)
}
