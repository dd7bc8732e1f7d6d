package solver

import (
	"github.com/notargets/foamcase/caseerr"
	"github.com/notargets/foamcase/quantity"
)

type Phase string

type Flow string

type Thermal string

type Time string

type Turbulence string

const (
	Single      Phase = "Single"
	FreeSurface Phase = "FreeSurface"

	Incompressible       Flow = "Incompressible"
	Compressible         Flow = "Compressible"
	HighMachCompressible Flow = "HighMachCompressible"

	NoThermal Thermal = "None"
	Energy    Thermal = "Energy"

	Steady    Time = "Steady"
	Transient Time = "Transient"

	Inviscid Turbulence = "Inviscid"
	Laminar  Turbulence = "Laminar"
	RANS     Turbulence = "RANS"
)

// TurbulenceModels lists the RANS models for which inlet turbulence can be specified
var TurbulenceModels = []string{"kOmegaSST"}

// Physics is the user's choice of physical models.
type Physics struct {
	Time            Time              `json:"Time"`
	Flow            Flow              `json:"Flow"`
	Thermal         Thermal           `json:"Thermal"`
	Phase           Phase             `json:"Phase"`
	Turbulence      Turbulence        `json:"Turbulence"`
	TurbulenceModel string            `json:"TurbulenceModel"`
	Gx              quantity.Quantity `json:"gx"`
	Gy              quantity.Quantity `json:"gy"`
	Gz              quantity.Quantity `json:"gz"`
}

func DefaultPhysics() Physics {
	return Physics{
		Time:            Steady,
		Flow:            Incompressible,
		Thermal:         NoThermal,
		Phase:           Single,
		Turbulence:      Laminar,
		TurbulenceModel: TurbulenceModels[0],
		Gx:              quantity.MustParse("0 m/s^2"),
		Gy:              quantity.MustParse("-9.81 m/s^2"),
		Gz:              quantity.MustParse("0 m/s^2"),
	}
}

// PhysicsSettings is the physics subtree of the case settings. TurbulenceModel is nil
// unless a RANS model is in use.
type PhysicsSettings struct {
	Time            Time       `json:"Time"`
	Flow            Flow       `json:"Flow"`
	Thermal         Thermal    `json:"Thermal"`
	Phase           Phase      `json:"Phase"`
	Turbulence      Turbulence `json:"Turbulence"`
	TurbulenceModel *string    `json:"TurbulenceModel"`
	Gx              float64    `json:"gx"`
	Gy              float64    `json:"gy"`
	Gz              float64    `json:"gz"`
}

// HasTurbulenceModel reports whether transport equations for turbulence are solved.
func (ps PhysicsSettings) HasTurbulenceModel() bool { return ps.TurbulenceModel != nil }

// NormalisePhysics checks the enumerations that have no solver-selection role and converts
// gravity to SI. Phase and flow are left for Select to judge.
func NormalisePhysics(p Physics) (ps PhysicsSettings, err error) {
	switch p.Time {
	case Steady, Transient:
	default:
		return ps, caseerr.Validationf(string(p.Time), "unknown time dependence")
	}
	switch p.Thermal {
	case NoThermal, Energy:
	default:
		return ps, caseerr.Validationf(string(p.Thermal), "unknown thermal model")
	}
	ps = PhysicsSettings{
		Time:       p.Time,
		Flow:       p.Flow,
		Thermal:    p.Thermal,
		Phase:      p.Phase,
		Turbulence: p.Turbulence,
	}
	switch p.Turbulence {
	case Inviscid, Laminar:
	case RANS:
		if !knownModel(p.TurbulenceModel) {
			return ps, caseerr.Validationf(p.TurbulenceModel, "unknown turbulence model")
		}
		model := p.TurbulenceModel
		ps.TurbulenceModel = &model
	default:
		return ps, caseerr.Validationf(string(p.Turbulence), "unknown turbulence treatment")
	}
	g := []*float64{&ps.Gx, &ps.Gy, &ps.Gz}
	for i, q := range []quantity.Quantity{p.Gx, p.Gy, p.Gz} {
		if *g[i], err = q.AsOr("m/s^2", 0); err != nil {
			return ps, caseerr.Validationf("gravity", "%v", err)
		}
	}
	return
}

func knownModel(name string) bool {
	for _, m := range TurbulenceModels {
		if m == name {
			return true
		}
	}
	return false
}
