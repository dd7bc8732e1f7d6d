package material

import (
	"math"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/notargets/foamcase/caseerr"
	"github.com/notargets/foamcase/quantity"
)

// Material is a fluid as described by the user; any property may be left unset.
type Material struct {
	Name                     string            `json:"Name"`
	Density                  quantity.Quantity `json:"Density"`
	DynamicViscosity         quantity.Quantity `json:"DynamicViscosity"`
	MolarMass                quantity.Quantity `json:"MolarMass"`
	Cp                       quantity.Quantity `json:"Cp"`
	SutherlandTemperature    quantity.Quantity `json:"SutherlandTemperature"`
	SutherlandRefViscosity   quantity.Quantity `json:"SutherlandRefViscosity"`
	SutherlandRefTemperature quantity.Quantity `json:"SutherlandRefTemperature"`
}

// Properties are the canonical SI properties of one fluid as consumed by the solver templates.
// MolarMass is in kg/kmol. Absent properties stay nil.
type Properties struct {
	Name                     string   `json:"Name"`
	Density                  *float64 `json:"Density,omitempty"`
	DynamicViscosity         *float64 `json:"DynamicViscosity,omitempty"`
	KinematicViscosity       *float64 `json:"KinematicViscosity,omitempty"`
	MolarMass                *float64 `json:"MolarMass,omitempty"`
	Cp                       *float64 `json:"Cp,omitempty"`
	SutherlandTemperature    *float64 `json:"SutherlandTemperature,omitempty"`
	SutherlandRefViscosity   *float64 `json:"SutherlandRefViscosity,omitempty"`
	SutherlandRefTemperature *float64 `json:"SutherlandRefTemperature,omitempty"`
	SutherlandConstant       *float64 `json:"SutherlandConstant,omitempty"`
}

// Resolve converts each material to SI, in order. With an inviscid turbulence model the
// dynamic viscosity is forced to zero.
func Resolve(mats []Material, inviscid bool) (props []Properties, err error) {
	seen := make(map[string]bool, len(mats))
	props = make([]Properties, 0, len(mats))
	for _, m := range mats {
		if m.Name == "" || strings.ContainsAny(m.Name, " \t") {
			return nil, caseerr.Validationf(m.Name, "material name must be non-empty and may not contain spaces")
		}
		if seen[m.Name] {
			return nil, caseerr.Validationf(m.Name, "material name is duplicated")
		}
		seen[m.Name] = true
		var p Properties
		if p, err = resolveOne(m, inviscid); err != nil {
			return nil, err
		}
		props = append(props, p)
	}
	log.WithFields(log.Fields{"materials": len(props), "inviscid": inviscid}).Debug("resolved fluid properties")
	return
}

func resolveOne(m Material, inviscid bool) (p Properties, err error) {
	p.Name = m.Name
	conv := func(q quantity.Quantity, target string) (*float64, error) {
		if !q.IsSet() {
			return nil, nil
		}
		v, err := q.As(target)
		if err != nil {
			return nil, caseerr.Validationf(m.Name, "%v", err)
		}
		return &v, nil
	}
	if p.Density, err = conv(m.Density, "kg/m^3"); err != nil {
		return
	}
	if m.DynamicViscosity.IsSet() {
		if inviscid {
			p.DynamicViscosity = new(float64)
		} else if p.DynamicViscosity, err = conv(m.DynamicViscosity, "kg/m/s"); err != nil {
			return
		}
		if p.Density != nil {
			nu := *p.DynamicViscosity / *p.Density
			p.KinematicViscosity = &nu
		}
	}
	if p.MolarMass, err = conv(m.MolarMass, "kg/kmol"); err != nil {
		return
	}
	if p.Cp, err = conv(m.Cp, "J/kg/K"); err != nil {
		return
	}
	if p.SutherlandTemperature, err = conv(m.SutherlandTemperature, "K"); err != nil {
		return
	}
	if p.SutherlandRefViscosity, err = conv(m.SutherlandRefViscosity, "kg/m/s"); err != nil {
		return
	}
	if p.SutherlandRefTemperature, err = conv(m.SutherlandRefTemperature, "K"); err != nil {
		return
	}
	if p.SutherlandTemperature != nil && p.SutherlandRefViscosity != nil && p.SutherlandRefTemperature != nil {
		c := SutherlandConstant(*p.SutherlandRefViscosity, *p.SutherlandRefTemperature, *p.SutherlandTemperature)
		p.SutherlandConstant = &c
	}
	return
}

// SutherlandConstant is As in mu = As*sqrt(T)/(1 + Ts/T), from a reference viscosity mu0 at T0
// and the Sutherland temperature Ts.
func SutherlandConstant(mu0, T0, Ts float64) float64 {
	return mu0 / math.Pow(T0, 1.5) * (T0 + Ts)
}

// Nu returns the kinematic viscosity, or zero when it could not be derived.
func (p Properties) Nu() float64 {
	if p.KinematicViscosity == nil {
		return 0
	}
	return *p.KinematicViscosity
}
