package porous

import (
	"encoding/json"
	"math"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/foamcase/caseerr"
	"github.com/notargets/foamcase/geometry"
	"github.com/notargets/foamcase/material"
	"github.com/notargets/foamcase/quantity"
	"github.com/notargets/foamcase/utils"
	"github.com/notargets/foamcase/zones"
)

type Correlation string

const (
	DarcyForchheimer Correlation = "DarcyForchheimer"
	Jakob            Correlation = "Jakob"
)

// Zone is a porous region. D, F and the e vectors apply to DarcyForchheimer; the tube bundle
// parameters apply to Jakob.
type Zone struct {
	Label             string               `json:"Label"`
	References        []geometry.Reference `json:"References"`
	PorousCorrelation Correlation          `json:"PorousCorrelation"`
	D1                quantity.Quantity    `json:"D1"`
	D2                quantity.Quantity    `json:"D2"`
	D3                quantity.Quantity    `json:"D3"`
	F1                quantity.Quantity    `json:"F1"`
	F2                quantity.Quantity    `json:"F2"`
	F3                quantity.Quantity    `json:"F3"`
	E1                [3]float64           `json:"e1"`
	E2                [3]float64           `json:"e2"`
	E3                [3]float64           `json:"e3"`
	OuterDiameter     quantity.Quantity    `json:"OuterDiameter"`
	TubeAxis          [3]float64           `json:"TubeAxis"`
	TubeSpacing       quantity.Quantity    `json:"TubeSpacing"`
	SpacingDirection  [3]float64           `json:"SpacingDirection"`
	AspectRatio       quantity.Quantity    `json:"AspectRatio"`
	VelocityEstimate  quantity.Quantity    `json:"VelocityEstimate"`
}

func DefaultZone(label string) Zone {
	return Zone{
		Label:             label,
		PorousCorrelation: DarcyForchheimer,
		D1:                quantity.MustParse("0 1/m^2"),
		D2:                quantity.MustParse("0 1/m^2"),
		D3:                quantity.MustParse("0 1/m^2"),
		F1:                quantity.MustParse("0 1/m"),
		F2:                quantity.MustParse("0 1/m"),
		F3:                quantity.MustParse("0 1/m"),
		E1:                [3]float64{1, 0, 0},
		E2:                [3]float64{0, 1, 0},
		E3:                [3]float64{0, 0, 1},
		OuterDiameter:     quantity.MustParse("0 m"),
		TubeAxis:          [3]float64{0, 0, 1},
		TubeSpacing:       quantity.MustParse("0 m"),
		SpacingDirection:  [3]float64{1, 0, 0},
		AspectRatio:       quantity.Dimensionless(1.73),
		VelocityEstimate:  quantity.MustParse("0 m/s"),
	}
}

func (z *Zone) UnmarshalJSON(data []byte) error {
	type plain Zone
	p := plain(DefaultZone(""))
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*z = Zone(p)
	return nil
}

// Settings are the Darcy-Forchheimer coefficients of a zone along principal axes e1 and e3;
// the second axis completes the right-handed set.
type Settings struct {
	PartNameList []string   `json:"PartNameList"`
	D            [3]float64 `json:"D"`
	F            [3]float64 `json:"F"`
	E1           [3]float64 `json:"e1"`
	E3           [3]float64 `json:"e3"`
}

// TubeBundle describes a bank of tubes in cross flow for the Jakob correlation.
type TubeBundle struct {
	Spacing       float64 // between tubes within a layer
	OuterDiameter float64
	Velocity      float64 // approximate approach velocity
	AspectRatio   float64 // layer-to-layer over in-layer spacing
}

// JakobCoefficients returns the Darcy and Forchheimer coefficients of a tube bundle in
// fluid of kinematic viscosity nu. The first two directions are across the tubes; drag
// along the tubes is taken as zero.
func JakobCoefficients(owner string, tb TubeBundle, nu float64) (D, F [3]float64, err error) {
	var (
		s, d0, u0, a = tb.Spacing, tb.OuterDiameter, tb.Velocity, tb.AspectRatio
	)
	if nu <= 0 {
		return D, F, caseerr.New(caseerr.ErrMissingViscosity, owner,
			"a positive viscosity must be set for Jakob correlation, got %g", nu)
	}
	if s < d0 {
		return D, F, caseerr.New(caseerr.ErrInvalidGeometry, owner,
			"tube spacing %g may not be less than diameter %g", s, d0)
	}
	if d0 <= 0 {
		return D, F, caseerr.New(caseerr.ErrInvalidGeometry, owner, "tube diameter must be positive")
	}
	if u0 <= 0 {
		return D, F, caseerr.Validationf(owner, "VelocityEstimate must be positive, got %g", u0)
	}
	Re := u0 * d0 / nu
	for i, S := range [][2]float64{{a * s, s}, {s, a * s}} {
		Sl, St := S[0], S[1]
		C := 1. / St * 0.5 * (1. + 0.47/math.Pow(Sl/d0-1, 1.06)) * math.Pow(1./(1-d0/Sl), 2.-0.16)
		D[i] = C / d0 * 0.5 * math.Pow(Re, 1.-0.16)
		F[i] = C * math.Pow(Re, -0.16)
	}
	if utils.NonFinite(D[:]) || utils.NonFinite(F[:]) {
		return D, F, caseerr.New(caseerr.ErrInvalidGeometry, owner,
			"tube bundle of spacing %g, diameter %g and aspect ratio %g has no finite drag", s, d0, a)
	}
	return
}

func axis(owner, name string, v [3]float64) ([3]float64, error) {
	if r3.Norm(r3.Vec{X: v[0], Y: v[1], Z: v[2]}) == 0 {
		return v, caseerr.Validationf(owner, "%s must be a non-zero vector", name)
	}
	return v, nil
}

// Resolve derives the drag coefficients of each porous zone. Jakob zones use the kinematic
// viscosity of the first fluid.
func Resolve(zs []Zone, fluids []material.Properties) (out map[string]Settings, err error) {
	labels := make([]string, len(zs))
	for i, z := range zs {
		labels[i] = z.Label
	}
	if err = zones.ValidateLabels("porous zone", labels); err != nil {
		return
	}
	out = make(map[string]Settings, len(zs))
	for _, z := range zs {
		var s Settings
		if s, err = resolveOne(z, fluids); err != nil {
			return nil, err
		}
		out[z.Label] = s
	}
	log.WithField("zones", len(out)).Debug("resolved porous zones")
	return
}

func resolveOne(z Zone, fluids []material.Properties) (s Settings, err error) {
	s.PartNameList = zones.PartNames(z.References)
	conv := func(name string, q quantity.Quantity, units string) (v float64) {
		if err != nil {
			return
		}
		var cerr error
		if v, cerr = q.AsOr(units, 0); cerr != nil {
			err = caseerr.Validationf(z.Label, "%s: %v", name, cerr)
		}
		return
	}
	switch z.PorousCorrelation {
	case DarcyForchheimer:
		s.D = [3]float64{conv("D1", z.D1, "1/m^2"), conv("D2", z.D2, "1/m^2"), conv("D3", z.D3, "1/m^2")}
		s.F = [3]float64{conv("F1", z.F1, "1/m"), conv("F2", z.F2, "1/m"), conv("F3", z.F3, "1/m")}
		if err != nil {
			return
		}
		if s.E1, err = axis(z.Label, "e1", z.E1); err != nil {
			return
		}
		s.E3, err = axis(z.Label, "e3", z.E3)
	case Jakob:
		if s.E1, err = axis(z.Label, "SpacingDirection", z.SpacingDirection); err != nil {
			return
		}
		if s.E3, err = axis(z.Label, "TubeAxis", z.TubeAxis); err != nil {
			return
		}
		tb := TubeBundle{
			Spacing:       conv("TubeSpacing", z.TubeSpacing, "m"),
			OuterDiameter: conv("OuterDiameter", z.OuterDiameter, "m"),
			Velocity:      conv("VelocityEstimate", z.VelocityEstimate, "m/s"),
			AspectRatio:   conv("AspectRatio", z.AspectRatio, ""),
		}
		if err != nil {
			return
		}
		var nu float64
		if len(fluids) > 0 {
			nu = fluids[0].Nu()
		}
		s.D, s.F, err = JakobCoefficients(z.Label, tb, nu)
	default:
		err = caseerr.New(caseerr.ErrUnsupportedPorousModel, z.Label,
			"unrecognised porous correlation %q", z.PorousCorrelation)
	}
	return
}
