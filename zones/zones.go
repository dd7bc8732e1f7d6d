package zones

import (
	"encoding/json"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/notargets/foamcase/caseerr"
	"github.com/notargets/foamcase/geometry"
	"github.com/notargets/foamcase/material"
	"github.com/notargets/foamcase/quantity"
	"github.com/notargets/foamcase/solver"
)

// ValidateLabels checks that zone labels are non-empty, free of spaces and unique. The kind
// names the sort of zone in any error.
func ValidateLabels(kind string, labels []string) error {
	seen := make(map[string]bool, len(labels))
	for _, l := range labels {
		if l == "" || strings.ContainsAny(l, " \t") {
			return caseerr.Validationf(l, "%s label is not valid: may not contain spaces", kind)
		}
		if seen[l] {
			return caseerr.Validationf(l, "%s label is duplicated", kind)
		}
		seen[l] = true
	}
	return nil
}

// PartNames lists the shape of each reference, which is what the zone's surfaces are exported as.
func PartNames(refs []geometry.Reference) []string {
	names := make([]string, len(refs))
	for i, r := range refs {
		names[i] = r.Object()
	}
	return names
}

// Zone is a named cell zone.
type Zone struct {
	Label      string               `json:"Label"`
	References []geometry.Reference `json:"References"`
}

type Settings struct {
	PartNameList []string `json:"PartNameList"`
}

func Process(zs []Zone) (out map[string]Settings, err error) {
	labels := make([]string, len(zs))
	for i, z := range zs {
		labels[i] = z.Label
	}
	if err = ValidateLabels("zone", labels); err != nil {
		return
	}
	out = make(map[string]Settings, len(zs))
	for _, z := range zs {
		out[z.Label] = Settings{PartNameList: PartNames(z.References)}
	}
	return
}

// InitialisationZone overrides the initial field inside a region.
type InitialisationZone struct {
	Label                   string                       `json:"Label"`
	References              []geometry.Reference         `json:"References"`
	VelocitySpecified       bool                         `json:"VelocitySpecified"`
	Ux                      quantity.Quantity            `json:"Ux"`
	Uy                      quantity.Quantity            `json:"Uy"`
	Uz                      quantity.Quantity            `json:"Uz"`
	PressureSpecified       bool                         `json:"PressureSpecified"`
	Pressure                quantity.Quantity            `json:"Pressure"`
	VolumeFractionSpecified bool                         `json:"VolumeFractionSpecified"`
	VolumeFractions         map[string]quantity.Quantity `json:"VolumeFractions"`
}

func DefaultInitialisationZone(label string) InitialisationZone {
	return InitialisationZone{
		Label:                   label,
		Ux:                      quantity.MustParse("0 m/s"),
		Uy:                      quantity.MustParse("0 m/s"),
		Uz:                      quantity.MustParse("0 m/s"),
		Pressure:                quantity.MustParse("0 Pa"),
		VolumeFractionSpecified: true,
	}
}

func (z *InitialisationZone) UnmarshalJSON(data []byte) error {
	type plain InitialisationZone
	p := plain(DefaultInitialisationZone(""))
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*z = InitialisationZone(p)
	return nil
}

type InitialisationSettings struct {
	PartNameList            []string           `json:"PartNameList"`
	VelocitySpecified       bool               `json:"VelocitySpecified"`
	Ux                      float64            `json:"Ux"`
	Uy                      float64            `json:"Uy"`
	Uz                      float64            `json:"Uz"`
	PressureSpecified       bool               `json:"PressureSpecified"`
	Pressure                float64            `json:"Pressure"`
	VolumeFractionSpecified bool               `json:"VolumeFractionSpecified"`
	VolumeFractions         map[string]float64 `json:"VolumeFractions,omitempty"`
}

// ProcessInitialisation converts initialisation zones to SI. For VOF solvers the volume
// fractions are made consistent with the fluid list the same way as for boundaries.
func ProcessInitialisation(zs []InitialisationZone, name solver.Name,
	fluids []material.Properties) (out map[string]InitialisationSettings, err error) {
	labels := make([]string, len(zs))
	for i, z := range zs {
		labels[i] = z.Label
	}
	if err = ValidateLabels("initialisation zone", labels); err != nil {
		return
	}
	out = make(map[string]InitialisationSettings, len(zs))
	for _, z := range zs {
		s := InitialisationSettings{
			PartNameList:            PartNames(z.References),
			VelocitySpecified:       z.VelocitySpecified,
			PressureSpecified:       z.PressureSpecified,
			VolumeFractionSpecified: z.VolumeFractionSpecified,
		}
		fields := []struct {
			name  string
			q     quantity.Quantity
			units string
			dst   *float64
		}{
			{"Ux", z.Ux, "m/s", &s.Ux},
			{"Uy", z.Uy, "m/s", &s.Uy},
			{"Uz", z.Uz, "m/s", &s.Uz},
			{"Pressure", z.Pressure, "Pa", &s.Pressure},
		}
		for _, f := range fields {
			if *f.dst, err = f.q.AsOr(f.units, 0); err != nil {
				return nil, caseerr.Validationf(z.Label, "%s: %v", f.name, err)
			}
		}
		if name.IsVOF() {
			if err = material.CheckFractionNames(z.Label, fluids, z.VolumeFractions); err != nil {
				return nil, err
			}
			if s.VolumeFractions, err = material.NormaliseFractions(z.Label, fluids, z.VolumeFractions,
				name == solver.MultiphaseInterFoam); err != nil {
				return nil, err
			}
		}
		out[z.Label] = s
	}
	log.WithField("zones", len(out)).Debug("processed initialisation zones")
	return
}
