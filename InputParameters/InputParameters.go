package InputParameters

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/ghodss/yaml"

	"github.com/notargets/foamcase/boundary"
	"github.com/notargets/foamcase/initial"
	"github.com/notargets/foamcase/material"
	"github.com/notargets/foamcase/porous"
	"github.com/notargets/foamcase/solver"
	"github.com/notargets/foamcase/zones"
)

// Mesh describes the mesh object the case is built on
type Mesh struct {
	CaseName         string `json:"CaseName"`
	Type             string `json:"Type"`
	ElementDimension string `json:"ElementDimension"`
	MeshUtility      string `json:"MeshUtility"`
}

func DefaultMesh() Mesh {
	return Mesh{
		CaseName:         "meshCase",
		Type:             "CfdMesh",
		ElementDimension: "3D",
		MeshUtility:      "cfMesh",
	}
}

func (m *Mesh) UnmarshalJSON(data []byte) error {
	type plain Mesh
	p := plain(DefaultMesh())
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*m = Mesh(p)
	return nil
}

// Case is the analysis read from the YAML input file. Records absent from the file keep
// their default values; Mesh stays nil when no mesh is given.
type Case struct {
	Title               string                     `json:"Title"`
	Physics             solver.Physics             `json:"Physics"`
	Materials           []material.Material        `json:"Materials"`
	Solver              solver.Control             `json:"Solver"`
	InitialValues       initial.Values             `json:"InitialValues"`
	Boundaries          []boundary.Boundary        `json:"Boundaries"`
	PorousZones         []porous.Zone              `json:"PorousZones"`
	InitialisationZones []zones.InitialisationZone `json:"InitialisationZones"`
	Zones               []zones.Zone               `json:"Zones"`
	Mesh                *Mesh                      `json:"Mesh"`
}

func DefaultCase() Case {
	return Case{
		Physics:       solver.DefaultPhysics(),
		Solver:        solver.DefaultControl(),
		InitialValues: initial.DefaultValues(),
	}
}

func (c *Case) Parse(data []byte) error {
	*c = DefaultCase()
	return yaml.Unmarshal(data, c)
}

func (c *Case) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", c.Title)
	fmt.Printf("[%s %s %s %s %s]\t= Physics\n",
		c.Physics.Phase, c.Physics.Flow, c.Physics.Thermal, c.Physics.Time, c.Physics.Turbulence)
	fmt.Printf("[%s]\t\t\t= Case Name\n", c.Solver.InputCaseName)
	if c.Mesh != nil {
		fmt.Printf("[%s %s]\t\t= Mesh\n", c.Mesh.CaseName, c.Mesh.MeshUtility)
	}
	names := make([]string, len(c.Materials))
	for i, m := range c.Materials {
		names[i] = m.Name
	}
	fmt.Printf("%v\t\t= Materials\n", names)
	labels := make([]string, len(c.Boundaries))
	types := make(map[string]string, len(c.Boundaries))
	for i, b := range c.Boundaries {
		labels[i] = b.Label
		types[b.Label] = fmt.Sprintf("%s/%s", b.BoundaryType, b.BoundarySubType)
	}
	sort.Strings(labels)
	for _, l := range labels {
		fmt.Printf("Boundaries[%s] = %s\n", l, types[l])
	}
	fmt.Printf("[%d %d %d]\t\t\t= Porous, Initialisation, Zones\n",
		len(c.PorousZones), len(c.InitialisationZones), len(c.Zones))
}
