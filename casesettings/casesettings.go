package casesettings

import (
	log "github.com/sirupsen/logrus"

	"github.com/notargets/foamcase/InputParameters"
	"github.com/notargets/foamcase/boundary"
	"github.com/notargets/foamcase/caseerr"
	"github.com/notargets/foamcase/geometry"
	"github.com/notargets/foamcase/initial"
	"github.com/notargets/foamcase/material"
	"github.com/notargets/foamcase/porous"
	"github.com/notargets/foamcase/prefs"
	"github.com/notargets/foamcase/solver"
	"github.com/notargets/foamcase/zones"
)

// Settings is the document handed to the template renderer. It is complete once Assemble
// returns and is not modified afterwards.
type Settings struct {
	Physics                    solver.PhysicsSettings                  `json:"physics"`
	FluidProperties            []material.Properties                   `json:"fluidProperties"`
	InitialValues              initial.Settings                        `json:"initialValues"`
	Boundaries                 *boundary.Registry                      `json:"boundaries"`
	BafflesPresent             bool                                    `json:"bafflesPresent"`
	PorousZones                map[string]porous.Settings              `json:"porousZones"`
	PorousZonesPresent         bool                                    `json:"porousZonesPresent"`
	InitialisationZones        map[string]zones.InitialisationSettings `json:"initialisationZones"`
	InitialisationZonesPresent bool                                    `json:"initialisationZonesPresent"`
	Zones                      map[string]zones.Settings               `json:"zones"`
	ZonesPresent               bool                                    `json:"zonesPresent"`
	MeshType                   string                                  `json:"meshType"`
	MeshDimension              string                                  `json:"meshDimension"`
	MeshDir                    string                                  `json:"meshDir"`
	Solver                     solver.Settings                         `json:"solver"`
	System                     prefs.SystemSettings                    `json:"system"`
	RunChangeDictionary        bool                                    `json:"runChangeDictionary"`
	boundary.Patches
}

// Options carries what the case description itself does not: the geometry that direction
// faces are looked up in, the user's OpenFOAM installation and where the case is written.
type Options struct {
	Faces    geometry.Resolver
	Prefs    prefs.Preferences
	CasePath string
}

// Assemble derives the settings document from a case description. Each stage only reads the
// results of the stages before it: physics, system, solver, materials, boundaries, initial
// values, porous zones, initialisation zones, zones and finally the patch mapping. Boundary
// labels are checked before anything else. The first error is returned unmodified.
func Assemble(c *InputParameters.Case, opt Options) (s *Settings, err error) {
	if err = boundary.ValidateLabels(c.Boundaries); err != nil {
		return nil, err
	}
	if c.Mesh == nil {
		return nil, caseerr.Validationf("", "no mesh object found")
	}
	var (
		ps     solver.PhysicsSettings
		sys    prefs.SystemSettings
		name   solver.Name
		ss     solver.Settings
		fluids []material.Properties
		reg    *boundary.Registry
		iv     initial.Settings
		pz     map[string]porous.Settings
		iz     map[string]zones.InitialisationSettings
		zs     map[string]zones.Settings
	)
	if ps, err = solver.NormalisePhysics(c.Physics); err != nil {
		return nil, err
	}
	if sys, err = opt.Prefs.System(opt.CasePath); err != nil {
		return nil, err
	}
	porousPresent := len(c.PorousZones) > 0 || boundary.PorousBafflesPresent(c.Boundaries)
	if name, err = solver.Select(ps, len(c.Materials), porousPresent); err != nil {
		return nil, err
	}
	if ss, err = solver.Process(c.Solver, name); err != nil {
		return nil, err
	}
	if fluids, err = material.Resolve(c.Materials, ps.Turbulence == solver.Inviscid); err != nil {
		return nil, err
	}
	if reg, err = boundary.Process(c.Boundaries, name, fluids, opt.Faces); err != nil {
		return nil, err
	}
	if iv, err = initial.Process(c.InitialValues, ps, name, fluids, reg); err != nil {
		return nil, err
	}
	if pz, err = porous.Resolve(c.PorousZones, fluids); err != nil {
		return nil, err
	}
	if iz, err = zones.ProcessInitialisation(c.InitialisationZones, name, fluids); err != nil {
		return nil, err
	}
	if zs, err = zones.Process(c.Zones); err != nil {
		return nil, err
	}
	s = &Settings{
		Physics:                    ps,
		FluidProperties:            fluids,
		InitialValues:              iv,
		Boundaries:                 reg,
		BafflesPresent:             reg.BafflesPresent(),
		PorousZones:                pz,
		PorousZonesPresent:         len(pz) > 0,
		InitialisationZones:        iz,
		InitialisationZonesPresent: len(iz) > 0,
		Zones:                      zs,
		ZonesPresent:               len(zs) > 0,
		MeshType:                   c.Mesh.Type,
		MeshDimension:              c.Mesh.ElementDimension,
		MeshDir:                    "../" + c.Mesh.CaseName,
		Solver:                     ss,
		System:                     sys,
		Patches:                    boundary.CreatePatches(reg, c.Mesh.MeshUtility),
	}
	log.WithFields(log.Fields{
		"solver":     name,
		"fluids":     len(fluids),
		"boundaries": reg.Len(),
		"porous":     len(pz),
		"zones":      len(iz) + len(zs),
	}).Info("assembled case settings")
	return
}

// SelectSolver runs only as much of Assemble as is needed to pick the solver.
func SelectSolver(c *InputParameters.Case) (name solver.Name, err error) {
	var ps solver.PhysicsSettings
	if ps, err = solver.NormalisePhysics(c.Physics); err != nil {
		return
	}
	porousPresent := len(c.PorousZones) > 0 || boundary.PorousBafflesPresent(c.Boundaries)
	return solver.Select(ps, len(c.Materials), porousPresent)
}
