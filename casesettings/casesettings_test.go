package casesettings

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/foamcase/InputParameters"
	"github.com/notargets/foamcase/boundary"
	"github.com/notargets/foamcase/caseerr"
	"github.com/notargets/foamcase/geometry"
	"github.com/notargets/foamcase/prefs"
	"github.com/notargets/foamcase/solver"
)

var ductCase = `
Title: Duct
Physics:
  Turbulence: RANS
Materials:
  - Name: water
    Density: 1000 kg/m^3
    DynamicViscosity: 1e-3 kg/m/s
Solver:
  InputCaseName: duct
  ParallelCores: 1
InitialValues:
  UseInletUValues: true
  BoundaryU: Inlet
  BoundaryP: Outlet
  UseInletTurbulenceValues: true
  BoundaryTurb: Inlet
Boundaries:
  - Label: Inlet
    BoundaryType: inlet
    References: [[Box, Face1]]
    VelocityIsCartesian: false
    VelocityMag: 10 m/s
    ReverseNormal: true
    TurbulenceIntensity: 0.05
    TurbulenceLengthScale: 0.1 m
  - Label: Outlet
    BoundaryType: outlet
    Pressure: 1 bar
    References: [[Box, Face2]]
  - Label: Walls
    References: [[Box, Face3]]
Zones:
  - Label: Probe
    References: [[Box, ""]]
Mesh:
  CaseName: meshCase
`

func parse(t *testing.T, text string) *InputParameters.Case {
	var c InputParameters.Case
	require.NoError(t, c.Parse([]byte(text)))
	return &c
}

func options() Options {
	box := geometry.NewShape("Box")
	box.AddFace(geometry.NewPolyFace("Face1", [][]r3.Vec{{
		{X: 0, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 1}, {X: 0, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 0},
	}}))
	st := geometry.NewStore()
	st.Add(box)
	return Options{
		Faces:    st,
		Prefs:    prefs.Preferences{InstallDir: "/opt/openfoam11", Runtime: prefs.Posix},
		CasePath: "/tmp/run/duct",
	}
}

func TestAssemble(t *testing.T) {
	s, err := Assemble(parse(t, ductCase), options())
	require.NoError(t, err)
	{
		assert.Equal(t, solver.SimpleFoam, s.Solver.SolverName)
		assert.Equal(t, 2, s.Solver.ParallelCores)
		require.NotNil(t, s.Physics.TurbulenceModel)
		assert.Equal(t, "kOmegaSST", *s.Physics.TurbulenceModel)
		require.Len(t, s.FluidProperties, 1)
		assert.InDelta(t, 1e-6, s.FluidProperties[0].Nu(), 1e-18)
	}
	{
		in, err := s.Boundaries.Lookup("Inlet")
		require.NoError(t, err)
		assert.InDelta(t, 10, in.Ux, 1e-12)
		out, err := s.Boundaries.Lookup("Outlet")
		require.NoError(t, err)
		require.NotNil(t, out.KinematicPressure)
		assert.InDelta(t, 100, *out.KinematicPressure, 1e-12)
	}
	{
		iv := s.InitialValues
		assert.InDelta(t, 10, iv.Ux, 1e-12)
		assert.Equal(t, 1e5, iv.Pressure)
		require.NotNil(t, iv.KinematicPressure)
		assert.InDelta(t, 100, *iv.KinematicPressure, 1e-12)
		assert.InDelta(t, 0.375, iv.K, 1e-12)
		assert.InDelta(t, math.Sqrt(0.375)/(math.Pow(0.09, 0.25)*0.1), iv.Omega, 1e-12)
	}
	{
		assert.Equal(t, "../meshCase", s.MeshDir)
		assert.Equal(t, "CfdMesh", s.MeshType)
		assert.Equal(t, "3D", s.MeshDimension)
		assert.Equal(t, "/opt/openfoam11", s.System.FoamPath)
		assert.Equal(t, "/tmp/run/duct", s.System.CasePath)
		assert.True(t, s.ZonesPresent)
		assert.Equal(t, []string{"Box"}, s.Zones["Probe"].PartNameList)
		assert.False(t, s.PorousZonesPresent)
		assert.False(t, s.InitialisationZonesPresent)
		assert.False(t, s.BafflesPresent)
	}
	{
		assert.Equal(t, "patch_1_.*", s.CreatePatches["Inlet"].PatchNamesList)
		assert.Equal(t, "patch_3_.*", s.CreatePatches["Walls"].PatchNamesList)
		assert.Equal(t, boundary.PatchWall, s.CreatePatches["Walls"].PatchType)
		assert.Equal(t, "patch_0_.*", s.CreatePatches[boundary.DefaultFacesPatch].PatchNamesList)
		assert.False(t, s.CreatePatchesFromSnappyBaffles)
	}
	{ // The document serialises with the keys the templates use
		data, err := json.Marshal(s)
		require.NoError(t, err)
		var doc map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &doc))
		for _, key := range []string{"physics", "fluidProperties", "initialValues", "boundaries",
			"solver", "system", "createPatches", "meshDir", "zonesPresent"} {
			assert.Contains(t, doc, key)
		}
		assert.Equal(t, false, doc["runChangeDictionary"])
		assert.Contains(t, doc["boundaries"], "Outlet")
		assert.NotContains(t, doc, "Patches")
	}
}

func TestAssembleLabelsFirst(t *testing.T) {
	c := parse(t, `
Physics:
  Phase: Plasma
Boundaries:
  - Label: Inlet
    BoundaryType: inlet
  - Label: Inlet
    BoundaryType: outlet
`)
	_, err := Assemble(c, options())
	require.Error(t, err)
	assert.True(t, errors.Is(err, caseerr.ErrValidation))
	assert.Equal(t, "Inlet", caseerr.Subject(err))
	assert.Contains(t, err.Error(), "duplicated")
}

func TestAssembleFailures(t *testing.T) {
	{
		c := parse(t, ductCase)
		c.Mesh = nil
		_, err := Assemble(c, options())
		assert.True(t, errors.Is(err, caseerr.ErrValidation))
		assert.Contains(t, err.Error(), "no mesh object found")
	}
	{
		c := parse(t, ductCase)
		c.Materials = append(c.Materials, c.Materials[0])
		_, err := Assemble(c, options())
		assert.True(t, errors.Is(err, caseerr.ErrUnsupportedPhysics))
	}
	{
		c := parse(t, ductCase)
		c.InitialValues.BoundaryU = "Outlet"
		_, err := Assemble(c, options())
		assert.True(t, errors.Is(err, caseerr.ErrIncompatibleBoundaryType))
		assert.Equal(t, "Outlet", caseerr.Subject(err))
	}
	{
		c := parse(t, ductCase)
		c.Boundaries[0].DirectionFace = "Box:Face7"
		_, err := Assemble(c, options())
		assert.True(t, errors.Is(err, caseerr.ErrInvalidDirectionFace))
		assert.Equal(t, "Inlet", caseerr.Subject(err))
	}
	{
		opt := options()
		opt.Prefs.InstallDir = ""
		_, err := Assemble(parse(t, ductCase), opt)
		assert.True(t, errors.Is(err, caseerr.ErrValidation))
	}
}

func TestAssemblePorous(t *testing.T) {
	{
		c := parse(t, ductCase+`
PorousZones:
  - Label: Tubes
    PorousCorrelation: Jakob
    References: [[Bank, Solid]]
    TubeSpacing: 2 cm
    OuterDiameter: 10 mm
    VelocityEstimate: 1 m/s
`)
		s, err := Assemble(c, options())
		require.NoError(t, err)
		assert.Equal(t, solver.PorousSimpleFoam, s.Solver.SolverName)
		assert.True(t, s.PorousZonesPresent)
		assert.Greater(t, s.PorousZones["Tubes"].D[0], 0.)
	}
	{ // A porous baffle also selects the porous solver
		c := parse(t, ductCase)
		b := boundary.Default("Screen")
		b.BoundaryType = boundary.Baffle
		b.BoundarySubType = boundary.PorousBaffle
		b.PorousBaffleMethod = boundary.PorousScreen
		c.Boundaries = append(c.Boundaries, b)
		c.Mesh.MeshUtility = boundary.SnappyHexMesh
		s, err := Assemble(c, options())
		require.NoError(t, err)
		assert.Equal(t, solver.PorousSimpleFoam, s.Solver.SolverName)
		assert.True(t, s.BafflesPresent)
		assert.True(t, s.CreatePatchesFromSnappyBaffles)
		assert.Equal(t, "Screen_.*_slave", s.CreatePatchesSnappyBaffles["Screen"].PatchNamesListSlave)
		screen, _ := s.Boundaries.Get("Screen")
		assert.InDelta(t, boundary.ScreenPressureDropCoeff(0.2e-3, 2e-3), screen.PressureDropCoeff, 1e-15)
	}
}

func TestAssembleFreeSurface(t *testing.T) {
	c := parse(t, `
Physics:
  Phase: FreeSurface
  Time: Transient
Materials:
  - Name: water
    Density: 1000 kg/m^3
  - Name: oil
    Density: 800 kg/m^3
  - Name: air
    Density: 1.2 kg/m^3
InitialValues:
  UseOutletPValue: false
  VolumeFractions:
    water: 0.3
    oil: 0.2
InitialisationZones:
  - Label: Slab
    References: [[Slab, Solid]]
    VolumeFractions:
      water: 1
Mesh: {}
`)
	s, err := Assemble(c, options())
	require.NoError(t, err)
	assert.Equal(t, solver.MultiphaseInterFoam, s.Solver.SolverName)
	assert.Nil(t, s.InitialValues.KinematicPressure)
	assert.Equal(t, 0.3, s.InitialValues.VolumeFractions["water"])
	assert.InDelta(t, 0.5, s.InitialValues.VolumeFractions["air"], 1e-15)
	assert.True(t, s.InitialisationZonesPresent)
	assert.Equal(t, 0., s.InitialisationZones["Slab"].VolumeFractions["air"])
	assert.Equal(t, "../meshCase", s.MeshDir)
}

func TestSelectSolver(t *testing.T) {
	name, err := SelectSolver(parse(t, ductCase))
	require.NoError(t, err)
	assert.Equal(t, solver.SimpleFoam, name)

	c := parse(t, ductCase)
	c.Physics.Time = solver.Transient
	name, err = SelectSolver(c)
	require.NoError(t, err)
	assert.Equal(t, solver.PimpleFoam, name)

	c.Physics.Phase = solver.FreeSurface
	_, err = SelectSolver(c)
	assert.True(t, errors.Is(err, caseerr.ErrUnsupportedPhysics))
}
