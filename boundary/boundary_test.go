package boundary

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/ghodss/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/foamcase/caseerr"
	"github.com/notargets/foamcase/geometry"
	"github.com/notargets/foamcase/material"
	"github.com/notargets/foamcase/quantity"
	"github.com/notargets/foamcase/solver"
)

func fluid(name string, rho float64) material.Properties {
	return material.Properties{Name: name, Density: &rho}
}

func boxStore() *geometry.Store {
	box := geometry.NewShape("Box")
	box.AddFace(geometry.NewPolyFace("Face1", [][]r3.Vec{{
		{X: 0, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 1}, {X: 0, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 0},
	}}))
	box.AddFace(geometry.NewPolyFace("Warped", [][]r3.Vec{{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0.5},
	}}))
	st := geometry.NewStore()
	st.Add(box)
	return st
}

func inlet(label string) Boundary {
	b := Default(label)
	b.BoundaryType = Inlet
	b.BoundarySubType = UniformVelocityInlet
	b.References = []geometry.Reference{{"Box", "Face1"}}
	return b
}

func TestValidateLabels(t *testing.T) {
	assert.NoError(t, ValidateLabels([]Boundary{Default("Inlet"), Default("Outlet")}))
	{
		err := ValidateLabels([]Boundary{Default("Inlet"), Default("Wall"), Default("Inlet")})
		require.Error(t, err)
		assert.True(t, errors.Is(err, caseerr.ErrValidation))
		assert.Equal(t, "Inlet", caseerr.Subject(err))
		assert.Contains(t, err.Error(), "duplicated")
	}
	{
		err := ValidateLabels([]Boundary{Default("Inlet"), Default("My Wall")})
		require.Error(t, err)
		assert.True(t, errors.Is(err, caseerr.ErrValidation))
		assert.Equal(t, "My Wall", caseerr.Subject(err))
	}
	{ // Labels are checked before anything else, so a bad sub-type elsewhere is not reported
		bad := inlet("Wall")
		bad.BoundarySubType = FarField
		_, err := Process([]Boundary{bad, Default("Inlet"), Default("Inlet")}, solver.SimpleFoam,
			[]material.Properties{fluid("air", 1.2)}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicated")
	}
}

func TestDecodeDefaults(t *testing.T) {
	input := `
- Label: inlet
  BoundaryType: inlet
  References: [[Box, Face1]]
  Ux: 2 m/s
- Label: out
  BoundaryType: Outlet
  BoundarySubType: outFlowOutlet
  ScreenSpacing: 4 mm
`
	var bs []Boundary
	require.NoError(t, yaml.Unmarshal([]byte(input), &bs))
	require.Len(t, bs, 2)

	assert.Equal(t, Inlet, bs[0].BoundaryType)
	assert.Equal(t, UniformVelocityInlet, bs[0].BoundarySubType)
	assert.Equal(t, []geometry.Reference{{"Box", "Face1"}}, bs[0].References)
	assert.Equal(t, "Face1", bs[0].References[0].Face())
	assert.True(t, bs[0].VelocityIsCartesian)
	assert.Equal(t, "2 m/s", bs[0].Ux.String())
	assert.Equal(t, "2 mm", bs[0].ScreenSpacing.String())
	assert.Equal(t, IntensityAndLengthScale, bs[0].TurbulenceInletSpecification)
	assert.Equal(t, PorousCoeff, bs[0].PorousBaffleMethod)

	assert.Equal(t, Outlet, bs[1].BoundaryType)
	assert.Equal(t, OutFlowOutlet, bs[1].BoundarySubType)
	assert.Equal(t, "4 mm", bs[1].ScreenSpacing.String())
	assert.Equal(t, "293 K", bs[1].Temperature.String())

	var b Boundary
	assert.Error(t, yaml.Unmarshal([]byte("Label: x\nBoundaryType: pipe\n"), &b))
}

func TestVelocityFromFace(t *testing.T) {
	var (
		faces  = boxStore()
		fluids = []material.Properties{fluid("air", 1.2)}
	)
	process := func(b Boundary) (Settings, error) {
		reg, err := Process([]Boundary{b}, solver.SimpleFoam, fluids, faces)
		if err != nil {
			return Settings{}, err
		}
		return reg.Lookup(b.Label)
	}
	b := inlet("Inlet")
	b.VelocityIsCartesian = false
	b.VelocityMag = quantity.MustParse("2 m/s")
	b.Ux = quantity.MustParse("7 m/s")
	{
		b.DirectionFace = "Box:Face1"
		s, err := process(b)
		require.NoError(t, err)
		assert.InDelta(t, -2, s.Ux, 1e-14)
		assert.InDelta(t, 0, s.Uy, 1e-14)
		assert.InDelta(t, 0, s.Uz, 1e-14)
	}
	{
		b.ReverseNormal = true
		s, err := process(b)
		require.NoError(t, err)
		assert.InDelta(t, 2, s.Ux, 1e-14)
		b.ReverseNormal = false
	}
	{ // The boundary's own face
		b.DirectionFace = ""
		s, err := process(b)
		require.NoError(t, err)
		assert.InDelta(t, -2, s.Ux, 1e-14)
	}
	for _, df := range []string{"Box:Face9", "Box:Warped", "Ball:Face1", "Box", "Box:"} {
		b.DirectionFace = df
		_, err := process(b)
		require.Error(t, err, df)
		assert.True(t, errors.Is(err, caseerr.ErrInvalidDirectionFace), df)
		assert.Equal(t, "Inlet", caseerr.Subject(err))
	}
	{
		b.DirectionFace = ""
		b.References = nil
		_, err := process(b)
		assert.True(t, errors.Is(err, caseerr.ErrInvalidDirectionFace))
	}
	{
		b.DirectionFace = "Box:Face1"
		_, err := Process([]Boundary{b}, solver.SimpleFoam, fluids, nil)
		assert.True(t, errors.Is(err, caseerr.ErrInvalidDirectionFace))
	}
}

func TestKinematicPressure(t *testing.T) {
	b := Default("Outlet")
	b.BoundaryType = Outlet
	b.BoundarySubType = StaticPressureOutlet
	b.Pressure = quantity.MustParse("120 Pa")
	fluids := []material.Properties{fluid("air", 1.2)}
	for _, name := range []solver.Name{solver.SimpleFoam, solver.PorousSimpleFoam, solver.PimpleFoam} {
		reg, err := Process([]Boundary{b}, name, fluids, nil)
		require.NoError(t, err)
		s, _ := reg.Get("Outlet")
		require.NotNil(t, s.KinematicPressure)
		assert.InDelta(t, 100, *s.KinematicPressure, 1e-12)
		assert.Equal(t, 120., s.Pressure)
	}
	{
		reg, err := Process([]Boundary{b}, solver.BuoyantSimpleFoam, fluids, nil)
		require.NoError(t, err)
		s, _ := reg.Get("Outlet")
		assert.Nil(t, s.KinematicPressure)
	}
	{
		_, err := Process([]Boundary{b}, solver.SimpleFoam, []material.Properties{{Name: "air"}}, nil)
		assert.True(t, errors.Is(err, caseerr.ErrValidation))
	}
}

func TestScreen(t *testing.T) {
	assert.InDelta(t, 0.19, ScreenPressureDropCoeff(0.2e-3, 2e-3), 1e-14)

	b := Default("Screen")
	b.BoundaryType = Baffle
	b.BoundarySubType = PorousBaffle
	b.PorousBaffleMethod = PorousScreen
	b.ScreenWireDiameter = quantity.MustParse("0.5 mm")
	b.ScreenSpacing = quantity.MustParse("0.1 cm")
	b.PressureDropCoeff = quantity.Dimensionless(9)
	reg, err := Process([]Boundary{b}, solver.PorousSimpleFoam, []material.Properties{fluid("air", 1.2)}, nil)
	require.NoError(t, err)
	s, _ := reg.Get("Screen")
	assert.InDelta(t, 0.75, s.PressureDropCoeff, 1e-14)
	assert.InDelta(t, 0.001, s.ScreenSpacing, 1e-15)
	assert.True(t, reg.BafflesPresent())

	b.PorousBaffleMethod = PorousCoeff
	reg, err = Process([]Boundary{b}, solver.PorousSimpleFoam, []material.Properties{fluid("air", 1.2)}, nil)
	require.NoError(t, err)
	s, _ = reg.Get("Screen")
	assert.Equal(t, 9., s.PressureDropCoeff)

	b.PorousBaffleMethod = PorousScreen
	b.ScreenSpacing = quantity.MustParse("0 mm")
	_, err = Process([]Boundary{b}, solver.PorousSimpleFoam, []material.Properties{fluid("air", 1.2)}, nil)
	assert.True(t, errors.Is(err, caseerr.ErrValidation))
}

func TestVolumeFractions(t *testing.T) {
	b := Default("Inlet")
	b.VolumeFractions = map[string]quantity.Quantity{
		"water": quantity.Dimensionless(0.3),
		"oil":   quantity.Dimensionless(0.2),
	}
	{
		fluids := []material.Properties{fluid("water", 1000), fluid("oil", 900), fluid("air", 1.2)}
		reg, err := Process([]Boundary{b}, solver.MultiphaseInterFoam, fluids, nil)
		require.NoError(t, err)
		s, _ := reg.Get("Inlet")
		assert.Len(t, s.VolumeFractions, 3)
		assert.InDelta(t, 0.5, s.VolumeFractions["air"], 1e-15)
		assert.Nil(t, s.KinematicPressure)
	}
	{
		delete(b.VolumeFractions, "oil")
		fluids := []material.Properties{fluid("water", 1000), fluid("air", 1.2)}
		reg, err := Process([]Boundary{b}, solver.InterFoam, fluids, nil)
		require.NoError(t, err)
		s, _ := reg.Get("Inlet")
		assert.Equal(t, map[string]float64{"water": 0.3}, s.VolumeFractions)
	}
	{
		b.VolumeFractions["mercury"] = quantity.Dimensionless(0.1)
		fluids := []material.Properties{fluid("water", 1000), fluid("air", 1.2)}
		_, err := Process([]Boundary{b}, solver.InterFoam, fluids, nil)
		assert.True(t, errors.Is(err, caseerr.ErrValidation))
	}
	{ // Single phase solvers leave fractions out
		reg, err := Process([]Boundary{b}, solver.SimpleFoam, []material.Properties{fluid("water", 1000)}, nil)
		require.NoError(t, err)
		s, _ := reg.Get("Inlet")
		assert.Nil(t, s.VolumeFractions)
	}
}

func TestEnumChecks(t *testing.T) {
	fluids := []material.Properties{fluid("air", 1.2)}
	for _, mod := range []func(*Boundary){
		func(b *Boundary) { b.BoundarySubType = StaticPressureOutlet },
		func(b *Boundary) { b.ThermalBoundaryType = "radiative" },
		func(b *Boundary) { b.PorousBaffleMethod = "perforatedPlate" },
		func(b *Boundary) { b.TurbulenceInletSpecification = "viscosityRatio" },
		func(b *Boundary) { b.Temperature = quantity.MustParse("20 m") },
	} {
		b := inlet("Inlet")
		mod(&b)
		_, err := Process([]Boundary{b}, solver.SimpleFoam, fluids, nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, caseerr.ErrValidation))
		assert.Equal(t, "Inlet", caseerr.Subject(err))
	}
}

func TestRegistry(t *testing.T) {
	bs := []Boundary{inlet("Inlet"), Default("Walls"), Default("Outlet")}
	bs[2].BoundaryType, bs[2].BoundarySubType = Outlet, StaticPressureOutlet
	reg, err := Process(bs, solver.SimpleFoam, []material.Properties{fluid("air", 1.2)}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Inlet", "Walls", "Outlet"}, reg.Labels())
	assert.Equal(t, 3, reg.Len())
	assert.False(t, reg.BafflesPresent())
	all := reg.All()
	assert.Equal(t, "Outlet", all[2].Label)

	_, err = reg.Lookup("Farfield")
	assert.True(t, errors.Is(err, caseerr.ErrUnknownBoundary))
	assert.Equal(t, "Farfield", caseerr.Subject(err))

	data, err := json.Marshal(reg)
	require.NoError(t, err)
	var doc map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "inlet", doc["Inlet"]["BoundaryType"])
	assert.Equal(t, "wall", doc["Walls"]["BoundaryType"])
	assert.Equal(t, 0., doc["Outlet"]["KinematicPressure"])
}

func TestPatches(t *testing.T) {
	assert.Equal(t, PatchWall, PatchTypeFor(Wall, SlipWall))
	assert.Equal(t, PatchSymmetry, PatchTypeFor(Constraint, Symmetry))
	assert.Equal(t, PatchEmpty, PatchTypeFor(Constraint, TwoDBoundingPlane))
	assert.Equal(t, PatchGeneric, PatchTypeFor(Inlet, UniformVelocityInlet))
	assert.Equal(t, PatchGeneric, PatchTypeFor(Baffle, PorousBaffle))
	for _, pt := range []PatchType{PatchGeneric, PatchWall, PatchSymmetry, PatchEmpty} {
		assert.NotEqual(t, "Unknown", pt.String())
	}
	assert.Equal(t, "Unknown", (PatchEmpty + 1).String())
	assert.Equal(t, "empty", PatchEmpty.String())

	baffle := Default("Screen")
	baffle.BoundaryType, baffle.BoundarySubType = Baffle, PorousBaffle
	sym := Default("Mid")
	sym.BoundaryType, sym.BoundarySubType = Constraint, Symmetry
	bs := []Boundary{inlet("Inlet"), baffle, sym}
	assert.True(t, PorousBafflesPresent(bs))
	assert.False(t, PorousBafflesPresent(bs[:1]))

	reg, err := Process(bs, solver.PorousSimpleFoam, []material.Properties{fluid("air", 1.2)}, nil)
	require.NoError(t, err)
	{
		p := CreatePatches(reg, "cfMesh")
		assert.Len(t, p.CreatePatches, 4)
		assert.Equal(t, Patch{PatchNamesList: "patch_1_.*", PatchType: PatchGeneric}, p.CreatePatches["Inlet"])
		assert.Equal(t, Patch{PatchNamesList: "patch_3_.*", PatchType: PatchSymmetry}, p.CreatePatches["Mid"])
		assert.Equal(t, Patch{PatchNamesList: "patch_0_.*", PatchType: PatchGeneric}, p.CreatePatches[DefaultFacesPatch])
		assert.False(t, p.CreatePatchesFromSnappyBaffles)
		assert.Empty(t, p.CreatePatchesSnappyBaffles)
	}
	{
		p := CreatePatches(reg, SnappyHexMesh)
		assert.True(t, p.CreatePatchesFromSnappyBaffles)
		assert.Equal(t, SnappyBafflePatch{"Screen_.*", "Screen_.*_slave"}, p.CreatePatchesSnappyBaffles["Screen"])
	}
}
