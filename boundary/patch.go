package boundary

import (
	"fmt"
)

// PatchType is the mesh patch type a boundary is written as
type PatchType uint8

const (
	PatchGeneric PatchType = iota
	PatchWall
	PatchSymmetry
	PatchEmpty
)

func (p PatchType) String() string {
	names := map[PatchType]string{
		PatchGeneric:  "patch",
		PatchWall:     "wall",
		PatchSymmetry: "symmetry",
		PatchEmpty:    "empty",
	}
	if name, ok := names[p]; ok {
		return name
	}
	return "Unknown"
}

func (p PatchType) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// PatchTypeFor gives the patch type for a boundary category and sub-type.
func PatchTypeFor(t Type, st SubType) PatchType {
	switch t {
	case Wall:
		return PatchWall
	case Constraint:
		switch st {
		case Symmetry:
			return PatchSymmetry
		case TwoDBoundingPlane:
			return PatchEmpty
		}
	}
	return PatchGeneric
}

// DefaultFacesPatch collects mesh faces not assigned to any boundary
const DefaultFacesPatch = "defaultFaces"

// SnappyHexMesh is the mesher that writes baffles as master/slave patch pairs
const SnappyHexMesh = "snappyHexMesh"

type Patch struct {
	PatchNamesList string    `json:"PatchNamesList"`
	PatchType      PatchType `json:"PatchType"`
}

type SnappyBafflePatch struct {
	PatchNamesList      string `json:"PatchNamesList"`
	PatchNamesListSlave string `json:"PatchNamesListSlave"`
}

// Patches renames the numbered patches produced by meshing to the boundary labels.
type Patches struct {
	CreatePatches                  map[string]Patch             `json:"createPatches"`
	CreatePatchesSnappyBaffles     map[string]SnappyBafflePatch `json:"createPatchesSnappyBaffles"`
	CreatePatchesFromSnappyBaffles bool                         `json:"createPatchesFromSnappyBaffles"`
}

// CreatePatches maps the i'th boundary (1-based, input order) to mesh patches named
// patch_<i>_*. Unassigned faces come out of meshing as patch_0_*.
func CreatePatches(reg *Registry, meshUtility string) (p Patches) {
	p = Patches{
		CreatePatches:              make(map[string]Patch, reg.Len()+1),
		CreatePatchesSnappyBaffles: make(map[string]SnappyBafflePatch),
	}
	for i, b := range reg.All() {
		p.CreatePatches[b.Label] = Patch{
			PatchNamesList: fmt.Sprintf("patch_%d_.*", i+1),
			PatchType:      PatchTypeFor(b.BoundaryType, b.BoundarySubType),
		}
		if b.BoundaryType == Baffle && meshUtility == SnappyHexMesh {
			p.CreatePatchesFromSnappyBaffles = true
			p.CreatePatchesSnappyBaffles[b.Label] = SnappyBafflePatch{
				PatchNamesList:      b.Label + "_.*",
				PatchNamesListSlave: b.Label + "_.*_slave",
			}
		}
	}
	p.CreatePatches[DefaultFacesPatch] = Patch{PatchNamesList: "patch_0_.*", PatchType: PatchGeneric}
	return
}
