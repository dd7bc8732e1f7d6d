/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/foamcase/InputParameters"
	"github.com/notargets/foamcase/geometry"
	"github.com/notargets/foamcase/prefs"
)

const exampleCase = `
########################################
Title: Cavity
Materials:
  - Name: air
    Density: 1.2 kg/m^3
    DynamicViscosity: 1.8e-5 kg/m/s
Solver:
  InputCaseName: cavity
InitialValues:
  UseOutletPValue: false
Boundaries:
  - Label: lid
    BoundaryType: wall
    BoundarySubType: translatingWall
    Ux: 1 m/s
  - Label: walls
Mesh:
  CaseName: cavityMesh
########################################
`

// caseFlags are the inputs shared by the commands that read a case
func caseFlags(c *cobra.Command, withGeometry bool) {
	c.Flags().StringP("case", "c", "", "YAML case description")
	if withGeometry {
		c.Flags().StringSliceP("geometry", "g", nil, "shape files (.yaml, .su2) holding the faces boundaries refer to")
	}
}

func readCase(c *cobra.Command) (cs *InputParameters.Case, err error) {
	var (
		fn   string
		data []byte
	)
	if fn, err = c.Flags().GetString("case"); err != nil {
		return
	}
	if len(fn) == 0 {
		return nil, fmt.Errorf("must supply a case file (-c, --case)\nExample File:%s", exampleCase)
	}
	if data, err = os.ReadFile(fn); err != nil {
		return
	}
	cs = &InputParameters.Case{}
	if err = cs.Parse(data); err != nil {
		return nil, fmt.Errorf("%s: %w", fn, err)
	}
	log.WithField("file", fn).Debug("read case description")
	return
}

func readGeometry(c *cobra.Command) (st *geometry.Store, err error) {
	var files []string
	if files, err = c.Flags().GetStringSlice("geometry"); err != nil {
		return
	}
	st = geometry.NewStore()
	for _, fn := range files {
		if err = st.ReadFile(fn); err != nil {
			return nil, err
		}
	}
	log.WithField("shapes", st.Len()).Debug("read geometry")
	return
}

func readPrefs() (p prefs.Preferences, err error) {
	fn := viper.GetString("prefs")
	if fn == "" {
		return prefs.Default(), nil
	}
	if fn, err = homedir.Expand(fn); err != nil {
		return
	}
	return prefs.Load(fn)
}
