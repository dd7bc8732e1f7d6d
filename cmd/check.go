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
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/notargets/foamcase/casesettings"
)

// CheckCmd represents the check command
var CheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Assemble the case settings without writing anything",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		cs, err := readCase(cmd)
		if err != nil {
			return
		}
		if p, _ := cmd.Flags().GetBool("print"); p {
			cs.Print()
		}
		var opt casesettings.Options
		if opt.Faces, err = readGeometry(cmd); err != nil {
			return
		}
		if opt.Prefs, err = readPrefs(); err != nil {
			return
		}
		opt.CasePath = filepath.Join(".", cs.Solver.InputCaseName)
		s, err := casesettings.Assemble(cs, opt)
		if err != nil {
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "OK: %s, %d boundaries\n", s.Solver.SolverName, s.Boundaries.Len())
		return
	},
}

func init() {
	rootCmd.AddCommand(CheckCmd)
	caseFlags(CheckCmd, true)
	CheckCmd.Flags().BoolP("print", "p", false, "print a summary of the case description")
}
