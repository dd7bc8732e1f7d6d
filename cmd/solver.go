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

	"github.com/spf13/cobra"

	"github.com/notargets/foamcase/casesettings"
)

// SolverCmd represents the solver command
var SolverCmd = &cobra.Command{
	Use:   "solver",
	Short: "Print the OpenFOAM solver selected for a case",
	RunE: func(cmd *cobra.Command, args []string) error {
		cs, err := readCase(cmd)
		if err != nil {
			return err
		}
		name, err := casesettings.SelectSolver(cs)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(SolverCmd)
	caseFlags(SolverCmd, false)
}
