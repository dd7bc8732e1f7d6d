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
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/foamcase/casesettings"
	"github.com/notargets/foamcase/casewriter"
	"github.com/notargets/foamcase/utils"
)

// WriteCmd represents the write command
var WriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Assemble the case settings and write them to the case directory",
	Long: `
Assembles the case settings and, only if that succeeds, clears <output-dir>/<InputCaseName>
and writes caseSettings.yaml into it.

foamcase write -c case.yaml -g shapes.yaml -o runs`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		opt := casewriter.Options{OutputDir: viper.GetString("output-dir")}
		cs, err := readCase(cmd)
		if err != nil {
			return
		}
		if opt.Faces, err = readGeometry(cmd); err != nil {
			return
		}
		if opt.Prefs, err = readPrefs(); err != nil {
			return
		}
		opt.BackupPath, _ = cmd.Flags().GetString("backup")
		var s *casesettings.Settings
		write := func() (err error) {
			s, err = casewriter.Write(context.Background(), cs, opt)
			return
		}
		if perf, _ := cmd.Flags().GetBool("perf"); perf {
			err = measure(write)
		} else {
			err = write()
		}
		if err != nil {
			return
		}
		log.Debug(utils.GetMemUsage())
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s case to %s\n", s.Solver.SolverName, s.System.CasePath)
		return
	},
}

func init() {
	rootCmd.AddCommand(WriteCmd)
	caseFlags(WriteCmd, true)
	WriteCmd.Flags().StringP("output-dir", "o", ".", "existing directory the case directory is created in")
	WriteCmd.Flags().String("backup", "", "move an existing case directory here instead of deleting it")
	WriteCmd.Flags().Bool("perf", false, "count the CPU instructions spent writing the case (Linux only)")
	_ = viper.BindPFlag("output-dir", WriteCmd.Flags().Lookup("output-dir"))
}
