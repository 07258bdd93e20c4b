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

	"github.com/spf13/cobra"

	"github.com/notargets/gofluid/model_problems/Incompressible2D"
)

// channelCmd represents the pressure-driven channel validation case
var channelCmd = &cobra.Command{
	Use:   "channel",
	Short: "Pressure-driven Poiseuille channel",
	Long: `
Pressure-driven flow through the unit square channel with no-slip
walls. The flow settles onto the analytic parabolic Poiseuille profile,
which the discretization represents exactly, so this case validates the
projection scheme end to end.`,
	Run: func(cmd *cobra.Command, args []string) {
		ip := processInput(cmd)
		ip.Case = "Channel"
		c, err := Incompressible2D.NewCase(ip)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		if err = c.Solve(); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Printf("Max error vs analytic Poiseuille profile = %11.4e\n",
			Incompressible2D.ChannelError(c, ip))
	},
}

func init() {
	rootCmd.AddCommand(channelCmd)
	channelCmd.Flags().StringP("inputFile", "F", "", "input file (YAML) with run parameters")
	channelCmd.Flags().Float64P("finalTime", "T", -1, "final solution time, overrides input file")
	channelCmd.Flags().Float64P("dt", "d", -1, "time step, overrides input file")
	channelCmd.Flags().Float64P("meshH", "m", -1, "target mesh spacing, overrides input file")
	channelCmd.Flags().StringP("outputDir", "o", "", "output directory, overrides input file")
}
