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
	"io/ioutil"
	"os"

	"github.com/spf13/cobra"

	"github.com/notargets/gofluid/InputParameters"
	"github.com/notargets/gofluid/model_problems/Incompressible2D"
)

// cylinderCmd represents the DFG flow-past-a-cylinder benchmark
var cylinderCmd = &cobra.Command{
	Use:   "cylinder",
	Short: "Flow past a cylinder benchmark",
	Long: `
Transient incompressible flow past a cylinder in a channel, the DFG 2D
benchmark configuration: parabolic inflow on the left, no-slip channel
walls and cylinder surface, zero pressure at the outflow. At the default
parameters the Reynolds number is 100 and the wake sheds vortices.`,
	Run: func(cmd *cobra.Command, args []string) {
		ip := processInput(cmd)
		ip.Case = "Cylinder"
		c, err := Incompressible2D.NewCase(ip)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		if err = c.Solve(); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(cylinderCmd)
	cylinderCmd.Flags().StringP("inputFile", "F", "", "input file (YAML) with run parameters")
	cylinderCmd.Flags().Float64P("finalTime", "T", -1, "final solution time, overrides input file")
	cylinderCmd.Flags().Float64P("dt", "d", -1, "time step, overrides input file")
	cylinderCmd.Flags().Float64P("meshH", "m", -1, "target mesh spacing, overrides input file")
	cylinderCmd.Flags().StringP("outputDir", "o", "", "output directory, overrides input file")
}

// processInput loads the YAML input parameters file named by the
// inputFile flag, or the benchmark defaults when no file is given, then
// applies the command line overrides
func processInput(cmd *cobra.Command) (ip *InputParameters.InputParameters2D) {
	var (
		err       error
		inputFile string
	)
	ip = &InputParameters.InputParameters2D{}
	ip.SetDefaults()
	if inputFile, err = cmd.Flags().GetString("inputFile"); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if len(inputFile) != 0 {
		var data []byte
		if data, err = ioutil.ReadFile(inputFile); err != nil {
			fmt.Printf("unable to read input file %s: %v\n", inputFile, err)
			os.Exit(1)
		}
		if err = ip.Parse(data); err != nil {
			fmt.Printf("unable to parse input file %s: %v\n", inputFile, err)
			os.Exit(1)
		}
	}
	if v, _ := cmd.Flags().GetFloat64("finalTime"); v >= 0 {
		ip.FinalTime = v
	}
	if v, _ := cmd.Flags().GetFloat64("dt"); v > 0 {
		ip.Dt = v
	}
	if v, _ := cmd.Flags().GetFloat64("meshH"); v > 0 {
		ip.MeshH = v
	}
	if v, _ := cmd.Flags().GetString("outputDir"); len(v) != 0 {
		ip.OutputDir = v
	}
	ip.Print()
	return
}
