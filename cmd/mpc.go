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
	"github.com/spf13/viper"

	"github.com/ManuelZ/Finite-Element-Analysis/InputParameters"
	"github.com/ManuelZ/Finite-Element-Analysis/mpc"
	"github.com/ManuelZ/Finite-Element-Analysis/utils"
)

var exampleJobFile = `
########################################
Title: "Fitting"
MeshFile: Fitting_fea.inp
FirstNodeID: 5487 # above the highest node number of the mesh
NodeSet: Contact  # or an explicit list, Nodes: [70, 71, 74, 75]
OutputDir: .
########################################
`

// MPCCmd represents the mpc command
var MPCCmd = &cobra.Command{
	Use:   "mpc",
	Short: "Writes duplicate nodes, boundaries and equations for a set of mesh nodes",
	Long: `
Duplicates every constrained node twice at the same location. The base duplicate
is fixed, the movable duplicate is free in z only, and an *EQUATION makes the z
displacement of the original node the sum of both duplicates' z displacements.

fitting mpc -F Fitting_fea.inp --nodeSet Contact --firstNodeID 5487`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			ip     *InputParameters.MPCParameters
			r      *mpc.Result
			dryRun bool
		)
		logger := utils.NewLogger(viper.GetBool("verbose"))
		if ip, err = processMPCInput(cmd); err != nil {
			return
		}
		if err = ip.Validate(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Example File:%s\n", exampleJobFile)
			return
		}
		if viper.GetBool("verbose") {
			// stdout carries the fragments on dry runs
			ip.Fprint(cmd.ErrOrStderr())
		}
		if dryRun, err = cmd.Flags().GetBool("dryRun"); err != nil {
			return
		}
		if dryRun {
			if r, err = mpc.Prepare(ip, logger); err != nil {
				return
			}
			_, err = r.WriteTo(cmd.OutOrStdout())
			return
		}
		_, err = mpc.Run(ip, logger)
		return
	},
}

func init() {
	rootCmd.AddCommand(MPCCmd)
	MPCCmd.Flags().StringP("meshFile", "F", "", "CalculiX input deck (.inp) holding the *NODE section")
	MPCCmd.Flags().StringP("inputParametersFile", "I", "", "YAML job file with:\n\t- MeshFile\n\t- FirstNodeID\n\t- Nodes or NodeSet")
	MPCCmd.Flags().StringP("outputDir", "o", "", "directory for nodes.txt, boundaries.txt and equations.txt")
	MPCCmd.Flags().Int("firstNodeID", 0, "number of the first duplicate node, must exceed every mesh node number")
	MPCCmd.Flags().String("nodeSet", "", "name of the *NSET listing the constrained nodes")
	MPCCmd.Flags().IntSlice("nodes", nil, "comma separated list of constrained nodes")
	MPCCmd.Flags().Bool("dryRun", false, "print the fragments to stdout instead of writing files")
	for _, name := range []string{"meshFile", "outputDir", "firstNodeID", "nodeSet"} {
		viper.BindPFlag("mpc."+name, MPCCmd.Flags().Lookup(name))
	}
}

/*
processMPCInput assembles the job: the YAML job file when given, then command line flags on top of it.
Settings missing from both fall back to the config file and FITTING_MPC_* environment variables.
*/
func processMPCInput(cmd *cobra.Command) (ip *InputParameters.MPCParameters, err error) {
	var (
		icFile string
		nodes  []int
		data   []byte
	)
	ip = InputParameters.NewMPCParameters()
	if icFile, err = cmd.Flags().GetString("inputParametersFile"); err != nil {
		return
	}
	if len(icFile) != 0 {
		if data, err = os.ReadFile(icFile); err != nil {
			return
		}
		if err = ip.Parse(data); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", icFile, err)
		}
	}
	flags := cmd.Flags()
	// An explicit flag wins even when empty, so "--nodeSet ''" clears a job file setting
	override := func(name string, current string) string {
		if flags.Changed(name) {
			v, _ := flags.GetString(name)
			return v
		}
		if len(current) == 0 {
			return viper.GetString("mpc." + name)
		}
		return current
	}
	ip.MeshFile = override("meshFile", ip.MeshFile)
	ip.OutputDir = override("outputDir", ip.OutputDir)
	if flags.Changed("nodeSet") || len(ip.Nodes) == 0 {
		ip.NodeSet = override("nodeSet", ip.NodeSet)
	}
	if flags.Changed("firstNodeID") {
		ip.FirstNodeID, _ = flags.GetInt("firstNodeID")
	} else if ip.FirstNodeID == 0 {
		ip.FirstNodeID = viper.GetInt("mpc.firstNodeID")
	}
	if flags.Changed("nodes") {
		if nodes, err = flags.GetIntSlice("nodes"); err != nil {
			return
		}
		ip.Nodes, ip.NodeSet = nodes, ""
	} else if flags.Changed("nodeSet") && len(ip.NodeSet) != 0 {
		ip.Nodes = nil
	}
	return
}
