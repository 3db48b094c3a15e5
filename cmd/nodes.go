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

	"github.com/ManuelZ/Finite-Element-Analysis/calculix"
	"github.com/ManuelZ/Finite-Element-Analysis/readfiles"
	"github.com/ManuelZ/Finite-Element-Analysis/types"
)

// NodesCmd represents the nodes command
var NodesCmd = &cobra.Command{
	Use:   "nodes",
	Short: "Lists the nodes of a CalculiX input deck",
	Long: `
Prints "id, x, y, z" for every node of the deck in ascending order, or for the
members of one node set in set order. Useful to check a node set before
generating constraints for it.

fitting nodes -F Fitting_fea.inp --nodeSet Contact`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			meshFile, nodeSet string
			nt                *types.NodeTable
			ids               []types.NodeID
		)
		if meshFile, err = cmd.Flags().GetString("meshFile"); err != nil {
			return
		}
		if len(meshFile) == 0 {
			return fmt.Errorf("must supply a mesh file (-F, --meshFile) in CalculiX (.inp) format")
		}
		if nodeSet, err = cmd.Flags().GetString("nodeSet"); err != nil {
			return
		}
		if nt, err = readfiles.ReadCalculixNodesFile(meshFile); err != nil {
			return
		}
		if !nt.SectionFound {
			return fmt.Errorf("no *NODE section in %s", meshFile)
		}
		ids = nt.SortedIDs()
		if len(nodeSet) != 0 {
			if ids, err = readfiles.ReadCalculixNodeSetFile(meshFile, nodeSet); err != nil {
				return
			}
		}
		out := cmd.OutOrStdout()
		for _, id := range ids {
			p, ok := nt.Lookup(id)
			if !ok {
				fmt.Fprintf(out, "** %d not found\n", id)
				continue
			}
			fmt.Fprintln(out, calculix.NodeRecord{ID: id, Point: p}.Format())
		}
		return
	},
}

func init() {
	rootCmd.AddCommand(NodesCmd)
	NodesCmd.Flags().StringP("meshFile", "F", "", "CalculiX input deck (.inp) holding the *NODE section")
	NodesCmd.Flags().String("nodeSet", "", "only list the members of this *NSET")
}
