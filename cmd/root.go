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
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	profiler interface{ Stop() }
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fitting",
	Short: "Generates CalculiX multipoint constraint fragments for a fitting model",
	Long: `
Reads the nodes of a CalculiX input deck and writes three deck fragments:
duplicate nodes, boundary conditions on the duplicates, and equations tying
each original node to its duplicates.

fitting mpc -F Fitting_fea.inp -I job.yaml`,
	// Execute reports errors once, on stderr
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
		var mode, path string
		if mode, err = cmd.Flags().GetString("profile"); err != nil {
			return
		}
		if path, err = cmd.Flags().GetString("profilePath"); err != nil {
			return
		}
		profiler, err = startProfile(mode, path)
		return
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// execute stops a running profile whether or not the command failed, os.Exit would skip the flush
func execute() error {
	defer func() {
		if profiler != nil {
			profiler.Stop()
			profiler = nil
		}
	}()
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.fitting.yaml)")
	rootCmd.PersistentFlags().String("profile", "", "write a profile of the run: cpu or mem")
	rootCmd.PersistentFlags().String("profilePath", ".", "directory receiving cpu.pprof or mem.pprof")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log progress to stderr")
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		// Search config in home directory with name ".fitting" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".fitting")
	}

	viper.SetEnvPrefix("FITTING")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func startProfile(mode, path string) (p interface{ Stop() }, err error) {
	switch mode {
	case "":
		return nil, nil
	case "cpu":
		return profile.Start(profile.CPUProfile, profile.ProfilePath(path), profile.Quiet, profile.NoShutdownHook), nil
	case "mem":
		return profile.Start(profile.MemProfile, profile.ProfilePath(path), profile.Quiet, profile.NoShutdownHook), nil
	default:
		return nil, fmt.Errorf("unknown profile mode %q, use cpu or mem", mode)
	}
}
