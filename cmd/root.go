/*
Copyright 2020 Google LLC

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
	"github.com/spf13/pflag"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/ademuri/chart-gaps/internal/dataset"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chart-gaps",
	Short: "Measures how long Hot 100 performers wait between hits",
	Long: `Counts, for every performer on the Billboard Hot 100, the years between
their first chart appearance and the first appearance of each of their
later songs, and prints the distribution.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := printGaps(cmd.Context(), os.Stdout, newAnalyserConfig())
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default is $HOME/.chart-gaps.yaml)")

	var cachePath string
	rootCmd.PersistentFlags().StringVar(
		&cachePath, "cache", dataset.DefaultCachePath, "Local copy of the Hot 100 CSV")
	viper.BindPFlag("cache", rootCmd.PersistentFlags().Lookup("cache"))

	var sourceURL string
	rootCmd.PersistentFlags().StringVar(
		&sourceURL, "source", dataset.DefaultSourceURL, "URL to fetch the Hot 100 CSV from when there is no local copy")
	viper.BindPFlag("source", rootCmd.PersistentFlags().Lookup("source"))

	var databasePath string
	rootCmd.PersistentFlags().StringVarP(
		&databasePath, "database", "d", "./chart-gaps.db", "Path to the SQLite database")
	viper.BindPFlag("database", rootCmd.PersistentFlags().Lookup("database"))
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

		// Search config in home directory with name ".chart-gaps" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".chart-gaps")
	}

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	// See https://github.com/spf13/viper/pull/852
	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		if viper.IsSet(f.Name) && viper.GetString(f.Name) != "" {
			rootCmd.Flags().Set(f.Name, viper.GetString(f.Name))
		}
	})
}
