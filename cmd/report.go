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
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ademuri/chart-gaps/internal/analysis"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generates a YAML report of the years between hits",
	Long:  `Writes performer and song counts, the histogram sorted by years, and every gap longer than 40 years as YAML.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := runReport(cmd.Context(), os.Stdout, newAnalyserConfig())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating report: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(ctx context.Context, out io.Writer, config AnalyserConfig) error {
	// Keep fetch progress out of the YAML document.
	result, err := loadResult(ctx, os.Stderr, config)
	if err != nil {
		return err
	}

	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	err = encoder.Encode(analysis.NewReport(result))
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	return encoder.Close()
}
