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
	"strconv"

	"github.com/spf13/cobra"
)

var histogramCmd = &cobra.Command{
	Use:   "histogram",
	Short: "Prints the years-between-hits distribution as a table",
	Long:  `Same data as the default report, with buckets sorted by number of years.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := printHistogram(cmd.Context(), os.Stdout, newAnalyserConfig())
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(histogramCmd)
}

func printHistogram(ctx context.Context, out io.Writer, config AnalyserConfig) error {
	a, err := HistogramAnalyser{Out: out}.GetResults(ctx, config)
	if err != nil {
		return err
	}
	fmt.Fprint(out, a)
	return nil
}

type HistogramAnalyser struct {
	// Fetch progress goes here. May be nil.
	Out io.Writer
}

func (h HistogramAnalyser) GetName() string {
	return "Years between hits"
}

func (h HistogramAnalyser) GetResults(ctx context.Context, config AnalyserConfig) (a Analysis, err error) {
	result, err := loadResult(ctx, h.Out, config)
	if err != nil {
		return
	}

	a.results = [][]string{{"Years", "Reappearances"}}
	for _, b := range result.Histogram.SortedBuckets() {
		a.results = append(a.results, []string{strconv.Itoa(b.Years), strconv.Itoa(b.Count)})
	}
	a.summary = fmt.Sprintf("Found %d performers and %d songs, %d of them after the performer's first hit\n",
		result.NumPerformers(), result.NumSongs(), result.Histogram.Total())
	return
}
