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
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ademuri/chart-gaps/internal/chart"
	"github.com/ademuri/chart-gaps/internal/store"
)

var comebacksNumber int
var comebacksCmd = &cobra.Command{
	Use:   "comebacks [from] [to (optional)]",
	Short: "Lists the songs that came longest after their performer's first hit",
	Long: `Reads the database written by import. Without arguments, covers the whole chart.
Date strings look like 'yyyy0s', 'yyyy', 'yyyy-mm', or 'yyyy-mm-dd'.`,
	Args: cobra.RangeArgs(0, 2),
	Run: func(cmd *cobra.Command, args []string) {
		err := printComebacks(cmd.Context(), comebacksNumber, args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(comebacksCmd)

	comebacksCmd.Flags().IntVarP(&comebacksNumber, "number", "n", 10, "number of results to return")
}

func printComebacks(ctx context.Context, numToReturn int, args []string) error {
	start, end, err := parseDateRangeFromArgs(args)
	if err != nil {
		return err
	}

	config := newAnalyserConfig()
	config.Start = start
	config.End = end
	config.NumToReturn = numToReturn
	out, err := ComebacksAnalyser{}.GetResults(ctx, config)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

type ComebacksAnalyser struct{}

func (c ComebacksAnalyser) GetName() string {
	return "Longest comebacks"
}

func (c ComebacksAnalyser) GetResults(ctx context.Context, config AnalyserConfig) (analysis Analysis, err error) {
	db, err := store.New(config.DbPath)
	if err != nil {
		err = fmt.Errorf("opening database: %w", err)
		return
	}
	defer db.Close()

	info, ok, err := db.GetImport()
	if err != nil {
		return
	}
	if !ok {
		err = fmt.Errorf("Database is empty - run import first.")
		return
	}

	comebacks, err := db.GetTopComebacks(config.Start, config.End, config.NumToReturn)
	if err != nil {
		return
	}

	analysis.results = [][]string{{"Performer", "First hit", "Song", "Charted", "Peak", "Years"}}
	for _, cb := range comebacks {
		analysis.results = append(analysis.results, []string{
			cb.Performer,
			fmt.Sprintf("%s (%d)", cb.FirstTitle, cb.FirstWeek.Year()),
			cb.Title,
			cb.Week.Format(chart.DateFormat),
			strconv.Itoa(cb.PeakRank),
			strconv.Itoa(cb.Years),
		})
	}

	analysis.summary = fmt.Sprintf("Showing %d comebacks from %d performers and %d songs imported %s\n",
		len(comebacks), info.Performers, info.Songs, info.Imported.Format(chart.DateFormat))

	return
}
