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
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"

	"github.com/ademuri/chart-gaps/internal/analysis"
	"github.com/ademuri/chart-gaps/internal/chart"
	"github.com/ademuri/chart-gaps/internal/dataset"
)

type Analysis struct {
	results [][]string
	summary string
}

type AnalyserConfig struct {
	CachePath string
	SourceURL string
	DbPath    string

	// Only songs that first charted in [Start, End) are considered, for
	// analysers that support a range.
	Start time.Time
	End   time.Time

	// Number of results to return, default is all results.
	NumToReturn int
}

type Analyser interface {
	GetResults(ctx context.Context, config AnalyserConfig) (Analysis, error)

	GetName() string
}

func newAnalyserConfig() AnalyserConfig {
	start, end := allTime()
	return AnalyserConfig{
		CachePath: viper.GetString("cache"),
		SourceURL: viper.GetString("source"),
		DbPath:    viper.GetString("database"),
		Start:     start,
		End:       end,
	}
}

// allTime covers every chart week, including records whose date didn't parse.
func allTime() (time.Time, time.Time) {
	return time.Time{}, time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC)
}

// loadResult runs the whole pipeline. Fetch progress is written to out.
func loadResult(ctx context.Context, out io.Writer, config AnalyserConfig) (*analysis.Result, error) {
	provider := dataset.New(config.CachePath, config.SourceURL, out)
	data, err := provider.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}

	records, err := chart.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing dataset: %w", err)
	}

	return analysis.Analyze(records), nil
}

func (a Analysis) String() string {
	out := new(bytes.Buffer)
	table := tablewriter.NewWriter(out)
	table.Header(a.results[0])
	for _, row := range a.results[1:] {
		if err := table.Append(row); err != nil {
			return fmt.Sprintf("Error rendering table: %v", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Sprintf("Error rendering table: %v", err)
	}
	fmt.Fprintf(out, "%s\n", a.summary)
	return out.String()
}
