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
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/ademuri/chart-gaps/internal/analysis"
)

const testCSV = `chart_week,current_week,title,performer,last_week,peak_pos,wks_on_chart
1958-08-04,1,Early,Old Timer,NA,1,1
1958-08-11,3,Early,Old Timer,1,1,2
1990-01-06,2,First & Only,Newer,NA,2,1
1993-01-02,5,Second,Newer,NA,5,1
1996-01-06,7,Third,Newer,NA,7,1
2005-01-01,9,Late,Old Timer,NA,9,1
2005-01-01,10,Nobody,,NA,10,1
`

// createTestConfig writes a cache file so nothing is fetched.
func createTestConfig(t *testing.T) AnalyserConfig {
	t.Helper()
	dir := t.TempDir()
	cachePath := filepath.Join(dir, "hot-100-current.csv")
	if err := os.WriteFile(cachePath, []byte(testCSV), 0644); err != nil {
		t.Fatalf("writing cache: %v", err)
	}

	start, end := allTime()
	return AnalyserConfig{
		CachePath: cachePath,
		SourceURL: "http://127.0.0.1:1/unreachable.csv",
		DbPath:    filepath.Join(dir, "chart-gaps.db"),
		Start:     start,
		End:       end,
	}
}

func TestPrintGaps(t *testing.T) {
	config := createTestConfig(t)

	var out bytes.Buffer
	if err := printGaps(context.Background(), &out, config); err != nil {
		t.Fatalf("printGaps: %v", err)
	}

	want := `Old Timer first appeared in 1958 with "Early", and reappeared in 2005 with "Late" (46 years later)
# of performers: 2
# of songs: 5

Years since first appearance by performer,# of reappearances
2,1
6,1
46,1
`
	if out.String() != want {
		t.Errorf("printGaps() =\n%s\nwant:\n%s", out.String(), want)
	}

	// Same cache, same output.
	var again bytes.Buffer
	if err := printGaps(context.Background(), &again, config); err != nil {
		t.Fatalf("printGaps (repeat): %v", err)
	}
	if again.String() != out.String() {
		t.Errorf("Output differs between runs:\n%s\nvs\n%s", again.String(), out.String())
	}
}

func TestPrintGapsNoHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	config := createTestConfig(t)
	if err := os.Remove(config.CachePath); err != nil {
		t.Fatalf("removing cache: %v", err)
	}
	config.SourceURL = server.URL + "/hot-100-current.csv"

	var out bytes.Buffer
	err := printGaps(context.Background(), &out, config)
	if err == nil || !strings.Contains(err.Error(), "no headers found") {
		t.Fatalf("Expected no headers error, got %v", err)
	}
	if strings.Contains(out.String(), "# of performers") {
		t.Errorf("Expected no partial report, got %q", out.String())
	}
}

func TestPrintHistogram(t *testing.T) {
	config := createTestConfig(t)

	var out bytes.Buffer
	if err := printHistogram(context.Background(), &out, config); err != nil {
		t.Fatalf("printHistogram: %v", err)
	}

	output := out.String()
	for _, want := range []string{"YEARS", "REAPPEARANCES", "46", "FOUND 2 PERFORMERS AND 5 SONGS, 3 OF THEM"} {
		if !strings.Contains(strings.ToUpper(output), want) {
			t.Errorf("Output missing %q. Got:\n%s", want, output)
		}
	}
}

func TestRunReport(t *testing.T) {
	config := createTestConfig(t)

	var out bytes.Buffer
	if err := runReport(context.Background(), &out, config); err != nil {
		t.Fatalf("runReport: %v", err)
	}

	var report analysis.Report
	if err := yaml.Unmarshal(out.Bytes(), &report); err != nil {
		t.Fatalf("yaml.Unmarshal: %v\n%s", err, out.String())
	}
	if report.Performers != 2 || report.Songs != 5 {
		t.Errorf("Unexpected counts: %+v", report)
	}
	if len(report.Histogram) != 3 || report.Histogram[0].Years != 2 {
		t.Errorf("Unexpected histogram: %+v", report.Histogram)
	}
	if len(report.Outliers) != 1 || report.Outliers[0].ReappearanceTitle != "Late" {
		t.Errorf("Unexpected outliers: %+v", report.Outliers)
	}
}

func TestImportAndComebacks(t *testing.T) {
	config := createTestConfig(t)

	_, err := ComebacksAnalyser{}.GetResults(context.Background(), config)
	if err == nil || !strings.Contains(err.Error(), "run import first") {
		t.Fatalf("Expected empty database error, got %v", err)
	}

	var out bytes.Buffer
	if err := importDatabase(context.Background(), &out, config); err != nil {
		t.Fatalf("importDatabase: %v", err)
	}
	if !strings.Contains(out.String(), "Importing 2 performers and 5 songs") {
		t.Errorf("Unexpected import output: %q", out.String())
	}

	config.NumToReturn = 2
	a, err := ComebacksAnalyser{}.GetResults(context.Background(), config)
	if err != nil {
		t.Fatalf("GetResults: %v", err)
	}
	if len(a.results) != 3 {
		t.Fatalf("Expected header and 2 rows, got %v", a.results)
	}
	if a.results[1][0] != "Old Timer" || a.results[1][2] != "Late" || a.results[1][5] != "46" {
		t.Errorf("Unexpected first row: %v", a.results[1])
	}
	if a.results[2][2] != "Third" || a.results[2][5] != "6" {
		t.Errorf("Unexpected second row: %v", a.results[2])
	}

	config.Start, config.End, err = getImplicitDateRange("1990s")
	if err != nil {
		t.Fatalf("getImplicitDateRange: %v", err)
	}
	config.NumToReturn = 0
	a, err = ComebacksAnalyser{}.GetResults(context.Background(), config)
	if err != nil {
		t.Fatalf("GetResults 1990s: %v", err)
	}
	if len(a.results) != 3 {
		t.Errorf("Expected Second and Third in the 1990s, got %v", a.results)
	}
}

func TestSplitDateArgs(t *testing.T) {
	tests := []struct {
		args      []string
		wantNames int
		wantDates int
	}{
		{[]string{"histogram"}, 1, 0},
		{[]string{"histogram", "comebacks", "1980s"}, 2, 1},
		{[]string{"comebacks", "1980", "1990"}, 1, 2},
		{[]string{"1970", "1980", "1990"}, 1, 2},
	}
	for _, tt := range tests {
		names, dates := splitDateArgs(tt.args)
		if len(names) != tt.wantNames || len(dates) != tt.wantDates {
			t.Errorf("splitDateArgs(%v) = %v, %v", tt.args, names, dates)
		}
	}
}

func TestGenerateEmailContent(t *testing.T) {
	config := createTestConfig(t)
	if err := importDatabase(context.Background(), &bytes.Buffer{}, config); err != nil {
		t.Fatalf("importDatabase: %v", err)
	}

	emailConfig := SendEmailConfig{
		Analyser: config,
		Types:    []string{"histogram", "comebacks"},
	}
	actions := []Analyser{HistogramAnalyser{}, ComebacksAnalyser{}}
	subject, body, err := generateEmailContent(context.Background(), emailConfig, actions)
	if err != nil {
		t.Fatalf("generateEmailContent: %v", err)
	}

	if subject != "Hot 100 report: histogram, comebacks" {
		t.Errorf("Unexpected subject %q", subject)
	}
	for _, want := range []string{"<h2>Years between hits</h2>", "<h2>Longest comebacks</h2>", "<td>46</td>", "<td>Late</td>"} {
		if !strings.Contains(body, want) {
			t.Errorf("Body missing %q. Got:\n%s", want, body)
		}
	}
}

func TestGetActionFromName(t *testing.T) {
	if _, err := getActionFromName("histogram"); err != nil {
		t.Errorf("getActionFromName(histogram): %v", err)
	}
	if _, err := getActionFromName("top-artists"); err == nil {
		t.Errorf("Expected error for unknown analysis")
	}
}
