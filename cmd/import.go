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
	"time"

	"github.com/spf13/cobra"

	"github.com/ademuri/chart-gaps/internal/store"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Stores first appearances in a local SQLite database",
	Long:  `Replaces any previous import. The database is used by the comebacks command.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := importDatabase(cmd.Context(), os.Stdout, newAnalyserConfig())
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func importDatabase(ctx context.Context, out io.Writer, config AnalyserConfig) error {
	result, err := loadResult(ctx, out, config)
	if err != nil {
		return err
	}

	db, err := store.New(config.DbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	fmt.Fprintf(out, "Importing %d performers and %d songs into %s\n",
		result.NumPerformers(), result.NumSongs(), config.DbPath)
	err = db.SaveResult(result, config.CachePath, time.Now())
	if err != nil {
		return fmt.Errorf("saving result: %w", err)
	}

	return nil
}
