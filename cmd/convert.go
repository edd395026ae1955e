/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>

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
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rotblauer/catpace/params"
)

var optWorkersN int
var optOutDir string

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert FILE...",
	Short: "Convert GPX files to CSV in parallel",
	Long: `Convert each GPX file to a CSV file of its points, written next to it
(run.gpx -> run.csv) or into --out-dir.

Route files without elevation (onthegomap) are enriched with the configured
elevation oracle. Files that fail are logged and skipped; the command exits
non-zero if any did.

Examples:

  catpace convert --workers 8 ~/tracks/*.gpx
  GOOGLE_ELEVATION_API_KEY=... catpace convert --elevation google route.gpx
`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)
		ctx, cancel := interruptContext()
		defer cancel()

		job, err := newJob()
		if err != nil {
			log.Fatalln(err)
		}
		failed := 0
		for c := range job.ConvertAll(ctx, args, optOutDir, optWorkersN) {
			if c.Err != nil {
				failed++
				continue
			}
			fmt.Println(c.Out)
		}
		slog.Info("Convert done", "files", len(args), "failed", failed)
		if failed > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)

	flags := convertCmd.Flags()
	flags.IntVar(&optWorkersN, "workers", params.DefaultWorkers, "Number of files converted in parallel")
	flags.StringVar(&optOutDir, "out-dir", "", "Directory for CSV files (default next to each input)")
}
