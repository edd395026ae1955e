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

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/rotblauer/catpace/app"
	"github.com/rotblauer/catpace/types/route"
)

// summaryCmd represents the summary command
var summaryCmd = &cobra.Command{
	Use:   "summary FILE...",
	Short: "Print a pace report for each GPX file",
	Long: `Print distance, pace, elapsed time, elevation change and activity for each file.

Examples:

  catpace summary morning_run.gpx
  catpace summary --exclude-rest --rest-threshold 5s *.gpx.gz
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
		for _, name := range args {
			raw, err := app.ReadFile(name)
			if err != nil {
				log.Fatalln(err)
			}
			res, err := job.Run(ctx, raw)
			if err != nil {
				log.Fatalln(name, err)
			}
			fmt.Printf("%s (%s, %s points)\n%s\n", name, res.Provider,
				humanize.Comma(int64(res.Summary.PointCount)), res.Summary.Report())
			for _, gap := range res.Summary.RestGaps {
				fmt.Printf("  rest %s before point %d\n", route.FormatDuration(gap.Duration()), gap.Index)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}
