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
	"log"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/rotblauer/catpace/app"
	"github.com/rotblauer/catpace/export"
)

// bucketsCmd represents the buckets command
var bucketsCmd = &cobra.Command{
	Use:   "buckets FILE",
	Short: "Print the bucketed pace series of a GPX file as NDJSON",
	Long: `Print one JSON bucket per line: index, x (seconds or miles), pace (minutes per mile)
and altitude (meters).

With --smooth the pace series is dampened, and the interpolated display curve
follows the buckets as a second stream of {x, pace} lines.

Examples:

  catpace buckets --by time --interval 60 ride.gpx
  catpace buckets --by distance --interval 0.25 --smooth --points 200 run.gpx
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)
		ctx, cancel := interruptContext()
		defer cancel()

		job, err := newJob()
		if err != nil {
			log.Fatalln(err)
		}
		raw, err := app.ReadFile(args[0])
		if err != nil {
			log.Fatalln(err)
		}
		res, err := job.Run(ctx, raw)
		if err != nil {
			log.Fatalln(args[0], err)
		}
		if len(res.Buckets) == 0 {
			slog.Warn("No buckets", "file", args[0], "timed", len(res.Path) > 0 && res.Path[0].Timestamped)
		}
		slog.Info("Pace", "buckets", len(res.Buckets),
			"mean", humanize.FormatFloat("#.##", res.Pace.Mean),
			"median", humanize.FormatFloat("#.##", res.Pace.Median),
			"min", humanize.FormatFloat("#.##", res.Pace.Min),
			"max", humanize.FormatFloat("#.##", res.Pace.Max))

		if err := export.WriteBucketsNDJSON(os.Stdout, res.Buckets); err != nil {
			log.Fatalln(err)
		}
		if job.Config.Bucket.Smooth && res.Curve != nil {
			if err := export.WriteCurveNDJSON(os.Stdout, res.Curve.X, res.Curve.Y); err != nil {
				log.Fatalln(err)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(bucketsCmd)
}
