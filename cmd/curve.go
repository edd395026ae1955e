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
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rotblauer/catpace/export"
	"github.com/rotblauer/catpace/geo/bucket"
	"github.com/rotblauer/catpace/geo/smooth"
	"github.com/rotblauer/catpace/stream"
)

// curveCmd represents the curve command
var curveCmd = &cobra.Command{
	Use:   "curve [FILE]",
	Short: "Interpolate a display curve from NDJSON buckets",
	Long: `Read buckets as printed by 'catpace buckets' from FILE or stdin and print
the interpolated display curve of their pace as {x, pace} lines.

Examples:

  catpace buckets --smooth=false run.gpx | catpace curve --smooth --points 100
  catpace buckets --by time run.gpx | catpace curve --x-minutes
`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)
		ctx, cancel := interruptContext()
		defer cancel()

		config, err := jobConfig()
		if err != nil {
			log.Fatalln(err)
		}
		var in io.Reader = os.Stdin
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				log.Fatalln(err)
			}
			defer f.Close()
			in = f
		}

		buckets, errs := stream.NDJSON[bucket.Bucket](ctx, in)
		collected := stream.Collect(ctx, buckets)
		if err := <-errs; err != nil {
			log.Fatalln(err)
		}
		slog.Info("Read buckets", "count", len(collected))

		paces := bucket.Paces(collected)
		if config.Bucket.Smooth {
			paces = smooth.Dampen(paces)
		}
		n := config.Bucket.DisplayPoints
		if n <= 0 {
			n = smooth.DefaultDisplayPoints
		}
		xs := bucket.Xs(collected)
		if optXMinutes {
			xs = bucket.XMinutes(collected)
		}
		xs, ys, err := smooth.Interpolate(xs, paces, n)
		if err != nil {
			log.Fatalln(err)
		}
		if err := export.WriteCurveNDJSON(os.Stdout, xs, ys); err != nil {
			log.Fatalln(err)
		}
	},
}

var optXMinutes bool

func init() {
	rootCmd.AddCommand(curveCmd)

	flags := curveCmd.Flags()
	flags.BoolVar(&optXMinutes, "x-minutes", false, "Scale x of time buckets from seconds to minutes")
}
