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
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rotblauer/catpace/app"
	"github.com/rotblauer/catpace/catz"
	"github.com/rotblauer/catpace/export"
)

var optExportFormat string
var optExportGZip bool
var optExportOut string

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Export the points of a GPX file as CSV or GeoJSON",
	Long: `Export the measured points of a GPX file.

CSV has one row per point: time, latitude, longitude, elevation (meters)
and cumulative distance (meters). GeoJSON is a single LineString feature
carrying the route summary as properties.

Output goes to stdout unless --out is given. With --gzip and no --out,
the output is written next to FILE, eg. run.gpx -> run.csv.gz.

Examples:

  catpace export --format csv run.gpx > run.csv
  catpace export --format geojson --gzip --out /tmp/run.geojson.gz run.gpx
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)
		ctx, cancel := interruptContext()
		defer cancel()

		if optExportFormat != "csv" && optExportFormat != "geojson" {
			log.Fatalln(fmt.Errorf("format: want csv or geojson, got %q", optExportFormat))
		}
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

		out := optExportOut
		if optExportGZip {
			if out == "" {
				out = catz.SwapExt(args[0], "."+optExportFormat)
			}
			if !strings.HasSuffix(out, ".gz") {
				out += ".gz"
			}
		}
		var w io.WriteCloser = os.Stdout
		if out != "" {
			w, err = catz.Create(out)
			if err != nil {
				log.Fatalln(err)
			}
		}
		switch optExportFormat {
		case "csv":
			err = export.WriteCSV(w, res.Path)
		case "geojson":
			err = export.WriteGeoJSON(w, res.Path, res.Summary, res.Provider)
		}
		if err != nil {
			log.Fatalln(err)
		}
		if out != "" {
			if err := w.Close(); err != nil {
				log.Fatalln(err)
			}
			slog.Info("Exported", "file", args[0], "out", out, "points", len(res.Path))
		}
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	flags := exportCmd.Flags()
	flags.StringVar(&optExportFormat, "format", "csv", "Output format: csv or geojson")
	flags.BoolVar(&optExportGZip, "gzip", false, "Compress the output")
	flags.StringVar(&optExportOut, "out", "", "Output file (default stdout)")
}
