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
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rotblauer/catpace/app"
	"github.com/rotblauer/catpace/metrics/influxdb"
	"github.com/rotblauer/catpace/params"
)

var optInflux = params.DefaultInfluxConfig()
var optInfluxToken string

// influxCmd represents the influx command
var influxCmd = &cobra.Command{
	Use:   "influx FILE...",
	Short: "Push points, buckets and summaries of GPX files to InfluxDB",
	Long: `Push each file to an InfluxDB v2 bucket as three measurements:

  catpace_point    one per timestamped track point
  catpace_bucket   one per pace bucket
  catpace_summary  distance, elevation, elapsed and pace of the route

Points are tagged with the file's base name, its provider and activity.
Connection settings default to $INFLUXDB_URL, $INFLUXDB_TOKEN, $INFLUXDB_ORG and $INFLUXDB_BUCKET.
`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)
		ctx, cancel := interruptContext()
		defer cancel()

		if optInfluxToken != "" {
			optInflux.Token = optInfluxToken
		}
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
			if err := influxdb.Export(optInflux, filepath.Base(name), res); err != nil {
				log.Fatalln(name, err)
			}
			slog.Info("Exported to InfluxDB", "file", name, "bucket", optInflux.Bucket,
				"points", len(res.Path), "buckets", len(res.Buckets))
		}
	},
}

func init() {
	rootCmd.AddCommand(influxCmd)

	flags := influxCmd.Flags()
	flags.StringVar(&optInflux.URL, "influx-url", optInflux.URL, "InfluxDB URL")
	flags.StringVar(&optInfluxToken, "influx-token", "", "InfluxDB token (default $INFLUXDB_TOKEN)")
	flags.StringVar(&optInflux.Org, "influx-org", optInflux.Org, "InfluxDB organization")
	flags.StringVar(&optInflux.Bucket, "influx-bucket", optInflux.Bucket, "InfluxDB bucket")
}
