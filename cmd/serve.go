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

	"github.com/spf13/cobra"

	"github.com/rotblauer/catpace/daemon/webd"
	"github.com/rotblauer/catpace/elevation"
	"github.com/rotblauer/catpace/params"
)

var optHTTPAddr string
var optHTTPNetwork string
var optMaxBodyBytes int64

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"webd"},
	Short:   "Start the webserver",
	Long: `Serves GPX summaries on the internet.

  POST /summary          GPX body -> JSON summary
  POST /buckets          GPX body -> JSON buckets, summary and display curve
  POST /export.csv       GPX body -> CSV points
  POST /export.geojson   GPX body -> GeoJSON feature
  GET  /metrics          Prometheus metrics
  GET  /status           daemon config and uptime

Job flags set the defaults; requests override them with query params,
eg. /buckets?by=time&interval=60&smooth=true. When CATPACE_TOKEN is set,
job endpoints require it in the Authorization header or an api_token param.
`,
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)
		ctx, cancel := interruptContext()
		defer cancel()

		job, err := jobConfig()
		if err != nil {
			log.Fatalln(err)
		}
		oracle, err := elevation.New(&job.Elevation)
		if err != nil {
			log.Fatalln(err)
		}
		config := params.DefaultWebDaemonConfig()
		config.Network = optHTTPNetwork
		config.Address = optHTTPAddr
		config.MaxBodyBytes = optMaxBodyBytes
		config.Job = *job

		slog.Info("webd.Run", "oracle", job.Elevation.Backend)
		if err := webd.NewWebDaemon(config, oracle).Run(ctx); err != nil {
			log.Fatalln(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	defaults := params.DefaultWebDaemonConfig()

	flags := serveCmd.Flags()
	flags.StringVar(&optHTTPAddr, "address", defaults.Address, "HTTP address to listen on")
	flags.StringVar(&optHTTPNetwork, "network", defaults.Network, "Network to listen on: tcp or unix")
	flags.Int64Var(&optMaxBodyBytes, "max-body", defaults.MaxBodyBytes, "Largest accepted GPX body, in bytes")
}
