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
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rotblauer/catpace/common"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "catpace",
	Short: "Pace, distance and elevation from GPX files",
	Long: `catpace reads GPX files exported by Garmin Connect, Strava and onthegomap,
and reports distance, pace, speed and elevation change.

Tracks are bucketed by time or distance into pace series for plotting,
exported as CSV or GeoJSON, served over HTTP, or pushed to InfluxDB.

Every flag can also be set in $HOME/.catpace.yaml or as a CATPACE_ environment
variable, eg. CATPACE_EXCLUDE_REST=true. A .env file in the working directory is loaded first.
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pFlags := rootCmd.PersistentFlags()
	pFlags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.catpace.yaml)")
	pFlags.Int("verbosity", int(slog.LevelInfo), "Log level: -4 debug, 0 info, 4 warn, 8 error")
	pFlags.Bool("log-json", false, "Log as JSON")
	pFlags.AddFlagSet(jobFlagSet())
	_ = viper.BindPFlags(pFlags)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		cobra.CheckErr(err)
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".catpace")
	}

	viper.SetEnvPrefix("CATPACE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		slog.Debug("Using config file", "file", viper.ConfigFileUsed())
	}
}

// setDefaultSlog installs the default logger on stderr, keeping stdout for output.
func setDefaultSlog(cmd *cobra.Command, args []string) {
	opts := &slog.HandlerOptions{Level: slog.Level(viper.GetInt("verbosity"))}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if viper.GetBool("log-json") {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler).With("cmd", cmd.Name()))
}

// interruptContext is canceled on the first interrupt. A second one exits.
func interruptContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	interrupt := common.Interrupted()
	go func() {
		select {
		case sig := <-interrupt:
			slog.Warn("Received signal, stopping", "signal", sig)
			cancel()
		case <-ctx.Done():
			return
		}
		<-interrupt
		slog.Error("Received second signal, exiting")
		os.Exit(1)
	}()
	return ctx, cancel
}
