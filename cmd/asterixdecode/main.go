package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"asterixdecode/internal/app"
)

func main() {
	var config app.Config

	rootCmd := &cobra.Command{
		Use:   "asterixdecode",
		Short: "CAT021/CAT048 ASTERIX surveillance message decoder",
		Long: `Decodes ASTERIX CAT021 (ADS-B) and CAT048 (monoradar) binary
surveillance messages into a unified CSV schema, optionally converting
radar polar measurements to WGS-84 geographic coordinates and correcting
barometric altitudes for local QNH.

Example usage:
  asterixdecode --input capture.ast --output records.csv \
    --radar-lat 41.297 --radar-lon 2.083 --radar-height 5 --qnh 1003.25`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.ShowVersion {
				app.ShowVersion()
				return nil
			}
			config.HasStation = cmd.Flags().Changed("radar-lat") || cmd.Flags().Changed("radar-lon")
			config.HasQNH = cmd.Flags().Changed("qnh")

			application := app.NewApplication(config)
			return application.Start()
		},
	}

	rootCmd.Flags().StringVarP(&config.InputPath, "input", "i", "", "ASTERIX binary input file (required)")
	rootCmd.Flags().StringVarP(&config.OutputPath, "output", "o", "", "CSV output file (default stdout)")
	rootCmd.Flags().Float64Var(&config.RadarLatDeg, "radar-lat", 0, "Radar station latitude (deg)")
	rootCmd.Flags().Float64Var(&config.RadarLonDeg, "radar-lon", 0, "Radar station longitude (deg)")
	rootCmd.Flags().Float64Var(&config.RadarHeightM, "radar-height", 0, "Radar station height above ellipsoid (m)")
	rootCmd.Flags().Float64Var(&config.QNHHPa, "qnh", 0, "Local QNH pressure (hPa)")
	rootCmd.Flags().Float64Var(&config.TransitionAltitudeFt, "transition-altitude", app.DefaultTransitionAltitudeFt, "Transition altitude (ft)")
	rootCmd.Flags().BoolVar(&config.Strict, "strict", false, "Abort on the first decode diagnostic instead of skipping to the next block")
	rootCmd.Flags().StringVarP(&config.LogDir, "log-dir", "l", app.DefaultLogDir, "Diagnostic log directory")
	rootCmd.Flags().BoolVarP(&config.LogRotateUTC, "utc", "u", true, "Use UTC for log rotation")
	rootCmd.Flags().BoolVarP(&config.Verbose, "verbose", "v", false, "Verbose logging")
	rootCmd.Flags().BoolVar(&config.ShowVersion, "version", false, "Show version information")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
