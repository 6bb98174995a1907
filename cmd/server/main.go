// Command server runs the CityPulse web application and its helper tools.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mmuslimabdulj/city-pulse/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "citypulse",
	Short: "CityPulse smart-city dashboard server",
	Long: `CityPulse serves the landing page, the sign-in/sign-up flow with live
validation and the city dashboard. Running it without a subcommand starts
the web server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, shapesCmd, validateCmd)
}

func main() {
	// Load .env file (ignore error if not exists, e.g. in production)
	_ = godotenv.Load()

	// Reload config after loading .env
	config.AppConfig = config.LoadFromEnv()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
