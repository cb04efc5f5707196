package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "dsipanel",
	Short: "dsipanel drives a MIPI-DSI display panel over an SPI bridge",
	Long: `dsipanel brings a MIPI-DSI display panel out of reset into a displaying
state and keeps tracking its lifecycle: scheduled blank/wake, a status API,
and Prometheus metrics.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "/etc/dsipanel/config.yaml", "Path to config file")
}
