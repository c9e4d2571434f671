package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fuelrep",
	Short: "fuelrep is a conversational fuel-tracking bot",
	Long:  `fuelrep records car refills through a guided chat dialog and reports fuel-consumption trends as charts and CSV backups.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
