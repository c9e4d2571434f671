package main

import (
	"fmt"
	"strings"

	"github.com/mohammaddehghani/fuelrep"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of fuelrep",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fuelrep version %s\n", strings.TrimSpace(fuelrep.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
