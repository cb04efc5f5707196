package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dsipanel/internal/panel"
)

var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "List the supported panel variants",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range panel.Names() {
			v, err := panel.Lookup(name)
			if err != nil {
				continue
			}
			fmt.Printf("%-16s %s\n", name, v.Mode)
		}
	},
}

func init() {
	rootCmd.AddCommand(variantsCmd)
}
