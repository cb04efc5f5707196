package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dsipanel/internal/panel"
)

var modesVariant string

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "Print the display mode of a panel variant",
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := panel.Lookup(modesVariant)
		if err != nil {
			return err
		}
		m := v.Mode
		fmt.Printf("%s: %s\n", v.Name, m)
		fmt.Printf("  clock:      %d kHz\n", m.Clock)
		fmt.Printf("  horizontal: active %d, sync %d-%d, total %d\n",
			m.HActive, m.HSyncStart, m.HSyncEnd, m.HTotal)
		fmt.Printf("  vertical:   active %d, sync %d-%d, total %d\n",
			m.VActive, m.VSyncStart, m.VSyncEnd, m.VTotal)
		fmt.Printf("  refresh:    %d Hz\n", m.Refresh())
		return nil
	},
}

func init() {
	modesCmd.Flags().StringVar(&modesVariant, "variant", "pv13900als20c", "Panel variant name")
	rootCmd.AddCommand(modesCmd)
}
