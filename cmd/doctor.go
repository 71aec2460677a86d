package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"darkiv/converter"
	"darkiv/converter/preflight"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the required external tools are installed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		healthy := true

		for _, tool := range preflight.Required(converter.AssemblerImg2pdf) {
			if tool.Available() {
				fmt.Printf("  %-12s ok\n", tool.Name)
			} else {
				fmt.Printf("  %-12s missing - install: %s\n", tool.Name, tool.Install)
				healthy = false
			}
		}

		for _, tool := range preflight.Optional() {
			if tool.Available() {
				fmt.Printf("  %-12s ok (optional)\n", tool.Name)
			} else {
				fmt.Printf("  %-12s missing (optional, only used for the progress bar) - install: %s\n", tool.Name, tool.Install)
			}
		}

		if !healthy {
			return errors.New("some required tools are missing")
		}
		return nil
	},
}
