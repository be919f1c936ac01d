// Command careerctl runs maintenance tasks against the career backend store.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"career-backend/internal/shared/telemetry"
)

var rootCmd = &cobra.Command{
	Use:           "careerctl",
	Short:         "Career backend maintenance CLI",
	Long:          "careerctl applies schema migrations and refreshes industry insights outside the API process.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		telemetry.Sync()
		os.Exit(1)
	}
	telemetry.Sync()
}
