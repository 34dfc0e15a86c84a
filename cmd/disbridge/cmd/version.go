package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gift-interop/disbridge/internal/translate"
)

var version = "0.1.0" // set at build time using -ldflags

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of disbridge",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "disbridge v%s\n", version)
		fmt.Fprintf(cmd.OutOrStdout(), "dialects: %s\n", dialectNames())
	},
}

// dialectNames lists the registered dialects for help and version output.
func dialectNames() string {
	dialects := translate.Dialects()
	names := make([]string, len(dialects))
	for i, d := range dialects {
		names[i] = d.String()
	}
	return strings.Join(names, ", ")
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
