// File: cmd/version.go
package cmd

import (
	"fmt"

	"gitget/pkg/version"

	"github.com/spf13/cobra"
)

// newVersionCmd builds the version subcommand. The --short flag prints only
// the version number.
func newVersionCmd() *cobra.Command {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Display the version of gitget",
		Long:  `Display the current version information of the gitget CLI tool.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			short, err := cmd.Flags().GetBool("short")
			if err != nil {
				return fmt.Errorf("error reading flags: %w", err)
			}

			v := version.Get()
			if short {
				fmt.Println(v.Version)
			} else {
				fmt.Println(v.String())
			}
			return nil
		},
	}

	versionCmd.Flags().BoolP("short", "s", false, "Print the version number only")
	return versionCmd
}
