package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flahallen61-boop/dto-map-builder/internal/version"
)

// GetVersionString returns the version and revision of the build.
func GetVersionString() string {
	return fmt.Sprintf("%s (%s)", version.Version, version.Revision)
}

// NewVersionCmd returns the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cc *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cc.OutOrStdout(), GetVersionString())
			if err != nil {
				return fmt.Errorf("failed to write to output: %w", err)
			}

			return nil
		},
		SilenceUsage: true,
	}
}
