package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewPreviewCmd returns the preview command.
func NewPreviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Preview the source schema via the backend",
		RunE: func(cc *cobra.Command, _ []string) error {
			opts, err := getWorkspaceOptions(cc)
			if err != nil {
				return err
			}

			ws, err := newWorkspace(opts)
			if err != nil {
				return err
			}

			c, err := tui(opts, ws)
			if err != nil {
				return err
			}

			res, err := c.Preview(cc.Context())
			if err != nil {
				return fmt.Errorf("preview failed: %w", err)
			}

			if !useTUI(opts) {
				if _, err := fmt.Fprintln(cc.OutOrStdout(), string(res.Schema)); err != nil {
					return fmt.Errorf("failed to write to output: %w", err)
				}
			}

			return nil
		},
		SilenceUsage: true,
	}
}

// NewRegisterCmd returns the register command.
func NewRegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Validate the mapping and register it with the backend",
		RunE: func(cc *cobra.Command, _ []string) error {
			opts, err := getWorkspaceOptions(cc)
			if err != nil {
				return err
			}

			ws, err := newWorkspace(opts)
			if err != nil {
				return err
			}

			c, err := tui(opts, ws)
			if err != nil {
				return err
			}

			res, err := c.Register(cc.Context())
			if err != nil {
				return fmt.Errorf("register failed: %w", err)
			}

			if !useTUI(opts) {
				if _, err := fmt.Fprintf(cc.OutOrStdout(), "Registered mapping %s.\n", res.MappingID); err != nil {
					return fmt.Errorf("failed to write to output: %w", err)
				}
			}

			return nil
		},
		SilenceUsage: true,
	}
}

// NewGenerateCmd returns the generate command.
func NewGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Validate the mapping and generate the target class",
		RunE: func(cc *cobra.Command, _ []string) error {
			opts, err := getWorkspaceOptions(cc)
			if err != nil {
				return err
			}

			ws, err := newWorkspace(opts)
			if err != nil {
				return err
			}

			c, err := tui(opts, ws)
			if err != nil {
				return err
			}

			files, err := c.Generate(cc.Context())
			if err != nil {
				return fmt.Errorf("generate failed: %w", err)
			}

			if !useTUI(opts) {
				for _, f := range files {
					if _, err := fmt.Fprintln(cc.OutOrStdout(), f.Name); err != nil {
						return fmt.Errorf("failed to write to output: %w", err)
					}
				}
			}

			return nil
		},
		SilenceUsage: true,
	}
}
