package cli

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
)

// NewBindCmd returns the bind command.
func NewBindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bind",
		Short: "Bind a target field to a schema path or a default value",
		RunE: func(cc *cobra.Command, _ []string) error {
			opts, err := getWorkspaceOptions(cc)
			if err != nil {
				return err
			}

			var merr error

			flags := cc.Flags()

			field, err := flags.GetString("field")
			if err != nil {
				merr = multierror.Append(merr, err)
			}

			binding, err := flags.GetString("to")
			if err != nil {
				merr = multierror.Append(merr, err)
			}

			if merr != nil {
				return fmt.Errorf("%w: %w", ErrInvalidArgument, merr)
			}

			ws, err := newWorkspace(opts)
			if err != nil {
				return err
			}

			c, err := tui(opts, ws)
			if err != nil {
				return err
			}

			return c.Bind(field, binding)
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringP("field", "f", "", "Target field name (required)")
	cmd.Flags().StringP("to", "t", "", "Binding: path=<dot.path> or default=<literal> (required)")

	must(cmd.MarkFlagRequired("field"))
	must(cmd.MarkFlagRequired("to"))

	return cmd
}

// NewUnbindCmd returns the unbind command.
func NewUnbindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unbind",
		Short: "Remove a target field binding",
		RunE: func(cc *cobra.Command, _ []string) error {
			opts, err := getWorkspaceOptions(cc)
			if err != nil {
				return err
			}

			field, err := cc.Flags().GetString("field")
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
			}

			ws, err := newWorkspace(opts)
			if err != nil {
				return err
			}

			c, err := tui(opts, ws)
			if err != nil {
				return err
			}

			return c.Unbind(field)
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringP("field", "f", "", "Target field name (required)")

	must(cmd.MarkFlagRequired("field"))

	return cmd
}

// NewClassCmd returns the class command.
func NewClassCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "class",
		Short: "Set the name of the class to generate",
		RunE: func(cc *cobra.Command, _ []string) error {
			opts, err := getWorkspaceOptions(cc)
			if err != nil {
				return err
			}

			name, err := cc.Flags().GetString("name")
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
			}

			ws, err := newWorkspace(opts)
			if err != nil {
				return err
			}

			c, err := tui(opts, ws)
			if err != nil {
				return err
			}

			return c.SetClassName(name)
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringP("name", "n", "", "Class name (required)")

	must(cmd.MarkFlagRequired("name"))

	return cmd
}
