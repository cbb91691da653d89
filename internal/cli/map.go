package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flahallen61-boop/dto-map-builder/pkg/mapcmd"
	"github.com/flahallen61-boop/dto-map-builder/pkg/maptui"
	"github.com/flahallen61-boop/dto-map-builder/pkg/schema"
)

// NewInitCmd returns the init command.
func NewInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a mapping workspace",
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

			if _, err := c.Init(); err != nil {
				return fmt.Errorf("init failed: %w", err)
			}

			return nil
		},
		SilenceUsage: true,
	}
}

// NewSourceCmd returns the source command.
func NewSourceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "source",
		Short: "Set the source schema from a file, URL, or OpenAPI document",
		RunE: func(cc *cobra.Command, _ []string) error {
			opts, err := getWorkspaceOptions(cc)
			if err != nil {
				return err
			}

			flags := cc.Flags()

			location, err := flags.GetString("location")
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
			}

			sourceType, err := flags.GetString("type")
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
			}

			component, err := flags.GetString("component")
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

			return c.SetSource(location, schema.GetSourceType(sourceType), component)
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringP("location", "l", "", "Schema location: file path, URL, or - for stdin (required)")
	cmd.Flags().StringP("type", "t", "AUTO", "Source type (AUTO, URL, LOCAL-PATH, OPENAPI, SAMPLE)")
	cmd.Flags().String("component", "", "OpenAPI component schema name")

	must(cmd.MarkFlagRequired("location"))

	return cmd
}

// NewPathsCmd returns the paths command.
func NewPathsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "List the leaf paths of the source schema",
		RunE: func(cc *cobra.Command, _ []string) error {
			opts, err := getWorkspaceOptions(cc)
			if err != nil {
				return err
			}

			ws, err := newWorkspace(opts)
			if err != nil {
				return err
			}

			paths, err := ws.Paths()
			if err != nil {
				return err
			}

			for _, path := range paths {
				if _, err := fmt.Fprintln(cc.OutOrStdout(), path); err != nil {
					return fmt.Errorf("failed to write to output: %w", err)
				}
			}

			return nil
		},
		SilenceUsage: true,
	}
}

// NewFieldsCmd returns the fields command.
func NewFieldsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List the target fields and their bindings",
		RunE: func(cc *cobra.Command, _ []string) error {
			opts, err := getWorkspaceOptions(cc)
			if err != nil {
				return err
			}

			ws, err := newWorkspace(opts)
			if err != nil {
				return err
			}

			fields, err := ws.Fields()
			if err != nil {
				return err
			}

			for _, fs := range fields {
				name := fs.Field.Name
				if fs.Field.Required {
					name += "*"
				}

				binding := "-"
				if fs.Binding != nil {
					binding = fs.Binding.String()
				}

				_, err := fmt.Fprintf(cc.OutOrStdout(), "%-14s %-16s %-8s %s\n",
					name, fs.Field.Label(), fs.Field.Type, binding)
				if err != nil {
					return fmt.Errorf("failed to write to output: %w", err)
				}
			}

			return nil
		},
		SilenceUsage: true,
	}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// tui returns either the bare workspace or its TUI wrapper, depending on the
// terminal and the quiet flag.
//
//nolint:ireturn // Both implementations are commanders.
func tui(opts *workspaceOptions, ws *mapcmd.Workspace) (maptui.Commander, error) {
	if !useTUI(opts) {
		return ws, nil
	}

	ct, err := maptui.NewMapTUI(os.Stdout, opts.logLevel, ws)
	if err != nil {
		return nil, fmt.Errorf("failed to create tui: %w", err)
	}

	return ct, nil
}
