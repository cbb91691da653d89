package cli

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/flahallen61-boop/dto-map-builder/pkg/schema"
)

// NewBuildCmd returns the build command.
func NewBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the source schema from a property descriptor file",
		RunE: func(cc *cobra.Command, _ []string) error {
			opts, err := getWorkspaceOptions(cc)
			if err != nil {
				return err
			}

			var merr error

			flags := cc.Flags()

			file, err := flags.GetString("file")
			if err != nil {
				merr = multierror.Append(merr, err)
			}

			title, err := flags.GetString("title")
			if err != nil {
				merr = multierror.Append(merr, err)
			}

			if merr != nil {
				return fmt.Errorf("%w: %w", ErrInvalidArgument, merr)
			}

			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read property file: %w", err)
			}

			var props []*schema.Property
			if err := yaml.Unmarshal(data, &props); err != nil {
				return fmt.Errorf("parse property file: %w", err)
			}

			doc, err := schema.BuildDocument(title, props)
			if err != nil {
				return fmt.Errorf("build schema: %w", err)
			}

			jsBytes, err := doc.ToJSON()
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

			return c.SetLocalSchema(jsBytes, file)
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringP("file", "f", "", "YAML property descriptor file (required)")
	cmd.Flags().String("title", "GeneratedDto", "Schema title")

	must(cmd.MarkFlagRequired("file"))

	return cmd
}

// NewInferCmd returns the infer command.
func NewInferCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "infer",
		Short: "Infer the source schema from a sample JSON document",
		RunE: func(cc *cobra.Command, _ []string) error {
			opts, err := getWorkspaceOptions(cc)
			if err != nil {
				return err
			}

			var merr error

			flags := cc.Flags()

			file, err := flags.GetString("file")
			if err != nil {
				merr = multierror.Append(merr, err)
			}

			skipRequired, err := flags.GetBool("skip_required")
			if err != nil {
				merr = multierror.Append(merr, err)
			}

			skipDefault, err := flags.GetBool("skip_default")
			if err != nil {
				merr = multierror.Append(merr, err)
			}

			if merr != nil {
				return fmt.Errorf("%w: %w", ErrInvalidArgument, merr)
			}

			g := schema.NewSampleGenerator(&schema.SampleConfig{
				SkipRequired: skipRequired,
				SkipDefault:  skipDefault,
			})

			jsBytes, err := g.FromPaths(file)
			if err != nil {
				return fmt.Errorf("infer schema: %w", err)
			}

			ws, err := newWorkspace(opts)
			if err != nil {
				return err
			}

			c, err := tui(opts, ws)
			if err != nil {
				return err
			}

			return c.SetLocalSchema(jsBytes, file)
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringP("file", "f", "", "Sample JSON document (required)")
	cmd.Flags().Bool("skip_required", false, "Do not mark sampled properties as required")
	cmd.Flags().Bool("skip_default", false, "Do not record sampled values as defaults")

	must(cmd.MarkFlagRequired("file"))

	return cmd
}
