package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/flahallen61-boop/dto-map-builder/pkg/log"
)

const defaultServer = "http://localhost:8080"

func NewRootCmd(name, shortDesc, longDesc string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           name,
		Short:         shortDesc,
		Long:          longDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       GetVersionString(),
	}

	cmd.PersistentFlags().String("log_level", "warn", "Set the log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log_format", "text", "Set the log format (text, logfmt, json)")

	server := defaultServer
	if env := os.Getenv("DTOMAP_SERVER"); env != "" {
		server = env
	}

	cmd.PersistentFlags().StringP("server", "s", server, "Base URL of the generation backend")
	cmd.PersistentFlags().StringP("path", "p", ".", "Base path of the mapping workspace")

	if err := cmd.MarkPersistentFlagDirname("path"); err != nil {
		panic(err)
	}

	cmd.PersistentFlags().Duration("timeout", 5*time.Minute, "Timeout for backend operations")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Run in quiet mode")

	cmd.PersistentPreRunE = func(cc *cobra.Command, _ []string) error {
		flags := cc.Flags()

		var merr error

		logLevel, err := flags.GetString("log_level")
		if err != nil {
			merr = multierror.Append(merr, err)
		}

		logFormat, err := flags.GetString("log_format")
		if err != nil {
			merr = multierror.Append(merr, err)
		}

		if merr != nil {
			return fmt.Errorf("invalid argument: %w", merr)
		}

		h, err := log.CreateHandler(os.Stderr, logLevel, logFormat)
		if err != nil {
			return fmt.Errorf("failed creating log handler: %w", err)
		}
		slog.SetDefault(slog.New(h))

		return nil
	}

	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewSourceCmd())
	cmd.AddCommand(NewBuildCmd())
	cmd.AddCommand(NewInferCmd())
	cmd.AddCommand(NewPathsCmd())
	cmd.AddCommand(NewFieldsCmd())
	cmd.AddCommand(NewBindCmd())
	cmd.AddCommand(NewUnbindCmd())
	cmd.AddCommand(NewClassCmd())
	cmd.AddCommand(NewPreviewCmd())
	cmd.AddCommand(NewRegisterCmd())
	cmd.AddCommand(NewGenerateCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}
