package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/flahallen61-boop/dto-map-builder/pkg/dtomap"
	"github.com/flahallen61-boop/dto-map-builder/pkg/genclient"
	"github.com/flahallen61-boop/dto-map-builder/pkg/mapcmd"
	"github.com/flahallen61-boop/dto-map-builder/pkg/paths"
)

var ErrInvalidArgument = errors.New("invalid argument")

// workspaceOptions are the persistent flags every workspace command reads.
type workspaceOptions struct {
	basePath string
	server   string
	logLevel string
	timeout  time.Duration
	quiet    bool
}

func getWorkspaceOptions(cc *cobra.Command) (*workspaceOptions, error) {
	var merr error

	flags := cc.Flags()

	basePath, err := flags.GetString("path")
	if err != nil {
		merr = multierror.Append(merr, err)
	}

	server, err := flags.GetString("server")
	if err != nil {
		merr = multierror.Append(merr, err)
	}

	timeout, err := flags.GetDuration("timeout")
	if err != nil {
		merr = multierror.Append(merr, err)
	}

	logLevel, err := flags.GetString("log_level")
	if err != nil {
		merr = multierror.Append(merr, err)
	}

	quiet, err := flags.GetBool("quiet")
	if err != nil {
		merr = multierror.Append(merr, err)
	}

	if merr != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, merr)
	}

	return &workspaceOptions{
		basePath: basePath,
		server:   server,
		logLevel: logLevel,
		timeout:  timeout,
		quiet:    quiet,
	}, nil
}

func newWorkspace(opts *workspaceOptions) (*mapcmd.Workspace, error) {
	client, err := genclient.NewClient(opts.server, opts.timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid server: %w", err)
	}

	// Commands may run from anywhere inside an existing workspace. New
	// workspaces are rooted at the provided path.
	basePath := opts.basePath
	if root, err := paths.FindWorkspaceRoot(basePath, dtomap.DefaultFileName); err == nil {
		basePath = root
	} else if !errors.Is(err, paths.ErrNoWorkspace) {
		return nil, fmt.Errorf("resolve workspace: %w", err)
	}

	ws, err := mapcmd.NewWorkspace(basePath, client, mapcmd.WithTimeout(opts.timeout))
	if err != nil {
		return nil, fmt.Errorf("invalid workspace: %w", err)
	}

	return ws, nil
}

func useTUI(opts *workspaceOptions) bool {
	return !opts.quiet && isatty.IsTerminal(os.Stdout.Fd())
}
