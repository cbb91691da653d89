package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/flahallen61-boop/dto-map-builder/internal/cli"
)

const (
	cmdName = "dtomap"

	shortDesc = "The DTO Map Builder Command Line Interface (CLI)."
	longDesc  = `The DTO Map Builder Command Line Interface (CLI).

dtomap maps JSON Schema fields onto a fixed set of target DTO fields and
drives a code generation backend. It reads a source schema from a file, URL,
OpenAPI document, or sample JSON, binds schema paths and default values to
target fields, and registers the mapping or generates the target class via
the backend's REST endpoints.
`
)

func main() {
	cmd := cli.NewRootCmd(cmdName, shortDesc, longDesc)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, strings.TrimLeft(err.Error(), "\n"))
		os.Exit(1)
	}
}
