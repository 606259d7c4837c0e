package cmd

import (
	"fmt"

	"github.com/lumina-ai/lumina-console/internal/version"
)

// VersionCmd prints build information
type VersionCmd struct{}

// Run executes the version command
func (v *VersionCmd) Run(cli *CLI) error {
	fmt.Fprintln(cli.out(), version.Info())
	return nil
}
