package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"pricecli/pkg/contracts"
)

// versionCmd holds the flags for the 'version' subcommand.
type versionCmd struct {
	*cli
	asJSON bool
}

func (*versionCmd) Name() string     { return "version" }
func (*versionCmd) Synopsis() string { return "print version information" }
func (*versionCmd) Usage() string {
	return `pricecli version [-json]
`
}

func (c *versionCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.asJSON, "json", false, "Print the build details as JSON.")
}

func (c *versionCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.asJSON {
		fmt.Fprintln(c.stdout, contracts.GetFullVersionString())
		return subcommands.ExitSuccess
	}
	enc := json.NewEncoder(c.stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(contracts.GetVersionInfo()); err != nil {
		fmt.Fprintln(c.stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
