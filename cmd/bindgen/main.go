// Command bindgen drives the in-scope IR/codegen core from a JSON
// declaration stream (internal/cdecl): it is the collaborator that calls
// the core, not the core itself (spec.md §1's Clang frontend and option
// parsing stay out of scope). Structured the way the teacher wires
// subcommands to its FIDL generators in garnet/bin/dev_finder/main.go,
// generalized from mDNS lookups to the two operations this tool exposes.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/golang/glog"
	"github.com/google/subcommands"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(&generateCmd{}, "")
	subcommands.Register(&listReachableCmd{}, "")

	flag.Parse()
	glog.CopyStandardLogTo("INFO")
	defer glog.Flush()
	os.Exit(int(subcommands.Execute(context.Background())))
}
