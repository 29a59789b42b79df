package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/google/subcommands"

	"github.com/kornilova-l/scala-native-bindgen/internal/diag"
	"github.com/kornilova-l/scala-native-bindgen/internal/ir"
	"github.com/kornilova-l/scala-native-bindgen/internal/translator"
)

// listReachableCmd is a read-only diagnostic view over shouldOutput/
// isTypeUsed (SPEC_FULL.md §4.8's "dry-run reachability report"), grounded
// in the teacher's subcommands.FlagsCommand/CommandsCommand pattern of
// exposing introspection alongside the primary action
// (garnet/bin/dev_finder/main.go).
type listReachableCmd struct {
	commonFlags
}

func (*listReachableCmd) Name() string     { return "list-reachable" }
func (*listReachableCmd) Synopsis() string { return "print which declarations would be emitted, and why" }
func (*listReachableCmd) Usage() string {
	return "list-reachable -json <path> [flags...]\n\nflags:\n"
}

func (cmd *listReachableCmd) SetFlags(f *flag.FlagSet) {
	cmd.SetCommonFlags(f)
}

func (cmd *listReachableCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if cmd.jsonPath == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	stream, err := cmd.readStream()
	if err != nil {
		log.Print(err)
		return subcommands.ExitFailure
	}

	sink := diag.GlogSink{}
	lm := singleFileLocationManager{mainFile: cmd.mainFile}
	container, err := translator.Ingest(stream, lm, sink)
	if err != nil {
		log.Print(err)
		return subcommands.ExitFailure
	}
	container.Generate(cmd.excludePrefix)

	report("typedef", declNames(container.TypeDefs), container)
	report("struct", declNames(container.Structs), container)
	report("union", declNames(container.Unions), container)
	report("enum", declNames(container.Enums), container)
	report("function", declNames(container.Functions), container)
	report("variable", declNames(container.Variables), container)

	return subcommands.ExitSuccess
}

func report(kind string, decls []ir.Declaration, c *ir.Container) {
	for _, d := range decls {
		if c.ShouldOutput(d) {
			fmt.Printf("%s %s: emit\n", kind, d.DeclName())
		} else {
			fmt.Printf("%s %s: skip (unreachable and outside the main file, or an unused alias for an incomplete type)\n", kind, d.DeclName())
		}
	}
}

func declNames[T ir.Declaration](items []T) []ir.Declaration {
	out := make([]ir.Declaration, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}
