package main

import (
	"context"
	"flag"
	"fmt"
	"io/ioutil"
	"log"

	"github.com/google/subcommands"

	"github.com/kornilova-l/scala-native-bindgen/internal/codegen"
	"github.com/kornilova-l/scala-native-bindgen/internal/diag"
	"github.com/kornilova-l/scala-native-bindgen/internal/translator"
)

// generateCmd is the primary action: translate a declaration stream and
// emit the native-FFI module (spec.md §1, §6). Modeled on resolveCmd in
// garnet/bin/dev_finder/resolve.go: a commonFlags-embedding struct with
// Name/Usage/Synopsis/SetFlags/Execute.
type generateCmd struct {
	commonFlags
	linkName    string
	objectName  string
	packageName string
	libName     string
	out         string
	formatter   string
}

func (*generateCmd) Name() string     { return "generate" }
func (*generateCmd) Synopsis() string { return "translate a C declaration stream into a native-FFI module" }
func (*generateCmd) Usage() string {
	return "generate -json <path> -link-name <lib> [flags...]\n\nflags:\n"
}

func (cmd *generateCmd) SetFlags(f *flag.FlagSet) {
	cmd.SetCommonFlags(f)
	f.StringVar(&cmd.linkName, "link-name", "", "native library name passed to @link (SPEC_FULL.md §4.8)")
	f.StringVar(&cmd.objectName, "object-name", "NativeLib", "name of the emitted @extern object")
	f.StringVar(&cmd.packageName, "package-name", "generated", "package declaration of the emitted file")
	f.StringVar(&cmd.libName, "lib-name", "NativeLib", "prefix for the emitted Defines/Enums/Helpers objects")
	f.StringVar(&cmd.out, "out", "", "output path; defaults to stdout")
	f.StringVar(&cmd.formatter, "formatter", "", "path to an external formatter binary; empty disables formatting")
}

func (cmd *generateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if cmd.jsonPath == "" || cmd.linkName == "" {
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

	text, diags := codegen.Emit(codegen.Config{
		LibName:       cmd.libName,
		LinkName:      cmd.linkName,
		ObjectName:    cmd.objectName,
		PackageName:   cmd.packageName,
		ExcludePrefix: cmd.excludePrefix,
	}, container)

	for _, d := range diags {
		if d.Level == diag.Error {
			sink.Errorf("%s", d.Message)
		} else {
			sink.Warnf("%s", d.Message)
		}
	}

	formatted, err := codegen.NewFormatter(cmd.formatter).Format(text)
	if err != nil {
		log.Print(err)
		formatted = text
	}

	if cmd.out == "" {
		fmt.Println(formatted)
		return subcommands.ExitSuccess
	}
	if err := ioutil.WriteFile(cmd.out, []byte(formatted), 0644); err != nil {
		log.Print(err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
