package main

import (
	"flag"
	"io/ioutil"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/kornilova-l/scala-native-bindgen/internal/cdecl"
)

// commonFlags is shared between generateCmd and listReachableCmd, the same
// embedding pattern the teacher uses for devFinderCmd in
// garnet/bin/dev_finder/resolve.go.
type commonFlags struct {
	jsonPath      string
	mainFile      string
	excludePrefix string
}

func (c *commonFlags) SetCommonFlags(f *flag.FlagSet) {
	f.StringVar(&c.jsonPath, "json", "", "path to the declaration stream JSON produced by the frontend")
	f.StringVar(&c.mainFile, "main-file", "", "absolute path of the translation unit's own header; declarations from other files are eligible for pruning")
	f.StringVar(&c.excludePrefix, "exclude-prefix", "", "drop declarations whose name starts with this prefix (spec.md §4.3)")
}

func (c *commonFlags) readStream() (cdecl.DeclStream, error) {
	data, err := ioutil.ReadFile(c.jsonPath)
	if err != nil {
		return cdecl.DeclStream{}, errors.Wrapf(err, "reading declaration stream from %s", c.jsonPath)
	}
	return cdecl.ReadDeclStream(data)
}

// singleFileLocationManager treats exactly one file as "the main file",
// the simplest faithful implementation of spec.md §4.4's main-file rule
// when the frontend reports absolute paths.
type singleFileLocationManager struct {
	mainFile string
}

func (m singleFileLocationManager) InMainFile(loc cdecl.Location) bool {
	if m.mainFile == "" {
		return true
	}
	abs, err := filepath.Abs(loc.File)
	if err != nil {
		return loc.File == m.mainFile
	}
	return abs == m.mainFile
}
