package main

import (
	"path/filepath"
	"testing"

	"github.com/kornilova-l/scala-native-bindgen/internal/cdecl"
)

func TestSingleFileLocationManagerEmptyMainFileAcceptsEverything(t *testing.T) {
	m := singleFileLocationManager{}
	if !m.InMainFile(cdecl.Location{File: "anything.h"}) {
		t.Errorf("expected an empty mainFile to treat every location as the main file")
	}
}

func TestSingleFileLocationManagerComparesAbsolutePaths(t *testing.T) {
	abs, err := filepath.Abs("main.c")
	if err != nil {
		t.Fatal(err)
	}
	m := singleFileLocationManager{mainFile: abs}

	if !m.InMainFile(cdecl.Location{File: "main.c"}) {
		t.Errorf("expected main.c to resolve to the configured main file")
	}
	if m.InMainFile(cdecl.Location{File: "other.h"}) {
		t.Errorf("expected other.h not to match the configured main file")
	}
}

func TestReadStreamMissingFile(t *testing.T) {
	c := commonFlags{jsonPath: "/no/such/declarations.json"}
	if _, err := c.readStream(); err == nil {
		t.Fatal("expected an error reading a nonexistent declaration stream file")
	}
}
