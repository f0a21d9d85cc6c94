package testsupport

import (
	"go/parser"
	"go/token"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// Internal autodetect tests import this package, so it must stay below
// autodetect in the import graph.
func TestImportsStayBelowAutodetect(t *testing.T) {
	allowed := map[string]bool{
		"discsift/internal/config": true,
		"discsift/internal/disc":   true,
	}

	files, err := filepath.Glob("*.go")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	fset := token.NewFileSet()
	for _, name := range files {
		if strings.HasSuffix(name, "_test.go") {
			continue
		}
		file, err := parser.ParseFile(fset, name, nil, parser.ImportsOnly)
		if err != nil {
			t.Fatalf("parse %s: %v", name, err)
		}
		for _, spec := range file.Imports {
			path, err := strconv.Unquote(spec.Path.Value)
			if err != nil {
				t.Fatalf("%s: bad import %s", name, spec.Path.Value)
			}
			if strings.HasPrefix(path, "discsift/") && !allowed[path] {
				t.Errorf("%s imports %s", name, path)
			}
		}
	}
}
