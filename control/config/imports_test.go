package config

import (
	"go/build"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const modulePath = "github.com/momentics/hioload-conc"

// moduleImports returns every import reachable from dir through non-test
// files, following packages of this module and stopping at others.
func moduleImports(t *testing.T, dir string) map[string]bool {
	t.Helper()
	seen := map[string]bool{}
	var walk func(dir string)
	walk = func(dir string) {
		pkg, err := build.ImportDir(dir, 0)
		require.NoError(t, err)
		for _, imp := range pkg.Imports {
			if seen[imp] {
				continue
			}
			seen[imp] = true
			if rel, ok := strings.CutPrefix(imp, modulePath+"/"); ok {
				walk(filepath.Join("..", "..", filepath.FromSlash(rel)))
			}
		}
	}
	walk(dir)
	return seen
}

func TestContainersDoNotLinkControlLayer(t *testing.T) {
	for _, dir := range []string{"../../collections", "../../pool"} {
		imports := moduleImports(t, dir)
		require.True(t, imports[modulePath+"/control/config"], dir)
		for imp := range imports {
			require.NotEqual(t, modulePath+"/control", imp, dir)
			require.NotEqual(t, modulePath+"/internal/syncutil", imp, dir)
			require.False(t, strings.HasPrefix(imp, "github.com/prometheus/"), "%s imports %s", dir, imp)
		}
	}
}
