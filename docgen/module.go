package docgen

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/mod/modfile"
)

// Module is the module metadata used by the dependency section.
type Module struct {
	// Path is the module path.
	Path string
	// GoVersion is the go directive, or "".
	GoVersion string
}

// Dependency reads the go.mod file at modFile.
func Dependency(modFile string) (*Module, error) {
	data, err := os.ReadFile(modFile) //nolint:gosec // G304: path is provided by the user
	if err != nil {
		return nil, fmt.Errorf("docgen: %w", err)
	}
	return ParseModule(modFile, data)
}

// ParseModule parses go.mod content. file is used in error messages.
func ParseModule(file string, data []byte) (*Module, error) {
	f, err := modfile.ParseLax(file, data, nil)
	if err != nil {
		return nil, fmt.Errorf("docgen: %w", err)
	}
	if f.Module == nil {
		return nil, fmt.Errorf("docgen: %s has no module directive", file)
	}
	m := &Module{Path: f.Module.Mod.Path}
	if f.Go != nil {
		m.GoVersion = f.Go.Version
	}
	return m, nil
}

// Require returns the go get argument for pkg. Packages outside the module
// are returned unchanged.
func (m *Module) Require(pkg string) string {
	if pkg == m.Path || strings.HasPrefix(pkg, m.Path+"/") {
		return pkg + "@latest"
	}
	return pkg
}
