package sourcemap

import (
	"fmt"
	"go/parser"
	"go/token"
)

// goPackage returns the package name of a Go source file. Only the package
// clause is parsed, so malformed bodies do not matter here.
func goPackage(path string) (string, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.PackageClauseOnly)
	if err != nil {
		return "", fmt.Errorf("parse go source: %w", err)
	}
	return file.Name.Name, nil
}
