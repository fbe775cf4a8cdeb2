package sourcemap

import (
	"context"
	"fmt"
	"os"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// typescriptExports returns the names of exported top-level class, function,
// and interface declarations in a TypeScript or TSX source file.
func typescriptExports(ctx context.Context, path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(languageFor(path))

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("parse typescript: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	names := make([]string, 0)
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		if child.Type() != "export_statement" {
			continue
		}
		decl := child.ChildByFieldName("declaration")
		if decl == nil {
			continue
		}
		switch decl.Type() {
		case "class_declaration", "abstract_class_declaration", "function_declaration", "interface_declaration":
			if name := decl.ChildByFieldName("name"); name != nil {
				names = append(names, name.Content(content))
			}
		}
	}
	return names, nil
}

func languageFor(path string) *sitter.Language {
	if strings.HasSuffix(path, ".tsx") {
		return tsx.GetLanguage()
	}
	return typescript.GetLanguage()
}
