package adapter

import (
	"context"
	"go/ast"
	"go/parser"
	"go/token"

	m "github.com/steverpalmer/GenericTesting/internal/model"
)

// GoFileAdapter encapsulates Go parsing so the domain layer only sees type
// names and their documentation.
type GoFileAdapter interface {
	// Parse builds an AST, comments included.
	Parse(ctx context.Context, fileSet *token.FileSet, filename string, src []byte) (*ast.File, error)

	// TypeDocs returns the documented type declarations of file.
	TypeDocs(fileSet *token.FileSet, file *ast.File) []m.TypeDoc
}

// LocalGoFileAdapter provides a concrete GoFileAdapter backed by go/parser.
type LocalGoFileAdapter struct{}

// NewLocalGoFileAdapter constructs a LocalGoFileAdapter.
func NewLocalGoFileAdapter() *LocalGoFileAdapter {
	return &LocalGoFileAdapter{}
}

// Parse builds an AST for the provided filename/source pair.
func (a *LocalGoFileAdapter) Parse(ctx context.Context, fileSet *token.FileSet, filename string, src []byte) (*ast.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return parser.ParseFile(fileSet, filename, src, parser.ParseComments)
}

// TypeDocs walks top-level type declarations. A TypeSpec inside a group uses its
// own comment; a lone TypeSpec falls back to the comment above the type keyword.
func (a *LocalGoFileAdapter) TypeDocs(fileSet *token.FileSet, file *ast.File) []m.TypeDoc {
	var docs []m.TypeDoc

	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}

		for _, spec := range gen.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}

			group := ts.Doc
			if group == nil && !gen.Lparen.IsValid() {
				group = gen.Doc
			}

			if group == nil {
				continue
			}

			docs = append(docs, m.TypeDoc{
				Name: ts.Name.Name,
				Line: fileSet.Position(ts.Pos()).Line,
				Doc:  group.Text(),
			})
		}
	}

	return docs
}
