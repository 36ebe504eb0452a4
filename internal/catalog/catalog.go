// Package catalog wires the built-in subjects: their operations, the values
// their contracts require and the generators bound to each role.
package catalog

import (
	"context"
	"fmt"
	"go/token"
	"math"

	"github.com/steverpalmer/GenericTesting/internal/adapter"
	m "github.com/steverpalmer/GenericTesting/internal/model"
)

// Catalog is the ordered list of built-in subjects.
type Catalog struct {
	subjects []m.Subject
}

// New builds the catalog. Types documented in this package contribute their
// doc comments, so gentest: blocks on them reach the loader.
func New(ctx context.Context, goFiles adapter.GoFileAdapter) (*Catalog, error) {
	docs, err := typeDocs(ctx, goFiles)
	if err != nil {
		return nil, err
	}

	subjects := []m.Subject{
		int64Subject(),
		float64Subject(),
		ratSubject(),
		complexSubject(),
		moduloNSubject(docs["ModuloN"]),
		moduloPow2Subject(docs["ModuloPow2"]),
		durationSubject(),
		timeSubject(),
		vectorSubject(),
		versionSubject(),
		sliceSubject(),
		mapSubject(),
		setSubject(),
		frozenSetSubject(),
		intSetSubject(),
		bitSetSubject(),
		decimalSubject(),
		bufferSubject(),
		readerSubject(),
		byteFileSubject(),
		weekdaySubject(),
		permissionSubject(),
	}

	return &Catalog{subjects: subjects}, nil
}

// Subjects returns the subjects in catalog order.
func (c *Catalog) Subjects() []m.Subject {
	return append([]m.Subject(nil), c.subjects...)
}

// Lookup finds a subject by name.
func (c *Catalog) Lookup(name string) (m.Subject, bool) {
	for _, s := range c.subjects {
		if s.Name == name {
			return s, true
		}
	}

	return m.Subject{}, false
}

func typeDocs(ctx context.Context, goFiles adapter.GoFileAdapter) (map[string]string, error) {
	fset := token.NewFileSet()

	file, err := goFiles.Parse(ctx, fset, moduloFile, moduloSource)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", moduloFile, err)
	}

	docs := make(map[string]string)
	for _, doc := range goFiles.TypeDocs(fset, file) {
		docs[doc.Name] = doc.Doc
	}

	return docs, nil
}

// Tolerance is the relative error accepted by the floating point fixtures.
const Tolerance = 1e-9

func approxEqual(a, b float64) bool {
	if a == b {
		return true
	}

	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))

	return math.Abs(a-b) <= Tolerance*scale
}

// atMost is <= with the fixture tolerance.
func atMost(a, b float64) bool {
	return a <= b || approxEqual(a, b)
}
