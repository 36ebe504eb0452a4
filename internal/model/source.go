package model

// Path represents a file system path.
type Path string

// File is a Go source file found by the path walker.
type File struct {
	Path Path
}

// TypeDoc is the documentation attached to one type declaration.
type TypeDoc struct {
	Name string
	Line int
	Doc  string
}

// Annotation is an override found on a type declaration in Go source.
type Annotation struct {
	File     Path     `yaml:"file"`
	Line     int      `yaml:"line"`
	TypeName string   `yaml:"type"`
	Override Override `yaml:"override"`
}
